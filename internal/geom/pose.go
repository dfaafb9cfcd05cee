package geom

import "github.com/go-gl/mathgl/mgl64"

const degenerateEps = 1e-9

// Pose is a camera placement: where it sits and what it looks at.
type Pose struct {
	Position Vec3
	Target   Vec3
}

// Valid reports whether the pose has a usable look direction.
func (p Pose) Valid() bool {
	return p.Target.Sub(p.Position).Len() > degenerateEps
}

// Forward is the unit look direction.
func (p Pose) Forward() Vec3 {
	return Unit(p.Target.Sub(p.Position))
}

// Translate moves position and target together, keeping the orientation.
func (p Pose) Translate(d Vec3) Pose {
	return Pose{Position: p.Position.Add(d), Target: p.Target.Add(d)}
}

// Up is the reference up vector handed to LookAtV: world +Y, or -Z when
// looking straight along Y.
func (p Pose) Up() Vec3 {
	if p.Forward().Cross(UnitY).Len() < degenerateEps {
		return Vec3{0, 0, -1}
	}
	return UnitY
}

// View is the world-to-camera matrix.
func (p Pose) View() mgl64.Mat4 {
	return mgl64.LookAtV(p.Position, p.Target, p.Up())
}

// Basis returns the camera's forward, right and up unit vectors, read off the
// rows of the view matrix.
func (p Pose) Basis() (forward, right, up Vec3) {
	if !p.Valid() {
		return Vec3{}, Vec3{}, Vec3{}
	}
	v := p.View()
	return v.Row(2).Vec3().Mul(-1), v.Row(0).Vec3(), v.Row(1).Vec3()
}
