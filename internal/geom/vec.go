package geom

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is a world-space point or direction. +Y is up.
type Vec3 = mgl64.Vec3

var (
	Origin = Vec3{}
	UnitY  = Vec3{0, 1, 0}
)

// Unit normalizes v. The zero vector stays zero.
func Unit(v Vec3) Vec3 {
	if v.Len() == 0 {
		return Vec3{}
	}
	return v.Normalize()
}

// RotateY turns v about the world Y axis by angle radians.
func RotateY(v Vec3, angle float64) Vec3 {
	return mgl64.Rotate3DY(angle).Mul3x1(v)
}
