package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultFOV  = math.Pi / 3 // 60 degrees, vertical
	DefaultNear = 0.1
	DefaultFar  = 2000
)

// ndcViewport sizes the window handed to mgl64.Project and UnProject so that
// window coordinates are normalized device coordinates shifted by one.
const ndcViewport = 2

// Projection is a perspective frustum. FOV is vertical, in radians.
type Projection struct {
	FOV, Aspect, Near, Far float64
}

func NewProjection(aspect float64) Projection {
	if aspect <= 0 {
		aspect = 1
	}
	return Projection{FOV: DefaultFOV, Aspect: aspect, Near: DefaultNear, Far: DefaultFar}
}

// WithViewport returns p with the aspect of a w x h viewport. Empty viewports
// leave p unchanged.
func (p Projection) WithViewport(w, h float64) Projection {
	if w > 0 && h > 0 {
		p.Aspect = w / h
	}
	return p
}

func (p Projection) Matrix() mgl64.Mat4 {
	return mgl64.Perspective(p.FOV, p.Aspect, p.Near, p.Far)
}

// Frustum binds p to a camera pose. Build one per frame and reuse it for
// every point.
func (p Projection) Frustum(pose Pose) Frustum {
	return Frustum{Projection: p, Pose: pose, view: pose.View(), proj: p.Matrix()}
}

// Ray builds the world ray from the camera through normalized device
// coordinates (x right, y up, both in [-1, 1]).
func (p Projection) Ray(pose Pose, ndcX, ndcY float64) Ray {
	return p.Frustum(pose).Ray(ndcX, ndcY)
}

// Project maps a world point to normalized device coordinates. See
// Frustum.Project.
func (p Projection) Project(pose Pose, pt Vec3) (ndcX, ndcY, depth float64, ok bool) {
	return p.Frustum(pose).Project(pt)
}

// ScreenRadius is the approximate NDC height of a sphere of the given radius
// at depth.
func (p Projection) ScreenRadius(radius, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return radius * p.Matrix().At(1, 1) / depth
}

type Frustum struct {
	Projection
	Pose Pose

	view, proj mgl64.Mat4
}

// Project maps a world point to normalized device coordinates. depth is the
// distance along the view axis; ok is false when the point is behind the near
// plane or beyond the far plane. Points outside [-1, 1] are still returned so
// callers can clip lines.
func (f Frustum) Project(pt Vec3) (ndcX, ndcY, depth float64, ok bool) {
	depth = -f.view.Mul4x1(pt.Vec4(1)).Z()
	if depth < f.Near || depth > f.Far {
		return 0, 0, depth, false
	}
	win := mgl64.Project(pt, f.view, f.proj, 0, 0, ndcViewport, ndcViewport)
	return win.X() - 1, win.Y() - 1, depth, true
}

// ScreenRadius is Projection.ScreenRadius without rebuilding the matrix.
func (f Frustum) ScreenRadius(radius, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return radius * f.proj.At(1, 1) / depth
}

// Ray unprojects ndc onto the near and far planes and returns the ray from
// the camera through both. A singular view falls back to the look direction.
func (f Frustum) Ray(ndcX, ndcY float64) Ray {
	near, err := mgl64.UnProject(Vec3{ndcX + 1, ndcY + 1, 0}, f.view, f.proj, 0, 0, ndcViewport, ndcViewport)
	if err != nil {
		return NewRay(f.Pose.Position, f.Pose.Forward())
	}
	far, err := mgl64.UnProject(Vec3{ndcX + 1, ndcY + 1, 1}, f.view, f.proj, 0, 0, ndcViewport, ndcViewport)
	if err != nil {
		return NewRay(f.Pose.Position, f.Pose.Forward())
	}
	return NewRay(f.Pose.Position, far.Sub(near))
}

// InViewport reports whether normalized device coordinates fall on screen.
func InViewport(ndcX, ndcY float64) bool {
	return ndcX >= -1 && ndcX <= 1 && ndcY >= -1 && ndcY <= 1
}
