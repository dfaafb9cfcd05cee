// Package pick resolves a pointer ray to the body under it and tracks hover
// transitions.
package pick

import (
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/orbit"
)

// Nearest returns the closest target the ray hits. On equal distances the
// target listed first wins.
func Nearest(ray geom.Ray, targets []orbit.Target) (orbit.ID, bool) {
	var (
		best  orbit.ID
		bestT float64
		found bool
	)
	for _, tg := range targets {
		t, ok := ray.IntersectSphere(tg.Center, tg.Radius)
		if !ok {
			continue
		}
		if !found || t < bestT {
			best, bestT, found = tg.ID, t, true
		}
	}
	return best, found
}

// Picker casts a ray through normalized pointer coordinates. Coordinates
// outside the viewport never hit.
type Picker struct {
	Projection geom.Projection
}

func (p Picker) Ray(pose geom.Pose, ndcX, ndcY float64) geom.Ray {
	return p.Projection.Ray(pose, ndcX, ndcY)
}

func (p Picker) Pick(pose geom.Pose, ndcX, ndcY float64, targets []orbit.Target) (geom.Ray, orbit.ID, bool) {
	ray := p.Ray(pose, ndcX, ndcY)
	if !geom.InViewport(ndcX, ndcY) {
		return ray, 0, false
	}
	id, ok := Nearest(ray, targets)
	return ray, id, ok
}
