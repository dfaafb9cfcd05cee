package geom

import "math"

// Ray is a half-line. Dir is kept unit length by the constructors in this package.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: Unit(dir)}
}

func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Dir.Mul(t)) }

// IntersectSphere returns the distance along the ray to the nearest surface
// point of the sphere. A ray starting inside the sphere hits its far side.
func (r Ray) IntersectSphere(center Vec3, radius float64) (float64, bool) {
	if radius <= 0 || r.Dir == (Vec3{}) {
		return 0, false
	}
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
