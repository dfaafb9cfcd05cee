// Package orbit holds the body registry and the orbital kinematics engine.
//
// Orbits are parametric circles in the y=0 plane. Each body stores only its
// phase angle; world position is derived on demand:
//
//	pos = (distance*cos(angle), 0, distance*sin(angle))
//
// [Kinematics.Step] is pure. [Registry] is the single writer of angles,
// spins and speed overrides.
package orbit
