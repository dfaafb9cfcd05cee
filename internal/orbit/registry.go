package orbit

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/san-kum/orrery/internal/geom"
)

var (
	// ErrInvalidBody indicates a catalog entry that violates a body invariant.
	ErrInvalidBody = errors.New("orbit: invalid body")

	// ErrUnknownBody indicates a lookup for a body the registry does not hold.
	ErrUnknownBody = errors.New("orbit: unknown body")
)

// Target is a pickable sphere in world space.
type Target struct {
	ID     ID
	Center geom.Vec3
	Radius float64
}

// Registry owns every body and the ID lookup table. Bodies keep catalog order.
type Registry struct {
	bodies   []Body
	byName   map[string]ID
	speedMax float64
	central  Central
	backdrop float64
}

// NewRegistry validates specs and places each body at a random phase drawn from rng.
func NewRegistry(specs []Spec, speedMax float64, rng *rand.Rand) (*Registry, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: empty catalog", ErrInvalidBody)
	}
	if speedMax <= 0 {
		speedMax = SpeedMax
	}
	r := &Registry{
		bodies:   make([]Body, 0, len(specs)),
		byName:   make(map[string]ID, len(specs)),
		speedMax: speedMax,
		central:  DefaultCentral(),
	}
	for i, s := range specs {
		if err := validateSpec(s); err != nil {
			return nil, err
		}
		key := strings.ToLower(s.Name)
		if _, dup := r.byName[key]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidBody, s.Name)
		}
		id := ID(i)
		r.byName[key] = id
		base := ClampSpeed(s.Speed, speedMax)
		angle := randomAngle(rng)
		if s.Phase != nil {
			angle = NormalizeAngle(*s.Phase)
		}
		r.bodies = append(r.bodies, Body{
			ID:        id,
			Info:      s.Info,
			Radius:    s.Radius,
			Distance:  s.Distance,
			Angle:     angle,
			Speed:     base,
			baseSpeed: base,
		})
	}
	return r, nil
}

func validateSpec(s Spec) error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("%w: missing name", ErrInvalidBody)
	case !(s.Distance > 0) || math.IsInf(s.Distance, 0):
		return fmt.Errorf("%w: %s: distance must be positive, got %v", ErrInvalidBody, s.Name, s.Distance)
	case !(s.Radius > 0) || math.IsInf(s.Radius, 0):
		return fmt.Errorf("%w: %s: radius must be positive, got %v", ErrInvalidBody, s.Name, s.Radius)
	case s.Speed < 0 || math.IsNaN(s.Speed):
		return fmt.Errorf("%w: %s: speed must be non-negative, got %v", ErrInvalidBody, s.Name, s.Speed)
	case s.Phase != nil && (math.IsNaN(*s.Phase) || math.IsInf(*s.Phase, 0)):
		return fmt.Errorf("%w: %s: phase must be finite", ErrInvalidBody, s.Name)
	}
	return nil
}

func randomAngle(rng *rand.Rand) float64 {
	if rng == nil {
		return 0
	}
	return rng.Float64() * 2 * math.Pi
}

func (r *Registry) Len() int          { return len(r.bodies) }
func (r *Registry) SpeedMax() float64 { return r.speedMax }
func (r *Registry) Central() Central  { return r.central }
func (r *Registry) Backdrop() float64 { return r.backdrop }

// SetCentral replaces the central body's display parameters.
func (r *Registry) SetCentral(c Central) { r.central = c }

// Get resolves an ID.
func (r *Registry) Get(id ID) (Body, bool) {
	if id < 0 || int(id) >= len(r.bodies) {
		return Body{}, false
	}
	return r.bodies[id], true
}

// Lookup resolves a body name, case-insensitively.
func (r *Registry) Lookup(name string) (ID, bool) {
	id, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// Bodies returns a copy of every body in catalog order.
func (r *Registry) Bodies() []Body {
	out := make([]Body, len(r.bodies))
	copy(out, r.bodies)
	return out
}

// Step advances every body, the central spin and the backdrop by dt.
func (r *Registry) Step(k Kinematics, dt float64) {
	for i := range r.bodies {
		r.bodies[i] = k.Step(r.bodies[i], dt)
	}
	r.central = k.StepCentral(r.central, dt)
	r.backdrop = k.StepBackdrop(r.backdrop, dt)
}

// SetSpeed clamps v into range and stores it. The phase angle is untouched.
func (r *Registry) SetSpeed(id ID, v float64) (float64, error) {
	if id < 0 || int(id) >= len(r.bodies) {
		return 0, fmt.Errorf("%w: id %d", ErrUnknownBody, id)
	}
	v = ClampSpeed(v, r.speedMax)
	r.bodies[id].Speed = v
	return v, nil
}

// Reset draws a fresh phase for every body and restores base speeds.
func (r *Registry) Reset(rng *rand.Rand) {
	for i := range r.bodies {
		r.bodies[i].Angle = randomAngle(rng)
		r.bodies[i].Speed = r.bodies[i].baseSpeed
	}
}

// Targets lists pickable spheres at their current positions, in catalog order.
func (r *Registry) Targets() []Target {
	out := make([]Target, len(r.bodies))
	for i, b := range r.bodies {
		out[i] = Target{ID: b.ID, Center: b.Position(), Radius: b.Radius}
	}
	return out
}
