package orbit

import (
	"math"

	"github.com/san-kum/orrery/internal/geom"
)

const (
	SpeedMin  = 0.0
	SpeedMax  = 5.0
	SpeedStep = 0.1

	// OrbitPlaneY is the fixed height of every orbit.
	OrbitPlaneY = 0.0
)

// ID identifies a body in a Registry. It doubles as the render handle, so
// collaborators never need to tag scene objects with body data.
type ID int

// CentralID is the handle of the central body. It is never pickable.
const CentralID ID = -1

// Info is display-only metadata.
type Info struct {
	Name         string `yaml:"name"`
	RealDistance string `yaml:"real_distance"`
	RealPeriod   string `yaml:"real_period"`
	RealDiameter string `yaml:"real_diameter"`
	Fact         string `yaml:"fact"`
	Color        uint32 `yaml:"color"`
}

// Spec describes a body before it enters a registry.
type Spec struct {
	Info     `yaml:",inline"`
	Radius   float64 `yaml:"radius"`
	Distance float64 `yaml:"distance"`
	Speed    float64 `yaml:"speed"`

	// Phase pins the starting angle. Nil draws a random one. Reset always
	// draws a random phase.
	Phase *float64 `yaml:"phase,omitempty"`
}

// PhaseAt returns a pointer to a, for Spec.Phase literals.
func PhaseAt(a float64) *float64 { return &a }

// Body is one orbiting entity. Its position is always derived from Angle.
type Body struct {
	ID       ID
	Info     Info
	Radius   float64
	Distance float64
	Angle    float64
	Speed    float64
	Spin     float64

	baseSpeed float64
}

func (b Body) Name() string { return b.Info.Name }

// BaseSpeed is the catalog speed restored by a reset.
func (b Body) BaseSpeed() float64 { return b.baseSpeed }

func (b Body) Position() geom.Vec3 {
	return PositionAt(b.Distance, b.Angle)
}

func PositionAt(distance, angle float64) geom.Vec3 {
	return geom.Vec3{math.Cos(angle) * distance, OrbitPlaneY, math.Sin(angle) * distance}
}

// Central is the body everything orbits. It only spins.
type Central struct {
	Name   string
	Radius float64
	Color  uint32
	Spin   float64
}

func DefaultCentral() Central {
	return Central{Name: "Sun", Radius: 8, Color: 0xFFFF00}
}

// ClampSpeed bounds a speed override to [SpeedMin, SpeedMax]. NaN maps to SpeedMin.
func ClampSpeed(v, max float64) float64 {
	if math.IsNaN(v) || v < SpeedMin {
		return SpeedMin
	}
	if v > max {
		return max
	}
	return v
}

// NormalizeAngle wraps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
