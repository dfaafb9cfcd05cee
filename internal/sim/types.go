package sim

import (
	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/geom"
)

// Hook runs before each frame with the runner's wall time. Scripted input is
// delivered through hooks.
type Hook interface {
	Apply(t float64, s *control.Simulation) error
}

type HookFunc func(t float64, s *control.Simulation) error

func (f HookFunc) Apply(t float64, s *control.Simulation) error { return f(t, s) }

type Observer interface {
	OnFrame(frame int, t float64, snap control.Snapshot)
}

type ObserverFunc func(frame int, t float64, snap control.Snapshot)

func (f ObserverFunc) OnFrame(frame int, t float64, snap control.Snapshot) { f(frame, t, snap) }

type Config struct {
	Frames int
	Dt     float64
}

// Result holds one sample per frame for every body, indexed [body][frame] in
// registry order. Times is runner wall time, which keeps advancing while the
// simulation is paused.
type Result struct {
	Names     []string
	Times     []float64
	Angles    [][]float64
	Positions [][]geom.Vec3
	Final     control.Snapshot
}

func (r *Result) index(name string) int {
	for i, n := range r.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// X returns the x coordinate trace of the named body, or nil.
func (r *Result) X(name string) []float64 {
	i := r.index(name)
	if i < 0 {
		return nil
	}
	xs := make([]float64, len(r.Positions[i]))
	for f, p := range r.Positions[i] {
		xs[f] = p.X()
	}
	return xs
}

func (r *Result) Angle(name string) []float64 {
	i := r.index(name)
	if i < 0 {
		return nil
	}
	return r.Angles[i]
}

func (r *Result) Trajectory(name string) []geom.Vec3 {
	i := r.index(name)
	if i < 0 {
		return nil
	}
	return r.Positions[i]
}
