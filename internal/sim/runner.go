package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/logging"
)

// Runner drives a Simulation headlessly at a fixed step.
type Runner struct {
	sim       *control.Simulation
	hooks     []Hook
	observers []Observer
	log       logging.Logger
}

func NewRunner(s *control.Simulation, log logging.Logger) *Runner {
	if log == nil {
		log = logging.Noop()
	}
	return &Runner{sim: s, log: log}
}

func (r *Runner) AddHook(h Hook)         { r.hooks = append(r.hooks, h) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Simulation() *control.Simulation { return r.sim }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	bodies := r.sim.Bodies()
	result := &Result{
		Names:     make([]string, len(bodies)),
		Times:     make([]float64, 0, cfg.Frames),
		Angles:    make([][]float64, len(bodies)),
		Positions: make([][]geom.Vec3, len(bodies)),
	}
	for i, b := range bodies {
		result.Names[i] = b.Name()
		result.Angles[i] = make([]float64, 0, cfg.Frames)
		result.Positions[i] = make([]geom.Vec3, 0, cfg.Frames)
	}

	r.log.Info(ctx, "run started", logging.Int("frames", cfg.Frames), logging.Float("dt", cfg.Dt))

	t := 0.0
	for frame := 0; frame < cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			result.Final = r.sim.Snapshot()
			return result, ctx.Err()
		default:
		}

		for _, h := range r.hooks {
			if err := h.Apply(t, r.sim); err != nil {
				result.Final = r.sim.Snapshot()
				return result, fmt.Errorf("frame %d at t=%.3f: %w", frame, t, err)
			}
		}

		r.sim.Tick(cfg.Dt)
		t += cfg.Dt

		result.Times = append(result.Times, t)
		for i, b := range r.sim.Bodies() {
			result.Angles[i] = append(result.Angles[i], b.Angle)
			result.Positions[i] = append(result.Positions[i], b.Position())
		}

		if len(r.observers) > 0 {
			snap := r.sim.Snapshot()
			for _, obs := range r.observers {
				obs.OnFrame(frame, t, snap)
			}
		}
	}

	result.Final = r.sim.Snapshot()
	r.log.Info(ctx, "run finished",
		logging.Int("frames", result.Final.Frame),
		logging.Float("elapsed", result.Final.Elapsed),
		logging.String("state", result.Final.State.String()))
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	return nil
}
