package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/sim"
)

var (
	ErrInvalidScript  = errors.New("invalid script")
	ErrUnknownCommand = errors.New("unknown script command")
)

// Script is a timed sequence of user input replayed against a simulation.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step fires once the runner's wall time reaches At seconds.
type Step struct {
	At      float64 `yaml:"at"`
	Command string  `yaml:"command"`
	Body    string  `yaml:"body,omitempty"`
	Value   float64 `yaml:"value,omitempty"`
	X       float64 `yaml:"x,omitempty"`
	Y       float64 `yaml:"y,omitempty"`
	Z       float64 `yaml:"z,omitempty"`
	Key     string  `yaml:"key,omitempty"`
}

// LoadScript loads a script from a YAML file
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

func (s *Script) Validate() error {
	for i, step := range s.Steps {
		if step.At < 0 {
			return fmt.Errorf("%w: step %d: negative time %v", ErrInvalidScript, i+1, step.At)
		}
		switch step.Command {
		case "pause", "reset", "panel", "theme", "click", "leave", "nudge", "pointer":
		case "speed", "frame":
			if step.Body == "" {
				return fmt.Errorf("%w: step %d: %s needs a body", ErrInvalidScript, i+1, step.Command)
			}
		case "key":
			if step.Key == "" {
				return fmt.Errorf("%w: step %d: key needs a key", ErrInvalidScript, i+1)
			}
		default:
			return fmt.Errorf("%w: step %d: %q", ErrUnknownCommand, i+1, step.Command)
		}
	}
	return nil
}

// Player replays a script as a sim.Hook. Steps sharing a time fire in file order.
type Player struct {
	steps []Step
	next  int
	log   logging.Logger
}

func NewPlayer(s *Script, log logging.Logger) *Player {
	if log == nil {
		log = logging.Noop()
	}
	steps := append([]Step(nil), s.Steps...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })
	return &Player{steps: steps, log: log}
}

// Done reports whether every step has fired.
func (p *Player) Done() bool { return p.next >= len(p.steps) }

func (p *Player) Apply(t float64, s *control.Simulation) error {
	for p.next < len(p.steps) && p.steps[p.next].At <= t {
		step := p.steps[p.next]
		p.next++
		if err := apply(step, s); err != nil {
			return fmt.Errorf("step %q at %.3f: %w", step.Command, step.At, err)
		}
		p.log.Debug(context.Background(), "script step",
			logging.String("command", step.Command),
			logging.Float("at", step.At),
			logging.Float("t", t))
	}
	return nil
}

func apply(step Step, s *control.Simulation) error {
	switch step.Command {
	case "pause":
		s.TogglePause()
	case "reset":
		s.Reset()
	case "panel":
		s.TogglePanel()
	case "theme":
		s.ToggleTheme()
	case "speed":
		return s.SetSpeedByName(step.Body, step.Value)
	case "nudge":
		return s.Dispatch(control.NudgeCommand{Delta: geom.Vec3{step.X, step.Y, step.Z}})
	case "pointer":
		s.PointerMove(step.X, step.Y)
	case "leave":
		s.PointerLeave()
	case "click":
		s.Click()
	case "frame":
		id, ok := s.Lookup(step.Body)
		if !ok {
			return fmt.Errorf("%w: %q", control.ErrUnknownBody, step.Body)
		}
		return s.Dispatch(control.FrameCommand{Body: id})
	case "key":
		s.KeyPress(step.Key)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, step.Command)
	}
	return nil
}

// RunScript builds a simulation from cfg and replays script against it for
// run.Frames frames.
func RunScript(ctx context.Context, script *Script, cfg control.Config, run sim.Config, log logging.Logger) (*sim.Result, error) {
	s, err := control.New(cfg, nil, nil, control.WithLogger(log))
	if err != nil {
		return nil, err
	}
	r := sim.NewRunner(s, log)
	r.AddHook(NewPlayer(script, log))
	return r.Run(ctx, run)
}
