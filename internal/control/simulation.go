package control

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/observability"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/pick"
)

type State int

const (
	Running State = iota
	Paused
)

func (s State) String() string {
	if s == Paused {
		return "paused"
	}
	return "running"
}

type Config struct {
	Bodies     []orbit.Spec
	Central    orbit.Central
	SpeedMax   float64
	Kinematics orbit.Kinematics
	Camera     camera.Config
	Aspect     float64
	Seed       int64
}

func DefaultConfig() Config {
	return Config{
		Bodies:     orbit.DefaultCatalog(),
		Central:    orbit.DefaultCentral(),
		SpeedMax:   orbit.SpeedMax,
		Kinematics: orbit.DefaultKinematics(),
		Camera:     camera.DefaultConfig(),
		Aspect:     16.0 / 9.0,
		Seed:       1,
	}
}

type Option func(*Simulation)

func WithLogger(l logging.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetrics(c *observability.FrameCollector) Option {
	return func(s *Simulation) { s.metrics = c }
}

// WithRand overrides the seeded random source used for phases.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulation) {
		if r != nil {
			s.rng = r
		}
	}
}

// Simulation is the control state machine. It is driven by one goroutine: the
// host calls Tick once per frame and delivers input between ticks.
type Simulation struct {
	cfg      Config
	registry *orbit.Registry
	kin      orbit.Kinematics
	camera   *camera.Controller
	picker   pick.Picker
	hover    pick.Hover

	state          State
	panelCollapsed bool
	lightTheme     bool
	elapsed        float64
	frames         int

	pointerX, pointerY float64
	hasPointer         bool
	lastRay            geom.Ray

	scene   Scene
	display Display
	rng     *rand.Rand
	log     logging.Logger
	metrics *observability.FrameCollector
}

// New builds every body, registers them with scene and renders the initial
// panels. Any failure is wrapped in ErrInit and no Simulation is returned.
func New(cfg Config, scene Scene, display Display, opts ...Option) (*Simulation, error) {
	if scene == nil {
		scene = NopScene{}
	}
	if display == nil {
		display = NopDisplay{}
	}
	if cfg.SpeedMax <= 0 {
		cfg.SpeedMax = orbit.SpeedMax
	}
	if cfg.Kinematics == (orbit.Kinematics{}) {
		cfg.Kinematics = orbit.DefaultKinematics()
	}
	if cfg.Central.Radius <= 0 {
		cfg.Central = orbit.DefaultCentral()
	}

	s := &Simulation{
		cfg:     cfg,
		kin:     cfg.Kinematics,
		camera:  camera.New(cfg.Camera),
		picker:  pick.Picker{Projection: geom.NewProjection(cfg.Aspect)},
		scene:   scene,
		display: display,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		log:     logging.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	reg, err := orbit.NewRegistry(cfg.Bodies, cfg.SpeedMax, s.rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	reg.SetCentral(cfg.Central)
	s.registry = reg

	c := reg.Central()
	if err := scene.CreateBody(orbit.CentralID, Visual{Name: c.Name, Radius: c.Radius, Color: c.Color, Central: true}); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrInit, c.Name, err)
	}
	for _, b := range reg.Bodies() {
		v := Visual{Name: b.Name(), Radius: b.Radius, Distance: b.Distance, Color: b.Info.Color}
		if err := scene.CreateBody(b.ID, v); err != nil {
			return nil, fmt.Errorf("%w: create %s: %w", ErrInit, b.Name(), err)
		}
	}

	display.RenderSpeedControls(s.speedControls())
	display.RenderPauseIndicator(false)
	display.SetPanelCollapsed(false)
	display.SetTheme(false)

	s.log.Info(context.Background(), "simulation ready",
		logging.Int("bodies", reg.Len()),
		logging.Float("speed_max", cfg.SpeedMax),
		logging.Bool("hold_directed", cfg.Camera.HoldDirected))
	return s, nil
}

// Tick advances one frame. While paused the kinematics, backdrop and ambient
// camera are frozen but the scene is still committed and hover re-resolved.
func (s *Simulation) Tick(dt float64) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	if s.state == Running {
		s.registry.Step(s.kin, dt)
		s.elapsed += dt
		s.camera.Update(s.elapsed)
	}
	s.frames++
	s.metrics.ObserveFrame(dt, s.state == Paused)

	s.repick()
	s.commit()
}

func (s *Simulation) commit() {
	c := s.registry.Central()
	s.scene.SetRotation(orbit.CentralID, c.Spin)
	for _, b := range s.registry.Bodies() {
		s.scene.SetPosition(b.ID, b.Position())
		s.scene.SetRotation(b.ID, b.Spin)
	}
	s.scene.SetBackdrop(s.registry.Backdrop())
	s.scene.Render(s.camera.Pose())
}

// Dispatch applies one command.
func (s *Simulation) Dispatch(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("%w: nil", ErrUnknownCommand)
	}
	switch c := cmd.(type) {
	case TogglePauseCommand:
		if s.state == Running {
			s.state = Paused
		} else {
			s.state = Running
		}
		s.display.RenderPauseIndicator(s.state == Paused)
	case SetSpeedCommand:
		b, ok := s.registry.Get(c.Body)
		if !ok {
			return fmt.Errorf("%w: id %d", ErrUnknownBody, c.Body)
		}
		v, err := s.registry.SetSpeed(c.Body, c.Value)
		if err != nil {
			return err
		}
		s.metrics.ObserveSpeed(b.Name())
		s.log.Debug(context.Background(), "speed override", logging.String("body", b.Name()), logging.Float("speed", v))
	case ResetCommand:
		s.registry.Reset(s.rng)
		s.camera.Reset()
		s.display.RenderSpeedControls(s.speedControls())
		s.repick()
	case TogglePanelCommand:
		s.panelCollapsed = !s.panelCollapsed
		s.display.SetPanelCollapsed(s.panelCollapsed)
	case ToggleThemeCommand:
		s.lightTheme = !s.lightTheme
		s.display.SetTheme(s.lightTheme)
	case NudgeCommand:
		s.camera.Nudge(c.Delta)
		s.repick()
	case FrameCommand:
		b, ok := s.registry.Get(c.Body)
		if !ok {
			return fmt.Errorf("%w: id %d", ErrUnknownBody, c.Body)
		}
		s.camera.Frame(b.Position())
		s.log.Debug(context.Background(), "frame body", logging.String("body", b.Name()), logging.Any("pose", s.camera.Pose()))
		s.repick()
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
	s.metrics.ObserveCommand(cmd.Name())
	return nil
}

func (s *Simulation) TogglePause() { _ = s.Dispatch(TogglePauseCommand{}) }
func (s *Simulation) Reset()       { _ = s.Dispatch(ResetCommand{}) }
func (s *Simulation) TogglePanel() { _ = s.Dispatch(TogglePanelCommand{}) }
func (s *Simulation) ToggleTheme() { _ = s.Dispatch(ToggleThemeCommand{}) }

func (s *Simulation) SetSpeed(id orbit.ID, v float64) error {
	return s.Dispatch(SetSpeedCommand{Body: id, Value: v})
}

// SetSpeedByName resolves name case-insensitively before dispatching.
func (s *Simulation) SetSpeedByName(name string, v float64) error {
	id, ok := s.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBody, name)
	}
	return s.SetSpeed(id, v)
}

// PointerMove records normalized pointer coordinates (y up) and re-resolves hover.
func (s *Simulation) PointerMove(ndcX, ndcY float64) {
	s.pointerX, s.pointerY = ndcX, ndcY
	s.hasPointer = true
	s.repick()
}

// PointerLeave forgets the pointer and ends any hover.
func (s *Simulation) PointerLeave() {
	s.hasPointer = false
	s.apply(s.hover.Clear())
}

// Click frames the hovered body. It reports whether anything happened.
func (s *Simulation) Click() bool {
	id, ok := s.hover.Current()
	if !ok {
		return false
	}
	return s.Dispatch(FrameCommand{Body: id}) == nil
}

// KeyPress applies the command bound to key. Unbound keys are ignored.
func (s *Simulation) KeyPress(key string) bool {
	cmd, ok := KeyCommand(key, s.camera.Config().NudgeStep)
	if !ok {
		return false
	}
	return s.Dispatch(cmd) == nil
}

// Resize updates the projection aspect. Empty sizes are ignored.
func (s *Simulation) Resize(width, height int) {
	s.picker.Projection = s.picker.Projection.WithViewport(float64(width), float64(height))
	s.repick()
}

func (s *Simulation) repick() {
	if !s.hasPointer {
		return
	}
	ray, id, hit := s.picker.Pick(s.camera.Pose(), s.pointerX, s.pointerY, s.registry.Targets())
	s.lastRay = ray
	s.apply(s.hover.Resolve(id, hit))
}

func (s *Simulation) apply(events []pick.Event) {
	for _, ev := range events {
		b, _ := s.registry.Get(ev.ID)
		switch ev.Kind {
		case pick.Enter:
			s.display.ShowInfo(b.Info)
			s.display.SetCursor(true)
		case pick.Exit:
			s.display.HideInfo()
			s.display.SetCursor(false)
		}
		s.metrics.ObserveHover(ev.Kind.String(), b.Name())
		s.log.Debug(context.Background(), "hover", logging.String("kind", ev.Kind.String()), logging.String("body", b.Name()))
	}
}

func (s *Simulation) speedControls() []SpeedControl {
	bodies := s.registry.Bodies()
	out := make([]SpeedControl, len(bodies))
	for i, b := range bodies {
		out[i] = SpeedControl{
			ID:    b.ID,
			Name:  b.Name(),
			Color: b.Info.Color,
			Value: b.Speed,
			Min:   orbit.SpeedMin,
			Max:   s.registry.SpeedMax(),
			Step:  orbit.SpeedStep,
		}
	}
	return out
}

func (s *Simulation) State() State            { return s.state }
func (s *Simulation) Paused() bool            { return s.state == Paused }
func (s *Simulation) PanelCollapsed() bool    { return s.panelCollapsed }
func (s *Simulation) LightTheme() bool        { return s.lightTheme }
func (s *Simulation) Pose() geom.Pose         { return s.camera.Pose() }
func (s *Simulation) CameraMode() camera.Mode { return s.camera.Mode() }
func (s *Simulation) Elapsed() float64        { return s.elapsed }
func (s *Simulation) Frames() int             { return s.frames }
func (s *Simulation) Bodies() []orbit.Body    { return s.registry.Bodies() }
func (s *Simulation) Central() orbit.Central  { return s.registry.Central() }

func (s *Simulation) Projection() geom.Projection         { return s.picker.Projection }
func (s *Simulation) SpeedControls() []SpeedControl       { return s.speedControls() }
func (s *Simulation) Body(id orbit.ID) (orbit.Body, bool) { return s.registry.Get(id) }
func (s *Simulation) Lookup(name string) (orbit.ID, bool) { return s.registry.Lookup(name) }
func (s *Simulation) Hovered() (orbit.ID, bool)           { return s.hover.Current() }

// LastRay is the ray cast for the most recent pick, if any.
func (s *Simulation) LastRay() (geom.Ray, bool) { return s.lastRay, s.hasPointer }

// Snapshot is a read-only copy of everything a driver might display or record.
type Snapshot struct {
	Frame          int
	Elapsed        float64
	State          State
	Bodies         []orbit.Body
	Pose           geom.Pose
	CameraMode     camera.Mode
	Hovered        orbit.ID
	HasHover       bool
	PanelCollapsed bool
	LightTheme     bool
}

func (s *Simulation) Snapshot() Snapshot {
	id, ok := s.hover.Current()
	return Snapshot{
		Frame:          s.frames,
		Elapsed:        s.elapsed,
		State:          s.state,
		Bodies:         s.registry.Bodies(),
		Pose:           s.camera.Pose(),
		CameraMode:     s.camera.Mode(),
		Hovered:        id,
		HasHover:       ok,
		PanelCollapsed: s.panelCollapsed,
		LightTheme:     s.lightTheme,
	}
}
