// Package camera owns the camera pose and decides who writes it each frame.
//
// Two writers compete. Ambient motion orbits the origin on a fixed circle
// with a slow vertical bob and is recomputed on every unpaused frame. Explicit
// commands (Reset, Frame, Nudge) place the camera directly and switch to
// Directed mode. By default the next ambient update overwrites a directed pose,
// so a click-to-frame lasts a single animated frame while the simulation runs;
// set HoldDirected to keep directed poses until the next Reset.
package camera

import (
	"math"

	"github.com/san-kum/orrery/internal/geom"
)

type Mode int

const (
	Ambient Mode = iota
	Directed
)

func (m Mode) String() string {
	if m == Directed {
		return "directed"
	}
	return "ambient"
}

// Config holds the tunables of both modes.
type Config struct {
	DefaultPose geom.Pose
	Radius      float64
	Height      float64
	Bob         float64
	Rate        float64
	BobRate     float64
	FrameOffset geom.Vec3
	NudgeStep   float64

	HoldDirected bool
}

func DefaultConfig() Config {
	return Config{
		DefaultPose: geom.Pose{Position: geom.Vec3{0, 80, 200}, Target: geom.Origin},
		Radius:      200,
		Height:      80,
		Bob:         20,
		Rate:        0.02,
		BobRate:     0.01,
		FrameOffset: geom.Vec3{30, 15, 30},
		NudgeStep:   10,
	}
}

type Controller struct {
	cfg  Config
	pose geom.Pose
	mode Mode
	hold bool
}

// New starts at the default overview pose in ambient mode.
func New(cfg Config) *Controller {
	if !cfg.DefaultPose.Valid() {
		cfg.DefaultPose = DefaultConfig().DefaultPose
	}
	return &Controller{cfg: cfg, pose: cfg.DefaultPose, mode: Ambient}
}

func (c *Controller) Pose() geom.Pose { return c.pose }
func (c *Controller) Mode() Mode      { return c.mode }
func (c *Controller) Config() Config  { return c.cfg }

// AmbientPose is the auto-orbit pose at elapsed seconds.
func (c *Controller) AmbientPose(elapsed float64) geom.Pose {
	return geom.Pose{
		Position: geom.Vec3{
			math.Cos(elapsed*c.cfg.Rate) * c.cfg.Radius,
			c.cfg.Height + math.Sin(elapsed*c.cfg.BobRate)*c.cfg.Bob,
			math.Sin(elapsed*c.cfg.Rate) * c.cfg.Radius,
		},
		Target: geom.Origin,
	}
}

// Update applies ambient motion. It reports whether the pose was written.
func (c *Controller) Update(elapsed float64) bool {
	if c.hold {
		return false
	}
	p := c.AmbientPose(elapsed)
	if !p.Valid() {
		return false
	}
	c.pose = p
	c.mode = Ambient
	return true
}

// Frame looks at target from target+FrameOffset.
func (c *Controller) Frame(target geom.Vec3) {
	c.direct(geom.Pose{Position: target.Add(c.cfg.FrameOffset), Target: target})
}

// Reset returns to the default overview pose and releases any hold.
func (c *Controller) Reset() {
	c.pose = c.cfg.DefaultPose
	c.mode = Directed
	c.hold = false
}

// Nudge translates the camera by d without re-aiming it.
func (c *Controller) Nudge(d geom.Vec3) {
	c.direct(c.pose.Translate(d))
}

func (c *Controller) direct(p geom.Pose) {
	if !p.Valid() {
		return
	}
	c.pose = p
	c.mode = Directed
	c.hold = c.cfg.HoldDirected
}
