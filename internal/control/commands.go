package control

import (
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/orbit"
)

// Command is an explicit request to change simulation state. UI and script
// drivers build commands and hand them to Simulation.Dispatch.
type Command interface {
	Name() string
}

type TogglePauseCommand struct{}

// SetSpeedCommand overrides one body's speed. Value is clamped, not rejected.
type SetSpeedCommand struct {
	Body  orbit.ID
	Value float64
}

// ResetCommand re-randomizes phases, restores base speeds and returns the
// camera to the overview pose.
type ResetCommand struct{}

type TogglePanelCommand struct{}

type ToggleThemeCommand struct{}

// NudgeCommand translates the camera.
type NudgeCommand struct {
	Delta geom.Vec3
}

// FrameCommand points the camera at a body's current position.
type FrameCommand struct {
	Body orbit.ID
}

func (TogglePauseCommand) Name() string { return "toggle_pause" }
func (SetSpeedCommand) Name() string    { return "set_speed" }
func (ResetCommand) Name() string       { return "reset" }
func (TogglePanelCommand) Name() string { return "toggle_panel" }
func (ToggleThemeCommand) Name() string { return "toggle_theme" }
func (NudgeCommand) Name() string       { return "nudge" }
func (FrameCommand) Name() string       { return "frame" }

// Key names understood by KeyPress.
const (
	KeySpace = "space"
	KeyReset = "r"
	KeyTheme = "t"
	KeyPanel = "c"
	KeyUp    = "up"
	KeyDown  = "down"
	KeyLeft  = "left"
	KeyRight = "right"
)

// KeyCommand maps a key name to its command. Unbound keys return false.
func KeyCommand(key string, step float64) (Command, bool) {
	switch key {
	case KeySpace, " ":
		return TogglePauseCommand{}, true
	case KeyReset, "R":
		return ResetCommand{}, true
	case KeyTheme, "T":
		return ToggleThemeCommand{}, true
	case KeyPanel, "C":
		return TogglePanelCommand{}, true
	case KeyUp:
		return NudgeCommand{Delta: geom.Vec3{0, step, 0}}, true
	case KeyDown:
		return NudgeCommand{Delta: geom.Vec3{0, -step, 0}}, true
	case KeyLeft:
		return NudgeCommand{Delta: geom.Vec3{-step, 0, 0}}, true
	case KeyRight:
		return NudgeCommand{Delta: geom.Vec3{step, 0, 0}}, true
	}
	return nil, false
}
