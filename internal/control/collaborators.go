package control

import (
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/orbit"
)

// Visual is what a scene needs to build a body once at startup.
type Visual struct {
	Name     string
	Radius   float64
	Distance float64 // 0 for the central body
	Color    uint32
	Central  bool
}

// Scene draws the world. The simulation pushes positions and rotations every
// tick, then a single Render with the committed camera pose.
type Scene interface {
	CreateBody(id orbit.ID, v Visual) error
	SetPosition(id orbit.ID, p geom.Vec3)
	SetRotation(id orbit.ID, y float64)
	SetBackdrop(rotation float64)
	Render(pose geom.Pose)
}

// SpeedControl describes one speed slider.
type SpeedControl struct {
	ID    orbit.ID
	Name  string
	Color uint32
	Value float64
	Min   float64
	Max   float64
	Step  float64
}

// Display shows the panels around the scene. Speed changes come back as
// SetSpeedCommand values passed to Dispatch.
type Display interface {
	ShowInfo(info orbit.Info)
	HideInfo()
	RenderSpeedControls(controls []SpeedControl)
	RenderPauseIndicator(paused bool)
	SetPanelCollapsed(collapsed bool)
	SetTheme(light bool)
	SetCursor(pointer bool)
}

type NopScene struct{}

func (NopScene) CreateBody(orbit.ID, Visual) error { return nil }
func (NopScene) SetPosition(orbit.ID, geom.Vec3)   {}
func (NopScene) SetRotation(orbit.ID, float64)     {}
func (NopScene) SetBackdrop(float64)               {}
func (NopScene) Render(geom.Pose)                  {}

type NopDisplay struct{}

func (NopDisplay) ShowInfo(orbit.Info)                {}
func (NopDisplay) HideInfo()                          {}
func (NopDisplay) RenderSpeedControls([]SpeedControl) {}
func (NopDisplay) RenderPauseIndicator(bool)          {}
func (NopDisplay) SetPanelCollapsed(bool)             {}
func (NopDisplay) SetTheme(bool)                      {}
func (NopDisplay) SetCursor(bool)                     {}
