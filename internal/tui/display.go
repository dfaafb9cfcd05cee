package tui

import (
	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/viz"
)

// panel is the terminal side of control.Display. It only records state; the
// model renders it in View.
type panel struct {
	scene  *viz.Scene
	styles viz.Styles

	info      *orbit.Info
	controls  []control.SpeedControl
	paused    bool
	collapsed bool
	light     bool
	pointer   bool
}

func newPanel(scene *viz.Scene) *panel {
	return &panel{scene: scene, styles: viz.NewStyles(viz.ThemeDark)}
}

func (p *panel) ShowInfo(info orbit.Info) { p.info = &info }
func (p *panel) HideInfo()                { p.info = nil }

func (p *panel) RenderSpeedControls(c []control.SpeedControl) {
	p.controls = append(p.controls[:0], c...)
}

func (p *panel) RenderPauseIndicator(paused bool) { p.paused = paused }
func (p *panel) SetPanelCollapsed(collapsed bool) { p.collapsed = collapsed }
func (p *panel) SetCursor(pointer bool)           { p.pointer = pointer }

func (p *panel) SetTheme(light bool) {
	p.light = light
	t := viz.ThemeFor(light)
	p.styles = viz.NewStyles(t)
	if p.scene != nil {
		p.scene.SetTheme(t)
	}
}
