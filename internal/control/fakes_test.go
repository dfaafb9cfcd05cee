package control_test

import (
	"errors"

	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/orbit"
)

type recordingScene struct {
	created   map[orbit.ID]control.Visual
	positions map[orbit.ID]geom.Vec3
	rotations map[orbit.ID]float64
	backdrop  float64
	renders   []geom.Pose
	failOn    string
}

func newRecordingScene() *recordingScene {
	return &recordingScene{
		created:   map[orbit.ID]control.Visual{},
		positions: map[orbit.ID]geom.Vec3{},
		rotations: map[orbit.ID]float64{},
	}
}

func (r *recordingScene) CreateBody(id orbit.ID, v control.Visual) error {
	if v.Name == r.failOn {
		return errors.New("mesh build failed")
	}
	r.created[id] = v
	return nil
}

func (r *recordingScene) SetPosition(id orbit.ID, p geom.Vec3) { r.positions[id] = p }
func (r *recordingScene) SetRotation(id orbit.ID, y float64)   { r.rotations[id] = y }
func (r *recordingScene) SetBackdrop(rot float64)              { r.backdrop = rot }
func (r *recordingScene) Render(pose geom.Pose)                { r.renders = append(r.renders, pose) }

type displayEvent struct {
	kind string
	name string
}

type recordingDisplay struct {
	events   []displayEvent
	controls [][]control.SpeedControl
	paused   []bool
	panel    bool
	light    bool
	pointer  bool
}

func (d *recordingDisplay) ShowInfo(info orbit.Info) {
	d.events = append(d.events, displayEvent{"show", info.Name})
}

func (d *recordingDisplay) HideInfo() {
	d.events = append(d.events, displayEvent{"hide", ""})
}

func (d *recordingDisplay) RenderSpeedControls(c []control.SpeedControl) {
	d.controls = append(d.controls, c)
}

func (d *recordingDisplay) RenderPauseIndicator(p bool) { d.paused = append(d.paused, p) }
func (d *recordingDisplay) SetPanelCollapsed(c bool)    { d.panel = c }
func (d *recordingDisplay) SetTheme(light bool)         { d.light = light }
func (d *recordingDisplay) SetCursor(pointer bool)      { d.pointer = pointer }

func (d *recordingDisplay) count(kind string) int {
	n := 0
	for _, e := range d.events {
		if e.kind == kind {
			n++
		}
	}
	return n
}
