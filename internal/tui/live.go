package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws a headless run to a terminal as it happens. It observes
// runner frames, so the scene it holds must be the one the simulation renders
// into.
type LiveRenderer struct {
	out       io.Writer
	scene     *viz.Scene
	frameRate int
	pace      bool

	now   func() time.Time
	sleep func(time.Duration)

	start     time.Time
	lastFrame time.Time
	drawn     int
}

// NewLiveRenderer redraws at most frameRate times per second. With pace set,
// each frame is held back until wall time catches up with simulated time.
func NewLiveRenderer(out io.Writer, scene *viz.Scene, frameRate int, pace bool) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:       out,
		scene:     scene,
		frameRate: frameRate,
		pace:      pace,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

func (r *LiveRenderer) Drawn() int { return r.drawn }

func (r *LiveRenderer) OnFrame(frame int, t float64, snap control.Snapshot) {
	now := r.now()
	if r.start.IsZero() {
		r.start = now
	}
	if r.pace {
		due := r.start.Add(time.Duration(t * float64(time.Second)))
		if wait := due.Sub(now); wait > 0 {
			r.sleep(wait)
			now = due
		}
	}
	if r.drawn > 0 && now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now
	r.drawn++
	r.render(frame, t, snap)
}

func (r *LiveRenderer) render(frame int, t float64, snap control.Snapshot) {
	theme := viz.ThemeFor(snap.LightTheme)
	r.scene.SetTheme(theme)
	st := viz.NewStyles(theme)

	status := st.Running.Render("running")
	if snap.State == control.Paused {
		status = st.Paused.Render("paused")
	}

	hover := "-"
	for _, b := range snap.Bodies {
		if snap.HasHover && b.ID == snap.Hovered {
			hover = b.Name()
		}
	}

	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, " %s  %s  %s\n",
		st.Title.Render("orrery"),
		status,
		st.Subtle.Render(fmt.Sprintf("frame %d  t=%.2fs  camera %s", frame+1, t, snap.CameraMode)))
	b.WriteString(strings.TrimSuffix(r.scene.View(), "\n"))
	b.WriteString("\n")
	fmt.Fprintf(&b, " %s %s  %s %d\n",
		st.Label.Render("hover"), st.Value.Render(hover),
		st.Label.Render("bodies"), len(snap.Bodies))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
