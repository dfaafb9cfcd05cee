package viz

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/orbit"
)

var _ control.Scene = (*Scene)(nil)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(1, 3)
	if got := c.Grid[0][0]; got != brailleBase|0x1|0x80 {
		t.Errorf("unexpected cell %U", got)
	}
	c.Unset(0, 0)
	if got := c.Grid[0][0]; got != brailleBase|0x80 {
		t.Errorf("unexpected cell after unset %U", got)
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	c.Clear()
	if c.String() != "⠀⠀\n" {
		t.Errorf("canvas not cleared: %q", c.String())
	}
}

func TestCanvasColors(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7, 0xff0000)
	if c.Colors[0][0] != 0xff0000 || c.Colors[1][3] != 0xff0000 {
		t.Error("line cells should carry the line color")
	}
	if c.Colors[1][0] != NoColor {
		t.Error("untouched cells should have no color")
	}

	c.FillCircle(4, 4, 2, 0x00ff00)
	if c.Colors[1][2] != 0x00ff00 {
		t.Error("circle should overwrite the cell color")
	}

	if out := c.Render("#666666"); strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 rendered rows, got %q", out)
	}
}

func TestColorConversions(t *testing.T) {
	if got := HexColor(0x6b93d6); got != "#6b93d6" {
		t.Errorf("unexpected hex %s", got)
	}
	if got := ColorValue("#FFAA00"); got != 0xffaa00 {
		t.Errorf("unexpected value %x", got)
	}
	if got := ColorValue("bogus"); got != 0xffffff {
		t.Errorf("invalid colors fall back to white, got %x", got)
	}
}

func TestThemes(t *testing.T) {
	if ThemeFor(true).Name != "light" || ThemeFor(false).Name != "dark" {
		t.Error("ThemeFor picked the wrong theme")
	}
	if GetTheme("nonexistent").Name != "dark" {
		t.Error("unknown theme should fall back to dark")
	}
	if len(ThemeNames()) != 2 {
		t.Errorf("expected 2 themes, got %v", ThemeNames())
	}
}

func TestSpeedBar(t *testing.T) {
	if got := SpeedBar(0, 5, 10, 0xffffff); got != strings.Repeat("░", 10) {
		t.Errorf("empty bar: %q", got)
	}
	if got := SpeedBar(10, 5, 4, 0xffffff); strings.Contains(got, "░") {
		t.Errorf("overfull bar should be clamped full: %q", got)
	}
	if SpeedBar(1, 5, 0, 0) != "" {
		t.Error("zero width bar should be empty")
	}
}

func TestSceneCreateBody(t *testing.T) {
	s := NewScene(40, 20, ThemeDark, 1)
	if err := s.CreateBody(0, control.Visual{Name: "Earth", Radius: 2, Distance: 45}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateBody(0, control.Visual{Name: "Earth", Radius: 2, Distance: 45}); !errors.Is(err, ErrDuplicateBody) {
		t.Errorf("expected ErrDuplicateBody, got %v", err)
	}
	if err := s.CreateBody(1, control.Visual{Name: "Ghost"}); err == nil {
		t.Error("expected error for zero radius")
	}
}

func TestSceneRenderDrawsBodyAtProjection(t *testing.T) {
	s := NewScene(80, 40, ThemeDark, 1)
	s.SetShowOrbits(false)
	if err := s.CreateBody(orbit.CentralID, control.Visual{Name: "Sun", Radius: 8, Color: 0xffff00, Central: true}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateBody(0, control.Visual{Name: "Earth", Radius: 2, Distance: 45, Color: 0x6b93d6}); err != nil {
		t.Fatal(err)
	}
	s.SetPosition(0, geom.Vec3{45, 0, 0})

	pose := geom.Pose{Position: geom.Vec3{0, 80, 200}, Target: geom.Origin}
	s.Render(pose)

	x, y, _, ok := s.Projection().Project(pose, geom.Vec3{45, 0, 0})
	if !ok {
		t.Fatal("earth should be in front of the camera")
	}
	px, py := s.Pixel(x, y)
	if got := s.Canvas().Colors[py/4][px/2]; got != 0x6b93d6 {
		t.Errorf("expected earth color at its projection, got %x", got)
	}

	sx, sy := s.Pixel(0, 0)
	if got := s.Canvas().Colors[sy/4][sx/2]; got != 0xffff00 {
		t.Errorf("expected sun color at the view center, got %x", got)
	}
	if s.Pose() != pose {
		t.Error("scene should remember the rendered pose")
	}
}

func TestSceneInvalidPoseClears(t *testing.T) {
	s := NewScene(10, 5, ThemeDark, 1)
	s.Render(geom.Pose{})
	if strings.Trim(s.Canvas().String(), "⠀\n") != "" {
		t.Error("invalid pose should leave the canvas empty")
	}
}

func TestCellToNDC(t *testing.T) {
	s := NewScene(10, 10, ThemeDark, 1)
	x, y := s.CellToNDC(0, 0)
	if math.Abs(x+0.9) > 1e-9 || math.Abs(y-0.9) > 1e-9 {
		t.Errorf("top-left cell: got (%v, %v)", x, y)
	}
	x, y = s.CellToNDC(9, 9)
	if x < 0.89 || y > -0.89 {
		t.Errorf("bottom-right cell: got (%v, %v)", x, y)
	}
}

func TestSceneDrivenBySimulation(t *testing.T) {
	s := NewScene(60, 30, ThemeDark, 1)
	sim, err := control.New(control.DefaultConfig(), s, nil)
	if err != nil {
		t.Fatal(err)
	}
	sim.Tick(0.016)
	if strings.Trim(s.Canvas().String(), "⠀\n") == "" {
		t.Error("expected something drawn after a tick")
	}
	if s.Pose() != sim.Pose() {
		t.Error("scene should render the simulation's camera pose")
	}
}
