package viz

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/orbit"
)

var ErrDuplicateBody = errors.New("body already in scene")

const (
	starCount    = 400
	starSpread   = 1000.0
	ringSegments = 96
	glowScale    = 1.5
)

type sceneBody struct {
	id       orbit.ID
	visual   control.Visual
	position geom.Vec3
	rotation float64
}

// Scene keeps the retained render state for every body and rasterizes it to a
// braille canvas on Render.
type Scene struct {
	canvas     *Canvas
	proj       geom.Projection
	theme      Theme
	bodies     map[orbit.ID]*sceneBody
	order      []orbit.ID
	stars      []geom.Vec3
	backdrop   float64
	showOrbits bool
	pose       geom.Pose
}

// NewScene sizes the canvas in terminal cells. seed fixes the star field.
func NewScene(width, height int, theme Theme, seed int64) *Scene {
	rng := rand.New(rand.NewSource(seed))
	stars := make([]geom.Vec3, starCount)
	for i := range stars {
		stars[i] = geom.Vec3{
			(rng.Float64() - 0.5) * starSpread,
			(rng.Float64() - 0.5) * starSpread,
			(rng.Float64() - 0.5) * starSpread,
		}
	}
	s := &Scene{
		theme:      theme,
		bodies:     make(map[orbit.ID]*sceneBody),
		stars:      stars,
		showOrbits: true,
	}
	s.Resize(width, height)
	return s
}

// Resize reallocates the canvas and returns the new viewport in sub-pixels,
// which is what the picker's projection must be sized to.
func (s *Scene) Resize(width, height int) (int, int) {
	s.canvas = NewCanvas(width, height)
	pw, ph := s.canvas.PixelSize()
	s.proj = geom.NewProjection(1).WithViewport(float64(pw), float64(ph))
	return pw, ph
}

func (s *Scene) SetTheme(t Theme)        { s.theme = t }
func (s *Scene) Theme() Theme            { return s.theme }
func (s *Scene) SetShowOrbits(show bool) { s.showOrbits = show }
func (s *Scene) ShowOrbits() bool        { return s.showOrbits }
func (s *Scene) Canvas() *Canvas         { return s.canvas }
func (s *Scene) Projection() geom.Projection {
	return s.proj
}

func (s *Scene) CreateBody(id orbit.ID, v control.Visual) error {
	if _, ok := s.bodies[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateBody, id)
	}
	if v.Radius <= 0 {
		return fmt.Errorf("body %q: radius must be positive", v.Name)
	}
	b := &sceneBody{id: id, visual: v}
	if !v.Central {
		b.position = orbit.PositionAt(v.Distance, 0)
	}
	s.bodies[id] = b
	s.order = append(s.order, id)
	return nil
}

func (s *Scene) SetPosition(id orbit.ID, p geom.Vec3) {
	if b, ok := s.bodies[id]; ok {
		b.position = p
	}
}

func (s *Scene) SetRotation(id orbit.ID, y float64) {
	if b, ok := s.bodies[id]; ok {
		b.rotation = y
	}
}

func (s *Scene) SetBackdrop(rot float64) { s.backdrop = rot }

// Render rasterizes the scene as seen from pose.
func (s *Scene) Render(pose geom.Pose) {
	s.pose = pose
	s.canvas.Clear()
	if !pose.Valid() {
		return
	}

	f := s.proj.Frustum(pose)
	s.drawStars(f)
	if s.showOrbits {
		for _, id := range s.order {
			if b := s.bodies[id]; !b.visual.Central {
				s.drawRing(f, b.visual.Distance)
			}
		}
	}

	type drawable struct {
		b     *sceneBody
		depth float64
	}
	visible := make([]drawable, 0, len(s.order))
	for _, id := range s.order {
		b := s.bodies[id]
		if _, _, depth, ok := f.Project(b.position); ok {
			visible = append(visible, drawable{b, depth})
		}
	}
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].depth > visible[j].depth })
	for _, d := range visible {
		s.drawBody(f, d.b)
	}
}

// Pixel maps normalized device coordinates to canvas sub-pixels.
func (s *Scene) Pixel(ndcX, ndcY float64) (int, int) {
	pw, ph := s.canvas.PixelSize()
	return int(math.Floor((ndcX + 1) / 2 * float64(pw))), int(math.Floor((1 - ndcY) / 2 * float64(ph)))
}

// CellToNDC maps the center of a terminal cell to normalized device
// coordinates, y up.
func (s *Scene) CellToNDC(col, row int) (float64, float64) {
	x := (float64(col)+0.5)/float64(s.canvas.Width)*2 - 1
	y := 1 - (float64(row)+0.5)/float64(s.canvas.Height)*2
	return x, y
}

func (s *Scene) View() string {
	return s.canvas.Render(s.theme.Muted)
}

func (s *Scene) drawStars(f geom.Frustum) {
	for _, st := range s.stars {
		x, y, _, ok := f.Project(geom.RotateY(st, s.backdrop))
		if ok && geom.InViewport(x, y) {
			px, py := s.Pixel(x, y)
			s.canvas.SetColor(px, py, s.theme.Star)
		}
	}
}

func (s *Scene) drawRing(f geom.Frustum, distance float64) {
	var prevX, prevY int
	prevOK := false
	for i := 0; i <= ringSegments; i++ {
		a := 2 * math.Pi * float64(i) / ringSegments
		x, y, _, ok := f.Project(orbit.PositionAt(distance, a))
		ok = ok && math.Abs(x) < 2 && math.Abs(y) < 2
		var px, py int
		if ok {
			px, py = s.Pixel(x, y)
			if prevOK {
				s.canvas.DrawLine(prevX, prevY, px, py, s.theme.Orbit)
			}
		}
		prevX, prevY, prevOK = px, py, ok
	}
}

func (s *Scene) drawBody(f geom.Frustum, b *sceneBody) {
	x, y, depth, _ := f.Project(b.position)
	_, ph := s.canvas.PixelSize()
	r := f.ScreenRadius(b.visual.Radius, depth) * float64(ph) / 2
	px, py := s.Pixel(x, y)

	if b.visual.Central {
		s.canvas.FillCircle(px, py, int(r*glowScale), s.theme.Glow)
	}
	s.canvas.FillCircle(px, py, int(r), b.visual.Color)

	// A surface mark that crosses the visible face as the body spins.
	if r >= 3 {
		if sin, cos := math.Sincos(b.rotation); sin > 0 {
			s.canvas.Unset(px+int(cos*r*0.6), py)
		}
	}
}

// Pose is the camera pose of the last Render.
func (s *Scene) Pose() geom.Pose { return s.pose }
