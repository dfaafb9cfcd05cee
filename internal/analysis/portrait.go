package analysis

import (
	"strings"

	"github.com/san-kum/orrery/internal/geom"
)

type Point struct{ X, Y float64 }

// Portrait is a top-down view of trajectories: world X across, world Z down.
type Portrait struct {
	Points []Point
}

func NewPortrait(trajectories ...[]geom.Vec3) *Portrait {
	p := &Portrait{}
	for _, tr := range trajectories {
		for _, v := range tr {
			p.Points = append(p.Points, Point{X: v.X(), Y: v.Z()})
		}
	}
	return p
}

// PortraitToASCII plots the portrait with the origin marked when visible.
func PortraitToASCII(portrait *Portrait, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	cell := func(x, y float64) (int, int, bool) {
		col := int((x - minX) / rangeX * float64(width-1))
		row := int((y - minY) / rangeY * float64(height-1))
		return row, col, row >= 0 && row < height && col >= 0 && col < width
	}

	for _, p := range portrait.Points {
		if row, col, ok := cell(p.X, p.Y); ok {
			canvas[row][col] = '•'
		}
	}
	if minX <= 0 && maxX >= 0 && minY <= 0 && maxY >= 0 {
		if row, col, ok := cell(0, 0); ok {
			canvas[row][col] = '☉'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
