package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/viz"
)

const defaultDot = "#cccccc"

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot in its
// cell's color.
func CanvasToSVG(canvas *viz.Canvas, scale float64, background string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			fill := defaultDot
			if c := canvas.Colors[row][col]; c != viz.NoColor {
				fill = string(viz.HexColor(c))
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill)
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// Trajectory is one body's path in world space.
type Trajectory struct {
	Name   string
	Color  uint32
	Points []geom.Vec3
}

// TrajectoryToSVG draws trajectories top-down (world X right, world Z down)
// on a shared scale with the origin at the center.
func TrajectoryToSVG(trajectories []Trajectory, width, height int, background string) string {
	extent := 0.0
	for _, tr := range trajectories {
		for _, p := range tr.Points {
			extent = max(extent, abs(p.X()), abs(p.Z()))
		}
	}
	if extent == 0 {
		return ""
	}
	extent *= 1.1

	size := float64(min(width, height))
	cx, cy := float64(width)/2, float64(height)/2
	scale := size / 2 / extent

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<circle cx="%.1f" cy="%.1f" r="4" fill="#ffff00"/>
`, width, height, width, height, background, cx, cy)

	for _, tr := range trajectories {
		if len(tr.Points) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, viz.HexColor(tr.Color))
		for i, p := range tr.Points {
			x := cx + p.X()*scale
			y := cy + p.Z()*scale
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")

		last := tr.Points[len(tr.Points)-1]
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>%s</title></circle>
`, cx+last.X()*scale, cy+last.Z()*scale, viz.HexColor(tr.Color), tr.Name)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteFile writes svg to path.
func WriteFile(path, svg string) error {
	if svg == "" {
		return fmt.Errorf("nothing to export to %s", path)
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
