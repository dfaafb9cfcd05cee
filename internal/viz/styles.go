package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from one theme.
type Styles struct {
	Theme Theme

	Panel      lipgloss.Style
	Title      lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Subtle     lipgloss.Style
	Selected   lipgloss.Style
	Running    lipgloss.Style
	Paused     lipgloss.Style
	KeyHint    lipgloss.Style
	InfoCard   lipgloss.Style
	InfoFact   lipgloss.Style
	ErrorBox   lipgloss.Style
	Background lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		Label: lipgloss.NewStyle().
			Foreground(t.Muted),
		Value: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text),
		Subtle: lipgloss.NewStyle().
			Foreground(t.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		Running: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Success),
		Paused: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Warning),
		KeyHint: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
		InfoCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(0, 1),
		InfoFact: lipgloss.NewStyle().
			Foreground(t.Text).
			Italic(true),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#ff4444")).
			Foreground(lipgloss.Color("#ff4444")).
			Padding(1, 2),
		Background: lipgloss.NewStyle().
			Background(t.Background),
	}
}

// GradientText creates a gradient effect on text using color interpolation
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	if len(text) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(startColor))
	er, eg, eb := parseHex(string(endColor))

	var result strings.Builder
	n := len([]rune(text))

	i := 0
	for _, c := range text {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(r, g, b)))
		result.WriteString(style.Render(string(c)))
		i++
	}

	return result.String()
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// SpeedBar renders value/limit as a bar in the body's color.
func SpeedBar(value, limit float64, width int, color uint32) string {
	if width <= 0 {
		return ""
	}
	percent := 0.0
	if limit > 0 {
		percent = value / limit
	}
	filled := int(percent*float64(width) + 0.5)
	filled = min(max(filled, 0), width)

	bar := ""
	if filled > 0 {
		bar = lipgloss.NewStyle().Foreground(HexColor(color)).Render(strings.Repeat("█", filled))
	}
	return bar + strings.Repeat("░", width-filled)
}

// Swatch is a two-cell block in c.
func Swatch(c uint32) string {
	return lipgloss.NewStyle().Foreground(HexColor(c)).Render("██")
}

// Separator is a decorative rule.
func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}

// HexColor converts a 0xRRGGBB value to a lipgloss color.
func HexColor(c uint32) lipgloss.Color {
	return lipgloss.Color(hexColor(int(c>>16&0xff), int(c>>8&0xff), int(c&0xff)))
}

// ColorValue converts a #rrggbb lipgloss color to 0xRRGGBB.
func ColorValue(c lipgloss.Color) uint32 {
	r, g, b := parseHex(string(c))
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	r = parseHexByte(hex[1:3])
	g = parseHexByte(hex[3:5])
	b = parseHexByte(hex[5:7])
	return
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = min(max(v, 0), 255)
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
