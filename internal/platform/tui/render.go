package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Palette maps core colors to lipgloss styles.
type Palette map[core.Color]lipgloss.Style

// ansiCodes holds the terminal color for each core color.
var ansiCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// NewPalette builds a palette from a renderer. SSH sessions pass their own
// renderer so colors follow the client's terminal profile.
func NewPalette(r *lipgloss.Renderer) Palette {
	p := Palette{core.ColorDefault: r.NewStyle()}
	for c, code := range ansiCodes {
		p[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

var defaultPalette = NewPalette(lipgloss.DefaultRenderer())

func (p Palette) style(c core.Color) lipgloss.Style {
	if s, ok := p[c]; ok {
		return s
	}
	return p[core.ColorDefault]
}

// Render converts a Screen buffer to a styled string.
// Adjacent cells with the same color share one styled run.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

// replaceLastLine swaps the final line of a rendered view for footer.
func replaceLastLine(view, footer string) string {
	i := strings.LastIndexByte(view, '\n')
	if i < 0 {
		return footer
	}
	return view[:i+1] + footer
}
