package core

import "strings"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette available to sprites and overlays.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorNames = map[Color]string{
	ColorDefault:       "default",
	ColorRed:           "red",
	ColorGreen:         "green",
	ColorYellow:        "yellow",
	ColorBlue:          "blue",
	ColorMagenta:       "magenta",
	ColorCyan:          "cyan",
	ColorWhite:         "white",
	ColorBrightRed:     "bright_red",
	ColorBrightGreen:   "bright_green",
	ColorBrightYellow:  "bright_yellow",
	ColorBrightBlue:    "bright_blue",
	ColorBrightMagenta: "bright_magenta",
	ColorBrightCyan:    "bright_cyan",
	ColorBrightWhite:   "bright_white",
	ColorOrange:        "orange",
	ColorGray:          "gray",
}

// String returns the config name of the color.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColor converts a config color name (case-insensitive) to a Color.
func ParseColor(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ColorDefault, true
	}
	for c, n := range colorNames {
		if n == name {
			return c, true
		}
	}
	return ColorDefault, false
}
