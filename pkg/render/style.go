package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/matzehuels/mumplot/pkg/geometry"
)

// Default style values.
const (
	DefaultColor          = "#00A2FF"
	DefaultInversionColor = "green"
	DefaultAlpha          = 0.5
	DefaultDPI            = 500
	DefaultWidth          = 6.4 // inches
	DefaultHeight         = 4.8 // inches
)

// Style holds the styling shared by every ribbon of one render pass.
type Style struct {
	Color          string  `json:"color"`
	InversionColor string  `json:"inversion_color"`
	Alpha          float64 `json:"alpha"`
	DPI            int     `json:"dpi"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
}

// DefaultStyle returns the standard plot style.
func DefaultStyle() Style {
	return Style{
		Color:          DefaultColor,
		InversionColor: DefaultInversionColor,
		Alpha:          DefaultAlpha,
		DPI:            DefaultDPI,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
	}
}

// Validate reports the first invalid field.
func (s Style) Validate() error {
	if _, err := ParseColor(s.Color); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	if _, err := ParseColor(s.InversionColor); err != nil {
		return fmt.Errorf("inversion color: %w", err)
	}
	if s.Alpha < 0 || s.Alpha > 1 {
		return fmt.Errorf("alpha %v outside [0, 1]", s.Alpha)
	}
	if s.DPI <= 0 {
		return fmt.Errorf("dpi %d must be positive", s.DPI)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("figure size %vx%v must be positive", s.Width, s.Height)
	}
	return nil
}

// Fill returns the ribbon fill for tag, with the style's alpha applied.
// Colors are assumed valid; call Validate first.
func (s Style) Fill(tag geometry.Tag) color.NRGBA {
	name := s.Color
	if tag == geometry.Inverted {
		name = s.InversionColor
	}
	c, _ := ParseColor(name)
	return WithAlpha(c, s.Alpha)
}

// Pixels returns the canvas size in pixels.
func (s Style) Pixels() (w, h int) {
	return int(math.Round(s.Width * float64(s.DPI))), int(math.Round(s.Height * float64(s.DPI)))
}

// WithAlpha scales c's opacity by a.
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}

// shorthand colors accepted alongside CSS names.
var shorthand = map[string]string{
	"b": "#0000ff", "g": "#008000", "r": "#ff0000", "c": "#00bfbf",
	"m": "#bf00bf", "y": "#bfbf00", "k": "#000000", "w": "#ffffff",
}

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa", a CSS color name,
// a single-letter shorthand (b, g, r, c, m, y, k, w) or a cycle entry "C0".."C9".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := shorthand[s]; ok {
		s = v
	}
	if len(s) == 2 && s[0] == 'c' && s[1] >= '0' && s[1] <= '9' {
		s = Cycle[s[1]-'0']
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
}

func parseHex(h string) (color.NRGBA, error) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", "#"+h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", "#"+h[:6])
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex formats c as "#rrggbb", dropping alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Cycle is the baseline color cycle (tab10).
var Cycle = [10]string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}
