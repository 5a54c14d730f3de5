package render

import (
	"math"
	"strconv"
)

// Type metrics, in points.
const (
	fontPt      = 10.0
	tickPt      = 3.5
	padPt       = 4.0
	axisLinePt  = 0.8
	charWidthEm = 0.6 // average advance of the label font
)

// Frame maps data coordinates onto the output canvas.
//
// The plot area spans x in [0, MaxX] left to right and tracks top to bottom,
// track 0 on the top edge and the last track on the bottom edge.
type Frame struct {
	Width, Height            float64 // canvas, pixels
	Left, Right, Top, Bottom float64 // plot area edges, pixels
	MaxX                     float64
	Tracks                   int
	DPI                      int
}

// NewFrame sizes the canvas from the figure style and reserves margins for
// tick labels and axis titles.
func NewFrame(f *Figure) Frame {
	w, h := f.Style.Pixels()
	fr := Frame{
		Width:  float64(w),
		Height: float64(h),
		MaxX:   float64(max(f.MaxLength(), 1)),
		Tracks: f.Tracks(),
		DPI:    f.Style.DPI,
	}

	font := fr.FontSize()
	pad := fr.Pt(padPt)

	widest := 0
	for t := 0; t < f.Tracks(); t++ {
		widest = max(widest, len([]rune(f.TrackLabel(t))))
	}
	lastTick := ""
	if ticks := XTicks(fr.MaxX, 6); len(ticks) > 0 {
		lastTick = ticks[len(ticks)-1].Label
	}

	fr.Left = pad + font + pad + TextWidth(widest, font) + pad
	fr.Bottom = fr.Height - (pad + fr.Pt(tickPt) + font + pad + font + pad)
	fr.Top = pad + font/2
	fr.Right = fr.Width - max(pad+font/2, TextWidth(len(lastTick), font)/2+pad)
	return fr
}

// FontSize returns the label font size in pixels.
func (fr Frame) FontSize() float64 { return fr.Pt(fontPt) }

// Pad returns the spacing between labels and the plot area, in pixels.
func (fr Frame) Pad() float64 { return fr.Pt(padPt) }

// TickLength returns the x tick mark length in pixels.
func (fr Frame) TickLength() float64 { return fr.Pt(tickPt) }

// AxisWidth returns the axes frame stroke width in pixels.
func (fr Frame) AxisWidth() float64 { return fr.Pt(axisLinePt) }

// BaselineWidth returns the track baseline stroke width in pixels.
func (fr Frame) BaselineWidth() float64 { return fr.Pt(baselinePt) }

// Pt converts points to pixels.
func (fr Frame) Pt(pt float64) float64 { return pt * float64(fr.DPI) / 72 }

// X maps a base-pair coordinate to a pixel column.
func (fr Frame) X(x float64) float64 {
	return fr.Left + x/fr.MaxX*(fr.Right-fr.Left)
}

// Y maps a track index to a pixel row. A lone track sits mid-height.
func (fr Frame) Y(track float64) float64 {
	if fr.Tracks < 2 {
		return (fr.Top + fr.Bottom) / 2
	}
	return fr.Top + track/float64(fr.Tracks-1)*(fr.Bottom-fr.Top)
}

// TextWidth estimates the rendered width of n characters.
func TextWidth(n int, font float64) float64 {
	return float64(n) * font * charWidthEm
}

// Tick is one labeled x-axis position.
type Tick struct {
	Value float64
	Label string
}

// XTicks returns evenly spaced ticks over [0, maxX] with a "nice" step
// (1, 2, 2.5 or 5 times a power of ten) giving roughly target intervals.
func XTicks(maxX float64, target int) []Tick {
	if maxX <= 0 || target < 1 {
		return []Tick{{0, "0"}}
	}
	step := niceStep(maxX / float64(target))
	var out []Tick
	for i := 0; ; i++ {
		v := float64(i) * step
		if v > maxX*(1+1e-9) {
			break
		}
		out = append(out, Tick{Value: v, Label: FormatPosition(v)})
	}
	return out
}

func niceStep(raw float64) float64 {
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}

// FormatPosition formats a base-pair coordinate compactly: 2500000 → "2.5M".
func FormatPosition(v float64) string {
	units := []struct {
		div    float64
		suffix string
	}{{1e9, "G"}, {1e6, "M"}, {1e3, "k"}}
	for _, u := range units {
		if math.Abs(v) >= u.div {
			return strconv.FormatFloat(roundTo(v/u.div, 3), 'f', -1, 64) + u.suffix
		}
	}
	return strconv.FormatFloat(roundTo(v, 3), 'f', -1, 64)
}

func roundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
