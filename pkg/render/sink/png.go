package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/matzehuels/mumplot/pkg/fonts"
	"github.com/matzehuels/mumplot/pkg/geometry"
	"github.com/matzehuels/mumplot/pkg/render"
)

var black = color.NRGBA{A: 0xff}

// RenderPNG rasterizes the figure in-process and returns the encoded PNG.
func RenderPNG(f *render.Figure) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	fr := render.NewFrame(f)

	dc := gg.NewContext(int(fr.Width), int(fr.Height))
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	face, err := fonts.Face(fr.FontSize())
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	dc.SetFont(face)

	dc.Push()
	dc.ClipRect(fr.Left, fr.Top, fr.Right-fr.Left, fr.Bottom-fr.Top)
	if err := drawBaselines(dc, f, fr); err != nil {
		return nil, err
	}
	if err := drawRibbons(dc, f, fr); err != nil {
		return nil, err
	}
	dc.ResetClip()
	dc.Pop()

	if err := drawAxes(dc, f, fr); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawBaselines(dc *gg.Context, f *render.Figure, fr render.Frame) error {
	dc.SetLineWidth(fr.BaselineWidth())
	for _, b := range f.Baselines() {
		y := fr.Y(float64(b.Track))
		dc.SetColor(b.Color)
		dc.DrawLine(fr.X(b.X0), y, fr.X(b.X1), y)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("baseline %d: %w", b.Track, err)
		}
	}
	return nil
}

// drawRibbons fills every ribbon at the style's alpha. Overlapping ribbons
// compound their opacity.
func drawRibbons(dc *gg.Context, f *render.Figure, fr render.Frame) error {
	fills := [2]color.NRGBA{
		geometry.Normal:   f.Style.Fill(geometry.Normal),
		geometry.Inverted: f.Style.Fill(geometry.Inverted),
	}
	for i, r := range f.Ribbons {
		dc.SetColor(fills[r.Tag])
		for j, p := range r.Outline {
			if j == 0 {
				dc.MoveTo(fr.X(p.X), fr.Y(p.Y))
			} else {
				dc.LineTo(fr.X(p.X), fr.Y(p.Y))
			}
		}
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("ribbon %d: %w", i, err)
		}
	}
	return nil
}

func drawAxes(dc *gg.Context, f *render.Figure, fr render.Frame) error {
	font := fr.FontSize()
	pad := fr.Pad()
	tick := fr.TickLength()

	dc.SetColor(black)
	dc.SetLineWidth(fr.AxisWidth())
	dc.DrawRectangle(fr.Left, fr.Top, fr.Right-fr.Left, fr.Bottom-fr.Top)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("axes: %w", err)
	}

	for _, t := range render.XTicks(fr.MaxX, 6) {
		x := fr.X(t.Value)
		dc.DrawLine(x, fr.Bottom, x, fr.Bottom+tick)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("x tick: %w", err)
		}
		dc.DrawStringAnchored(t.Label, x, fr.Bottom+tick+pad, 0.5, 1)
	}
	dc.DrawStringAnchored(render.XLabel, (fr.Left+fr.Right)/2, fr.Height-pad-font, 0.5, 1)

	for t := 0; t < f.Tracks(); t++ {
		if label := f.TrackLabel(t); label != "" {
			dc.DrawStringAnchored(label, fr.Left-pad, fr.Y(float64(t)), 1, 0.35)
		}
	}

	return drawVertical(dc, render.YLabel, pad+font/2, (fr.Top+fr.Bottom)/2)
}

// drawVertical draws s rotated a quarter turn counter-clockwise, centered
// on (cx, cy). Text is laid out horizontally on a scratch canvas and rotated
// as an image.
func drawVertical(dc *gg.Context, s string, cx, cy float64) error {
	w, h := dc.MeasureString(s)
	if w <= 0 || h <= 0 {
		return nil
	}
	scratch := gg.NewContext(int(w)+2, int(h)+2)
	defer scratch.Close()
	scratch.SetFont(dc.Font())
	scratch.SetColor(black)
	scratch.DrawStringAnchored(s, 1, 1, 0, 1)

	rot := rotateCCW(scratch.Image())
	b := rot.Bounds()
	dc.DrawImage(gg.ImageBufFromImage(rot), cx-float64(b.Dx())/2, cy-float64(b.Dy())/2)
	return nil
}

func rotateCCW(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(y-b.Min.Y, b.Max.X-1-x, src.At(x, y))
		}
	}
	return dst
}
