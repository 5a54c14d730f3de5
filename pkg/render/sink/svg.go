package sink

import (
	"bytes"
	"fmt"
	"html"
	"image/color"

	"github.com/matzehuels/mumplot/pkg/fonts"
	"github.com/matzehuels/mumplot/pkg/geometry"
	"github.com/matzehuels/mumplot/pkg/render"
)

// RenderSVG writes the figure as a standalone SVG document using the same
// frame as [RenderPNG].
func RenderSVG(f *render.Figure) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	fr := render.NewFrame(f)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		fr.Width, fr.Height, fr.Width, fr.Height)
	fmt.Fprintf(&buf, `  <defs><clipPath id="plot-area"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath></defs>`+"\n",
		fr.Left, fr.Top, fr.Right-fr.Left, fr.Bottom-fr.Top)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")

	buf.WriteString(`  <g clip-path="url(#plot-area)">` + "\n")
	renderSVGBaselines(&buf, f, fr)
	renderSVGRibbons(&buf, f, fr)
	buf.WriteString("  </g>\n")

	renderSVGAxes(&buf, f, fr)
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderSVGBaselines(buf *bytes.Buffer, f *render.Figure, fr render.Frame) {
	buf.WriteString(`    <g class="baselines">` + "\n")
	for _, b := range f.Baselines() {
		y := fr.Y(float64(b.Track))
		fmt.Fprintf(buf, `      <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>`+"\n",
			fr.X(b.X0), y, fr.X(b.X1), y, render.Hex(b.Color), opacity(b.Color), fr.BaselineWidth())
	}
	buf.WriteString("    </g>\n")
}

// renderSVGRibbons paints ribbons in figure order, each with its own fill,
// so overlaps composite the same way as in the PNG.
func renderSVGRibbons(buf *bytes.Buffer, f *render.Figure, fr render.Frame) {
	fills := map[geometry.Tag]string{}
	for _, tag := range []geometry.Tag{geometry.Normal, geometry.Inverted} {
		c := f.Style.Fill(tag)
		fills[tag] = fmt.Sprintf(`fill="%s" fill-opacity="%.3f"`, render.Hex(c), opacity(c))
	}

	buf.WriteString(`    <g class="ribbons" stroke="none">` + "\n")
	for _, r := range f.Ribbons {
		fmt.Fprintf(buf, `      <path class="%s" %s d="`, r.Tag, fills[r.Tag])
		for j, p := range r.Outline {
			cmd := 'L'
			if j == 0 {
				cmd = 'M'
			}
			fmt.Fprintf(buf, "%c%.2f,%.2f ", cmd, fr.X(p.X), fr.Y(p.Y))
		}
		buf.WriteString(`Z"/>` + "\n")
	}
	buf.WriteString("    </g>\n")
}

func renderSVGAxes(buf *bytes.Buffer, f *render.Figure, fr render.Frame) {
	font := fr.FontSize()
	pad := fr.Pad()
	tick := fr.TickLength()

	fmt.Fprintf(buf, `  <g class="axes" font-family="%s" font-size="%.2f" fill="black">`+"\n",
		html.EscapeString(fonts.FallbackFontFamily), font)
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="black" stroke-width="%.2f"/>`+"\n",
		fr.Left, fr.Top, fr.Right-fr.Left, fr.Bottom-fr.Top, fr.AxisWidth())

	for _, t := range render.XTicks(fr.MaxX, 6) {
		x := fr.X(t.Value)
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" stroke-width="%.2f"/>`+"\n",
			x, fr.Bottom, x, fr.Bottom+tick, fr.AxisWidth())
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="hanging">%s</text>`+"\n",
			x, fr.Bottom+tick+pad, html.EscapeString(t.Label))
	}
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="hanging">%s</text>`+"\n",
		(fr.Left+fr.Right)/2, fr.Height-pad-font, render.XLabel)

	for t := 0; t < f.Tracks(); t++ {
		label := f.TrackLabel(t)
		if label == "" {
			continue
		}
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="end" dominant-baseline="central">%s</text>`+"\n",
			fr.Left-pad, fr.Y(float64(t)), html.EscapeString(label))
	}

	cx, cy := pad+font/2, (fr.Top+fr.Bottom)/2
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" transform="rotate(-90 %.2f %.2f)">%s</text>`+"\n",
		cx, cy, cx, cy, render.YLabel)
	buf.WriteString("  </g>\n")
}

func opacity(c color.NRGBA) float64 {
	return float64(c.A) / 255
}
