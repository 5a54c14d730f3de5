// Package fonts provides the font used for axis labels.
//
// The font data ships inside the binary (Go Regular from golang.org/x/image),
// so rendering never depends on fonts installed on the host.
package fonts

import (
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// FallbackFontFamily is the SVG font-family: the embedded font first, then
// fallbacks for viewers without it.
const FallbackFontFamily = `'Go', 'DejaVu Sans', Helvetica, Arial, sans-serif`

var (
	source     *text.FontSource
	sourceErr  error
	sourceOnce sync.Once
)

// Face returns the label font at size pixels. The parsed font is shared.
func Face(size float64) (text.Face, error) {
	sourceOnce.Do(func() {
		source, sourceErr = text.NewFontSource(goregular.TTF)
	})
	if sourceErr != nil {
		return nil, sourceErr
	}
	return source.Face(size), nil
}
