package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/matzehuels/mumplot/pkg/geometry"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#00A2FF", color.NRGBA{0x00, 0xa2, 0xff, 0xff}, false},
		{"#0af", color.NRGBA{0x00, 0xaa, 0xff, 0xff}, false},
		{"#00a2ff80", color.NRGBA{0x00, 0xa2, 0xff, 0x80}, false},
		{"green", color.NRGBA{0x00, 0x80, 0x00, 0xff}, false},
		{"Red", color.NRGBA{0xff, 0x00, 0x00, 0xff}, false},
		{"k", color.NRGBA{0, 0, 0, 0xff}, false},
		{"C1", color.NRGBA{0xff, 0x7f, 0x0e, 0xff}, false},
		{"#12", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
		{"notacolor", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStyleValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Style)
		wantErr bool
	}{
		{"default", func(*Style) {}, false},
		{"bad color", func(s *Style) { s.Color = "nope" }, true},
		{"bad inversion color", func(s *Style) { s.InversionColor = "#1" }, true},
		{"alpha above one", func(s *Style) { s.Alpha = 1.5 }, true},
		{"negative alpha", func(s *Style) { s.Alpha = -0.1 }, true},
		{"zero dpi", func(s *Style) { s.DPI = 0 }, true},
		{"zero width", func(s *Style) { s.Width = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStyle()
			tt.modify(&s)
			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStyleFill(t *testing.T) {
	s := DefaultStyle()
	normal := s.Fill(geometry.Normal)
	if Hex(normal) != "#00a2ff" || normal.A != 128 {
		t.Errorf("Fill(normal) = %v", normal)
	}
	inv := s.Fill(geometry.Inverted)
	if Hex(inv) != "#008000" {
		t.Errorf("Fill(inverted) = %v", inv)
	}
}

func TestStylePixels(t *testing.T) {
	w, h := DefaultStyle().Pixels()
	if w != 3200 || h != 2400 {
		t.Errorf("Pixels() = %dx%d, want 3200x2400", w, h)
	}
}

func testFigure() *Figure {
	s := DefaultStyle()
	s.DPI = 100
	return &Figure{
		Lengths: []int{1000, 2000, 1500},
		Names:   []string{"a", "b", "c"},
		Style:   s,
	}
}

func TestFrameMapping(t *testing.T) {
	fr := NewFrame(testFigure())

	if fr.Width != 640 || fr.Height != 480 {
		t.Fatalf("canvas = %vx%v, want 640x480", fr.Width, fr.Height)
	}
	if fr.Left <= 0 || fr.Right >= fr.Width || fr.Top <= 0 || fr.Bottom >= fr.Height {
		t.Errorf("plot area %v,%v,%v,%v should sit inside the canvas", fr.Left, fr.Right, fr.Top, fr.Bottom)
	}
	if fr.X(0) != fr.Left || math.Abs(fr.X(2000)-fr.Right) > 1e-9 {
		t.Errorf("x range maps to [%v, %v], want [%v, %v]", fr.X(0), fr.X(2000), fr.Left, fr.Right)
	}
	if fr.Y(0) != fr.Top || math.Abs(fr.Y(2)-fr.Bottom) > 1e-9 {
		t.Errorf("track 0 at %v and last at %v; want top %v bottom %v", fr.Y(0), fr.Y(2), fr.Top, fr.Bottom)
	}
	if fr.Y(1) <= fr.Y(0) {
		t.Error("tracks should descend the canvas")
	}
}

func TestFrameSingleTrack(t *testing.T) {
	f := testFigure()
	f.Lengths = []int{500}
	f.Names = nil
	fr := NewFrame(f)
	if got, want := fr.Y(0), (fr.Top+fr.Bottom)/2; got != want {
		t.Errorf("Y(0) = %v, want %v", got, want)
	}
}

func TestFrameEmptyFigure(t *testing.T) {
	f := testFigure()
	f.Lengths = nil
	f.Names = nil
	fr := NewFrame(f)
	if fr.MaxX != 1 {
		t.Errorf("MaxX = %v, want 1 for empty figure", fr.MaxX)
	}
}

func TestXTicks(t *testing.T) {
	ticks := XTicks(3_000_000, 6)
	if len(ticks) != 7 {
		t.Fatalf("got %d ticks, want 7: %v", len(ticks), ticks)
	}
	if ticks[1].Value != 500_000 || ticks[1].Label != "500k" {
		t.Errorf("tick 1 = %+v", ticks[1])
	}
	if ticks[6].Label != "3M" {
		t.Errorf("last tick = %+v", ticks[6])
	}

	if got := XTicks(0, 6); len(got) != 1 || got[0].Label != "0" {
		t.Errorf("XTicks(0) = %v", got)
	}
}

func TestFormatPosition(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{750, "750"},
		{2500, "2.5k"},
		{2_500_000, "2.5M"},
		{1_200_000_000, "1.2G"},
	}
	for _, tt := range tests {
		if got := FormatPosition(tt.v); got != tt.want {
			t.Errorf("FormatPosition(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFigureValidate(t *testing.T) {
	f := testFigure()
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	f.Names = []string{"a"}
	if err := f.Validate(); err == nil {
		t.Error("Validate() should reject mismatched names")
	}

	f = testFigure()
	f.Offsets = geometry.Offsets{1}
	if err := f.Validate(); err == nil {
		t.Error("Validate() should reject mismatched offsets")
	}
}

func TestBaselines(t *testing.T) {
	f := testFigure()
	f.Offsets = geometry.Center(f.Lengths, true)
	bs := f.Baselines()
	if len(bs) != 3 {
		t.Fatalf("got %d baselines, want 3", len(bs))
	}
	if bs[0].X0 != 500 || bs[0].X1 != 1500 {
		t.Errorf("baseline 0 = [%v, %v], want [500, 1500]", bs[0].X0, bs[0].X1)
	}
	if bs[1].Color.A != 51 {
		t.Errorf("baseline alpha = %d, want 51", bs[1].Color.A)
	}
}
