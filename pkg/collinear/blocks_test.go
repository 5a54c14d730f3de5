package collinear

import (
	"testing"

	"github.com/matzehuels/mumplot/pkg/mums"
)

func match(length int, strands string, pos ...int) mums.Match {
	m := mums.Match{Length: length}
	for i, p := range pos {
		if p < 0 {
			m.Anchors = append(m.Anchors, mums.Absent())
		} else {
			m.Anchors = append(m.Anchors, mums.At(p))
		}
		st := mums.Forward
		if strands[i] == '-' {
			st = mums.Reverse
		}
		m.Strands = append(m.Strands, st)
	}
	return m
}

func TestPixelGap(t *testing.T) {
	tests := []struct {
		name      string
		maxLength int
		dpi       int
		width     float64
		want      int
	}{
		{"default figure", 3_200_000, 500, 6.4, 1000},
		{"sub-pixel genome", 100, 500, 6.4, 0},
		{"zero dpi", 1000, 0, 6.4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelGap(tt.maxLength, tt.dpi, tt.width); got != tt.want {
				t.Errorf("PixelGap() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOptionsGap(t *testing.T) {
	o := Options{MaxGap: Auto, MaxLength: 3_200_000, DPI: 500, Width: 6.4}
	if got := o.Gap(); got != 1000 {
		t.Errorf("Gap() auto = %d, want 1000", got)
	}
	o.MaxGap = 0
	if got := o.Gap(); got != 0 {
		t.Errorf("Gap() explicit zero = %d, want 0", got)
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name    string
		matches []mums.Match
		gap     int
		want    []Block
	}{
		{
			name: "empty",
			want: nil,
		},
		{
			name:    "single match",
			matches: []mums.Match{match(10, "++", 0, 0)},
			want:    []Block{{0, 0}},
		},
		{
			name: "adjacent forward run merges",
			matches: []mums.Match{
				match(10, "++", 0, 100),
				match(10, "++", 12, 112),
				match(10, "++", 25, 124),
			},
			gap:  5,
			want: []Block{{0, 2}},
		},
		{
			name: "gap too large splits",
			matches: []mums.Match{
				match(10, "++", 0, 100),
				match(10, "++", 30, 130),
			},
			gap:  5,
			want: []Block{{0, 0}, {1, 1}},
		},
		{
			name: "reverse track descends",
			matches: []mums.Match{
				match(10, "+-", 0, 500),
				match(10, "+-", 12, 488),
			},
			gap:  5,
			want: []Block{{0, 1}},
		},
		{
			name: "reverse track ascending breaks",
			matches: []mums.Match{
				match(10, "+-", 0, 500),
				match(10, "+-", 12, 512),
			},
			gap:  5,
			want: []Block{{0, 0}, {1, 1}},
		},
		{
			name: "strand change breaks",
			matches: []mums.Match{
				match(10, "++", 0, 100),
				match(10, "+-", 10, 110),
			},
			gap:  5,
			want: []Block{{0, 0}, {1, 1}},
		},
		{
			name: "presence change breaks",
			matches: []mums.Match{
				match(10, "+++", 0, 100, 50),
				match(10, "+++", 10, 110, -1),
				match(10, "+++", 20, 120, -1),
			},
			gap:  5,
			want: []Block{{0, 0}, {1, 2}},
		},
		{
			name: "out of order on second track breaks",
			matches: []mums.Match{
				match(10, "++", 0, 100),
				match(10, "++", 10, 50),
			},
			gap:  1000,
			want: []Block{{0, 0}, {1, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Find(tt.matches, Options{MaxGap: tt.gap})
			if len(got) != len(tt.want) {
				t.Fatalf("Find() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Find()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFindCoversEveryMatch(t *testing.T) {
	var ms []mums.Match
	for i := 0; i < 50; i++ {
		gap := 2
		if i%7 == 0 {
			gap = 100
		}
		prev := 0
		if len(ms) > 0 {
			prev = ms[len(ms)-1].End(0)
		}
		ms = append(ms, match(5, "++", prev+gap, prev+gap))
	}

	blocks := Find(ms, Options{MaxGap: 10})
	next := 0
	for _, b := range blocks {
		if b.First != next {
			t.Fatalf("block %v does not start at %d", b, next)
		}
		if err := b.Validate(ms); err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
		next = b.Last + 1
	}
	if next != len(ms) {
		t.Errorf("blocks cover %d matches, want %d", next, len(ms))
	}
}

func TestBlockValidate(t *testing.T) {
	ms := []mums.Match{
		match(10, "++", 0, 5),
		match(10, "++", 20, -1),
	}

	tests := []struct {
		name    string
		b       Block
		wantErr bool
	}{
		{"single", Block{0, 0}, false},
		{"reversed range", Block{1, 0}, true},
		{"out of bounds", Block{0, 2}, true},
		{"coverage lost at last", Block{0, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Validate(ms)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFull(t *testing.T) {
	ms := []mums.Match{
		match(10, "++", 0, 5),
		match(10, "++", 20, -1),
		match(10, "++", 30, 35),
	}
	got := Full(ms)
	if len(got) != 2 {
		t.Fatalf("Full() kept %d matches, want 2", len(got))
	}
	if got[1].Anchors[0].Pos != 30 {
		t.Errorf("Full() kept wrong match: %+v", got[1])
	}
}
