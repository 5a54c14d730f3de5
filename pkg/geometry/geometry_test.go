package geometry

import (
	"reflect"
	"testing"

	"github.com/matzehuels/mumplot/pkg/collinear"
	"github.com/matzehuels/mumplot/pkg/mums"
)

// match builds a test match; negative positions are absent.
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

func zeros(n int) Offsets { return make(Offsets, n) }

func TestFromPairs(t *testing.T) {
	pairs := []Pair{
		NewPair(0, 10, 20),
		NewPair(1, 30, 40),
		NewPair(2, 50, 60),
	}
	got := FromPairs(pairs)
	want := Polygon{{10, 0}, {30, 1}, {50, 2}, {60, 2}, {40, 1}, {20, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromPairs() = %v, want %v", got, want)
	}
}

func TestFromPairsPanicsOnSinglePair(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FromPairs() with one pair should panic")
		}
	}()
	FromPairs([]Pair{NewPair(0, 1, 2)})
}

func TestMatchRibbonsNoInversion(t *testing.T) {
	for _, strands := range []string{"++++", "----"} {
		t.Run(strands, func(t *testing.T) {
			rs, err := MatchRibbons([]mums.Match{match(5, strands, 0, 10, 20, 30)}, zeros(4))
			if err != nil {
				t.Fatalf("MatchRibbons() error: %v", err)
			}
			if len(rs) != 1 {
				t.Fatalf("got %d ribbons, want 1", len(rs))
			}
			if len(rs[0].Outline) != 8 {
				t.Errorf("outline has %d vertices, want 8", len(rs[0].Outline))
			}
			if rs[0].Tag != Normal {
				t.Errorf("tag = %v, want normal", rs[0].Tag)
			}
		})
	}
}

func TestMatchRibbonsSingleInversion(t *testing.T) {
	rs, err := MatchRibbons([]mums.Match{match(5, "++-", 0, 10, 20)}, zeros(3))
	if err != nil {
		t.Fatalf("MatchRibbons() error: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("got %d ribbons, want 2", len(rs))
	}

	run := Polygon{{0, 0}, {10, 1}, {15, 1}, {5, 0}}
	if rs[0].Tag != Normal || !reflect.DeepEqual(rs[0].Outline, run) {
		t.Errorf("ribbon 0 = %+v, want normal %v", rs[0], run)
	}
	cross := Polygon{{10, 1}, {20, 2}, {25, 2}, {15, 1}}
	if rs[1].Tag != Inverted || !reflect.DeepEqual(rs[1].Outline, cross) {
		t.Errorf("ribbon 1 = %+v, want inverted %v", rs[1], cross)
	}
}

func TestMatchRibbonsInversionAtSecondTrack(t *testing.T) {
	rs, err := MatchRibbons([]mums.Match{match(5, "+-", 0, 10)}, zeros(2))
	if err != nil {
		t.Fatalf("MatchRibbons() error: %v", err)
	}
	if len(rs) != 1 || rs[0].Tag != Inverted {
		t.Fatalf("got %+v, want a single inverted crossing", rs)
	}
}

func TestMatchRibbonsDoubleInversion(t *testing.T) {
	rs, err := MatchRibbons([]mums.Match{match(5, "++--++", 0, 1, 2, 3, 4, 5)}, zeros(6))
	if err != nil {
		t.Fatalf("MatchRibbons() error: %v", err)
	}

	var tags []Tag
	var sizes []int
	for _, r := range rs {
		tags = append(tags, r.Tag)
		sizes = append(sizes, len(r.Outline)/2)
	}
	wantTags := []Tag{Normal, Inverted, Normal, Inverted, Normal}
	wantSizes := []int{2, 2, 2, 2, 2}
	if !reflect.DeepEqual(tags, wantTags) || !reflect.DeepEqual(sizes, wantSizes) {
		t.Errorf("tags = %v sizes = %v, want %v %v", tags, sizes, wantTags, wantSizes)
	}
}

func TestMatchRibbonsAbsentTrack(t *testing.T) {
	rs, err := MatchRibbons([]mums.Match{match(5, "+++", 0, -1, 20)}, zeros(3))
	if err != nil {
		t.Fatalf("MatchRibbons() error: %v", err)
	}
	if len(rs) != 1 {
		t.Fatalf("got %d ribbons, want 1", len(rs))
	}
	want := Polygon{{0, 0}, {20, 2}, {25, 2}, {5, 0}}
	if !reflect.DeepEqual(rs[0].Outline, want) {
		t.Errorf("outline = %v, want %v", rs[0].Outline, want)
	}
}

func TestMatchRibbonsAbsentAfterLongRun(t *testing.T) {
	rs, err := MatchRibbons([]mums.Match{match(1, "+++++", 0, 1, 2, -1, 4)}, zeros(5))
	if err != nil {
		t.Fatalf("MatchRibbons() error: %v", err)
	}
	want := []Ribbon{
		{Outline: Polygon{{0, 0}, {1, 1}, {2, 2}, {3, 2}, {2, 1}, {1, 0}}, Tag: Normal},
		{Outline: Polygon{{2, 2}, {4, 4}, {5, 4}, {3, 2}}, Tag: Normal},
	}
	if !reflect.DeepEqual(rs, want) {
		t.Errorf("MatchRibbons() = %v, want %v", rs, want)
	}
}

// connected reports whether some ribbon has vertices on both tracks a and b
// with no track in between.
func connected(rs []Ribbon, a, b int) bool {
	for _, r := range rs {
		var ys []float64
		for _, p := range r.Outline[:len(r.Outline)/2] {
			ys = append(ys, p.Y)
		}
		for i := 1; i < len(ys); i++ {
			if ys[i-1] == float64(a) && ys[i] == float64(b) {
				return true
			}
		}
	}
	return false
}

func TestAbsentTracksKeepPresentNeighboursConnected(t *testing.T) {
	tests := []struct {
		name    string
		strands string
		pos     []int
	}{
		{"gap after three", "+++++", []int{0, 1, 2, -1, 4}},
		{"gap after four", "++++++", []int{0, 1, 2, 3, -1, 5}},
		{"two gaps", "+++++++", []int{0, 1, 2, -1, 4, 5, -1}},
		{"gap then flip", "++++-", []int{0, 1, 2, -1, 4}},
		{"leading gap", "-++++", []int{-1, 1, 2, 3, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := match(1, tt.strands, tt.pos...)
			var present []int
			for i, p := range tt.pos {
				if p >= 0 {
					present = append(present, i)
				}
			}

			perMatch, err := MatchRibbons([]mums.Match{m}, zeros(len(tt.pos)))
			if err != nil {
				t.Fatalf("MatchRibbons() error: %v", err)
			}
			shifted := m
			shifted.Anchors = make([]mums.Anchor, len(m.Anchors))
			for i, a := range m.Anchors {
				switch {
				case !a.Valid:
				case m.Strands[i] == mums.Reverse:
					shifted.Anchors[i] = mums.At(a.Pos - 3)
				default:
					shifted.Anchors[i] = mums.At(a.Pos + 3)
				}
			}
			blocks := collinear.Find([]mums.Match{m, shifted}, collinear.Options{MaxGap: 10})
			if len(blocks) != 1 {
				t.Fatalf("collinear.Find() = %v, want one block", blocks)
			}
			perBlock, err := BlockRibbons([]mums.Match{m, shifted}, blocks, zeros(len(tt.pos)))
			if err != nil {
				t.Fatalf("BlockRibbons() error: %v", err)
			}

			for i := 1; i < len(present); i++ {
				a, b := present[i-1], present[i]
				if !connected(perMatch, a, b) {
					t.Errorf("MatchRibbons: tracks %d and %d not connected: %v", a, b, perMatch)
				}
				if !connected(perBlock, a, b) {
					t.Errorf("BlockRibbons: tracks %d and %d not connected: %v", a, b, perBlock)
				}
			}
		})
	}
}

func TestMatchRibbonsDropsSingleTrack(t *testing.T) {
	ms := []mums.Match{
		match(5, "+++", -1, 3, -1),
		match(5, "+++", -1, -1, -1),
	}
	rs, err := MatchRibbons(ms, zeros(3))
	if err != nil {
		t.Fatalf("MatchRibbons() error: %v", err)
	}
	if len(rs) != 0 {
		t.Errorf("got %d ribbons, want none", len(rs))
	}
}

func TestMatchRibbonsRejectsMalformed(t *testing.T) {
	bad := mums.Match{Length: 5, Anchors: []mums.Anchor{mums.At(0), mums.At(1)}, Strands: []mums.Strand{mums.Forward}}
	if _, err := MatchRibbons([]mums.Match{bad}, zeros(2)); err == nil {
		t.Error("MatchRibbons() should reject anchor/strand mismatch")
	}
	if _, err := MatchRibbons([]mums.Match{match(5, "++", 0, 1)}, zeros(3)); err == nil {
		t.Error("MatchRibbons() should reject a track count mismatch")
	}
}

func TestMatchRibbonsEmpty(t *testing.T) {
	rs, err := MatchRibbons(nil, nil)
	if err != nil || len(rs) != 0 {
		t.Errorf("MatchRibbons(nil) = %v, %v", rs, err)
	}
}

func TestMatchRibbonsAppliesOffsets(t *testing.T) {
	rs, err := MatchRibbons([]mums.Match{match(5, "++", 0, 0)}, Offsets{0, 100})
	if err != nil {
		t.Fatalf("MatchRibbons() error: %v", err)
	}
	want := Polygon{{0, 0}, {100, 1}, {105, 1}, {5, 0}}
	if !reflect.DeepEqual(rs[0].Outline, want) {
		t.Errorf("outline = %v, want %v", rs[0].Outline, want)
	}
}

func TestBlockRibbonsMergeEquivalence(t *testing.T) {
	ms := []mums.Match{
		match(10, "+++", 0, 100, 200),
		match(10, "+++", 12, 112, 212),
		match(10, "+++", 24, 124, 224),
	}
	blocks := []collinear.Block{{First: 0, Last: 2}}

	got, err := BlockRibbons(ms, blocks, zeros(3))
	if err != nil {
		t.Fatalf("BlockRibbons() error: %v", err)
	}

	// A single match spanning the first left edge to the last right edge.
	synthetic := match(34, "+++", 0, 100, 200)
	want, err := MatchRibbons([]mums.Match{synthetic}, zeros(3))
	if err != nil {
		t.Fatalf("MatchRibbons() error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BlockRibbons() = %v, want %v", got, want)
	}

	perMatch, _ := MatchRibbons(ms, zeros(3))
	if len(got) >= len(perMatch) {
		t.Errorf("block ribbons = %d, per-match = %d; merging should reduce", len(got), len(perMatch))
	}
}

func TestBlockRibbonsReverseTrack(t *testing.T) {
	ms := []mums.Match{
		match(10, "+-", 0, 500),
		match(10, "+-", 12, 488),
	}
	rs, err := BlockRibbons(ms, []collinear.Block{{First: 0, Last: 1}}, zeros(2))
	if err != nil {
		t.Fatalf("BlockRibbons() error: %v", err)
	}
	if len(rs) != 1 || rs[0].Tag != Inverted {
		t.Fatalf("got %+v, want a single inverted crossing", rs)
	}
	want := Polygon{{0, 0}, {488, 1}, {510, 1}, {22, 0}}
	if !reflect.DeepEqual(rs[0].Outline, want) {
		t.Errorf("outline = %v, want %v", rs[0].Outline, want)
	}
}

func TestBlockRibbonsReverseAcrossThreeTracks(t *testing.T) {
	tests := []struct {
		name    string
		strands string
		first   []int
		last    []int
		want    []Ribbon
	}{
		{
			name:    "reverse middle",
			strands: "+-+",
			first:   []int{0, 500, 100},
			last:    []int{12, 488, 112},
			want: []Ribbon{
				{Outline: Polygon{{0, 0}, {488, 1}, {510, 1}, {22, 0}}, Tag: Inverted},
				{Outline: Polygon{{488, 1}, {100, 2}, {122, 2}, {510, 1}}, Tag: Inverted},
			},
		},
		{
			name:    "reverse tail",
			strands: "+--",
			first:   []int{0, 500, 900},
			last:    []int{12, 488, 888},
			want: []Ribbon{
				{Outline: Polygon{{0, 0}, {488, 1}, {510, 1}, {22, 0}}, Tag: Inverted},
				{Outline: Polygon{{488, 1}, {888, 2}, {910, 2}, {510, 1}}, Tag: Normal},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := []mums.Match{match(10, tt.strands, tt.first...), match(10, tt.strands, tt.last...)}
			blocks := collinear.Find(ms, collinear.Options{MaxGap: 5})
			if len(blocks) != 1 {
				t.Fatalf("collinear.Find() = %v, want one block", blocks)
			}
			rs, err := BlockRibbons(ms, blocks, zeros(3))
			if err != nil {
				t.Fatalf("BlockRibbons() error: %v", err)
			}
			if !reflect.DeepEqual(rs, tt.want) {
				t.Errorf("BlockRibbons() = %v, want %v", rs, tt.want)
			}
			for _, r := range rs {
				n := len(r.Outline)
				for i := 0; i < n/2; i++ {
					if l, rt := r.Outline[i], r.Outline[n-1-i]; l.X > rt.X {
						t.Errorf("crossed outline at track %v: left %v > right %v", l.Y, l.X, rt.X)
					}
				}
			}
		})
	}
}

func TestBlockRibbonsInvalidBlock(t *testing.T) {
	ms := []mums.Match{
		match(10, "++", 0, 5),
		match(10, "++", 20, -1),
	}
	if _, err := BlockRibbons(ms, []collinear.Block{{First: 0, Last: 1}}, zeros(2)); err == nil {
		t.Error("BlockRibbons() should reject a block losing coverage")
	}
	if _, err := BlockRibbons(ms, []collinear.Block{{First: 0, Last: 5}}, zeros(2)); err == nil {
		t.Error("BlockRibbons() should reject an out-of-range block")
	}
}

func TestCenter(t *testing.T) {
	got := Center([]int{600, 1000}, true)
	if got[0] != 200 || got[1] != 0 {
		t.Errorf("Center() = %v, want [200 0]", got)
	}

	off := Center([]int{600, 1000}, false)
	for i, v := range off {
		if v != 0 {
			t.Errorf("disabled offset[%d] = %v, want 0", i, v)
		}
	}

	if len(Center(nil, true)) != 0 {
		t.Error("Center(nil) should be empty")
	}
}

func TestCenterPreservesOrder(t *testing.T) {
	ms := []mums.Match{
		match(5, "++", 10, 10),
		match(5, "++", 50, 50),
	}
	rs, err := MatchRibbons(ms, Center([]int{100, 300}, true))
	if err != nil {
		t.Fatalf("MatchRibbons() error: %v", err)
	}
	if rs[0].Outline[0].X >= rs[1].Outline[0].X {
		t.Error("centering should preserve anchor order on a track")
	}
	if rs[0].Outline[0].X != 110 {
		t.Errorf("shifted x = %v, want 110", rs[0].Outline[0].X)
	}
}

func TestDeterminism(t *testing.T) {
	ms := []mums.Match{
		match(5, "+-+", 0, 10, 20),
		match(7, "++-", 3, -1, 40),
		match(9, "---", 8, 18, 28),
	}
	a, err := MatchRibbons(ms, zeros(3))
	if err != nil {
		t.Fatal(err)
	}
	b, err := MatchRibbons(ms, zeros(3))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("MatchRibbons() is not deterministic")
	}
}

func TestCount(t *testing.T) {
	rs, _ := MatchRibbons([]mums.Match{match(5, "++-", 0, 10, 20)}, zeros(3))
	normal, inverted := Count(rs)
	if normal != 1 || inverted != 1 {
		t.Errorf("Count() = %d, %d; want 1, 1", normal, inverted)
	}
}
