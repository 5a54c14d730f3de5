package geometry

import (
	"fmt"

	"github.com/matzehuels/mumplot/pkg/collinear"
	"github.com/matzehuels/mumplot/pkg/mums"
)

// MatchRibbons builds the ribbons of every match, one match at a time, in
// input order. Each present track contributes the pair
// (off+anchor, off+anchor+length); absent tracks are skipped. Matches present
// on fewer than two tracks produce nothing.
func MatchRibbons(matches []mums.Match, off Offsets) ([]Ribbon, error) {
	var out []Ribbon
	for i, m := range matches {
		if err := m.Validate(len(off)); err != nil {
			return nil, fmt.Errorf("match %d: %w", i, err)
		}
		first := m.FirstPresent()
		if first < 0 {
			continue
		}

		s := newSegmenter(m.Strands[first], out)
		for t, a := range m.Anchors {
			if !a.Valid {
				s.skip()
				continue
			}
			x := off[t] + float64(a.Pos)
			s.add(NewPair(t, x, x+float64(m.Length)), m.Strands[t])
		}
		out = s.flush()
	}
	return out, nil
}

// BlockRibbons builds one ribbon set per collinear block instead of one per
// match. A block spans, on each track present in its first match, from the
// first match's left edge to the last match's right edge; strands are taken
// from the first match. Where a block runs backwards along a track (reverse
// strand) the edges are swapped so the span stays left to right.
func BlockRibbons(matches []mums.Match, blocks []collinear.Block, off Offsets) ([]Ribbon, error) {
	var out []Ribbon
	for i, b := range blocks {
		if err := b.Validate(matches); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		first, last := matches[b.First], matches[b.Last]
		if err := first.Validate(len(off)); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		lead := first.FirstPresent()
		if lead < 0 {
			continue
		}

		s := newSegmenter(first.Strands[lead], out)
		for t, a := range first.Anchors {
			if !a.Valid {
				s.skip()
				continue
			}
			left := min(a.Pos, last.Anchors[t].Pos)
			right := max(first.End(t), last.End(t))
			s.add(NewPair(t, off[t]+float64(left), off[t]+float64(right)), first.Strands[t])
		}
		out = s.flush()
	}
	return out, nil
}

// Count returns how many ribbons carry each tag.
func Count(ribbons []Ribbon) (normal, inverted int) {
	for _, r := range ribbons {
		if r.Tag == Inverted {
			inverted++
		} else {
			normal++
		}
	}
	return normal, inverted
}
