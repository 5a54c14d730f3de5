// Package collinear groups runs of matches that can be drawn as one ribbon.
//
// Matches are expected sorted by primary anchor (see mums.Sort). A run is
// collinear when consecutive matches share the same present tracks and
// strands and advance monotonically on every track, in the direction of
// that track's strand, with gaps no larger than a tolerance. The default
// tolerance is the width of one output pixel in base pairs, which makes the
// merge invisible at the target resolution.
package collinear

import (
	"fmt"
	"math"

	"github.com/matzehuels/mumplot/pkg/mums"
)

// Auto requests a gap tolerance derived from the output resolution.
const Auto = -1

// Block is an inclusive range of match indices.
type Block struct {
	First, Last int
}

// Len returns the number of matches in the block.
func (b Block) Len() int { return b.Last - b.First + 1 }

// Validate checks the block against the matches it indexes: the range must
// be ordered and in bounds, and every track present in the first match must
// be present in the last.
func (b Block) Validate(matches []mums.Match) error {
	if b.First < 0 || b.Last >= len(matches) || b.First > b.Last {
		return fmt.Errorf("block [%d, %d] out of range for %d matches", b.First, b.Last, len(matches))
	}
	first, last := matches[b.First], matches[b.Last]
	if len(first.Anchors) != len(last.Anchors) {
		return fmt.Errorf("block [%d, %d] edges span %d and %d tracks", b.First, b.Last, len(first.Anchors), len(last.Anchors))
	}
	for t, a := range first.Anchors {
		if a.Valid && !last.Anchors[t].Valid {
			return fmt.Errorf("block [%d, %d]: track %d present in first match but absent in last", b.First, b.Last, t)
		}
	}
	return nil
}

// Options tunes block detection.
type Options struct {
	// MaxGap is the largest break, in base pairs, allowed between consecutive
	// matches of a block. Auto derives it from MaxLength, DPI and Width.
	MaxGap int

	MaxLength int     // longest sequence, in base pairs
	DPI       int     // output resolution
	Width     float64 // output width in inches
}

// Gap returns the effective gap tolerance.
func (o Options) Gap() int {
	if o.MaxGap >= 0 {
		return o.MaxGap
	}
	return PixelGap(o.MaxLength, o.DPI, o.Width)
}

// PixelGap returns how many base pairs fall within one output pixel when
// maxLength bases span width inches at dpi.
func PixelGap(maxLength, dpi int, width float64) int {
	px := float64(dpi) * width
	if px <= 0 {
		return 0
	}
	return int(math.Floor(float64(maxLength) / px))
}

// Find partitions sorted matches into maximal collinear blocks. Every match
// belongs to exactly one block and blocks are returned in match order.
func Find(matches []mums.Match, opts Options) []Block {
	if len(matches) == 0 {
		return nil
	}
	gap := opts.Gap()

	blocks := make([]Block, 0, len(matches)/4+1)
	cur := Block{}
	for i := 1; i < len(matches); i++ {
		if extends(matches[cur.First], matches[i-1], matches[i], gap) {
			cur.Last = i
			continue
		}
		blocks = append(blocks, cur)
		cur = Block{First: i, Last: i}
	}
	return append(blocks, cur)
}

// extends reports whether next continues the block that starts at head and
// currently ends at prev.
func extends(head, prev, next mums.Match, gap int) bool {
	if !head.SamePresence(next) {
		return false
	}
	for t, a := range next.Anchors {
		if !a.Valid {
			continue
		}
		if next.Strands[t] != head.Strands[t] {
			return false
		}
		var d int
		if next.Strands[t] == mums.Reverse {
			if a.Pos >= prev.Anchors[t].Pos {
				return false
			}
			d = prev.Anchors[t].Pos - next.End(t)
		} else {
			if a.Pos <= prev.Anchors[t].Pos {
				return false
			}
			d = a.Pos - prev.End(t)
		}
		if d > gap {
			return false
		}
	}
	return true
}

// Full keeps only matches present on every track.
func Full(matches []mums.Match) []mums.Match {
	out := make([]mums.Match, 0, len(matches))
	for _, m := range matches {
		if m.IsFull() {
			out = append(out, m)
		}
	}
	return out
}
