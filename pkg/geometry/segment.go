package geometry

import "github.com/matzehuels/mumplot/pkg/mums"

// segmenter splits one match (or block) into strand-homogeneous ribbons.
//
// It is fed one pair per track in track order. Runs of equal orientation are
// emitted as Normal ribbons; every orientation change additionally emits a
// two-pair Inverted ribbon spanning the change.
type segmenter struct {
	reverse bool
	acc     []Pair
	out     []Ribbon
}

func newSegmenter(initial mums.Strand, out []Ribbon) *segmenter {
	return &segmenter{reverse: initial == mums.Reverse, out: out}
}

// skip handles a track where the match is absent. A run of three or more
// pairs is drawn whole before the gap and its last pair carries the ribbon
// across to the next present track, so every two consecutive present tracks
// stay connected.
func (s *segmenter) skip() {
	if len(s.acc) > 2 {
		s.emit(s.acc, Normal)
		s.keepLast()
	}
}

// add appends the pair for a present track with strand st.
func (s *segmenter) add(p Pair, st mums.Strand) {
	s.acc = append(s.acc, p)
	if (st == mums.Reverse) == s.reverse {
		return
	}
	s.flip()
}

// flip closes the run before the newest pair, draws the crossing between the
// last two pairs and starts a new run at the newest pair.
func (s *segmenter) flip() {
	n := len(s.acc)
	if n > 2 {
		s.emit(s.acc[:n-1], Normal)
	}
	s.emit(s.acc[n-2:], Inverted)
	s.keepLast()
	s.reverse = !s.reverse
}

// flush closes the final run and returns every ribbon emitted so far.
func (s *segmenter) flush() []Ribbon {
	if len(s.acc) >= 2 {
		s.emit(s.acc, Normal)
	}
	s.acc = s.acc[:0]
	return s.out
}

func (s *segmenter) emit(pairs []Pair, tag Tag) {
	s.out = append(s.out, Ribbon{Outline: FromPairs(pairs), Tag: tag})
}

func (s *segmenter) keepLast() {
	last := s.acc[len(s.acc)-1]
	s.acc = append(s.acc[:0], last)
}
