package mums

import (
	"fmt"
)

// Strand is the alignment orientation of a match on one track.
type Strand uint8

const (
	Forward Strand = iota // '+'
	Reverse               // '-'
)

// String returns the on-disk symbol for the strand.
func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// ParseStrand decodes '+' or '-'.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return Forward, nil
	case "-":
		return Reverse, nil
	}
	return Forward, fmt.Errorf("invalid strand %q (must be '+' or '-')", s)
}

// Anchor is the optional start position of a match on one track.
// The zero value is an absent anchor.
type Anchor struct {
	Pos   int
	Valid bool
}

// At returns a present anchor at pos.
func At(pos int) Anchor { return Anchor{Pos: pos, Valid: true} }

// Absent returns an absent anchor.
func Absent() Anchor { return Anchor{} }

// String returns the position, or "" when absent.
func (a Anchor) String() string {
	if !a.Valid {
		return ""
	}
	return fmt.Sprintf("%d", a.Pos)
}

// Match is one maximal unique match: a shared length plus one anchor and one
// strand per track. Track order is global and identical for every match.
type Match struct {
	Length  int
	Anchors []Anchor
	Strands []Strand
}

// Tracks returns the number of tracks the match spans, present or not.
func (m Match) Tracks() int { return len(m.Anchors) }

// End returns the exclusive right edge of the match on track t.
// The result is meaningless when the anchor on t is absent.
func (m Match) End(t int) int { return m.Anchors[t].Pos + m.Length }

// Present returns the number of tracks with a present anchor.
func (m Match) Present() int {
	n := 0
	for _, a := range m.Anchors {
		if a.Valid {
			n++
		}
	}
	return n
}

// IsFull reports whether the match is present on every track.
func (m Match) IsFull() bool { return m.Present() == len(m.Anchors) }

// FirstPresent returns the index of the first present track, or -1.
func (m Match) FirstPresent() int {
	for i, a := range m.Anchors {
		if a.Valid {
			return i
		}
	}
	return -1
}

// Validate checks the record against the global track count.
// A tracks value of zero skips the count check.
func (m Match) Validate(tracks int) error {
	if m.Length <= 0 {
		return fmt.Errorf("match length %d is not positive", m.Length)
	}
	if len(m.Anchors) != len(m.Strands) {
		return fmt.Errorf("match has %d anchors but %d strands", len(m.Anchors), len(m.Strands))
	}
	if tracks > 0 && len(m.Anchors) != tracks {
		return fmt.Errorf("match spans %d tracks, expected %d", len(m.Anchors), tracks)
	}
	return nil
}

// SamePresence reports whether m and o are present on exactly the same tracks.
func (m Match) SamePresence(o Match) bool {
	if len(m.Anchors) != len(o.Anchors) {
		return false
	}
	for i := range m.Anchors {
		if m.Anchors[i].Valid != o.Anchors[i].Valid {
			return false
		}
	}
	return true
}
