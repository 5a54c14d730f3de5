// Package mums models maximal unique matches (MUMs) across a fixed, ordered
// set of sequences and reads them from disk.
//
// # Tracks
//
// Every sequence is a track. Track order is global: the Nth anchor and strand
// of every [Match] refer to the same sequence, and the order doubles as the
// vertical axis of a synteny plot.
//
// # Absent anchors
//
// A match may be missing from some tracks. Absence is always represented by
// the zero [Anchor], whatever marker the input file used:
//
//	m := mums.Match{
//	    Length:  120,
//	    Anchors: []mums.Anchor{mums.At(10), mums.Absent(), mums.At(4000)},
//	    Strands: []mums.Strand{mums.Forward, mums.Forward, mums.Reverse},
//	}
//	m.Present() // 2
//	m.IsFull()  // false
//
// # Reading
//
// [Reader] streams records with length filtering and subsampling; [ReadFile]
// materialises a file sorted by primary anchor, which is the order the
// collinear block detector expects. [ReadLengths] and [ReadNames] read the
// companion *.lengths file and filelist.
package mums
