package pipeline

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/matzehuels/mumplot/pkg/errors"
	"github.com/matzehuels/mumplot/pkg/mums"
)

// Input is everything read from disk for one plot.
type Input struct {
	Lengths []int
	Names   []string // nil without a filelist
	Matches []mums.Match
}

// Load reads the lengths file, the optional filelist, and the match file.
// Matches are filtered, subsampled, validated against the track count, and
// sorted by their primary anchor.
func Load(ctx context.Context, opts Options) (*Input, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	for _, f := range []struct{ path, what string }{
		{opts.MumFile, "match file"},
		{opts.LengthsFile, "lengths file"},
	} {
		if err := errors.ValidateInputFile(f.path, f.what); err != nil {
			return nil, err
		}
	}

	lengths, err := mums.ReadLengths(opts.LengthsFile)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read lengths")
	}
	if len(lengths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "lengths file %s lists no sequences", opts.LengthsFile)
	}

	var names []string
	if opts.FileList != "" {
		if err := errors.ValidateInputFile(opts.FileList, "filelist"); err != nil {
			return nil, err
		}
		if names, err = mums.ReadNames(opts.FileList); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read filelist")
		}
		if len(names) != len(lengths) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"filelist names %d sequences but lengths file has %d", len(names), len(lengths))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := mums.ReadFile(opts.MumFile, mums.Options{
		Tracks:    len(lengths),
		MinLength: opts.MinLength,
		Subsample: opts.Subsample,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMatch, err, "read matches")
	}
	if n := outOfBounds(matches, lengths); n > 0 {
		opts.Logger.Warn("matches extend past their sequence end", "count", n, "lengths", opts.LengthsFile)
	}

	return &Input{Lengths: lengths, Names: names, Matches: matches}, nil
}

// outOfBounds counts matches that run past the end of a sequence, which
// usually means the lengths file belongs to different inputs.
func outOfBounds(matches []mums.Match, lengths []int) int {
	n := 0
	for _, m := range matches {
		for t, a := range m.Anchors {
			if a.Valid && m.End(t) > lengths[t] {
				n++
				break
			}
		}
	}
	return n
}

// TrackStats summarizes the matches on one track.
type TrackStats struct {
	Name     string
	Length   int
	Present  int // matches present on this track
	Forward  int
	Reverse  int
	Covered  int // bases covered by present matches, overlaps counted once
	Coverage float64
}

// Summarize computes per-track statistics.
func (in *Input) Summarize() []TrackStats {
	out := make([]TrackStats, len(in.Lengths))
	spans := make([][][2]int, len(in.Lengths))
	for t, l := range in.Lengths {
		out[t] = TrackStats{Name: fmt.Sprintf("%d", t), Length: l}
		if t < len(in.Names) {
			out[t].Name = in.Names[t]
		}
	}
	for _, m := range in.Matches {
		for t, a := range m.Anchors {
			if !a.Valid {
				continue
			}
			out[t].Present++
			if m.Strands[t] == mums.Reverse {
				out[t].Reverse++
			} else {
				out[t].Forward++
			}
			spans[t] = append(spans[t], [2]int{a.Pos, m.End(t)})
		}
	}
	for t := range out {
		out[t].Covered = union(spans[t])
		if out[t].Length > 0 {
			out[t].Coverage = float64(out[t].Covered) / float64(out[t].Length)
		}
	}
	return out
}

// union returns the total length covered by half-open spans.
func union(spans [][2]int) int {
	slices.SortFunc(spans, func(a, b [2]int) int { return cmp.Compare(a[0], b[0]) })
	total, end := 0, -1
	for _, s := range spans {
		switch {
		case s[0] >= end:
			total += s[1] - s[0]
			end = s[1]
		case s[1] > end:
			total += s[1] - end
			end = s[1]
		}
	}
	return total
}
