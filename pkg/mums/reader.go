package mums

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
)

// Options controls which records a Reader yields.
type Options struct {
	// Tracks is the expected number of tracks per record. Zero disables the check.
	Tracks int
	// MinLength drops matches shorter than this many bases.
	MinLength int
	// Subsample keeps every Nth data record (1 keeps all).
	Subsample int
}

// Reader streams match records from a *.mums file.
//
// Each data line holds three whitespace-separated columns: the match length,
// comma-separated start positions (one per track) and comma-separated strands.
// An empty start, "-1" or "*" marks the match as absent on that track.
// Blank lines and lines starting with '#' are skipped.
type Reader struct {
	sc     *bufio.Scanner
	opts   Options
	line   int
	record int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader, opts Options) *Reader {
	if opts.Subsample < 1 {
		opts.Subsample = 1
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return &Reader{sc: sc, opts: opts}
}

// Next returns the next record that passes the filters, or io.EOF.
func (r *Reader) Next() (Match, error) {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		idx := r.record
		r.record++
		if idx%r.opts.Subsample != 0 {
			continue
		}
		m, err := parseLine(text)
		if err != nil {
			return Match{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		if err := m.Validate(r.opts.Tracks); err != nil {
			return Match{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		if m.Length < r.opts.MinLength {
			continue
		}
		return m, nil
	}
	if err := r.sc.Err(); err != nil {
		return Match{}, err
	}
	return Match{}, io.EOF
}

// ReadAll drains the reader.
func (r *Reader) ReadAll() ([]Match, error) {
	var out []Match
	for {
		m, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
}

// ReadFile reads every record of path that passes opts and returns them
// sorted by primary anchor.
func ReadFile(path string, opts Options) ([]Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ms, err := NewReader(f, opts).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	Sort(ms)
	return ms, nil
}

// Sort orders matches by their first present track, then by the position on
// that track. Ties keep input order. Matches absent on track 0 therefore
// follow every match present there, each group ordered on its own lead
// track.
func Sort(ms []Match) {
	slices.SortStableFunc(ms, func(a, b Match) int {
		ta, tb := a.FirstPresent(), b.FirstPresent()
		if c := cmp.Compare(ta, tb); c != 0 {
			return c
		}
		if ta < 0 {
			return 0
		}
		return cmp.Compare(a.Anchors[ta].Pos, b.Anchors[tb].Pos)
	})
}

func parseLine(text string) (Match, error) {
	fields := strings.Fields(text)
	if len(fields) < 3 {
		return Match{}, fmt.Errorf("expected 3 columns, got %d", len(fields))
	}

	length, err := strconv.Atoi(fields[0])
	if err != nil {
		return Match{}, fmt.Errorf("invalid length %q", fields[0])
	}

	starts := strings.Split(fields[1], ",")
	anchors := make([]Anchor, len(starts))
	for i, s := range starts {
		if s == "" || s == "*" || s == "-1" {
			continue
		}
		pos, err := strconv.Atoi(s)
		if err != nil || pos < 0 {
			return Match{}, fmt.Errorf("invalid position %q on track %d", s, i)
		}
		anchors[i] = At(pos)
	}

	symbols := strings.Split(fields[2], ",")
	strands := make([]Strand, len(symbols))
	for i, s := range symbols {
		// Absent tracks may leave their strand blank.
		if s == "" && i < len(anchors) && !anchors[i].Valid {
			continue
		}
		st, err := ParseStrand(s)
		if err != nil {
			return Match{}, fmt.Errorf("track %d: %w", i, err)
		}
		strands[i] = st
	}

	return Match{Length: length, Anchors: anchors, Strands: strands}, nil
}
