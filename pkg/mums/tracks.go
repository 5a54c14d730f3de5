package mums

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadLengths reads sequence lengths, one per line, in track order.
// Lines with two or more columns take the length from the second column
// (name, length); single-column lines hold the length alone.
func ReadLengths(path string) ([]int, error) {
	var lengths []int
	err := scanLines(path, func(n int, fields []string) error {
		col := fields[0]
		if len(fields) >= 2 {
			col = fields[1]
		}
		v, err := strconv.Atoi(col)
		if err != nil || v < 0 {
			return fmt.Errorf("line %d: invalid length %q", n, col)
		}
		lengths = append(lengths, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lengths, nil
}

// ReadNames reads a filelist and returns one track label per line: the
// basename of the first column with its extension removed.
func ReadNames(path string) ([]string, error) {
	var names []string
	err := scanLines(path, func(_ int, fields []string) error {
		names = append(names, TrackName(fields[0]))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// TrackName turns a sequence file path into a label.
func TrackName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// MaxLength returns the largest length, or zero for an empty slice.
func MaxLength(lengths []int) int {
	m := 0
	for _, l := range lengths {
		m = max(m, l)
	}
	return m
}

func scanLines(path string, fn func(n int, fields []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := fn(n, fields); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return sc.Err()
}
