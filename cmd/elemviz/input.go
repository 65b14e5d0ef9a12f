package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/unbound-force/elemviz/internal/aggregate"
)

// readInput parses an element data file into an aggregate input. Two
// layouts are accepted: one composition expression per line, or CSV
// rows of "key,value" where keys are element symbols or atomic
// numbers. Blank lines and lines starting with '#' are skipped;
// duplicate CSV keys accumulate.
func readInput(path string) (aggregate.Input, error) {
	lines, err := readLines(path)
	if err != nil {
		return aggregate.Input{}, err
	}
	if len(lines) == 0 {
		return aggregate.Input{}, fmt.Errorf("%s: no data rows", path)
	}

	if !strings.Contains(lines[0], ",") {
		return aggregate.Detect(lines)
	}

	counts := make(map[string]float64, len(lines))
	for i, line := range lines {
		key, rest, ok := strings.Cut(line, ",")
		if !ok {
			return aggregate.Input{}, fmt.Errorf("%s:%d: expected key,value", path, i+1)
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil {
			return aggregate.Input{}, fmt.Errorf("%s:%d: bad value %q", path, i+1, strings.TrimSpace(rest))
		}
		counts[strings.TrimSpace(key)] += val
	}
	return aggregate.Detect(counts)
}

// readPairs parses a two-column x,y CSV file into parallel slices. A
// non-numeric first row is treated as a header and skipped.
func readPairs(path string) (xs, ys []float64, err error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, nil, err
	}
	for i, line := range lines {
		xStr, yStr, ok := strings.Cut(line, ",")
		if !ok {
			return nil, nil, fmt.Errorf("%s:%d: expected x,y", path, i+1)
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(xStr), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(yStr), 64)
		if errX != nil || errY != nil {
			if i == 0 {
				continue // header row
			}
			return nil, nil, fmt.Errorf("%s:%d: bad pair %q", path, i+1, line)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) == 0 {
		return nil, nil, fmt.Errorf("%s: no data rows", path)
	}
	return xs, ys, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// openOutput returns the destination writer for a command: the given
// file when --out is set, otherwise fallback (normally stdout).
func openOutput(out string, fallback io.Writer) (io.Writer, func() error, error) {
	if out == "" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.Create(out)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
