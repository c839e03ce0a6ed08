// Package textfile reads the small plain-text collaborator files used by
// the pipeline: one-name-per-line sample lists and two-column rename maps.
package textfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/vcfkit/vcfkit/internal/vcf"
)

// Pair is one old→new mapping from a two-column rename map. Line is the
// physical line number in the source file, for error reporting.
type Pair struct {
	Old  string
	New  string
	Line int
}

// Entry is one non-blank, non-comment line together with its physical
// line number in the file.
type Entry struct {
	Text string
	Line int
}

// ReadEntries reads a file with one entry per line, keeping physical line
// numbers. Blank lines and lines starting with '#' are skipped but still
// counted.
func ReadEntries(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, Entry{Text: line, Line: lineNumber})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list file: %w", err)
	}
	return entries, nil
}

// ReadLines reads a file with one entry per line. Blank lines and lines
// starting with '#' are skipped.
func ReadLines(path string) ([]string, error) {
	entries, err := ReadEntries(path)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Text
	}
	return lines, nil
}

// ReadPairs reads a two-column tab-separated rename map, preserving line
// order. Lines with any other column count are a FormatError.
func ReadPairs(path string) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map file: %w", err)
	}
	defer file.Close()

	var pairs []Pair
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) != 2 {
			return nil, &vcf.FormatError{
				File:    path,
				Line:    lineNumber,
				Message: fmt.Sprintf("expected 2 tab-separated columns, found %d", len(cols)),
			}
		}
		pairs = append(pairs, Pair{Old: cols[0], New: cols[1], Line: lineNumber})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}
	return pairs, nil
}
