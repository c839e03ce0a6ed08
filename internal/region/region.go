// Package region implements genomic interval sets and the region filter
// over a record stream.
package region

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vcfkit/vcfkit/internal/textfile"
	"github.com/vcfkit/vcfkit/internal/vcf"
)

// Interval is a closed 1-based span on a chromosome, the convention used
// by tabix region strings and vcftools --from-bp/--to-bp. Chromosome
// names match exactly; no naming-convention normalization is applied.
type Interval struct {
	Chrom string
	Start int64
	End   int64
}

// Contains reports whether pos falls inside the interval.
func (iv Interval) Contains(chrom string, pos int64) bool {
	return chrom == iv.Chrom && pos >= iv.Start && pos <= iv.End
}

// Set is a union of intervals, grouped by chromosome.
type Set struct {
	byChrom map[string][]Interval
}

// NewSet builds a set from a list of intervals.
func NewSet(intervals ...Interval) *Set {
	s := &Set{byChrom: make(map[string][]Interval)}
	for _, iv := range intervals {
		s.Add(iv)
	}
	return s
}

// Add adds one interval to the union.
func (s *Set) Add(iv Interval) {
	s.byChrom[iv.Chrom] = append(s.byChrom[iv.Chrom], iv)
}

// Union folds every interval of other into this set.
func (s *Set) Union(other *Set) {
	for chrom, ivs := range other.byChrom {
		s.byChrom[chrom] = append(s.byChrom[chrom], ivs...)
	}
}

// Contains reports whether any interval in the set covers (chrom, pos).
func (s *Set) Contains(chrom string, pos int64) bool {
	for _, iv := range s.byChrom[chrom] {
		if pos >= iv.Start && pos <= iv.End {
			return true
		}
	}
	return false
}

// Empty reports whether the set holds no intervals.
func (s *Set) Empty() bool {
	return len(s.byChrom) == 0
}

// Chroms returns the distinct chromosome names referenced by the set.
func (s *Set) Chroms() []string {
	chroms := make([]string, 0, len(s.byChrom))
	for c := range s.byChrom {
		chroms = append(chroms, c)
	}
	return chroms
}

// Parse parses a region string of the form "chrom", "chrom:start-end",
// or "chrom:pos".
func Parse(region string) (Interval, error) {
	chrom, span, found := strings.Cut(region, ":")
	if chrom == "" {
		return Interval{}, fmt.Errorf("invalid region %q: empty chromosome", region)
	}
	if !found {
		return Interval{Chrom: chrom, Start: 1, End: 1<<63 - 1}, nil
	}

	startStr, endStr, ranged := strings.Cut(span, "-")
	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid region %q: bad start %q", region, startStr)
	}
	end := start
	if ranged {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return Interval{}, fmt.Errorf("invalid region %q: bad end %q", region, endStr)
		}
	}
	if end < start {
		return Interval{}, fmt.Errorf("invalid region %q: end before start", region)
	}
	return Interval{Chrom: chrom, Start: start, End: end}, nil
}

// ReadFile reads an interval file with one entry per line: either a
// region string or BED-like "chrom\tstart\tend" columns. BED rows are
// 0-based half-open and converted to the closed 1-based convention.
func ReadFile(path string) (*Set, error) {
	entries, err := textfile.ReadEntries(path)
	if err != nil {
		return nil, err
	}

	set := NewSet()
	for _, e := range entries {
		cols := strings.Split(e.Text, "\t")
		switch len(cols) {
		case 1:
			iv, err := Parse(cols[0])
			if err != nil {
				return nil, &vcf.FormatError{File: path, Line: e.Line, Message: err.Error()}
			}
			set.Add(iv)
		case 3:
			start, err1 := strconv.ParseInt(cols[1], 10, 64)
			end, err2 := strconv.ParseInt(cols[2], 10, 64)
			if err1 != nil || err2 != nil || end <= start {
				return nil, &vcf.FormatError{
					File:    path,
					Line:    e.Line,
					Message: fmt.Sprintf("invalid bed interval %q", e.Text),
				}
			}
			set.Add(Interval{Chrom: cols[0], Start: start + 1, End: end})
		default:
			return nil, &vcf.FormatError{
				File:    path,
				Line:    e.Line,
				Message: fmt.Sprintf("expected 1 or 3 columns, found %d", len(cols)),
			}
		}
	}
	return set, nil
}

// ReadPositions reads a "chrom\tpos" site list into a set of
// single-position intervals.
func ReadPositions(path string) (*Set, error) {
	pairs, err := textfile.ReadPairs(path)
	if err != nil {
		return nil, err
	}
	set := NewSet()
	for _, p := range pairs {
		pos, err := strconv.ParseInt(p.New, 10, 64)
		if err != nil {
			return nil, &vcf.FormatError{
				File:    path,
				Line:    p.Line,
				Message: fmt.Sprintf("invalid position %q", p.New),
			}
		}
		set.Add(Interval{Chrom: p.Old, Start: pos, End: pos})
	}
	return set, nil
}

// WarnUnknownChroms logs a warning for every chromosome the set references
// that does not appear in the header's contig list. Mismatched names are a
// caller responsibility (the filter would silently match nothing), so this
// is advisory, not fatal. Headers with no ##contig lines produce no
// warnings since there is nothing to check against.
func WarnUnknownChroms(h *vcf.Header, s *Set, source string, logger *zap.Logger) {
	if len(h.Contigs) == 0 {
		return
	}
	for _, chrom := range s.Chroms() {
		if _, ok := h.ContigRank(chrom); !ok {
			err := &vcf.ChromMismatchError{Chrom: chrom, Source: source}
			logger.Warn("interval chromosome not in header, entries will match nothing",
				zap.String("chrom", chrom),
				zap.String("source", source),
				zap.Error(err))
		}
	}
}

// Filter returns a stream of the records whose (chrom, pos) falls inside
// the set. Order is preserved; no lookahead is required.
func Filter(r vcf.RecordReader, s *Set) vcf.RecordReader {
	return &filterStream{src: r, set: s}
}

type filterStream struct {
	src vcf.RecordReader
	set *Set
}

func (f *filterStream) Next() (*vcf.Record, error) {
	for {
		rec, err := f.src.Next()
		if err != nil || rec == nil {
			return nil, err
		}
		if f.set.Contains(rec.Chrom, rec.Pos) {
			return rec, nil
		}
	}
}

func (f *filterStream) Close() error {
	return f.src.Close()
}
