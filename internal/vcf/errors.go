package vcf

import "fmt"

// FormatError reports a malformed VCF header or record line. It aborts the
// stream; partial output downstream of a FormatError must be discarded.
type FormatError struct {
	File    string // input path, "" for anonymous readers
	Line    int    // 1-based line number, 0 when not line-addressable
	Message string
}

func (e *FormatError) Error() string {
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s: format error at line %d: %s", e.File, e.Line, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("format error at line %d: %s", e.Line, e.Message)
	default:
		return fmt.Sprintf("format error: %s", e.Message)
	}
}

// UnknownSampleError reports a reference to a sample name absent from the
// header.
type UnknownSampleError struct {
	Name string
}

func (e *UnknownSampleError) Error() string {
	return fmt.Sprintf("unknown sample %q", e.Name)
}

// DuplicateSampleError reports a sample rename that would collide with an
// existing name.
type DuplicateSampleError struct {
	Name string
}

func (e *DuplicateSampleError) Error() string {
	return fmt.Sprintf("duplicate sample name %q after rename", e.Name)
}

// OverlapError reports conflicting records at the same site during a
// disjoint-sites merge.
type OverlapError struct {
	Chrom string
	Pos   int64
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("conflicting records at %s:%d in disjoint-sites merge", e.Chrom, e.Pos)
}

// ChromMismatchError reports a chromosome name that does not occur in the
// header. Callers treat it as a per-entry no-op and log a warning rather
// than aborting, since naming convention mismatches ("chr1" vs "Chr01")
// are common.
type ChromMismatchError struct {
	Chrom  string
	Source string // what referenced the chrom: interval file, rename map, ...
}

func (e *ChromMismatchError) Error() string {
	return fmt.Sprintf("chromosome %q from %s not present in header", e.Chrom, e.Source)
}
