// Package qual implements the genotype-based quality filter: per-site
// missingness rate and minor allele frequency thresholds.
package qual

import (
	"strings"

	"github.com/vcfkit/vcfkit/internal/vcf"
)

// Thresholds configures the filter. A record is kept when its missingness
// rate is at most MaxMissing and its MAF is at least MinMAF.
type Thresholds struct {
	MaxMissing float64 // fraction of samples allowed to be uncalled, 0..1
	MinMAF     float64 // minimum minor allele frequency, 0..0.5
}

// alleles splits a GT value into allele indices. Missing alleles ("." or
// an empty GT) return ok=false: the whole sample counts as uncalled, the
// same way vcftools treats partial calls.
func alleles(gt string) (indices []int, ok bool) {
	if gt == "" || gt == "." {
		return nil, false
	}
	parts := strings.FieldsFunc(gt, func(r rune) bool { return r == '/' || r == '|' })
	indices = make([]int, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." {
			return nil, false
		}
		idx := 0
		for _, c := range p {
			if c < '0' || c > '9' {
				return nil, false
			}
			idx = idx*10 + int(c-'0')
		}
		indices = append(indices, idx)
	}
	return indices, len(indices) > 0
}

// MissingRate returns the fraction of samples without a called genotype.
// Records with no samples report zero missingness.
func MissingRate(r *vcf.Record) float64 {
	if len(r.Samples) == 0 {
		return 0
	}
	missing := 0
	for i := range r.Samples {
		if _, ok := alleles(r.Genotype(i)); !ok {
			missing++
		}
	}
	return float64(missing) / float64(len(r.Samples))
}

// MAF returns the minor allele frequency over called alleles only, and
// the number of called alleles. At biallelic sites this is min(p, 1-p)
// for the alternate allele frequency p. At multi-allelic sites the
// policy is the minimum non-reference allele frequency, which reduces to
// the biallelic definition when only one alt is present.
func MAF(r *vcf.Record) (maf float64, called int) {
	counts := make([]int, 1+len(r.Alt))
	for i := range r.Samples {
		indices, ok := alleles(r.Genotype(i))
		if !ok {
			continue
		}
		for _, idx := range indices {
			if idx >= 0 && idx < len(counts) {
				counts[idx]++
				called++
			}
		}
	}
	if called == 0 {
		return 0, 0
	}

	if len(r.Alt) <= 1 {
		p := float64(counts[len(counts)-1]) / float64(called)
		if len(counts) == 1 {
			p = 0 // no alt alleles declared
		}
		if p > 0.5 {
			p = 1 - p
		}
		return p, called
	}

	min := 1.0
	for _, c := range counts[1:] {
		f := float64(c) / float64(called)
		if f < min {
			min = f
		}
	}
	return min, called
}

// Filter returns the stream of records passing the thresholds. Sites
// where no genotype is called are dropped whenever MinMAF > 0, since a
// frequency cannot be computed for them.
func Filter(r vcf.RecordReader, t Thresholds) vcf.RecordReader {
	return &filterStream{src: r, t: t}
}

type filterStream struct {
	src vcf.RecordReader
	t   Thresholds
}

func (f *filterStream) Next() (*vcf.Record, error) {
	for {
		rec, err := f.src.Next()
		if err != nil || rec == nil {
			return nil, err
		}
		if f.keep(rec) {
			return rec, nil
		}
	}
}

func (f *filterStream) keep(rec *vcf.Record) bool {
	if MissingRate(rec) > f.t.MaxMissing {
		return false
	}
	if f.t.MinMAF > 0 {
		maf, called := MAF(rec)
		if called == 0 || maf < f.t.MinMAF {
			return false
		}
	}
	return true
}

func (f *filterStream) Close() error {
	return f.src.Close()
}
