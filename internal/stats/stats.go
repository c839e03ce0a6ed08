// Package stats computes single-pass summary statistics over a VCF
// record stream.
package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/stat"

	"github.com/vcfkit/vcfkit/internal/qual"
	"github.com/vcfkit/vcfkit/internal/vcf"
)

// afsBins is the number of allele-frequency spectrum bins.
const afsBins = 10

// Summary holds the aggregated results of one pass over a stream.
type Summary struct {
	Samples       int
	Records       int
	SNVs          int
	Indels        int
	MultiAllelic  int
	Transitions   int
	Transversions int

	ChromOrder []string // chromosomes in first-seen order
	PerChrom   map[string]int

	Quals        []float64 // QUAL values of records that carry one
	MissingRates []float64
	AFS          [afsBins]int // sites per minor allele frequency bin
}

// transitions between purines (A<->G) or pyrimidines (C<->T).
var transitionPairs = map[string]bool{
	"AG": true, "GA": true, "CT": true, "TC": true,
}

// Collect drains a record stream and aggregates the summary.
func Collect(h *vcf.Header, r vcf.RecordReader) (*Summary, error) {
	s := &Summary{
		Samples:  len(h.Samples),
		PerChrom: make(map[string]int),
	}

	for {
		rec, err := r.Next()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			break
		}
		s.add(rec)
	}
	return s, nil
}

func (s *Summary) add(r *vcf.Record) {
	s.Records++
	if _, seen := s.PerChrom[r.Chrom]; !seen {
		s.ChromOrder = append(s.ChromOrder, r.Chrom)
	}
	s.PerChrom[r.Chrom]++

	if len(r.Alt) > 1 {
		s.MultiAllelic++
	}
	if r.IsSNV() {
		s.SNVs++
		if transitionPairs[r.Ref+r.Alt[0]] {
			s.Transitions++
		} else {
			s.Transversions++
		}
	} else if r.IsIndel() {
		s.Indels++
	}

	if r.HasQual {
		s.Quals = append(s.Quals, r.Qual)
	}

	if len(r.Samples) > 0 {
		s.MissingRates = append(s.MissingRates, qual.MissingRate(r))
		maf, called := qual.MAF(r)
		if called > 0 {
			bin := int(maf * 2 * afsBins) // maf is in [0, 0.5]
			if bin >= afsBins {
				bin = afsBins - 1
			}
			s.AFS[bin]++
		}
	}
}

// TsTv returns the transition/transversion ratio, or 0 when undefined.
func (s *Summary) TsTv() float64 {
	if s.Transversions == 0 {
		return 0
	}
	return float64(s.Transitions) / float64(s.Transversions)
}

// Render writes a human-readable report. When plot is set, the
// allele-frequency spectrum is drawn as a terminal histogram.
func (s *Summary) Render(w io.Writer, plot bool) error {
	fmt.Fprintf(w, "records:        %d\n", s.Records)
	fmt.Fprintf(w, "samples:        %d\n", s.Samples)
	fmt.Fprintf(w, "SNVs:           %d\n", s.SNVs)
	fmt.Fprintf(w, "indels:         %d\n", s.Indels)
	fmt.Fprintf(w, "multi-allelic:  %d\n", s.MultiAllelic)
	if s.Transversions > 0 {
		fmt.Fprintf(w, "ts/tv:          %.2f\n", s.TsTv())
	}

	if len(s.Quals) > 0 {
		sorted := append([]float64(nil), s.Quals...)
		sort.Float64s(sorted)
		fmt.Fprintf(w, "qual mean:      %.2f\n", stat.Mean(sorted, nil))
		fmt.Fprintf(w, "qual stddev:    %.2f\n", stat.StdDev(sorted, nil))
		fmt.Fprintf(w, "qual median:    %.2f\n", stat.Quantile(0.5, stat.Empirical, sorted, nil))
	}
	if len(s.MissingRates) > 0 {
		fmt.Fprintf(w, "missing mean:   %.3f\n", stat.Mean(s.MissingRates, nil))
	}

	fmt.Fprintf(w, "\nrecords per chromosome:\n")
	for _, chrom := range s.ChromOrder {
		fmt.Fprintf(w, "  %s\t%d\n", chrom, s.PerChrom[chrom])
	}

	if plot {
		data := make([]float64, afsBins)
		total := 0
		for i, c := range s.AFS {
			data[i] = float64(c)
			total += c
		}
		if total > 0 {
			fmt.Fprintf(w, "\nminor allele frequency spectrum (%d sites, bins of 0.05):\n", total)
			fmt.Fprintln(w, asciigraph.Plot(data, asciigraph.Height(8), asciigraph.Precision(0)))
		}
	}
	return nil
}

// RenderPerChromTSV writes the per-chromosome counts as plain TSV, for
// piping into other tools.
func (s *Summary) RenderPerChromTSV(w io.Writer) error {
	var b strings.Builder
	for _, chrom := range s.ChromOrder {
		fmt.Fprintf(&b, "%s\t%d\n", chrom, s.PerChrom[chrom])
	}
	_, err := io.WriteString(w, b.String())
	return err
}
