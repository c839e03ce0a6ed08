package split

import (
	"fmt"
	"strings"

	"github.com/vcfkit/vcfkit/internal/region"
	"github.com/vcfkit/vcfkit/internal/vcf"
)

// Mode selects the merge semantics.
type Mode int

const (
	// DisjointSites merges inputs that share an identical sample list
	// and cover non-overlapping sites. Output is ordered by (chrom, pos);
	// the same site in two inputs is an OverlapError.
	DisjointSites Mode = iota
	// UnionSamples merges inputs with different sample sets. The output
	// sample list is the first input's samples followed by each later
	// input's new samples; records at a shared site are combined, with
	// missing genotypes filled for samples absent from an input.
	UnionSamples
)

// Input is one merge source: its header plus its record stream.
type Input struct {
	Header  *vcf.Header
	Records vcf.RecordReader
}

// siteOrder compares sites by chromosome rank then position. Chromosomes
// declared in the reference header's contig list sort in declaration
// order ahead of undeclared ones; undeclared chromosomes compare
// lexically. This matches header-driven ordering in bcftools.
type siteOrder struct {
	rank map[string]int
}

func newSiteOrder(h *vcf.Header) *siteOrder {
	rank := make(map[string]int, len(h.Contigs))
	for i, c := range h.Contigs {
		rank[c] = i
	}
	return &siteOrder{rank: rank}
}

func (o *siteOrder) cmp(a, b *vcf.Record) int {
	if a.Chrom != b.Chrom {
		ra, oka := o.rank[a.Chrom]
		rb, okb := o.rank[b.Chrom]
		switch {
		case oka && okb:
			return ra - rb
		case oka:
			return -1
		case okb:
			return 1
		default:
			return strings.Compare(a.Chrom, b.Chrom)
		}
	}
	switch {
	case a.Pos < b.Pos:
		return -1
	case a.Pos > b.Pos:
		return 1
	default:
		return 0
	}
}

// Merge combines multiple record streams. It returns the merged header
// and a lazy stream; at any moment at most one pending record per input
// is buffered, so memory is bounded regardless of file sizes.
func Merge(inputs []Input, mode Mode) (*vcf.Header, vcf.RecordReader, error) {
	if len(inputs) == 0 {
		return nil, nil, fmt.Errorf("merge requires at least one input")
	}

	switch mode {
	case DisjointSites:
		for i, in := range inputs[1:] {
			if !sameSamples(inputs[0].Header, in.Header) {
				return nil, nil, &vcf.FormatError{
					Message: fmt.Sprintf("disjoint-sites merge requires identical sample lists, input %d differs", i+2),
				}
			}
		}
		h := inputs[0].Header.Clone()
		return h, &disjointMerge{inputs: inputs, order: newSiteOrder(h), pending: make([]*vcf.Record, len(inputs))}, nil

	case UnionSamples:
		h := inputs[0].Header.Clone()
		sampleAt := make([][]int, len(inputs)) // input sample idx -> merged idx
		seen := make(map[string]int, len(h.Samples))
		for i, s := range h.Samples {
			seen[s] = i
		}
		for i, in := range inputs {
			sampleAt[i] = make([]int, len(in.Header.Samples))
			for j, s := range in.Header.Samples {
				idx, ok := seen[s]
				if !ok {
					idx = len(h.Samples)
					h.Samples = append(h.Samples, s)
					seen[s] = idx
				}
				sampleAt[i][j] = idx
			}
		}
		return h, &unionMerge{
			inputs:   inputs,
			order:    newSiteOrder(h),
			pending:  make([]*vcf.Record, len(inputs)),
			sampleAt: sampleAt,
			total:    len(h.Samples),
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown merge mode %d", mode)
	}
}

func sameSamples(a, b *vcf.Header) bool {
	if len(a.Samples) != len(b.Samples) {
		return false
	}
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			return false
		}
	}
	return true
}

// advance fills pending[i] from input i unless a record is already
// buffered or the input is drained.
func advance(inputs []Input, pending []*vcf.Record, i int) error {
	if pending[i] != nil {
		return nil
	}
	rec, err := inputs[i].Records.Next()
	if err != nil {
		return err
	}
	pending[i] = rec
	return nil
}

func closeInputs(inputs []Input) error {
	var firstErr error
	for _, in := range inputs {
		if err := in.Records.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type disjointMerge struct {
	inputs  []Input
	order   *siteOrder
	pending []*vcf.Record
}

func (m *disjointMerge) Next() (*vcf.Record, error) {
	min := -1
	for i := range m.inputs {
		if err := advance(m.inputs, m.pending, i); err != nil {
			return nil, err
		}
		if m.pending[i] == nil {
			continue
		}
		if min < 0 {
			min = i
			continue
		}
		c := m.order.cmp(m.pending[i], m.pending[min])
		if c == 0 {
			return nil, &vcf.OverlapError{Chrom: m.pending[i].Chrom, Pos: m.pending[i].Pos}
		}
		if c < 0 {
			min = i
		}
	}
	if min < 0 {
		return nil, nil
	}
	rec := m.pending[min]
	m.pending[min] = nil
	return rec, nil
}

func (m *disjointMerge) Close() error {
	return closeInputs(m.inputs)
}

type unionMerge struct {
	inputs   []Input
	order    *siteOrder
	pending  []*vcf.Record
	sampleAt [][]int
	total    int // merged sample count
}

func (m *unionMerge) Next() (*vcf.Record, error) {
	min := -1
	for i := range m.inputs {
		if err := advance(m.inputs, m.pending, i); err != nil {
			return nil, err
		}
		if m.pending[i] == nil {
			continue
		}
		if min < 0 || m.order.cmp(m.pending[i], m.pending[min]) < 0 {
			min = i
		}
	}
	if min < 0 {
		return nil, nil
	}

	site := m.pending[min]
	out := site.Clone()
	out.Samples = make([][]string, m.total)
	gt := out.FormatIndex("GT")
	for s := range out.Samples {
		out.Samples[s] = missingColumn(out.Format, gt)
	}

	// Fold in every input holding a record at this site.
	for i := range m.inputs {
		rec := m.pending[i]
		if rec == nil || m.order.cmp(rec, site) != 0 {
			continue
		}
		if err := m.fold(out, rec, i); err != nil {
			return nil, err
		}
		m.pending[i] = nil
	}
	return out, nil
}

// fold copies one input record's sample columns into the merged record,
// re-keying values by FORMAT tag and remapping genotype allele indices
// into the merged ALT list.
func (m *unionMerge) fold(out *vcf.Record, rec *vcf.Record, input int) error {
	if rec.Ref != out.Ref {
		return &vcf.FormatError{
			Message: fmt.Sprintf("REF mismatch at %s:%d between merge inputs (%s vs %s)",
				rec.Chrom, rec.Pos, out.Ref, rec.Ref),
		}
	}

	// Allele index remap: 0 stays REF, alts are unioned in first-seen order.
	alleleAt := make([]int, 1+len(rec.Alt))
	for k, alt := range rec.Alt {
		idx := -1
		for a, existing := range out.Alt {
			if existing == alt {
				idx = a + 1
				break
			}
		}
		if idx < 0 {
			out.Alt = append(out.Alt, alt)
			idx = len(out.Alt)
		}
		alleleAt[k+1] = idx
	}

	for j, col := range rec.Samples {
		merged := out.Samples[m.sampleAt[input][j]]
		for t, tag := range out.Format {
			src := rec.FormatIndex(tag)
			if src < 0 || src >= len(col) {
				continue
			}
			v := col[src]
			if tag == "GT" {
				v = remapGenotype(v, alleleAt)
			}
			merged[t] = v
		}
	}
	return nil
}

// missingColumn builds a per-sample value vector of placeholders, using
// the uncalled genotype "./." for the GT tag.
func missingColumn(format []string, gtIndex int) []string {
	col := make([]string, len(format))
	for i := range col {
		if i == gtIndex {
			col[i] = "./."
		} else {
			col[i] = "."
		}
	}
	return col
}

// remapGenotype rewrites allele indices in a GT value, preserving phase
// separators and missing alleles.
func remapGenotype(gt string, alleleAt []int) string {
	var b strings.Builder
	num := -1
	flushNum := func() {
		if num < 0 {
			return
		}
		if num < len(alleleAt) {
			fmt.Fprintf(&b, "%d", alleleAt[num])
		} else {
			fmt.Fprintf(&b, "%d", num)
		}
		num = -1
	}
	for _, c := range gt {
		if c >= '0' && c <= '9' {
			if num < 0 {
				num = 0
			}
			num = num*10 + int(c-'0')
			continue
		}
		flushNum()
		b.WriteRune(c)
	}
	flushNum()
	return b.String()
}

func (m *unionMerge) Close() error {
	return closeInputs(m.inputs)
}

// Concat emits each input's records fully, in the given input order,
// without reordering. All inputs must carry an identical sample list.
// When intervals is non-nil, records outside the set are dropped.
func Concat(inputs []Input, intervals *region.Set) (*vcf.Header, vcf.RecordReader, error) {
	if len(inputs) == 0 {
		return nil, nil, fmt.Errorf("concat requires at least one input")
	}
	for i, in := range inputs[1:] {
		if !sameSamples(inputs[0].Header, in.Header) {
			return nil, nil, &vcf.FormatError{
				Message: fmt.Sprintf("concat requires identical sample lists, input %d differs", i+2),
			}
		}
	}

	var stream vcf.RecordReader = &concatStream{inputs: inputs}
	if intervals != nil && !intervals.Empty() {
		stream = region.Filter(stream, intervals)
	}
	return inputs[0].Header.Clone(), stream, nil
}

type concatStream struct {
	inputs []Input
	cur    int
}

func (c *concatStream) Next() (*vcf.Record, error) {
	for c.cur < len(c.inputs) {
		rec, err := c.inputs[c.cur].Records.Next()
		if err != nil {
			return nil, err
		}
		if rec != nil {
			return rec, nil
		}
		c.cur++
	}
	return nil, nil
}

func (c *concatStream) Close() error {
	return closeInputs(c.inputs)
}
