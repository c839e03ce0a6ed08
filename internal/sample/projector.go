// Package sample implements sample-column projection: keeping, removing,
// and renaming the sample columns of a VCF stream.
package sample

import (
	"github.com/vcfkit/vcfkit/internal/textfile"
	"github.com/vcfkit/vcfkit/internal/vcf"
)

// Projection selects a subset of sample columns. It carries the rewritten
// header and applies the matching column selection to each record.
type Projection struct {
	header  *vcf.Header
	indices []int // source column index, in output order
}

// Keep returns a projection onto the named samples, preserving their
// relative order in the header. Referencing an absent name is an
// UnknownSampleError.
func Keep(h *vcf.Header, names []string) (*Projection, error) {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if h.SampleIndex(name) < 0 {
			return nil, &vcf.UnknownSampleError{Name: name}
		}
		wanted[name] = true
	}
	return project(h, func(name string) bool { return wanted[name] }), nil
}

// Remove returns a projection onto the complement of the named samples.
func Remove(h *vcf.Header, names []string) (*Projection, error) {
	dropped := make(map[string]bool, len(names))
	for _, name := range names {
		if h.SampleIndex(name) < 0 {
			return nil, &vcf.UnknownSampleError{Name: name}
		}
		dropped[name] = true
	}
	return project(h, func(name string) bool { return !dropped[name] }), nil
}

func project(h *vcf.Header, keep func(string) bool) *Projection {
	out := h.Clone()
	out.Samples = nil
	var indices []int
	for i, name := range h.Samples {
		if keep(name) {
			out.Samples = append(out.Samples, name)
			indices = append(indices, i)
		}
	}
	return &Projection{header: out, indices: indices}
}

// Header returns the projected header.
func (p *Projection) Header() *vcf.Header {
	return p.header
}

// Apply returns a copy of the record with only the projected sample
// columns. The input record is not modified.
func (p *Projection) Apply(r *vcf.Record) *vcf.Record {
	out := r.Clone()
	out.Samples = make([][]string, 0, len(p.indices))
	for _, i := range p.indices {
		out.Samples = append(out.Samples, append([]string(nil), r.Samples[i]...))
	}
	if len(out.Samples) == 0 {
		out.Format = nil
	}
	return out
}

// Stream wraps a record stream with this projection.
func (p *Projection) Stream(r vcf.RecordReader) vcf.RecordReader {
	return &projectionStream{src: r, p: p}
}

type projectionStream struct {
	src vcf.RecordReader
	p   *Projection
}

func (s *projectionStream) Next() (*vcf.Record, error) {
	rec, err := s.src.Next()
	if err != nil || rec == nil {
		return nil, err
	}
	return s.p.Apply(rec), nil
}

func (s *projectionStream) Close() error {
	return s.src.Close()
}

// Rename applies old→new sample renames to a header and returns the
// rewritten copy. Names absent from the header pass through unchanged;
// a rename that collides with another sample name is a
// DuplicateSampleError. Record bodies are positional and unaffected.
func Rename(h *vcf.Header, pairs []textfile.Pair) (*vcf.Header, error) {
	mapping := make(map[string]string, len(pairs))
	for _, p := range pairs {
		mapping[p.Old] = p.New
	}

	out := h.Clone()
	seen := make(map[string]bool, len(out.Samples))
	for i, name := range out.Samples {
		if newName, ok := mapping[name]; ok {
			out.Samples[i] = newName
		}
		if seen[out.Samples[i]] {
			return nil, &vcf.DuplicateSampleError{Name: out.Samples[i]}
		}
		seen[out.Samples[i]] = true
	}
	return out, nil
}
