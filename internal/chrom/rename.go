// Package chrom implements chromosome renaming over a header and its
// record stream.
package chrom

import (
	"strings"

	"go.uber.org/zap"

	"github.com/vcfkit/vcfkit/internal/textfile"
	"github.com/vcfkit/vcfkit/internal/vcf"
)

// Renamer rewrites chromosome names per an old→new map.
type Renamer struct {
	mapping map[string]string
	logger  *zap.Logger
}

// NewRenamer builds a renamer from rename pairs. Map entries whose old
// name matches no contig in the header are logged as warnings and become
// no-ops: naming convention mismatches between files are routine and must
// not abort a run.
func NewRenamer(h *vcf.Header, pairs []textfile.Pair, logger *zap.Logger) *Renamer {
	if logger == nil {
		logger = zap.NewNop()
	}
	mapping := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if len(h.Contigs) > 0 {
			if _, ok := h.ContigRank(p.Old); !ok {
				err := &vcf.ChromMismatchError{Chrom: p.Old, Source: "rename map"}
				logger.Warn("rename entry matches no contig, skipping",
					zap.String("old", p.Old),
					zap.String("new", p.New),
					zap.Error(err))
				continue
			}
		}
		mapping[p.Old] = p.New
	}
	return &Renamer{mapping: mapping, logger: logger}
}

// Header returns a copy of the header with contig names rewritten, both
// in the contig list and the raw ##contig meta lines.
func (rn *Renamer) Header(h *vcf.Header) *vcf.Header {
	out := h.Clone()
	for i, c := range out.Contigs {
		if newName, ok := rn.mapping[c]; ok {
			out.Contigs[i] = newName
		}
	}
	for i, line := range out.Meta {
		if !strings.HasPrefix(line, "##contig=<") {
			continue
		}
		for old, newName := range rn.mapping {
			line = strings.Replace(line, "<ID="+old+",", "<ID="+newName+",", 1)
			line = strings.Replace(line, "<ID="+old+">", "<ID="+newName+">", 1)
		}
		out.Meta[i] = line
	}
	return out
}

// Apply returns the record with its chromosome renamed, or the record
// unchanged when no map entry applies.
func (rn *Renamer) Apply(r *vcf.Record) *vcf.Record {
	newName, ok := rn.mapping[r.Chrom]
	if !ok {
		return r
	}
	out := r.Clone()
	out.Chrom = newName
	return out
}

// Stream wraps a record stream with the rename.
func (rn *Renamer) Stream(r vcf.RecordReader) vcf.RecordReader {
	return &renameStream{src: r, rn: rn}
}

type renameStream struct {
	src vcf.RecordReader
	rn  *Renamer
}

func (s *renameStream) Next() (*vcf.Record, error) {
	rec, err := s.src.Next()
	if err != nil || rec == nil {
		return nil, err
	}
	return s.rn.Apply(rec), nil
}

func (s *renameStream) Close() error {
	return s.src.Close()
}
