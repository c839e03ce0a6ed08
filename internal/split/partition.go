// Package split implements chromosome partitioning and multi-stream
// merging of VCF record streams.
package split

import (
	"github.com/vcfkit/vcfkit/internal/vcf"
)

// PartitionOptions configures Partition.
type PartitionOptions struct {
	// MaxRecords caps the number of records per output file. When a
	// chromosome exceeds the cap its output is rolled over to the next
	// shard. Zero means one file per chromosome.
	MaxRecords int
}

// OpenFunc creates the output writer for a (chrom, shard) pair and writes
// its header. Shard numbers start at 0 and only advance when MaxRecords
// is set.
type OpenFunc func(chrom string, shard int) (*vcf.Writer, error)

type partitionOutput struct {
	writer *vcf.Writer
	shard  int
	n      int // records in the current shard
}

// Partition splits a record stream into one output stream per chromosome,
// preserving input order within each chromosome. Outputs are opened on
// first sight of a chromosome and all stay open until the input is
// drained, since input chromosomes may interleave. Returns total record
// counts per chromosome.
func Partition(r vcf.RecordReader, opts PartitionOptions, open OpenFunc) (map[string]int, error) {
	outputs := make(map[string]*partitionOutput)
	counts := make(map[string]int)

	closeAll := func() error {
		var firstErr error
		for _, out := range outputs {
			if err := out.writer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	for {
		rec, err := r.Next()
		if err != nil {
			closeAll()
			return nil, err
		}
		if rec == nil {
			break
		}

		out, ok := outputs[rec.Chrom]
		if !ok {
			w, err := open(rec.Chrom, 0)
			if err != nil {
				closeAll()
				return nil, err
			}
			out = &partitionOutput{writer: w}
			outputs[rec.Chrom] = out
		}

		if opts.MaxRecords > 0 && out.n == opts.MaxRecords {
			// Drop the entry before rolling over so a failure below does
			// not leave a closed or nil writer for closeAll to close.
			delete(outputs, rec.Chrom)
			if err := out.writer.Close(); err != nil {
				closeAll()
				return nil, err
			}
			w, err := open(rec.Chrom, out.shard+1)
			if err != nil {
				closeAll()
				return nil, err
			}
			out = &partitionOutput{writer: w, shard: out.shard + 1}
			outputs[rec.Chrom] = out
		}

		if err := out.writer.WriteRecord(rec); err != nil {
			closeAll()
			return nil, err
		}
		out.n++
		counts[rec.Chrom]++
	}

	return counts, closeAll()
}
