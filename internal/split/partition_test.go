package split

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcfkit/vcfkit/internal/vcf"
)

// memOpen collects partition output in memory, keyed by "chrom.shard".
func memOpen(h *vcf.Header) (map[string]*bytes.Buffer, OpenFunc) {
	buffers := make(map[string]*bytes.Buffer)
	return buffers, func(chrom string, shard int) (*vcf.Writer, error) {
		buf := &bytes.Buffer{}
		buffers[fmt.Sprintf("%s.%d", chrom, shard)] = buf
		w := vcf.NewWriterTo(buf)
		if err := w.WriteHeader(h); err != nil {
			return nil, err
		}
		return w, nil
	}
}

func TestPartition(t *testing.T) {
	// chr1 and chr2 records interleave.
	in := input(t, "S1",
		"chr1\t100\t.\tA\tG\t.\t.\t.\tGT\t0/1\n"+
			"chr2\t50\t.\tC\tT\t.\t.\t.\tGT\t0/0\n"+
			"chr1\t200\t.\tG\tA\t.\t.\t.\tGT\t1/1\n")

	buffers, open := memOpen(in.Header)
	counts, err := Partition(in.Records, PartitionOptions{}, open)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"chr1": 2, "chr2": 1}, counts)
	require.Contains(t, buffers, "chr1.0")
	require.Contains(t, buffers, "chr2.0")

	// Per-chromosome order is preserved.
	r, err := vcf.NewReaderFrom(buffers["chr1.0"])
	require.NoError(t, err)
	recs := drain(t, r)
	require.Len(t, recs, 2)
	assert.Equal(t, int64(100), recs[0].Pos)
	assert.Equal(t, int64(200), recs[1].Pos)
}

func TestPartition_MaxRecords(t *testing.T) {
	var body strings.Builder
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&body, "chr1\t%d\t.\tA\tG\t.\t.\t.\tGT\t0/1\n", i*100)
	}
	in := input(t, "S1", body.String())

	buffers, open := memOpen(in.Header)
	counts, err := Partition(in.Records, PartitionOptions{MaxRecords: 2}, open)
	require.NoError(t, err)

	assert.Equal(t, 5, counts["chr1"])
	assert.Len(t, buffers, 3) // shards of 2, 2, 1

	r, err := vcf.NewReaderFrom(buffers["chr1.2"])
	require.NoError(t, err)
	recs := drain(t, r)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(500), recs[0].Pos)
}

func TestPartition_RolloverOpenError(t *testing.T) {
	in := input(t, "S1",
		"chr1\t100\t.\tA\tG\t.\t.\t.\tGT\t0/1\n"+
			"chr1\t200\t.\tG\tA\t.\t.\t.\tGT\t1/1\n")

	_, open := memOpen(in.Header)
	failing := func(chrom string, shard int) (*vcf.Writer, error) {
		if shard > 0 {
			return nil, fmt.Errorf("open %s shard %d: disk full", chrom, shard)
		}
		return open(chrom, shard)
	}

	_, err := Partition(in.Records, PartitionOptions{MaxRecords: 1}, failing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
