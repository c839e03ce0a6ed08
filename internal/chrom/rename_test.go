package chrom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vcfkit/vcfkit/internal/textfile"
	"github.com/vcfkit/vcfkit/internal/vcf"
)

func testStream(t *testing.T) *vcf.Reader {
	t.Helper()
	in := "##fileformat=VCFv4.2\n" +
		"##contig=<ID=1,length=1000>\n" +
		"##contig=<ID=2>\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
		"1\t100\t.\tA\tG\t.\t.\t.\n" +
		"2\t200\t.\tC\tT\t.\t.\t.\n"
	r, err := vcf.NewReaderFrom(strings.NewReader(in))
	require.NoError(t, err)
	return r
}

func TestRenamer(t *testing.T) {
	r := testStream(t)
	rn := NewRenamer(r.Header(), []textfile.Pair{{Old: "1", New: "chr1"}}, nil)

	h := rn.Header(r.Header())
	assert.Equal(t, []string{"chr1", "2"}, h.Contigs)
	assert.Contains(t, h.Meta, "##contig=<ID=chr1,length=1000>")
	assert.Contains(t, h.Meta, "##contig=<ID=2>")

	rec, err := rn.Stream(r).Next()
	require.NoError(t, err)
	assert.Equal(t, "chr1", rec.Chrom)
}

func TestRenamer_UnknownChromIsWarnedNoOp(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := testStream(t)

	rn := NewRenamer(r.Header(), []textfile.Pair{
		{Old: "Chr01", New: "chr1"}, // convention mismatch: not in header
		{Old: "2", New: "chr2"},
	}, zap.New(core))

	// The bad entry is logged and skipped; the rest of the run proceeds.
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "matches no contig")

	h := rn.Header(r.Header())
	assert.Equal(t, []string{"1", "chr2"}, h.Contigs)
}

func TestRenamer_NoContigDeclarations(t *testing.T) {
	// Without ##contig lines there is nothing to validate against, so
	// every map entry applies.
	in := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
		"1\t100\t.\tA\tG\t.\t.\t.\n"
	r, err := vcf.NewReaderFrom(strings.NewReader(in))
	require.NoError(t, err)

	rn := NewRenamer(r.Header(), []textfile.Pair{{Old: "1", New: "chr1"}}, nil)
	rec, err := rn.Stream(r).Next()
	require.NoError(t, err)
	assert.Equal(t, "chr1", rec.Chrom)
}
