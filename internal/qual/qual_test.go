package qual

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcfkit/vcfkit/internal/vcf"
)

func site(alts []string, genotypes ...string) *vcf.Record {
	r := &vcf.Record{
		Chrom: "chr1", Pos: 100, Ref: "A", Alt: alts,
		Format: []string{"GT"},
	}
	for _, gt := range genotypes {
		r.Samples = append(r.Samples, []string{gt})
	}
	return r
}

func TestMissingRate(t *testing.T) {
	r := site([]string{"G"}, "0/0", "0/1", "1/1", "./.")
	assert.InDelta(t, 0.25, MissingRate(r), 1e-9)

	// Half-missing calls count as uncalled.
	r = site([]string{"G"}, "./1", "0/0")
	assert.InDelta(t, 0.5, MissingRate(r), 1e-9)

	assert.Zero(t, MissingRate(site([]string{"G"})))
}

// The worked example: 0/0,0/1,1/1,./. gives missingness 0.25 and an alt
// count of 3 among 6 called alleles, so MAF = 0.5.
func TestMAF_Biallelic(t *testing.T) {
	r := site([]string{"G"}, "0/0", "0/1", "1/1", "./.")

	maf, called := MAF(r)
	assert.Equal(t, 6, called)
	assert.InDelta(t, 0.5, maf, 1e-9)
}

func TestMAF_MinorIsRef(t *testing.T) {
	// Alt freq 5/6; the minor allele is the reference at 1/6.
	r := site([]string{"G"}, "1/1", "1/1", "0/1")
	maf, _ := MAF(r)
	assert.InDelta(t, 1.0/6.0, maf, 1e-9)
}

// Multi-allelic policy: minimum non-reference allele frequency.
func TestMAF_MultiAllelic(t *testing.T) {
	// Alleles over 6 called: ref=3, alt1=2, alt2=1. Minimum non-reference
	// frequency is 1/6, not min over all alleles and not the combined alt
	// frequency.
	r := site([]string{"G", "T"}, "0/1", "0/1", "0/2")
	maf, called := MAF(r)
	assert.Equal(t, 6, called)
	assert.InDelta(t, 1.0/6.0, maf, 1e-9)
}

func TestMAF_PhasedGenotypes(t *testing.T) {
	r := site([]string{"G"}, "0|1", "1|1")
	maf, called := MAF(r)
	assert.Equal(t, 4, called)
	assert.InDelta(t, 0.25, maf, 1e-9)
}

func TestMAF_NoCalls(t *testing.T) {
	r := site([]string{"G"}, "./.", "./.")
	maf, called := MAF(r)
	assert.Zero(t, called)
	assert.Zero(t, maf)
}

func streamOf(t *testing.T, body string) vcf.RecordReader {
	t.Helper()
	in := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\tS2\tS3\tS4\n" + body
	r, err := vcf.NewReaderFrom(strings.NewReader(in))
	require.NoError(t, err)
	return r
}

const workedExample = "chr1\t100\t.\tA\tG\t.\t.\t.\tGT\t0/0\t0/1\t1/1\t./.\n"

func TestFilter_WorkedExample(t *testing.T) {
	// Kept under a loose missingness cap...
	r := Filter(streamOf(t, workedExample), Thresholds{MaxMissing: 0.9, MinMAF: 0.05})
	rec, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	rec, err = r.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)

	// ...dropped under a tight one.
	r = Filter(streamOf(t, workedExample), Thresholds{MaxMissing: 0.1, MinMAF: 0.05})
	rec, err = r.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestFilter_DropsUncallableSites(t *testing.T) {
	body := "chr1\t100\t.\tA\tG\t.\t.\t.\tGT\t./.\t./.\t./.\t./.\n"
	r := Filter(streamOf(t, body), Thresholds{MaxMissing: 1.0, MinMAF: 0.05})
	rec, err := r.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)

	// With no MAF threshold the site passes on missingness alone.
	r = Filter(streamOf(t, body), Thresholds{MaxMissing: 1.0})
	rec, err = r.Next()
	require.NoError(t, err)
	assert.NotNil(t, rec)
}
