package region

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcfkit/vcfkit/internal/vcf"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Interval
		wantErr bool
	}{
		{in: "chr1:100-200", want: Interval{Chrom: "chr1", Start: 100, End: 200}},
		{in: "chr1:150", want: Interval{Chrom: "chr1", Start: 150, End: 150}},
		{in: "chrX", want: Interval{Chrom: "chrX", Start: 1, End: 1<<63 - 1}},
		{in: "chr1:200-100", wantErr: true},
		{in: ":100-200", wantErr: true},
		{in: "chr1:abc-200", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSet_Contains(t *testing.T) {
	s := NewSet(
		Interval{Chrom: "chr1", Start: 100, End: 200},
		Interval{Chrom: "chr2", Start: 1, End: 50},
	)

	assert.True(t, s.Contains("chr1", 100))
	assert.True(t, s.Contains("chr1", 200))
	assert.False(t, s.Contains("chr1", 201))
	assert.True(t, s.Contains("chr2", 50))
	// Chrom match is exact: no normalization between conventions.
	assert.False(t, s.Contains("1", 150))
	assert.False(t, s.Contains("Chr1", 150))
}

func streamOf(t *testing.T, body string) vcf.RecordReader {
	t.Helper()
	in := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" + body
	r, err := vcf.NewReaderFrom(strings.NewReader(in))
	require.NoError(t, err)
	return r
}

func collect(t *testing.T, r vcf.RecordReader) []*vcf.Record {
	t.Helper()
	var out []*vcf.Record
	for {
		rec, err := r.Next()
		require.NoError(t, err)
		if rec == nil {
			return out
		}
		out = append(out, rec)
	}
}

const fourSites = "chr1\t50\t.\tA\tG\t.\t.\t.\n" +
	"chr1\t150\t.\tC\tT\t.\t.\t.\n" +
	"chr1\t250\t.\tG\tA\t.\t.\t.\n" +
	"chr2\t150\t.\tT\tC\t.\t.\t.\n"

func TestFilter(t *testing.T) {
	s := NewSet(Interval{Chrom: "chr1", Start: 100, End: 200})
	got := collect(t, Filter(streamOf(t, fourSites), s))

	require.Len(t, got, 1)
	assert.Equal(t, int64(150), got[0].Pos)
	assert.Equal(t, "chr1", got[0].Chrom)
}

// Filtering with the union of two disjoint sets must equal the union of
// the two individual results, in original order with no duplicates.
func TestFilter_UnionMonotonic(t *testing.T) {
	a := Interval{Chrom: "chr1", Start: 1, End: 100}
	b := Interval{Chrom: "chr1", Start: 200, End: 300}

	gotA := collect(t, Filter(streamOf(t, fourSites), NewSet(a)))
	gotB := collect(t, Filter(streamOf(t, fourSites), NewSet(b)))
	gotUnion := collect(t, Filter(streamOf(t, fourSites), NewSet(a, b)))

	require.Len(t, gotUnion, len(gotA)+len(gotB))
	assert.Equal(t, int64(50), gotUnion[0].Pos)
	assert.Equal(t, int64(250), gotUnion[1].Pos)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regions.txt")
	content := "chr1:100-200\n" +
		"# a comment\n" +
		"chr2\t0\t50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := ReadFile(path)
	require.NoError(t, err)

	assert.True(t, s.Contains("chr1", 150))
	// BED rows are half-open 0-based: chr2 0..50 covers positions 1..50.
	assert.True(t, s.Contains("chr2", 1))
	assert.True(t, s.Contains("chr2", 50))
	assert.False(t, s.Contains("chr2", 51))
}

func TestReadFile_BadColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regions.txt")
	require.NoError(t, os.WriteFile(path, []byte("chr1\t100\n"), 0o644))

	_, err := ReadFile(path)
	var fe *vcf.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, fe.Line)
}

// Line numbers in errors are physical file lines, counting the comments
// and blank lines the reader skips.
func TestReadFile_ErrorLineCountsSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regions.txt")
	content := "# header comment\n" +
		"\n" +
		"chr1:100-200\n" +
		"chr1\t100\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ReadFile(path)
	var fe *vcf.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 4, fe.Line)
}

func TestReadPositions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sites.txt")
	require.NoError(t, os.WriteFile(path, []byte("chr1\t150\nchr2\t150\n"), 0o644))

	s, err := ReadPositions(path)
	require.NoError(t, err)

	got := collect(t, Filter(streamOf(t, fourSites), s))
	require.Len(t, got, 2)
	assert.Equal(t, "chr1", got[0].Chrom)
	assert.Equal(t, "chr2", got[1].Chrom)
}

func TestReadPositions_ErrorLineCountsSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sites.txt")
	content := "# chrom pos\n" +
		"chr1\t150\n" +
		"chr2\tnot-a-number\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ReadPositions(path)
	var fe *vcf.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 3, fe.Line)
}
