// Package vcf provides a typed VCF record model and streaming reader/writer.
package vcf

// InfoField is a single key/value entry from the INFO column. Flag entries
// (present without a value) have Flag set and an empty Value.
type InfoField struct {
	Key   string
	Value string
	Flag  bool
}

// Record represents a single data line from a VCF file.
type Record struct {
	Chrom   string     // Chromosome name (e.g., "12", "chr12")
	Pos     int64      // 1-based genomic position
	ID      string     // Variant identifier, "" if missing
	Ref     string     // Reference allele
	Alt     []string   // Alternate alleles, in column order
	Qual    float64    // Quality score, valid only when HasQual
	HasQual bool       // False when the QUAL column is "."
	Filter  []string   // Filter entries, nil if missing
	Info    []InfoField
	Format  []string   // FORMAT tags, nil when the file has no sample columns
	Samples [][]string // Per-sample values aligned to Format, one slice per sample
}

// InfoValue returns the value of the named INFO key.
func (r *Record) InfoValue(key string) (string, bool) {
	for _, f := range r.Info {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// FormatIndex returns the position of the given FORMAT tag, or -1.
func (r *Record) FormatIndex(tag string) int {
	for i, t := range r.Format {
		if t == tag {
			return i
		}
	}
	return -1
}

// Genotype returns the GT value for sample i, or "" if the record carries
// no GT tag or the sample column is short.
func (r *Record) Genotype(i int) string {
	gt := r.FormatIndex("GT")
	if gt < 0 || i < 0 || i >= len(r.Samples) {
		return ""
	}
	if gt >= len(r.Samples[i]) {
		return ""
	}
	return r.Samples[i][gt]
}

// IsSNV returns true if the record is a biallelic single nucleotide variant.
func (r *Record) IsSNV() bool {
	return len(r.Alt) == 1 && len(r.Ref) == 1 && len(r.Alt[0]) == 1
}

// IsIndel returns true if any alternate allele differs in length from REF.
func (r *Record) IsIndel() bool {
	for _, alt := range r.Alt {
		if len(alt) != len(r.Ref) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the record. Transforms never mutate records
// in place; they clone and modify the copy.
func (r *Record) Clone() *Record {
	c := *r
	c.Alt = append([]string(nil), r.Alt...)
	c.Filter = append([]string(nil), r.Filter...)
	c.Info = append([]InfoField(nil), r.Info...)
	c.Format = append([]string(nil), r.Format...)
	c.Samples = make([][]string, len(r.Samples))
	for i, s := range r.Samples {
		c.Samples[i] = append([]string(nil), s...)
	}
	return &c
}

// RecordReader is the interface for anything that yields a stream of
// records. Next returns nil, nil when the stream is exhausted. Stream
// transforms both consume and implement this interface so they compose.
type RecordReader interface {
	Next() (*Record, error)
	Close() error
}
