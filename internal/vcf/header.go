package vcf

import "strings"

// Header holds the parsed meta-information and column header of a VCF file.
type Header struct {
	FileFormat string   // value of the ##fileformat line, e.g. "VCFv4.2"
	Meta       []string // raw ## lines in file order, including ##fileformat
	Contigs    []string // contig IDs from ##contig lines, in declaration order
	Samples    []string // sample names from the #CHROM line, in column order
}

// Fixed VCF columns preceding FORMAT and the sample columns.
var fixedColumns = []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}

// SampleIndex returns the column index of the named sample, or -1.
func (h *Header) SampleIndex(name string) int {
	for i, s := range h.Samples {
		if s == name {
			return i
		}
	}
	return -1
}

// ContigRank returns the declaration order of a contig, for sorting.
// The second return is false when the contig is not declared.
func (h *Header) ContigRank(chrom string) (int, bool) {
	for i, c := range h.Contigs {
		if c == chrom {
			return i, true
		}
	}
	return 0, false
}

// Clone returns a deep copy of the header.
func (h *Header) Clone() *Header {
	return &Header{
		FileFormat: h.FileFormat,
		Meta:       append([]string(nil), h.Meta...),
		Contigs:    append([]string(nil), h.Contigs...),
		Samples:    append([]string(nil), h.Samples...),
	}
}

// ColumnLine renders the #CHROM header line for this header's samples.
func (h *Header) ColumnLine() string {
	cols := append([]string(nil), fixedColumns...)
	if len(h.Samples) > 0 {
		cols = append(cols, "FORMAT")
		cols = append(cols, h.Samples...)
	}
	return strings.Join(cols, "\t")
}

// contigID extracts the ID field from a ##contig meta line, or "".
func contigID(line string) string {
	const prefix = "##contig=<"
	if !strings.HasPrefix(line, prefix) {
		return ""
	}
	body := strings.TrimSuffix(line[len(prefix):], ">")
	for _, kv := range strings.Split(body, ",") {
		if v, ok := strings.CutPrefix(kv, "ID="); ok {
			return v
		}
	}
	return ""
}
