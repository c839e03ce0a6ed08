package vcf

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestReader_SmallFile(t *testing.T) {
	r, err := NewReader(filepath.Join("testdata", "small.vcf"))
	if err != nil {
		t.Fatalf("Failed to create reader: %v", err)
	}
	defer r.Close()

	h := r.Header()
	if h.FileFormat != "VCFv4.2" {
		t.Errorf("Expected fileformat VCFv4.2, got %s", h.FileFormat)
	}
	if len(h.Contigs) != 2 || h.Contigs[0] != "chr1" || h.Contigs[1] != "chr2" {
		t.Errorf("Unexpected contigs: %v", h.Contigs)
	}
	if len(h.Samples) != 2 || h.Samples[0] != "NA001" || h.Samples[1] != "NA002" {
		t.Errorf("Unexpected samples: %v", h.Samples)
	}

	rec, err := r.Next()
	if err != nil {
		t.Fatalf("Failed to read record: %v", err)
	}
	if rec == nil {
		t.Fatal("Expected a record, got nil")
	}
	if rec.Chrom != "chr1" {
		t.Errorf("Expected chrom chr1, got %s", rec.Chrom)
	}
	if rec.Pos != 100 {
		t.Errorf("Expected pos 100, got %d", rec.Pos)
	}
	if rec.ID != "rs1" {
		t.Errorf("Expected id rs1, got %s", rec.ID)
	}
	if !rec.HasQual || rec.Qual != 50 {
		t.Errorf("Expected qual 50, got %v (has=%v)", rec.Qual, rec.HasQual)
	}
	if dp, ok := rec.InfoValue("DP"); !ok || dp != "20" {
		t.Errorf("Expected DP=20, got %q (%v)", dp, ok)
	}
	if gt := rec.Genotype(0); gt != "0/1" {
		t.Errorf("Expected genotype 0/1 for NA001, got %q", gt)
	}

	rec, err = r.Next()
	if err != nil {
		t.Fatalf("Failed to read second record: %v", err)
	}
	if rec.ID != "" {
		t.Errorf("Expected missing id, got %q", rec.ID)
	}
	if rec.HasQual {
		t.Error("Expected missing qual")
	}
	if len(rec.Alt) != 2 || rec.Alt[0] != "T" || rec.Alt[1] != "G" {
		t.Errorf("Unexpected alts: %v", rec.Alt)
	}
	if len(rec.Info) != 2 || !rec.Info[1].Flag || rec.Info[1].Key != "DB" {
		t.Errorf("Unexpected info: %v", rec.Info)
	}

	rec, err = r.Next()
	if err != nil {
		t.Fatalf("Failed to read third record: %v", err)
	}
	if rec.Chrom != "chr2" || rec.Qual != 12.5 {
		t.Errorf("Unexpected third record: %s:%d qual=%v", rec.Chrom, rec.Pos, rec.Qual)
	}

	rec, err = r.Next()
	if err != nil {
		t.Fatalf("Error checking for end of stream: %v", err)
	}
	if rec != nil {
		t.Error("Expected no more records")
	}
}

func TestReader_NoColumnHeader(t *testing.T) {
	_, err := NewReaderFrom(strings.NewReader("##fileformat=VCFv4.2\nchr1\t100\t.\tA\tG\t.\t.\t.\n"))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FormatError, got %v", err)
	}
	if fe.Line != 2 {
		t.Errorf("Expected error at line 2, got %d", fe.Line)
	}
}

func TestReader_DuplicateSamples(t *testing.T) {
	in := "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\tS1\n"
	_, err := NewReaderFrom(strings.NewReader(in))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FormatError for duplicate samples, got %v", err)
	}
}

func TestReader_BadPosition(t *testing.T) {
	in := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
		"chr1\tabc\t.\tA\tG\t.\t.\t.\n"
	r, err := NewReaderFrom(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Failed to create reader: %v", err)
	}
	_, err = r.Next()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FormatError for bad position, got %v", err)
	}
	if fe.Line != 3 {
		t.Errorf("Expected error at line 3, got %d", fe.Line)
	}
}

func TestReader_SampleCountMismatch(t *testing.T) {
	in := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\tS2\n" +
		"chr1\t100\t.\tA\tG\t.\t.\t.\tGT\t0/1\n"
	r, err := NewReaderFrom(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Failed to create reader: %v", err)
	}
	_, err = r.Next()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FormatError for sample count mismatch, got %v", err)
	}
}

func TestReader_SkipsBlankLines(t *testing.T) {
	in := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
		"\n" +
		"chr1\t100\t.\tA\tG\t.\t.\t.\n"
	r, err := NewReaderFrom(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Failed to create reader: %v", err)
	}
	rec, err := r.Next()
	if err != nil || rec == nil {
		t.Fatalf("Expected a record after blank line, got %v, %v", rec, err)
	}
	if rec.Pos != 100 {
		t.Errorf("Expected pos 100, got %d", rec.Pos)
	}
}
