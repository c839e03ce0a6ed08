package project

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/vcfkit/vcfkit/internal/vcf"
)

// GenoRow renders a record as a genotype-matrix row: chrom, pos, then one
// column per sample holding the non-reference allele count (0, 1, or 2
// for diploids), with the placeholder for uncalled samples. This is the
// projection population-genetics tools consume as "geno" input.
func GenoRow(r *vcf.Record, placeholder string) string {
	cols := make([]string, 0, 2+len(r.Samples))
	cols = append(cols, r.Chrom, strconv.FormatInt(r.Pos, 10))
	for i := range r.Samples {
		cols = append(cols, genoCode(r.Genotype(i), placeholder))
	}
	return strings.Join(cols, "\t")
}

func genoCode(gt, placeholder string) string {
	if gt == "" || gt == "." {
		return placeholder
	}
	count := 0
	for _, p := range strings.FieldsFunc(gt, func(c rune) bool { return c == '/' || c == '|' }) {
		if p == "." || p == "" {
			return placeholder
		}
		if p != "0" {
			count++
		}
	}
	return strconv.Itoa(count)
}

// WriteGeno writes the genotype matrix for a whole stream.
func WriteGeno(out io.Writer, r vcf.RecordReader, placeholder string) error {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	w := bufio.NewWriter(out)
	for {
		rec, err := r.Next()
		if err != nil {
			return err
		}
		if rec == nil {
			return w.Flush()
		}
		if _, err := w.WriteString(GenoRow(rec, placeholder)); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
}
