package vcf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/hts/bgzf"
)

// DefaultFileFormat is written for headers that carry no ##fileformat line.
const DefaultFileFormat = "VCFv4.2"

// Writer encodes records to a VCF stream in input order. Output paths
// ending in .gz are written as BGZF so the result stays indexable by
// tabix. Pass "-" to write to stdout.
type Writer struct {
	w    *bufio.Writer
	bg   *bgzf.Writer
	file *os.File
}

// NewWriter creates a writer for the given output path.
func NewWriter(path string) (*Writer, error) {
	if path == "-" {
		return NewWriterTo(os.Stdout), nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	w := &Writer{file: file}
	if strings.HasSuffix(path, ".gz") {
		w.bg = bgzf.NewWriter(file, 1)
		w.w = bufio.NewWriter(w.bg)
	} else {
		w.w = bufio.NewWriter(file)
	}
	return w, nil
}

// NewWriterTo creates a writer over an io.Writer (e.g., stdout or a buffer).
func NewWriterTo(out io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(out)}
}

// WriteHeader writes the meta lines and the #CHROM column line.
func (w *Writer) WriteHeader(h *Header) error {
	hasFileFormat := false
	for _, line := range h.Meta {
		if strings.HasPrefix(line, "##fileformat=") {
			hasFileFormat = true
		}
	}
	if !hasFileFormat {
		ff := h.FileFormat
		if ff == "" {
			ff = DefaultFileFormat
		}
		if _, err := w.w.WriteString("##fileformat=" + ff + "\n"); err != nil {
			return err
		}
	}
	for _, line := range h.Meta {
		if _, err := w.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	_, err := w.w.WriteString(h.ColumnLine() + "\n")
	return err
}

// WriteRecord writes a single record line.
func (w *Writer) WriteRecord(r *Record) error {
	_, err := w.w.WriteString(EncodeRecord(r) + "\n")
	return err
}

// Close flushes buffered output and closes the underlying file, if any.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	if w.bg != nil {
		if err := w.bg.Close(); err != nil {
			return err
		}
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// EncodeRecord renders a record as a tab-delimited VCF data line.
func EncodeRecord(r *Record) string {
	cols := make([]string, 0, 9+len(r.Samples))
	cols = append(cols,
		r.Chrom,
		strconv.FormatInt(r.Pos, 10),
		orDot(r.ID),
		r.Ref,
		orDot(strings.Join(r.Alt, ",")),
		encodeQual(r),
		orDot(strings.Join(r.Filter, ";")),
		encodeInfo(r.Info),
	)
	if len(r.Samples) > 0 {
		cols = append(cols, strings.Join(r.Format, ":"))
		for _, s := range r.Samples {
			cols = append(cols, strings.Join(s, ":"))
		}
	}
	return strings.Join(cols, "\t")
}

func encodeQual(r *Record) string {
	if !r.HasQual {
		return "."
	}
	return strconv.FormatFloat(r.Qual, 'g', -1, 64)
}

func encodeInfo(info []InfoField) string {
	if len(info) == 0 {
		return "."
	}
	parts := make([]string, len(info))
	for i, f := range info {
		if f.Flag {
			parts[i] = f.Key
		} else {
			parts[i] = f.Key + "=" + f.Value
		}
	}
	return strings.Join(parts, ";")
}

func orDot(s string) string {
	if s == "" {
		return "."
	}
	return s
}

// Copy streams every record from r to w. The caller writes the header.
func Copy(w *Writer, r RecordReader) error {
	for {
		rec, err := r.Next()
		if err != nil {
			return err
		}
		if rec == nil {
			return nil
		}
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
	}
}
