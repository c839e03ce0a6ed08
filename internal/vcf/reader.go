package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Reader reads records from a VCF stream. The header is parsed once when
// the reader is opened; records are decoded lazily, one per Next call.
type Reader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	path       string
	lineNumber int
	header     *Header
}

// NewReader opens a VCF file for reading. Plain and gzip-compressed input
// (including BGZF, which is gzip-compatible) are both supported. Pass "-"
// to read from stdin.
func NewReader(path string) (*Reader, error) {
	if path == "-" {
		r, err := NewReaderFrom(os.Stdin)
		if err != nil {
			return nil, err
		}
		r.path = "stdin"
		return r, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	r := &Reader{file: file, path: path}

	// Check for gzip magic bytes, then rewind.
	buf := make([]byte, 2)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read vcf header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		r.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		r.reader = bufio.NewReader(r.gzipReader)
	} else {
		r.reader = bufio.NewReader(file)
	}

	if err := r.parseHeader(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// NewReaderFrom creates a reader from an io.Reader (e.g., stdin or a pipe).
func NewReaderFrom(rd io.Reader) (*Reader, error) {
	r := &Reader{reader: bufio.NewReader(rd)}
	if err := r.parseHeader(); err != nil {
		return nil, err
	}
	return r, nil
}

// parseHeader consumes ## meta lines and the #CHROM column line.
func (r *Reader) parseHeader() error {
	h := &Header{}
	for {
		line, err := r.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && line == "" {
				break
			}
			if err != io.EOF {
				return fmt.Errorf("read header: %w", err)
			}
		}
		r.lineNumber++
		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "##") {
			h.Meta = append(h.Meta, line)
			if v, ok := strings.CutPrefix(line, "##fileformat="); ok {
				h.FileFormat = v
			}
			if id := contigID(line); id != "" {
				h.Contigs = append(h.Contigs, id)
			}
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			fields := strings.Split(line, "\t")
			if len(fields) > 9 {
				h.Samples = fields[9:]
			}
			seen := make(map[string]bool, len(h.Samples))
			for _, s := range h.Samples {
				if seen[s] {
					return &FormatError{
						File:    r.path,
						Line:    r.lineNumber,
						Message: fmt.Sprintf("duplicate sample name %q in #CHROM line", s),
					}
				}
				seen[s] = true
			}
			r.header = h
			return nil
		}

		return &FormatError{
			File:    r.path,
			Line:    r.lineNumber,
			Message: "expected #CHROM header line",
		}
	}

	return &FormatError{
		File:    r.path,
		Line:    r.lineNumber,
		Message: "no #CHROM header line found",
	}
}

// Next reads the next record. Returns nil, nil at end of stream.
func (r *Reader) Next() (*Record, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			if strings.TrimRight(line, "\r\n") == "" {
				return nil, nil
			}
		} else {
			return nil, fmt.Errorf("read record line: %w", err)
		}
	}
	r.lineNumber++

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return r.Next() // skip blank lines
	}
	return r.parseLine(line)
}

func (r *Reader) parseLine(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, &FormatError{
			File:    r.path,
			Line:    r.lineNumber,
			Message: fmt.Sprintf("expected at least 8 columns, found %d", len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &FormatError{
			File:    r.path,
			Line:    r.lineNumber,
			Message: fmt.Sprintf("invalid position %q", fields[1]),
		}
	}

	rec := &Record{
		Chrom: fields[0],
		Pos:   pos,
		Ref:   fields[3],
	}
	if fields[2] != "." {
		rec.ID = fields[2]
	}
	if fields[4] != "." {
		rec.Alt = strings.Split(fields[4], ",")
	}
	if fields[5] != "." {
		q, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return nil, &FormatError{
				File:    r.path,
				Line:    r.lineNumber,
				Message: fmt.Sprintf("invalid quality %q", fields[5]),
			}
		}
		rec.Qual = q
		rec.HasQual = true
	}
	if fields[6] != "." {
		rec.Filter = strings.Split(fields[6], ";")
	}
	rec.Info = parseInfo(fields[7])

	if len(fields) > 8 {
		rec.Format = strings.Split(fields[8], ":")
		for _, col := range fields[9:] {
			rec.Samples = append(rec.Samples, strings.Split(col, ":"))
		}
	}

	if got, want := len(rec.Samples), len(r.header.Samples); got != want {
		return nil, &FormatError{
			File:    r.path,
			Line:    r.lineNumber,
			Message: fmt.Sprintf("record has %d sample columns, header declares %d", got, want),
		}
	}

	return rec, nil
}

// parseInfo parses the INFO column preserving entry order.
func parseInfo(info string) []InfoField {
	if info == "." {
		return nil
	}
	var fields []InfoField
	for _, kv := range strings.Split(info, ";") {
		key, value, found := strings.Cut(kv, "=")
		if found {
			fields = append(fields, InfoField{Key: key, Value: value})
		} else {
			fields = append(fields, InfoField{Key: key, Flag: true})
		}
	}
	return fields
}

// Header returns the parsed header.
func (r *Reader) Header() *Header {
	return r.header
}

// LineNumber returns the current line number being processed.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Close closes the reader and the underlying file.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
