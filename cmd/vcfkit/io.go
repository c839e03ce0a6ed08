package main

import (
	"github.com/vcfkit/vcfkit/internal/vcf"
)

// pipeline is the common open-transform-write driver shared by the
// single-input commands: it opens input and output, writes the (possibly
// rewritten) header, streams every record through, and releases both
// ends on all exit paths.
func pipeline(inPath, outPath string, header func(*vcf.Header) (*vcf.Header, error), transform func(vcf.RecordReader) (vcf.RecordReader, error)) error {
	in, err := vcf.NewReader(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	h := in.Header()
	if header != nil {
		if h, err = header(h); err != nil {
			return err
		}
	}

	var stream vcf.RecordReader = in
	if transform != nil {
		if stream, err = transform(in); err != nil {
			return err
		}
	}

	out, err := vcf.NewWriter(outPath)
	if err != nil {
		return err
	}
	if err := out.WriteHeader(h); err != nil {
		out.Close()
		return err
	}
	if err := vcf.Copy(out, stream); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// openInputs opens a list of VCF paths for the multi-input commands.
// On error, readers opened so far are closed.
func openInputs(paths []string) ([]*vcf.Reader, error) {
	readers := make([]*vcf.Reader, 0, len(paths))
	for _, path := range paths {
		r, err := vcf.NewReader(path)
		if err != nil {
			for _, open := range readers {
				open.Close()
			}
			return nil, err
		}
		readers = append(readers, r)
	}
	return readers, nil
}
