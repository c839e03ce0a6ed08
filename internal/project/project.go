// Package project renders textual projections of VCF records from
// bcftools-query-style format strings, e.g.
//
//	%CHROM\t%POS\t%REF\t%ALT[\t%SAMPLE=%GT]
//
// Square brackets enclose a sub-template applied once per sample.
package project

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vcfkit/vcfkit/internal/vcf"
)

// Options configures rendering.
type Options struct {
	// Placeholder replaces missing optional fields. Defaults to ".".
	Placeholder string
}

// DefaultPlaceholder stands in for missing optional values.
const DefaultPlaceholder = "."

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokChrom
	tokPos
	tokID
	tokRef
	tokAlt
	tokQual
	tokFilter
	tokInfo   // %INFO/KEY, key in arg
	tokSample // %SAMPLE, sample name (block scope only)
	tokFormat // %FMT/KEY or %GT shorthand, tag in arg (block scope only)
	tokBlock  // per-sample sub-template, tokens in sub
)

type token struct {
	kind tokenKind
	arg  string
	sub  []token
}

// Projector renders records according to a parsed template.
type Projector struct {
	tokens      []token
	placeholder string
}

// New parses a format string into a projector.
func New(template string, opts Options) (*Projector, error) {
	placeholder := opts.Placeholder
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}

	tokens, rest, err := parse(template, false)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, fmt.Errorf("unexpected %q in format string", rest[:1])
	}
	return &Projector{tokens: tokens, placeholder: placeholder}, nil
}

// parse consumes template text until the end (or, inside a sample block,
// until the closing bracket). It returns the unconsumed remainder.
func parse(s string, inBlock bool) ([]token, string, error) {
	var tokens []token
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{kind: tokLiteral, arg: lit.String()})
			lit.Reset()
		}
	}

	for len(s) > 0 {
		switch s[0] {
		case '\\':
			if len(s) < 2 {
				return nil, "", fmt.Errorf("trailing backslash in format string")
			}
			switch s[1] {
			case 't':
				lit.WriteByte('\t')
			case 'n':
				lit.WriteByte('\n')
			case '\\', '[', ']', '%':
				lit.WriteByte(s[1])
			default:
				return nil, "", fmt.Errorf("unknown escape \\%c in format string", s[1])
			}
			s = s[2:]
		case '[':
			if inBlock {
				return nil, "", fmt.Errorf("nested sample blocks are not supported")
			}
			flush()
			sub, rest, err := parse(s[1:], true)
			if err != nil {
				return nil, "", err
			}
			if !strings.HasPrefix(rest, "]") {
				return nil, "", fmt.Errorf("unterminated sample block in format string")
			}
			tokens = append(tokens, token{kind: tokBlock, sub: sub})
			s = rest[1:]
		case ']':
			if inBlock {
				flush()
				return tokens, s, nil
			}
			return nil, "", fmt.Errorf("unmatched ] in format string")
		case '%':
			flush()
			tok, rest, err := parseField(s[1:], inBlock)
			if err != nil {
				return nil, "", err
			}
			tokens = append(tokens, tok)
			s = rest
		default:
			lit.WriteByte(s[0])
			s = s[1:]
		}
	}
	if inBlock {
		return nil, "", fmt.Errorf("unterminated sample block in format string")
	}
	flush()
	return tokens, "", nil
}

// ident consumes a run of [A-Za-z0-9_] characters.
func ident(s string) (string, string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' {
			i++
			continue
		}
		break
	}
	return s[:i], s[i:]
}

func parseField(s string, inBlock bool) (token, string, error) {
	name, rest := ident(s)

	// %INFO/KEY and %FMT/TAG take a key after the slash; a bare slash
	// after any other field is literal text.
	if (name == "INFO" || name == "FMT") && strings.HasPrefix(rest, "/") {
		key, after := ident(rest[1:])
		if key == "" {
			return token{}, "", fmt.Errorf("%%%s/ requires a key", name)
		}
		if name == "INFO" {
			return token{kind: tokInfo, arg: key}, after, nil
		}
		if !inBlock {
			return token{}, "", fmt.Errorf("%%FMT/%s is only valid inside a [] sample block", key)
		}
		return token{kind: tokFormat, arg: key}, after, nil
	}

	switch name {
	case "CHROM":
		return token{kind: tokChrom}, rest, nil
	case "POS":
		return token{kind: tokPos}, rest, nil
	case "ID":
		return token{kind: tokID}, rest, nil
	case "REF":
		return token{kind: tokRef}, rest, nil
	case "ALT":
		return token{kind: tokAlt}, rest, nil
	case "QUAL":
		return token{kind: tokQual}, rest, nil
	case "FILTER":
		return token{kind: tokFilter}, rest, nil
	case "SAMPLE":
		if !inBlock {
			return token{}, "", fmt.Errorf("%%SAMPLE is only valid inside a [] sample block")
		}
		return token{kind: tokSample}, rest, nil
	case "GT":
		if !inBlock {
			return token{}, "", fmt.Errorf("%%GT is only valid inside a [] sample block")
		}
		return token{kind: tokFormat, arg: "GT"}, rest, nil
	default:
		return token{}, "", fmt.Errorf("unknown field %%%s in format string", name)
	}
}

// Format renders one record.
func (p *Projector) Format(h *vcf.Header, r *vcf.Record) string {
	var b strings.Builder
	p.render(&b, p.tokens, h, r, -1)
	return b.String()
}

func (p *Projector) render(b *strings.Builder, tokens []token, h *vcf.Header, r *vcf.Record, sample int) {
	for _, tok := range tokens {
		switch tok.kind {
		case tokLiteral:
			b.WriteString(tok.arg)
		case tokChrom:
			b.WriteString(r.Chrom)
		case tokPos:
			b.WriteString(strconv.FormatInt(r.Pos, 10))
		case tokID:
			b.WriteString(p.orMissing(r.ID))
		case tokRef:
			b.WriteString(r.Ref)
		case tokAlt:
			b.WriteString(p.orMissing(strings.Join(r.Alt, ",")))
		case tokQual:
			if r.HasQual {
				b.WriteString(strconv.FormatFloat(r.Qual, 'g', -1, 64))
			} else {
				b.WriteString(p.placeholder)
			}
		case tokFilter:
			b.WriteString(p.orMissing(strings.Join(r.Filter, ";")))
		case tokInfo:
			if v, ok := r.InfoValue(tok.arg); ok {
				b.WriteString(p.orMissing(v))
			} else {
				b.WriteString(p.placeholder)
			}
		case tokSample:
			if sample >= 0 && sample < len(h.Samples) {
				b.WriteString(h.Samples[sample])
			}
		case tokFormat:
			b.WriteString(p.formatValue(r, sample, tok.arg))
		case tokBlock:
			for i := range r.Samples {
				p.render(b, tok.sub, h, r, i)
			}
		}
	}
}

func (p *Projector) formatValue(r *vcf.Record, sample int, tag string) string {
	idx := r.FormatIndex(tag)
	if idx < 0 || sample < 0 || sample >= len(r.Samples) || idx >= len(r.Samples[sample]) {
		return p.placeholder
	}
	return p.orMissing(r.Samples[sample][idx])
}

func (p *Projector) orMissing(s string) string {
	if s == "" || s == "." {
		return p.placeholder
	}
	return s
}

// Write renders every record of a stream, one line per record.
func (p *Projector) Write(out io.Writer, h *vcf.Header, r vcf.RecordReader) error {
	w := bufio.NewWriter(out)
	for {
		rec, err := r.Next()
		if err != nil {
			return err
		}
		if rec == nil {
			return w.Flush()
		}
		if _, err := w.WriteString(p.Format(h, rec)); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
}
