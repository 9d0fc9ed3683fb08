package strio

import (
	"fmt"
	"strconv"
	"strings"
)

type alignment int

const (
	alignNone alignment = iota
	alignLeft
	alignRight
	alignCenter
)

// token is one parsed template segment: a literal run or a placeholder.
type token struct {
	lit     string
	ph      bool
	mode    string
	align   alignment
	fill    rune
	width   int
	prec    int
	hasPrec bool
}

// parseTemplate splits a template into literal and placeholder tokens.
// Placeholder syntax: {<mode>[:[<fill>]<align><width>][.<precision>]}.
// {{ and }} emit literal braces. Parsing happens once per Render call;
// the token sequence is not retained.
func parseTemplate(template string) ([]token, error) {
	var toks []token
	var lit strings.Builder
	flushLit := func() {
		if lit.Len() > 0 {
			toks = append(toks, token{lit: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(template); {
		switch template[i] {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed placeholder at byte %d", ErrFormat, i)
			}
			tok, err := parsePlaceholder(template[i+1 : i+end])
			if err != nil {
				return nil, err
			}
			flushLit()
			toks = append(toks, tok)
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, fmt.Errorf("%w: unmatched '}' at byte %d", ErrFormat, i)
		default:
			lit.WriteByte(template[i])
			i++
		}
	}
	flushLit()
	return toks, nil
}

// parsePlaceholder parses the text between braces. The mode ends at
// the first ':' (alignment spec) or '.' (precision); both suffixes are
// optional.
func parsePlaceholder(body string) (token, error) {
	tok := token{ph: true, fill: ' '}
	var spec string
	if i := strings.IndexByte(body, ':'); i >= 0 {
		tok.mode = body[:i]
		spec = body[i+1:]
	} else if i := strings.IndexByte(body, '.'); i >= 0 {
		tok.mode = body[:i]
		spec = body[i:]
	} else {
		tok.mode = body
		return tok, nil
	}
	if i := strings.IndexByte(spec, '.'); i >= 0 {
		prec, err := parseCount(spec[i+1:])
		if err != nil {
			return tok, fmt.Errorf("%w: bad precision %q", ErrFormat, spec[i+1:])
		}
		tok.prec = prec
		tok.hasPrec = true
		spec = spec[:i]
	}
	if spec == "" {
		return tok, nil
	}
	runes := []rune(spec)
	idx := 0
	if len(runes) >= 2 && isAlignRune(runes[1]) {
		tok.fill = runes[0]
		idx = 1
	}
	if !isAlignRune(runes[idx]) {
		return tok, fmt.Errorf("%w: bad alignment spec %q", ErrFormat, spec)
	}
	switch runes[idx] {
	case '<':
		tok.align = alignLeft
	case '>':
		tok.align = alignRight
	case '^':
		tok.align = alignCenter
	}
	if rest := string(runes[idx+1:]); rest != "" {
		width, err := parseCount(rest)
		if err != nil {
			return tok, fmt.Errorf("%w: bad width %q", ErrFormat, rest)
		}
		tok.width = width
	}
	return tok, nil
}

func isAlignRune(r rune) bool {
	return r == '<' || r == '>' || r == '^'
}

// parseCount parses a non-negative integer; signs are rejected.
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty count")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("non-digit count")
		}
	}
	return strconv.Atoi(s)
}
