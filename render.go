package strio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Renderer lets a type control its own formatted output. When an
// argument implements Renderer, built-in rendering is bypassed
// entirely for that value and the raw mode string is forwarded
// unmodified, the empty default mode included. Unrecognized modes are
// the renderer's own to reject or default; a returned error surfaces
// wrapped in [ErrFormat].
//
// Outer alignment and width from the placeholder still apply to the
// returned bytes; the renderer controls internal layout only.
type Renderer interface {
	RenderMode(mode string) ([]byte, error)
}

// Render writes template to w, substituting one argument per
// placeholder.
//
// Placeholders take the form {<mode>[:[<fill>]<align><width>][.<precision>]}:
//
//   - mode: empty for default rendering, d (decimal; fixed-point on
//     floats), x/X (lower/upper hex), o (octal), b (binary), e
//     (scientific), s (string), json, yaml, or any string handled by
//     the argument's [Renderer].
//   - align: < left, > right, ^ center (extra padding biased right on
//     odd remainders), with an optional fill rune before it (default
//     space). Width counts display columns, not bytes.
//   - precision: digits for fixed-point and scientific, display-width
//     truncation for strings.
//
// Placeholder and argument counts must match exactly in both
// directions; mismatches fail with [ErrFormat] before any output is
// written.
func Render(w io.Writer, template string, args ...any) error {
	toks, err := parseTemplate(template)
	if err != nil {
		return err
	}
	want := 0
	for _, tok := range toks {
		if tok.ph {
			want++
		}
	}
	if want != len(args) {
		return fmt.Errorf("%w: template has %d placeholders, got %d arguments", ErrFormat, want, len(args))
	}
	next := 0
	for _, tok := range toks {
		if !tok.ph {
			if _, err := io.WriteString(w, tok.lit); err != nil {
				return err
			}
			continue
		}
		out, err := renderValue(args[next], tok)
		next++
		if err != nil {
			return err
		}
		if err := writeAligned(w, out, tok); err != nil {
			return err
		}
	}
	return nil
}

// RenderString renders a template and returns the bytes as a string.
func RenderString(template string, args ...any) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, template, args...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderValue(v any, tok token) ([]byte, error) {
	if r, ok := v.(Renderer); ok {
		out, err := r.RenderMode(tok.mode)
		if err != nil {
			return nil, fmt.Errorf("%w: render mode %q: %w", ErrFormat, tok.mode, err)
		}
		return out, nil
	}
	switch tok.mode {
	case "":
		return renderDefault(v, tok)
	case "d":
		return renderDecimal(v, tok)
	case "x", "X", "o", "b":
		return renderRadix(v, tok.mode)
	case "e":
		return renderScientific(v, tok)
	case "s":
		return renderString(v, tok)
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("%w: json: %w", ErrFormat, err)
		}
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: yaml: %w", ErrFormat, err)
		}
		return bytes.TrimRight(out, "\n"), nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %q for %T", ErrFormat, tok.mode, v)
	}
}

func renderDefault(v any, tok token) ([]byte, error) {
	switch x := v.(type) {
	case string:
		return []byte(truncate(x, tok)), nil
	case []byte:
		return []byte(truncate(string(x), tok)), nil
	}
	if n, ok := intVal(v); ok {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	if n, ok := uintVal(v); ok {
		return []byte(strconv.FormatUint(n, 10)), nil
	}
	if f, ok := floatVal(v); ok {
		if tok.hasPrec {
			return []byte(strconv.FormatFloat(f, 'f', tok.prec, 64)), nil
		}
		return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
	}
	if s, ok := v.(fmt.Stringer); ok {
		return []byte(truncate(s.String(), tok)), nil
	}
	return []byte(fmt.Sprintf("%v", v)), nil
}

func renderDecimal(v any, tok token) ([]byte, error) {
	if n, ok := intVal(v); ok {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	if n, ok := uintVal(v); ok {
		return []byte(strconv.FormatUint(n, 10)), nil
	}
	if f, ok := floatVal(v); ok {
		prec := -1
		if tok.hasPrec {
			prec = tok.prec
		}
		return []byte(strconv.FormatFloat(f, 'f', prec, 64)), nil
	}
	return nil, modeMismatch("d", v)
}

func renderRadix(v any, mode string) ([]byte, error) {
	base := map[string]int{"x": 16, "X": 16, "o": 8, "b": 2}[mode]
	var s string
	if n, ok := intVal(v); ok {
		s = strconv.FormatInt(n, base)
	} else if n, ok := uintVal(v); ok {
		s = strconv.FormatUint(n, base)
	} else {
		return nil, modeMismatch(mode, v)
	}
	if mode == "X" {
		s = strings.ToUpper(s)
	}
	return []byte(s), nil
}

func renderScientific(v any, tok token) ([]byte, error) {
	f, ok := floatVal(v)
	if !ok {
		if n, isInt := intVal(v); isInt {
			f, ok = float64(n), true
		} else if n, isUint := uintVal(v); isUint {
			f, ok = float64(n), true
		}
	}
	if !ok {
		return nil, modeMismatch("e", v)
	}
	prec := -1
	if tok.hasPrec {
		prec = tok.prec
	}
	return []byte(strconv.FormatFloat(f, 'e', prec, 64)), nil
}

func renderString(v any, tok token) ([]byte, error) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	case fmt.Stringer:
		s = x.String()
	case error:
		s = x.Error()
	default:
		return nil, modeMismatch("s", v)
	}
	return []byte(truncate(s, tok)), nil
}

// truncate applies display-width precision truncation to a string.
func truncate(s string, tok token) string {
	if !tok.hasPrec {
		return s
	}
	return runewidth.Truncate(s, tok.prec, "")
}

func modeMismatch(mode string, v any) error {
	return fmt.Errorf("%w: mode %q does not apply to %T", ErrFormat, mode, v)
}

// writeAligned pads out to the placeholder width using display-width
// column counts, so double-width runes align the same as ASCII.
// Centering puts the extra column on the right when the remainder is
// odd.
func writeAligned(w io.Writer, out []byte, tok token) error {
	if tok.align == alignNone || tok.width == 0 {
		_, err := w.Write(out)
		return err
	}
	pad := tok.width - runewidth.StringWidth(string(out))
	if pad <= 0 {
		_, err := w.Write(out)
		return err
	}
	var left, right int
	switch tok.align {
	case alignLeft:
		right = pad
	case alignRight:
		left = pad
	case alignCenter:
		left = pad / 2
		right = pad - left
	}
	fill := string(tok.fill)
	if _, err := io.WriteString(w, strings.Repeat(fill, left)); err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err := io.WriteString(w, strings.Repeat(fill, right))
	return err
}

func intVal(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func uintVal(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case uintptr:
		return uint64(n), true
	}
	return 0, false
}

func floatVal(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}
