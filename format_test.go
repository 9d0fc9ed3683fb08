package strio_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bjaus/strio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test types: custom renderer ---

type rgb struct{ r, g, b uint8 }

func (c rgb) RenderMode(mode string) ([]byte, error) {
	switch mode {
	case "hex":
		return []byte(fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)), nil
	case "":
		return []byte(fmt.Sprintf("rgb(%d, %d, %d)", c.r, c.g, c.b)), nil
	default:
		return nil, fmt.Errorf("unknown color mode %q", mode)
	}
}

// --- Test types: composite for json/yaml modes ---

type record struct {
	Name string `json:"name" yaml:"name"`
	N    int    `json:"n" yaml:"n"`
}

// --- Tests ---

func TestRenderNumeric(t *testing.T) {
	t.Parallel()
	tests := []struct {
		template string
		arg      any
		want     string
	}{
		{"{d}", 42, "42"},
		{"{d}", -7, "-7"},
		{"{d}", uint16(9), "9"},
		{"{x}", 255, "ff"},
		{"{X}", 255, "FF"},
		{"{x}", uint8(255), "ff"},
		{"{o}", 8, "10"},
		{"{b}", 5, "101"},
		{"{b}", 0, "0"},
	}
	for _, tt := range tests {
		got, err := strio.RenderString(tt.template, tt.arg)
		require.NoError(t, err, tt.template)
		assert.Equal(t, tt.want, got, tt.template)
	}
}

func TestRenderFloat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		template string
		arg      any
		want     string
	}{
		{"{d.2}", 3.14159, "3.14"},
		{"{d.2}", 2.675, "2.67"}, // binary representation rounds down
		{"{d.0}", 2.6, "3"},
		{"{e}", 1500.0, "1.5e+03"},
		{"{e.2}", 12345.0, "1.23e+04"},
		{"{e}", 1500, "1.5e+03"},
		{"{e}", 0.001, "1e-03"},
	}
	for _, tt := range tests {
		got, err := strio.RenderString(tt.template, tt.arg)
		require.NoError(t, err, tt.template)
		assert.Equal(t, tt.want, got, tt.template)
	}
}

func TestRenderStringAlignment(t *testing.T) {
	t.Parallel()
	tests := []struct {
		template string
		arg      string
		want     string
	}{
		{"{s:<10}", "hi", "hi        "},
		{"{s:>10}", "hi", "        hi"},
		{"{s:^10}", "hi", "    hi    "},
		{"{s:^10}", "abc", "   abc    "}, // odd remainder: extra pad goes right
		{"{s:^3}", "hi", "hi "},
		{"{s:*^6}", "hi", "**hi**"},
		{"{s:0>4}", "7", "0007"},
		{"{s:<3}", "overflow", "overflow"}, // width never truncates
		{"{s:>0}", "hi", "hi"},
	}
	for _, tt := range tests {
		got, err := strio.RenderString(tt.template, tt.arg)
		require.NoError(t, err, tt.template)
		assert.Equal(t, tt.want, got, tt.template)
	}
}

func TestRenderWideRunes(t *testing.T) {
	t.Parallel()
	// Width counts display columns; the two CJK runes occupy four.
	got, err := strio.RenderString("{s:>6}", "你好")
	require.NoError(t, err)
	assert.Equal(t, "  你好", got)

	got, err = strio.RenderString("{s:.2}", "你好")
	require.NoError(t, err)
	assert.Equal(t, "你", got)
}

func TestRenderStringPrecision(t *testing.T) {
	t.Parallel()
	got, err := strio.RenderString("{s:.3}", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hel", got)

	got, err = strio.RenderString("{s:>5.3}", "hello")
	require.NoError(t, err)
	assert.Equal(t, "  hel", got)
}

func TestRenderDefaultMode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		arg  any
		want string
	}{
		{42, "42"},
		{uint64(7), "7"},
		{"x", "x"},
		{[]byte("raw"), "raw"},
		{3.5, "3.5"},
		{true, "true"},
	}
	for _, tt := range tests {
		got, err := strio.RenderString("{}", tt.arg)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestRenderStringModeSources(t *testing.T) {
	t.Parallel()
	got, err := strio.RenderString("{s}", []byte("bytes"))
	require.NoError(t, err)
	assert.Equal(t, "bytes", got)

	got, err = strio.RenderString("{s}", errors.New("boom"))
	require.NoError(t, err)
	assert.Equal(t, "boom", got)
}

func TestRenderLiteralsAndEscapes(t *testing.T) {
	t.Parallel()
	got, err := strio.RenderString("plain text")
	require.NoError(t, err)
	assert.Equal(t, "plain text", got)

	got, err = strio.RenderString("{{}}")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)

	got, err = strio.RenderString("a {{{d}}} b", 1)
	require.NoError(t, err)
	assert.Equal(t, "a {1} b", got)
}

func TestRenderArgumentCountMismatch(t *testing.T) {
	t.Parallel()
	_, err := strio.RenderString("{d} {d}", 1)
	assert.ErrorIs(t, err, strio.ErrFormat)

	_, err = strio.RenderString("no placeholders", 1)
	assert.ErrorIs(t, err, strio.ErrFormat)
}

func TestRenderTemplateErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		template string
		args     []any
	}{
		{"unclosed placeholder", "{d", []any{1}},
		{"stray closing brace", "oops}", nil},
		{"bad width", "{s:>x}", []any{"a"}},
		{"bad precision", "{s.x}", []any{"a"}},
		{"missing align token", "{s:10}", []any{"a"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := strio.RenderString(tt.template, tt.args...)
			assert.ErrorIs(t, err, strio.ErrFormat)
		})
	}
}

func TestRenderModeMismatch(t *testing.T) {
	t.Parallel()
	_, err := strio.RenderString("{d}", "not a number")
	assert.ErrorIs(t, err, strio.ErrFormat)

	_, err = strio.RenderString("{x}", 1.5)
	assert.ErrorIs(t, err, strio.ErrFormat)

	_, err = strio.RenderString("{s}", 42)
	assert.ErrorIs(t, err, strio.ErrFormat)
}

func TestRenderUnknownMode(t *testing.T) {
	t.Parallel()
	// No Renderer on the argument, so the mode must be a built-in.
	_, err := strio.RenderString("{hex}", 42)
	assert.ErrorIs(t, err, strio.ErrFormat)
}

func TestRenderCustomRenderer(t *testing.T) {
	t.Parallel()
	c := rgb{r: 255, g: 128, b: 64}

	got, err := strio.RenderString("{hex}", c)
	require.NoError(t, err)
	assert.Equal(t, "#ff8040", got)

	// Empty mode routes to the renderer too: it owns its default.
	got, err = strio.RenderString("{}", c)
	require.NoError(t, err)
	assert.Equal(t, "rgb(255, 128, 64)", got)
}

func TestRenderCustomRendererAlignment(t *testing.T) {
	t.Parallel()
	// The alignment prefix is stripped before the mode reaches the
	// renderer; outer padding still applies to its output.
	got, err := strio.RenderString("{hex:>10}", rgb{r: 255, g: 128, b: 64})
	require.NoError(t, err)
	assert.Equal(t, "   #ff8040", got)
}

func TestRenderCustomRendererError(t *testing.T) {
	t.Parallel()
	_, err := strio.RenderString("{bogus}", rgb{})
	require.ErrorIs(t, err, strio.ErrFormat)
	assert.Contains(t, err.Error(), "unknown color mode")
}

func TestRenderJSONMode(t *testing.T) {
	t.Parallel()
	got, err := strio.RenderString("{json}", record{Name: "a", N: 1})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a","n":1}`, got)
}

func TestRenderYAMLMode(t *testing.T) {
	t.Parallel()
	got, err := strio.RenderString("{yaml}", record{Name: "a", N: 1})
	require.NoError(t, err)
	assert.Equal(t, "name: a\nn: 1", got)
}

func TestRenderMixedTemplate(t *testing.T) {
	t.Parallel()
	got, err := strio.RenderString("{s:<6}#{X.0} = {d.1}%", "usage", 171, 99.5)
	require.NoError(t, err)
	assert.Equal(t, "usage #AB = 99.5%", got)
}

func TestRenderWriteError(t *testing.T) {
	t.Parallel()
	err := strio.Render(failWriter{}, "{d}", 1)
	assert.ErrorIs(t, err, errBackend)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errBackend }
