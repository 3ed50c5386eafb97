package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glitter"
	"github.com/gogpu/glitter/text"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func goRegular(t *testing.T) *text.Font {
	t.Helper()
	f, err := text.GoRegular()
	require.NoError(t, err)
	return f
}

func TestParseSceneFormats(t *testing.T) {
	yamlScene := []byte(`
width: 10
height: 20
ops:
  - kind: fill
    path: "R 0 0 5 5"
    clip:
      - rect: [1, 1, 2, 2]
`)
	tomlScene := []byte(`
width = 10
height = 20

[[ops]]
kind = "fill"
path = "R 0 0 5 5"

[[ops.clip]]
rect = [1.0, 1.0, 2.0, 2.0]
`)
	for _, tc := range []struct {
		ext  string
		data []byte
	}{
		{".yaml", yamlScene},
		{".YML", yamlScene},
		{".toml", tomlScene},
	} {
		t.Run(tc.ext, func(t *testing.T) {
			sc, err := ParseScene(tc.data, tc.ext)
			require.NoError(t, err)
			assert.Equal(t, 10, sc.Width)
			assert.Equal(t, 20, sc.Height)
			require.Len(t, sc.Ops, 1)
			assert.Equal(t, "fill", sc.Ops[0].Kind)
			require.Len(t, sc.Ops[0].Clip, 1)
			assert.Equal(t, []float64{1, 1, 2, 2}, sc.Ops[0].Clip[0].Rect)
		})
	}
}

func TestParseSceneErrors(t *testing.T) {
	_, err := ParseScene([]byte("width: 1"), ".json")
	assert.ErrorIs(t, err, errUnknownFormat)

	_, err = ParseScene([]byte("width: 0\nheight: 4"), ".yaml")
	assert.ErrorIs(t, err, glitter.ErrInvalidSize)

	_, err = ParseScene([]byte("width = ["), ".toml")
	assert.Error(t, err)
}

func TestParsePath(t *testing.T) {
	p, err := ParsePath("M 0 0 L 4,0 Q 4 4 0 4 C 0 3 0 2 0 1 Z R 8 8 2 2")
	require.NoError(t, err)
	assert.False(t, p.IsEmpty())

	for _, bad := range []string{"X 1 2", "M 1", "L a b"} {
		_, err := ParsePath(bad)
		assert.Error(t, err, bad)
	}

	empty, err := ParsePath("")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestSceneOptions(t *testing.T) {
	sc := &Scene{Antialias: "none", Tolerance: 0.5}
	opts, err := sc.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	_, err = (&Scene{Antialias: "blurry"}).Options()
	assert.ErrorIs(t, err, glitter.ErrInvalidArgument)
}

func TestRender(t *testing.T) {
	sc := &Scene{
		Width:      8,
		Height:     8,
		Background: "#0000ff",
		Ops: []Op{
			{Kind: "fill", Color: "#ff0000", Path: "R 0 0 4 8"},
			{Kind: "paint", Operator: "clear", Clip: []Clip{{Rect: []float64{6, 6, 2, 2}}}},
		},
	}
	r := glitter.New(nil)
	s, err := sc.Render(r, goRegular(t))
	require.NoError(t, err)
	assert.Nil(t, r.Target())

	assert.Equal(t, glitter.RGBA(1, 0, 0, 1), s.At(1, 1))
	assert.Equal(t, glitter.RGBA(0, 0, 1, 1), s.At(5, 1))
	assert.Zero(t, s.At(7, 7).A)
}

func TestRenderStroke(t *testing.T) {
	sc := &Scene{
		Width:  12,
		Height: 12,
		Ops: []Op{
			{Kind: "stroke", Color: "#ff0000", Path: "M 2 6 L 10 6", Width: 2, Cap: "square", Join: "bevel", Miter: 2},
		},
	}
	s, err := sc.Render(glitter.New(nil), goRegular(t))
	require.NoError(t, err)
	assert.Equal(t, glitter.RGBA(1, 0, 0, 1), s.At(1, 5))
	assert.Equal(t, glitter.RGBA(1, 0, 0, 1), s.At(10, 6))
	assert.Zero(t, s.At(6, 8).A)
}

func TestRenderPopsClips(t *testing.T) {
	sc := &Scene{
		Width:  4,
		Height: 4,
		Ops: []Op{
			{Kind: "paint", Color: "#ff0000", Clip: []Clip{{Rect: []float64{0, 0, 1, 1}}, {Path: "R 0 0 4 4"}}},
			{Kind: "mask", Color: "#00ff00", Alpha: 0.5},
		},
	}
	s, err := sc.Render(glitter.New(nil), goRegular(t))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s.At(3, 3).A, 1.0/255)
}

func TestRenderErrors(t *testing.T) {
	for _, op := range []Op{
		{Kind: "spray"},
		{Kind: "paint", Operator: "sideways"},
		{Kind: "paint", Color: "red"},
		{Kind: "fill", Path: "M 1"},
		{Kind: "fill", Path: "R 0 0 1 1", FillRule: "odd"},
		{Kind: "paint", Clip: []Clip{{Rect: []float64{1, 2}}}},
		{Kind: "stroke", Path: "M 0 0 L 1 1", Cap: "pointy"},
		{Kind: "stroke", Path: "M 0 0 L 1 1", Join: "weld"},
	} {
		sc := &Scene{Width: 2, Height: 2, Ops: []Op{op}}
		_, err := sc.Render(glitter.New(nil), goRegular(t))
		assert.Error(t, err, "%+v", op)
	}
}

func TestTestdataScenes(t *testing.T) {
	for _, name := range []string{"testdata/shapes.yaml", "testdata/clip.toml"} {
		t.Run(filepath.Base(name), func(t *testing.T) {
			sc, err := LoadScene(name)
			require.NoError(t, err)
			assert.Equal(t, name[:len(name)-len(filepath.Ext(name))]+".png", sc.Output)

			s, err := sc.Render(glitter.New(nil), goRegular(t))
			require.NoError(t, err)
			assert.Equal(t, sc.Width, s.Width())
			assert.Equal(t, sc.Height, s.Height())
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	names := []string{"testdata/shapes.yaml", "testdata/clip.toml"}

	require.NoError(t, run(t.Context(), discard(), names, dir, 2))
	for _, out := range []string{"shapes.png", "clip.png"} {
		s, err := glitter.LoadPNG(filepath.Join(dir, out))
		require.NoError(t, err, out)
		assert.Positive(t, s.Width())
	}
}

func TestRunMissingScene(t *testing.T) {
	err := run(t.Context(), discard(), []string{"testdata/missing.yaml"}, t.TempDir(), 1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
