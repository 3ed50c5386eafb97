package image

import (
	"bytes"
	stdimage "image"
	stdcolor "image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glitter/internal/blend"
	"github.com/gogpu/glitter/internal/color"
)

func TestPNGRoundTrip(t *testing.T) {
	buf, err := NewBuf(3, 2, FormatARGB32)
	require.NoError(t, err)
	buf.SetPixel(0, 0, color.Pixel{R: 255, A: 255})
	buf.SetPixel(2, 1, color.Pixel{R: 10, G: 20, B: 30, A: 255})

	data, err := buf.PNG()
	require.NoError(t, err)

	got, err := DecodePNG(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, buf.Data(), got.Data())

	got, err = Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, got.Width())
	assert.False(t, got.IsClear())
}

func TestSaveLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	buf, err := NewBuf(2, 2, FormatA8)
	require.NoError(t, err)
	buf.SetPixel(1, 0, color.Pixel{A: 255})

	require.NoError(t, buf.SavePNG(path))
	got, err := LoadPNG(path)
	require.NoError(t, err)
	assert.Equal(t, color.Pixel{A: 255}, got.PixelAt(1, 0))
	assert.Equal(t, color.Pixel{}, got.PixelAt(0, 0))
}

func TestFromImagePremultiplies(t *testing.T) {
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, stdcolor.NRGBA{R: 255, A: 128})

	buf, err := FromImage(img)
	require.NoError(t, err)
	assert.Equal(t, color.Pixel{R: 128, A: 128}, buf.PixelAt(0, 0))
}

func TestToAlpha(t *testing.T) {
	buf, err := NewBuf(2, 1, FormatRGB24)
	require.NoError(t, err)
	a := buf.ToAlpha()
	assert.Equal(t, []byte{255, 255}, a.Pix)
}

func TestResize(t *testing.T) {
	buf, err := NewBuf(2, 2, FormatARGB32)
	require.NoError(t, err)
	red := color.Pixel{R: 255, A: 255}
	FillRects(buf, blend.OpOver, red, []Rect{buf.Bounds()})

	scaled, err := buf.Resize(4, 4)
	require.NoError(t, err)
	require.Equal(t, 4, scaled.Width())
	for y := range 4 {
		for x := range 4 {
			p := scaled.PixelAt(x, y)
			assert.InDelta(t, 255, int(p.R), 1)
			assert.InDelta(t, 255, int(p.A), 1)
			assert.Zero(t, p.G)
		}
	}

	_, err = buf.Resize(0, 3)
	assert.Error(t, err)
}
