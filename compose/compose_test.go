package compose

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func TestOverlay_Empty(t *testing.T) {
	t.Run("reports empty", func(t *testing.T) {
		assert.True(t, Overlay{}.Empty())
		assert.False(t, Overlay{Label: "0909 123 456"}.Empty())
		assert.False(t, Overlay{LogoPath: "logo.png"}.Empty())
	})

	t.Run("no elements still flattens and re-encodes", func(t *testing.T) {
		transparent := image.NewNRGBA(image.Rect(0, 0, 50, 50))
		data := encodePNG(t, transparent)

		out := Overlay{}.Apply(data)
		img, format, err := image.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "png", format)

		_, _, _, a := img.At(10, 10).RGBA()
		assert.Equal(t, uint32(0xffff), a)
	})
}

func TestApply_UndecodableInput(t *testing.T) {
	data := []byte("not an image")
	out := Overlay{Label: "0909 123 456"}.Apply(data)
	assert.Equal(t, data, out)
}

func TestApply_Label(t *testing.T) {
	base := solidImage(200, 120, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	data := encodePNG(t, base)

	out := Overlay{Label: "0909 123 456"}.Apply(data)
	require.NotEqual(t, data, out)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())

	// the label lands in the bottom-left quadrant
	changed := 0
	for y := 60; y < 120; y++ {
		for x := 0; x < 100; x++ {
			if !sameColor(img.At(x, y), base.At(x, y)) {
				changed++
			}
		}
	}
	assert.Greater(t, changed, 0)
}

func TestApply_MissingLogoLeavesImageUnchanged(t *testing.T) {
	base := solidImage(100, 80, color.NRGBA{R: 10, G: 120, B: 200, A: 255})
	data := encodePNG(t, base)

	out := Overlay{LogoPath: filepath.Join(t.TempDir(), "missing.png")}.Apply(data)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	diff := 0
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			if !sameColor(img.At(x, y), base.At(x, y)) {
				diff++
			}
		}
	}
	assert.Zero(t, diff)
}

func TestApply_Logo(t *testing.T) {
	logoPath := filepath.Join(t.TempDir(), "logo.png")
	logo := solidImage(20, 20, color.NRGBA{R: 255, A: 255})
	require.NoError(t, os.WriteFile(logoPath, encodePNG(t, logo), 0o644))

	base := solidImage(400, 300, color.White)
	out := Overlay{LogoPath: logoPath}.Apply(encodePNG(t, base))

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	// a 20x20 logo on a 400x300 base scales to 40x40 and sits inside a
	// 10px margin, spanning (350,250)-(390,290)
	r, g, b, _ := img.At(370, 270).RGBA()
	assert.Greater(t, r, uint32(0x8000))
	assert.Less(t, g, uint32(0x8000))
	assert.Less(t, b, uint32(0x8000))

	assert.True(t, sameColor(img.At(5, 5), color.White), "top-left corner should be untouched")
}

func TestApply_LabelSitsLeftOfLogo(t *testing.T) {
	logoPath := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(logoPath, encodePNG(t, solidImage(20, 20, color.NRGBA{R: 255, A: 255})), 0o644))

	base := solidImage(400, 300, color.White)
	out := Overlay{LogoPath: logoPath, Label: "0909 123 456"}.Apply(encodePNG(t, base))

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	// logo still red at its center
	r, _, _, _ := img.At(370, 270).RGBA()
	assert.Greater(t, r, uint32(0x8000))

	// something drawn left of the logo's x=350 edge near the bottom
	changed := 0
	for y := 230; y < 300; y++ {
		for x := 0; x < 350; x++ {
			if !sameColor(img.At(x, y), color.White) {
				changed++
			}
		}
	}
	assert.Greater(t, changed, 0)
}

func TestApply_JPEGInputBecomesPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solidImage(100, 100, color.White), nil))

	out := Overlay{Label: "hello"}.Apply(buf.Bytes())
	_, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestApply_OutputIsOpaque(t *testing.T) {
	transparent := image.NewNRGBA(image.Rect(0, 0, 60, 60))
	data := encodePNG(t, transparent)

	out := Overlay{Label: "x"}.Apply(data)
	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	_, _, _, a := img.At(3, 3).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}
