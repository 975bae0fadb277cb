// Package compose stamps brand elements onto encoded images: a logo in the
// bottom-right corner and a short contact label in the bottom-left. Branding
// never fails a generation; anything that cannot be drawn is skipped and the
// original bytes survive.
package compose

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// Logo height and layout margins scale with the base image but never
	// shrink below a readable floor.
	minLogoHeight = 40
	minMargin     = 10
	minFontSize   = 28

	// labelBgAlpha is the opacity of the dark box behind the label.
	labelBgAlpha = 120
	// outlineWidth is the label's stroke width in pixels.
	outlineWidth = 2
)

// Overlay describes the brand elements stamped onto an image.
type Overlay struct {
	// LogoPath points at a logo image composited into the bottom-right
	// corner. An empty or unreadable path skips the logo.
	LogoPath string
	// Label is a short contact line (phone number, address) drawn in the
	// bottom-left corner. Empty means no label.
	Label string
}

// Empty reports whether applying the overlay would change anything.
func (o Overlay) Empty() bool {
	return o.LogoPath == "" && o.Label == ""
}

// Apply stamps the overlay onto an encoded image and returns the result as
// opaque PNG. The flatten and re-encode happen even when the overlay is
// empty, so output is always an opaque raster regardless of which elements
// were supplied. Apply never fails: undecodable input or a broken overlay
// element returns the input unchanged, so a generated image is never lost
// to branding.
func (o Overlay) Apply(data []byte) []byte {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		slog.Warn("branding skipped, image not decodable", "error", err)
		return data
	}

	b := src.Bounds()
	canvas := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), src, b.Min, draw.Src)

	margin := b.Dx() / 100
	if margin < minMargin {
		margin = minMargin
	}

	logoLeft := -1
	if o.LogoPath != "" {
		logoLeft = o.drawLogo(canvas, margin)
	}
	if o.Label != "" {
		o.drawLabel(canvas, margin, logoLeft)
	}

	flatten(canvas)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		slog.Warn("branding skipped, re-encode failed", "format", format, "error", err)
		return data
	}
	return buf.Bytes()
}

// drawLogo composites the logo into the bottom-right corner, scaled to 10% of
// the base height while preserving aspect ratio. It returns the logo's left
// edge, or -1 when no logo was drawn.
func (o Overlay) drawLogo(canvas *image.NRGBA, margin int) int {
	f, err := os.Open(o.LogoPath)
	if err != nil {
		slog.Warn("logo skipped", "path", o.LogoPath, "error", err)
		return -1
	}
	defer f.Close()

	logo, _, err := image.Decode(f)
	if err != nil {
		slog.Warn("logo skipped, not decodable", "path", o.LogoPath, "error", err)
		return -1
	}

	b := canvas.Bounds()
	h := b.Dy() / 10
	if h < minLogoHeight {
		h = minLogoHeight
	}
	lb := logo.Bounds()
	lh := lb.Dy()
	if lh < 1 {
		lh = 1
	}
	w := int(float64(h) * float64(lb.Dx()) / float64(lh))
	if w < 1 {
		w = 1
	}

	x := b.Dx() - w - margin
	y := b.Dy() - h - margin
	draw.CatmullRom.Scale(canvas, image.Rect(x, y, x+w, y+h), logo, lb, draw.Over, nil)
	return x
}

// drawLabel draws the label in the bottom-left corner over a translucent dark
// box. When a logo occupies the bottom-right, the label slides left of it,
// clamped to the left margin.
func (o Overlay) drawLabel(canvas *image.NRGBA, margin, logoLeft int) {
	b := canvas.Bounds()
	size := int(float64(b.Dy()) * 0.035)
	if size < minFontSize {
		size = minFontSize
	}
	face := newFace(size)
	defer face.Close()

	bounds, _ := font.BoundString(face, o.Label)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x := margin
	if logoLeft >= 0 {
		x = logoLeft - textW - margin
		if x < margin {
			x = margin
		}
	}
	y := b.Dy() - textH - margin

	pad := int(float64(textH) * 0.35)
	bg := image.Rect(x-pad, y-pad, x+textW+pad, y+textH+pad)
	draw.Draw(canvas, bg, image.NewUniform(color.NRGBA{A: labelBgAlpha}), image.Point{}, draw.Over)

	// The drawing dot sits on the baseline; shift it so the ink's top-left
	// lands at (x, y).
	dot := fixed.Point26_6{
		X: fixed.I(x) - bounds.Min.X,
		Y: fixed.I(y) - bounds.Min.Y,
	}
	drawOutlined(canvas, face, o.Label, dot)
}

// drawOutlined draws white text with a dark stroke so the label stays
// readable on any background.
func drawOutlined(dst *image.NRGBA, face font.Face, text string, dot fixed.Point26_6) {
	d := font.Drawer{Dst: dst, Src: image.NewUniform(color.Black), Face: face}
	offsets := [8][2]int{
		{-outlineWidth, 0}, {outlineWidth, 0}, {0, -outlineWidth}, {0, outlineWidth},
		{-outlineWidth, -outlineWidth}, {-outlineWidth, outlineWidth},
		{outlineWidth, -outlineWidth}, {outlineWidth, outlineWidth},
	}
	for _, off := range offsets {
		d.Dot = fixed.Point26_6{X: dot.X + fixed.I(off[0]), Y: dot.Y + fixed.I(off[1])}
		d.DrawString(text)
	}
	d.Src = image.NewUniform(color.White)
	d.Dot = dot
	d.DrawString(text)
}

// flatten forces every pixel opaque, the equivalent of exporting to RGB.
func flatten(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}

// fontPaths are the candidate label fonts, probed in order.
var fontPaths = []string{
	"arial.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
}

var (
	fontOnce   sync.Once
	loadedFont *sfnt.Font
)

// newFace returns a label face at the given pixel size. When no candidate
// font loads, a small builtin face keeps the overlay functional.
func newFace(size int) font.Face {
	fontOnce.Do(func() {
		for _, path := range fontPaths {
			b, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			f, err := opentype.Parse(b)
			if err != nil {
				continue
			}
			loadedFont = f
			return
		}
	})
	if loadedFont == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(loadedFont, &opentype.FaceOptions{Size: float64(size), DPI: 72})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
