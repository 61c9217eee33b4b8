package renderterm

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Bitmap is an 8-bit coverage buffer for one glyph, row-major,
// Width×Height×BytesPerPixel bytes. Empty glyphs (space) carry a nil
// buffer with zero dimensions.
type Bitmap struct {
	Width         int
	Height        int
	BytesPerPixel int
	Buffer        []byte
}

// GlyphDesc describes one charset slot as the line printer consumes it.
type GlyphDesc struct {
	// Width is the horizontal pen advance in pixels.
	Width int
	// Character is the code point this slot renders.
	Character rune
	// BitmapLeft and BitmapTop position the bitmap relative to the pen,
	// x right of the origin and y down from the baseline.
	BitmapLeft int
	BitmapTop  int
	Bitmap     Bitmap
}

// FontResource loads a TrueType or OpenType font and rasterizes glyphs
// from it one at a time.
type FontResource struct {
	face font.Face
	size float64
	dpi  float64
}

// NewFontResource creates an empty resource; Load or LoadBytes must
// succeed before glyphs can be requested.
func NewFontResource(size, dpi float64) *FontResource {
	return &FontResource{size: size, dpi: dpi}
}

// Load reads and parses a font file, replacing any previously loaded
// face.
func (f *FontResource) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fontError(err)
	}
	return f.LoadBytes(data)
}

// LoadBytes parses raw TrueType or OpenType data, replacing any
// previously loaded face.
func (f *FontResource) LoadBytes(data []byte) error {
	ft, err := opentype.Parse(data)
	if err != nil {
		return fontError(err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    f.size,
		DPI:     f.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fontError(err)
	}
	if f.face != nil {
		f.face.Close()
	}
	f.face = face
	return nil
}

// Loaded reports whether a face is available.
func (f *FontResource) Loaded() bool {
	return f.face != nil
}

// Glyph rasterizes r at the loaded size and returns its descriptor. The
// bitmap is a fresh 8-bit alpha buffer; glyphs with no coverage (space)
// return an empty bitmap.
func (f *FontResource) Glyph(r rune) (GlyphDesc, error) {
	if f.face == nil {
		return GlyphDesc{}, fmt.Errorf("%w: no font loaded", ErrInvalidArgument)
	}
	dr, mask, maskp, advance, ok := f.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return GlyphDesc{}, fmt.Errorf("%w: no glyph for %q", ErrInvalidArgument, r)
	}

	desc := GlyphDesc{
		Width:      advance.Ceil(),
		Character:  r,
		BitmapLeft: dr.Min.X,
		BitmapTop:  dr.Min.Y,
	}

	w, h := dr.Dx(), dr.Dy()
	if w > 0 && h > 0 {
		alpha := image.NewAlpha(image.Rect(0, 0, w, h))
		draw.Draw(alpha, alpha.Rect, mask, maskp, draw.Src)
		desc.Bitmap = Bitmap{
			Width:         w,
			Height:        h,
			BytesPerPixel: 1,
			Buffer:        alpha.Pix,
		}
	}
	return desc, nil
}

// LineSpace returns the vertical advance between successive baselines.
func (f *FontResource) LineSpace() (int, error) {
	if f.face == nil {
		return 0, fmt.Errorf("%w: no font loaded", ErrInvalidArgument)
	}
	return f.face.Metrics().Height.Ceil(), nil
}

// Ascent returns the distance from the baseline up to the top of a
// line's box.
func (f *FontResource) Ascent() (int, error) {
	if f.face == nil {
		return 0, fmt.Errorf("%w: no font loaded", ErrInvalidArgument)
	}
	return f.face.Metrics().Ascent.Ceil(), nil
}

// Close releases the loaded face. Safe to call with none loaded.
func (f *FontResource) Close() error {
	if f.face == nil {
		return nil
	}
	err := f.face.Close()
	f.face = nil
	return err
}
