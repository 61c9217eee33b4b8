package renderterm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/unilibs/uniwidth"
)

// Point is a pixel position on the render target, y growing downward.
type Point struct {
	X int
	Y int
}

// LinePrinter is the drawing contract the terminal renders through.
type LinePrinter interface {
	// SetFont installs the glyph set and the baseline-to-baseline
	// advance. Called once per font load with the full charset.
	SetFont(lineSpace int, glyphs []GlyphDesc) error
	// SetViewport sets the target rectangle in render-target pixels.
	SetViewport(x, y, width, height int) error
	// DrawString draws text with its baseline starting at pos, one color
	// per code point. Extra code points reuse the last color.
	DrawString(text []rune, pos Point, colors []Color) error
}

// Vertex layout consumed by the printer's program: position, atlas
// coordinate, straight-alpha color. 6 vertices per glyph quad.
const printerVertexFloats = 8

const printerVertexSrc = `#version 330 core
layout(location = 0) in vec2 in_pos;
layout(location = 1) in vec2 in_uv;
layout(location = 2) in vec4 in_color;
out vec2 uv;
out vec4 color;
uniform vec4 viewport;
void main() {
	vec2 ndc = (in_pos - viewport.xy) / viewport.zw * 2.0 - 1.0;
	gl_Position = vec4(ndc.x, -ndc.y, 0.0, 1.0);
	uv = in_uv;
	color = in_color;
}
`

const printerFragmentSrc = `#version 330 core
in vec2 uv;
in vec4 color;
out vec4 frag;
uniform sampler2D atlas;
void main() {
	frag = vec4(color.rgb, color.a * texture(atlas, uv).r);
}
`

// printerGlyph is one atlas slot with its placement in the texture.
type printerGlyph struct {
	desc   GlyphDesc
	u0, v0 float32
	u1, v1 float32
}

// Printer is the default LinePrinter: it packs the glyph bitmaps into a
// single atlas texture and batches one textured quad per visible glyph.
type Printer struct {
	backend *Backend

	program ProgramID
	buffer  BufferID
	atlas   TextureID

	glyphs    []printerGlyph
	slots     map[rune]int
	lineSpace int

	viewport [4]int

	verts []float32
	raw   []byte
}

// NewPrinter creates a printer over backend, allocating its program and
// vertex buffer up front.
func NewPrinter(backend *Backend) (*Printer, error) {
	if err := backend.validate(); err != nil {
		return nil, err
	}
	program, err := backend.CreateProgram(printerVertexSrc, printerFragmentSrc)
	if err != nil {
		return nil, printerError(err)
	}
	buffer, err := backend.CreateBuffer(0)
	if err != nil {
		backend.DeleteProgram(program)
		return nil, printerError(err)
	}
	return &Printer{
		backend: backend,
		program: program,
		buffer:  buffer,
	}, nil
}

// SetFont packs the glyph bitmaps onto a single shelf and uploads them
// as one 8-bit texture. A previous atlas is replaced.
func (p *Printer) SetFont(lineSpace int, glyphs []GlyphDesc) error {
	if lineSpace <= 0 || len(glyphs) == 0 {
		return fmt.Errorf("%w: empty font data", ErrInvalidArgument)
	}

	atlasW, atlasH := 0, 1
	for i := range glyphs {
		atlasW += glyphs[i].Bitmap.Width
		if glyphs[i].Bitmap.Height > atlasH {
			atlasH = glyphs[i].Bitmap.Height
		}
	}
	if atlasW == 0 {
		atlasW = 1
	}

	atlas, err := p.backend.CreateTexture(atlasW, atlasH, 1)
	if err != nil {
		return printerError(err)
	}

	packed := make([]printerGlyph, len(glyphs))
	slots := make(map[rune]int, len(glyphs))
	x := 0
	for i := range glyphs {
		bm := glyphs[i].Bitmap
		if bm.Width > 0 && bm.Height > 0 {
			if err := p.backend.UpdateTexture(atlas, x, 0, bm.Width, bm.Height, bm.Buffer); err != nil {
				p.backend.DeleteTexture(atlas)
				return printerError(err)
			}
		}
		packed[i] = printerGlyph{
			desc: glyphs[i],
			u0:   float32(x) / float32(atlasW),
			v0:   0,
			u1:   float32(x+bm.Width) / float32(atlasW),
			v1:   float32(bm.Height) / float32(atlasH),
		}
		slots[glyphs[i].Character] = i
		x += bm.Width
	}

	if p.atlas != 0 {
		p.backend.DeleteTexture(p.atlas)
	}
	p.atlas = atlas
	p.glyphs = packed
	p.slots = slots
	p.lineSpace = lineSpace
	return nil
}

// LineSpace returns the installed baseline-to-baseline advance, 0
// before SetFont.
func (p *Printer) LineSpace() int {
	return p.lineSpace
}

// SetViewport sets the on-target rectangle and scissors drawing to it.
// Width and height must be non-negative.
func (p *Printer) SetViewport(x, y, width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: negative viewport extent", ErrInvalidArgument)
	}
	p.viewport = [4]int{x, y, width, height}
	if err := p.backend.SetViewport(x, y, width, height); err != nil {
		return printerError(err)
	}
	return printerError(p.backend.SetScissor(x, y, width, height))
}

// slot resolves a code point to its atlas slot, falling back to the
// first slot for anything outside the charset.
func (p *Printer) slot(r rune) int {
	if i, ok := p.slots[r]; ok {
		return i
	}
	return 0
}

// DrawString batches one quad per glyph of text and submits a single
// draw. pos is the baseline origin of the first glyph, relative to the
// viewport. Wide code points advance the pen by twice their slot width.
func (p *Printer) DrawString(text []rune, pos Point, colors []Color) error {
	if len(p.glyphs) == 0 {
		return fmt.Errorf("%w: no font installed", ErrInvalidArgument)
	}
	if len(text) == 0 {
		return nil
	}

	p.verts = p.verts[:0]
	penX := pos.X
	color := ColorWhite
	for i, r := range text {
		if i < len(colors) {
			color = colors[i]
		}
		g := &p.glyphs[p.slot(r)]

		cells := uniwidth.RuneWidth(r)
		if cells < 1 {
			cells = 1
		}

		bm := g.desc.Bitmap
		if bm.Width > 0 && bm.Height > 0 {
			x0 := float32(penX + g.desc.BitmapLeft)
			y0 := float32(pos.Y + g.desc.BitmapTop)
			x1 := x0 + float32(bm.Width)
			y1 := y0 + float32(bm.Height)
			p.quad(x0, y0, x1, y1, g, color)
		}
		penX += g.desc.Width * cells
	}

	if len(p.verts) == 0 {
		return nil
	}
	if err := p.backend.UpdateBuffer(p.buffer, p.encode()); err != nil {
		return printerError(err)
	}
	return printerError(p.backend.Draw(DrawCommand{
		Program:     p.program,
		Buffer:      p.buffer,
		Texture:     p.atlas,
		VertexCount: len(p.verts) / printerVertexFloats,
	}))
}

// quad appends the two triangles of one glyph rectangle.
func (p *Printer) quad(x0, y0, x1, y1 float32, g *printerGlyph, c Color) {
	v := func(x, y, u, vv float32) {
		p.verts = append(p.verts, x, y, u, vv, c.R, c.G, c.B, 1)
	}
	v(x0, y0, g.u0, g.v0)
	v(x1, y0, g.u1, g.v0)
	v(x1, y1, g.u1, g.v1)
	v(x0, y0, g.u0, g.v0)
	v(x1, y1, g.u1, g.v1)
	v(x0, y1, g.u0, g.v1)
}

// encode serializes the vertex batch as little-endian float32s.
func (p *Printer) encode() []byte {
	need := len(p.verts) * 4
	if cap(p.raw) < need {
		p.raw = make([]byte, need)
	}
	p.raw = p.raw[:need]
	for i, f := range p.verts {
		binary.LittleEndian.PutUint32(p.raw[i*4:], math.Float32bits(f))
	}
	return p.raw
}

// Close releases the printer's backend objects.
func (p *Printer) Close() error {
	var firstErr error
	if p.atlas != 0 {
		if err := p.backend.DeleteTexture(p.atlas); err != nil && firstErr == nil {
			firstErr = err
		}
		p.atlas = 0
	}
	if err := p.backend.DeleteBuffer(p.buffer); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := p.backend.DeleteProgram(p.program); err != nil && firstErr == nil {
		firstErr = err
	}
	return printerError(firstErr)
}
