package renderterm

import (
	"fmt"
	"sync"
	"sync/atomic"
)

const (
	// DEFAULT_FONT_SIZE is the rasterization size in points.
	DEFAULT_FONT_SIZE = 14
	// DEFAULT_DPI is the rasterization resolution.
	DEFAULT_DPI = 72
)

// Tty is a render-backed virtual terminal: a scrollable text screen
// with a command-line region, drawn through a line printer over a
// borrowed render backend.
//
// A Tty is reference counted. New hands out the first reference;
// Retain/Release add and drop references, and the last Release tears
// down the printer and the font resource in reverse acquisition order.
// Operations on one Tty must be serialized by the caller.
type Tty struct {
	mu   sync.Mutex
	refs atomic.Int32

	backend *Backend
	printer LinePrinter
	font    *FontResource
	screen  *Screen

	fontSize float64
	dpi      float64

	lineSpace int
	ascent    int
}

// Option configures a Tty during construction.
type Option func(*Tty)

// WithFontSize sets the glyph rasterization size in points.
// Values <= 0 are replaced with the default (14).
func WithFontSize(size float64) Option {
	return func(t *Tty) {
		if size > 0 {
			t.fontSize = size
		}
	}
}

// WithDPI sets the glyph rasterization resolution.
// Values <= 0 are replaced with the default (72).
func WithDPI(dpi float64) Option {
	return func(t *Tty) {
		if dpi > 0 {
			t.dpi = dpi
		}
	}
}

// WithPrinter replaces the default backend-driven line printer.
func WithPrinter(p LinePrinter) Option {
	return func(t *Tty) {
		t.printer = p
	}
}

// New creates a terminal over backend. The backend record must be
// complete; the terminal borrows it and never mutates backend-global
// state. The returned Tty holds one reference.
func New(backend *Backend, opts ...Option) (*Tty, error) {
	if err := backend.validate(); err != nil {
		return nil, err
	}

	t := &Tty{
		backend:  backend,
		screen:   NewScreen(),
		fontSize: DEFAULT_FONT_SIZE,
		dpi:      DEFAULT_DPI,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.font = NewFontResource(t.fontSize, t.dpi)
	if t.printer == nil {
		printer, err := NewPrinter(backend)
		if err != nil {
			return nil, err
		}
		t.printer = printer
	}

	t.refs.Store(1)
	return t, nil
}

// Retain adds a reference.
func (t *Tty) Retain() {
	t.refs.Add(1)
}

// Release drops a reference. The last release closes the printer and
// then the font resource; releasing an already torn down Tty returns
// ErrInvalidArgument.
func (t *Tty) Release() error {
	n := t.refs.Add(-1)
	if n > 0 {
		return nil
	}
	if n < 0 {
		t.refs.Add(1)
		return fmt.Errorf("%w: release of torn down tty", ErrInvalidArgument)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if closer, ok := t.printer.(*Printer); ok {
		if err := closer.Close(); err != nil {
			t.font.Close()
			return err
		}
	}
	return fontError(t.font.Close())
}

// SetFont loads a TrueType or OpenType font file, rasterizes the fixed
// charset, and hands the glyph set to the line printer in one call.
func (t *Tty) SetFont(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.font.Load(path); err != nil {
		return err
	}
	return t.loadAtlas()
}

// SetFontFromBytes is SetFont for raw font data already in memory.
func (t *Tty) SetFontFromBytes(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.font.LoadBytes(data); err != nil {
		return err
	}
	return t.loadAtlas()
}

// loadAtlas rasterizes every charset character and installs the result
// in the printer.
func (t *Tty) loadAtlas() error {
	glyphs := make([]GlyphDesc, len(Charset))
	for i, r := range Charset {
		desc, err := t.font.Glyph(r)
		if err != nil {
			return err
		}
		glyphs[i] = desc
	}

	lineSpace, err := t.font.LineSpace()
	if err != nil {
		return err
	}
	ascent, err := t.font.Ascent()
	if err != nil {
		return err
	}

	if err := t.printer.SetFont(lineSpace, glyphs); err != nil {
		return printerError(err)
	}
	t.lineSpace = lineSpace
	t.ascent = ascent
	return nil
}

// SetViewport sets the rectangle of the render target the terminal is
// drawn into. Width and height must be non-negative.
func (t *Tty) SetViewport(x, y, width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: negative viewport extent", ErrInvalidArgument)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return printerError(t.printer.SetViewport(x, y, width, height))
}

// SetStorage sizes the scrollback to 4×linesPerScreen lines, replacing
// any previous storage. linesPerScreen must be positive.
func (t *Tty) SetStorage(linesPerScreen int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.SetStorage(linesPerScreen)
}

// Print routes s to the prompt, the command line, or the output stream,
// coloring every code point with c. See Output for the routing rules.
func (t *Tty) Print(out Output, s string, c Color) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Print(out, s, c)
}

// TranslateCursor moves the command-line cursor by delta code points,
// clamped between the end of the prompt and the end of the line.
func (t *Tty) TranslateCursor(delta int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.TranslateCursor(delta)
	return nil
}

// Scroll moves the visible window by delta lines toward older content
// (positive) or newer (negative), clamped to the committed line count.
func (t *Tty) Scroll(delta int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Scroll(delta)
	return nil
}

// CommitCommand pushes the current command line onto the output stream
// and starts a fresh one seeded with the prompt.
func (t *Tty) CommitCommand() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.CommitCommand()
	return nil
}

// CancelCommand discards the current command line without committing
// it; the next command write starts fresh, seeded with the prompt.
func (t *Tty) CancelCommand() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.CancelCommand()
	return nil
}

// Screen exposes the underlying screen state for inspection.
func (t *Tty) Screen() *Screen {
	return t.screen
}

// Draw renders the visible window of the output stream plus the command
// line through the line printer, newest content at the bottom. The
// command line occupies the bottom row; a cursor mark is drawn under
// the insert position. Draw is a no-op before a font or storage is set.
func (t *Tty) Draw() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.lineSpace == 0 || t.screen.LinesCount() == 0 {
		return nil
	}

	// Bottom row is the command line; the rows above hold the visible
	// window: committed lines and, when pinned to the newest content,
	// the live output accumulator.
	rows := t.screen.LinesPerScreen()
	if rows < 2 {
		rows = 2
	}
	textRows := rows - 1

	window := make([]*Text, 0, textRows)

	out := t.screen.OutText()
	if out != nil && t.screen.ScrollID() == 0 {
		window = append(window, out)
	}
	newest := t.screen.StdoutLen() - t.screen.ScrollID()
	for i := newest - 1; i >= 0 && len(window) < textRows; i-- {
		window = append(window, t.screen.StdoutText(i))
	}

	// window holds the bottom-most line first; row rows-2 is directly
	// above the command line.
	for idx, line := range window {
		if line.Len() == 0 {
			continue
		}
		y := t.ascent + (rows-2-idx)*t.lineSpace
		if err := t.printer.DrawString(line.Runes(), Point{X: 0, Y: y}, line.Colors()); err != nil {
			return printerError(err)
		}
	}

	cmd := t.screen.CmdText()
	cmdY := t.ascent + (rows-1)*t.lineSpace
	if cmd != nil && cmd.Len() > 0 {
		if err := t.printer.DrawString(cmd.Runes(), Point{X: 0, Y: cmdY}, cmd.Colors()); err != nil {
			return printerError(err)
		}
	}
	if cmd != nil {
		cursorX := t.cursorX(cmd)
		mark := []rune{'_'}
		if err := t.printer.DrawString(mark, Point{X: cursorX, Y: cmdY}, []Color{ColorWhite}); err != nil {
			return printerError(err)
		}
	}
	return nil
}

// cursorX sums glyph advances left of the cursor to find its pen
// position.
func (t *Tty) cursorX(cmd *Text) int {
	printer, ok := t.printer.(*Printer)
	if !ok {
		return 0
	}
	x := 0
	runes := cmd.Runes()
	for i := 0; i < t.screen.Cursor() && i < len(runes); i++ {
		g := &printer.glyphs[printer.slot(runes[i])]
		x += g.desc.Width
	}
	return x
}
