// Package renderterm provides a render-backed virtual terminal: a
// scrollable text screen with a command-line region, drawn as textured
// glyph quads through a pluggable render backend.
//
// It is meant for host applications (games, simulators, debug
// consoles) that want an overlaid console without a real terminal
// emulator behind it.
//
// # Quick Start
//
// Create a terminal over a render backend, give it a font and storage,
// and print:
//
//	tty, err := renderterm.New(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tty.Release()
//
//	tty.SetFont("DejaVuSansMono.ttf")
//	tty.SetViewport(0, 0, 800, 600)
//	tty.SetStorage(25) // 25 visible lines, 100 retained
//
//	tty.Print(renderterm.OutputPrompt, "$ ", renderterm.ColorWhite)
//	tty.Print(renderterm.OutputStdout, "hello\nworld", renderterm.ColorGreen)
//	tty.Draw()
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Tty]: the reference-counted root owning everything below
//   - [Screen]: prompt, output stream, command line, cursor, scrolling
//   - [LineRing]: the fixed pool of line slots with free/committed queues
//   - [Text]: a run of code points with one color per code point
//   - [FontResource]: glyph rasterization over a TrueType/OpenType face
//   - [Printer]: the default [LinePrinter] batching glyph quads
//   - [Backend]: the record of render operations the terminal draws through
//
// # Output Routing
//
// Print takes one of three outputs. OutputStdout appends to the output
// stream and commits a line on every newline; once the ring is full the
// oldest committed line is evicted. OutputCmd inserts at the cursor of
// the command line, which activates on first use seeded with the
// prompt. OutputPrompt appends to the prompt and mirrors the append
// into a live command line so the visible line stays prompt plus
// command.
//
// # Rendering
//
// SetFont rasterizes a fixed 95-character set ([Charset]) into one
// glyph atlas and hands it to the line printer. Draw walks the visible
// window of the output stream plus the command line and emits one draw
// batch per line. Code points outside the charset are stored verbatim
// and drawn with the first charset glyph.
//
// # Errors
//
// Failures wrap one of three sentinels ([ErrInvalidArgument],
// [ErrMemory], [ErrUnknown]) so callers classify with errors.Is.
// Stdout and command prints before SetStorage are documented no-ops,
// not errors.
package renderterm
