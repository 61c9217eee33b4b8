package renderterm

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func newTestTty(t *testing.T) *Tty {
	t.Helper()
	tty, err := New(NoopBackend())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tty
}

func TestNew(t *testing.T) {
	tty := newTestTty(t)
	defer tty.Release()

	if tty.Screen() == nil {
		t.Error("expected a screen")
	}
}

func TestNewRejectsIncompleteBackend(t *testing.T) {
	b := NoopBackend()
	b.Draw = nil

	if _, err := New(b); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := New(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for nil backend, got %v", err)
	}
}

func TestTtyRefCounting(t *testing.T) {
	tty := newTestTty(t)

	tty.Retain()
	if err := tty.Release(); err != nil {
		t.Fatalf("unexpected error on intermediate release: %v", err)
	}
	if err := tty.Release(); err != nil {
		t.Fatalf("unexpected error on final release: %v", err)
	}
	if err := tty.Release(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument after teardown, got %v", err)
	}
}

func TestTtySetFontFromBytes(t *testing.T) {
	tty := newTestTty(t)
	defer tty.Release()

	if err := tty.SetFontFromBytes(goregular.TTF); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTtySetFontGarbage(t *testing.T) {
	tty := newTestTty(t)
	defer tty.Release()

	if err := tty.SetFontFromBytes([]byte("junk")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if err := tty.SetFont("/nonexistent/font.ttf"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestTtySetViewport(t *testing.T) {
	tty := newTestTty(t)
	defer tty.Release()

	if err := tty.SetViewport(0, 0, 640, 480); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tty.SetViewport(0, 0, -1, 480); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestTtyPrintRouting(t *testing.T) {
	tty := newTestTty(t)
	defer tty.Release()

	if err := tty.SetStorage(10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tty.Print(OutputPrompt, "$ ", ColorWhite)
	tty.Print(OutputCmd, "ls", ColorWhite)
	tty.Print(OutputStdout, "a\nb", ColorRed)

	screen := tty.Screen()
	if got := screen.CmdText().String(); got != "$ ls" {
		t.Errorf("expected command line \"$ ls\", got %q", got)
	}
	if screen.StdoutLen() != 1 {
		t.Errorf("expected one committed line, got %d", screen.StdoutLen())
	}
	if got := screen.OutText().String(); got != "b" {
		t.Errorf("expected live accumulator \"b\", got %q", got)
	}
}

func TestTtySetStorageInvalid(t *testing.T) {
	tty := newTestTty(t)
	defer tty.Release()

	if err := tty.SetStorage(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestTtyTranslateCursorAndCommit(t *testing.T) {
	tty := newTestTty(t)
	defer tty.Release()

	tty.SetStorage(5)
	tty.Print(OutputPrompt, "> ", ColorWhite)
	tty.Print(OutputCmd, "run", ColorWhite)
	tty.TranslateCursor(-100)

	if got := tty.Screen().Cursor(); got != 2 {
		t.Errorf("expected cursor at prompt end, got %d", got)
	}

	tty.CommitCommand()
	if got := tty.Screen().StdoutText(0).String(); got != "> run" {
		t.Errorf("expected committed \"> run\", got %q", got)
	}
}

func TestTtyCancelCommand(t *testing.T) {
	tty := newTestTty(t)
	defer tty.Release()

	tty.SetStorage(5)
	tty.Print(OutputPrompt, "> ", ColorWhite)
	tty.Print(OutputCmd, "oops", ColorWhite)

	if err := tty.CancelCommand(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tty.Screen().CmdText() != nil {
		t.Error("expected no live command line after cancel")
	}
	if tty.Screen().StdoutLen() != 0 {
		t.Error("expected cancelled command not committed")
	}
}

func TestTtyDrawBeforeSetup(t *testing.T) {
	tty := newTestTty(t)
	defer tty.Release()

	// No font, no storage: nothing to do, no error.
	if err := tty.Draw(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTtyDrawEndToEnd(t *testing.T) {
	backend := newRecordingBackend()
	tty, err := New(backend.Backend)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tty.Release()

	if err := tty.SetFontFromBytes(goregular.TTF); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tty.SetViewport(0, 0, 640, 480)
	tty.SetStorage(5)
	tty.Print(OutputPrompt, "$ ", ColorWhite)
	tty.Print(OutputStdout, "one\ntwo\nthree", ColorGreen)
	tty.Print(OutputCmd, "status", ColorWhite)

	if err := tty.Draw(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two committed lines, the live accumulator, the command line, and
	// the cursor mark each produce a batch.
	if backend.draws != 5 {
		t.Errorf("expected 5 draw batches, got %d", backend.draws)
	}
}

func TestTtyDrawScrolledBack(t *testing.T) {
	backend := newRecordingBackend()
	tty, err := New(backend.Backend)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tty.Release()

	if err := tty.SetFontFromBytes(goregular.TTF); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tty.SetStorage(2)
	tty.Print(OutputStdout, "a\nb\nc\nd\ne", ColorWhite)
	tty.Scroll(2)

	before := backend.draws
	if err := tty.Draw(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Scrolled away from the newest content: the live accumulator is
	// not part of the window, only one committed line fits above the
	// command row.
	if got := backend.draws - before; got != 1 {
		t.Errorf("expected 1 draw batch, got %d", got)
	}
}
