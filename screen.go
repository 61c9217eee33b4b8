package renderterm

import "strings"

// Output selects the routing target of a Print call.
type Output int

const (
	// OutputPrompt appends to the prompt. A live command line mirrors the
	// append so the visible line stays prompt || command.
	OutputPrompt Output = iota
	// OutputCmd inserts at the cursor of the command line, activating it
	// on first use.
	OutputCmd
	// OutputStdout appends to the output stream, committing a line on
	// every newline.
	OutputStdout
)

// Screen is the scrollable text state: the line ring, the prompt, the
// live output and command accumulators, the command cursor, and the
// scroll offset. It performs no locking; the owning Tty serializes
// access.
type Screen struct {
	prompt Text
	ring   *LineRing

	// Live accumulators; -1 when absent.
	outbuf int
	cmdbuf int

	// cursor is the insert index in the command line. It never moves
	// left of the prompt nor right of the end of text.
	cursor int

	// scrollID is the offset from the newest committed line to the
	// bottom of the visible window. 0 means pinned to the newest line.
	scrollID int

	linesPerScreen int
}

// NewScreen creates a screen with no line storage. Stdout and command
// writes are dropped until SetStorage is called.
func NewScreen() *Screen {
	return &Screen{outbuf: -1, cmdbuf: -1}
}

// SetStorage sizes the scrollback to 4×linesPerScreen line slots,
// discarding any previous content. linesPerScreen must be positive.
func (s *Screen) SetStorage(linesPerScreen int) error {
	if linesPerScreen <= 0 {
		return ErrInvalidArgument
	}
	s.linesPerScreen = linesPerScreen
	s.ring = NewLineRing(4 * linesPerScreen)
	s.outbuf = -1
	s.cmdbuf = -1
	s.cursor = 0
	s.scrollID = 0
	return nil
}

// LinesCount returns the ring capacity, 0 before SetStorage.
func (s *Screen) LinesCount() int {
	if s.ring == nil {
		return 0
	}
	return s.ring.Cap()
}

// LinesPerScreen returns the configured visible line count.
func (s *Screen) LinesPerScreen() int {
	return s.linesPerScreen
}

// Prompt returns the prompt text run.
func (s *Screen) Prompt() *Text {
	return &s.prompt
}

// Cursor returns the insert index in the command line.
func (s *Screen) Cursor() int {
	return s.cursor
}

// ScrollID returns the scroll offset from the newest committed line.
func (s *Screen) ScrollID() int {
	return s.scrollID
}

// StdoutLen returns the number of committed output lines.
func (s *Screen) StdoutLen() int {
	if s.ring == nil {
		return 0
	}
	return s.ring.StdoutLen()
}

// StdoutText returns the i-th committed output line, oldest first, or
// nil when i is out of range.
func (s *Screen) StdoutText(i int) *Text {
	if s.ring == nil {
		return nil
	}
	l := s.ring.StdoutLine(i)
	if l == nil {
		return nil
	}
	return l.Text()
}

// OutText returns the live output accumulator, or nil before the first
// stdout write.
func (s *Screen) OutText() *Text {
	if s.outbuf < 0 {
		return nil
	}
	return s.ring.Line(s.outbuf).Text()
}

// CmdText returns the live command line, or nil before activation.
func (s *Screen) CmdText() *Text {
	if s.cmdbuf < 0 {
		return nil
	}
	return s.ring.Line(s.cmdbuf).Text()
}

// Print routes text to the prompt, the command line, or the output
// stream. Command and stdout writes are silently dropped while no
// storage is configured; prompt writes always apply.
func (s *Screen) Print(out Output, str string, c Color) error {
	switch out {
	case OutputPrompt:
		return s.printPrompt(str, c)
	case OutputCmd:
		return s.printCmd(str, c)
	case OutputStdout:
		return s.printStdout(str, c)
	default:
		return ErrInvalidArgument
	}
}

// printPrompt appends to the prompt. When a command line is live the
// same run is inserted at the end of its prompt region and the cursor
// advances past it, keeping the prompt || command view in sync.
func (s *Screen) printPrompt(str string, c Color) error {
	promptLen := s.prompt.Len()
	s.prompt.Append(str, c)
	if s.cmdbuf < 0 {
		return nil
	}
	if err := s.ring.Line(s.cmdbuf).Text().Insert(promptLen, str, c); err != nil {
		return err
	}
	s.cursor += len([]rune(str))
	return nil
}

// printCmd inserts at the cursor, activating the command line first if
// needed.
func (s *Screen) printCmd(str string, c Color) error {
	if s.ring == nil {
		return nil
	}
	if s.cmdbuf < 0 {
		s.flushLine(OutputCmd)
	}
	if err := s.ring.Line(s.cmdbuf).Text().Insert(s.cursor, str, c); err != nil {
		return err
	}
	s.cursor += len([]rune(str))
	return nil
}

// printStdout splits on newlines: each segment appends to the output
// accumulator and every newline commits it. The trailing segment stays
// live. The accumulator takes a line slot only once it has content or a
// newline forces an empty commit.
func (s *Screen) printStdout(str string, c Color) error {
	if s.ring == nil {
		return nil
	}
	segments := strings.Split(str, "\n")
	for i, seg := range segments {
		if seg != "" {
			if s.outbuf < 0 {
				s.outbuf = s.acquire()
			}
			s.ring.Line(s.outbuf).Text().Append(seg, c)
		}
		if i < len(segments)-1 {
			s.flushLine(OutputStdout)
		}
	}
	return nil
}

// flushLine commits the live accumulator for out onto the stdout list.
// The output accumulator is left absent until the next write; the
// command line is immediately rebound to a fresh slot seeded with the
// prompt, cursor at its end.
func (s *Screen) flushLine(out Output) {
	switch out {
	case OutputStdout:
		if s.outbuf < 0 {
			s.outbuf = s.acquire()
		}
		s.ring.Commit(s.outbuf)
		s.outbuf = -1
	case OutputCmd:
		if s.cmdbuf >= 0 {
			s.ring.Commit(s.cmdbuf)
		}
		s.cmdbuf = s.acquire()
		s.cursor = s.prompt.Len()
		if s.prompt.Len() > 0 {
			s.ring.Line(s.cmdbuf).Text().CopyFrom(&s.prompt)
		}
	}
}

// CommitCommand commits the live command line onto the stdout list and
// rebinds a fresh one seeded with the prompt. No-op before activation.
func (s *Screen) CommitCommand() {
	if s.cmdbuf < 0 {
		return
	}
	s.flushLine(OutputCmd)
}

// CancelCommand discards the live command line without committing it,
// returning its slot to the free queue. The next command write starts
// a fresh line seeded with the prompt. No-op before activation.
func (s *Screen) CancelCommand() {
	if s.cmdbuf < 0 {
		return
	}
	s.ring.ReleaseFree(s.cmdbuf)
	s.cmdbuf = -1
	s.cursor = 0
}

// acquire takes a slot from the ring, clamping the scroll offset when
// the ring had to evict a committed line.
func (s *Screen) acquire() int {
	before := s.ring.StdoutLen()
	slot := s.ring.AcquireFree()
	if s.ring.StdoutLen() < before && s.scrollID > s.ring.StdoutLen() {
		s.scrollID = s.ring.StdoutLen()
	}
	return slot
}

// TranslateCursor moves the command cursor by delta code points. The
// cursor never crosses left into the prompt nor right past the end of
// the command line.
func (s *Screen) TranslateCursor(delta int) {
	if s.cmdbuf < 0 {
		return
	}
	switch {
	case delta < 0:
		room := s.cursor - s.prompt.Len()
		if -delta > room {
			delta = -room
		}
	case delta > 0:
		room := s.ring.Line(s.cmdbuf).Text().Len() - s.cursor
		if delta > room {
			delta = room
		}
	}
	s.cursor += delta
}

// Scroll moves the visible window by delta lines toward older content
// (positive) or newer content (negative), clamped to the committed
// line count.
func (s *Screen) Scroll(delta int) {
	n := s.scrollID + delta
	if n < 0 {
		n = 0
	}
	if limit := s.StdoutLen(); n > limit {
		n = limit
	}
	s.scrollID = n
}
