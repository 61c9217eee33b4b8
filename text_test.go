package renderterm

import "testing"

func TestTextAppend(t *testing.T) {
	txt := NewText()
	txt.Append("abc", ColorRed)

	if txt.Len() != 3 {
		t.Fatalf("expected len 3, got %d", txt.Len())
	}
	if got := txt.String(); got != "abc" {
		t.Errorf("expected \"abc\", got %q", got)
	}
	for i, c := range txt.Colors() {
		if c != ColorRed {
			t.Errorf("color %d: expected red, got %v", i, c)
		}
	}
}

func TestTextLockstep(t *testing.T) {
	txt := NewText()
	txt.Append("hello", ColorWhite)
	txt.Insert(2, "XY", ColorRed)
	txt.Append("!", ColorGreen)

	if len(txt.Runes()) != len(txt.Colors()) {
		t.Fatalf("sequences out of lockstep: %d runes, %d colors",
			len(txt.Runes()), len(txt.Colors()))
	}
}

func TestTextInsert(t *testing.T) {
	txt := NewText()
	txt.Append("hell", ColorWhite)

	if err := txt.Insert(4, "o", ColorRed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := txt.String(); got != "hello" {
		t.Errorf("expected \"hello\", got %q", got)
	}
	if txt.Colors()[4] != ColorRed {
		t.Errorf("inserted color: expected red, got %v", txt.Colors()[4])
	}

	if err := txt.Insert(2, "XX", ColorGreen); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := txt.String(); got != "heXXllo" {
		t.Errorf("expected \"heXXllo\", got %q", got)
	}
	if txt.Colors()[2] != ColorGreen || txt.Colors()[3] != ColorGreen {
		t.Error("inserted run should be green")
	}
	if txt.Colors()[4] != ColorWhite {
		t.Error("shifted code point should keep its color")
	}
}

func TestTextInsertOutOfRange(t *testing.T) {
	txt := NewText()
	txt.Append("ab", ColorWhite)

	if err := txt.Insert(3, "x", ColorWhite); err != ErrInvalidArgument {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if err := txt.Insert(-1, "x", ColorWhite); err != ErrInvalidArgument {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	// Failed insert leaves both sequences untouched.
	if txt.Len() != 2 || len(txt.Colors()) != 2 {
		t.Errorf("failed insert mutated the buffer: %d/%d", txt.Len(), len(txt.Colors()))
	}
}

func TestTextClearThenAppend(t *testing.T) {
	txt := NewText()
	txt.Append("old", ColorWhite)
	txt.Clear()

	if txt.Len() != 0 {
		t.Fatalf("expected empty after clear, got %d", txt.Len())
	}

	txt.Append("new", ColorBlue)
	if txt.Len() != 3 {
		t.Fatalf("expected len 3, got %d", txt.Len())
	}
	for _, c := range txt.Colors() {
		if c != ColorBlue {
			t.Error("expected all colors blue after clear+append")
		}
	}
}

func TestTextCopyFrom(t *testing.T) {
	src := NewText()
	src.Append("ab", ColorRed)

	dst := NewText()
	dst.Append("something else", ColorWhite)
	dst.CopyFrom(src)

	if got := dst.String(); got != "ab" {
		t.Errorf("expected \"ab\", got %q", got)
	}
	if dst.Colors()[0] != ColorRed || dst.Colors()[1] != ColorRed {
		t.Error("expected copied colors")
	}

	// Copy is deep with respect to later mutation of the source.
	src.Append("c", ColorGreen)
	if dst.Len() != 2 {
		t.Errorf("destination changed with source: len %d", dst.Len())
	}
}
