package renderterm

// Charset is the fixed set of characters the glyph atlas provides:
// digits, ASCII letters, space, and common punctuation. The atlas holds
// exactly these characters and no others.
var Charset = []rune(
	"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		" &~\"#'{([-|`_\\^@)]=}+$%*,?;.:/!<>")

var charsetSlots = func() map[rune]int {
	m := make(map[rune]int, len(Charset))
	for i, r := range Charset {
		m[r] = i
	}
	return m
}()

// charsetSlot returns the atlas slot for r. Code points outside the
// charset fall back to slot 0; the screen still stores them verbatim.
func charsetSlot(r rune) int {
	if i, ok := charsetSlots[r]; ok {
		return i
	}
	return 0
}
