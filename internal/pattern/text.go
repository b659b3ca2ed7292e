package pattern

import "strings"

// TextElement is literal text that must appear verbatim (ignoring case) at
// the current offset. The EndOfLine sentinel is represented as a TextElement
// so boundary lookahead can treat it uniformly.
type TextElement struct {
	text string
}

func NewTextElement(text string) *TextElement {
	return &TextElement{text: text}
}

// Text returns the literal.
func (t *TextElement) Text() string { return t.text }

func (t *TextElement) Match(s string, pos int, _ *MatchContext) (int, bool) {
	end := pos + len(t.text)
	if end > len(s) {
		return 0, false
	}
	if strings.EqualFold(s[pos:end], t.text) {
		return end, true
	}
	return 0, false
}

func (t *TextElement) Equals(other Element) bool {
	o, ok := other.(*TextElement)
	return ok && strings.EqualFold(t.text, o.text)
}

func (t *TextElement) String() string { return t.text }
