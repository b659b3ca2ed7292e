package pattern

import (
	"fmt"
	"regexp"
)

// RegexElement matches a prefix-anchored regular expression at the current
// offset, written <regex> in pattern notation. Captures are recorded on the
// context in pattern order.
type RegexElement struct {
	source   string
	anchored *regexp.Regexp
}

// NewRegexElement compiles source into a prefix-anchored element.
func NewRegexElement(source string) (*RegexElement, error) {
	anchored, err := regexp.Compile("^(?:" + source + ")")
	if err != nil {
		return nil, fmt.Errorf("compiling regex token <%s>: %w", source, err)
	}
	return &RegexElement{source: source, anchored: anchored}, nil
}

// matchAt returns the submatches of the anchored regex at offset pos, or nil.
func (r *RegexElement) matchAt(s string, pos int) []string {
	if pos > len(s) {
		return nil
	}
	return r.anchored.FindStringSubmatch(s[pos:])
}

func (r *RegexElement) Match(s string, pos int, ctx *MatchContext) (int, bool) {
	groups := r.matchAt(s, pos)
	if groups == nil {
		return 0, false
	}
	ctx.addMatch(RegexMatch{Groups: groups})
	return pos + len(groups[0]), true
}

func (r *RegexElement) Equals(other Element) bool {
	o, ok := other.(*RegexElement)
	return ok && r.source == o.source
}

func (r *RegexElement) String() string {
	return "<" + r.source + ">"
}
