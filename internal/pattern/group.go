package pattern

import "strings"

// CompoundElement is a sequence of elements matched one after another. The
// notation compiler always produces a CompoundElement root, so the flattened
// index of a context counts one slot per direct leaf or group.
type CompoundElement struct {
	elements []Element
}

func NewCompoundElement(elements ...Element) *CompoundElement {
	return &CompoundElement{elements: elements}
}

// Elements returns the direct children of the sequence.
func (c *CompoundElement) Elements() []Element { return c.elements }

func (c *CompoundElement) Match(s string, pos int, ctx *MatchContext) (int, bool) {
	i := pos
	for _, el := range flattenSequence(c) {
		// The index is advanced before the element runs, so a placeholder
		// always sees the slots strictly after itself.
		ctx.advance()
		var ok bool
		if i, ok = el.Match(s, i, ctx); !ok {
			return 0, false
		}
	}
	return i, true
}

func (c *CompoundElement) Equals(other Element) bool {
	o, ok := other.(*CompoundElement)
	if !ok || len(c.elements) != len(o.elements) {
		return false
	}
	for i, el := range c.elements {
		if !el.Equals(o.elements[i]) {
			return false
		}
	}
	return true
}

func (c *CompoundElement) String() string {
	var sb strings.Builder
	for _, el := range c.elements {
		sb.WriteString(el.String())
	}
	return sb.String()
}

// OptionalGroup wraps an element that may be skipped entirely, written
// [inner] in pattern notation. The inner element is tried on a branched
// context; when it fails the group matches zero-width.
type OptionalGroup struct {
	element Element
}

func NewOptionalGroup(element Element) *OptionalGroup {
	return &OptionalGroup{element: element}
}

// Element returns the wrapped element.
func (g *OptionalGroup) Element() Element { return g.element }

func (g *OptionalGroup) Match(s string, pos int, ctx *MatchContext) (int, bool) {
	branch := ctx.branch(g.element)
	if end, ok := g.element.Match(s, pos, branch); ok {
		ctx.merge(branch)
		return end, true
	}
	return pos, true
}

func (g *OptionalGroup) Equals(other Element) bool {
	o, ok := other.(*OptionalGroup)
	return ok && g.element.Equals(o.element)
}

func (g *OptionalGroup) String() string {
	return "[" + g.element.String() + "]"
}

// ChoiceGroup tries each alternative in declared order and commits to the
// first one that matches, written (a|b|c) in pattern notation.
type ChoiceGroup struct {
	choices []Element
}

func NewChoiceGroup(choices ...Element) *ChoiceGroup {
	return &ChoiceGroup{choices: choices}
}

// Choices returns the alternatives in declared order.
func (g *ChoiceGroup) Choices() []Element { return g.choices }

func (g *ChoiceGroup) Match(s string, pos int, ctx *MatchContext) (int, bool) {
	for _, choice := range g.choices {
		branch := ctx.branch(choice)
		if end, ok := choice.Match(s, pos, branch); ok {
			ctx.merge(branch)
			return end, true
		}
	}
	return 0, false
}

func (g *ChoiceGroup) Equals(other Element) bool {
	o, ok := other.(*ChoiceGroup)
	if !ok || len(g.choices) != len(o.choices) {
		return false
	}
	for i, choice := range g.choices {
		if !choice.Equals(o.choices[i]) {
			return false
		}
	}
	return true
}

func (g *ChoiceGroup) String() string {
	parts := make([]string, len(g.choices))
	for i, choice := range g.choices {
		parts[i] = choice.String()
	}
	return "(" + strings.Join(parts, "|") + ")"
}
