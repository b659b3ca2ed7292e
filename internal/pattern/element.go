// Package pattern implements compiled syntax patterns and the backtracking
// matcher that binds script lines against them. A pattern is a tree of
// elements: literal text, regex tokens, typed expression placeholders and
// groups (sequence, optional, choice). Matching walks the tree left to
// right; placeholders find their own boundary by looking ahead at what could
// legally follow them.
package pattern

// EndOfLine is the sentinel literal appended by possibleInputs when the
// remainder of a flattened sequence runs out: a placeholder that sees it may
// consume everything up to the end of the input.
const EndOfLine = "\x00"

// Element is one compiled pattern fragment. The set of implementations is
// closed: TextElement, RegexElement, ExpressionElement, CompoundElement,
// OptionalGroup and ChoiceGroup.
type Element interface {
	// Match attempts to match the element against s at offset pos. It
	// returns the new offset on success. On failure it must leave ctx in a
	// retryable state: expressions and regex matches are only recorded on
	// success, and group implementations work on a branched context that is
	// merged back only when the branch matched.
	Match(s string, pos int, ctx *MatchContext) (int, bool)

	// Equals reports structural equality with another element.
	Equals(other Element) bool

	// String reconstructs the textual pattern notation for the element.
	String() string
}

// flattenSequence expands nested sequence structure into a single linear
// list of elements. Groups stay intact as single entries; only compounds are
// expanded. The result is the indexing space for MatchContext.PatternIndex.
func flattenSequence(el Element) []Element {
	if comp, ok := el.(*CompoundElement); ok {
		var out []Element
		for _, sub := range comp.elements {
			out = append(out, flattenSequence(sub)...)
		}
		return out
	}
	return []Element{el}
}

// Flatten expands an element into every linear candidate sequence it can
// take: one sequence per combination of choice selections, with optional
// groups contributing both their present and absent forms. Sequences contain
// only leaf elements and preserve left-to-right order. The expansion is
// deterministic for a given element.
func Flatten(el Element) [][]Element {
	switch e := el.(type) {
	case *CompoundElement:
		candidates := [][]Element{{}}
		for _, sub := range e.elements {
			subCandidates := Flatten(sub)
			next := make([][]Element, 0, len(candidates)*len(subCandidates))
			for _, head := range candidates {
				for _, tail := range subCandidates {
					seq := make([]Element, 0, len(head)+len(tail))
					seq = append(seq, head...)
					seq = append(seq, tail...)
					next = append(next, seq)
				}
			}
			candidates = next
		}
		return candidates
	case *OptionalGroup:
		return append(Flatten(e.element), []Element{})
	case *ChoiceGroup:
		var candidates [][]Element
		for _, choice := range e.choices {
			candidates = append(candidates, Flatten(choice)...)
		}
		return candidates
	default:
		return [][]Element{{el}}
	}
}

// possibleInputs returns every leaf element that could legally be the next
// thing encountered in the given tail of a flattened sequence. Blank text is
// skipped (trailing whitespace-only literals never anchor a boundary),
// choices collapse into the first leaves of each alternative, optional
// content contributes its leaves and the scan continues past it. When the
// tail runs out, the EndOfLine sentinel is appended.
func possibleInputs(elements []Element) []Element {
	var possibilities []Element
	for i, el := range elements {
		switch e := el.(type) {
		case *TextElement:
			if e.text == "" || (isBlank(e.text) && i == len(elements)-1) {
				continue
			}
			return append(possibilities, e)
		case *RegexElement:
			return append(possibilities, e)
		case *ChoiceGroup:
			for _, choice := range e.choices {
				possibilities = append(possibilities, possibleInputs(flattenSequence(choice))...)
			}
			return possibilities
		case *OptionalGroup:
			possibilities = append(possibilities, possibleInputs(flattenSequence(e.element))...)
		default:
			return append(possibilities, el)
		}
	}
	return append(possibilities, NewTextElement(EndOfLine))
}
