package pattern

import (
	"strings"

	"github.com/verbalang/verba/internal/diag"
	"github.com/verbalang/verba/internal/lang"
	"github.com/verbalang/verba/internal/types"
)

// Acceptance constrains what kind of resolved value a placeholder may bind.
type Acceptance int

const (
	AcceptAll Acceptance = iota
	AcceptExpressionsOnly
	AcceptLiteralsOnly
	AcceptVariablesOnly
)

// Sigil returns the notation marker of the policy; AcceptAll has none.
func (a Acceptance) Sigil() string {
	switch a {
	case AcceptExpressionsOnly:
		return "~"
	case AcceptLiteralsOnly:
		return "*"
	case AcceptVariablesOnly:
		return "^"
	default:
		return ""
	}
}

// ExpressionElement is a typed expression placeholder, written %type% in
// pattern notation. Because the scripting language has no delimiters around
// sub-expressions, the element finds its own boundary: it enumerates every
// position where a subsequent pattern element could plausibly begin and
// accepts the first preceding substring that parses as one of its candidate
// types.
type ExpressionElement struct {
	types              []types.PatternType
	acceptance         Acceptance
	nullable           bool
	acceptsConditional bool
}

func NewExpressionElement(ts []types.PatternType, acceptance Acceptance, nullable, acceptsConditional bool) *ExpressionElement {
	return &ExpressionElement{
		types:              ts,
		acceptance:         acceptance,
		nullable:           nullable,
		acceptsConditional: acceptsConditional,
	}
}

// Types returns the candidate pattern types in declared order.
func (e *ExpressionElement) Types() []types.PatternType { return e.types }

// Acceptance returns the placeholder's acceptance policy.
func (e *ExpressionElement) Acceptance() Acceptance { return e.acceptance }

// Nullable reports whether the placeholder may fall back to a default value
// when absent. Nullability is a presentation concern and takes no part in
// equality.
func (e *ExpressionElement) Nullable() bool { return e.nullable }

// AcceptsConditional reports whether a conditional expression may bind here.
func (e *ExpressionElement) AcceptsConditional() bool { return e.acceptsConditional }

func (e *ExpressionElement) Match(s string, pos int, ctx *MatchContext) (int, bool) {
	if pos >= len(s) {
		return 0, false
	}

	// The lookahead runs over the flattened view of the nearest enclosing
	// scope that still has unconsumed elements. When the current view is
	// exhausted the parent supplies the continuation: this models falling
	// out of a nested optional or choice back into the enclosing pattern.
	flattened := flattenSequence(ctx.element)
	idx := ctx.patternIndex
	if ctx.source != nil && idx >= len(flattened) {
		flattened = flattenSequence(ctx.source.element)
		idx = ctx.source.patternIndex
	}
	if idx > len(flattened) {
		idx = len(flattened)
	}

	for _, input := range possibleInputs(flattened[idx:]) {
		switch next := input.(type) {
		case *TextElement:
			if end, ok := e.matchBeforeText(s, pos, next.text, ctx); ok {
				return end, true
			}
			if next.text == EndOfLine {
				// End of line admits exactly one boundary; nothing after it
				// could change the outcome.
				return 0, false
			}
		case *RegexElement:
			if end, ok := e.matchBeforeRegex(s, pos, next, ctx); ok {
				return end, true
			}
		default:
			end, ok, decided := e.matchBeforeExpression(s, pos, flattened, idx, ctx)
			if ok {
				return end, true
			}
			if decided {
				return 0, false
			}
		}
	}
	return 0, false
}

// matchBeforeText tries every case-insensitive occurrence of the anchor text
// as a boundary, left to right. The empty literal is degenerate and skipped;
// the EndOfLine sentinel consumes the whole remainder.
func (e *ExpressionElement) matchBeforeText(s string, pos int, text string, ctx *MatchContext) (int, bool) {
	if text == "" {
		return 0, false
	}
	if text == EndOfLine {
		toParse := strings.TrimSpace(s[pos:])
		if expr := e.parse(toParse, ctx); expr != nil {
			ctx.addExpression(expr)
			return pos + len(s[pos:]), true
		}
		return 0, false
	}
	for i := indexOfFold(s, text, pos); i != -1; i = indexOfFold(s, text, i+1) {
		toParse := strings.TrimSpace(s[pos:i])
		if expr := e.parse(toParse, ctx); expr != nil {
			ctx.addExpression(expr)
			return pos + len(toParse), true
		}
	}
	return 0, false
}

// matchBeforeRegex tries every position at which the anchored regex matches,
// scanning left to right from the current offset.
func (e *ExpressionElement) matchBeforeRegex(s string, pos int, re *RegexElement, ctx *MatchContext) (int, bool) {
	for i := pos + 1; i <= len(s); i++ {
		if re.matchAt(s, i) == nil {
			continue
		}
		toParse := s[pos:i]
		if expr := e.parse(toParse, ctx); expr != nil {
			ctx.addExpression(expr)
			return pos + len(toParse), true
		}
	}
	return 0, false
}

// matchBeforeExpression handles a placeholder directly following this one.
// The split point between two adjacent free-form expressions is only
// resolvable when everything after the next placeholder, up to the following
// fixed anchor, is plain literal text; any other shape is skipped as
// unresolvable rather than failed, a known limitation inherited from the
// design. The remaining input is tokenized at spaces (balanced parentheses
// kept whole) and each token start becomes a boundary candidate. The decided
// return distinguishes "exhausted a definitive search" from "skipped".
func (e *ExpressionElement) matchBeforeExpression(s string, pos int, flattened []Element, idx int, ctx *MatchContext) (end int, ok, decided bool) {
	tail := idx + 1
	if tail > len(flattened) {
		tail = len(flattened)
	}
	nextInputs := possibleInputs(flattened[tail:])
	for _, ni := range nextInputs {
		if _, isText := ni.(*TextElement); !isText {
			return 0, false, false
		}
	}
	for _, ni := range nextInputs {
		text := ni.(*TextElement).text
		if text == "" || text == EndOfLine {
			// No anchor at all: every token of the remainder is a candidate
			// split point.
			rest := s[pos:]
			for _, token := range splitAtSpaces(rest) {
				i := indexOfFold(s, token, pos)
				if i == -1 {
					continue
				}
				toParse := s[pos:i]
				if expr := e.parse(toParse, ctx); expr != nil {
					ctx.addExpression(expr)
					return pos + len(toParse), true, true
				}
			}
			return 0, false, true
		}
		bound := indexOfFold(s, text, pos)
		if bound == -1 {
			continue
		}
		rest := s[pos:bound]
		for _, token := range splitAtSpaces(rest) {
			i := indexOfFold(s, token, pos)
			if i == -1 {
				continue
			}
			toParse := s[pos:i]
			if expr := e.parse(toParse, ctx); expr != nil {
				ctx.addExpression(expr)
				return pos + len(toParse), true, true
			}
		}
	}
	return 0, false, false
}

// parse attempts type-constrained parsing of a boundary candidate's
// substring, trying candidate types in declared order. Each trial runs under
// a logger checkpoint so only the winning trial's diagnostics are committed.
// After a successful parse the acceptance policy is enforced; a violation is
// a semantic error that abandons this boundary candidate.
func (e *ExpressionElement) parse(s string, ctx *MatchContext) lang.Expression {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, t := range e.types {
		ctx.logger.Recurse()
		var expr lang.Expression
		if t.Type == types.Boolean {
			mode := NotConditional
			if e.acceptsConditional {
				mode = MaybeConditional
			}
			expr = ctx.parser.ParseBooleanExpression(s, mode, ctx.logger)
		} else {
			expr = ctx.parser.ParseExpression(s, t, ctx.logger)
		}
		if expr == nil {
			ctx.logger.Rollback()
			continue
		}
		ctx.logger.Commit()
		switch e.acceptance {
		case AcceptAll:
		case AcceptExpressionsOnly:
			if lang.IsLiteral(expr) {
				ctx.logger.Error("only expressions are allowed, found literal "+s, diag.SemanticError)
				return nil
			}
		case AcceptLiteralsOnly:
			if !lang.IsLiteral(expr) {
				ctx.logger.Error("only literals are allowed, found expression "+s, diag.SemanticError)
				return nil
			}
		case AcceptVariablesOnly:
			if !lang.IsVariable(expr) {
				ctx.logger.Error("only variables are allowed, found "+s, diag.SemanticError)
				return nil
			}
		}
		return expr
	}
	return nil
}

// Equals compares candidate types, acceptance policy and the conditional
// flag. Nullability is deliberately excluded: it affects defaulting, not
// identity.
func (e *ExpressionElement) Equals(other Element) bool {
	o, ok := other.(*ExpressionElement)
	if !ok || e.acceptance != o.acceptance || e.acceptsConditional != o.acceptsConditional {
		return false
	}
	if len(e.types) != len(o.types) {
		return false
	}
	for i, t := range e.types {
		if !t.Equals(o.types[i]) {
			return false
		}
	}
	return true
}

func (e *ExpressionElement) String() string {
	var sb strings.Builder
	sb.WriteByte('%')
	if e.nullable {
		sb.WriteByte('-')
	}
	sb.WriteString(e.acceptance.Sigil())
	if e.acceptsConditional {
		sb.WriteByte('=')
	}
	names := make([]string, len(e.types))
	for i, t := range e.types {
		names[i] = t.String()
	}
	sb.WriteString(strings.Join(names, "/"))
	sb.WriteByte('%')
	return sb.String()
}
