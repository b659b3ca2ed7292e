package pattern

import (
	"github.com/verbalang/verba/internal/diag"
	"github.com/verbalang/verba/internal/lang"
	"github.com/verbalang/verba/internal/types"
)

// ConditionalMode tells the boolean parser whether conditional connectives
// are permitted where the expression appears.
type ConditionalMode int

const (
	NotConditional ConditionalMode = iota
	MaybeConditional
)

// ExpressionParser resolves trimmed substrings into typed expressions. It is
// an external collaborator: implementations carry their own parser state and
// record diagnostics on the supplied logger under the logger's
// checkpoint/rollback discipline. A nil return is a structural no-match.
type ExpressionParser interface {
	ParseExpression(s string, t types.PatternType, logger *diag.Logger) lang.Expression
	ParseBooleanExpression(s string, mode ConditionalMode, logger *diag.Logger) lang.Expression
}

// RegexMatch is the capture of one matched regex token, in pattern order.
type RegexMatch struct {
	// Groups holds the full match followed by submatch captures.
	Groups []string
}

// MatchContext is the mutable state of a single matching attempt against one
// input line. A fresh context is created per attempt and must not be shared
// across goroutines. Group elements match on a branched child context whose
// Source points back at this one; the chain is walked when a nested view is
// exhausted and the enclosing pattern must supply the continuation.
type MatchContext struct {
	element      Element
	patternIndex int
	source       *MatchContext
	expressions  []lang.Expression
	regexMatches []RegexMatch
	parser       ExpressionParser
	logger       *diag.Logger
}

// NewMatchContext creates the root context for matching element against one
// line.
func NewMatchContext(element Element, parser ExpressionParser, logger *diag.Logger) *MatchContext {
	return &MatchContext{
		element: element,
		parser:  parser,
		logger:  logger,
	}
}

// branch creates a child context rooted at el, used to try a group
// alternative without committing anything to the parent.
func (c *MatchContext) branch(el Element) *MatchContext {
	return &MatchContext{
		element: el,
		source:  c,
		parser:  c.parser,
		logger:  c.logger,
	}
}

// merge adopts everything a successfully matched branch accumulated.
func (c *MatchContext) merge(child *MatchContext) {
	c.expressions = append(c.expressions, child.expressions...)
	c.regexMatches = append(c.regexMatches, child.regexMatches...)
}

// advance moves the flattened-pattern index one element forward.
func (c *MatchContext) advance() {
	c.patternIndex++
}

func (c *MatchContext) addExpression(e lang.Expression) {
	c.expressions = append(c.expressions, e)
}

func (c *MatchContext) addMatch(m RegexMatch) {
	c.regexMatches = append(c.regexMatches, m)
}

// Expressions returns the resolved expressions accumulated so far, in
// pattern order.
func (c *MatchContext) Expressions() []lang.Expression {
	return c.expressions
}

// RegexMatches returns the regex captures accumulated so far.
func (c *MatchContext) RegexMatches() []RegexMatch {
	return c.regexMatches
}

// Logger returns the diagnostics log of this attempt.
func (c *MatchContext) Logger() *diag.Logger {
	return c.logger
}
