package parsing

import (
	"strings"

	"github.com/verbalang/verba/internal/diag"
	"github.com/verbalang/verba/internal/lang"
	"github.com/verbalang/verba/internal/pattern"
	"github.com/verbalang/verba/internal/types"
)

// SyntaxParser is the default expression parser bound into match contexts.
// It resolves variable references, typed literals (including literal lists
// for plural pattern types) and boolean/conditional expressions. It
// implements pattern.ExpressionParser.
type SyntaxParser struct {
	types *types.Registry
	state *ParserState
}

func NewSyntaxParser(reg *types.Registry, state *ParserState) *SyntaxParser {
	return &SyntaxParser{types: reg, state: state}
}

// State returns the parser state this parser is bound to.
func (p *SyntaxParser) State() *ParserState { return p.state }

// ParseExpression resolves s as an expression of the given pattern type.
// Returns nil when s is not a valid expression of that type; this is a
// structural no-match and is never logged.
func (p *SyntaxParser) ParseExpression(s string, t types.PatternType, logger *diag.Logger) lang.Expression {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if name, ok := variableName(s); ok {
		return lang.NewVariable(name, t)
	}
	if t.Type == nil {
		return nil
	}
	// The object type accepts a literal of any registered type.
	parseLit := t.Type.Parse
	if t.Type == types.Object {
		parseLit = p.anyLiteral
	}
	if parseLit == nil {
		return nil
	}
	if t.Plural {
		if expr := p.parseListLiteral(s, t, parseLit); expr != nil {
			return expr
		}
	}
	if v, ok := parseLit(s); ok {
		logger.Debug("parsed literal " + s + " as " + t.Type.Name)
		return lang.NewLiteral(t, v)
	}
	return nil
}

// anyLiteral resolves s against the literal parser of every registered type
// in registration order.
func (p *SyntaxParser) anyLiteral(s string) (any, bool) {
	for _, t := range p.types.Types() {
		if t == types.Object || t.Parse == nil {
			continue
		}
		if v, ok := t.Parse(s); ok {
			return v, true
		}
	}
	return nil, false
}

// parseListLiteral resolves comma- and "and"-separated literal lists such as
// `1, 2 and 3` for plural pattern types. Every part must parse as the base
// type.
func (p *SyntaxParser) parseListLiteral(s string, t types.PatternType, parseLit types.LiteralParser) lang.Expression {
	parts := splitList(s)
	if len(parts) < 2 {
		return nil
	}
	values := make([]any, 0, len(parts))
	for _, part := range parts {
		v, ok := parseLit(strings.TrimSpace(part))
		if !ok {
			return nil
		}
		values = append(values, v)
	}
	return lang.NewListLiteral(t, values)
}

// ParseBooleanExpression resolves s as a boolean expression. With
// MaybeConditional, bare comparisons like "{x} is 5" or "{x} is not 5" are
// accepted as conditional expressions; with NotConditional only plain
// boolean values qualify.
func (p *SyntaxParser) ParseBooleanExpression(s string, mode pattern.ConditionalMode, logger *diag.Logger) lang.Expression {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	booleanType := types.NewPatternType(types.Boolean, false)
	if name, ok := variableName(s); ok {
		return lang.NewVariable(name, booleanType)
	}
	if v, ok := types.Boolean.Parse(s); ok {
		logger.Debug("parsed boolean literal " + s)
		return lang.NewLiteral(booleanType, v)
	}
	if mode == pattern.MaybeConditional {
		if cond := p.parseComparison(s, logger); cond != nil {
			return cond
		}
	}
	return nil
}

// parseComparison recognizes "<left> is [not] <right>" where both operands
// resolve as some expression.
func (p *SyntaxParser) parseComparison(s string, logger *diag.Logger) lang.Expression {
	for _, connective := range []string{" is not ", " is ", " isn't "} {
		idx := indexFold(s, connective)
		if idx == -1 {
			continue
		}
		left := strings.TrimSpace(s[:idx])
		right := strings.TrimSpace(s[idx+len(connective):])
		if p.parseAnyExpression(left, logger) == nil || p.parseAnyExpression(right, logger) == nil {
			continue
		}
		return lang.NewConditionalExpression(s)
	}
	return nil
}

// parseAnyExpression resolves s against every registered type in
// registration order, used for comparison operands whose type is unknown.
func (p *SyntaxParser) parseAnyExpression(s string, _ *diag.Logger) lang.Expression {
	objectType := types.NewPatternType(types.Object, false)
	if name, ok := variableName(s); ok {
		return lang.NewVariable(name, objectType)
	}
	if v, ok := p.anyLiteral(s); ok {
		return lang.NewLiteral(objectType, v)
	}
	return nil
}

// variableName recognizes a variable reference {name}.
func variableName(s string) (string, bool) {
	if len(s) < 3 || s[0] != '{' || s[len(s)-1] != '}' {
		return "", false
	}
	name := strings.TrimSpace(s[1 : len(s)-1])
	if name == "" || strings.ContainsAny(name, "{}") {
		return "", false
	}
	return name, true
}

// splitList splits a list literal on top-level commas and the final "and",
// leaving quoted strings intact.
func splitList(s string) []string {
	var parts []string
	var sb strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			sb.WriteByte(c)
		case !inQuotes && c == ',':
			parts = append(parts, sb.String())
			sb.Reset()
		case !inQuotes && c == ' ' && hasFoldPrefix(s[i:], " and "):
			parts = append(parts, sb.String())
			sb.Reset()
			i += len(" and ") - 1
		default:
			sb.WriteByte(c)
		}
	}
	if strings.TrimSpace(sb.String()) != "" {
		parts = append(parts, sb.String())
	}
	return parts
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func indexFold(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}
