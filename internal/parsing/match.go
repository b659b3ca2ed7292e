// Package parsing ties compiled patterns, the expression parser and the
// syntax registry together: it is the dispatch layer that turns one script
// line into a bound syntax node.
package parsing

import (
	"github.com/verbalang/verba/internal/diag"
	"github.com/verbalang/verba/internal/lang"
	"github.com/verbalang/verba/internal/pattern"
	"github.com/verbalang/verba/internal/registry"
)

// ParseResult is a fully bound match: the syntax element that matched, the
// resolved expressions in pattern order and any regex captures.
type ParseResult struct {
	SyntaxName   string
	PatternIndex int
	Source       string
	Expressions  []lang.Expression    `json:"-"`
	Matches      []pattern.RegexMatch `json:"-"`
	Pattern      pattern.Element      `json:"-"`
}

// MatchPattern matches one compiled pattern against one line. The whole line
// must be consumed. Failure is silent: it is the expected control flow of
// the candidate search.
func MatchPattern(el pattern.Element, line string, parser pattern.ExpressionParser, logger *diag.Logger) (*ParseResult, bool) {
	ctx := pattern.NewMatchContext(el, parser, logger)
	end, ok := el.Match(line, 0, ctx)
	if !ok || end != len(line) {
		return nil, false
	}
	return &ParseResult{
		Source:      line,
		Expressions: ctx.Expressions(),
		Matches:     ctx.RegexMatches(),
		Pattern:     el,
	}, true
}

// ParseLine offers the line to every registered syntax entry in priority
// order and returns the first bound match. Each trial runs under a logger
// checkpoint; only the winning trial's diagnostics are committed.
func ParseLine(reg *registry.Registry, line string, parser pattern.ExpressionParser, logger *diag.Logger) (*ParseResult, bool) {
	for _, entry := range reg.Entries() {
		for i, pat := range entry.Patterns {
			logger.Recurse()
			res, ok := MatchPattern(pat, line, parser, logger)
			if !ok {
				logger.Rollback()
				continue
			}
			logger.Commit()
			res.SyntaxName = entry.Name
			res.PatternIndex = i
			return res, true
		}
	}
	return nil, false
}
