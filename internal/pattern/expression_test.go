package pattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verbalang/verba/internal/diag"
	"github.com/verbalang/verba/internal/lang"
	"github.com/verbalang/verba/internal/types"
)

// stubParser resolves variables written {name} and literals through the
// pattern type's own parser, which is all the matcher tests need.
type stubParser struct{}

func (stubParser) ParseExpression(s string, t types.PatternType, _ *diag.Logger) lang.Expression {
	s = strings.TrimSpace(s)
	if len(s) > 2 && s[0] == '{' && s[len(s)-1] == '}' {
		return lang.NewVariable(s[1:len(s)-1], t)
	}
	if t.Type == nil || t.Type.Parse == nil {
		return nil
	}
	if v, ok := t.Type.Parse(s); ok {
		return lang.NewLiteral(t, v)
	}
	return nil
}

func (stubParser) ParseBooleanExpression(s string, _ ConditionalMode, _ *diag.Logger) lang.Expression {
	s = strings.TrimSpace(s)
	if v, ok := types.Boolean.Parse(s); ok {
		return lang.NewLiteral(types.NewPatternType(types.Boolean, false), v)
	}
	return nil
}

func matchWhole(t *testing.T, el Element, line string) (*MatchContext, bool) {
	t.Helper()
	ctx := NewMatchContext(el, stubParser{}, diag.NewLogger())
	end, ok := el.Match(line, 0, ctx)
	return ctx, ok && end == len(line)
}

func placeholder(acceptance Acceptance, ts ...types.PatternType) *ExpressionElement {
	if len(ts) == 0 {
		ts = []types.PatternType{types.NewPatternType(types.Number, false)}
	}
	return NewExpressionElement(ts, acceptance, false, false)
}

func TestExpressionBoundaryBeforeText(t *testing.T) {
	t.Parallel()

	pat := NewCompoundElement(placeholder(AcceptAll), NewTextElement(" text"))

	ctx, ok := matchWhole(t, pat, "5 text")
	require.True(t, ok)
	require.Len(t, ctx.Expressions(), 1)
	lit, isLit := ctx.Expressions()[0].(*lang.Literal)
	require.True(t, isLit)
	assert.Equal(t, 5.0, lit.Value())
}

func TestExpressionBoundaryBacktracksOverAnchorOccurrences(t *testing.T) {
	t.Parallel()

	// The anchor " text" occurs inside the string literal first; the engine
	// must reject that boundary and move to the next occurrence.
	strType := types.NewPatternType(types.Str, false)
	pat := NewCompoundElement(placeholder(AcceptAll, strType), NewTextElement(" text"))

	ctx, ok := matchWhole(t, pat, `"a text b" text`)
	require.True(t, ok)
	require.Len(t, ctx.Expressions(), 1)
	lit, isLit := ctx.Expressions()[0].(*lang.Literal)
	require.True(t, isLit)
	assert.Equal(t, "a text b", lit.Value())
}

func TestExpressionEndOfLineBoundary(t *testing.T) {
	t.Parallel()

	pat := NewCompoundElement(placeholder(AcceptAll))

	t.Run("empty input fails", func(t *testing.T) {
		t.Parallel()
		_, ok := matchWhole(t, pat, "")
		assert.False(t, ok)
	})

	t.Run("whole input is consumed", func(t *testing.T) {
		t.Parallel()
		ctx, ok := matchWhole(t, pat, "5")
		require.True(t, ok)
		require.Len(t, ctx.Expressions(), 1)
	})
}

func TestAcceptancePolicy(t *testing.T) {
	t.Parallel()

	t.Run("literals only rejects a variable with a semantic error", func(t *testing.T) {
		t.Parallel()
		pat := NewCompoundElement(placeholder(AcceptLiteralsOnly))
		logger := diag.NewLogger()
		ctx := NewMatchContext(pat, stubParser{}, logger)
		_, ok := pat.Match("{x}", 0, ctx)
		assert.False(t, ok)

		require.NotEmpty(t, logger.Entries())
		entry := logger.Entries()[0]
		assert.Equal(t, diag.SeverityError, entry.Severity)
		assert.Equal(t, diag.SemanticError, entry.Kind)
	})

	t.Run("accept all takes the same input", func(t *testing.T) {
		t.Parallel()
		pat := NewCompoundElement(placeholder(AcceptAll))
		_, ok := matchWhole(t, pat, "{x}")
		assert.True(t, ok)
	})

	t.Run("variables only rejects a literal", func(t *testing.T) {
		t.Parallel()
		pat := NewCompoundElement(placeholder(AcceptVariablesOnly))
		logger := diag.NewLogger()
		ctx := NewMatchContext(pat, stubParser{}, logger)
		_, ok := pat.Match("5", 0, ctx)
		assert.False(t, ok)
		require.NotEmpty(t, logger.Entries())
		assert.Equal(t, diag.SemanticError, logger.Entries()[0].Kind)
	})

	t.Run("expressions only rejects a literal", func(t *testing.T) {
		t.Parallel()
		pat := NewCompoundElement(placeholder(AcceptExpressionsOnly))
		logger := diag.NewLogger()
		ctx := NewMatchContext(pat, stubParser{}, logger)
		_, ok := pat.Match("5", 0, ctx)
		assert.False(t, ok)
	})
}

func TestExpressionBoundaryBeforeRegex(t *testing.T) {
	t.Parallel()

	re, err := NewRegexElement(`\d+`)
	require.NoError(t, err)
	pat := NewCompoundElement(placeholder(AcceptAll, types.NewPatternType(types.Object, false)), re)

	ctx, ok := matchWhole(t, pat, "{x} 42")
	require.True(t, ok)
	require.Len(t, ctx.Expressions(), 1)
	assert.True(t, lang.IsVariable(ctx.Expressions()[0]))
	require.Len(t, ctx.RegexMatches(), 1)
	assert.Equal(t, "42", ctx.RegexMatches()[0].Groups[0])
}

func TestAdjacentPlaceholders(t *testing.T) {
	t.Parallel()

	objType := types.NewPatternType(types.Object, false)

	t.Run("resolved when followed by end of pattern", func(t *testing.T) {
		t.Parallel()
		pat := NewCompoundElement(placeholder(AcceptAll), placeholder(AcceptAll, objType))
		ctx, ok := matchWhole(t, pat, "5 {x}")
		require.True(t, ok)
		require.Len(t, ctx.Expressions(), 2)
		assert.True(t, lang.IsLiteral(ctx.Expressions()[0]))
		assert.True(t, lang.IsVariable(ctx.Expressions()[1]))
	})

	t.Run("resolved when followed by literal anchor", func(t *testing.T) {
		t.Parallel()
		pat := NewCompoundElement(
			placeholder(AcceptAll),
			placeholder(AcceptAll, objType),
			NewTextElement(" stop"),
		)
		ctx, ok := matchWhole(t, pat, "5 {x} stop")
		require.True(t, ok)
		require.Len(t, ctx.Expressions(), 2)
	})

	t.Run("parenthesized groups stay whole", func(t *testing.T) {
		t.Parallel()
		strType := types.NewPatternType(types.Str, false)
		pat := NewCompoundElement(placeholder(AcceptAll, strType), placeholder(AcceptAll, objType))
		ctx, ok := matchWhole(t, pat, `"(a b) c" {x}`)
		require.True(t, ok)
		require.Len(t, ctx.Expressions(), 2)
	})

	t.Run("skipped when the following anchor is not plain text", func(t *testing.T) {
		t.Parallel()
		re, err := NewRegexElement(`\d+`)
		require.NoError(t, err)
		pat := NewCompoundElement(
			placeholder(AcceptAll),
			placeholder(AcceptAll, objType),
			re,
		)
		// Unresolvable shapes are skipped, not failed: the overall match
		// simply finds no boundary.
		_, ok := matchWhole(t, pat, "5 {x} 42")
		assert.False(t, ok)
	})
}

func TestPlaceholderInsideOptionalFallsOutToParent(t *testing.T) {
	t.Parallel()

	pat := NewCompoundElement(
		NewTextElement("a "),
		NewOptionalGroup(NewCompoundElement(placeholder(AcceptAll))),
		NewTextElement(" b"),
	)

	ctx, ok := matchWhole(t, pat, "a 5 b")
	require.True(t, ok)
	require.Len(t, ctx.Expressions(), 1)

	// And the optional may still be skipped entirely.
	_, ok = matchWhole(t, pat, "a  b")
	assert.True(t, ok)
}

func TestPlaceholderEquality(t *testing.T) {
	t.Parallel()

	num := types.NewPatternType(types.Number, false)
	str := types.NewPatternType(types.Str, false)

	base := NewExpressionElement([]types.PatternType{num, str}, AcceptAll, false, true)

	t.Run("nullability is excluded from equality", func(t *testing.T) {
		t.Parallel()
		nullable := NewExpressionElement([]types.PatternType{num, str}, AcceptAll, true, true)
		assert.True(t, base.Equals(nullable))
	})

	t.Run("acceptance differs", func(t *testing.T) {
		t.Parallel()
		other := NewExpressionElement([]types.PatternType{num, str}, AcceptLiteralsOnly, false, true)
		assert.False(t, base.Equals(other))
	})

	t.Run("conditional flag differs", func(t *testing.T) {
		t.Parallel()
		other := NewExpressionElement([]types.PatternType{num, str}, AcceptAll, false, false)
		assert.False(t, base.Equals(other))
	})

	t.Run("type order matters", func(t *testing.T) {
		t.Parallel()
		other := NewExpressionElement([]types.PatternType{str, num}, AcceptAll, false, true)
		assert.False(t, base.Equals(other))
	})
}

func TestChoiceAndOptionalMatching(t *testing.T) {
	t.Parallel()

	pat := NewCompoundElement(
		NewChoiceGroup(
			NewCompoundElement(NewTextElement("send")),
			NewCompoundElement(NewTextElement("print")),
		),
		NewTextElement(" "),
		placeholder(AcceptAll),
	)

	for _, line := range []string{"send 5", "print 5", "PRINT 5"} {
		_, ok := matchWhole(t, pat, line)
		assert.True(t, ok, "line %q", line)
	}

	_, ok := matchWhole(t, pat, "shout 5")
	assert.False(t, ok)
}

func TestMatchDoesNotPolluteContextOnFailure(t *testing.T) {
	t.Parallel()

	pat := NewCompoundElement(
		NewChoiceGroup(
			// First alternative binds an expression but then fails on its
			// second literal; nothing of it may leak into the context.
			NewCompoundElement(placeholder(AcceptAll), NewTextElement(" se"), NewTextElement("quence")),
			NewCompoundElement(placeholder(AcceptAll), NewTextElement(" seconds")),
		),
	)

	ctx, ok := matchWhole(t, pat, "5 seconds")
	require.True(t, ok)
	assert.Len(t, ctx.Expressions(), 1)
}
