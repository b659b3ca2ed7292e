package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verbalang/verba/internal/types"
)

func numberPlaceholder() *ExpressionElement {
	return NewExpressionElement(
		[]types.PatternType{types.NewPatternType(types.Number, false)},
		AcceptAll, false, false,
	)
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	a := NewTextElement("a")
	b := NewTextElement("b")
	c := NewTextElement("c")

	tests := []struct {
		name    string
		element Element
		want    [][]Element
	}{
		{
			name:    "leaf",
			element: a,
			want:    [][]Element{{a}},
		},
		{
			name:    "plain sequence",
			element: NewCompoundElement(a, b),
			want:    [][]Element{{a, b}},
		},
		{
			name:    "sequence with optional yields with and without",
			element: NewCompoundElement(a, NewOptionalGroup(NewCompoundElement(b)), c),
			want:    [][]Element{{a, b, c}, {a, c}},
		},
		{
			name:    "choice yields one sequence per alternative",
			element: NewCompoundElement(NewChoiceGroup(NewCompoundElement(a), NewCompoundElement(b)), c),
			want:    [][]Element{{a, c}, {b, c}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Flatten(tt.element)
			require.Len(t, got, len(tt.want))
			for i, seq := range tt.want {
				require.Len(t, got[i], len(seq), "candidate %d", i)
				for j, el := range seq {
					assert.True(t, el.Equals(got[i][j]), "candidate %d element %d", i, j)
				}
			}
		})
	}
}

func TestFlattenDeterministic(t *testing.T) {
	t.Parallel()

	el := NewCompoundElement(
		NewTextElement("x"),
		NewChoiceGroup(NewCompoundElement(NewTextElement("a")), NewCompoundElement(NewTextElement("b"))),
		NewOptionalGroup(NewCompoundElement(NewTextElement("opt"))),
	)

	first := Flatten(el)
	second := Flatten(el)
	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, len(first[i]), len(second[i]))
		for j := range first[i] {
			assert.True(t, first[i][j].Equals(second[i][j]))
		}
	}
}

func TestPossibleInputs(t *testing.T) {
	t.Parallel()

	t.Run("first literal wins", func(t *testing.T) {
		t.Parallel()
		inputs := possibleInputs([]Element{NewTextElement(" to "), NewTextElement("x")})
		require.Len(t, inputs, 1)
		assert.True(t, inputs[0].Equals(NewTextElement(" to ")))
	})

	t.Run("empty tail yields end-of-line sentinel", func(t *testing.T) {
		t.Parallel()
		inputs := possibleInputs(nil)
		require.Len(t, inputs, 1)
		text, ok := inputs[0].(*TextElement)
		require.True(t, ok)
		assert.Equal(t, EndOfLine, text.Text())
	})

	t.Run("optional contributes its leaves and the scan continues", func(t *testing.T) {
		t.Parallel()
		inputs := possibleInputs([]Element{
			NewOptionalGroup(NewCompoundElement(NewTextElement(" for "))),
			NewTextElement(" stop"),
		})
		require.Len(t, inputs, 2)
		assert.True(t, inputs[0].Equals(NewTextElement(" for ")))
		assert.True(t, inputs[1].Equals(NewTextElement(" stop")))
	})

	t.Run("choice collapses into first leaves per alternative", func(t *testing.T) {
		t.Parallel()
		inputs := possibleInputs([]Element{
			NewChoiceGroup(
				NewCompoundElement(NewTextElement(" seconds")),
				NewCompoundElement(NewTextElement(" minutes")),
			),
			NewTextElement(" later"),
		})
		require.Len(t, inputs, 2)
		assert.True(t, inputs[0].Equals(NewTextElement(" seconds")))
		assert.True(t, inputs[1].Equals(NewTextElement(" minutes")))
	})

	t.Run("trailing blank literal is skipped", func(t *testing.T) {
		t.Parallel()
		inputs := possibleInputs([]Element{NewTextElement(" ")})
		require.Len(t, inputs, 1)
		text, ok := inputs[0].(*TextElement)
		require.True(t, ok)
		assert.Equal(t, EndOfLine, text.Text())
	})

	t.Run("placeholder stops the scan", func(t *testing.T) {
		t.Parallel()
		expr := numberPlaceholder()
		inputs := possibleInputs([]Element{expr, NewTextElement(" tail")})
		require.Len(t, inputs, 1)
		assert.True(t, inputs[0].Equals(expr))
	})
}
