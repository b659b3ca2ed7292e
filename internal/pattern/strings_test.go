package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAtSpaces(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []string
	}{
		{"a b c", []string{"a", "b", "c"}},
		{"  a   b ", []string{"a", "b"}},
		{"(a b) c", []string{"(a b)", "c"}},
		{"x ((a b) c) y", []string{"x", "((a b) c)", "y"}},
		{"(unbalanced a", []string{"(unbalanced", "a"}},
		{"", nil},
		{"   ", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitAtSpaces(tt.input), "input %q", tt.input)
	}
}

func TestIndexOfFold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, indexOfFold("Send to console", "send", 0))
	assert.Equal(t, 8, indexOfFold("send to Console", "console", 0))
	assert.Equal(t, -1, indexOfFold("send to console", "print", 0))
	assert.Equal(t, 10, indexOfFold("text a text b", "text", 1))
	assert.Equal(t, 0, indexOfFold("abc", "abc", -3))
	assert.Equal(t, -1, indexOfFold("ab", "abc", 0))
}

func TestEnclosedText(t *testing.T) {
	t.Parallel()

	inner, ok := enclosedText("[a [b] c] d", '[', ']', 0)
	assert.True(t, ok)
	assert.Equal(t, "a [b] c", inner)

	inner, ok = enclosedText("(x)", '(', ')', 0)
	assert.True(t, ok)
	assert.Equal(t, "x", inner)

	_, ok = enclosedText("[never closed", '[', ']', 0)
	assert.False(t, ok)
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	assert.True(t, isBlank(""))
	assert.True(t, isBlank(" \t "))
	assert.False(t, isBlank(" x "))
}
