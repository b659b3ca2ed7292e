// Package lang holds the resolved-expression model the matcher binds into a
// syntax node. Expressions here are resolution-time artifacts: they carry the
// produced type and a classification, never runtime behavior.
package lang

import (
	"fmt"

	"github.com/verbalang/verba/internal/types"
)

// Expression is any resolved sub-expression bound to a placeholder.
type Expression interface {
	// ReturnType is the pattern type this expression produces.
	ReturnType() types.PatternType
	String() string
}

// Literal is an expression whose value is known at resolution time.
type Literal struct {
	typ   types.PatternType
	value any
}

func NewLiteral(t types.PatternType, value any) *Literal {
	return &Literal{typ: t, value: value}
}

func (l *Literal) ReturnType() types.PatternType { return l.typ }
func (l *Literal) Value() any                    { return l.value }

func (l *Literal) String() string {
	return fmt.Sprintf("%v", l.value)
}

// ListLiteral is a literal list of values, produced for plural pattern types.
type ListLiteral struct {
	typ    types.PatternType
	values []any
}

func NewListLiteral(t types.PatternType, values []any) *ListLiteral {
	return &ListLiteral{typ: t, values: values}
}

func (l *ListLiteral) ReturnType() types.PatternType { return l.typ }
func (l *ListLiteral) Values() []any                 { return l.values }

func (l *ListLiteral) String() string {
	return fmt.Sprintf("%v", l.values)
}

// Variable is a reference to a named mutable binding, written {name} in
// scripts. Its value is unknowable at resolution time, so it satisfies any
// requested type.
type Variable struct {
	name string
	typ  types.PatternType
}

func NewVariable(name string, t types.PatternType) *Variable {
	return &Variable{name: name, typ: t}
}

func (v *Variable) ReturnType() types.PatternType { return v.typ }
func (v *Variable) Name() string                  { return v.name }

func (v *Variable) String() string {
	return "{" + v.name + "}"
}

// ConditionalExpression is a boolean-typed expression usable where a
// condition is syntactically expected, e.g. the comparison in
// "{x} is greater than 5".
type ConditionalExpression struct {
	description string
}

func NewConditionalExpression(description string) *ConditionalExpression {
	return &ConditionalExpression{description: description}
}

func (c *ConditionalExpression) ReturnType() types.PatternType {
	return types.NewPatternType(types.Boolean, false)
}

func (c *ConditionalExpression) String() string { return c.description }

// IsLiteral reports whether the expression is constant-foldable at
// resolution time.
func IsLiteral(e Expression) bool {
	switch e.(type) {
	case *Literal, *ListLiteral:
		return true
	}
	return false
}

// IsVariable reports whether the expression is a variable reference.
func IsVariable(e Expression) bool {
	_, ok := e.(*Variable)
	return ok
}

// IsConditional reports whether the expression is a conditional expression.
func IsConditional(e Expression) bool {
	_, ok := e.(*ConditionalExpression)
	return ok
}
