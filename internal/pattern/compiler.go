package pattern

import (
	"fmt"
	"strings"

	"github.com/verbalang/verba/internal/types"
)

// Compiler turns textual pattern notation into compiled elements. Notation:
//
//	literal text        matched case-insensitively
//	[optional part]     may be skipped
//	(one|the other)     alternatives tried in declared order
//	<regex>             prefix-anchored regular expression token
//	%types%             typed expression placeholder, slash-separated type
//	                    names with optional leading sigils: '-' nullable,
//	                    '~' expressions only, '*' literals only,
//	                    '^' variables only, '=' accepts conditionals
//	\x                  escapes any special character
//
// A compiled pattern is immutable and safe for concurrent matching attempts.
type Compiler struct {
	types *types.Registry
}

func NewCompiler(reg *types.Registry) *Compiler {
	return &Compiler{types: reg}
}

// Compile parses the notation into an element tree. The root is always a
// CompoundElement so the matcher's index bookkeeping sees a sequence.
func (c *Compiler) Compile(notation string) (Element, error) {
	elements, err := c.compileSequence(notation)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", notation, err)
	}
	return NewCompoundElement(elements...), nil
}

func (c *Compiler) compileSequence(s string) ([]Element, error) {
	var elements []Element
	var text strings.Builder

	flushText := func() {
		if text.Len() > 0 {
			elements = append(elements, NewTextElement(text.String()))
			text.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '\\':
			if i+1 >= len(s) {
				return nil, fmt.Errorf("dangling escape at offset %d", i)
			}
			text.WriteByte(s[i+1])
			i++
		case '[':
			inner, ok := enclosedText(s, '[', ']', i)
			if !ok {
				return nil, fmt.Errorf("unclosed '[' at offset %d", i)
			}
			flushText()
			group, err := c.compileGroup(inner)
			if err != nil {
				return nil, err
			}
			elements = append(elements, NewOptionalGroup(group))
			i += len(inner) + 1
		case '(':
			inner, ok := enclosedText(s, '(', ')', i)
			if !ok {
				return nil, fmt.Errorf("unclosed '(' at offset %d", i)
			}
			flushText()
			choices, err := c.compileChoices(inner)
			if err != nil {
				return nil, err
			}
			elements = append(elements, NewChoiceGroup(choices...))
			i += len(inner) + 1
		case '<':
			end := findUnescaped(s, '>', i+1)
			if end == -1 {
				return nil, fmt.Errorf("unclosed '<' at offset %d", i)
			}
			flushText()
			re, err := NewRegexElement(s[i+1 : end])
			if err != nil {
				return nil, err
			}
			elements = append(elements, re)
			i = end
		case '%':
			end := findUnescaped(s, '%', i+1)
			if end == -1 {
				return nil, fmt.Errorf("unclosed '%%' at offset %d", i)
			}
			flushText()
			expr, err := c.compilePlaceholder(s[i+1 : end])
			if err != nil {
				return nil, err
			}
			elements = append(elements, expr)
			i = end
		case ']', ')', '>':
			return nil, fmt.Errorf("unexpected %q at offset %d", ch, i)
		default:
			text.WriteByte(ch)
		}
	}
	flushText()
	return elements, nil
}

// compileGroup compiles a group's content and wraps it in a compound, so a
// branched context always indexes over a sequence.
func (c *Compiler) compileGroup(inner string) (Element, error) {
	elements, err := c.compileSequence(inner)
	if err != nil {
		return nil, err
	}
	return NewCompoundElement(elements...), nil
}

func (c *Compiler) compileChoices(inner string) ([]Element, error) {
	var choices []Element
	for _, alt := range splitChoices(inner) {
		choice, err := c.compileGroup(alt)
		if err != nil {
			return nil, err
		}
		choices = append(choices, choice)
	}
	if len(choices) == 0 {
		return nil, fmt.Errorf("empty choice group")
	}
	return choices, nil
}

func (c *Compiler) compilePlaceholder(content string) (*ExpressionElement, error) {
	nullable := false
	acceptance := AcceptAll
	conditional := false

sigils:
	for len(content) > 0 {
		switch content[0] {
		case '-':
			nullable = true
		case '~':
			acceptance = AcceptExpressionsOnly
		case '*':
			acceptance = AcceptLiteralsOnly
		case '^':
			acceptance = AcceptVariablesOnly
		case '=':
			conditional = true
		default:
			break sigils
		}
		content = content[1:]
	}
	if content == "" {
		return nil, fmt.Errorf("placeholder has no type names")
	}

	var ts []types.PatternType
	for _, name := range strings.Split(content, "/") {
		pt, ok := c.types.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown type %q in placeholder", name)
		}
		ts = append(ts, pt)
	}
	return NewExpressionElement(ts, acceptance, nullable, conditional), nil
}

// splitChoices splits choice-group content on top-level '|', honoring
// nested groups and escapes.
func splitChoices(s string) []string {
	var alts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case '|':
			if depth == 0 {
				alts = append(alts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(alts, s[start:])
}

// findUnescaped returns the index of the first unescaped occurrence of ch at
// or after from, or -1.
func findUnescaped(s string, ch byte, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == ch {
			return i
		}
	}
	return -1
}
