package pattern

import "strings"

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// indexOfFold returns the index of the first case-insensitive occurrence of
// sub in s at or after from, or -1.
func indexOfFold(s, sub string, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

// splitAtSpaces splits s into whitespace-delimited groups, keeping balanced
// parentheses intact as a single group since they may contain nested syntax:
// "(a b) c" yields ["(a b)", "c"].
func splitAtSpaces(s string) []string {
	var split []string
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ' ':
			if sb.Len() > 0 {
				split = append(split, sb.String())
				sb.Reset()
			}
		case '(':
			enclosed, ok := enclosedText(s, '(', ')', i)
			if !ok {
				sb.WriteByte('(')
				continue
			}
			sb.WriteByte('(')
			sb.WriteString(enclosed)
			sb.WriteByte(')')
			i += len(enclosed) + 1
		default:
			sb.WriteByte(c)
		}
	}
	if sb.Len() > 0 {
		split = append(split, sb.String())
	}
	return split
}

// enclosedText returns the text enclosed by the opening bracket at start and
// its matching closing bracket, honoring nesting. start must point at an
// opening bracket; ok is false when no balanced closing bracket exists.
func enclosedText(s string, opening, closing byte, start int) (string, bool) {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[start+1 : i], true
			}
		}
	}
	return "", false
}
