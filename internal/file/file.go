// Package file turns raw script lines into a tree of sections and simple
// lines by indentation. A line ending in ':' opens a child section one
// indentation level deeper; a line less indented than expected ends the
// current section; a line more indented than expected is a recoverable
// error and is skipped.
package file

import (
	"strconv"
	"strings"

	"github.com/verbalang/verba/internal/diag"
)

// Element is one structured line of a script file. Sections carry their
// children; simple lines have none.
type Element struct {
	File     string
	Line     int
	Content  string
	Indent   int
	Section  bool
	Children []*Element
}

// spacesPerIndent is how many leading spaces equal one tab.
const spacesPerIndent = 4

// Parse structures the lines of one file. Indentation errors are reported on
// the logger as malformed input and the offending line is skipped; parsing
// always continues.
func Parse(fileName string, lines []string, logger *diag.Logger) []*Element {
	elements, _ := parseLines(fileName, lines, 0, 0, logger)
	return elements
}

// parseLines consumes lines starting at index from at the expected
// indentation level and returns the parsed elements along with the index of
// the first unconsumed line.
func parseLines(fileName string, lines []string, from, indent int, logger *diag.Logger) ([]*Element, int) {
	var elements []*Element
	i := from
	for i < len(lines) {
		content := strings.TrimSpace(stripComment(lines[i]))
		if content == "" {
			i++
			continue
		}
		lineIndent := indentationLevel(lines[i])
		if lineIndent > indent {
			logger.SetContext(fileName, i+1)
			logger.Error(
				"invalid indentation: expected "+strconv.Itoa(indent)+" levels, found "+strconv.Itoa(lineIndent),
				diag.MalformedInputError,
			)
			i++
			continue
		}
		if lineIndent < indent {
			// End of this section; the caller resumes from here.
			return elements, i
		}
		if strings.HasSuffix(content, ":") {
			section := &Element{
				File:    fileName,
				Line:    i + 1,
				Content: strings.TrimSuffix(content, ":"),
				Indent:  indent,
				Section: true,
			}
			children, next := parseLines(fileName, lines, i+1, indent+1, logger)
			section.Children = children
			elements = append(elements, section)
			i = next
			continue
		}
		elements = append(elements, &Element{
			File:    fileName,
			Line:    i + 1,
			Content: content,
			Indent:  indent,
		})
		i++
	}
	return elements, i
}

// stripComment removes everything from the first unescaped '#'. A doubled
// "##" is an escaped hash and stays in the content as a single '#'.
func stripComment(line string) string {
	var sb strings.Builder
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			sb.WriteByte(line[i])
			continue
		}
		if i+1 < len(line) && line[i+1] == '#' {
			sb.WriteByte('#')
			i++
			continue
		}
		break
	}
	return sb.String()
}

// indentationLevel counts leading tabs and groups of spaces.
func indentationLevel(line string) int {
	level := 0
	spaces := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\t':
			level++
			spaces = 0
		case ' ':
			spaces++
			if spaces == spacesPerIndent {
				level++
				spaces = 0
			}
		default:
			return level
		}
	}
	return level
}
