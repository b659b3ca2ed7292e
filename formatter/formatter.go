// Package formatter renders parse diagnostics for humans: a severity-colored
// header, the offending source line with a gutter, and a marker underneath.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/verbalang/verba/internal/diag"
	"github.com/verbalang/verba/script"
)

const tabWidth = 4

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	infoStyle    = color.New(color.FgHiBlue)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
)

// GenerateFormattedReport formats every diagnostic of a report against its
// source lines.
func GenerateFormattedReport(report *script.Report, source []byte) string {
	lines := strings.Split(strings.ReplaceAll(string(source), "\r\n", "\n"), "\n")
	var builder strings.Builder
	for _, entry := range report.Entries {
		if entry.Severity < diag.SeverityWarning {
			continue
		}
		builder.WriteString(formatEntry(entry, lines))
	}
	return builder.String()
}

func formatEntry(entry diag.Entry, lines []string) string {
	var builder strings.Builder
	builder.WriteString(severityStyle(entry.Severity).Sprintf("%s: ", entry.Severity))
	builder.WriteString(entry.Message + "\n")
	if entry.File != "" {
		builder.WriteString(lineStyle.Sprint(" --> "))
		builder.WriteString(fileStyle.Sprintf("%s:%d", entry.File, entry.Line))
		builder.WriteByte('\n')
	}
	if entry.Line >= 1 && entry.Line <= len(lines) {
		builder.WriteString(formatSourceLine(entry.Line, lines[entry.Line-1]))
	}
	return builder.String()
}

func formatSourceLine(lineNumber int, line string) string {
	expanded := expandTabs(line)
	gutter := strconv.Itoa(lineNumber)
	padding := strings.Repeat(" ", len(gutter))
	var builder strings.Builder
	builder.WriteString(lineStyle.Sprintf(" %s |\n", padding))
	builder.WriteString(lineStyle.Sprintf(" %s | ", gutter))
	builder.WriteString(expanded + "\n")
	builder.WriteString(lineStyle.Sprintf(" %s | ", padding))
	marker := strings.Repeat("^", maxInt(1, len(strings.TrimSpace(expanded))))
	indent := len(expanded) - len(strings.TrimLeft(expanded, " "))
	builder.WriteString(strings.Repeat(" ", indent) + errorStyle.Sprint(marker) + "\n\n")
	return builder.String()
}

func severityStyle(s diag.Severity) *color.Color {
	switch s {
	case diag.SeverityError:
		return errorStyle
	case diag.SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// expandTabs replaces tab characters with spaces so gutters line up.
func expandTabs(line string) string {
	var expanded strings.Builder
	column := 0
	for _, ch := range line {
		if ch == '\t' {
			spaceCount := tabWidth - (column % tabWidth)
			expanded.WriteString(strings.Repeat(" ", spaceCount))
			column += spaceCount
			continue
		}
		expanded.WriteRune(ch)
		column++
	}
	return expanded.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Summarize renders a one-line tally for a set of reports.
func Summarize(reports []*script.Report) string {
	files := len(reports)
	nodes, errors := 0, 0
	for _, r := range reports {
		nodes += len(r.Nodes)
		for _, e := range r.Entries {
			if e.Severity == diag.SeverityError {
				errors++
			}
		}
	}
	return fmt.Sprintf("%d file(s), %d line(s) bound, %d error(s)", files, nodes, errors)
}
