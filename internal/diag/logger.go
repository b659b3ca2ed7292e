// Package diag implements the transactional diagnostics log threaded through
// a matching attempt. Backtracking tries many parses that are expected to
// fail; entries recorded during a trial stay pending until the trial commits,
// so abandoned alternatives never reach the user. Semantic errors are the
// exception: once the offending substring is known they are user-visible
// regardless of which boundary candidate ultimately wins.
package diag

import "fmt"

// Severity of a diagnostic entry.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrorKind separates the two failure families of the matcher.
type ErrorKind int

const (
	// StructuralError marks a plain mismatch between pattern and input.
	// These stay pending and vanish when the enclosing trial rolls back.
	StructuralError ErrorKind = iota
	// SemanticError marks input that matched structurally but violated a
	// rule (e.g. a literal where only variables are accepted). Always kept.
	SemanticError
	// MalformedInputError marks input the structuring step could not place,
	// such as a line with too much indentation. Always kept.
	MalformedInputError
)

// Entry is a single recorded diagnostic.
type Entry struct {
	Severity Severity
	Kind     ErrorKind
	Message  string
	File     string
	Line     int
	// Depth is the recursion depth at which the entry was recorded; deeper
	// entries came from nested sub-expression parses.
	Depth int
}

func (e Entry) String() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Severity, e.Message)
}

// Logger collects diagnostics under a checkpoint/commit/rollback discipline.
// One Logger belongs to one matching attempt; it must not be shared across
// goroutines.
type Logger struct {
	committed []Entry
	pending   []Entry
	// marks records len(pending) at each open checkpoint.
	marks []int
	depth int
	file  string
	line  int
}

func NewLogger() *Logger {
	return &Logger{}
}

// SetContext points subsequent entries at a source location.
func (l *Logger) SetContext(file string, line int) {
	l.file = file
	l.line = line
}

// Recurse opens a checkpoint and deepens the recursion marker. Every Recurse
// must be paired with either Commit or Rollback. Reentrant to arbitrary depth.
func (l *Logger) Recurse() {
	l.marks = append(l.marks, len(l.pending))
	l.depth++
}

// Commit keeps everything recorded since the matching Recurse. If this was
// the outermost checkpoint the entries become part of the committed log.
func (l *Logger) Commit() {
	l.closeMark()
	if len(l.marks) == 0 {
		l.committed = append(l.committed, l.pending...)
		l.pending = l.pending[:0]
	}
}

// Rollback discards everything recorded since the matching Recurse, except
// semantic and malformed-input errors, which survive the discard.
func (l *Logger) Rollback() {
	mark := l.closeMark()
	kept := l.pending[:mark]
	for _, e := range l.pending[mark:] {
		if e.Kind == SemanticError || e.Kind == MalformedInputError {
			kept = append(kept, e)
		}
	}
	l.pending = kept
	if len(l.marks) == 0 {
		l.committed = append(l.committed, l.pending...)
		l.pending = l.pending[:0]
	}
}

func (l *Logger) closeMark() int {
	if len(l.marks) == 0 {
		return 0
	}
	mark := l.marks[len(l.marks)-1]
	l.marks = l.marks[:len(l.marks)-1]
	l.depth--
	return mark
}

func (l *Logger) record(sev Severity, kind ErrorKind, msg string) {
	e := Entry{
		Severity: sev,
		Kind:     kind,
		Message:  msg,
		File:     l.file,
		Line:     l.line,
		Depth:    l.depth,
	}
	if len(l.marks) == 0 {
		l.committed = append(l.committed, e)
		return
	}
	l.pending = append(l.pending, e)
}

// Error records an error of the given kind at the current location.
func (l *Logger) Error(msg string, kind ErrorKind) {
	l.record(SeverityError, kind, msg)
}

func (l *Logger) Warn(msg string) {
	l.record(SeverityWarning, StructuralError, msg)
}

func (l *Logger) Info(msg string) {
	l.record(SeverityInfo, StructuralError, msg)
}

func (l *Logger) Debug(msg string) {
	l.record(SeverityDebug, StructuralError, msg)
}

// Depth reports the current recursion depth.
func (l *Logger) Depth() int { return l.depth }

// Entries returns the committed log. Pending entries of still-open
// checkpoints are not included.
func (l *Logger) Entries() []Entry {
	return l.committed
}

// HasErrors reports whether any committed entry is an error.
func (l *Logger) HasErrors() bool {
	for _, e := range l.committed {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}
