package parsing

// ParserState tracks where in a script the parser currently is: the stack of
// enclosing sections. One state belongs to one parsing pass over one file.
type ParserState struct {
	sections []string
}

func NewParserState() *ParserState {
	return &ParserState{}
}

// EnterSection pushes a section the parser is descending into.
func (s *ParserState) EnterSection(name string) {
	s.sections = append(s.sections, name)
}

// ExitSection pops the innermost section.
func (s *ParserState) ExitSection() {
	if len(s.sections) > 0 {
		s.sections = s.sections[:len(s.sections)-1]
	}
}

// CurrentSections returns the enclosing sections, outermost first.
func (s *ParserState) CurrentSections() []string {
	return s.sections
}

// Depth returns how many sections enclose the current line.
func (s *ParserState) Depth() int {
	return len(s.sections)
}
