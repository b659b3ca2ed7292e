// Package script is the front-end pipeline: it loads script files,
// structures them by indentation and matches every line against the
// registered syntax catalogue, collecting diagnostics per file.
package script

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/verbalang/verba/internal/diag"
	"github.com/verbalang/verba/internal/file"
	"github.com/verbalang/verba/internal/parsing"
	"github.com/verbalang/verba/internal/registry"
	"github.com/verbalang/verba/internal/types"
)

// Runner parses scripts against a frozen syntax catalogue. One Runner may
// serve unlimited concurrent Run calls: the catalogue is read-only and every
// run owns its own parser state and diagnostics log.
type Runner struct {
	config   Config
	types    *types.Registry
	registry *registry.Registry

	ignorePaths []string

	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching bool
}

// Report is the outcome of parsing one script file.
type Report struct {
	File string
	// Nodes are the successfully bound lines in source order.
	Nodes []*parsing.ParseResult
	// Entries are the user-visible diagnostics recorded while parsing.
	Entries []diag.Entry
}

// HasErrors reports whether any diagnostic is an error.
func (r *Report) HasErrors() bool {
	for _, e := range r.Entries {
		if e.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

// New builds a Runner from the configuration file at configurationPath (an
// empty path or a missing file yields the default configuration), registers
// the built-in syntax catalogue and freezes the registries.
func New(configurationPath string) (*Runner, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	typeReg := types.DefaultRegistry()
	synReg := registry.New(typeReg)
	if err := registerBuiltins(synReg); err != nil {
		return nil, err
	}
	typeReg.Freeze()
	synReg.Freeze()

	return &Runner{
		config:      config,
		types:       typeReg,
		registry:    synReg,
		ignorePaths: config.IgnorePaths,
	}, nil
}

// Registry exposes the frozen syntax catalogue, e.g. for usage listings.
func (r *Runner) Registry() *registry.Registry {
	return r.registry
}

// Config returns the configuration the runner was built with.
func (r *Runner) Config() Config {
	return r.config
}

// IgnorePath excludes a path fragment from directory runs.
func (r *Runner) IgnorePath(path string) {
	r.ignorePaths = append(r.ignorePaths, path)
}

func (r *Runner) ignored(path string) bool {
	for _, frag := range r.ignorePaths {
		if frag != "" && strings.Contains(path, frag) {
			return true
		}
	}
	return false
}

// Run parses the script file at path.
func (r *Runner) Run(path string) (*Report, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return r.RunSource(path, content), nil
}

// RunSource parses script source under the given file name.
func (r *Runner) RunSource(name string, source []byte) *Report {
	logger := diag.NewLogger()
	lines := strings.Split(strings.ReplaceAll(string(source), "\r\n", "\n"), "\n")
	elements := file.Parse(name, lines, logger)

	state := parsing.NewParserState()
	parser := parsing.NewSyntaxParser(r.types, state)

	report := &Report{File: name}
	r.parseElements(elements, parser, state, logger, report)
	report.Entries = logger.Entries()
	if r.config.MaxErrors > 0 {
		report.Entries = capErrors(report.Entries, r.config.MaxErrors)
	}
	return report
}

func (r *Runner) parseElements(
	elements []*file.Element,
	parser *parsing.SyntaxParser,
	state *parsing.ParserState,
	logger *diag.Logger,
	report *Report,
) {
	for _, el := range elements {
		logger.SetContext(el.File, el.Line)
		res, ok := parsing.ParseLine(r.registry, el.Content, parser, logger)
		if !ok {
			logger.Error(fmt.Sprintf("can't understand this line: %q", el.Content), diag.StructuralError)
			continue
		}
		report.Nodes = append(report.Nodes, res)
		if el.Section {
			state.EnterSection(res.SyntaxName)
			r.parseElements(el.Children, parser, state, logger, report)
			state.ExitSection()
		}
	}
}

// capErrors truncates the entry list after the n-th error.
func capErrors(entries []diag.Entry, n int) []diag.Entry {
	seen := 0
	for i, e := range entries {
		if e.Severity != diag.SeverityError {
			continue
		}
		seen++
		if seen > n {
			return entries[:i]
		}
	}
	return entries
}
