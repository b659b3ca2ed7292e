// Package registry stores the catalogue of registered syntax entries and
// offers their compiled patterns for trial in priority order. Registration
// happens in an explicit initialization phase; after Freeze the registry is
// read-only and safe for unlimited concurrent matching attempts.
package registry

import (
	"fmt"
	"sort"

	"github.com/verbalang/verba/internal/pattern"
	"github.com/verbalang/verba/internal/types"
)

// Entry is one registered syntax element with its alternative patterns.
// Patterns are tried in declared order within the entry.
type Entry struct {
	// Name identifies the syntax element, e.g. "set variable".
	Name string
	// Patterns are the compiled alternatives for this element.
	Patterns []pattern.Element
	// Notations are the raw pattern strings the entry was registered with,
	// parallel to Patterns.
	Notations []string
	// Priority orders candidates across entries; higher is tried first.
	Priority int
}

// Registry indexes syntax entries for the dispatch loop.
type Registry struct {
	compiler *pattern.Compiler
	entries  []Entry
	frozen   bool
}

func New(typeReg *types.Registry) *Registry {
	return &Registry{compiler: pattern.NewCompiler(typeReg)}
}

// Register compiles the given pattern notations and adds an entry. It fails
// on a frozen registry and on the first notation that does not compile.
func (r *Registry) Register(name string, priority int, notations ...string) error {
	if r.frozen {
		return fmt.Errorf("registering %q: registry is frozen", name)
	}
	if len(notations) == 0 {
		return fmt.Errorf("registering %q: no patterns given", name)
	}
	entry := Entry{Name: name, Priority: priority}
	for _, notation := range notations {
		el, err := r.compiler.Compile(notation)
		if err != nil {
			return fmt.Errorf("registering %q: %w", name, err)
		}
		entry.Patterns = append(entry.Patterns, el)
		entry.Notations = append(entry.Notations, notation)
	}
	r.entries = append(r.entries, entry)
	return nil
}

// Freeze ends the registration phase and fixes the candidate order: entries
// sort by descending priority, stable for equal priorities.
func (r *Registry) Freeze() {
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Priority > r.entries[j].Priority
	})
	r.frozen = true
}

// Entries returns the registered entries. After Freeze the slice is in
// candidate order.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// Forms renders every linear candidate form each registered pattern can
// take, keyed by entry name. Useful for usage listings and debugging
// ambiguous patterns.
func (r *Registry) Forms() map[string][]string {
	forms := make(map[string][]string, len(r.entries))
	for _, entry := range r.entries {
		for _, pat := range entry.Patterns {
			for _, seq := range pattern.Flatten(pat) {
				var form string
				for _, el := range seq {
					form += el.String()
				}
				forms[entry.Name] = append(forms[entry.Name], form)
			}
		}
	}
	return forms
}
