package types

import (
	"strings"
	"sync"
)

// LiteralParser converts raw script text into a value of the type, or reports
// that the text is not a literal of this type.
type LiteralParser func(s string) (any, bool)

// Type describes a value type usable inside a pattern placeholder.
// Instances are registered once during initialization and shared read-only
// afterwards.
type Type struct {
	Name       string
	PluralName string
	// Parse recognizes literal notation for this type. Nil for types that
	// have no literal form (they can still be produced by variables).
	Parse LiteralParser
}

// PatternType pairs a value type with the plurality a placeholder expects.
// Immutable once built.
type PatternType struct {
	Type   *Type
	Plural bool
}

func NewPatternType(t *Type, plural bool) PatternType {
	return PatternType{Type: t, Plural: plural}
}

// Equals compares both the underlying type and plurality.
func (pt PatternType) Equals(other PatternType) bool {
	return pt.Type == other.Type && pt.Plural == other.Plural
}

// String renders the name used in pattern notation: the plural name for
// plural pattern types, the singular name otherwise.
func (pt PatternType) String() string {
	if pt.Type == nil {
		return "?"
	}
	if pt.Plural {
		return pt.Type.PluralName
	}
	return pt.Type.Name
}

// Registry stores the catalogue of registered types, indexed by both
// singular and plural names. Populated during initialization, read-only
// afterwards.
type Registry struct {
	mu       sync.RWMutex
	ordered  []*Type
	byName   map[string]*Type
	byPlural map[string]*Type
	frozen   bool
}

func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]*Type),
		byPlural: make(map[string]*Type),
	}
}

// Register adds a type under its singular and plural names. Registration on
// a frozen registry is ignored; the initialization phase owns all writes.
func (r *Registry) Register(t *Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return
	}
	if _, exists := r.byName[strings.ToLower(t.Name)]; !exists {
		r.ordered = append(r.ordered, t)
	}
	r.byName[strings.ToLower(t.Name)] = t
	if t.PluralName != "" {
		r.byPlural[strings.ToLower(t.PluralName)] = t
	}
}

// Types returns every registered type in registration order.
func (r *Registry) Types() []*Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Type, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Freeze marks the end of the registration phase.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Lookup resolves a type name as written in pattern notation. The returned
// PatternType is plural when the name matched the type's plural form.
func (r *Registry) Lookup(name string) (PatternType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := strings.ToLower(strings.TrimSpace(name))
	if t, ok := r.byName[key]; ok {
		return PatternType{Type: t}, true
	}
	if t, ok := r.byPlural[key]; ok {
		return PatternType{Type: t, Plural: true}, true
	}
	return PatternType{}, false
}
