package script

import "github.com/verbalang/verba/internal/registry"

// registration of the built-in syntax catalogue. All registration happens
// here, during initialization; the registry is frozen before any matching
// occurs.

type registration struct {
	name      string
	priority  int
	notations []string
}

var builtinSyntax = []registration{
	{"set variable", 100, []string{"set %^objects% to %objects%"}},
	{"delete variable", 100, []string{"(delete|clear) %^objects%"}},
	{"add to variable", 90, []string{"add %number% to %^numbers%"}},
	{"remove from variable", 90, []string{"remove %number% from %^numbers%"}},
	{"send message", 50, []string{"(send|print) %objects%[ to [the ]console]"}},
	{"broadcast", 50, []string{"broadcast %strings%"}},
	{"wait", 50, []string{"wait [for ]%timespan%"}},
	{"stop", 40, []string{"(stop|exit)[ [the ]trigger]"}},
	{"continue", 40, []string{"continue[ loop]"}},
	// section headers
	{"condition", 30, []string{"if %=boolean%", "else if %=boolean%", "else"}},
	{"while loop", 30, []string{"while %=boolean%"}},
	{"loop times", 30, []string{"loop %integer% times"}},
	{"script load event", 20, []string{"on [script ]load[ing]"}},
}

// registerBuiltins populates reg with the built-in catalogue. The registry
// stays open so embedders can add their own syntax before freezing.
func registerBuiltins(reg *registry.Registry) error {
	for _, r := range builtinSyntax {
		if err := reg.Register(r.name, r.priority, r.notations...); err != nil {
			return err
		}
	}
	return nil
}
