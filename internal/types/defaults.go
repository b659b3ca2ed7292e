package types

import (
	"strconv"
	"strings"
	"time"
)

// Built-in types available to every pattern. The boolean type is special:
// the matcher routes it to the conditional expression parser.
var (
	Object   = &Type{Name: "object", PluralName: "objects", Parse: parseObject}
	Number   = &Type{Name: "number", PluralName: "numbers", Parse: parseNumber}
	Integer  = &Type{Name: "integer", PluralName: "integers", Parse: parseInteger}
	Str      = &Type{Name: "string", PluralName: "strings", Parse: parseString}
	Boolean  = &Type{Name: "boolean", PluralName: "booleans", Parse: parseBoolean}
	Timespan = &Type{Name: "timespan", PluralName: "timespans", Parse: parseTimespan}
)

// DefaultRegistry returns a registry populated with the built-in types,
// still open for addon registrations.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, t := range []*Type{Object, Number, Integer, Str, Boolean, Timespan} {
		r.Register(t)
	}
	return r
}

func parseObject(s string) (any, bool) {
	// object has no literal notation of its own; other types provide it
	// through their own parsers.
	return nil, false
}

func parseNumber(s string) (any, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return f, true
}

func parseInteger(s string) (any, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, false
	}
	return n, true
}

func parseString(s string) (any, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return nil, false
	}
	inner := s[1 : len(s)-1]
	// A quote inside the literal must be doubled; a stray single quote
	// means the string actually ends earlier and this is not one literal.
	if strings.Contains(strings.ReplaceAll(inner, `""`, ""), `"`) {
		return nil, false
	}
	return strings.ReplaceAll(inner, `""`, `"`), true
}

func parseBoolean(s string) (any, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true, true
	case "false", "no", "off":
		return false, true
	}
	return nil, false
}

var timespanUnits = []struct {
	names []string
	d     time.Duration
}{
	{[]string{"tick", "ticks"}, 50 * time.Millisecond},
	{[]string{"second", "seconds"}, time.Second},
	{[]string{"minute", "minutes"}, time.Minute},
	{[]string{"hour", "hours"}, time.Hour},
	{[]string{"day", "days"}, 24 * time.Hour},
}

// parseTimespan recognizes inputs like "5 seconds", "1 minute and 30 seconds"
// or "2 hours, 5 minutes".
func parseTimespan(s string) (any, bool) {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ','
	})
	var expanded []string
	for _, p := range parts {
		for _, w := range strings.Fields(p) {
			if w == "and" {
				continue
			}
			expanded = append(expanded, w)
		}
	}
	if len(expanded) == 0 || len(expanded)%2 != 0 {
		return nil, false
	}
	var total time.Duration
	for i := 0; i < len(expanded); i += 2 {
		amount, err := strconv.ParseFloat(expanded[i], 64)
		if err != nil || amount < 0 {
			return nil, false
		}
		unit, ok := lookupUnit(expanded[i+1])
		if !ok {
			return nil, false
		}
		total += time.Duration(amount * float64(unit))
	}
	return total, true
}

func lookupUnit(name string) (time.Duration, bool) {
	for _, u := range timespanUnits {
		for _, n := range u.names {
			if n == name {
				return u.d, true
			}
		}
	}
	return 0, false
}
