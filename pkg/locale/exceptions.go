package locale

import "sort"

// DefaultExceptions are regional variants that are distinct languages in
// practice and must never be folded into their base.
var DefaultExceptions = []string{
	"values-es-rAR", // Argentinian Spanish
	"values-pt-rBR", // Brazilian Portuguese
}

// ExceptionSet holds variant directory names exempt from merging. Lookups
// are exact name matches.
type ExceptionSet map[string]struct{}

// NewExceptionSet builds a set from directory names.
func NewExceptionSet(names ...string) ExceptionSet {
	set := make(ExceptionSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether name is excepted.
func (s ExceptionSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the excepted names in sorted order.
func (s ExceptionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate returns the names that are not variant directories under g.
// Such entries can never match and usually indicate a typo.
func (s ExceptionSet) Validate(g *Grammar) []string {
	var invalid []string
	for _, name := range s.Names() {
		if !g.Classify(name).IsVariant() {
			invalid = append(invalid, name)
		}
	}
	return invalid
}
