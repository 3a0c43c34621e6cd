// Package filter selects the subset of a catalog shown on the dashboard.
//
// The language set is computed once per load. Exactly one selector is
// active at a time: [All] or one of the languages in that set.
package filter

import (
	"slices"

	"github.com/wronai/repodash/pkg/catalog"
)

// All is the selector that keeps every record.
const All = "all"

// Languages returns the distinct non-empty languages in c, sorted ascending.
func Languages(c catalog.Catalog) []string {
	seen := make(map[string]struct{}, len(c))
	out := []string{}
	for _, r := range c {
		if r.Language == "" {
			continue
		}
		if _, ok := seen[r.Language]; ok {
			continue
		}
		seen[r.Language] = struct{}{}
		out = append(out, r.Language)
	}
	slices.Sort(out)
	return out
}

// Apply returns the records of c matching selector, in their original order.
// [All] returns c itself; any other selector is compared to the record's
// language exactly.
func Apply(c catalog.Catalog, selector string) catalog.Catalog {
	if selector == All {
		return c
	}
	out := catalog.Catalog{}
	for _, r := range c {
		if r.Language == selector {
			out = append(out, r)
		}
	}
	return out
}

// State is the active selector plus the language set it may take.
// The zero value is not usable; call [New].
type State struct {
	active    string
	languages []string
}

// New returns a State for c with [All] active.
func New(c catalog.Catalog) *State {
	return &State{active: All, languages: Languages(c)}
}

// Select makes selector active. It returns false and leaves the state
// unchanged when selector is neither [All] nor a known language.
func (s *State) Select(selector string) bool {
	if selector != All && !slices.Contains(s.languages, selector) {
		return false
	}
	s.active = selector
	return true
}

// Active returns the current selector.
func (s *State) Active() string { return s.active }

// Languages returns a copy of the language set.
func (s *State) Languages() []string { return slices.Clone(s.languages) }

// IsActive reports whether selector is the current one.
func (s *State) IsActive(selector string) bool { return s.active == selector }

// Selectors returns [All] followed by the language set, in button order.
func (s *State) Selectors() []string {
	return append([]string{All}, s.languages...)
}
