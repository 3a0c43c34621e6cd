// Package sink renders a dashboard page to a concrete output.
//
// Three sinks share one [Page] model:
//   - [HTML] writes a self-contained static page with filter buttons,
//     copy buttons and a dark/light toggle.
//   - [Terminal] draws lipgloss card boxes for a terminal.
//   - [JSON] writes the cards and their derived fields for scripts.
package sink

import (
	"github.com/wronai/repodash/pkg/card"
)

// Page is everything a sink needs to draw the dashboard.
type Page struct {
	Title     string
	Cards     []card.Card
	Selectors []string // "all" first, then languages in button order
	Active    string   // exactly one of Selectors
	Banner    string   // non-empty only after a failed load
	Source    string   // location that served the catalog
	Dark      bool
}

// Languages returns every selector except the leading "all".
func (p Page) Languages() []string {
	if len(p.Selectors) == 0 {
		return nil
	}
	return p.Selectors[1:]
}

// ResetMillis is the copy-button reset window in milliseconds.
func (Page) ResetMillis() int64 { return card.ResetAfter.Milliseconds() }
