// Package pkg provides the libraries behind repodash, a static dashboard for
// a catalog of source repositories.
//
// # Overview
//
// A deployed dashboard knows only where it is served from. It looks for a
// catalog document (repos.json) at a short list of candidate locations, takes
// the first one that parses, and shows each repository as a card with a
// language badge, a relative "updated" date, and copyable install and clone
// commands. Visitors narrow the cards with a single-choice language filter.
//
// # Architecture
//
// The data flows through five packages:
//
//	candidate locations
//	         ↓
//	    [catalog] (fetch, decode, first valid candidate wins)
//	         ↓
//	    [filter] (language set, active selection)
//	         ↓
//	    [present] → [card] (display fields, code blocks, copy affordances)
//	         ↓
//	    [card/sink] (HTML page, JSON, terminal)
//
// [dashboard] owns the state and turns events (filter selected, copy
// pressed, reset timer fired) into re-renders.
//
// # Quick Start
//
//	loader := catalog.NewLoader(
//	    catalog.Locations{Origin: "https://wronai.github.io"}.Candidates(),
//	    catalog.WithHTTPSource(catalog.NewHTTPSource()),
//	)
//	ctrl := dashboard.New(loader)
//	ctrl.Initialize(ctx)
//	ctrl.OnFilterSelect("Python")
//	_ = sink.HTML(os.Stdout, ctrl.Page("Repositories", true))
//
// # Supporting Packages
//
// [cache] keeps fetched catalog bodies on disk or in Redis. [httputil]
// wraps GET requests with status classification and retry. [observability]
// carries loader, cache and HTTP events to whoever registered hooks. [watch]
// reports changes to local catalog files, and [prefs] stores the dark/light
// choice between sessions.
//
// [catalog]: https://pkg.go.dev/github.com/wronai/repodash/pkg/catalog
// [filter]: https://pkg.go.dev/github.com/wronai/repodash/pkg/filter
// [present]: https://pkg.go.dev/github.com/wronai/repodash/pkg/present
// [card]: https://pkg.go.dev/github.com/wronai/repodash/pkg/card
// [card/sink]: https://pkg.go.dev/github.com/wronai/repodash/pkg/card/sink
// [dashboard]: https://pkg.go.dev/github.com/wronai/repodash/pkg/dashboard
// [cache]: https://pkg.go.dev/github.com/wronai/repodash/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/wronai/repodash/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/wronai/repodash/pkg/observability
// [watch]: https://pkg.go.dev/github.com/wronai/repodash/pkg/watch
// [prefs]: https://pkg.go.dev/github.com/wronai/repodash/pkg/prefs
package pkg
