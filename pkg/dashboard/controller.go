// Package dashboard owns the state of one dashboard view.
//
// A [Controller] holds the loaded catalog, the filter state, the rendered
// card list and the failure banner. It is the only place they change, and
// it changes them through a few entry points: [Controller.Initialize],
// [Controller.OnFilterSelect] and [Controller.Handle]. Sinks and the TUI
// read from it and never mutate.
package dashboard

import (
	"context"
	"time"

	"github.com/wronai/repodash/pkg/card"
	"github.com/wronai/repodash/pkg/card/sink"
	"github.com/wronai/repodash/pkg/catalog"
	"github.com/wronai/repodash/pkg/errors"
	"github.com/wronai/repodash/pkg/filter"
)

// Loader loads a catalog. [*catalog.Loader] satisfies it.
type Loader interface {
	Load(ctx context.Context) catalog.Result
}

// Controller drives a single dashboard. It is not safe for concurrent use.
type Controller struct {
	loader    Loader
	now       func() time.Time
	clipboard card.ClipboardWriter

	catalog catalog.Catalog
	filter  *filter.State
	cards   []card.Card
	banner  string
	source  catalog.Candidate
	err     *errors.Error
}

// Option configures a [Controller].
type Option func(*Controller)

// WithClock sets the time source used for relative dates.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithClipboard sets where copy affordances write.
func WithClipboard(w card.ClipboardWriter) Option {
	return func(c *Controller) {
		if w != nil {
			c.clipboard = w
		}
	}
}

// New creates a Controller with an empty catalog. Call
// [Controller.Initialize] to load.
func New(loader Loader, opts ...Option) *Controller {
	c := &Controller{
		loader:    loader,
		now:       time.Now,
		clipboard: card.SystemClipboard{},
		catalog:   catalog.Catalog{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.filter = filter.New(c.catalog)
	return c
}

// Initialize loads the catalog, resets the filter to "all", computes the
// language set and renders every card. A failed load leaves an empty,
// still usable dashboard with the banner set; Initialize never fails.
// Calling it again reloads from scratch.
func (c *Controller) Initialize(ctx context.Context) {
	c.Apply(c.loader.Load(ctx))
}

// Apply installs a load result as [Controller.Initialize] does. It lets
// callers run the load elsewhere (for example off the UI loop) and hand the
// result back.
func (c *Controller) Apply(res catalog.Result) {
	c.catalog = res.Catalog
	if c.catalog == nil {
		c.catalog = catalog.Catalog{}
	}
	c.source = res.Source
	c.err = res.Err
	c.banner = ""
	if res.Failed() {
		c.banner = errors.UserMessage(res.Err)
	}

	c.filter = filter.New(c.catalog)
	c.render()
}

// OnFilterSelect shows only records whose language is lang ("all" shows
// everything). It re-renders from the loaded catalog without fetching.
// An unknown language is ignored and reported as false.
func (c *Controller) OnFilterSelect(lang string) bool {
	if !c.filter.Select(lang) {
		return false
	}
	c.render()
	return true
}

// render replaces the card list with the active subset.
func (c *Controller) render() {
	c.cards = card.BuildAll(filter.Apply(c.catalog, c.filter.Active()), c.now())
}

// Cards returns the rendered cards for the active filter.
func (c *Controller) Cards() []card.Card { return c.cards }

// Catalog returns the full loaded catalog.
func (c *Controller) Catalog() catalog.Catalog { return c.catalog }

// Languages returns the filter buttons, computed once per load.
func (c *Controller) Languages() []string { return c.filter.Languages() }

// Active returns the active selector.
func (c *Controller) Active() string { return c.filter.Active() }

// Banner returns the load-failure message, or "" after a good load.
func (c *Controller) Banner() string { return c.banner }

// Err returns the structured load error behind [Controller.Banner].
func (c *Controller) Err() *errors.Error { return c.err }

// Source returns the candidate that served the catalog. It is the zero
// value after a failed load.
func (c *Controller) Source() catalog.Candidate { return c.source }

// Page snapshots the view for a sink.
func (c *Controller) Page(title string, dark bool) sink.Page {
	return sink.Page{
		Title:     title,
		Cards:     c.cards,
		Selectors: c.filter.Selectors(),
		Active:    c.filter.Active(),
		Banner:    c.banner,
		Source:    c.source.Location,
		Dark:      dark,
	}
}

var _ Loader = (*catalog.Loader)(nil)
