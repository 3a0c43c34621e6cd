// Package card builds the display-independent card model for a repository.
//
// A [Card] is what every sink renders: the terminal dashboard, the static
// HTML page and the JSON listing all consume the same model. Each code block
// on a card carries its own [Affordance], a small state machine that writes
// the block's literal to the clipboard and shows "Copied!" (or a failure)
// for [ResetAfter] before reverting.
//
// Building a card:
//
//	v := present.Derive(repo, time.Now())
//	c := card.Build(repo, v)
//	for _, b := range c.Blocks {
//	    fmt.Println(b.Label, b.Text)
//	}
package card
