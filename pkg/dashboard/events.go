package dashboard

import (
	"github.com/wronai/repodash/pkg/card"
)

// Event is a user action on the dashboard.
type Event interface {
	event()
}

// EventFilter selects a language filter.
//
// Transition: if Language is "all" or in the language set, the active
// selector becomes Language and the card list is replaced with the
// matching subset. Otherwise nothing changes.
type EventFilter struct {
	Language string
}

// EventCopy activates the copy affordance of one code block.
//
// Transition: the block's affordance moves to Copied (or Failed when the
// clipboard rejects the write). The outcome carries a token; deliver an
// [EventReset] with it after [card.ResetAfter] to revert the affordance.
// Out-of-range indexes are ignored.
type EventCopy struct {
	Card  int
	Block int
}

// EventReset ends the copied/failed window started by an [EventCopy].
//
// Transition: the affordance returns to Idle if Token is still its latest
// activation. A reset for a card list that has since been re-rendered, or
// for a superseded activation, does nothing.
type EventReset struct {
	Card  int
	Block int
	Token card.Token
}

func (EventFilter) event() {}
func (EventCopy) event()   {}
func (EventReset) event()  {}

// Outcome describes what handling an event changed.
type Outcome struct {
	// Rerendered is true when the card list was replaced.
	Rerendered bool
	// Changed is true when anything visible changed.
	Changed bool
	// Reset is set after a copy; schedule it after card.ResetAfter.
	Reset *EventReset
}

// Handle applies ev and reports the transition.
func (c *Controller) Handle(ev Event) Outcome {
	switch ev := ev.(type) {
	case EventFilter:
		ok := c.OnFilterSelect(ev.Language)
		return Outcome{Rerendered: ok, Changed: ok}

	case EventCopy:
		a := c.affordance(ev.Card, ev.Block)
		if a == nil {
			return Outcome{}
		}
		tok := a.Activate(c.clipboard, c.now())
		return Outcome{
			Changed: true,
			Reset:   &EventReset{Card: ev.Card, Block: ev.Block, Token: tok},
		}

	case EventReset:
		a := c.affordance(ev.Card, ev.Block)
		if a == nil {
			return Outcome{}
		}
		return Outcome{Changed: a.Reset(ev.Token)}
	}
	return Outcome{}
}

// affordance returns the copy affordance at the given position, or nil.
func (c *Controller) affordance(cardIdx, blockIdx int) *card.Affordance {
	if cardIdx < 0 || cardIdx >= len(c.cards) {
		return nil
	}
	blocks := c.cards[cardIdx].Blocks
	if blockIdx < 0 || blockIdx >= len(blocks) {
		return nil
	}
	return blocks[blockIdx].Copy
}
