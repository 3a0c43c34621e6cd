package card

import (
	"time"

	"github.com/google/uuid"
)

// ResetAfter is how long an affordance shows its copied or failed state.
const ResetAfter = 2 * time.Second

// State is the visual state of a copy affordance.
type State int

const (
	Idle State = iota
	Copied
	Failed
)

func (s State) String() string {
	switch s {
	case Copied:
		return "copied"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Token identifies one activation. Only the latest token can reset the
// affordance, so a second copy supersedes the first one's timer.
type Token uuid.UUID

// Affordance is the copy button attached to a code block.
//
//	Idle --Activate ok--> Copied --Reset(latest)--> Idle
//	Idle --Activate err-> Failed --Reset(latest)--> Idle
//
// Activating again from Copied or Failed starts a new window. Affordances
// are not safe for concurrent use; the dashboard drives them from its
// single update loop.
type Affordance struct {
	text     string
	state    State
	token    Token
	deadline time.Time
	err      error
}

// NewAffordance returns an idle affordance that copies text.
func NewAffordance(text string) *Affordance {
	return &Affordance{text: text}
}

// Activate writes the literal to w and moves to Copied or Failed. A write
// error is kept for [Affordance.Err] and never returned. The returned token
// is what the caller hands back to [Affordance.Reset] after [ResetAfter].
func (a *Affordance) Activate(w ClipboardWriter, now time.Time) Token {
	a.err = w.WriteAll(a.text)
	if a.err != nil {
		a.state = Failed
	} else {
		a.state = Copied
	}
	a.token = Token(uuid.New())
	a.deadline = now.Add(ResetAfter)
	return a.token
}

// Reset returns the affordance to Idle if tok is the latest activation.
// Stale tokens are ignored and Reset reports false.
func (a *Affordance) Reset(tok Token) bool {
	if a.state == Idle || tok != a.token {
		return false
	}
	a.state = Idle
	a.err = nil
	return true
}

// Expire resets the affordance when its window has passed at now. Sinks
// without timers (such as a re-rendered static page) use this instead of
// [Affordance.Reset].
func (a *Affordance) Expire(now time.Time) bool {
	if a.state == Idle || now.Before(a.deadline) {
		return false
	}
	return a.Reset(a.token)
}

func (a *Affordance) Text() string { return a.text }
func (a *Affordance) State() State { return a.state }
func (a *Affordance) Err() error   { return a.err }

// Label is the button text for the current state.
func (a *Affordance) Label() string {
	switch a.state {
	case Copied:
		return "Copied!"
	case Failed:
		return "Failed"
	default:
		return "Copy"
	}
}
