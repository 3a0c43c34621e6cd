package catalog

import (
	"context"
	stderrors "errors"
	"fmt"
	"iter"
	"time"

	"github.com/wronai/repodash/pkg/errors"
	"github.com/wronai/repodash/pkg/observability"
)

// failedMessage opens the banner text shown when no candidate worked.
const failedMessage = "All attempts to load repository data failed."

// Attempt is the outcome of trying one candidate.
type Attempt struct {
	Candidate Candidate
	Catalog   Catalog // set when Err is nil
	Shape     Shape   // set when Err is nil
	Err       error   // SOURCE_UNAVAILABLE or FORMAT_INVALID
	Duration  time.Duration
}

// OK reports whether the attempt produced a catalog.
func (a Attempt) OK() bool { return a.Err == nil }

// Result is what [Loader.Load] hands to the view. Err is nil on success and
// a SOURCE_UNAVAILABLE error when every candidate failed; in that case
// Catalog is empty, never nil.
type Result struct {
	Catalog  Catalog
	Source   Candidate // the candidate that served the catalog
	Attempts int
	Err      *errors.Error
}

// Failed reports whether the load exhausted every candidate.
func (r Result) Failed() bool { return r.Err != nil }

// Loader walks candidates in order until one yields a catalog.
type Loader struct {
	candidates []Candidate
	http       Source
	files      Source
	onAttempt  func(Candidate)
}

// Option configures a [Loader].
type Option func(*Loader)

// WithHTTPSource sets the source used for HTTP candidates.
func WithHTTPSource(s Source) Option {
	return func(l *Loader) {
		if s != nil {
			l.http = s
		}
	}
}

// WithFileSource sets the source used for file candidates.
func WithFileSource(s Source) Option {
	return func(l *Loader) {
		if s != nil {
			l.files = s
		}
	}
}

// WithOnAttempt calls fn before each candidate is fetched.
func WithOnAttempt(fn func(Candidate)) Option {
	return func(l *Loader) {
		l.onAttempt = fn
	}
}

// NewLoader creates a Loader over candidates. By default HTTP candidates use
// [NewHTTPSource] and file candidates use [NewFileSource] rooted at ".".
func NewLoader(candidates []Candidate, opts ...Option) *Loader {
	l := &Loader{
		candidates: candidates,
		http:       NewHTTPSource(),
		files:      NewFileSource(""),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Candidates returns the locations the loader will try, in order.
func (l *Loader) Candidates() []Candidate {
	return append([]Candidate(nil), l.candidates...)
}

// Attempts lazily yields one attempt per candidate, strictly in order. A
// candidate is fetched only when the consumer asks for it; the sequence ends
// early if ctx is cancelled.
func (l *Loader) Attempts(ctx context.Context) iter.Seq[Attempt] {
	return func(yield func(Attempt) bool) {
		for _, c := range l.candidates {
			if ctx.Err() != nil {
				return
			}
			if !yield(l.try(ctx, c)) {
				return
			}
		}
	}
}

// Load returns the catalog from the first candidate that answers with a
// valid document and makes no further requests. It never fails: when every
// candidate is exhausted the result holds an empty catalog and an aggregated
// SOURCE_UNAVAILABLE error naming the last failure.
func (l *Loader) Load(ctx context.Context) Result {
	hooks := observability.Catalog()
	var last Attempt
	n := 0

	for a := range l.Attempts(ctx) {
		n++
		if a.OK() {
			hooks.OnLoaded(ctx, a.Candidate.Location, len(a.Catalog), a.Duration)
			return Result{Catalog: a.Catalog, Source: a.Candidate, Attempts: n}
		}
		last = a
	}

	err := exhausted(ctx, last, n)
	hooks.OnExhausted(ctx, n, err)
	return Result{Catalog: Catalog{}, Attempts: n, Err: err}
}

func (l *Loader) try(ctx context.Context, c Candidate) Attempt {
	hooks := observability.Catalog()
	hooks.OnAttempt(ctx, c.Location)
	if l.onAttempt != nil {
		l.onAttempt(c)
	}
	start := time.Now()

	src := l.files
	if c.Kind == KindHTTP {
		src = l.http
	}

	a := Attempt{Candidate: c}
	body, err := src.Fetch(ctx, c.Location)
	if err != nil {
		a.Err = errors.Wrap(errors.ErrCodeSourceUnavailable, err, "failed to load from %s", c.Location)
	} else if a.Catalog, a.Shape, err = Decode(body); err != nil {
		a.Err = errors.Wrap(errors.ErrCodeFormatInvalid, err, "invalid data format in %s", c.Location)
		if f, ok := src.(forgetter); ok {
			f.Forget(ctx, c.Location)
		}
	}
	a.Duration = time.Since(start)

	switch {
	case a.Err != nil:
		hooks.OnAttemptFailed(ctx, c.Location, a.Err)
	case a.Shape == ShapeObjectWithoutField:
		hooks.OnWarning(ctx, c.Location, "repository data exists but is empty or malformed")
	}
	return a
}

func exhausted(ctx context.Context, last Attempt, n int) *errors.Error {
	switch {
	case n == 0 && ctx.Err() != nil:
		return errors.Wrap(errors.ErrCodeSourceUnavailable, ctx.Err(), "%s Loading was cancelled.", failedMessage)
	case n == 0:
		return errors.New(errors.ErrCodeSourceUnavailable, "%s No catalog locations are configured.", failedMessage)
	default:
		return errors.Wrap(errors.ErrCodeSourceUnavailable, last.Err, "%s %s", failedMessage, describe(last))
	}
}

// describe renders the last failure the way the banner shows it:
// "Error loading from <location>: <cause>".
func describe(a Attempt) string {
	cause := a.Err
	var e *errors.Error
	if stderrors.As(a.Err, &e) && e.Cause != nil {
		cause = e.Cause
	}
	return fmt.Sprintf("Error loading from %s: %s", a.Candidate.Location, plain(cause))
}

// plain flattens an error chain without the machine-readable codes.
func plain(err error) string {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + plain(e.Cause)
}
