package query

import (
	"context"
	"sync"
	"time"

	"github.com/tuitionhub/tuitionhub-web/internal/upstream"
)

// Outcome is the combined state of every read in a Group
type Outcome int

const (
	OutcomeReady Outcome = iota
	OutcomeLoading
	OutcomeUnauthorized
	OutcomeUnavailable
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReady:
		return "ready"
	case OutcomeLoading:
		return "loading"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "unavailable"
	}
}

// Composite is a Group's outcome plus the error that decided it
type Composite struct {
	Outcome Outcome
	Err     error
}

type member struct {
	opts      Options
	run       func(ctx context.Context)
	done      chan struct{}
	settled   bool
	abandoned bool
	status    Status
	err       error
}

// Group runs the reads of one view concurrently and settles them against a
// render deadline. Reads still running at the deadline carry on detached
// from the request and fill the cache for the next render.
type Group struct {
	scope    *Scope
	deadline time.Duration

	mu      sync.Mutex
	members []*member
}

// NewGroup creates a group reading through scope
func NewGroup(scope *Scope, deadline time.Duration) *Group {
	return &Group{scope: scope, deadline: deadline}
}

// Handle gives access to one read of a Group after Wait
type Handle[T any] struct {
	group  *Group
	result Result[T]
}

// Result returns the read's result; an unsettled read reports StatusLoading
func (h *Handle[T]) Result() Result[T] {
	h.group.mu.Lock()
	defer h.group.mu.Unlock()
	return h.result
}

// Add registers a read with the group. Nothing runs until Wait.
func Add[T any](g *Group, key Key, opts Options, fn Fetcher[T]) *Handle[T] {
	opts.Enabled = opts.Enabled && key.Complete()
	h := &Handle[T]{group: g, result: Result[T]{Key: key, Status: StatusIdle}}
	m := &member{opts: opts, done: make(chan struct{})}
	if opts.Enabled {
		h.result.Status = StatusLoading
	}

	m.run = func(ctx context.Context) {
		res := Fetch(ctx, g.scope, key, opts, fn)

		g.mu.Lock()
		if !m.abandoned {
			h.result = res
			m.settled = true
			m.status = res.Status
			m.err = res.Err
		}
		g.mu.Unlock()
		close(m.done)
	}

	g.mu.Lock()
	g.members = append(g.members, m)
	g.mu.Unlock()
	return h
}

// Wait starts every enabled read and blocks until all settle, the render
// deadline passes or ctx is done, whichever comes first.
func (g *Group) Wait(ctx context.Context) Composite {
	g.mu.Lock()
	members := append([]*member(nil), g.members...)
	g.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	for _, m := range members {
		if m.opts.Enabled {
			go m.run(detached)
		}
	}

	timer := time.NewTimer(g.deadline)
	defer timer.Stop()

wait:
	for _, m := range members {
		if !m.opts.Enabled {
			continue
		}
		select {
		case <-m.done:
		case <-timer.C:
			break wait
		case <-ctx.Done():
			break wait
		}
	}

	g.mu.Lock()
	for _, m := range members {
		if m.opts.Enabled && !m.settled {
			m.abandoned = true
		}
	}
	g.mu.Unlock()

	return g.Composite()
}

// Composite combines the reads: loading while any read is unsettled, then
// the highest-precedence failure (unauthorized, unavailable, not-found),
// otherwise ready.
func (g *Group) Composite() Composite {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := Composite{Outcome: OutcomeReady}
	rank := 0
	for _, m := range g.members {
		if !m.opts.Enabled {
			continue
		}
		if !m.settled {
			return Composite{Outcome: OutcomeLoading}
		}
		if m.status != StatusError {
			continue
		}

		outcome, r := classify(m.err, m.opts.Single)
		if r > rank {
			rank = r
			out = Composite{Outcome: outcome, Err: m.err}
		}
	}
	return out
}

func classify(err error, single bool) (Outcome, int) {
	switch upstream.KindOf(err) {
	case upstream.KindUnauthorized:
		return OutcomeUnauthorized, 3
	case upstream.KindNotFound:
		if single {
			return OutcomeNotFound, 1
		}
	}
	return OutcomeUnavailable, 2
}
