package view

import "github.com/tuitionhub/tuitionhub-web/internal/query"

// State is the render state of a view. The set of variants is closed:
// Loading, Unauthorized, NotFound, Unavailable and Ready.
type State interface {
	Name() string
	sealed()
}

// Loading means at least one required read has not settled
type Loading struct{}

// Unauthorized means the session cannot use the view or the backend refused it
type Unauthorized struct {
	Reason string
}

// NotFound means the single entity the view is about does not exist
type NotFound struct {
	Resource string
}

// Unavailable means any other read failure
type Unavailable struct {
	Err error
}

// Ready carries the view data. Empty marks a successful but empty result.
type Ready[T any] struct {
	Data  T
	Empty bool
}

func (Loading) Name() string      { return "loading" }
func (Unauthorized) Name() string { return "unauthorized" }
func (NotFound) Name() string     { return "not_found" }
func (Unavailable) Name() string  { return "unavailable" }
func (Ready[T]) Name() string     { return "ready" }

func (Loading) sealed()      {}
func (Unauthorized) sealed() {}
func (NotFound) sealed()     {}
func (Unavailable) sealed()  {}
func (Ready[T]) sealed()     {}

func (r Ready[T]) payload() (any, bool) { return r.Data, r.Empty }

type readyState interface {
	payload() (any, bool)
}

// NewReady wraps data, flagging it empty when isEmpty says so
func NewReady[T any](data T, isEmpty bool) State {
	return Ready[T]{Data: data, Empty: isEmpty}
}

// FromComposite maps a group outcome to a state. Only a ready outcome calls
// build, so derivations never see unsettled data.
func FromComposite[T any](comp query.Composite, resource string, build func() (T, bool)) State {
	switch comp.Outcome {
	case query.OutcomeLoading:
		return Loading{}
	case query.OutcomeUnauthorized:
		return Unauthorized{Reason: "backend_rejected"}
	case query.OutcomeNotFound:
		return NotFound{Resource: resource}
	case query.OutcomeUnavailable:
		return Unavailable{Err: comp.Err}
	default:
		data, empty := build()
		return NewReady(data, empty)
	}
}
