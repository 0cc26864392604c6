package query

import (
	"context"
	"fmt"

	"github.com/tuitionhub/tuitionhub-web/internal/upstream"
	"github.com/tuitionhub/tuitionhub-web/pkg/metrics"
	"github.com/tuitionhub/tuitionhub-web/pkg/retry"
)

// Status is the settlement state of one read
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	default:
		return "error"
	}
}

// Result is the outcome of a read
type Result[T any] struct {
	Key       Key
	Status    Status
	Data      T
	Err       error
	Version   uint64
	FromCache bool
}

// Settled reports whether the read finished, either way
func (r Result[T]) Settled() bool {
	return r.Status == StatusSuccess || r.Status == StatusError
}

// Fetcher loads a resource from the backend
type Fetcher[T any] func(ctx context.Context) (T, error)

// Fetch returns a fresh cached value or loads one. A disabled read or one
// with an incomplete key stays idle. Concurrent loads of the
// same key in a scope share one backend call. Only unavailable-kind failures
// are retried and failures are never cached.
func Fetch[T any](ctx context.Context, s *Scope, key Key, opts Options, fn Fetcher[T]) Result[T] {
	res := Result[T]{Key: key}
	if !opts.Enabled || !key.Complete() {
		res.Status = StatusIdle
		return res
	}
	if opts.StaleTime <= 0 {
		opts.StaleTime = s.client.defaults.StaleTime
	}

	if e, ok := s.lookup(key); ok && s.fresh(e, opts.StaleTime) {
		if data, ok := e.value.(T); ok {
			metrics.CacheHits.WithLabelValues(key.Resource).Inc()
			res.Status = StatusSuccess
			res.Data = data
			res.Version = e.version
			res.FromCache = true
			return res
		}
	}
	metrics.CacheMisses.WithLabelValues(key.Resource).Inc()

	retries := opts.Retry
	if retries > MaxRetry {
		retries = MaxRetry
	}
	cfg := retry.ReadConfig(retries, func(err error) bool {
		return upstream.KindOf(err) == upstream.KindUnavailable
	})
	cfg.OnRetry = func(int, error) {
		metrics.QueryRetries.WithLabelValues(key.Resource).Inc()
	}

	// A read that starts after an invalidation must not join a load that
	// started before it, so the flight is keyed by generation too. The load
	// is shared, so one caller going away does not cancel it for the rest.
	gen := s.generation(key.Resource)
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.client.flight.Do(fmt.Sprintf("%s#%d", s.cacheKey(key), gen), func() (any, error) {
		data, err := retry.DoWithResult(flightCtx, cfg, key.Resource, func() (T, error) {
			return fn(flightCtx)
		})
		if err != nil {
			return nil, err
		}
		return s.store(key, data, gen), nil
	})
	if err != nil {
		res.Status = StatusError
		res.Err = err
		return res
	}

	e, ok := v.(entry)
	if !ok {
		res.Status = StatusError
		res.Err = fmt.Errorf("query %s: unexpected cache value %T", key, v)
		return res
	}
	data, ok := e.value.(T)
	if !ok {
		res.Status = StatusError
		res.Err = fmt.Errorf("query %s: cached %T is not the requested type", key, e.value)
		return res
	}

	res.Status = StatusSuccess
	res.Data = data
	res.Version = e.version
	return res
}
