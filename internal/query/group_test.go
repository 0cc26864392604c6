package query

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_AllReady(t *testing.T) {
	client := NewClient(time.Minute, 0)
	g := NewGroup(client.Scope("a"), time.Second)

	stats := Add(g, NewKey("admin:stats"), client.Options(), func(context.Context) (int, error) { return 3, nil })
	txs := Add(g, NewKey("admin:transactions"), client.Options(), func(context.Context) ([]int, error) { return []int{1, 2}, nil })

	comp := g.Wait(context.Background())

	assert.Equal(t, OutcomeReady, comp.Outcome)
	assert.Equal(t, 3, stats.Result().Data)
	assert.Equal(t, []int{1, 2}, txs.Result().Data)
}

func TestGroup_RunsConcurrently(t *testing.T) {
	client := NewClient(time.Minute, 0)
	g := NewGroup(client.Scope("a"), time.Second)
	slow := func(context.Context) (int, error) {
		time.Sleep(150 * time.Millisecond)
		return 1, nil
	}

	Add(g, NewKey("a"), client.Options(), slow)
	Add(g, NewKey("b"), client.Options(), slow)
	Add(g, NewKey("c"), client.Options(), slow)

	start := time.Now()
	comp := g.Wait(context.Background())

	assert.Equal(t, OutcomeReady, comp.Outcome)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestGroup_DeadlineRendersLoadingAndFillsCache(t *testing.T) {
	client := NewClient(time.Minute, 0)
	scope := client.Scope("a")
	key := NewKey("tuitions:all")
	var calls atomic.Int32
	release := make(chan struct{})

	g := NewGroup(scope, 50*time.Millisecond)
	h := Add(g, key, client.Options(), func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 9, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	comp := g.Wait(ctx)
	cancel()

	assert.Equal(t, OutcomeLoading, comp.Outcome)
	assert.Equal(t, StatusLoading, h.Result().Status)

	close(release)
	require.Eventually(t, func() bool {
		_, ok := scope.lookup(key)
		return ok
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, StatusLoading, h.Result().Status)

	next := NewGroup(scope, 50*time.Millisecond)
	h2 := Add(next, key, client.Options(), func(context.Context) (int, error) {
		calls.Add(1)
		return 0, nil
	})
	assert.Equal(t, OutcomeReady, next.Wait(context.Background()).Outcome)
	assert.Equal(t, 9, h2.Result().Data)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGroup_DisabledQueriesAreIgnored(t *testing.T) {
	client := NewClient(time.Minute, 0)
	g := NewGroup(client.Scope("a"), time.Second)
	var calls atomic.Int32

	h := Add(g, NewKey("tuitions:mine", "email", ""), Options{Enabled: false}, counting(&calls, 1, nil))

	assert.Equal(t, OutcomeReady, g.Wait(context.Background()).Outcome)
	assert.Equal(t, StatusIdle, h.Result().Status)
	assert.Zero(t, calls.Load())
}

func TestGroup_ErrorPrecedence(t *testing.T) {
	single := Options{StaleTime: time.Minute, Enabled: true, Single: true}
	list := Options{StaleTime: time.Minute, Enabled: true}

	tests := []struct {
		name  string
		setup func(g *Group)
		want  Outcome
	}{
		{
			name: "unauthorized beats unavailable",
			setup: func(g *Group) {
				Add(g, NewKey("a"), list, counting(new(atomic.Int32), 0, apiErr(http.StatusInternalServerError)))
				Add(g, NewKey("b"), list, counting(new(atomic.Int32), 0, apiErr(http.StatusForbidden)))
			},
			want: OutcomeUnauthorized,
		},
		{
			name: "unavailable beats not found",
			setup: func(g *Group) {
				Add(g, NewKey("a"), single, counting(new(atomic.Int32), 0, apiErr(http.StatusNotFound)))
				Add(g, NewKey("b"), list, counting(new(atomic.Int32), 0, apiErr(http.StatusBadGateway)))
			},
			want: OutcomeUnavailable,
		},
		{
			name: "not found on single-entity read",
			setup: func(g *Group) {
				Add(g, NewKey("a"), single, counting(new(atomic.Int32), 0, apiErr(http.StatusNotFound)))
				Add(g, NewKey("b"), list, counting(new(atomic.Int32), 1, nil))
			},
			want: OutcomeNotFound,
		},
		{
			name: "not found on a list read is a failure",
			setup: func(g *Group) {
				Add(g, NewKey("a"), list, counting(new(atomic.Int32), 0, apiErr(http.StatusNotFound)))
			},
			want: OutcomeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(time.Minute, 0)
			g := NewGroup(client.Scope("a"), time.Second)
			tt.setup(g)

			comp := g.Wait(context.Background())
			assert.Equal(t, tt.want, comp.Outcome)
			assert.Error(t, comp.Err)
		})
	}
}

func TestGroup_LoadingBeatsErrors(t *testing.T) {
	client := NewClient(time.Minute, 0)
	g := NewGroup(client.Scope("a"), 50*time.Millisecond)
	block := make(chan struct{})
	defer close(block)

	Add(g, NewKey("a"), client.Options(), counting(new(atomic.Int32), 0, apiErr(http.StatusUnauthorized)))
	Add(g, NewKey("b"), client.Options(), func(context.Context) (int, error) {
		<-block
		return 0, nil
	})

	assert.Equal(t, OutcomeLoading, g.Wait(context.Background()).Outcome)
}
