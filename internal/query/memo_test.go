package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDerive_RecomputesOnlyOnChange(t *testing.T) {
	client := NewClient(time.Minute, 0)
	scope := client.Scope("a")
	memo := NewMemo(time.Minute)
	key := NewKey("tuitions:all")
	computed := 0
	count := func(items []int) int {
		computed++
		return len(items)
	}

	r := Fetch(context.Background(), scope, key, client.Options(), func(context.Context) ([]int, error) { return []int{1, 2}, nil })

	assert.Equal(t, 2, Derive(memo, r, "count", "q=", count))
	assert.Equal(t, 2, Derive(memo, r, "count", "q=", count))
	assert.Equal(t, 1, computed)

	Derive(memo, r, "count", "q=math", count)
	assert.Equal(t, 2, computed)

	scope.Invalidate(key)
	r2 := Fetch(context.Background(), scope, key, client.Options(), func(context.Context) ([]int, error) { return []int{1, 2, 3}, nil })
	assert.Equal(t, 3, Derive(memo, r2, "count", "q=", count))
	assert.Equal(t, 3, computed)
}

func TestDerive_UnversionedResultIsNotCached(t *testing.T) {
	memo := NewMemo(time.Minute)
	calls := 0
	fn := func(int) int { calls++; return calls }

	Derive(memo, Result[int]{}, "x", "", fn)
	Derive(memo, Result[int]{}, "x", "", fn)
	assert.Equal(t, 2, calls)
}
