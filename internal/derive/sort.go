package derive

import (
	"cmp"
	"slices"
	"time"
)

// Direction is a sort order
type Direction int

const (
	Asc Direction = iota
	Desc
)

// SortKey orders items. The zero SortKey keeps input order.
type SortKey[T any] struct {
	compare func(a, b T) int
}

// ByTime orders items by a timestamp
func ByTime[T any](get func(T) time.Time, dir Direction) SortKey[T] {
	return SortKey[T]{compare: func(a, b T) int {
		c := get(a).Compare(get(b))
		if dir == Desc {
			return -c
		}
		return c
	}}
}

// ByNumber orders items by a numeric attribute
func ByNumber[T any](get func(T) float64, dir Direction) SortKey[T] {
	return SortKey[T]{compare: func(a, b T) int {
		c := cmp.Compare(get(a), get(b))
		if dir == Desc {
			return -c
		}
		return c
	}}
}

// SortBy returns a stably sorted copy of items
func SortBy[T any](items []T, key SortKey[T]) []T {
	out := slices.Clone(items)
	if key.compare != nil {
		slices.SortStableFunc(out, key.compare)
	}
	return out
}
