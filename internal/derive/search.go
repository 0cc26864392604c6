package derive

import (
	"slices"
	"strings"
)

// Field extracts a string attribute from an item
type Field[T any] func(T) string

// Search keeps items where any field contains text, ignoring case. Empty
// text keeps everything.
func Search[T any](items []T, text string, fields ...Field[T]) []T {
	if text == "" {
		return slices.Clone(items)
	}

	needle := strings.ToLower(text)
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Predicate is one filter selection. A predicate built from an empty value
// is inactive and matches everything.
type Predicate[T any] struct {
	active bool
	match  func(T) bool
}

// Active reports whether the predicate restricts the result
func (p Predicate[T]) Active() bool {
	return p.active
}

// Exact matches items whose field equals value, ignoring case
func Exact[T any](value string, field Field[T]) Predicate[T] {
	return Predicate[T]{
		active: value != "",
		match:  func(item T) bool { return strings.EqualFold(field(item), value) },
	}
}

// Contains matches items whose field contains value, ignoring case
func Contains[T any](value string, field Field[T]) Predicate[T] {
	needle := strings.ToLower(value)
	return Predicate[T]{
		active: value != "",
		match:  func(item T) bool { return strings.Contains(strings.ToLower(field(item)), needle) },
	}
}

// Filter keeps items satisfying every active predicate
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p.active {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return slices.Clone(items)
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, p := range active {
			if !p.match(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}
