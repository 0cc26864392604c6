package derive

import "time"

// Bucket is one month of a trailing window
type Bucket struct {
	Start time.Time
	Total float64
}

// Sum adds up amount over items
func Sum[T any](items []T, amount func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += amount(item)
	}
	return total
}

// MonthlyBuckets totals amount per calendar month over the trailing window
// of months ending with now's month. Buckets are oldest first and months
// without items are zero. Items outside the window are ignored.
func MonthlyBuckets[T any](items []T, now time.Time, months int, when func(T) time.Time, amount func(T) float64) []Bucket {
	if months <= 0 {
		return []Bucket{}
	}

	loc := now.Location()
	first := time.Date(now.Year(), now.Month()-time.Month(months-1), 1, 0, 0, 0, 0, loc)

	buckets := make([]Bucket, months)
	for i := range buckets {
		buckets[i].Start = first.AddDate(0, i, 0)
	}

	for _, item := range items {
		t := when(item).In(loc)
		idx := (t.Year()-first.Year())*12 + int(t.Month()) - int(first.Month())
		if idx >= 0 && idx < months {
			buckets[idx].Total += amount(item)
		}
	}
	return buckets
}

// CountBy counts items per key
func CountBy[T any, K comparable](items []T, key func(T) K) map[K]int {
	out := make(map[K]int)
	for _, item := range items {
		out[key(item)]++
	}
	return out
}

// GroupBy groups items by key, keeping the order in which keys first appear
func GroupBy[T any, K comparable](items []T, key func(T) K) ([]K, map[K][]T) {
	order := []K{}
	groups := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], item)
	}
	return order, groups
}
