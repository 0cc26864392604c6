// Package derive holds the pure transformations views apply to fetched
// data: search, filter, sort, pagination, aggregation and membership.
// Every function returns a new slice and leaves its input untouched.
package derive
