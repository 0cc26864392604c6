package derive

import "github.com/tuitionhub/tuitionhub-web/internal/models"

// IDSet is a set of entity ids
type IDSet map[string]struct{}

// NewIDSet collects the ids of items
func NewIDSet[T any](items []T, id func(T) string) IDSet {
	set := make(IDSet, len(items))
	for _, item := range items {
		set[id(item)] = struct{}{}
	}
	return set
}

// Has reports whether id is in the set
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// AppliedSet is the set of tuition ids a tutor has applied to
func AppliedSet(applications []models.Application) IDSet {
	return NewIDSet(applications, func(a models.Application) string { return a.TuitionID })
}
