package derive

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Inputs are the user-controlled parameters of a list view
type Inputs struct {
	Search  string
	Filters map[string]string
	Sort    string
	Page    int
	// Seen is the fingerprint the client last rendered with
	Seen string
}

// Fingerprint identifies everything but the page. Two inputs with the same
// fingerprint produce the same derived result.
func (in Inputs) Fingerprint() string {
	names := make([]string, 0, len(in.Filters))
	for name, value := range in.Filters {
		if value != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(in.Search)
	b.WriteByte(0)
	b.WriteString(in.Sort)
	for _, name := range names {
		b.WriteByte(0)
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(in.Filters[name])
	}

	return strconv.FormatUint(xxhash.Sum64String(b.String()), 36)
}

// ResolvePage returns the page to show: page 1 whenever search, filters or
// sort differ from what the client last saw.
func (in Inputs) ResolvePage() int {
	if in.Page < 1 || in.Seen != in.Fingerprint() {
		return 1
	}
	return in.Page
}

// Filter returns a single filter value
func (in Inputs) Filter(name string) string {
	return in.Filters[name]
}
