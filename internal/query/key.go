package query

import (
	"sort"
	"strings"
)

// Key identifies a cached read: the resource name plus every parameter the
// result depends on.
type Key struct {
	Resource string
	Params   map[string]string
}

// NewKey builds a key from alternating name/value pairs
func NewKey(resource string, pairs ...string) Key {
	k := Key{Resource: resource}
	if len(pairs) > 0 {
		k.Params = make(map[string]string, len(pairs)/2)
		for i := 0; i+1 < len(pairs); i += 2 {
			k.Params[pairs[i]] = pairs[i+1]
		}
	}
	return k
}

// String renders the key as resource|a=1|b=2 with parameters sorted by name
func (k Key) String() string {
	if len(k.Params) == 0 {
		return k.Resource
	}

	names := make([]string, 0, len(k.Params))
	for name := range k.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(k.Resource)
	for _, name := range names {
		b.WriteByte('|')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(k.Params[name])
	}
	return b.String()
}

// Complete reports whether every parameter has a value. A query with an
// incomplete key should not be enabled.
func (k Key) Complete() bool {
	for _, v := range k.Params {
		if v == "" {
			return false
		}
	}
	return true
}
