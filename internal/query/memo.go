package query

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Memo caches derived view data by (query key, data version, input
// fingerprint). Cached values are shared and must not be mutated.
type Memo struct {
	cache *cache.Cache
}

// NewMemo creates a memo whose entries expire after ttl
func NewMemo(ttl time.Duration) *Memo {
	return &Memo{cache: cache.New(ttl, ttl*2)}
}

// Derive returns fn(r.Data), computing it only when the data version or the
// fingerprint changed since the last call
func Derive[In, Out any](m *Memo, r Result[In], name, fingerprint string, fn func(In) Out) Out {
	if m == nil || r.Version == 0 {
		return fn(r.Data)
	}

	key := fmt.Sprintf("%s#%s#%d#%s", name, r.Key, r.Version, fingerprint)
	if v, ok := m.cache.Get(key); ok {
		if out, ok := v.(Out); ok {
			return out
		}
	}

	out := fn(r.Data)
	m.cache.SetDefault(key, out)
	return out
}
