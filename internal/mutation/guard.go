package mutation

import (
	"errors"
	"strings"
	"sync"
)

// ErrInFlight is returned when the same action on the same entity is
// already running for the session
var ErrInFlight = errors.New("action already in progress")

// Guard allows at most one in-flight mutation per action instance
type Guard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewGuard creates an empty guard
func NewGuard() *Guard {
	return &Guard{inflight: make(map[string]struct{})}
}

// InstanceKey names one action instance: who, what and on which entity
func InstanceKey(scope, action, entity string) string {
	return strings.Join([]string{scope, action, entity}, "|")
}

// Acquire claims key. The returned release must be called once the
// mutation settles.
func (g *Guard) Acquire(key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inflight[key]; busy {
		return nil, ErrInFlight
	}
	g.inflight[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inflight, key)
			g.mu.Unlock()
		})
	}, nil
}

// busy reports whether key is currently claimed
func (g *Guard) busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.inflight[key]
	return busy
}
