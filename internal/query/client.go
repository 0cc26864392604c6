package query

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
	"github.com/tuitionhub/tuitionhub-web/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultStaleTime is how long a fetched result counts as fresh
	DefaultStaleTime = 5 * time.Minute
	// MaxRetry caps automatic retries of a failed read
	MaxRetry = 1

	scopeSeparator = "\x00"
	// Entries linger past their stale time so invalidation can find them;
	// nothing is ever served once stale.
	retentionFactor = 3
)

// Options tune a single read
type Options struct {
	StaleTime time.Duration
	Retry     int
	Enabled   bool
	// Single marks a read of exactly one entity by key. Only such reads
	// surface a 404 as not-found; elsewhere a 404 is a service failure.
	Single bool
}

type entry struct {
	value     any
	version   uint64
	gen       uint64
	fetchedAt time.Time
	stale     bool
}

// Client is the process-wide read cache. Every session reads through its
// own Scope so results are never shared between sessions.
type Client struct {
	cache    *cache.Cache
	flight   singleflight.Group
	defaults Options
	now      func() time.Time

	mu          sync.Mutex
	generations map[string]uint64
	versions    atomic.Uint64
}

// NewClient creates a cache with the given defaults
func NewClient(staleTime time.Duration, retry int) *Client {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	if retry < 0 {
		retry = 0
	}
	if retry > MaxRetry {
		retry = MaxRetry
	}

	return &Client{
		cache:       cache.New(staleTime*retentionFactor, staleTime),
		defaults:    Options{StaleTime: staleTime, Retry: retry, Enabled: true},
		now:         time.Now,
		generations: make(map[string]uint64),
	}
}

// Options returns the default read options
func (c *Client) Options() Options {
	return c.defaults
}

// Scope returns the cache namespace of one session
func (c *Client) Scope(id string) *Scope {
	return &Scope{client: c, id: id}
}

// Drop forgets everything cached for a session
func (c *Client) Drop(id string) {
	prefix := id + scopeSeparator

	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
	for k := range c.generations {
		if strings.HasPrefix(k, prefix) {
			delete(c.generations, k)
		}
	}
	logger.Debug("Dropped query scope", zap.String("scope", id))
}

// Scope is a per-session view of the cache
type Scope struct {
	client *Client
	id     string
}

// ID returns the scope's session identifier
func (s *Scope) ID() string {
	return s.id
}

func (s *Scope) cacheKey(key Key) string {
	return s.id + scopeSeparator + key.String()
}

func (s *Scope) generationKey(resource string) string {
	return s.id + scopeSeparator + resource
}

func (s *Scope) generation(resource string) uint64 {
	s.client.mu.Lock()
	defer s.client.mu.Unlock()
	return s.client.generations[s.generationKey(resource)]
}

func (s *Scope) lookup(key Key) (entry, bool) {
	raw, ok := s.client.cache.Get(s.cacheKey(key))
	if !ok {
		return entry{}, false
	}
	e, ok := raw.(entry)
	return e, ok
}

func (s *Scope) fresh(e entry, staleTime time.Duration) bool {
	return !e.stale && s.client.now().Sub(e.fetchedAt) < staleTime
}

// store saves a fetched value. If the resource was invalidated after the
// fetch started (gen no longer current) the value is stored already stale,
// and never over an entry loaded at a later generation.
func (s *Scope) store(key Key, value any, gen uint64) entry {
	s.client.mu.Lock()
	defer s.client.mu.Unlock()

	current := s.client.generations[s.generationKey(key.Resource)]
	e := entry{
		value:     value,
		version:   s.client.versions.Add(1),
		gen:       gen,
		fetchedAt: s.client.now(),
		stale:     current != gen,
	}
	if e.stale {
		if raw, ok := s.client.cache.Get(s.cacheKey(key)); ok {
			if prev, ok := raw.(entry); ok && prev.gen > gen {
				return e
			}
		}
	}
	s.client.cache.SetDefault(s.cacheKey(key), e)
	return e
}

// Invalidate marks the given keys stale so their next read refetches
func (s *Scope) Invalidate(keys ...Key) {
	s.client.mu.Lock()
	defer s.client.mu.Unlock()

	for _, key := range keys {
		s.client.generations[s.generationKey(key.Resource)]++
		s.markStaleLocked(s.cacheKey(key))
		metrics.CacheInvalidations.WithLabelValues(key.Resource).Inc()
	}
}

// InvalidateResource marks every cached key of the resources stale,
// whatever their parameters
func (s *Scope) InvalidateResource(resources ...string) {
	s.client.mu.Lock()
	defer s.client.mu.Unlock()

	items := s.client.cache.Items()
	for _, resource := range resources {
		s.client.generations[s.generationKey(resource)]++

		exact := s.id + scopeSeparator + resource
		withParams := exact + "|"
		for k := range items {
			if k == exact || strings.HasPrefix(k, withParams) {
				s.markStaleLocked(k)
			}
		}
		metrics.CacheInvalidations.WithLabelValues(resource).Inc()
	}
}

func (s *Scope) markStaleLocked(cacheKey string) {
	raw, ok := s.client.cache.Get(cacheKey)
	if !ok {
		return
	}
	e, ok := raw.(entry)
	if !ok {
		return
	}
	e.stale = true
	s.client.cache.SetDefault(cacheKey, e)
}
