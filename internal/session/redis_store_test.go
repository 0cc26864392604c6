package session

import (
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, CookieOptions{TTL: time.Hour}), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, mr := newTestRedisStore(t)

	c, w := newTestContext()
	require.NoError(t, store.Set(c, Session{Identity: "t@example.com", Role: models.RoleTutor, Credential: "tok"}))

	ck := responseCookie(t, w, DefaultCookieName)
	assert.True(t, mr.Exists(redisKey(ck.Value)))
	assert.Equal(t, time.Hour, mr.TTL(redisKey(ck.Value)))

	c2, _ := newTestContext(ck)
	sess, err := store.Get(c2)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "t@example.com", sess.Identity)
	assert.Equal(t, models.RoleTutor, sess.Role)
	assert.Equal(t, "tok", sess.Credential)
}

func TestRedisStore_SetRotatesID(t *testing.T) {
	store, mr := newTestRedisStore(t)

	c, w := newTestContext()
	require.NoError(t, store.Set(c, Session{Identity: "a@example.com", Role: models.RoleAdmin, Credential: "1"}))
	first := responseCookie(t, w, DefaultCookieName)

	c2, w2 := newTestContext(first)
	require.NoError(t, store.Set(c2, Session{Identity: "a@example.com", Role: models.RoleAdmin, Credential: "2"}))
	second := responseCookie(t, w2, DefaultCookieName)

	assert.NotEqual(t, first.Value, second.Value)
	assert.False(t, mr.Exists(redisKey(first.Value)))
	assert.True(t, mr.Exists(redisKey(second.Value)))
}

func TestRedisStore_ExpiredEntryIsAbsent(t *testing.T) {
	store, mr := newTestRedisStore(t)

	c, w := newTestContext()
	require.NoError(t, store.Set(c, Session{Identity: "a@example.com", Role: models.RoleAdmin, Credential: "1"}))
	ck := responseCookie(t, w, DefaultCookieName)

	mr.FastForward(2 * time.Hour)

	c2, w2 := newTestContext(ck)
	sess, err := store.Get(c2)
	assert.NoError(t, err)
	assert.Nil(t, sess)
	assert.Equal(t, -1, responseCookie(t, w2, DefaultCookieName).MaxAge)
}

func TestRedisStore_MalformedID(t *testing.T) {
	store, _ := newTestRedisStore(t)

	c, _ := newTestContext(&http.Cookie{Name: DefaultCookieName, Value: "not-a-uuid"})
	sess, err := store.Get(c)
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.Nil(t, sess)
}

func TestRedisStore_CorruptPayload(t *testing.T) {
	store, mr := newTestRedisStore(t)
	id := "5f0c7a52-3d0e-4b7a-9d7c-2a1f7c1f0b11"
	require.NoError(t, mr.Set(redisKey(id), "{not json"))

	c, _ := newTestContext(&http.Cookie{Name: DefaultCookieName, Value: id})
	sess, err := store.Get(c)
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.Nil(t, sess)
	assert.False(t, mr.Exists(redisKey(id)))
}

func TestRedisStore_OutageIsNotInvalid(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client, CookieOptions{TTL: time.Hour})
	mr.Close()

	c, w := newTestContext(&http.Cookie{Name: DefaultCookieName, Value: "5f0c7a52-3d0e-4b7a-9d7c-2a1f7c1f0b11"})
	sess, err := store.Get(c)

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidSession)
	assert.Nil(t, sess)
	assert.Empty(t, w.Header().Get("Set-Cookie"), "the cookie survives an outage")
}

func TestRedisStore_Clear(t *testing.T) {
	store, mr := newTestRedisStore(t)

	c, w := newTestContext()
	require.NoError(t, store.Set(c, Session{Identity: "a@example.com", Role: models.RoleAdmin, Credential: "1"}))
	ck := responseCookie(t, w, DefaultCookieName)

	c2, w2 := newTestContext(ck)
	require.NoError(t, store.Clear(c2))
	assert.False(t, mr.Exists(redisKey(ck.Value)))
	assert.Equal(t, -1, responseCookie(t, w2, DefaultCookieName).MaxAge)
}
