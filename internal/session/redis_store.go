package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tuitionhub/tuitionhub-web/config"
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
	"go.uber.org/zap"
)

const redisKeyPrefix = "tuitionhub:session:"

// RedisStore keeps the session tuple in Redis behind an opaque cookie id
type RedisStore struct {
	client *redis.Client
	cookie CookieOptions
	now    func() time.Time
}

var _ Store = (*RedisStore)(nil)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(client *redis.Client, cookie CookieOptions) *RedisStore {
	return &RedisStore{client: client, cookie: cookie, now: time.Now}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisStore) cookieID(c *gin.Context) (string, bool, error) {
	raw, err := c.Cookie(s.cookie.name())
	if err != nil || raw == "" {
		return "", false, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("%w: malformed session id", ErrInvalidSession)
	}
	return id.String(), true, nil
}

func (s *RedisStore) Get(c *gin.Context) (*Session, error) {
	id, ok, err := s.cookieID(c)
	if err != nil {
		clearCookie(c, s.cookie)
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	raw, err := s.client.Get(c.Request.Context(), redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired or logged out elsewhere
		clearCookie(c, s.cookie)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		logger.Warn("Dropping unreadable session", zap.String("session_id", id), zap.Error(err))
		_ = s.client.Del(c.Request.Context(), redisKey(id)).Err()
		clearCookie(c, s.cookie)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	return &sess, nil
}

// Set always issues a fresh id and drops the previous one
func (s *RedisStore) Set(c *gin.Context, sess Session) error {
	ctx := c.Request.Context()

	if oldID, ok, _ := s.cookieID(c); ok {
		if err := s.client.Del(ctx, redisKey(oldID)).Err(); err != nil {
			logger.Warn("Failed to drop previous session", zap.Error(err))
		}
	}

	now := s.now()
	sess.IssuedAt = now
	sess.ExpiresAt = now.Add(s.cookie.TTL)

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	id := uuid.NewString()
	if err := s.client.Set(ctx, redisKey(id), payload, s.cookie.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	setCookie(c, s.cookie, id)
	return nil
}

func (s *RedisStore) Clear(c *gin.Context) error {
	id, ok, _ := s.cookieID(c)
	clearCookie(c, s.cookie)
	if !ok {
		return nil
	}
	if err := s.client.Del(c.Request.Context(), redisKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
