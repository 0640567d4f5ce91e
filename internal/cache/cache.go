// Package cache keeps generated answers in a shared key/value store so
// repeated questions skip the upstream call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gofiber/storage/redis/v3"
	"go.uber.org/zap"

	"lawdesk/internal/validation"
)

const keyPrefix = "lawdesk:answer:"

// Store is the subset of a Fiber storage driver the cache needs.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// AnswerCache maps normalized questions to generated HTML answers.
type AnswerCache struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a cache over store. Entries expire after ttl; zero keeps them forever.
func New(store Store, ttl time.Duration, logger *zap.Logger) *AnswerCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnswerCache{store: store, ttl: ttl, logger: logger}
}

// NewRedisStorage connects the Fiber Redis storage driver to url.
// The same storage backs the rate limiter.
func NewRedisStorage(url string) *redis.Storage {
	return redis.New(redis.Config{
		URL:   url,
		Reset: false,
	})
}

// Lookup returns the cached answer for question. Store errors count as a miss.
func (c *AnswerCache) Lookup(_ context.Context, question string) (string, bool) {
	val, err := c.store.Get(Key(question))
	if err != nil {
		c.logger.Warn("answer cache lookup failed", zap.Error(err))
		return "", false
	}
	if len(val) == 0 {
		return "", false
	}
	return string(val), true
}

// Store saves answer for question. Failures are logged and otherwise ignored.
func (c *AnswerCache) Store(_ context.Context, question, answer string) {
	if err := c.store.Set(Key(question), []byte(answer), c.ttl); err != nil {
		c.logger.Warn("answer cache store failed", zap.Error(err))
	}
}

// Key derives the storage key from the trimmed, lowercased question.
func Key(question string) string {
	normalized := validation.NormalizeQuery(strings.TrimSpace(question))
	sum := sha256.Sum256([]byte(normalized))
	return keyPrefix + hex.EncodeToString(sum[:])
}
