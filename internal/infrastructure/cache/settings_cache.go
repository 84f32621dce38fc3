package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erp/addresssync/internal/domain/addresssync"
	"go.uber.org/zap"
)

type settingEntry struct {
	enabled   bool
	expiresAt time.Time
}

// CachedSettingsReader keeps option values for a TTL in front of a slower reader.
// Read errors are never cached.
type CachedSettingsReader struct {
	next   addresssync.SettingsReader
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]settingEntry

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachedSettingsReader wraps next. A zero ttl disables caching.
func NewCachedSettingsReader(next addresssync.SettingsReader, ttl time.Duration, logger *zap.Logger) *CachedSettingsReader {
	return &CachedSettingsReader{
		next:    next,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]settingEntry),
	}
}

// IsEnabled implements addresssync.SettingsReader
func (c *CachedSettingsReader) IsEnabled(ctx context.Context, key string) (bool, error) {
	if c.ttl <= 0 {
		return c.next.IsEnabled(ctx, key)
	}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Before(e.expiresAt) {
		c.hits.Add(1)
		return e.enabled, nil
	}

	c.misses.Add(1)
	enabled, err := c.next.IsEnabled(ctx, key)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	c.entries[key] = settingEntry{enabled: enabled, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	c.logger.Debug("setting cached", zap.String("key", key), zap.Bool("enabled", enabled))
	return enabled, nil
}

// Invalidate drops a cached key so the next read goes to the backing store
func (c *CachedSettingsReader) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Stats returns cache hits and misses
func (c *CachedSettingsReader) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

var _ addresssync.SettingsReader = (*CachedSettingsReader)(nil)
