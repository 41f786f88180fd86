package memory

import (
	"time"

	"ai-chat-history-be/pkg/preview"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// PreviewCache holds one Merger per user for the lifetime of their chat-list
// view. Entries expire on TTL so abandoned views rebuild from scratch on the
// next visit.
type PreviewCache struct {
	cache *cache.Cache
	loc   *time.Location
}

func NewPreviewCache(ttl time.Duration, loc *time.Location) *PreviewCache {
	return &PreviewCache{
		cache: cache.New(ttl, 10*time.Minute),
		loc:   loc,
	}
}

func (c *PreviewCache) GetOrCreate(userId uuid.UUID) *preview.Merger {
	key := userId.String()
	if x, found := c.cache.Get(key); found {
		return x.(*preview.Merger)
	}
	m := preview.NewMerger(c.loc)
	if err := c.cache.Add(key, m, cache.DefaultExpiration); err != nil {
		// Lost the insert race; use whoever won.
		if x, found := c.cache.Get(key); found {
			return x.(*preview.Merger)
		}
	}
	return m
}

// Invalidate drops a user's accumulated merge state after a mutation.
func (c *PreviewCache) Invalidate(userId uuid.UUID) {
	c.cache.Delete(userId.String())
}
