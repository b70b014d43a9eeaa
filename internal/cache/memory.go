package cache

import (
	"context"
	"sync"
	"time"

	"github.com/codewithudo/quidax-market-summary/internal/models"
	"github.com/codewithudo/quidax-market-summary/internal/services"
)

var _ services.SummaryCache = (*MemoryCache)(nil)

// MemoryCache guarda los resúmenes en memoria del proceso durante ttl
type MemoryCache struct {
	ttl       time.Duration
	mutex     sync.RWMutex
	summaries []models.MarketSummary
	timestamp time.Time
	now       func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl: ttl,
		now: time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context) ([]models.MarketSummary, bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.summaries == nil || c.now().Sub(c.timestamp) >= c.ttl {
		return nil, false, nil
	}

	out := make([]models.MarketSummary, len(c.summaries))
	copy(out, c.summaries)
	return out, true, nil
}

func (c *MemoryCache) Set(_ context.Context, summaries []models.MarketSummary) error {
	stored := make([]models.MarketSummary, len(summaries))
	copy(stored, summaries)

	c.mutex.Lock()
	c.summaries = stored
	c.timestamp = c.now()
	c.mutex.Unlock()

	return nil
}

func (c *MemoryCache) Ping(_ context.Context) string {
	return "up"
}
