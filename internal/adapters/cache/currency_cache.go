package cache

import (
	"fmt"
	"strconv"

	"nbrates/internal/domain"

	"github.com/dgraph-io/ristretto"
)

type RistrettoCurrencyCache struct {
	cache *ristretto.Cache
}

func NewCurrencyCache(maxItems int64) (*RistrettoCurrencyCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create currency cache failed: %w", err)
	}
	return &RistrettoCurrencyCache{cache: c}, nil
}

func (c *RistrettoCurrencyCache) Get(code int) (domain.Currency, bool) {
	if v, ok := c.cache.Get(toKey(code)); ok {
		cur, ok := v.(domain.Currency)
		return cur, ok
	}
	return domain.Currency{}, false
}

func (c *RistrettoCurrencyCache) Set(cur domain.Currency) {
	c.cache.Set(toKey(cur.Code), cur, 1)
	// Resolver reads immediately after a miss, don't leave the write buffered.
	c.cache.Wait()
}

func (c *RistrettoCurrencyCache) Close() { c.cache.Close() }

func toKey(code int) string { return strconv.Itoa(code) }
