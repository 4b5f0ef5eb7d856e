package ingest

import (
	"context"
	"fmt"

	"nbrates/internal/adapters"
	"nbrates/internal/domain"
)

// Resolver maps a feed record's numeric code to a durable currency
// identity, creating one on first sight. Creation commits immediately and
// independently of the snapshot batch, so a crash between the two leaves at
// worst an orphan identity that the next run reuses.
type Resolver struct {
	currencies adapters.CurrencyRepository
	cache      adapters.CurrencyCache
}

func NewResolver(currencies adapters.CurrencyRepository, cache adapters.CurrencyCache) *Resolver {
	return &Resolver{currencies: currencies, cache: cache}
}

// Resolve returns the identity for the record's numeric code and whether it
// was created by this call. Metadata of an existing identity is never
// updated from the record.
func (r *Resolver) Resolve(ctx context.Context, rec Record) (domain.Currency, bool, error) {
	if cur, ok := r.cache.Get(rec.Code); ok {
		return cur, false, nil
	}

	cur, created, err := r.currencies.GetOrCreate(ctx, rec.Code, rec.TextCode, rec.Name)
	if err != nil {
		return domain.Currency{}, false, fmt.Errorf("failed to resolve currency code %d: %w", rec.Code, err)
	}

	r.cache.Set(cur)
	return cur, created, nil
}
