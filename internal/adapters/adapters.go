package adapters

import (
	"context"
	"time"

	"nbrates/internal/domain"

	"github.com/google/uuid"
)

// RateSource fetches the raw national-bank feed payload. A transport-level
// failure is returned as an error so callers can tell "error" from
// "empty feed"; the payload is never partially populated on error.
type RateSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type CurrencyRepository interface {
	// GetOrCreate looks a currency up by its numeric code and creates it
	// from textCode/name if absent. The returned bool reports creation.
	GetOrCreate(ctx context.Context, code int, textCode, name string) (domain.Currency, bool, error)
	GetByID(ctx context.Context, id int64) (domain.Currency, error)
	List(ctx context.Context, limit, offset int) ([]domain.Currency, int64, error)
}

type SnapshotRepository interface {
	// InsertBatch persists all snapshots in a single transaction and
	// returns them with assigned ids.
	InsertBatch(ctx context.Context, snapshots []domain.RateSnapshot) ([]domain.RateSnapshot, error)
	ListCurrent(ctx context.Context, at time.Time, limit, offset int) ([]domain.HistoryEntry, int64, error)
	ListHistory(ctx context.Context, filter domain.HistoryFilter, limit, offset int) ([]domain.HistoryEntry, int64, error)
	ListCurrentFavorites(ctx context.Context, userID uuid.UUID, at time.Time, limit, offset int) ([]domain.HistoryEntry, int64, error)
}

type FavoriteRepository interface {
	Add(ctx context.Context, userID uuid.UUID, currencyID int64) error
	Remove(ctx context.Context, userID uuid.UUID, currencyID int64) error
}

// CurrencyCache keeps resolved identities keyed by numeric code so repeat
// ingestion cycles skip the lookup query.
type CurrencyCache interface {
	Get(code int) (domain.Currency, bool)
	Set(c domain.Currency)
	Close()
}
