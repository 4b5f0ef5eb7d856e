package currency

import (
	"context"
	"time"

	"nbrates/internal/adapters"
	"nbrates/internal/domain"

	"github.com/google/uuid"
)

type Service struct {
	currencies adapters.CurrencyRepository
	snapshots  adapters.SnapshotRepository
	favorites  adapters.FavoriteRepository

	now func() time.Time
}

func NewService(currencies adapters.CurrencyRepository, snapshots adapters.SnapshotRepository, favorites adapters.FavoriteRepository) *Service {
	return &Service{
		currencies: currencies,
		snapshots:  snapshots,
		favorites:  favorites,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) ListCurrencies(ctx context.Context, page Page) ([]domain.Currency, int64, error) {
	return s.currencies.List(ctx, page.Limit(), page.Offset())
}

// ListCurrent returns the snapshots whose validity window covers now.
func (s *Service) ListCurrent(ctx context.Context, page Page) ([]domain.HistoryEntry, int64, error) {
	return s.snapshots.ListCurrent(ctx, s.now(), page.Limit(), page.Offset())
}

func (s *Service) ListHistory(ctx context.Context, filter domain.HistoryFilter, page Page) ([]domain.HistoryEntry, int64, error) {
	return s.snapshots.ListHistory(ctx, filter, page.Limit(), page.Offset())
}

// AddFavorite marks a currency as the user's favorite. The currency must
// exist; re-adding an existing favorite succeeds.
func (s *Service) AddFavorite(ctx context.Context, userID uuid.UUID, currencyID int64) error {
	if _, err := s.currencies.GetByID(ctx, currencyID); err != nil {
		return err
	}
	return s.favorites.Add(ctx, userID, currencyID)
}

func (s *Service) RemoveFavorite(ctx context.Context, userID uuid.UUID, currencyID int64) error {
	if _, err := s.currencies.GetByID(ctx, currencyID); err != nil {
		return err
	}
	return s.favorites.Remove(ctx, userID, currencyID)
}

func (s *Service) ListCurrentFavorites(ctx context.Context, userID uuid.UUID, page Page) ([]domain.HistoryEntry, int64, error) {
	return s.snapshots.ListCurrentFavorites(ctx, userID, s.now(), page.Limit(), page.Offset())
}
