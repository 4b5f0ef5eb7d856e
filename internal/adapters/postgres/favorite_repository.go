package postgres

import (
	"context"
	"fmt"

	"nbrates/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// Add marks a currency as the user's favorite. Adding the same favorite
// twice is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, userID uuid.UUID, currencyID int64) error {
	const q = `
		insert into favorite_currency (user_id, currency_id) values ($1, $2)
		on conflict (user_id, currency_id) do nothing;
	`
	if _, err := r.pool.Exec(ctx, q, userID, currencyID); err != nil {
		return fmt.Errorf("failed to add favorite currency %d: %w", currencyID, err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID uuid.UUID, currencyID int64) error {
	const q = `delete from favorite_currency where user_id = $1 and currency_id = $2;`

	tag, err := r.pool.Exec(ctx, q, userID, currencyID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite currency %d: %w", currencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
