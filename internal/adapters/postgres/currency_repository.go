package postgres

import (
	"context"
	"errors"
	"fmt"

	"nbrates/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CurrencyRepository struct {
	pool *pgxpool.Pool
}

func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}

// GetOrCreate resolves a currency identity by its numeric code. The unique
// constraint on code plus "on conflict do nothing" keeps this safe even if
// two writers race the lookup.
func (r *CurrencyRepository) GetOrCreate(ctx context.Context, code int, textCode, name string) (domain.Currency, bool, error) {
	cur, err := r.getByCode(ctx, code)
	if err == nil {
		return cur, false, nil
	}
	if !errors.Is(err, domain.ErrCurrencyNotFound) {
		return domain.Currency{}, false, err
	}

	const qInsert = `
		insert into currency (code, text_code, name) values ($1, $2, $3)
		on conflict (code) do nothing
		returning id;
	`
	var id int64
	err = r.pool.QueryRow(ctx, qInsert, code, textCode, name).Scan(&id)
	if err == nil {
		return domain.Currency{ID: id, Code: code, TextCode: textCode, Name: name}, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Currency{}, false, fmt.Errorf("failed to create currency with code %d: %w", code, err)
	}

	// Lost the race, another writer created it in between. Reuse theirs.
	cur, err = r.getByCode(ctx, code)
	if err != nil {
		return domain.Currency{}, false, err
	}
	return cur, false, nil
}

func (r *CurrencyRepository) getByCode(ctx context.Context, code int) (domain.Currency, error) {
	const q = `select id, code, text_code, name from currency where code = $1;`

	var cur domain.Currency
	if err := r.pool.QueryRow(ctx, q, code).Scan(&cur.ID, &cur.Code, &cur.TextCode, &cur.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Currency{}, domain.ErrCurrencyNotFound
		}
		return domain.Currency{}, fmt.Errorf("failed to select currency with code %d: %w", code, err)
	}
	return cur, nil
}

func (r *CurrencyRepository) GetByID(ctx context.Context, id int64) (domain.Currency, error) {
	const q = `select id, code, text_code, name from currency where id = $1;`

	var cur domain.Currency
	if err := r.pool.QueryRow(ctx, q, id).Scan(&cur.ID, &cur.Code, &cur.TextCode, &cur.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Currency{}, domain.ErrCurrencyNotFound
		}
		return domain.Currency{}, fmt.Errorf("failed to select currency %d: %w", id, err)
	}
	return cur, nil
}

func (r *CurrencyRepository) List(ctx context.Context, limit, offset int) ([]domain.Currency, int64, error) {
	const q = `
		select id, code, text_code, name, count(*) over () as total
		from currency
		order by id
		limit $1 offset $2;
	`

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	var total int64
	currencies := make([]domain.Currency, 0, limit)
	for rows.Next() {
		var cur domain.Currency
		if err = rows.Scan(&cur.ID, &cur.Code, &cur.TextCode, &cur.Name, &total); err != nil {
			return nil, 0, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, cur)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating currencies: %w", err)
	}
	if len(currencies) == 0 {
		total, err = r.countAll(ctx)
		if err != nil {
			return nil, 0, err
		}
	}
	return currencies, total, nil
}

func (r *CurrencyRepository) countAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `select count(*) from currency;`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count currencies: %w", err)
	}
	return total, nil
}
