package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"nbrates/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type SnapshotRepository struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

type snapshotRow struct {
	CurrencyID  int64           `json:"currency_id"`
	Rate        decimal.Decimal `json:"rate"`
	EffectiveAt time.Time       `json:"effective_at"`
	ValidUntil  time.Time       `json:"valid_until"`
}

// InsertBatch writes the whole cycle's snapshots in one transaction: either
// every row lands or none do.
func (r *SnapshotRepository) InsertBatch(ctx context.Context, snapshots []domain.RateSnapshot) ([]domain.RateSnapshot, error) {
	if len(snapshots) == 0 {
		return nil, nil
	}

	rows := make([]snapshotRow, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, snapshotRow{
			CurrencyID:  s.CurrencyID,
			Rate:        s.Rate,
			EffectiveAt: s.EffectiveAt,
			ValidUntil:  s.ValidUntil,
		})
	}
	payloadJSON, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshots: %w", err)
	}

	const q = `
		insert into history_currency (currency_id, rate, effective_at, valid_until)
		select currency_id, rate, effective_at, valid_until
		from json_to_recordset($1::json)
		  as r(currency_id bigint, rate numeric, effective_at timestamptz, valid_until timestamptz)
		returning id, currency_id, rate, effective_at, valid_until;
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inserted, err := scanSnapshots(ctx, tx, q, json.RawMessage(payloadJSON))
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

func scanSnapshots(ctx context.Context, tx pgx.Tx, q string, args ...any) ([]domain.RateSnapshot, error) {
	rows, err := tx.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshots: %w", err)
	}
	defer rows.Close()

	inserted := make([]domain.RateSnapshot, 0, 64)
	for rows.Next() {
		var s domain.RateSnapshot
		if err = rows.Scan(&s.ID, &s.CurrencyID, &s.Rate, &s.EffectiveAt, &s.ValidUntil); err != nil {
			return nil, fmt.Errorf("failed to scan inserted snapshot: %w", err)
		}
		inserted = append(inserted, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inserted snapshots: %w", err)
	}
	return inserted, nil
}

const historyEntryColumns = `
	hc.id, hc.currency_id, hc.rate, hc.effective_at, hc.valid_until,
	c.id, c.code, c.text_code, c.name,
	count(*) over () as total
`

func (r *SnapshotRepository) ListCurrent(ctx context.Context, at time.Time, limit, offset int) ([]domain.HistoryEntry, int64, error) {
	q := fmt.Sprintf(`
		select %s
		from history_currency hc join currency c on c.id = hc.currency_id
		where hc.effective_at < $1 and hc.valid_until > $1
		order by hc.id
		limit $2 offset $3;
	`, historyEntryColumns)

	return r.listEntries(ctx, q, at, limit, offset)
}

func (r *SnapshotRepository) ListHistory(ctx context.Context, filter domain.HistoryFilter, limit, offset int) ([]domain.HistoryEntry, int64, error) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 5)

	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conds = append(conds, fmt.Sprintf("hc.effective_at >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conds = append(conds, fmt.Sprintf("hc.effective_at <= $%d", len(args)))
	}
	if filter.CurrencyID != nil {
		args = append(args, *filter.CurrencyID)
		conds = append(conds, fmt.Sprintf("hc.currency_id = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "where " + strings.Join(conds, " and ")
	}

	args = append(args, limit)
	limitArg := len(args)
	args = append(args, offset)
	offsetArg := len(args)

	q := fmt.Sprintf(`
		select %s
		from history_currency hc join currency c on c.id = hc.currency_id
		%s
		order by hc.id
		limit $%d offset $%d;
	`, historyEntryColumns, where, limitArg, offsetArg)

	return r.listEntries(ctx, q, args...)
}

func (r *SnapshotRepository) ListCurrentFavorites(ctx context.Context, userID uuid.UUID, at time.Time, limit, offset int) ([]domain.HistoryEntry, int64, error) {
	q := fmt.Sprintf(`
		select %s
		from history_currency hc
		join currency c on c.id = hc.currency_id
		join favorite_currency fc on fc.currency_id = c.id
		where fc.user_id = $1 and hc.effective_at < $2 and hc.valid_until > $2
		order by hc.id
		limit $3 offset $4;
	`, historyEntryColumns)

	return r.listEntries(ctx, q, userID, at, limit, offset)
}

func (r *SnapshotRepository) listEntries(ctx context.Context, q string, args ...any) ([]domain.HistoryEntry, int64, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query history entries: %w", err)
	}
	defer rows.Close()

	var total int64
	entries := make([]domain.HistoryEntry, 0, 64)
	for rows.Next() {
		var e domain.HistoryEntry
		if err = rows.Scan(
			&e.ID, &e.CurrencyID, &e.Rate, &e.EffectiveAt, &e.ValidUntil,
			&e.Currency.ID, &e.Currency.Code, &e.Currency.TextCode, &e.Currency.Name,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating history entries: %w", err)
	}
	return entries, total, nil
}
