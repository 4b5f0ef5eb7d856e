package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency is a durable identity for one national-bank currency.
// Identity metadata is first-write-wins: once created, TextCode and
// Name are never updated from later feed data.
type Currency struct {
	ID       int64  `json:"id"`
	Code     int    `json:"code"`
	TextCode string `json:"text_code"`
	Name     string `json:"name"`
}

// RateSnapshot is one observed rate for a currency. Snapshots are
// append-only; a snapshot is "current" while EffectiveAt < now < ValidUntil.
type RateSnapshot struct {
	ID          int64           `json:"id"`
	CurrencyID  int64           `json:"currency_id"`
	Rate        decimal.Decimal `json:"rate"`
	EffectiveAt time.Time       `json:"effective_at"`
	ValidUntil  time.Time       `json:"valid_until"`
}

// HistoryEntry is a snapshot with its currency embedded, as the read API
// returns it.
type HistoryEntry struct {
	RateSnapshot
	Currency Currency `json:"currency"`
}

type FavoriteCurrency struct {
	UserID     uuid.UUID `json:"user_id"`
	CurrencyID int64     `json:"currency_id"`
}

// HistoryFilter narrows history listings. Nil fields are not applied;
// the date bounds are inclusive and match on EffectiveAt.
type HistoryFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	CurrencyID *int64
}
