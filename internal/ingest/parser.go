package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// feedDateLayout is the date format the national-bank feed uses.
const feedDateLayout = "02.01.2006"

// ParseError means the feed payload is malformed or a record failed schema
// validation. It is fatal for the ingestion cycle.
type ParseError struct {
	msg   string
	cause error
}

func (e *ParseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("parse feed payload: %s: %v", e.msg, e.cause)
	}
	return fmt.Sprintf("parse feed payload: %s", e.msg)
}

func (e *ParseError) Unwrap() error { return e.cause }

func newParseError(msg string, cause error) *ParseError {
	return &ParseError{msg: msg, cause: cause}
}

// Record is one parsed feed entry. CurrencyID stays zero until identity
// resolution attaches it.
type Record struct {
	Code       int
	Rate       decimal.Decimal
	TextCode   string
	Name       string
	ObservedAt time.Time
	CurrencyID int64
}

// feedItem mirrors the raw feed object. Pointers distinguish missing
// required fields from zero values; the date arrives as a string and is
// reparsed separately.
type feedItem struct {
	Code         *int             `json:"r030"`
	Rate         *decimal.Decimal `json:"rate"`
	TextCode     string           `json:"cc"`
	Name         string           `json:"txt"`
	ExchangeDate string           `json:"exchangedate"`
}

// ParsePayload decodes the feed's JSON array into records. It is pure and
// deterministic: no I/O, same bytes in, same records out.
func ParsePayload(payload []byte) ([]Record, error) {
	var items []feedItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, newParseError("invalid JSON", err)
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		rec, err := item.toRecord()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (item feedItem) toRecord() (Record, error) {
	if item.Code == nil {
		return Record{}, newParseError("missing numeric code (r030)", nil)
	}
	if item.Rate == nil {
		return Record{}, newParseError("missing rate", nil)
	}
	if item.TextCode == "" {
		return Record{}, newParseError("missing short code (cc)", nil)
	}

	rec := Record{
		Code:     *item.Code,
		Rate:     *item.Rate,
		TextCode: item.TextCode,
		Name:     item.Name,
	}

	if item.ExchangeDate != "" {
		observedAt, err := time.Parse(feedDateLayout, item.ExchangeDate)
		if err != nil {
			return Record{}, newParseError(fmt.Sprintf("unparseable exchangedate %q", item.ExchangeDate), err)
		}
		rec.ObservedAt = observedAt
	}
	return rec, nil
}
