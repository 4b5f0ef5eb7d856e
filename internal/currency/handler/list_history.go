package handler

import (
	"net/http"
	"strconv"
	"time"

	"nbrates/internal/currency"
	"nbrates/internal/domain"

	"github.com/sirupsen/logrus"
)

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := currency.PageFromQuery(query)

	var filter domain.HistoryFilter
	if raw := query.Get("date_from"); raw != "" {
		t, err := parseFilterTime(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date_from")
			return
		}
		filter.DateFrom = &t
	}
	if raw := query.Get("date_to"); raw != "" {
		t, err := parseFilterTime(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date_to")
			return
		}
		filter.DateTo = &t
	}
	if raw := query.Get("currency_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "invalid currency_id")
			return
		}
		filter.CurrencyID = &id
	}

	entries, total, err := h.service.ListHistory(r.Context(), filter, page)
	if err != nil {
		msg := "ups, couldn't list rate history this time"
		logrus.WithError(err).WithField("handler", "ListHistory").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, currency.NewEnvelope(page, total, entries))
}

// parseFilterTime accepts RFC3339 timestamps and bare dates.
func parseFilterTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
