package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"nbrates/internal/currency"
	"nbrates/internal/domain"
	"nbrates/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type AddFavoriteRequest struct {
	CurrencyID int64 `json:"currency_id"`
}

func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 256)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req AddFavoriteRequest
	if err := dec.Decode(&req); err != nil || req.CurrencyID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.AddFavorite(r.Context(), userID, req.CurrencyID); err != nil {
		if errors.Is(err, domain.ErrCurrencyNotFound) {
			writeError(w, http.StatusNotFound, "currency not found")
			return
		}
		msg := "failed to add favorite currency"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "AddFavorite", "currency_id": req.CurrencyID}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	currencyID, err := strconv.ParseInt(chi.URLParam(r, "currencyID"), 10, 64)
	if err != nil || currencyID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid currency id")
		return
	}

	if err = h.service.RemoveFavorite(r.Context(), userID, currencyID); err != nil {
		if errors.Is(err, domain.ErrCurrencyNotFound) {
			writeError(w, http.StatusNotFound, "currency not found")
			return
		}
		if errors.Is(err, domain.ErrFavoriteNotFound) {
			writeError(w, http.StatusNotFound, "favorite not found")
			return
		}
		msg := "failed to remove favorite currency"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "RemoveFavorite", "currency_id": currencyID}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListCurrentFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	page := currency.PageFromQuery(r.URL.Query())

	entries, total, err := h.service.ListCurrentFavorites(r.Context(), userID, page)
	if err != nil {
		msg := "ups, couldn't list favorite rates this time"
		logrus.WithError(err).WithField("handler", "ListCurrentFavorites").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, currency.NewEnvelope(page, total, entries))
}
