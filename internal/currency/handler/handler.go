package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"nbrates/internal/currency"
	"nbrates/internal/domain"

	"github.com/google/uuid"
)

type CurrencyService interface {
	ListCurrencies(ctx context.Context, page currency.Page) ([]domain.Currency, int64, error)
	ListCurrent(ctx context.Context, page currency.Page) ([]domain.HistoryEntry, int64, error)
	ListHistory(ctx context.Context, filter domain.HistoryFilter, page currency.Page) ([]domain.HistoryEntry, int64, error)
	AddFavorite(ctx context.Context, userID uuid.UUID, currencyID int64) error
	RemoveFavorite(ctx context.Context, userID uuid.UUID, currencyID int64) error
	ListCurrentFavorites(ctx context.Context, userID uuid.UUID, page currency.Page) ([]domain.HistoryEntry, int64, error)
}

type Handler struct {
	service CurrencyService
}

func NewCurrencyHandler(service CurrencyService) *Handler {
	return &Handler{service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
