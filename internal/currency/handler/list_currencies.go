package handler

import (
	"net/http"

	"nbrates/internal/currency"

	"github.com/sirupsen/logrus"
)

func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	page := currency.PageFromQuery(r.URL.Query())

	currencies, total, err := h.service.ListCurrencies(r.Context(), page)
	if err != nil {
		msg := "ups, couldn't list currencies this time"
		logrus.WithError(err).WithField("handler", "ListCurrencies").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, currency.NewEnvelope(page, total, currencies))
}
