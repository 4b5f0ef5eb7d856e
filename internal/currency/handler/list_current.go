package handler

import (
	"net/http"

	"nbrates/internal/currency"

	"github.com/sirupsen/logrus"
)

func (h *Handler) ListCurrent(w http.ResponseWriter, r *http.Request) {
	page := currency.PageFromQuery(r.URL.Query())

	entries, total, err := h.service.ListCurrent(r.Context(), page)
	if err != nil {
		msg := "ups, couldn't list current rates this time"
		logrus.WithError(err).WithField("handler", "ListCurrent").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, currency.NewEnvelope(page, total, entries))
}
