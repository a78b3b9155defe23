package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendly/internal/export"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/csv", h.csv)
}

func (h *Handler) csv(w http.ResponseWriter, r *http.Request) {
	var filter transaction.ListFilter

	for param, dst := range map[string]**time.Time{
		"start_date": &filter.StartDate,
		"end_date":   &filter.EndDate,
	} {
		s := r.URL.Query().Get(param)
		if s == "" {
			continue
		}

		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid "+param, http.StatusBadRequest)
			return
		}

		*dst = &t
	}

	var buf bytes.Buffer

	n, err := h.svc.WriteCSV(r.Context(), &buf, filter)
	if err != nil {
		slog.Error("failed to export transactions", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)

		return
	}

	filename := fmt.Sprintf("spendly_%s.csv", time.Now().Format("20060102_150405"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
		return
	}

	slog.Info("Exported transactions", "count", n)
}
