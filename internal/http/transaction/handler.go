package transaction

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendly/internal/category"
	"github.com/MrJamesThe3rd/spendly/internal/http/request"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

type Handler struct {
	svc        *transaction.Service
	categories *category.Service
}

func NewHandler(svc *transaction.Service, categories *category.Service) *Handler {
	return &Handler{svc: svc, categories: categories}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/confirm", h.confirm)
}

// uncategorizedID looks up the sentinel category trust states are derived
// against. A failed lookup only degrades the state of uncategorized rows.
func (h *Handler) uncategorizedID(ctx context.Context) string {
	dir, err := h.categories.Directory(ctx)
	if err != nil {
		slog.Error("failed to load categories", "error", err)
		return ""
	}

	return h.categories.UncategorizedID(dir)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, transaction.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("transaction request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type createTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	CategoryID  string          `json:"category_id" validate:"required"`
	AccountID   string          `json:"account_id" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	// Manually entered transactions are confirmed by the person entering them.
	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
		Confirmed:   true,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	request.WriteJSON(w, http.StatusCreated, toResponse(tx, h.uncategorizedID(r.Context())))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{}
	q := r.URL.Query()

	if s := q.Get("confirmed"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			filter.Confirmed = new(b)
		}
	}

	if s := q.Get("category_id"); s != "" {
		filter.CategoryID = new(s)
	}

	if s := q.Get("account_id"); s != "" {
		filter.AccountID = new(s)
	}

	if s := q.Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := q.Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	request.WriteJSON(w, http.StatusOK, toResponseList(txs, h.uncategorizedID(r.Context())))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	request.WriteJSON(w, http.StatusOK, toResponse(tx, h.uncategorizedID(r.Context())))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateTransactionRequest struct {
	Description *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CategoryID  *string          `json:"category_id,omitempty" validate:"omitempty,min=1"`
	AccountID   *string          `json:"account_id,omitempty" validate:"omitempty,min=1"`
}

// update edits a transaction's fields. Changing the category here does not
// confirm it; that only happens through confirm.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Description != nil {
		tx.Description = *req.Description
	}

	if req.Amount != nil {
		tx.Amount = *req.Amount
	}

	if req.Date != nil {
		d, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		tx.Date = d
	}

	if req.CategoryID != nil {
		tx.CategoryID = *req.CategoryID
	}

	if req.AccountID != nil {
		tx.AccountID = *req.AccountID
	}

	if err := h.svc.Update(r.Context(), tx); err != nil {
		writeError(w, err)
		return
	}

	request.WriteJSON(w, http.StatusOK, toResponse(tx, h.uncategorizedID(r.Context())))
}

type confirmRequest struct {
	CategoryID *string `json:"category_id,omitempty" validate:"omitempty,min=1"`
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req confirmRequest
	if r.ContentLength != 0 {
		if err := request.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := h.svc.Confirm(r.Context(), id, req.CategoryID); err != nil {
		writeError(w, err)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	request.WriteJSON(w, http.StatusOK, toResponse(tx, h.uncategorizedID(r.Context())))
}
