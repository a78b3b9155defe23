package account

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendly/internal/account"
	"github.com/MrJamesThe3rd/spendly/internal/http/request"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

type accountResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    account.Type    `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

func toResponse(a account.Account) accountResponse {
	return accountResponse{
		ID:      a.ID,
		Name:    a.Name,
		Type:    a.Type,
		Balance: a.Balance,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toResponse(a)
	}

	request.WriteJSON(w, http.StatusOK, resp)
}

type createAccountRequest struct {
	Name string       `json:"name" validate:"required"`
	Type account.Type `json:"type" validate:"required,oneof=checking credit debit cash"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.Create(r.Context(), req.Name, req.Type)
	if err != nil {
		if errors.Is(err, account.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	request.WriteJSON(w, http.StatusCreated, toResponse(*a))
}
