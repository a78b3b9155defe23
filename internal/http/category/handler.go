package category

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendly/internal/category"
	"github.com/MrJamesThe3rd/spendly/internal/http/request"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

type categoryResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	LocalizedName *string   `json:"localized_name,omitempty"`
	Color         string    `json:"color"`
	Icon          string    `json:"icon"`
	Uncategorized bool      `json:"uncategorized"`
	CreatedAt     time.Time `json:"created_at"`
}

func toResponse(c category.Category, uncategorizedID string) categoryResponse {
	return categoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		LocalizedName: c.LocalizedName,
		Color:         c.Color,
		Icon:          c.Icon,
		Uncategorized: c.ID == uncategorizedID,
		CreatedAt:     c.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	dir, err := h.svc.Directory(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	uncategorizedID := h.svc.UncategorizedID(dir)

	resp := make([]categoryResponse, len(dir))
	for i, c := range dir {
		resp[i] = toResponse(c, uncategorizedID)
	}

	request.WriteJSON(w, http.StatusOK, resp)
}

type createCategoryRequest struct {
	Name          string  `json:"name" validate:"required"`
	LocalizedName *string `json:"localized_name,omitempty"`
	Color         string  `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon          string  `json:"icon,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), category.CreateParams{
		Name:          req.Name,
		LocalizedName: req.LocalizedName,
		Color:         req.Color,
		Icon:          req.Icon,
	})
	if err != nil {
		if errors.Is(err, category.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	request.WriteJSON(w, http.StatusCreated, toResponse(*c, h.svc.UncategorizedID(category.Directory{*c})))
}
