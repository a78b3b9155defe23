package importcsv

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendly/internal/http/request"
	"github.com/MrJamesThe3rd/spendly/internal/importer"
)

// multipartMemory is how much of a multipart form is kept in memory before
// spilling to disk. The upload limit itself is enforced by the importer.
const multipartMemory = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/headers", h.headers)
	r.Post("/preview", h.preview)
	r.Post("/submit", h.submit)
}

type headersResponse struct {
	Headers []string `json:"headers"`
}

type previewResponse struct {
	Count      int                  `json:"count"`
	Candidates []importer.Candidate `json:"candidates"`
}

type submitRequest struct {
	Candidates []importer.Candidate `json:"candidates" validate:"required,min=1,dive"`
}

type failureResponse struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	Status      int    `json:"status"`
	Message     string `json:"message"`
}

type submitResponse struct {
	Imported int               `json:"imported"`
	Error    string            `json:"error,omitempty"`
	Failures []failureResponse `json:"failures,omitempty"`
}

// statusFor maps importer errors raised before any row is stored.
func statusFor(err error) int {
	switch {
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, importer.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, http.ErrMissingFile),
		errors.Is(err, importer.ErrEmptyInput),
		errors.Is(err, importer.ErrNoDataRows),
		errors.Is(err, importer.ErrMappingIncomplete),
		errors.Is(err, importer.ErrColumnNotFound),
		errors.Is(err, importer.ErrUnknownCategory),
		errors.Is(err, importer.ErrUnknownAccount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// readFile returns the decoded text of the "file" form field.
func (h *Handler) readFile(r *http.Request) (string, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := importer.CheckMediaType(header.Header.Get("Content-Type")); err != nil {
		return "", err
	}

	return h.importSvc.ReadUpload(file)
}

func (h *Handler) headers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	text, err := h.readFile(r)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	header, err := h.importSvc.Headers(text)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	request.WriteJSON(w, http.StatusOK, headersResponse{Headers: header})
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	var mapping importer.ColumnMapping
	if err := json.Unmarshal([]byte(r.FormValue("mapping")), &mapping); err != nil {
		http.Error(w, "mapping field must be a JSON column mapping", http.StatusBadRequest)
		return
	}

	text, err := h.readFile(r)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	snap, err := h.importSvc.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	candidates, err := h.importSvc.Preview(text, mapping, snap)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	request.WriteJSON(w, http.StatusOK, previewResponse{
		Count:      len(candidates),
		Candidates: candidates,
	})
}

// submit stores the candidates. When any of them fails the response carries
// the status of the first failure, while the rows that succeeded stay stored.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.importSvc.Submit(r.Context(), req.Candidates)

	resp := submitResponse{Imported: len(res.Created)}

	var batchErr *importer.BatchError
	if !errors.As(err, &batchErr) {
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		request.WriteJSON(w, http.StatusCreated, resp)

		return
	}

	resp.Error = batchErr.Error()
	for _, f := range batchErr.Failures {
		resp.Failures = append(resp.Failures, failureResponse{
			Index:       f.Index,
			Description: f.Candidate.Description,
			Status:      f.Status,
			Message:     f.Message,
		})
	}

	status := batchErr.Failures[0].Status
	if status == 0 {
		status = http.StatusBadGateway
	}

	request.WriteJSON(w, status, resp)
}
