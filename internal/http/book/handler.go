package book

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/libry/internal/book"
	"github.com/MrJamesThe3rd/libry/internal/http/respond"
)

// defaultStock applies when a create request leaves stock out.
const defaultStock = 1

type Handler struct {
	svc *book.Service
}

func NewHandler(svc *book.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type bookResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Authors   string     `json:"authors"`
	ISBN      string     `json:"isbn"`
	Publisher string     `json:"publisher"`
	Pages     int        `json:"num_pages"`
	Stock     int        `json:"stock"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(b *book.Book) bookResponse {
	return bookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Authors:   b.Authors,
		ISBN:      b.ISBN,
		Publisher: b.Publisher,
		Pages:     b.Pages,
		Stock:     b.Stock,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type createBookRequest struct {
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	ISBN      string `json:"isbn"`
	Publisher string `json:"publisher"`
	Pages     int    `json:"num_pages"`
	Stock     *int   `json:"stock"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stock := defaultStock
	if req.Stock != nil {
		stock = *req.Stock
	}

	b, err := h.svc.Create(r.Context(), book.CreateParams{
		Title:     req.Title,
		Authors:   req.Authors,
		ISBN:      req.ISBN,
		Publisher: req.Publisher,
		Pages:     req.Pages,
		Stock:     stock,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(b))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.List(r.Context(), book.ListFilter{Query: r.URL.Query().Get("q")})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]bookResponse, len(books))
	for i, b := range books {
		resp[i] = toResponse(b)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

type updateBookRequest struct {
	Title     *string `json:"title,omitempty"`
	Authors   *string `json:"authors,omitempty"`
	ISBN      *string `json:"isbn,omitempty"`
	Publisher *string `json:"publisher,omitempty"`
	Pages     *int    `json:"num_pages,omitempty"`
	Stock     *int    `json:"stock,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Update(r.Context(), id, book.UpdateParams{
		Title:     req.Title,
		Authors:   req.Authors,
		ISBN:      req.ISBN,
		Publisher: req.Publisher,
		Pages:     req.Pages,
		Stock:     req.Stock,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
