package importer

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/libry/internal/http/respond"
	"github.com/MrJamesThe3rd/libry/internal/importer"
	"github.com/MrJamesThe3rd/libry/internal/importer/csvfile"
)

// defaultCount is used when a catalog import request does not say how many books to fetch.
const defaultCount = 20

const maxUpload = 10 << 20

type Handler struct {
	svc    *importer.Service
	parser *csvfile.Parser
}

func NewHandler(svc *importer.Service, parser *csvfile.Parser) *Handler {
	return &Handler{
		svc:    svc,
		parser: parser,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCatalog)
	r.Post("/csv", h.importCSV)
}

type importRequest struct {
	Count   *int   `json:"count"`
	Title   string `json:"title"`
	Authors string `json:"authors"`
}

// importResponse reports progress even when the import stopped early.
type importResponse struct {
	Imported int    `json:"imported"`
	Layout   string `json:"layout,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (h *Handler) importCatalog(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	count := defaultCount
	if req.Count != nil {
		count = *req.Count
	}

	n, err := h.svc.Import(r.Context(), count, importer.Filter{Title: req.Title, Authors: req.Authors})
	if err != nil {
		slog.Warn("catalog import stopped", "imported", n, "error", err)
		respond.JSON(w, respond.Status(err), importResponse{Imported: n, Error: err.Error()})
		return
	}

	respond.JSON(w, http.StatusOK, importResponse{Imported: n})
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	items, layout, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, "failed to parse file: "+err.Error(), http.StatusBadRequest)
		return
	}

	n, err := h.svc.ImportItems(r.Context(), items)
	if err != nil {
		slog.Warn("file import stopped", "layout", layout, "imported", n, "error", err)
		respond.JSON(w, respond.Status(err), importResponse{Imported: n, Layout: layout, Error: err.Error()})
		return
	}

	respond.JSON(w, http.StatusOK, importResponse{Imported: n, Layout: layout})
}
