package lending

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/libry/internal/http/respond"
	"github.com/MrJamesThe3rd/libry/internal/lending"
)

type Handler struct {
	svc *lending.Service
}

func NewHandler(svc *lending.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/issue", h.issue)
	r.Post("/return", h.returnBook)
	r.Get("/transactions", h.history)
	r.Get("/members/{id}/loans", h.loans)
}

type transactionResponse struct {
	ID         uuid.UUID    `json:"id"`
	MemberID   uuid.UUID    `json:"member_id"`
	BookID     uuid.UUID    `json:"book_id"`
	Kind       lending.Kind `json:"kind"`
	IssueID    *uuid.UUID   `json:"issue_id,omitempty"`
	IssuedAt   *time.Time   `json:"issued_at,omitempty"`
	ReturnedAt *time.Time   `json:"returned_at,omitempty"`
	Fee        float64      `json:"fee"`
	CreatedAt  time.Time    `json:"created_at"`
}

func toResponse(tx *lending.Transaction) transactionResponse {
	return transactionResponse{
		ID:         tx.ID,
		MemberID:   tx.MemberID,
		BookID:     tx.BookID,
		Kind:       tx.Kind,
		IssueID:    tx.IssueID,
		IssuedAt:   tx.IssuedAt,
		ReturnedAt: tx.ReturnedAt,
		Fee:        tx.Fee,
		CreatedAt:  tx.CreatedAt,
	}
}

func toResponseList(txs []*lending.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type receiptResponse struct {
	Issue    transactionResponse `json:"issue"`
	Return   transactionResponse `json:"return"`
	Days     int                 `json:"days"`
	LateDays int                 `json:"late_days"`
	Fee      float64             `json:"fee"`
	Debt     float64             `json:"outstanding_debt"`
}

type lendingRequest struct {
	MemberID uuid.UUID `json:"member_id"`
	BookID   uuid.UUID `json:"book_id"`
}

func decodeLendingRequest(w http.ResponseWriter, r *http.Request) (lendingRequest, bool) {
	var req lendingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return req, false
	}

	if req.MemberID == uuid.Nil || req.BookID == uuid.Nil {
		http.Error(w, "member_id and book_id are required", http.StatusBadRequest)
		return req, false
	}

	return req, true
}

func (h *Handler) issue(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLendingRequest(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.Issue(r.Context(), req.MemberID, req.BookID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) returnBook(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLendingRequest(w, r)
	if !ok {
		return
	}

	receipt, err := h.svc.Return(r.Context(), req.MemberID, req.BookID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, receiptResponse{
		Issue:    toResponse(receipt.Issue),
		Return:   toResponse(receipt.Return),
		Days:     receipt.Days,
		LateDays: receipt.LateDays,
		Fee:      receipt.Fee,
		Debt:     receipt.Debt,
	})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	filter := lending.ListFilter{}
	q := r.URL.Query()

	if s := q.Get("member_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid member_id", http.StatusBadRequest)
			return
		}

		filter.MemberID = &id
	}

	if s := q.Get("book_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid book_id", http.StatusBadRequest)
			return
		}

		filter.BookID = &id
	}

	if s := q.Get("kind"); s != "" {
		kind := lending.Kind(s)
		if kind != lending.KindIssue && kind != lending.KindReturn {
			http.Error(w, "kind must be issue or return", http.StatusBadRequest)
			return
		}

		filter.Kind = &kind
	}

	txs, err := h.svc.History(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) loans(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	txs, err := h.svc.OpenLoans(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}
