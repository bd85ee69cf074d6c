package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/libry/internal/book"
	"github.com/MrJamesThe3rd/libry/internal/http/respond"
	"github.com/MrJamesThe3rd/libry/internal/importer"
	"github.com/MrJamesThe3rd/libry/internal/lending"
	"github.com/MrJamesThe3rd/libry/internal/member"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{book.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("locking: %w", member.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: title is required", book.ErrInvalid), http.StatusBadRequest},
		{member.ErrInvalid, http.StatusBadRequest},
		{lending.ErrOutOfStock, http.StatusConflict},
		{lending.ErrNoOpenIssue, http.StatusConflict},
		{book.ErrInUse, http.StatusConflict},
		{member.ErrInUse, http.StatusConflict},
		{fmt.Errorf("%w: owes 600", lending.ErrDebtLimitExceeded), http.StatusForbidden},
		{fmt.Errorf("page 2: %w", importer.ErrExternalSource), http.StatusBadGateway},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, respond.Status(tt.err))
		})
	}
}

func TestError_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)

	respond.Error(rec, req, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error\n", rec.Body.String())
}
