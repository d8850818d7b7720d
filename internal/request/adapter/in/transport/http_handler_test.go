package transport

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"wastehub/internal/request/domain"
	"wastehub/internal/shared/logger"
)

func TestHandleUseCaseError_StatusMapping(t *testing.T) {
	h := &HTTPHandler{log: logger.NewLogger("test")}

	verr := domain.NewValidationError()
	verr.Add("dates", "collection date must be in the future")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"field validation", verr, 422},
		{"bare validation", domain.ErrValidation, 422},
		{"invalid transition", domain.ErrInvalidTransition, 409},
		{"collector unavailable", domain.ErrCollectorUnavailable, 409},
		{"state conflict", domain.ErrConflict, 409},
		{"forbidden", domain.ErrForbidden, 403},
		{"not found", domain.ErrRequestNotFound, 404},
		{"profile missing", domain.ErrProfileNotFound, 400},
		{"unknown", assert.AnError, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.handleUseCaseError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
