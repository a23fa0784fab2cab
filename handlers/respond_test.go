package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Chandanpatidar24/Project-Management/services"

	"github.com/stretchr/testify/assert"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", fmt.Errorf("missing field: %w", services.ErrValidation), http.StatusBadRequest},
		{"conflict", fmt.Errorf("already a member: %w", services.ErrConflict), http.StatusBadRequest},
		{"unauthorized", fmt.Errorf("nope: %w", services.ErrUnauthorized), http.StatusUnauthorized},
		{"not found", fmt.Errorf("gone: %w", services.ErrNotFound), http.StatusNotFound},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			respondError(rr, tt.err)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}
