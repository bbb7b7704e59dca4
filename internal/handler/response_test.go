package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"terptickets/internal/domain"
	"terptickets/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{"submit in flight", domain.ErrSubmitInFlight, http.StatusConflict, "SUBMIT_IN_FLIGHT"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestMapDomainError_WrappedSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrDuplicateEmail)
	status, code, _ := handler.MapDomainError(wrapped)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_EMAIL", code)
}
