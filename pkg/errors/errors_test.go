package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := NotFound("book", "b-1")
	assert.Contains(t, e.Error(), "NOT_FOUND")
	assert.Contains(t, e.Error(), "b-1")

	wrapped := Internal(fmt.Errorf("pg down"))
	assert.Contains(t, wrapped.Error(), "pg down")
}

func TestAppError_Unwrap(t *testing.T) {
	assert.True(t, errors.Is(NotFound("book", "b-1"), ErrNotFound))
	assert.True(t, errors.Is(DuplicateEmail("a@b.c"), ErrDuplicate))
	assert.True(t, errors.Is(Unauthorized("nope"), ErrUnauthorized))
	assert.True(t, errors.Is(Forbidden("nope"), ErrForbidden))
	assert.True(t, errors.Is(InvalidInput("bad"), ErrInvalidInput))
}

func TestDuplicateEmail_MapsTo400(t *testing.T) {
	// The source contract returns 400 for duplicate registration, not 409.
	e := DuplicateEmail("alice@example.com")
	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.Equal(t, "EMAIL_TAKEN", e.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NotFound("book", "x"), http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("outer: %w", Forbidden("no")), http.StatusForbidden},
		{"sentinel not found", ErrNotFound, http.StatusNotFound},
		{"sentinel duplicate", ErrDuplicate, http.StatusBadRequest},
		{"sentinel invalid", ErrInvalidInput, http.StatusBadRequest},
		{"sentinel unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
