// internal/pkg/apperrors/errors_test.go
package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFoundf("product %d not found", 7), NotFound},
		{"invalid input", InvalidInputf("quantity must be positive"), InvalidInput},
		{"invalid state", InvalidStatef("cart is empty"), InvalidState},
		{"conflict", Conflictf("duplicate email"), Conflict},
		{"storage", Storage(errors.New("connection refused"), "query failed"), StorageFailure},
		{"unclassified", errors.New("plain error"), Unknown},
		{"nil", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindOfWrappedChain(t *testing.T) {
	inner := NotFoundf("order 12 not found")
	wrapped := fmt.Errorf("handling request: %w", inner)

	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, NotFound))
	assert.False(t, IsKind(wrapped, Conflict))
}

func TestErrorMessage(t *testing.T) {
	err := NotFoundf("cart item %d not found", 3)
	assert.Equal(t, "cart item 3 not found", err.Error())

	cause := errors.New("dial tcp: connection refused")
	storageErr := Storage(cause, "failed to load cart")
	assert.Equal(t, "failed to load cart: dial tcp: connection refused", storageErr.Error())
	assert.ErrorIs(t, storageErr, cause)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", NotFound.String())
	assert.Equal(t, "invalid_input", InvalidInput.String())
	assert.Equal(t, "invalid_state", InvalidState.String())
	assert.Equal(t, "conflict", Conflict.String())
	assert.Equal(t, "storage_failure", StorageFailure.String())
	assert.Equal(t, "unknown", Unknown.String())
}
