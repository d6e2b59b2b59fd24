package xerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{ErrNotFound, KindNotFound},
		{ErrForbidden, KindForbidden},
		{ErrUnauthorized, KindForbidden},
		{ErrInvalidTransition, KindInvalidTransition},
		{ErrConflict, KindConflict},
		{ErrCapacityExceeded, KindCapacityExceeded},
		{ErrRecipientInactive, KindRecipientInactive},
		{ErrValidation, KindValidation},
		{ErrStoreUnavailable, KindStoreUnavailable},
		{ErrAuditWriteFailed, KindAuditWriteFailed},
		{ErrRateLimited, KindRateLimited},
		{errors.New("something else"), KindInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, KindOf(tt.err))
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("customer 7: %w", ErrConflict)
	assert.Equal(t, KindConflict, KindOf(err))

	err = Wrap(ErrCapacityExceeded, "while claiming")
	assert.Equal(t, KindCapacityExceeded, KindOf(err))
}

func TestMessageOrDefault(t *testing.T) {
	assert.Equal(t, "fallback", MessageOrDefault(nil, "fallback"))
	assert.Equal(t, "boom", MessageOrDefault(errors.New("boom"), "fallback"))
}
