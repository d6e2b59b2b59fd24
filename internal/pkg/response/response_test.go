package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	xerrors "backdesk-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{xerrors.ErrNotFound, http.StatusNotFound},
		{xerrors.ErrForbidden, http.StatusForbidden},
		{xerrors.ErrInvalidTransition, http.StatusConflict},
		{xerrors.ErrConflict, http.StatusConflict},
		{xerrors.ErrCapacityExceeded, http.StatusBadRequest},
		{xerrors.ErrRecipientInactive, http.StatusBadRequest},
		{xerrors.ErrValidation, http.StatusBadRequest},
		{xerrors.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{xerrors.ErrRateLimited, http.StatusTooManyRequests},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, StatusOf(tt.err))
	}
}

func TestStatusOfWrapped(t *testing.T) {
	err := fmt.Errorf("customer 7: %w", xerrors.ErrConflict)
	assert.Equal(t, http.StatusConflict, StatusOf(err))
}
