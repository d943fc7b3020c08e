package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrTaskNotFoundWrapsErrNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.Is(ErrTaskNotFound, ErrNotFound))
	assert.True(t, IsNotFoundError(ErrTaskNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup failed: %w", ErrTaskNotFound)))
	assert.False(t, IsNotFoundError(errors.New("connection refused")))
	assert.False(t, IsNotFoundError(nil))
}

func TestStoreErrorFormatting(t *testing.T) {
	t.Parallel()

	inner := errors.New("dial tcp: connection refused")
	err := NewStoreError("create", "failed to write record", inner)

	assert.Equal(t, "create operation on task failed: failed to write record: dial tcp: connection refused", err.Error())
	assert.True(t, errors.Is(err, inner), "StoreError must unwrap to the original error")

	bare := NewStoreError("delete", "index removal failed", nil)
	assert.Equal(t, "delete operation on task failed: index removal failed", bare.Error())
}
