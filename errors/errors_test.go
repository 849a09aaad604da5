package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerError(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := NewHandlerError("export", "job-1", cause)

	assert.Contains(t, err.Error(), "export")
	assert.Contains(t, err.Error(), "job-1")
	assert.Contains(t, err.Error(), "boom")
	assert.ErrorIs(t, err, cause)

	var handlerErr *HandlerError
	require.ErrorAs(t, err, &handlerErr)
	assert.Equal(t, "export", handlerErr.Type)
	assert.Equal(t, "job-1", handlerErr.JobID)
}

func TestUnknownTypeError(t *testing.T) {
	err := NewUnknownTypeError("mystery")

	assert.Contains(t, err.Error(), "mystery")
	assert.ErrorIs(t, err, ErrUnknownJobType)
	assert.True(t, IsUnknownType(err))
	assert.False(t, IsNotFound(err))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrJobNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", ErrJobNotFound)))
	assert.False(t, IsNotFound(errors.New("other")))
	assert.False(t, IsNotFound(nil))
}
