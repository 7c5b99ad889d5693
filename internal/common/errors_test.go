package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewUserError("cannot save the budget", cause)

	assert.Equal(t, "cannot save the budget: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "cannot save the budget", userErr.UserMessage)
}

func TestUserError_NoCause(t *testing.T) {
	err := NewUserError("nothing to export", nil)
	assert.Equal(t, "nothing to export", err.Error())
}

func TestErrNotFound_Wrapping(t *testing.T) {
	err := fmt.Errorf("transaction %w", ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}
