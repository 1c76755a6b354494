package apperror

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIs(t *testing.T) {
	err := fmt.Errorf("update content: %w", NotFound("content"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestUnwrapCause(t *testing.T) {
	err := Timeout("list articles", context.DeadlineExceeded)

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.Contains(t, err.Error(), "list articles")
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, KindUnavailable, KindOf(errors.New("boom")))
}

func TestInvalidInputFields(t *testing.T) {
	err := InvalidInput("validation failed", map[string]string{"title": "cannot be blank"})

	var appErr *Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "cannot be blank", appErr.Fields["title"])
}
