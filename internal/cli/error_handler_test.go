package cli

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "priorify/internal/errors"
	"priorify/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	handler := NewErrorHandler()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "should surface field validation messages",
			err: func() error {
				ve := validation.NewValidationError()
				ve.AddRequiredError("title")
				return ve
			}(),
			want: "failed to add task: title is required",
		},
		{
			name: "should surface not found messages",
			err:  apperrors.NewNotFoundError("task", "a1"),
			want: "failed to add task: task not found: a1",
		},
		{
			name: "should mask storage details",
			err:  apperrors.NewStorageError("save value", stderrors.New("disk full")),
			want: "failed to add task: A storage error occurred. Please try again.",
		},
		{
			name: "should wrap unknown errors",
			err:  stderrors.New("something odd"),
			want: "failed to add task: something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handler.Handle("add task", tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestErrorHandler_Predicates(t *testing.T) {
	handler := NewErrorHandler()

	assert.True(t, handler.IsValidationError(apperrors.NewValidationError("bad input", nil)))
	assert.True(t, handler.IsValidationError(validation.NewValidationError()))
	assert.False(t, handler.IsValidationError(stderrors.New("plain")))

	assert.True(t, handler.IsNotFoundError(apperrors.NewNotFoundError("task", "a1")))
	assert.False(t, handler.IsNotFoundError(apperrors.NewValidationError("bad input", nil)))

	assert.True(t, handler.IsImportFormatError(apperrors.NewImportFormatError("bad file", nil)))
	assert.False(t, handler.IsImportFormatError(stderrors.New("plain")))
}
