package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "validation", ErrorTypeValidation.String())
	assert.Equal(t, "not_found", ErrorTypeNotFound.String())
	assert.Equal(t, "deserialization", ErrorTypeDeserialization.String())
	assert.Equal(t, "import_format", ErrorTypeImportFormat.String())
	assert.Equal(t, "storage", ErrorTypeStorage.String())
}

func TestNewValidationError(t *testing.T) {
	cause := stderrors.New("title is required")
	err := NewValidationError("invalid task input", cause)

	assert.True(t, err.IsType(ErrorTypeValidation))
	assert.Equal(t, "VALIDATION_FAILED", err.Code)
	assert.ErrorIs(t, err, err)
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "invalid task input")
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "a1")

	assert.True(t, err.IsType(ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "task not found: a1")

	resource, ok := err.GetContext("resource")
	require.True(t, ok)
	assert.Equal(t, "task", resource)
}

func TestNewDeserializationError(t *testing.T) {
	cause := stderrors.New("unexpected end of JSON input")
	err := NewDeserializationError("tasks", cause)

	assert.True(t, err.IsType(ErrorTypeDeserialization))
	key, ok := err.GetContext("key")
	require.True(t, ok)
	assert.Equal(t, "tasks", key)
}

func TestNewImportFormatError(t *testing.T) {
	err := NewImportFormatError("not parseable as JSON array", nil)

	assert.True(t, err.IsType(ErrorTypeImportFormat))
	assert.Contains(t, err.Error(), "not a valid task array")
}

func TestAsAppError(t *testing.T) {
	appErr := NewStorageError("save value", stderrors.New("disk full"))
	wrapped := fmt.Errorf("operation failed: %w", appErr)

	unwrapped, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.True(t, unwrapped.IsType(ErrorTypeStorage))

	_, ok = AsAppError(stderrors.New("plain error"))
	assert.False(t, ok)
}

func TestIsErrorType(t *testing.T) {
	err := NewNotFoundError("task", "a1")

	assert.True(t, IsErrorType(err, ErrorTypeNotFound))
	assert.False(t, IsErrorType(err, ErrorTypeValidation))
	assert.False(t, IsErrorType(stderrors.New("plain"), ErrorTypeNotFound))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "should pass through validation messages",
			err:  NewValidationError("title is required", nil),
			want: "title is required",
		},
		{
			name: "should pass through not found messages",
			err:  NewNotFoundError("task", "a1"),
			want: "task not found: a1",
		},
		{
			name: "should mask storage details",
			err:  NewStorageError("save value", stderrors.New("disk full")),
			want: "A storage error occurred. Please try again.",
		},
		{
			name: "should pass through plain errors unchanged",
			err:  stderrors.New("something odd"),
			want: "something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetUserMessage(tt.err))
		})
	}
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewValidationError("bad input", nil)))
	assert.False(t, ShouldLogError(NewNotFoundError("task", "a1")))
	assert.False(t, ShouldLogError(NewImportFormatError("bad file", nil)))
	assert.True(t, ShouldLogError(NewStorageError("save", nil)))
	assert.True(t, ShouldLogError(NewDeserializationError("tasks", nil)))
	assert.True(t, ShouldLogError(stderrors.New("unknown")))
}

func TestWithContext(t *testing.T) {
	err := NewValidationError("bad input", nil).WithContext("field", "title")

	value, ok := err.GetContext("field")
	require.True(t, ok)
	assert.Equal(t, "title", value)

	_, ok = err.GetContext("missing")
	assert.False(t, ok)
}
