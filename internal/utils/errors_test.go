package contextutils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := &AppError{
		Code:     ErrorCodeInvalidInput,
		Severity: SeverityWarn,
		Message:  "Invalid input",
	}
	assert.Equal(t, "INVALID_INPUT: Invalid input", err.Error())

	errWithDetails := &AppError{
		Code:     ErrorCodeInvalidInput,
		Severity: SeverityWarn,
		Message:  "Invalid input",
		Details:  "question must not be empty",
	}
	assert.Equal(t, "INVALID_INPUT: Invalid input - question must not be empty", errWithDetails.Error())
}

func TestAppError_Is(t *testing.T) {
	err := WrapError(ErrAIProviderUnavailable, "quiz generation failed")
	assert.True(t, errors.Is(err, ErrAIProviderUnavailable))
	assert.False(t, errors.Is(err, ErrDatabaseQuery))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewAppErrorWithCause(ErrorCodeDatabaseConnection, SeverityError, "Database connection failed", "", cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestWrapError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, WrapError(nil, "context"))
	})

	t.Run("preserves AppError code", func(t *testing.T) {
		wrapped := WrapError(ErrDatabaseQuery, "loading chat history")
		var appErr *AppError
		require.True(t, AsError(wrapped, &appErr))
		assert.Equal(t, ErrorCodeDatabaseQuery, appErr.Code)
		assert.Equal(t, "loading chat history", appErr.Message)
	})

	t.Run("plain error becomes internal error", func(t *testing.T) {
		wrapped := WrapError(errors.New("boom"), "saving quiz")
		assert.Equal(t, ErrorCodeInternalError, GetErrorCode(wrapped))
	})
}

func TestWrapErrorf(t *testing.T) {
	t.Run("formats context", func(t *testing.T) {
		wrapped := WrapErrorf(ErrDatabaseQuery, "failed to save chat for user %s", "anonymous")
		var appErr *AppError
		require.True(t, AsError(wrapped, &appErr))
		assert.Equal(t, ErrorCodeDatabaseQuery, appErr.Code)
		assert.Equal(t, "failed to save chat for user anonymous", appErr.Message)
	})

	t.Run("handles %w verb", func(t *testing.T) {
		cause := errors.New("timeout")
		wrapped := WrapErrorf(ErrAIRequestFailed, "provider request failed: %w", cause)
		assert.True(t, errors.Is(wrapped, ErrAIRequestFailed))
		assert.Contains(t, wrapped.Error(), "timeout")
	})
}

func TestErrorWithContextf(t *testing.T) {
	err := ErrorWithContextf("unexpected status %d", 502)
	var appErr *AppError
	require.True(t, AsError(err, &appErr))
	assert.Equal(t, ErrorCodeInternalError, appErr.Code)
	assert.Equal(t, "unexpected status 502", appErr.Message)
}

func TestIsError(t *testing.T) {
	assert.True(t, IsError(ErrAIProviderUnavailable, ErrAIProviderUnavailable))
	assert.False(t, IsError(ErrAIProviderUnavailable, ErrAIRequestFailed))
	assert.False(t, IsError(fmt.Errorf("plain"), ErrAIRequestFailed))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewAppError(ErrorCodeTimeout, SeverityWarn, "Request timeout", "")))
	assert.True(t, IsRetryable(NewAppError(ErrorCodeServiceUnavailable, SeverityError, "Service unavailable", "")))
	assert.True(t, IsRetryable(ErrDatabaseConnection))
	assert.False(t, IsRetryable(NewAppError(ErrorCodeInvalidInput, SeverityWarn, "Invalid input", "")))
	assert.False(t, IsRetryable(errors.New("plain")))
}
