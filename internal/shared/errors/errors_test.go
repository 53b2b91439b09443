package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
		typ  ErrorType
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest, ErrorTypeValidation},
		{"not found", NewNotFoundError("missing"), http.StatusNotFound, ErrorTypeNotFound},
		{"conflict", NewConflictError("taken"), http.StatusConflict, ErrorTypeConflict},
		{"unauthorized", NewUnauthorizedError("no"), http.StatusUnauthorized, ErrorTypeUnauthorized},
		{"forbidden", NewForbiddenError("closed"), http.StatusForbidden, ErrorTypeForbidden},
		{"verification", NewVerificationError(), http.StatusUnauthorized, ErrorTypeVerification},
		{"decode", NewDecodeError("corrupt"), http.StatusInternalServerError, ErrorTypeDecode},
		{"storage", NewStorageError("disk"), http.StatusInternalServerError, ErrorTypeStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.typ, tt.err.Type)
		})
	}
}

func TestGetAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("finish registration: %w", NewVerificationError("counter"))

	assert.True(t, IsVerificationError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.Equal(t, "passkey verification failed", GetAppError(wrapped).Message)
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: users.username")))
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry 'alice' for key 'username'")))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
	assert.False(t, IsDuplicateError(nil))
}
