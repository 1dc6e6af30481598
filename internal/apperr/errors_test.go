package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	cause := errors.New("bad width")
	wrapped := fmt.Errorf("predict: %w", NewConfigurationError("drift", cause))

	assert.Equal(t, ErrorTypeConfiguration, TypeOf(wrapped))
	assert.Equal(t, ErrorTypeInference, TypeOf(NewInferenceError("classify", cause)))
	assert.Equal(t, ErrorTypeInternal, TypeOf(cause))
	assert.ErrorIs(t, wrapped, cause)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NewValidationError("out of range", map[string]string{"age": "too old"}), http.StatusUnprocessableEntity},
		{NewInvalidInputError("decode", errors.New("eof")), http.StatusBadRequest},
		{NewConfigurationError("drift", nil), http.StatusInternalServerError},
		{NewInferenceError("classify", nil), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "VALIDATION: out of range", NewValidationError("out of range", nil).Error())
	assert.Equal(t, "INFERENCE: classify: boom", NewInferenceError("classify", errors.New("boom")).Error())
}
