package adaptor

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&usecase.ValidationError{Fields: map[string]string{"time_slot": "bad"}}, http.StatusBadRequest},
		{fmt.Errorf("booking x: %w", usecase.ErrNotFound), http.StatusNotFound},
		{errors.New("user not found"), http.StatusNotFound},
		{errors.New("email already registered"), http.StatusConflict},
		{errors.New("invalid credentials"), http.StatusUnauthorized},
		{errors.New("account is deactivated"), http.StatusForbidden},
		{errors.New("invalid token format"), http.StatusBadRequest},
		{errors.New("cannot derive slug"), http.StatusBadRequest},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestClientInfo(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	req.Header.Set("User-Agent", "curl/8.0")

	info := clientInfo(req)

	assert.Equal(t, "203.0.113.9", info.IPAddress)
	assert.Equal(t, "curl/8.0", info.UserAgent)
}
