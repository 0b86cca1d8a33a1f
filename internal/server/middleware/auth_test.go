package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeValidator accepts exactly one token string.
type fakeValidator struct {
	validToken string
	sessionID  uuid.UUID
}

type fakeClaims struct {
	sessionID uuid.UUID
}

func (c *fakeClaims) GetSessionID() uuid.UUID { return c.sessionID }

func (v *fakeValidator) ValidateToken(tokenString string) (SessionIDGetter, error) {
	if tokenString != v.validToken {
		return nil, fmt.Errorf("invalid token")
	}
	return &fakeClaims{sessionID: v.sessionID}, nil
}

func newAuthTestHandler(t *testing.T, validator TokenValidator) (http.Handler, *uuid.UUID) {
	t.Helper()
	var captured uuid.UUID
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := GetSessionID(r)
		require.NoError(t, err)
		captured = sessionID
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(validator)(inner), &captured
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	sessionID := uuid.New()
	handler, captured := newAuthTestHandler(t, &fakeValidator{validToken: "good-token", sessionID: sessionID})

	req := httptest.NewRequest(http.MethodGet, "/aliases", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sessionID, *captured)
}

func TestAuthMiddleware_CaseInsensitiveBearer(t *testing.T) {
	handler, _ := newAuthTestHandler(t, &fakeValidator{validToken: "good-token"})

	req := httptest.NewRequest(http.MethodGet, "/aliases", nil)
	req.Header.Set("Authorization", "bearer good-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc123"},
		{"no token", "Bearer"},
		{"invalid token", "Bearer wrong-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newAuthTestHandler(t, &fakeValidator{validToken: "good-token"})

			req := httptest.NewRequest(http.MethodGet, "/aliases", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestGetSessionID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/aliases", nil)

	_, err := GetSessionID(req)

	assert.Error(t, err)
}
