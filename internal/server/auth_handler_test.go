package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmy/client-registry/internal/config"
)

func newTestAuthHandler(t *testing.T, password string) *AuthHandler {
	t.Helper()

	hash, err := config.HashPassword(password)
	require.NoError(t, err)
	t.Setenv("OPERATOR_PASSWORD_HASH", hash)

	operatorAuth, err := config.NewOperatorAuth()
	require.NoError(t, err)

	return NewAuthHandler(operatorAuth, newTestJWTService())
}

func TestLogin_Success(t *testing.T) {
	h := newTestAuthHandler(t, "correct horse battery staple")

	body := `{"password": "correct horse battery staple"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.False(t, resp.ExpiresAt.IsZero())

	// The issued token must validate
	claims, err := newTestJWTService().ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.SessionID)
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newTestAuthHandler(t, "correct horse battery staple")

	body := `{"password": "hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingPassword(t *testing.T) {
	h := newTestAuthHandler(t, "correct horse battery staple")

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	h.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_InvalidBody(t *testing.T) {
	h := newTestAuthHandler(t, "correct horse battery staple")

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	h.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
