package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booksy/internal/auth"
	"booksy/internal/model"
)

func guardedEcho(secret string) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		id, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, id.String())
	}, AuthGuard(secret))
	return e
}

func TestAuthGuard_MissingHeader(t *testing.T) {
	e := guardedEcho("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"missing token","code":"UNAUTHORIZED"}`, rec.Body.String())
}

func TestAuthGuard_MalformedHeader(t *testing.T) {
	e := guardedEcho("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token abcdef")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthGuard_BadSignature(t *testing.T) {
	token, err := auth.NewJWTService("other-secret").GenerateToken(uuid.New(), model.RoleUser)
	require.NoError(t, err)

	e := guardedEcho("test-secret")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"invalid token","code":"UNAUTHORIZED"}`, rec.Body.String())
}

func TestAuthGuard_ValidTokenAttachesIdentity(t *testing.T) {
	userID := uuid.New()
	token, err := auth.NewJWTService("test-secret").GenerateToken(userID, model.RoleUser)
	require.NoError(t, err)

	e := guardedEcho("test-secret")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}
