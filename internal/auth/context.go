package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "booksy/internal/errors"
	"booksy/internal/model"
)

// ContextKey is where the auth middleware stores the verified token on the
// echo context.
const ContextKey = "user"

// ClaimsFromContext returns the verified claims attached by the auth guard.
func ClaimsFromContext(c echo.Context) (*Claims, error) {
	token, ok := c.Get(ContextKey).(*jwt.Token)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// UserIDFromContext extracts the authenticated user's id.
func UserIDFromContext(c echo.Context) (uuid.UUID, error) {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidToken
	}
	return id, nil
}

// RoleFromContext extracts the authenticated user's role.
func RoleFromContext(c echo.Context) (model.Role, error) {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}
