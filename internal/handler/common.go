package handler

import (
	"github.com/labstack/echo/v4"

	apperrors "booksy/internal/errors"
)

// respondError translates a domain error into the wire error shape
// {"message", "code"} with the mapped status.
func respondError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}
