package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"booksy/internal/auth"
	"booksy/internal/config"
	apperrors "booksy/internal/errors"
	"booksy/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	bookHandler *handler.BookHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Booksy API running")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/books", bookHandler.ListBooks)
	e.GET("/books/:id", bookHandler.GetBook)

	// Secured routes (require a bearer token)
	secured := e.Group("", AuthGuard(cfg.JWTSecret))
	secured.GET("/books/mine", bookHandler.MyBooks)
	secured.POST("/books", bookHandler.CreateBook)
}

// AuthGuard verifies `Authorization: Bearer <token>` and attaches the
// verified claims to the request context. A missing header and a failed
// verification both end the request with 401.
func AuthGuard(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		ContextKey:  auth.ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// A header that is absent or not of the form "Bearer <token>"
			// is reported as missing; everything else failed verification.
			mapped := apperrors.ErrInvalidToken
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				mapped = apperrors.ErrMissingToken
			}
			he := apperrors.MapErrorToHTTP(mapped)
			return c.JSON(he.StatusCode, he.ToErrorResponse())
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
