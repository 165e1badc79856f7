package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"booksy/internal/auth"
	apperrors "booksy/internal/errors"
	"booksy/internal/listing"
	"booksy/internal/model"
	"booksy/internal/service"
	"booksy/internal/storage"
)

// BookHandler handles book catalog endpoints.
type BookHandler struct {
	bookService service.BookService
}

// NewBookHandler creates a new book handler.
func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// BooksResponse is the paginated public listing payload.
type BooksResponse struct {
	Books []model.Book `json:"books"`
	Meta  listing.Meta `json:"meta"`
}

// BookResponse wraps a single book.
type BookResponse struct {
	Book *model.Book `json:"book"`
}

// ListBooks godoc
// @Summary List active books with optional filters
// @Tags books
// @Produce json
// @Param query query string false "Substring match on title, author or seller"
// @Param condition query string false "Book condition or ALL"
// @Param min query string false "Minimum price in major units"
// @Param max query string false "Maximum price in major units"
// @Param sort query string false "latest, price_low or price_high"
// @Param limit query int false "Page size, 1-100"
// @Param offset query int false "Page offset, 0-10000"
// @Success 200 {object} BooksResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books [get]
func (h *BookHandler) ListBooks(c echo.Context) error {
	params := listing.Params{
		Query:     c.QueryParam("query"),
		Condition: c.QueryParam("condition"),
		Min:       c.QueryParam("min"),
		Max:       c.QueryParam("max"),
		Sort:      c.QueryParam("sort"),
		Limit:     c.QueryParam("limit"),
		Offset:    c.QueryParam("offset"),
	}

	books, meta, err := h.bookService.ListBooks(c.Request().Context(), params)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, BooksResponse{Books: books, Meta: meta})
}

// GetBook godoc
// @Summary Get a single book by id
// @Tags books
// @Produce json
// @Param id path string true "Book id"
// @Success 200 {object} BookResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperrors.ErrBookNotFound)
	}

	book, err := h.bookService.GetBookByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, BookResponse{Book: book})
}

// MyBooks godoc
// @Summary List the caller's own books, any status
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]model.Book
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books/mine [get]
func (h *BookHandler) MyBooks(c echo.Context) error {
	ownerID, err := auth.UserIDFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	books, err := h.bookService.ListMyBooks(c.Request().Context(), ownerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string][]model.Book{"books": books})
}

// CreateBook godoc
// @Summary List a book for sale
// @Tags books
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param author formData string true "Author"
// @Param price formData string true "Price in major units, e.g. 12.50"
// @Param condition formData string true "NEW, LIKE_NEW, VERY_GOOD, GOOD or ACCEPTABLE"
// @Param cover formData file false "Cover image, max 5MB"
// @Success 201 {object} BookResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books [post]
func (h *BookHandler) CreateBook(c echo.Context) error {
	ownerID, err := auth.UserIDFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	input := service.CreateBookInput{
		Title:     c.FormValue("title"),
		Author:    c.FormValue("author"),
		Price:     c.FormValue("price"),
		Condition: c.FormValue("condition"),
	}

	cover, coverType, err := readCoverFile(c)
	if err != nil {
		return respondError(c, err)
	}
	input.Cover = cover
	input.CoverType = coverType

	book, err := h.bookService.CreateBook(c.Request().Context(), ownerID, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, BookResponse{Book: book})
}

// readCoverFile pulls the optional multipart "cover" field into memory. The
// size cap is enforced while reading so an oversized body never buffers fully.
func readCoverFile(c echo.Context) ([]byte, string, error) {
	fh, err := c.FormFile("cover")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", nil
		}
		return nil, "", apperrors.ErrInvalidImage
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", apperrors.ErrInvalidImage
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxImageSize+1))
	if err != nil {
		return nil, "", apperrors.ErrInvalidImage
	}
	if len(data) > storage.MaxImageSize {
		return nil, "", apperrors.ErrInvalidImage
	}

	return data, fh.Header.Get("Content-Type"), nil
}
