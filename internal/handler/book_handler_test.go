package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "booksy/internal/errors"
	"booksy/internal/listing"
	"booksy/internal/model"
	"booksy/internal/service"
)

// MockBookService is a mock implementation of service.BookService.
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) CreateBook(ctx context.Context, ownerID uuid.UUID, in service.CreateBookInput) (*model.Book, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookService) ListBooks(ctx context.Context, p listing.Params) ([]model.Book, listing.Meta, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, listing.Meta{}, args.Error(2)
	}
	return args.Get(0).([]model.Book), args.Get(1).(listing.Meta), args.Error(2)
}

func (m *MockBookService) ListMyBooks(ctx context.Context, ownerID uuid.UUID) ([]model.Book, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookService) GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func TestBookHandler_ListBooks_PassesQueryParams(t *testing.T) {
	svc := new(MockBookService)
	svc.On("ListBooks", mock.Anything, listing.Params{
		Query: "tolkien", Condition: "GOOD", Min: "5", Max: "20",
		Sort: "price_low", Limit: "2", Offset: "0",
	}).Return([]model.Book{{Title: "The Hobbit"}}, listing.Meta{Total: 1, Limit: 2}, nil)

	h := NewBookHandler(svc)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet,
		"/books?query=tolkien&condition=GOOD&min=5&max=20&sort=price_low&limit=2&offset=0", nil)
	rec := httptest.NewRecorder()

	err := h.ListBooks(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	svc.AssertExpectations(t)
}

func TestBookHandler_ListBooks_InvalidCondition(t *testing.T) {
	svc := new(MockBookService)
	svc.On("ListBooks", mock.Anything, mock.Anything).
		Return(nil, listing.Meta{}, apperrors.ErrInvalidCondition)

	h := NewBookHandler(svc)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/books?condition=MINT", nil)
	rec := httptest.NewRecorder()

	err := h.ListBooks(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid condition")
}

func TestBookHandler_GetBook_NotFound(t *testing.T) {
	svc := new(MockBookService)
	id := uuid.New()
	svc.On("GetBookByID", mock.Anything, id).Return(nil, apperrors.ErrBookNotFound)

	h := NewBookHandler(svc)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/books/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.GetBook(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookHandler_GetBook_BadIDIsNotFound(t *testing.T) {
	h := NewBookHandler(new(MockBookService))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/books/:id")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetBook(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
