package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"booksy/internal/cache"
	apperrors "booksy/internal/errors"
	"booksy/internal/listing"
	"booksy/internal/model"
)

// MockBookRepository is a mock implementation of BookRepository.
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Book, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookRepository) ListPage(ctx context.Context, q *listing.Query) ([]model.Book, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Book), args.Get(1).(int64), args.Error(2)
}

// MockUploader is a mock implementation of storage.Uploader.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, data, contentType)
	return args.String(0), args.Error(1)
}

// nilCache exercises the fail-safe path of the cache client.
var nilCache *cache.Client

func TestBookService_CreateBook(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name           string
		input          CreateBookInput
		setupMocks     func(*MockBookRepository, *MockUploader)
		expectedError  error
		expectedCents  int64
		expectCoverURL bool
	}{
		{
			name:  "price in whole units",
			input: CreateBookInput{Title: "Dune", Author: "Herbert", Price: "12", Condition: "GOOD"},
			setupMocks: func(r *MockBookRepository, u *MockUploader) {
				r.On("Create", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil)
			},
			expectedCents: 1200,
		},
		{
			name:  "decimal price rounds to cents",
			input: CreateBookInput{Title: "Dune", Author: "Herbert", Price: "12.50", Condition: "GOOD"},
			setupMocks: func(r *MockBookRepository, u *MockUploader) {
				r.On("Create", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil)
			},
			expectedCents: 1250,
		},
		{
			name:          "blank title",
			input:         CreateBookInput{Title: "  ", Author: "Herbert", Price: "12", Condition: "GOOD"},
			setupMocks:    func(r *MockBookRepository, u *MockUploader) {},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:          "missing price",
			input:         CreateBookInput{Title: "Dune", Author: "Herbert", Price: "", Condition: "GOOD"},
			setupMocks:    func(r *MockBookRepository, u *MockUploader) {},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:          "unknown condition",
			input:         CreateBookInput{Title: "Dune", Author: "Herbert", Price: "12", Condition: "MINT"},
			setupMocks:    func(r *MockBookRepository, u *MockUploader) {},
			expectedError: apperrors.ErrInvalidCondition,
		},
		{
			name:          "negative price",
			input:         CreateBookInput{Title: "Dune", Author: "Herbert", Price: "-3", Condition: "GOOD"},
			setupMocks:    func(r *MockBookRepository, u *MockUploader) {},
			expectedError: apperrors.ErrInvalidPrice,
		},
		{
			name: "with cover",
			input: CreateBookInput{
				Title: "Dune", Author: "Herbert", Price: "12", Condition: "GOOD",
				Cover: []byte("img"), CoverType: "image/jpeg",
			},
			setupMocks: func(r *MockBookRepository, u *MockUploader) {
				u.On("UploadImage", mock.Anything, []byte("img"), "image/jpeg").
					Return("https://img.example.com/books/abc.jpg", nil)
				r.On("Create", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil)
			},
			expectedCents:  1200,
			expectCoverURL: true,
		},
		{
			name: "upload failure aborts creation",
			input: CreateBookInput{
				Title: "Dune", Author: "Herbert", Price: "12", Condition: "GOOD",
				Cover: []byte("img"), CoverType: "image/jpeg",
			},
			setupMocks: func(r *MockBookRepository, u *MockUploader) {
				u.On("UploadImage", mock.Anything, []byte("img"), "image/jpeg").
					Return("", errors.New("image store down"))
				// no Create expectation: nothing is persisted
			},
			expectedError: errors.New("image store down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBookRepository)
			mockUploader := new(MockUploader)
			tt.setupMocks(mockRepo, mockUploader)

			svc := NewBookService(mockRepo, mockUploader, nilCache)
			book, err := svc.CreateBook(context.Background(), ownerID, tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, book)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCents, book.PriceCents)
				assert.Equal(t, model.BookStatusActive, book.Status)
				assert.Equal(t, ownerID, book.OwnerID)
				if tt.expectCoverURL {
					assert.NotNil(t, book.CoverImageURL)
				} else {
					assert.Nil(t, book.CoverImageURL)
				}
			}

			mockRepo.AssertExpectations(t)
			mockUploader.AssertExpectations(t)
		})
	}
}

func TestBookService_ListBooks(t *testing.T) {
	mockRepo := new(MockBookRepository)
	page := []model.Book{
		{Title: "The Hobbit", PriceCents: 600, Status: model.BookStatusActive},
		{Title: "Dune", PriceCents: 1000, Status: model.BookStatusActive},
	}
	mockRepo.On("ListPage", mock.Anything, mock.AnythingOfType("*listing.Query")).
		Return(page, int64(2), nil)

	svc := NewBookService(mockRepo, new(MockUploader), nilCache)
	books, meta, err := svc.ListBooks(context.Background(), listing.Params{
		Condition: "GOOD", Min: "5", Max: "20", Sort: listing.SortPriceLow, Limit: "2",
	})

	assert.NoError(t, err)
	assert.Len(t, books, 2)
	assert.LessOrEqual(t, len(books), meta.Limit)
	assert.Equal(t, int64(2), meta.Total)
	assert.Equal(t, 2, meta.Limit)
	assert.Equal(t, 0, meta.Offset)
	for _, b := range books {
		assert.Equal(t, model.BookStatusActive, b.Status)
	}
}

func TestBookService_ListBooks_InvalidCondition(t *testing.T) {
	mockRepo := new(MockBookRepository)
	svc := NewBookService(mockRepo, new(MockUploader), nilCache)

	_, _, err := svc.ListBooks(context.Background(), listing.Params{Condition: "PRISTINE"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCondition)
	mockRepo.AssertNotCalled(t, "ListPage")
}

func TestBookService_GetBookByID(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockBookRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(&model.Book{
		ID: id, Title: "Neuromancer", SellerUsername: "case",
	}, nil)

	svc := NewBookService(mockRepo, new(MockUploader), nilCache)
	book, err := svc.GetBookByID(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, "Neuromancer", book.Title)
	assert.Equal(t, "case", book.SellerUsername)
}

func TestBookService_GetBookByID_NotFound(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockBookRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	svc := NewBookService(mockRepo, new(MockUploader), nilCache)
	_, err := svc.GetBookByID(context.Background(), id)

	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
}

func TestBookService_ListMyBooks(t *testing.T) {
	ownerID := uuid.New()
	mockRepo := new(MockBookRepository)
	mockRepo.On("ListByOwner", mock.Anything, ownerID).Return([]model.Book{
		{Title: "Sold one", Status: model.BookStatusSold},
		{Title: "Active one", Status: model.BookStatusActive},
	}, nil)

	svc := NewBookService(mockRepo, new(MockUploader), nilCache)
	books, err := svc.ListMyBooks(context.Background(), ownerID)

	assert.NoError(t, err)
	// own listing includes every status
	assert.Len(t, books, 2)
}
