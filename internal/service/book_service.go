package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"booksy/internal/cache"
	apperrors "booksy/internal/errors"
	"booksy/internal/listing"
	"booksy/internal/model"
	"booksy/internal/money"
	"booksy/internal/repository"
	"booksy/internal/storage"
)

const bookCacheTTL = 5 * time.Minute

// CreateBookInput carries the fields of a listing submission. Price is in
// major currency units as submitted ("12.50"); Cover is the raw image buffer
// when a cover was attached.
type CreateBookInput struct {
	Title     string
	Author    string
	Price     string
	Condition string
	Cover     []byte
	CoverType string
}

// BookService orchestrates the book catalog.
type BookService interface {
	CreateBook(ctx context.Context, ownerID uuid.UUID, in CreateBookInput) (*model.Book, error)
	ListBooks(ctx context.Context, p listing.Params) ([]model.Book, listing.Meta, error)
	ListMyBooks(ctx context.Context, ownerID uuid.UUID) ([]model.Book, error)
	GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
}

type bookService struct {
	books    repository.BookRepository
	uploader storage.Uploader
	cache    *cache.Client
}

// NewBookService builds a BookService with repository, image store and cache.
func NewBookService(books repository.BookRepository, uploader storage.Uploader, cache *cache.Client) BookService {
	return &bookService{
		books:    books,
		uploader: uploader,
		cache:    cache,
	}
}

// CreateBook validates the submission, uploads the cover first when one is
// present (an upload failure aborts the whole creation), then persists the
// book as ACTIVE. A cover uploaded just before a failed insert is left behind
// in the image store; the caller simply resubmits.
func (s *bookService) CreateBook(ctx context.Context, ownerID uuid.UUID, in CreateBookInput) (*model.Book, error) {
	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	if title == "" || author == "" || strings.TrimSpace(in.Price) == "" {
		return nil, apperrors.ErrMissingFields
	}

	condition := model.Condition(in.Condition)
	if !condition.Valid() {
		return nil, apperrors.ErrInvalidCondition
	}

	priceCents, err := money.ToCents(in.Price)
	if err != nil {
		return nil, err
	}

	var coverURL *string
	if len(in.Cover) > 0 {
		url, err := s.uploader.UploadImage(ctx, in.Cover, in.CoverType)
		if err != nil {
			return nil, err
		}
		coverURL = &url
	}

	book := &model.Book{
		Title:         title,
		Author:        author,
		PriceCents:    priceCents,
		Condition:     condition,
		Status:        model.BookStatusActive,
		CoverImageURL: coverURL,
		OwnerID:       ownerID,
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	return book, nil
}

// ListBooks runs the public ACTIVE-only listing for the given filters.
func (s *bookService) ListBooks(ctx context.Context, p listing.Params) ([]model.Book, listing.Meta, error) {
	q, err := listing.Build(p)
	if err != nil {
		return nil, listing.Meta{}, err
	}

	books, total, err := s.books.ListPage(ctx, q)
	if err != nil {
		return nil, listing.Meta{}, fmt.Errorf("list books: %w", err)
	}

	return books, listing.Meta{
		Total:  total,
		Limit:  q.Limit(),
		Offset: q.Offset(),
	}, nil
}

// ListMyBooks returns the caller's own books, any status, newest first.
func (s *bookService) ListMyBooks(ctx context.Context, ownerID uuid.UUID) ([]model.Book, error) {
	return s.books.ListByOwner(ctx, ownerID)
}

func (s *bookService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("book:%s", id)
}

// GetBookByID returns a single book with its seller's username, read through
// a short-TTL cache. An unreachable cache degrades to plain database reads.
func (s *bookService) GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Book
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}

	if payload, err := json.Marshal(book); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, bookCacheTTL)
	}
	return book, nil
}
