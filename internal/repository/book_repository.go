package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"booksy/internal/listing"
	"booksy/internal/model"
)

const sellerJoin = "JOIN users ON users.id = books.owner_id"
const sellerSelect = "books.*, users.username AS seller_username"

// BookRepository defines book persistence operations.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Book, error)
	ListPage(ctx context.Context, q *listing.Query) ([]model.Book, int64, error)
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create inserts a new book.
func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// FindByID returns the book with the owner's public username joined in. No
// status filter: a non-ACTIVE book is still fetchable by direct id.
func (r *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var book model.Book
	err := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Select(sellerSelect).
		Joins(sellerJoin).
		Where("books.id = ?", id).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListByOwner returns all books owned by the caller regardless of status,
// newest first.
func (r *bookRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Book, error) {
	var books []model.Book
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// ListPage executes a normalized listing query: one count over the predicate
// set, then one page with the resolved ordering and clamped LIMIT/OFFSET. Both
// statements share the exact same predicate/value pairs.
func (r *bookRepository) ListPage(ctx context.Context, q *listing.Query) ([]model.Book, int64, error) {
	where, args := q.Where()

	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Joins(sellerJoin).
		Where(where, args...).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	books := make([]model.Book, 0)
	err = r.db.WithContext(ctx).
		Model(&model.Book{}).
		Select(sellerSelect).
		Joins(sellerJoin).
		Where(where, args...).
		Order(q.Order()).
		Limit(q.Limit()).
		Offset(q.Offset()).
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}
