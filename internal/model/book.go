package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Condition enumerates the physical condition of a listed book.
type Condition string

const (
	ConditionNew        Condition = "NEW"
	ConditionLikeNew    Condition = "LIKE_NEW"
	ConditionVeryGood   Condition = "VERY_GOOD"
	ConditionGood       Condition = "GOOD"
	ConditionAcceptable Condition = "ACCEPTABLE"
)

// Conditions lists every valid condition, in display order.
var Conditions = []Condition{
	ConditionNew,
	ConditionLikeNew,
	ConditionVeryGood,
	ConditionGood,
	ConditionAcceptable,
}

// Valid reports whether c is one of the known conditions.
func (c Condition) Valid() bool {
	for _, known := range Conditions {
		if c == known {
			return true
		}
	}
	return false
}

// BookStatus enumerates the lifecycle state of a listing. Only ACTIVE is ever
// written by this service; SOLD and REMOVED are reserved for future mutation
// paths and are excluded from public listings.
type BookStatus string

const (
	BookStatusActive  BookStatus = "ACTIVE"
	BookStatusSold    BookStatus = "SOLD"
	BookStatusRemoved BookStatus = "REMOVED"
)

// Book represents a listed used book.
type Book struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Title         string     `json:"title" gorm:"size:500;not null;index"`
	Author        string     `json:"author" gorm:"size:255;not null;index"`
	PriceCents    int64      `json:"price_cents" gorm:"not null"`
	Condition     Condition  `json:"condition" gorm:"type:varchar(20);not null;index"`
	Status        BookStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	CoverImageURL *string    `json:"cover_image_url" gorm:"size:1024"`
	OwnerID       uuid.UUID  `json:"owner_id" gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time  `json:"created_at"`

	// SellerUsername is filled by listing joins, not stored on the books table.
	SellerUsername string `json:"seller_username,omitempty" gorm:"->;-:migration"`

	// Relations
	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
