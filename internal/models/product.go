// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name         string         `json:"name" gorm:"size:255;not null;index"`
	Price        float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	SellerID     uuid.UUID      `json:"seller" gorm:"type:uuid;index"`
	Image        string         `json:"image" gorm:"size:512"`
	Images       pq.StringArray `json:"images,omitempty" gorm:"type:text[]"`
	Brand        string         `json:"brand" gorm:"size:100"`
	Category     string         `json:"category" gorm:"size:100;index"`
	Description  string         `json:"description" gorm:"type:text"`
	CountInStock int            `json:"countInStock" gorm:"default:0"`

	// Denormalized review aggregate. Maintained atomically on every review
	// insert; rating is the arithmetic mean over all reviews.
	Rating     float64 `json:"rating" gorm:"type:decimal(3,2);default:0"`
	NumReviews int64   `json:"numReviews" gorm:"default:0"`

	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

// Review keeps a snapshot of the author's name at insert time; the authorId
// reference stays for the one-review-per-author invariant.
type Review struct {
	BaseModel
	ProductID  uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_author"`
	AuthorID   uuid.UUID `json:"creator" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_author"`
	AuthorName string    `json:"name" gorm:"size:255;not null"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment" gorm:"type:text"`
}
