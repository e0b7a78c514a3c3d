package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is a star rating in the range 1..5.
type Rating int

const (
	MinRating     Rating = 1
	MaxRating     Rating = 5
	DefaultRating Rating = 3
)

// NewRating validates stars and converts it to a Rating.
func NewRating(stars int) (Rating, error) {
	r := Rating(stars)
	if !r.Valid() {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidRating, stars)
	}
	return r, nil
}

func (r Rating) Valid() bool {
	return r >= MinRating && r <= MaxRating
}

// ProductReview is a user's rating of a product. Other users react to it
// through the like and dislike sets, which are kept independently.
type ProductReview struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	Stars     Rating    `gorm:"type:smallint;not null;default:3;check:chk_product_reviews_stars,stars BETWEEN 1 AND 5" json:"stars"`
	Content   *string   `gorm:"type:text" json:"content,omitempty"`
	DateAdded time.Time `gorm:"autoCreateTime" json:"date_added"`
	Likes     []User    `gorm:"many2many:review_likes;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Dislikes  []User    `gorm:"many2many:review_dislikes;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (r *ProductReview) TableName() string {
	return "product_reviews"
}

// BeforeSave rejects out of range ratings before they reach the database.
func (r *ProductReview) BeforeSave(tx *gorm.DB) error {
	if !r.Stars.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, r.Stars)
	}
	return nil
}
