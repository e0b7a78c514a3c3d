package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Wishlist is a product, optionally in a given size, saved by a user.
// Removing the size variant keeps the entry and clears the size.
type Wishlist struct {
	BaseModel
	UserID        uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_wishlists_user_product_size" json:"user_id"`
	User          *User        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	ProductID     uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_wishlists_user_product_size" json:"product_id"`
	Product       *Product     `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"product,omitempty"`
	SizeVariantID *uuid.UUID   `gorm:"type:uuid;uniqueIndex:idx_wishlists_user_product_size" json:"size_variant_id,omitempty"`
	SizeVariant   *SizeVariant `gorm:"foreignKey:SizeVariantID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"size_variant,omitempty"`
	AddedOn       time.Time    `gorm:"autoCreateTime" json:"added_on"`
}

// WishlistIndex is the unique index over (user_id, product_id, size_variant_id).
const WishlistIndex = "idx_wishlists_user_product_size"

func (w *Wishlist) TableName() string {
	return "wishlists"
}

func (w Wishlist) String() string {
	user, product, size := "", "", "No Size"
	if w.User != nil {
		user = w.User.Username
	}
	if w.Product != nil {
		product = w.Product.Name
	}
	if w.SizeVariant != nil {
		size = w.SizeVariant.Name
	}
	return fmt.Sprintf("%s - %s - %s", user, product, size)
}
