package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// A product may point at a parent product, grouping alternate forms of the
// same item; the children are reachable through Variants.
type Product struct {
	BaseModel
	ParentID      *uuid.UUID      `gorm:"type:uuid;index;check:chk_products_parent_not_self,parent_id IS NULL OR parent_id <> id" json:"parent_id,omitempty"`
	Name          string          `gorm:"size:100;not null" json:"product_name"`
	Slug          *string         `gorm:"size:120;uniqueIndex:idx_products_slug" json:"slug"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Category      *Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"category,omitempty"`
	Price         int64           `gorm:"not null" json:"price"`
	Description   string          `gorm:"type:text" json:"product_description"`
	NewestProduct bool            `gorm:"not null;default:false" json:"newest_product"`
	ColorVariants []ColorVariant  `gorm:"many2many:product_color_variants;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"color_variants,omitempty"`
	SizeVariants  []SizeVariant   `gorm:"many2many:product_size_variants;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"size_variants,omitempty"`
	Images        []ProductImage  `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"images,omitempty"`
	Reviews       []ProductReview `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"reviews,omitempty"`
	Variants      []Product       `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"variants,omitempty"`
}

// ProductSlugIndex is the unique index guarding product slugs.
const ProductSlugIndex = "idx_products_slug"

func (p *Product) TableName() string {
	return "products"
}

func (p Product) String() string {
	return p.Name
}

// PriceWithSize adds the size surcharge to a product base price.
func PriceWithSize(base int64, size SizeVariant) decimal.Decimal {
	return decimal.NewFromInt(base).Add(size.Price)
}

// AverageRating is the plain mean of the review stars, or 0 without reviews.
func AverageRating(reviews []ProductReview) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += int(r.Stars)
	}
	return float64(total) / float64(len(reviews))
}

// ProductImage is a picture shown on the product page.
type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Image     string    `gorm:"size:255;not null" json:"image"`
}

func (i *ProductImage) TableName() string {
	return "product_images"
}

// Preview renders the admin thumbnail for the image.
func (i ProductImage) Preview(mediaBaseURL string) string {
	return fmt.Sprintf(`<img src="%s" width="500"/>`, MediaURL(mediaBaseURL, i.Image))
}
