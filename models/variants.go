package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ColorVariant is a color option shared between products.
type ColorVariant struct {
	BaseModel
	Name  string `gorm:"column:color_name;size:100;not null" json:"color_name"`
	Price int64  `gorm:"not null;default:0" json:"price"`
}

func (c *ColorVariant) TableName() string {
	return "color_variants"
}

func (c ColorVariant) String() string {
	return c.Name
}

// SizeVariant is a size option with its own surcharge. A product carries at
// most one size variant per size name.
type SizeVariant struct {
	BaseModel
	ProductID *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_size_variants_product_size" json:"product_id,omitempty"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"product,omitempty"`
	Name      string          `gorm:"column:size_name;size:20;not null;uniqueIndex:idx_size_variants_product_size" json:"size_name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

// SizeVariantIndex is the unique index over (product_id, size_name).
const SizeVariantIndex = "idx_size_variants_product_size"

func (s *SizeVariant) TableName() string {
	return "size_variants"
}

func (s SizeVariant) String() string {
	owner := "No Product"
	if s.Product != nil {
		owner = s.Product.Name
	}
	return fmt.Sprintf("%s - %s", s.Name, owner)
}
