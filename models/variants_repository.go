package models

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VariantsRepository struct {
	db *gorm.DB
}

func NewVariantsRepository(db *gorm.DB) *VariantsRepository {
	return &VariantsRepository{
		db: db,
	}
}

func (r *VariantsRepository) GetAllSizes(ctx context.Context) ([]SizeVariant, error) {
	var sizes []SizeVariant
	if err := r.db.WithContext(ctx).Preload("Product").Order("size_name").Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

func (r *VariantsRepository) GetSize(ctx context.Context, id uuid.UUID) (*SizeVariant, error) {
	var size SizeVariant
	if err := r.db.WithContext(ctx).Preload("Product").First(&size, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSizeNotFound
		}
		return nil, err
	}
	return &size, nil
}

// CreateSize inserts size. A second size with the same name on the same
// product is rejected by the database.
func (r *VariantsRepository) CreateSize(ctx context.Context, size *SizeVariant) error {
	return MapError(r.db.WithContext(ctx).Omit("Product").Create(size).Error)
}

// UpdateSize saves the product, name and surcharge of size.
func (r *VariantsRepository) UpdateSize(ctx context.Context, size *SizeVariant) error {
	res := r.db.WithContext(ctx).Model(size).Select("ProductID", "Name", "Price").Updates(size)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSizeNotFound
	}
	return nil
}

// DeleteSize removes the size; wishlist entries that referenced it lose their size.
func (r *VariantsRepository) DeleteSize(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&SizeVariant{}, "id = ?", id)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSizeNotFound
	}
	return nil
}

func (r *VariantsRepository) GetAllColors(ctx context.Context) ([]ColorVariant, error) {
	var colors []ColorVariant
	if err := r.db.WithContext(ctx).Order("color_name").Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

func (r *VariantsRepository) GetColor(ctx context.Context, id uuid.UUID) (*ColorVariant, error) {
	var color ColorVariant
	if err := r.db.WithContext(ctx).First(&color, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColorNotFound
		}
		return nil, err
	}
	return &color, nil
}

func (r *VariantsRepository) CreateColor(ctx context.Context, color *ColorVariant) error {
	return MapError(r.db.WithContext(ctx).Create(color).Error)
}

func (r *VariantsRepository) UpdateColor(ctx context.Context, color *ColorVariant) error {
	res := r.db.WithContext(ctx).Model(color).Select("Name", "Price").Updates(color)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrColorNotFound
	}
	return nil
}

func (r *VariantsRepository) DeleteColor(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&ColorVariant{}, "id = ?", id)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrColorNotFound
	}
	return nil
}
