package models

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts category, deriving a unique slug from its name
// unless one is already set.
func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveWithSlug(tx, category.Name, &category.Slug, CategorySlugIndex, func(tx *gorm.DB) error {
			return tx.Create(category).Error
		})
	})
}

// UpdateCategory saves category. A slug that is already stored is kept even
// when the name changed.
func (r *CategoriesRepository) UpdateCategory(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := storedSlug(tx, &Category{}, category.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		category.Slug = stored

		return saveWithSlug(tx, category.Name, &category.Slug, CategorySlugIndex, func(tx *gorm.DB) error {
			return tx.Save(category).Error
		})
	})
}

// DeleteCategory removes the category; its products go with it.
func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Category{}, "id = ?", id)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
