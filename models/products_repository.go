package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

type ProductFilters struct {
	CategorySlug  string
	Newest        *bool
	PriceLessThan *int64
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.WithContext(ctx).Model(&Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Preload("Category")

	// Filter
	if filters.CategorySlug != "" {
		query = query.Where("categories.slug = ?", filters.CategorySlug)
	}
	if filters.Newest != nil {
		query = query.Where("products.newest_product = ?", *filters.Newest)
	}
	if filters.PriceLessThan != nil {
		query = query.Where("products.price < ?", *filters.PriceLessThan)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if err := query.Order("products.name").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		Preload("ColorVariants").
		Preload("SizeVariants").
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// ListVariants returns the products whose parent is parentID.
func (r *ProductsRepository) ListVariants(ctx context.Context, parentID uuid.UUID) ([]Product, error) {
	var variants []Product
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("name").
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// CreateProduct inserts product with its inline images and links the color
// and size variants it lists by id. The slug is derived from the name unless set.
func (r *ProductsRepository) CreateProduct(ctx context.Context, product *Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAcyclic(tx, product); err != nil {
			return err
		}
		if err := resolveVariants(tx, product); err != nil {
			return err
		}

		return saveWithSlug(tx, product.Name, &product.Slug, ProductSlugIndex, func(tx *gorm.DB) error {
			return tx.Create(product).Error
		})
	})
}

// UpdateProduct saves product fields and replaces its variant links. Images
// are replaced only when product.Images is non-nil. A stored slug never changes.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, product *Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := storedSlug(tx, &Product{}, product.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		product.Slug = stored

		if err := ensureAcyclic(tx, product); err != nil {
			return err
		}
		if err := resolveVariants(tx, product); err != nil {
			return err
		}

		err = saveWithSlug(tx, product.Name, &product.Slug, ProductSlugIndex, func(tx *gorm.DB) error {
			return tx.Omit(clause.Associations).Save(product).Error
		})
		if err != nil {
			return err
		}

		if err := replaceLinks(tx, product, "ColorVariants", product.ColorVariants); err != nil {
			return err
		}
		if err := replaceLinks(tx, product, "SizeVariants", product.SizeVariants); err != nil {
			return err
		}

		if product.Images == nil {
			return nil
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&ProductImage{}).Error; err != nil {
			return err
		}
		if len(product.Images) == 0 {
			return nil
		}
		for i := range product.Images {
			product.Images[i].ID = uuid.Nil
			product.Images[i].ProductID = product.ID
		}
		return MapError(tx.Create(&product.Images).Error)
	})
}

// DeleteProduct removes the product together with its images, reviews,
// wishlist entries and child products.
func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// GetProductPriceBySize returns the base price of the product plus the
// surcharge of its size variant named size.
func (r *ProductsRepository) GetProductPriceBySize(ctx context.Context, productID uuid.UUID, size string) (decimal.Decimal, error) {
	db := r.db.WithContext(ctx)

	var product Product
	if err := db.Select("id", "price").First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrProductNotFound
		}
		return decimal.Zero, err
	}

	var variant SizeVariant
	if err := db.Where("product_id = ? AND size_name = ?", productID, size).First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrSizeNotFound, size)
		}
		return decimal.Zero, err
	}

	return PriceWithSize(product.Price, variant), nil
}

// GetRating averages the stars of every review of the product, 0 when there are none.
func (r *ProductsRepository) GetRating(ctx context.Context, productID uuid.UUID) (float64, error) {
	var rating float64
	if err := r.db.WithContext(ctx).
		Model(&ProductReview{}).
		Select("COALESCE(AVG(stars), 0)::float8").
		Where("product_id = ?", productID).
		Scan(&rating).Error; err != nil {
		return 0, err
	}
	return rating, nil
}

// ensureAcyclic walks the parent chain of product and fails if it loops back.
func ensureAcyclic(tx *gorm.DB, product *Product) error {
	seen := make(map[uuid.UUID]bool)
	for cur := product.ParentID; cur != nil; {
		if *cur == product.ID || seen[*cur] {
			return ErrCyclicParent
		}
		seen[*cur] = true

		var parent Product
		if err := tx.Select("id", "parent_id").First(&parent, "id = ?", *cur).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("parent %w", ErrProductNotFound)
			}
			return err
		}
		cur = parent.ParentID
	}
	return nil
}

// resolveVariants replaces the id-only color and size variants of product
// with the stored rows, so that saving the product links them without
// inserting new variant rows.
func resolveVariants(tx *gorm.DB, product *Product) error {
	if ids := colorIDs(product.ColorVariants); len(ids) > 0 {
		var colors []ColorVariant
		if err := tx.Where("id IN ?", ids).Find(&colors).Error; err != nil {
			return err
		}
		if len(colors) != len(ids) {
			return ErrColorNotFound
		}
		product.ColorVariants = colors
	}
	if ids := sizeIDs(product.SizeVariants); len(ids) > 0 {
		var sizes []SizeVariant
		if err := tx.Where("id IN ?", ids).Find(&sizes).Error; err != nil {
			return err
		}
		if len(sizes) != len(ids) {
			return ErrSizeNotFound
		}
		product.SizeVariants = sizes
	}
	return nil
}

// replaceLinks makes linked the only rows joined to product through the
// many-to-many association name.
func replaceLinks[T any](tx *gorm.DB, product *Product, name string, linked []T) error {
	assoc := tx.Model(product).Association(name)
	if len(linked) == 0 {
		return MapError(assoc.Clear())
	}
	return MapError(assoc.Replace(linked))
}

func colorIDs(colors []ColorVariant) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(colors))
	ids := make([]uuid.UUID, 0, len(colors))
	for _, c := range colors {
		if !seen[c.ID] {
			seen[c.ID] = true
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func sizeIDs(sizes []SizeVariant) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(sizes))
	ids := make([]uuid.UUID, 0, len(sizes))
	for _, s := range sizes {
		if !seen[s.ID] {
			seen[s.ID] = true
			ids = append(ids, s.ID)
		}
	}
	return ids
}
