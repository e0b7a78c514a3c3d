package models

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{
		db: db,
	}
}

// GetForUser lists what userID saved, newest first.
func (r *WishlistRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]Wishlist, error) {
	var items []Wishlist
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Product").
		Preload("SizeVariant").
		Where("user_id = ?", userID).
		Order("added_on DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetAll lists the entries of every user, newest first, with the total count.
func (r *WishlistRepository) GetAll(ctx context.Context, offset, limit int) ([]Wishlist, int64, error) {
	var items []Wishlist
	var total int64

	db := r.db.WithContext(ctx).Model(&Wishlist{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.
		Preload("User").
		Preload("Product").
		Preload("SizeVariant").
		Order("added_on DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *WishlistRepository) GetItem(ctx context.Context, id uuid.UUID) (*Wishlist, error) {
	var item Wishlist
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Product").
		Preload("SizeVariant").
		First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWishlistNotFound
		}
		return nil, err
	}
	return &item, nil
}

// UpdateItem moves item to another size of its product, or to no size.
func (r *WishlistRepository) UpdateItem(ctx context.Context, item *Wishlist) error {
	res := r.db.WithContext(ctx).Model(item).Select("SizeVariantID").Updates(item)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWishlistNotFound
	}
	return nil
}

// DeleteItem removes the entry id whoever saved it.
func (r *WishlistRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Wishlist{}, "id = ?", id)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWishlistNotFound
	}
	return nil
}

// AddItem saves item for its UserID. The same user, product and size can be
// saved only once.
func (r *WishlistRepository) AddItem(ctx context.Context, item *Wishlist) error {
	return MapError(r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error)
}

// RemoveItem deletes the entry id if it belongs to userID.
func (r *WishlistRepository) RemoveItem(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Wishlist{}, "id = ?", id)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWishlistNotFound
	}
	return nil
}
