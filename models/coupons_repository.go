package models

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CouponsRepository struct {
	db *gorm.DB
}

func NewCouponsRepository(db *gorm.DB) *CouponsRepository {
	return &CouponsRepository{
		db: db,
	}
}

func (r *CouponsRepository) GetAllCoupons(ctx context.Context) ([]Coupon, error) {
	var coupons []Coupon
	if err := r.db.WithContext(ctx).Order("coupon_code").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *CouponsRepository) GetCoupon(ctx context.Context, id uuid.UUID) (*Coupon, error) {
	var coupon Coupon
	if err := r.db.WithContext(ctx).First(&coupon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *CouponsRepository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	var coupon Coupon
	if err := r.db.WithContext(ctx).Where("coupon_code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *CouponsRepository) CreateCoupon(ctx context.Context, coupon *Coupon) error {
	return MapError(r.db.WithContext(ctx).Create(coupon).Error)
}

// UpdateCoupon saves every editable column of coupon, including a false
// IsExpired.
func (r *CouponsRepository) UpdateCoupon(ctx context.Context, coupon *Coupon) error {
	res := r.db.WithContext(ctx).Model(coupon).
		Select("Code", "IsExpired", "DiscountAmount", "MinimumAmount").
		Updates(coupon)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCouponNotFound
	}
	return nil
}

func (r *CouponsRepository) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Coupon{}, "id = ?", id)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCouponNotFound
	}
	return nil
}
