package models

// Coupon is a flat discount redeemable on orders above a minimum amount.
type Coupon struct {
	BaseModel
	Code           string `gorm:"column:coupon_code;size:10;not null" json:"coupon_code"`
	IsExpired      bool   `gorm:"not null;default:false" json:"is_expired"`
	DiscountAmount int64  `gorm:"not null" json:"discount_amount"`
	MinimumAmount  int64  `gorm:"not null" json:"minimum_amount"`
}

const (
	DefaultDiscountAmount int64 = 100
	DefaultMinimumAmount  int64 = 500
)

// NewCoupon returns an active coupon with the default discount and minimum.
func NewCoupon(code string) *Coupon {
	return &Coupon{
		Code:           code,
		DiscountAmount: DefaultDiscountAmount,
		MinimumAmount:  DefaultMinimumAmount,
	}
}

func (c *Coupon) TableName() string {
	return "coupons"
}

// Applies reports whether the coupon can be redeemed on an order of orderAmount.
func (c Coupon) Applies(orderAmount int64) bool {
	return !c.IsExpired && orderAmount >= c.MinimumAmount
}

// Discount returns the amount taken off orderAmount, never more than the order itself.
func (c Coupon) Discount(orderAmount int64) int64 {
	if !c.Applies(orderAmount) {
		return 0
	}
	return min(c.DiscountAmount, orderAmount)
}
