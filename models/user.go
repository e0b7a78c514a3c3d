package models

// User is the storefront identity referenced by reviews and wishlists.
// Accounts are managed elsewhere; this table only anchors foreign keys.
type User struct {
	BaseModel
	Username string `gorm:"size:150;not null;uniqueIndex" json:"username"`
}

func (u *User) TableName() string {
	return "users"
}
