package models

import "strings"

// AllModels returns every table in the order AutoMigrate should create them.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&ColorVariant{},
		&Coupon{},

		&Product{},      // depends on: Category, Product
		&SizeVariant{},  // depends on: Product
		&ProductImage{}, // depends on: Product

		&ProductReview{}, // depends on: Product, User
		&Wishlist{},      // depends on: User, Product, SizeVariant
	}
}

// MediaURL joins the media base URL and a stored file path.
func MediaURL(baseURL, path string) string {
	if baseURL == "" {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
