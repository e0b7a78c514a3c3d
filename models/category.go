package models

// Category groups products. Its slug is assigned once, on the first save.
type Category struct {
	BaseModel
	Name  string  `gorm:"size:100;not null" json:"category_name"`
	Slug  *string `gorm:"size:120;uniqueIndex:idx_categories_slug" json:"slug"`
	Image string  `gorm:"size:255" json:"category_image"`
}

// CategorySlugIndex is the unique index guarding category slugs.
const CategorySlugIndex = "idx_categories_slug"

func (c *Category) TableName() string {
	return "categories"
}

func (c Category) String() string {
	return c.Name
}
