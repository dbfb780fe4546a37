package models

// Category groups genres and videos
type Category struct {
	Base
	Name        string  `json:"name" gorm:"size:255;not null"`
	Description *string `json:"description" gorm:"size:255"`
	IsActive    bool    `json:"is_active" gorm:"not null"`
}

// NewCategory returns a category with its defaults applied
func NewCategory() *Category {
	return &Category{IsActive: true}
}

// TableName sets the table name for Category model
func (Category) TableName() string {
	return "categories"
}

func (Category) ModelName() string {
	return "category"
}
