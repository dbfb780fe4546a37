package models

// Genre belongs to many categories. Soft-deleted categories stay attached.
type Genre struct {
	Base
	Name     string `json:"name" gorm:"size:255;not null"`
	IsActive bool   `json:"is_active" gorm:"not null"`

	// Relations
	Categories []Category `json:"-" gorm:"many2many:category_genre;constraint:OnDelete:CASCADE"`
}

// NewGenre returns a genre with its defaults applied
func NewGenre() *Genre {
	return &Genre{IsActive: true}
}

// TableName sets the table name for Genre model
func (Genre) TableName() string {
	return "genres"
}

func (Genre) ModelName() string {
	return "genre"
}
