package models

// RatingList holds the accepted age ratings
var RatingList = []string{"L", "10", "12", "14", "16", "18"}

// Video is the catalog aggregate: base fields plus category and genre sets
type Video struct {
	Base
	Title        string `json:"title" gorm:"size:255;not null"`
	Description  string `json:"description" gorm:"type:text;not null"`
	YearLaunched int    `json:"year_launched" gorm:"type:smallint;not null"`
	Opened       bool   `json:"opened" gorm:"not null"`
	Rating       string `json:"rating" gorm:"size:3;not null"`
	Duration     int    `json:"duration" gorm:"not null"`

	// Relations
	Categories []Category `json:"-" gorm:"many2many:category_video;constraint:OnDelete:CASCADE"`
	Genres     []Genre    `json:"-" gorm:"many2many:genre_video;constraint:OnDelete:CASCADE"`
}

// NewVideo returns a video with its defaults applied
func NewVideo() *Video {
	return &Video{Opened: false}
}

// TableName sets the table name for Video model
func (Video) TableName() string {
	return "videos"
}

func (Video) ModelName() string {
	return "video"
}
