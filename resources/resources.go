// Package resources shapes persisted entities into their API representation.
package resources

import (
	"github.com/catalog-admin/models"
)

// Mapper turns a stored entity into its API shape
type Mapper[T models.Model] func(item T) any

// Category representation
type Category struct {
	models.Category
}

// Genre representation, with its categories (trashed ones included)
type Genre struct {
	models.Genre
	Categories []Category `json:"categories"`
}

// CastMember representation
type CastMember struct {
	models.CastMember
}

// Video representation, with its categories and genres
type Video struct {
	models.Video
	Categories []Category `json:"categories"`
	Genres     []Genre    `json:"genres"`
}

func NewCategory(c models.Category) any {
	return Category{Category: c}
}

func NewGenre(g models.Genre) any {
	return Genre{Genre: g, Categories: categories(g.Categories)}
}

func NewCastMember(c models.CastMember) any {
	return CastMember{CastMember: c}
}

func NewVideo(v models.Video) any {
	genres := make([]Genre, 0, len(v.Genres))
	for _, g := range v.Genres {
		genres = append(genres, Genre{Genre: g, Categories: categories(g.Categories)})
	}
	return Video{Video: v, Categories: categories(v.Categories), Genres: genres}
}

func categories(items []models.Category) []Category {
	result := make([]Category, 0, len(items))
	for _, c := range items {
		result = append(result, Category{Category: c})
	}
	return result
}

// Single wraps one representation as {"data": ...}
type Single struct {
	Data any `json:"data"`
}

// Collection is the plain list shape: {"data": [...]} without pagination metadata
type Collection struct {
	Data []any `json:"data"`
}

// MapAll applies mapper to every item
func MapAll[T models.Model](items []T, mapper Mapper[T]) []any {
	data := make([]any, 0, len(items))
	for _, item := range items {
		data = append(data, mapper(item))
	}
	return data
}
