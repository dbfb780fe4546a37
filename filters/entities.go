package filters

import (
	"strconv"
	"strings"

	"github.com/catalog-admin/models"
	"gorm.io/gorm"
)

// CategoryFilter searches by name and filters by is_active
func CategoryFilter() *Filter {
	return &Filter{
		SearchColumn: "name",
		Sortable:     []string{"name", "is_active", "created_at"},
		Handlers: map[string]Handler{
			"is_active": isActive,
		},
		DefaultOrder: CreatedAtDesc(),
	}
}

// GenreFilter searches by name and filters by related categories (ids or names)
func GenreFilter() *Filter {
	return &Filter{
		SearchColumn: "name",
		Sortable:     []string{"name", "is_active", "created_at"},
		Handlers: map[string]Handler{
			"is_active":  isActive,
			"categories": relatedTo("genres.id", "category_genre", "genre_id", "category_id", "categories"),
		},
		DefaultOrder: CreatedAtDesc(),
	}
}

// CastMemberFilter searches by name and filters by type
func CastMemberFilter() *Filter {
	return &Filter{
		SearchColumn: "name",
		Sortable:     []string{"name", "type", "created_at"},
		Handlers: map[string]Handler{
			"type": castMemberType,
		},
		DefaultOrder: CreatedAtDesc(),
	}
}

// VideoFilter searches by title and filters by related categories and genres
func VideoFilter() *Filter {
	return &Filter{
		SearchColumn: "title",
		Sortable:     []string{"title", "year_launched", "duration", "created_at"},
		Handlers: map[string]Handler{
			"categories": relatedTo("videos.id", "category_video", "video_id", "category_id", "categories"),
			"genres":     relatedTo("videos.id", "genre_video", "video_id", "genre_id", "genres"),
		},
		DefaultOrder: CreatedAtDesc(),
	}
}

func isActive(db *gorm.DB, values []string) *gorm.DB {
	switch strings.ToLower(values[0]) {
	case "1", "true":
		return db.Where("is_active = ?", true)
	case "0", "false":
		return db.Where("is_active = ?", false)
	}
	return db
}

func castMemberType(db *gorm.DB, values []string) *gorm.DB {
	types := make([]int, 0, len(values))
	for _, value := range values {
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		if models.CastMemberType(n).IsValid() {
			types = append(types, n)
		}
	}
	if len(types) == 0 {
		return db
	}
	return db.Where("type IN ?", types)
}
