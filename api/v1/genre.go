package v1

import (
	"github.com/catalog-admin/filters"
	"github.com/catalog-admin/models"
	"github.com/catalog-admin/resources"
	"github.com/catalog-admin/utils"
	"github.com/catalog-admin/validation"
)

var genreRules = validation.Rules{
	"name":          "required,string,max=255",
	"is_active":     "boolean",
	"categories_id": "required,array,dive,uuid",
}

// GenreResource wires genres into the generic controller
func GenreResource() Resource[models.Genre] {
	return Resource[models.Genre]{
		Path:        "genres",
		New:         models.NewGenre,
		RulesStore:  genreRules,
		RulesUpdate: genreRules,
		Fill:        fillGenre,
		Filter:      filters.GenreFilter,
		Mapper:      resources.NewGenre,
		Paginated:   true,
	}
}

func fillGenre(genre *models.Genre, data map[string]any) {
	if utils.Has(data, "name") {
		genre.Name = utils.GetString(data, "name")
	}
	if utils.Has(data, "is_active") {
		genre.IsActive = utils.GetBool(data, "is_active")
	}
}
