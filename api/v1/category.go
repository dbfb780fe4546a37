package v1

import (
	"github.com/catalog-admin/filters"
	"github.com/catalog-admin/models"
	"github.com/catalog-admin/resources"
	"github.com/catalog-admin/utils"
	"github.com/catalog-admin/validation"
)

var categoryRules = validation.Rules{
	"name":        "required,string,max=255",
	"description": "nullable,string,max=255",
	"is_active":   "boolean",
}

// CategoryResource wires categories into the generic controller
func CategoryResource() Resource[models.Category] {
	return Resource[models.Category]{
		Path:        "categories",
		New:         models.NewCategory,
		RulesStore:  categoryRules,
		RulesUpdate: categoryRules,
		Fill:        fillCategory,
		Filter:      filters.CategoryFilter,
		Mapper:      resources.NewCategory,
		Paginated:   true,
	}
}

func fillCategory(category *models.Category, data map[string]any) {
	if utils.Has(data, "name") {
		category.Name = utils.GetString(data, "name")
	}
	if utils.Has(data, "description") {
		category.Description = utils.GetNullableString(data, "description")
	}
	if utils.Has(data, "is_active") {
		category.IsActive = utils.GetBool(data, "is_active")
	}
}
