package v1

import (
	"github.com/catalog-admin/filters"
	"github.com/catalog-admin/models"
	"github.com/catalog-admin/resources"
	"github.com/catalog-admin/utils"
	"github.com/catalog-admin/validation"
)

var castMemberRules = validation.Rules{
	"name": "required,string,max=255",
	"type": "required,integer,in=1 2",
}

// CastMemberResource wires cast members into the generic controller.
// Lists use the plain collection shape.
func CastMemberResource() Resource[models.CastMember] {
	return Resource[models.CastMember]{
		Path:        "cast_members",
		New:         models.NewCastMember,
		RulesStore:  castMemberRules,
		RulesUpdate: castMemberRules,
		Fill:        fillCastMember,
		Filter:      filters.CastMemberFilter,
		Mapper:      resources.NewCastMember,
		Paginated:   false,
	}
}

func fillCastMember(member *models.CastMember, data map[string]any) {
	if utils.Has(data, "name") {
		member.Name = utils.GetString(data, "name")
	}
	if utils.Has(data, "type") {
		member.Type = models.CastMemberType(utils.GetInt(data, "type"))
	}
}
