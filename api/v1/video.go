package v1

import (
	"strings"

	"github.com/catalog-admin/filters"
	"github.com/catalog-admin/models"
	"github.com/catalog-admin/resources"
	"github.com/catalog-admin/utils"
	"github.com/catalog-admin/validation"
)

var videoRules = validation.Rules{
	"title":         "required,string,max=255",
	"description":   "required,string",
	"year_launched": "required,integer",
	"opened":        "boolean",
	"rating":        "required,in=" + strings.Join(models.RatingList, " "),
	"duration":      "required,integer",
	"categories_id": "required,array,dive,uuid",
	"genres_id":     "required,array,dive,uuid",
}

// VideoResource wires videos into the generic controller.
// Category and genre ids are synchronized in the same transaction as the video row.
func VideoResource() Resource[models.Video] {
	return Resource[models.Video]{
		Path:        "videos",
		New:         models.NewVideo,
		RulesStore:  videoRules,
		RulesUpdate: videoRules,
		Fill:        fillVideo,
		Filter:      filters.VideoFilter,
		Mapper:      resources.NewVideo,
		Paginated:   true,
	}
}

func fillVideo(video *models.Video, data map[string]any) {
	if utils.Has(data, "title") {
		video.Title = utils.GetString(data, "title")
	}
	if utils.Has(data, "description") {
		video.Description = utils.GetString(data, "description")
	}
	if utils.Has(data, "year_launched") {
		video.YearLaunched = utils.GetInt(data, "year_launched")
	}
	if utils.Has(data, "opened") {
		video.Opened = utils.GetBool(data, "opened")
	}
	if utils.Has(data, "rating") {
		video.Rating = utils.GetScalarString(data, "rating")
	}
	if utils.Has(data, "duration") {
		video.Duration = utils.GetInt(data, "duration")
	}
}
