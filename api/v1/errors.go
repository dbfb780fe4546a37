package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/catalog-admin/events"
	"github.com/catalog-admin/logging"
	"github.com/catalog-admin/repositories"
	"github.com/catalog-admin/validation"
	"github.com/gin-gonic/gin"
)

const invalidDataMessage = "The given data was invalid."

// respondError translates a service error into the HTTP response.
// Internal details are logged, never echoed.
func respondError(ctx *gin.Context, modelName string, err error) {
	var (
		verr      *validation.Error
		integrity *repositories.IntegrityError
		missing   *repositories.MissingIDsError
		pubErr    *events.PublishError
	)

	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": invalidDataMessage,
			"errors":  verr.Errors,
		})
	case errors.Is(err, repositories.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{
			"message": fmt.Sprintf("No query results for model [%s].", modelName),
		})
	case errors.As(err, &integrity):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": invalidDataMessage,
			"errors":  validation.NewError(integrity.Field, invalidSelection(integrity.Field)).Errors,
		})
	case errors.As(err, &missing):
		message := invalidSelection("ids")
		if len(missing.Missing) == 0 {
			message = "The ids field is required."
		}
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": invalidDataMessage,
			"errors":  validation.NewError("ids", message).Errors,
		})
	case errors.As(err, &pubErr):
		logging.Err(err).Str("model", modelName).Str("routing_key", pubErr.RoutingKey).Msg("write committed but change event failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
	default:
		logging.Err(err).Str("model", modelName).Str("path", ctx.FullPath()).Msg("request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
	}
}

func invalidSelection(field string) string {
	return validation.Message(field, "in", "")
}
