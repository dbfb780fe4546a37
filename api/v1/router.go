package v1

import (
	"github.com/catalog-admin/events"
	"github.com/catalog-admin/middleware"
	"github.com/catalog-admin/models"
	"github.com/catalog-admin/repositories"
	"github.com/catalog-admin/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the shared collaborators of the v1 controllers
type Dependencies struct {
	DB             *gorm.DB
	Observer       events.Observer
	Tokens         *services.TokenService
	DefaultPerPage int
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, deps Dependencies) {
	// Health check endpoint
	router.GET("/health", HealthCheck(deps.DB))

	// Catalog endpoints - protected by AuthMiddleware
	authRouter := router.Group("")
	authRouter.Use(middleware.AuthMiddleware(deps.Tokens))

	NewCrudController(
		CategoryResource(),
		services.NewCrudService(repositories.NewCrudRepository[models.Category](deps.DB), deps.Observer),
		deps.DefaultPerPage,
	).RegisterRoutes(authRouter)

	NewCrudController(
		GenreResource(),
		services.NewCrudService(repositories.NewCrudRepository[models.Genre](deps.DB, repositories.GenreCategories), deps.Observer),
		deps.DefaultPerPage,
	).RegisterRoutes(authRouter)

	NewCrudController(
		CastMemberResource(),
		services.NewCrudService(repositories.NewCrudRepository[models.CastMember](deps.DB), deps.Observer),
		deps.DefaultPerPage,
	).RegisterRoutes(authRouter)

	NewCrudController(
		VideoResource(),
		services.NewCrudService(
			repositories.NewCrudRepository[models.Video](deps.DB, repositories.VideoCategories, repositories.VideoGenres),
			deps.Observer,
		),
		deps.DefaultPerPage,
	).RegisterRoutes(authRouter)
}
