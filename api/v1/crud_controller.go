package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/catalog-admin/filters"
	"github.com/catalog-admin/models"
	"github.com/catalog-admin/repositories"
	"github.com/catalog-admin/resources"
	"github.com/catalog-admin/services"
	"github.com/catalog-admin/utils"
	"github.com/catalog-admin/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DefaultPerPage is the list page size when per_page is missing or invalid
const DefaultPerPage = 15

// Resource declares how one entity plugs into the generic CRUD controller
type Resource[T models.Model] struct {
	// Path is the route segment, e.g. "categories".
	Path string
	// New returns an entity with its defaults applied.
	New func() *T
	// RulesStore validates POST bodies.
	RulesStore validation.Rules
	// RulesUpdate validates PUT bodies; PATCH uses its relaxed form.
	RulesUpdate validation.Rules
	// Fill copies validated fields onto the entity. Only keys present in data are touched.
	Fill func(entity *T, data map[string]any)
	// Filter builds the list filter; nil disables filtering.
	Filter func() *filters.Filter
	// Mapper shapes one entity for the response.
	Mapper resources.Mapper[T]
	// Paginated selects the paginated envelope over the plain collection.
	Paginated bool
}

// CrudController serves list, create, read, update, delete and bulk delete for one entity
type CrudController[T models.Model] struct {
	resource       Resource[T]
	service        *services.CrudService[T]
	defaultPerPage int
}

// NewCrudController creates a controller for resource backed by service
func NewCrudController[T models.Model](resource Resource[T], service *services.CrudService[T], defaultPerPage int) *CrudController[T] {
	if defaultPerPage < 1 {
		defaultPerPage = DefaultPerPage
	}
	if resource.RulesUpdate == nil {
		resource.RulesUpdate = resource.RulesStore
	}
	return &CrudController[T]{resource: resource, service: service, defaultPerPage: defaultPerPage}
}

// RegisterRoutes registers the entity routes
func (c *CrudController[T]) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/" + c.resource.Path)
	{
		group.GET("", c.Index)
		group.POST("", c.Store)
		group.DELETE("", c.DestroyCollection)
		group.GET("/:id", c.Show)
		group.PUT("/:id", c.Update)
		group.PATCH("/:id", c.Update)
		group.DELETE("/:id", c.Destroy)
	}
}

func (c *CrudController[T]) modelName() string {
	var zero T
	return zero.ModelName()
}

// Index lists records: filtered, sorted and paginated unless "all" is given
func (c *CrudController[T]) Index(ctx *gin.Context) {
	params := ctx.Request.URL.Query()

	var filter *filters.Filter
	if c.resource.Filter != nil {
		filter = c.resource.Filter()
	}
	scope := func(db *gorm.DB) *gorm.DB {
		return filter.Apply(db, params)
	}

	if _, all := ctx.GetQuery("all"); all {
		items, err := c.service.All(ctx.Request.Context(), scope)
		if err != nil {
			respondError(ctx, c.modelName(), err)
			return
		}
		ctx.JSON(http.StatusOK, resources.Collection{Data: resources.MapAll(items, c.resource.Mapper)})
		return
	}

	page := positiveInt(ctx.Query("page"), 1)
	perPage := positiveInt(ctx.Query("per_page"), c.defaultPerPage)

	items, total, err := c.service.List(ctx.Request.Context(), scope, page, perPage)
	if err != nil {
		respondError(ctx, c.modelName(), err)
		return
	}

	data := resources.MapAll(items, c.resource.Mapper)
	if c.resource.Paginated {
		ctx.JSON(http.StatusOK, resources.NewPaginated(data, total, page, perPage, ctx.Request))
		return
	}
	ctx.JSON(http.StatusOK, resources.Collection{Data: data})
}

// Store validates and creates a record, answering 201 with the stored representation
func (c *CrudController[T]) Store(ctx *gin.Context) {
	data, ok := c.validatedBody(ctx, c.resource.RulesStore)
	if !ok {
		return
	}

	entity := c.resource.New()
	c.resource.Fill(entity, data)

	created, err := c.service.Create(ctx.Request.Context(), entity, c.relationIDs(data))
	if err != nil {
		respondError(ctx, c.modelName(), err)
		return
	}
	ctx.JSON(http.StatusCreated, resources.Single{Data: c.resource.Mapper(*created)})
}

// Show returns one live record
func (c *CrudController[T]) Show(ctx *gin.Context) {
	entity, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.modelName(), err)
		return
	}
	ctx.JSON(http.StatusOK, resources.Single{Data: c.resource.Mapper(*entity)})
}

// Update handles PUT with the full rule set and PATCH with required relaxed to present-only
func (c *CrudController[T]) Update(ctx *gin.Context) {
	entity, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.modelName(), err)
		return
	}

	rules := c.resource.RulesUpdate
	if ctx.Request.Method == http.MethodPatch {
		rules = rules.Relaxed()
	}
	data, ok := c.validatedBody(ctx, rules)
	if !ok {
		return
	}

	c.resource.Fill(entity, data)
	updated, err := c.service.Update(ctx.Request.Context(), entity, c.relationIDs(data))
	if err != nil {
		respondError(ctx, c.modelName(), err)
		return
	}
	ctx.JSON(http.StatusOK, resources.Single{Data: c.resource.Mapper(*updated)})
}

// Destroy soft-deletes one record
func (c *CrudController[T]) Destroy(ctx *gin.Context) {
	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, c.modelName(), err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DestroyCollection soft-deletes every id of the comma separated "ids" parameter, or none
func (c *CrudController[T]) DestroyCollection(ctx *gin.Context) {
	ids := utils.SplitIDs(ctx.Query("ids"))
	if err := c.service.DeleteMany(ctx.Request.Context(), ids); err != nil {
		respondError(ctx, c.modelName(), err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// validatedBody decodes the JSON body and validates it. It writes the error response itself.
func (c *CrudController[T]) validatedBody(ctx *gin.Context, rules validation.Rules) (map[string]any, bool) {
	body := map[string]any{}
	if err := ctx.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Malformed JSON body: " + err.Error()})
		return nil, false
	}

	data, err := validation.Validate(body, rules)
	if err != nil {
		respondError(ctx, c.modelName(), err)
		return nil, false
	}
	return data, true
}

func (c *CrudController[T]) relationIDs(data map[string]any) repositories.RelationIDs {
	ids := repositories.RelationIDs{}
	for _, rel := range c.service.Repository().Relations() {
		if utils.Has(data, rel.Field) {
			ids[rel.Field] = utils.GetStringSlice(data, rel.Field)
		}
	}
	return ids
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
