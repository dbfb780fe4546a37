package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/catalog-admin/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope narrows a query, typically a filters.Filter bound to request parameters
type Scope func(db *gorm.DB) *gorm.DB

// CrudRepository handles database operations for one catalog entity.
// Default queries exclude soft-deleted rows; associations include them.
type CrudRepository[T models.Model] struct {
	db        *gorm.DB
	relations []Relation
}

// NewCrudRepository creates a repository for T whose writes also replace the given relations
func NewCrudRepository[T models.Model](db *gorm.DB, relations ...Relation) *CrudRepository[T] {
	return &CrudRepository[T]{db: db, relations: relations}
}

// Relations returns the relations synchronized on write
func (r *CrudRepository[T]) Relations() []Relation {
	return r.relations
}

// DB exposes the underlying handle, e.g. for health checks
func (r *CrudRepository[T]) DB() *gorm.DB {
	return r.db
}

func (r *CrudRepository[T]) base(ctx context.Context, scope Scope) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T))
	if scope != nil {
		q = scope(q)
	}
	return q
}

func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

func (r *CrudRepository[T]) preload(q *gorm.DB) *gorm.DB {
	for _, rel := range r.relations {
		q = q.Preload(rel.Association, unscoped)
		for _, nested := range rel.Nested {
			q = q.Preload(nested, unscoped)
		}
	}
	return q
}

// FindAll retrieves every live record matching scope
func (r *CrudRepository[T]) FindAll(ctx context.Context, scope Scope) ([]T, error) {
	items := make([]T, 0)
	if err := r.preload(r.base(ctx, scope)).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Paginate retrieves one page of live records matching scope, plus the total count
func (r *CrudRepository[T]) Paginate(ctx context.Context, scope Scope, page, perPage int) ([]T, int64, error) {
	if page < 1 {
		page = 1
	}
	q := r.base(ctx, scope).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]T, 0)
	if err := r.preload(q.Offset((page - 1) * perPage).Limit(perPage)).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindByID retrieves a live record by its ID
func (r *CrudRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	item := new(T)
	err := r.preload(r.db.WithContext(ctx)).Where("id = ?", id).First(item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Create inserts entity and replaces the supplied relations in one transaction
func (r *CrudRepository[T]) Create(ctx context.Context, entity *T, relations RelationIDs) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(entity).Error; err != nil {
			return err
		}
		return r.syncRelations(tx, (*entity).GetID(), relations)
	})
}

// Update saves every column of entity and replaces the supplied relations in one transaction
func (r *CrudRepository[T]) Update(ctx context.Context, entity *T, relations RelationIDs) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(entity).Error; err != nil {
			return err
		}
		return r.syncRelations(tx, (*entity).GetID(), relations)
	})
}

func (r *CrudRepository[T]) syncRelations(tx *gorm.DB, ownerID string, relations RelationIDs) error {
	for _, rel := range r.relations {
		ids, ok := relations[rel.Field]
		if !ok {
			continue
		}
		if err := SyncRelation(tx, rel, ownerID, ids); err != nil {
			return err
		}
	}
	return nil
}

// Delete soft-deletes a live record
func (r *CrudRepository[T]) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany soft-deletes every id, or none of them if any id is not a live record
func (r *CrudRepository[T]) DeleteMany(ctx context.Context, ids []string) error {
	wanted := unique(ids)
	if len(wanted) == 0 {
		return &MissingIDsError{}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found []string
		if err := tx.Model(new(T)).Where("id IN ?", wanted).Pluck("id", &found).Error; err != nil {
			return fmt.Errorf("check ids: %w", err)
		}
		if missing := difference(wanted, found); len(missing) > 0 {
			return &MissingIDsError{Missing: missing}
		}
		return tx.Where("id IN ?", wanted).Delete(new(T)).Error
	})
}

// FindTrashed retrieves a record by ID whether or not it is soft-deleted.
// It is the opt-in path for reading trashed rows; default queries never return them.
func (r *CrudRepository[T]) FindTrashed(ctx context.Context, id string) (*T, error) {
	item := new(T)
	err := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}
