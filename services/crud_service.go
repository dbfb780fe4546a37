package services

import (
	"context"
	"errors"

	"github.com/catalog-admin/events"
	"github.com/catalog-admin/models"
	"github.com/catalog-admin/repositories"
)

// CrudService runs the write path of one entity: store commit first, then the change event
type CrudService[T models.Model] struct {
	repo     *repositories.CrudRepository[T]
	observer events.Observer
}

// NewCrudService creates a new CRUD service
func NewCrudService[T models.Model](repo *repositories.CrudRepository[T], observer events.Observer) *CrudService[T] {
	return &CrudService[T]{repo: repo, observer: observer}
}

// Repository returns the underlying repository
func (s *CrudService[T]) Repository() *repositories.CrudRepository[T] {
	return s.repo
}

func (s *CrudService[T]) modelName() string {
	var zero T
	return zero.ModelName()
}

// List returns one page of records matching scope and the total count
func (s *CrudService[T]) List(ctx context.Context, scope repositories.Scope, page, perPage int) ([]T, int64, error) {
	return s.repo.Paginate(ctx, scope, page, perPage)
}

// All returns every record matching scope
func (s *CrudService[T]) All(ctx context.Context, scope repositories.Scope) ([]T, error) {
	return s.repo.FindAll(ctx, scope)
}

// Get retrieves a live record by ID
func (s *CrudService[T]) Get(ctx context.Context, id string) (*T, error) {
	return s.repo.FindByID(ctx, id)
}

// Create persists entity with its relations and returns it re-read from the store.
// A non-nil entity with a *events.PublishError means the write was committed.
func (s *CrudService[T]) Create(ctx context.Context, entity *T, relations repositories.RelationIDs) (*T, error) {
	if err := s.repo.Create(ctx, entity, relations); err != nil {
		return nil, err
	}

	fresh, err := s.repo.FindByID(ctx, (*entity).GetID())
	if err != nil {
		return nil, err
	}
	return fresh, s.observer.Created(ctx, *fresh)
}

// Update saves entity with its relations and returns it re-read from the store.
// The updated event is emitted for every committed save, even one that changed nothing.
func (s *CrudService[T]) Update(ctx context.Context, entity *T, relations repositories.RelationIDs) (*T, error) {
	if err := s.repo.Update(ctx, entity, relations); err != nil {
		return nil, err
	}

	fresh, err := s.repo.FindByID(ctx, (*entity).GetID())
	if err != nil {
		return nil, err
	}
	return fresh, s.observer.Updated(ctx, *fresh)
}

// Delete soft-deletes a record by ID
func (s *CrudService[T]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.observer.Deleted(ctx, s.modelName(), id)
}

// DeleteMany soft-deletes all ids atomically, then emits one deleted event per id
func (s *CrudService[T]) DeleteMany(ctx context.Context, ids []string) error {
	if err := s.repo.DeleteMany(ctx, ids); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(ids))
	var errs []error
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if err := s.observer.Deleted(ctx, s.modelName(), id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
