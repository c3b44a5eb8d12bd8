// Package domain provides the generic contracts and services shared by
// the catalog entities.
package domain

import (
	"context"
	"fmt"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/entity"
	"shopledger/internal/core/id"
	corenum "shopledger/internal/core/numerator"
	"shopledger/internal/core/tx"
)

// ListFilter contains common filtering options for catalog listings.
type ListFilter struct {
	// Search matches against code and name.
	Search string
	// IncludeDeleted includes soft-deleted records.
	IncludeDeleted bool
	// OrderBy names a sort column, "-" prefix for descending.
	OrderBy string
	Limit   int
	Offset  int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 50, OrderBy: "name"}
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// CatalogEntity is the constraint satisfied by catalog models through
// their embedded entity.Catalog.
type CatalogEntity interface {
	entity.Validatable
	GetID() id.ID
	GetCode() string
	SetCode(code string)
	Touch()
}

// CatalogRepository defines CRUD for catalog entities.
type CatalogRepository[T CatalogEntity] interface {
	Create(ctx context.Context, ent T) error
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	GetByCode(ctx context.Context, code string) (T, error)
	Update(ctx context.Context, ent T) error
	// SetDeletionMark sets or clears the soft-delete mark.
	SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// Hook runs at a lifecycle point of a catalog entity.
type Hook[T any] func(ctx context.Context, ent T) error

// HookEvent names a lifecycle point.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	BeforeUpdate HookEvent = "before_update"
	BeforeDelete HookEvent = "before_delete"
)

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{hooks: make(map[HookEvent][]Hook[T])}
}

// On registers a hook for the event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the event, stopping on the first error.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, ent T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, ent); err != nil {
			return err
		}
	}
	return nil
}

// OnBeforeCreate registers a before-create hook.
func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) { r.On(BeforeCreate, hook) }

// OnBeforeUpdate registers a before-update hook.
func (r *HookRegistry[T]) OnBeforeUpdate(hook Hook[T]) { r.On(BeforeUpdate, hook) }

// OnBeforeDelete registers a before-delete hook.
func (r *HookRegistry[T]) OnBeforeDelete(hook Hook[T]) { r.On(BeforeDelete, hook) }

// CatalogService provides shared CRUD logic for catalog entities.
// Entity-specific services embed it and register hooks.
type CatalogService[T CatalogEntity] struct {
	repo       CatalogRepository[T]
	txManager  tx.Manager
	numbers    corenum.Generator
	hooks      *HookRegistry[T]
	entityName string
	codePrefix string
}

// CatalogServiceConfig configures the catalog service.
type CatalogServiceConfig[T CatalogEntity] struct {
	Repo       CatalogRepository[T]
	TxManager  tx.Manager
	Numbers    corenum.Generator
	EntityName string
	// CodePrefix feeds the numbering service when an entity is
	// submitted without a code.
	CodePrefix string
}

// NewCatalogService creates a catalog service.
func NewCatalogService[T CatalogEntity](cfg CatalogServiceConfig[T]) *CatalogService[T] {
	return &CatalogService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		numbers:    cfg.Numbers,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
		codePrefix: cfg.CodePrefix,
	}
}

// Hooks returns the hook registry for entity-specific registration.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *CatalogService[T]) normalizeValidationErr(err error) error {
	if err == nil || apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *CatalogService[T]) normalizeGetErr(err error, idOrCode any) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, idOrCode)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName)
}

// Create validates and persists a new entity, assigning a code when the
// caller left it empty.
func (s *CatalogService[T]) Create(ctx context.Context, ent T) error {
	if err := ent.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}
	if err := s.hooks.Run(ctx, BeforeCreate, ent); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if ent.GetCode() == "" {
			code, err := s.numbers.Next(ctx, corenum.DefaultConfig(s.codePrefix))
			if err != nil {
				return fmt.Errorf("generate %s code: %w", s.entityName, err)
			}
			ent.SetCode(code)
		}
		if err := s.repo.Create(ctx, ent); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
}

// GetByID retrieves an entity by id.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	ent, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return ent, s.normalizeGetErr(err, entityID.String())
	}
	return ent, nil
}

// GetByCode retrieves an entity by its code.
func (s *CatalogService[T]) GetByCode(ctx context.Context, code string) (T, error) {
	ent, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return ent, s.normalizeGetErr(err, code)
	}
	return ent, nil
}

// Update validates and persists changes to an existing entity.
func (s *CatalogService[T]) Update(ctx context.Context, ent T) error {
	if err := ent.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}
	if err := s.hooks.Run(ctx, BeforeUpdate, ent); err != nil {
		return err
	}
	ent.Touch()
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, ent); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
}

// Delete soft-deletes by setting the deletion mark. Documents keep
// their references; listings hide the entity by default.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID id.ID) error {
	ent, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}
	if err := s.hooks.Run(ctx, BeforeDelete, ent); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SetDeletionMark(ctx, entityID, true)
	})
}

// Restore clears the deletion mark.
func (s *CatalogService[T]) Restore(ctx context.Context, entityID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SetDeletionMark(ctx, entityID, false)
	})
}

// List returns entities matching the filter.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}
