package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

const dashboardCacheKey = "inventory:dashboard"

// InventoryService coordinates resource CRUD and dashboard aggregation.
type InventoryService struct {
	resources  repository.ResourceRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
}

// NewInventoryService builds the service. cache may be nil, in which case
// dashboard stats are computed on every call.
func NewInventoryService(resources repository.ResourceRepository, cache *redis.Client, cacheTTL time.Duration, dispatcher events.Dispatcher) *InventoryService {
	return &InventoryService{
		resources:  resources,
		cache:      cache,
		cacheTTL:   cacheTTL,
		dispatcher: dispatcher,
	}
}

// ListResources returns every inventory item.
func (s *InventoryService) ListResources(ctx context.Context) ([]*domain.Resource, error) {
	return s.resources.List(ctx)
}

// CreateResource inserts a new item. Quantity defaulting happens at the
// request boundary; here an explicit value, including 0, is kept as-is.
func (s *InventoryService) CreateResource(ctx context.Context, actor *domain.Account, resource *domain.Resource) error {
	if resource.Name == "" || resource.Kind == "" {
		return apperrors.NewValidationError("name and kind are required", nil)
	}
	if resource.Quantity < 0 {
		return apperrors.NewValidationError("quantity must not be negative", nil)
	}
	if resource.Status == "" {
		resource.Status = domain.ResourceStatusAvailable
	}

	if err := s.resources.Create(ctx, resource); err != nil {
		return err
	}

	s.invalidateDashboard(ctx)
	s.publishResourceEvent(ctx, events.EventResourceCreated, actor, resource)
	return nil
}

// UpdateResource applies a partial update, keeping fields the caller omitted.
func (s *InventoryService) UpdateResource(ctx context.Context, actor *domain.Account, id int64, name, kind *string, quantity *int, status *domain.ResourceStatus) (*domain.Resource, error) {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("resource", map[string]any{"id": id})
		}
		return nil, err
	}

	if name != nil {
		resource.Name = *name
	}
	if kind != nil {
		resource.Kind = *kind
	}
	if quantity != nil {
		resource.Quantity = *quantity
	}
	if status != nil {
		resource.Status = *status
	}

	if err := s.resources.Update(ctx, resource); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	s.publishResourceEvent(ctx, events.EventResourceUpdated, actor, resource)
	return resource, nil
}

// DeleteResource removes an item.
func (s *InventoryService) DeleteResource(ctx context.Context, actor *domain.Account, id int64) error {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("resource", map[string]any{"id": id})
		}
		return err
	}

	if err := s.resources.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateDashboard(ctx)
	s.publishResourceEvent(ctx, events.EventResourceDeleted, actor, resource)
	return nil
}

// Dashboard returns aggregated counts, served from the redis cache when a
// fresh copy exists.
func (s *InventoryService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var stats domain.DashboardStats
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.resources.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			_ = s.cache.Set(ctx, dashboardCacheKey, payload, s.cacheTTL).Err()
		}
	}
	return stats, nil
}

func (s *InventoryService) invalidateDashboard(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, dashboardCacheKey).Err()
	}
}

func (s *InventoryService) publishResourceEvent(ctx context.Context, eventType events.EventType, actor *domain.Account, resource *domain.Resource) {
	if s.dispatcher == nil || actor == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{AccountID: actor.ID, Username: actor.Username, Role: actor.Role},
		Timestamp: time.Now(),
		Payload: events.ResourceChangedPayload{
			ResourceID: resource.ID,
			Name:       resource.Name,
			Kind:       resource.Kind,
		},
	})
}
