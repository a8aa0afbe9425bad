package dto

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// CreateResourceRequest payload for POST /api/resources. Quantity is a
// pointer so an explicit 0 is distinguishable from an omitted field, which
// defaults to 1.
type CreateResourceRequest struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Quantity *int   `json:"quantity"`
	Status   string `json:"status"`
}

// UpdateResourceRequest payload for PUT /api/resources/:id. Pointer fields
// distinguish "omitted" from zero values so updates stay partial.
type UpdateResourceRequest struct {
	Name     *string `json:"name"`
	Kind     *string `json:"kind"`
	Quantity *int    `json:"quantity"`
	Status   *string `json:"status"`
}

// ResourceResponse is the wire shape of a single inventory item.
type ResourceResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewResourceResponse maps a domain resource to its wire shape.
func NewResourceResponse(resource *domain.Resource) ResourceResponse {
	return ResourceResponse{
		ID:        resource.ID,
		Name:      resource.Name,
		Kind:      resource.Kind,
		Quantity:  resource.Quantity,
		Status:    string(resource.Status),
		CreatedAt: resource.CreatedAt,
		UpdatedAt: resource.UpdatedAt,
	}
}
