package domain

import "time"

// ResourceStatus tracks the current state of an inventory item.
type ResourceStatus string

const (
	ResourceStatusAvailable   ResourceStatus = "available"
	ResourceStatusInUse       ResourceStatus = "in_use"
	ResourceStatusMaintenance ResourceStatus = "maintenance"
)

// Resource models an inventory item (equipment, vehicle, security device).
type Resource struct {
	ID        int64
	Name      string
	Kind      string
	Quantity  int
	Status    ResourceStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DashboardStats aggregates inventory counts for the dashboard view.
type DashboardStats struct {
	TotalQuantity int64            `json:"total_quantity"`
	ByKind        map[string]int64 `json:"by_kind"`
	ByStatus      map[string]int64 `json:"by_status"`
}
