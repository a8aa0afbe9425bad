package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/service"
)

// DashboardHandler serves aggregated inventory counts.
type DashboardHandler struct {
	inventory *service.InventoryService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(inventory *service.InventoryService) *DashboardHandler {
	return &DashboardHandler{inventory: inventory}
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	stats, err := h.inventory.Dashboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
