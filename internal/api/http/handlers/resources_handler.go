package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/service"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// ResourcesHandler exposes the inventory CRUD endpoints.
type ResourcesHandler struct {
	inventory *service.InventoryService
}

// NewResourcesHandler constructs handler.
func NewResourcesHandler(inventory *service.InventoryService) *ResourcesHandler {
	return &ResourcesHandler{inventory: inventory}
}

// List handles GET /api/resources.
func (h *ResourcesHandler) List(c *fiber.Ctx) error {
	resources, err := h.inventory.ListResources(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.ResourceResponse, 0, len(resources))
	for _, resource := range resources {
		out = append(out, dto.NewResourceResponse(resource))
	}
	return c.JSON(fiber.Map{"resources": out})
}

// Create handles POST /api/resources.
func (h *ResourcesHandler) Create(c *fiber.Ctx) error {
	account, _ := auth.AccountFromContext(c)

	var req dto.CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	resource := &domain.Resource{
		Name:     req.Name,
		Kind:     req.Kind,
		Quantity: quantity,
		Status:   domain.ResourceStatus(req.Status),
	}
	if err := h.inventory.CreateResource(c.Context(), account, resource); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":  "resource created",
		"resource": dto.NewResourceResponse(resource),
	})
}

// Update handles PUT /api/resources/:id.
func (h *ResourcesHandler) Update(c *fiber.Ctx) error {
	account, _ := auth.AccountFromContext(c)

	id, err := resourceID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var status *domain.ResourceStatus
	if req.Status != nil {
		s := domain.ResourceStatus(*req.Status)
		status = &s
	}

	resource, err := h.inventory.UpdateResource(c.Context(), account, id, req.Name, req.Kind, req.Quantity, status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":  "resource updated",
		"resource": dto.NewResourceResponse(resource),
	})
}

// Delete handles DELETE /api/resources/:id.
func (h *ResourcesHandler) Delete(c *fiber.Ctx) error {
	account, _ := auth.AccountFromContext(c)

	id, err := resourceID(c)
	if err != nil {
		return err
	}

	if err := h.inventory.DeleteResource(c.Context(), account, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "resource deleted"})
}

func resourceID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid resource id", nil)
	}
	return id, nil
}
