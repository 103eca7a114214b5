package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/casaflow/community-service/internal/api/dto"
	"github.com/casaflow/community-service/internal/auth"
	"github.com/casaflow/community-service/internal/domain"
	"github.com/casaflow/community-service/internal/service"
	apperrors "github.com/casaflow/community-service/pkg/util/errorutil"
)

// WorkItemsHandler exposes work-item read and approval endpoints.
type WorkItemsHandler struct {
	workItems *service.WorkItemService
}

// NewWorkItemsHandler constructs handler.
func NewWorkItemsHandler(workItems *service.WorkItemService) *WorkItemsHandler {
	return &WorkItemsHandler{workItems: workItems}
}

// List GET /work-items.
func (h *WorkItemsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Resident == nil {
		return apperrors.NewUnauthorized("resident required")
	}
	items, err := h.workItems.List(c.Context(), principal.Resident, parseWorkItemQuery(c))
	if err != nil {
		return err
	}
	responses := make([]dto.WorkItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, workItemResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get GET /work-items/:id.
func (h *WorkItemsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Resident == nil {
		return apperrors.NewUnauthorized("resident required")
	}
	item, err := h.workItems.Get(c.Context(), principal.Resident, c.Params("id"))
	if err != nil {
		return err
	}
	resp := workItemResponse(item)
	resp.TechnicianName = h.workItems.TechnicianName(c.Context(), item)
	return c.JSON(fiber.Map{"data": resp})
}

// Approve POST /work-items/:id/approve (owner only).
func (h *WorkItemsHandler) Approve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Resident == nil {
		return apperrors.NewUnauthorized("resident required")
	}
	item, err := h.workItems.ApproveService(c.Context(), principal.Resident, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": workItemResponse(item)})
}

func parseWorkItemQuery(c *fiber.Ctx) service.WorkItemListFilter {
	filter := service.WorkItemListFilter{}
	if kindStr := c.Query("kind"); kindStr != "" {
		kind := domain.WorkItemKind(strings.ToUpper(strings.TrimSpace(kindStr)))
		filter.Kind = &kind
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.WorkItemStatus(strings.ToUpper(strings.TrimSpace(part))))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.Priority(strings.ToUpper(strings.TrimSpace(part))))
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
