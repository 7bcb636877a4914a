package handler

import (
	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/service/audit"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) GetRecentActivities(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	logs, err := h.auditService.GetRecentActivities(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", logs)
}

// ListByEntity serves GET /audit/:entity/:id, e.g. /audit/request/42.
func (h *AuditHandler) ListByEntity(c *fiber.Ctx) error {
	page, err := h.auditService.ListByEntity(c.UserContext(), c.Params("entity"), c.Params("id"), getPaginationParams(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", page)
}
