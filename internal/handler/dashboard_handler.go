package handler

import (
	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	kind, err := kindQuery(c)
	if err != nil {
		return err
	}

	stats, err := h.dashboardService.GetStats(c.UserContext(), actor, kind)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", stats)
}
