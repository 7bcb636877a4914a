package handler

import (
	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/service/area"
)

type AreaHandler struct {
	areaService area.Service
}

func NewAreaHandler(areaService area.Service) *AreaHandler {
	return &AreaHandler{areaService: areaService}
}

func (h *AreaHandler) Districts(c *fiber.Ctx) error {
	items, err := h.areaService.ListDistricts(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", items)
}

func (h *AreaHandler) DivisionalSecretariats(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.areaService.ListDivisionalSecretariats(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", items)
}

func (h *AreaHandler) GNDivisions(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.areaService.ListGNDivisions(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", items)
}

// Name serves GET /area/:type/:id/name.
func (h *AreaHandler) Name(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	areaType := domain.AreaType(c.Params("type"))

	name, err := h.areaService.Name(c.UserContext(), areaType, id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", fiber.Map{"type": areaType, "id": id, "name": name})
}
