package handler

import (
	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/service/flood"
)

type FloodHandler struct {
	floodService flood.Service
}

func NewFloodHandler(floodService flood.Service) *FloodHandler {
	return &FloodHandler{floodService: floodService}
}

func (h *FloodHandler) List(c *fiber.Ctx) error {
	floods, err := h.floodService.List(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", floods)
}

func (h *FloodHandler) Current(c *fiber.Ctx) error {
	f, err := h.floodService.Current(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", f)
}

func (h *FloodHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	f, err := h.floodService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", f)
}

func (h *FloodHandler) Create(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var input domain.CreateFloodInput
	if err := bind(c, &input); err != nil {
		return err
	}

	f, err := h.floodService.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Flood created", f)
}

func (h *FloodHandler) Update(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var input domain.UpdateFloodInput
	if err := bind(c, &input); err != nil {
		return err
	}

	f, err := h.floodService.Update(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Flood updated", f)
}

func (h *FloodHandler) UpsertDetail(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var input domain.FloodDetailInput
	if err := bind(c, &input); err != nil {
		return err
	}

	detail, err := h.floodService.UpsertDetail(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Flood detail saved", detail)
}

func (h *FloodHandler) ListDetails(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	details, err := h.floodService.ListDetails(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", details)
}

func (h *FloodHandler) Statistics(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	stats, err := h.floodService.Statistics(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", stats)
}
