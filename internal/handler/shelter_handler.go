package handler

import (
	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/service/shelter"
)

type ShelterHandler struct {
	shelterService shelter.Service
}

func NewShelterHandler(shelterService shelter.Service) *ShelterHandler {
	return &ShelterHandler{shelterService: shelterService}
}

func (h *ShelterHandler) List(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	items, err := h.shelterService.List(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", items)
}

func (h *ShelterHandler) Create(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var input domain.CreateShelterInput
	if err := bind(c, &input); err != nil {
		return err
	}

	s, err := h.shelterService.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Shelter created", s)
}

func (h *ShelterHandler) Update(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var input domain.UpdateShelterInput
	if err := bind(c, &input); err != nil {
		return err
	}

	s, err := h.shelterService.Update(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Shelter updated", s)
}
