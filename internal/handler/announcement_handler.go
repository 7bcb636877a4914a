package handler

import (
	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/service/announcement"
)

type AnnouncementHandler struct {
	announcementService announcement.Service
}

func NewAnnouncementHandler(announcementService announcement.Service) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	page, err := h.announcementService.List(c.UserContext(), getPaginationParams(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", page)
}

func (h *AnnouncementHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.announcementService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", a)
}

func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var input domain.CreateAnnouncementInput
	if err := bind(c, &input); err != nil {
		return err
	}

	a, err := h.announcementService.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Announcement published", a)
}

func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.announcementService.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Announcement deleted", nil)
}
