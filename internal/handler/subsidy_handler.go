package handler

import (
	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/service/request"
	"flowx-relief/internal/service/subsidy"
)

type SubsidyHandler struct {
	subsidyService subsidy.Service
	requestService request.Service
}

func NewSubsidyHandler(subsidyService subsidy.Service, requestService request.Service) *SubsidyHandler {
	return &SubsidyHandler{
		subsidyService: subsidyService,
		requestService: requestService,
	}
}

// List returns the subsidies of ?flood_id, or of the current flood.
func (h *SubsidyHandler) List(c *fiber.Ctx) error {
	var (
		items []domain.Subsidy
		err   error
	)
	if floodID := c.QueryInt("flood_id", 0); floodID > 0 {
		items, err = h.subsidyService.ListByFlood(c.UserContext(), int64(floodID))
	} else {
		items, err = h.subsidyService.ListCurrent(c.UserContext())
	}
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", items)
}

func (h *SubsidyHandler) Create(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var input domain.CreateSubsidyInput
	if err := bind(c, &input); err != nil {
		return err
	}

	s, err := h.subsidyService.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Subsidy created", s)
}

func (h *SubsidyHandler) Update(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var input domain.UpdateSubsidyInput
	if err := bind(c, &input); err != nil {
		return err
	}

	s, err := h.subsidyService.Update(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Subsidy updated", s)
}

// CreateRequest assigns a subsidy to a house.
func (h *SubsidyHandler) CreateRequest(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var input domain.CreateSubsidyRequestInput
	if err := bind(c, &input); err != nil {
		return err
	}

	req, err := h.requestService.CreateSubsidyRequest(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Subsidy request created", req)
}
