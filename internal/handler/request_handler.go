package handler

import (
	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/middleware"
	"flowx-relief/internal/service/request"
)

type RequestHandler struct {
	requestService request.Service
}

func NewRequestHandler(requestService request.Service) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// List serves GET /requests/:role/:view. The role segment names the portal
// and must match the caller's own role.
func (h *RequestHandler) List(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if domain.Role(c.Params("role")) != actor.Role {
		return middleware.Forbidden("Role does not match the signed in user")
	}

	view := domain.RequestView(c.Params("view"))
	if !view.IsValid() {
		return middleware.NotFound("Unknown view")
	}
	kind, err := kindQuery(c)
	if err != nil {
		return err
	}

	items, err := h.requestService.ListForActor(c.UserContext(), actor, domain.RequestFilter{View: view, Kind: kind})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", items)
}

func (h *RequestHandler) Get(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	req, err := h.requestService.Get(c.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", req)
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var input domain.CreateRequestInput
	if err := bind(c, &input); err != nil {
		return err
	}

	req, err := h.requestService.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Request submitted", req)
}

func (h *RequestHandler) Transition(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var input domain.TransitionInput
	if err := bind(c, &input); err != nil {
		return err
	}

	req, err := h.requestService.Transition(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Request updated", req)
}
