package handler

import (
	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/service/dashboard"
	"flowx-relief/internal/service/request"
)

type DonationHandler struct {
	requestService   request.Service
	dashboardService dashboard.Service
}

func NewDonationHandler(requestService request.Service, dashboardService dashboard.Service) *DonationHandler {
	return &DonationHandler{
		requestService:   requestService,
		dashboardService: dashboardService,
	}
}

// Create accepts a public donation pledge.
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateDonationInput
	if err := bind(c, &input); err != nil {
		return err
	}

	donation, err := h.requestService.CreateDonation(c.UserContext(), input)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Thank you, your donation has been recorded", donation)
}

func (h *DonationHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetDonationStats(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", stats)
}
