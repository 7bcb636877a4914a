package handler

import (
	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/service/report"
)

type ReportHandler struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) ExportHistory(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	kind, err := kindQuery(c)
	if err != nil {
		return err
	}

	rep, err := h.reportService.ExportHistory(c.UserContext(), actor, kind, locale(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Report ready", rep)
}
