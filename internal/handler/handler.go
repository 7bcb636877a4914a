package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/middleware"
	"flowx-relief/internal/pkg/i18n"
	"flowx-relief/internal/pkg/validator"
	"flowx-relief/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Request      *RequestHandler
	Donation     *DonationHandler
	Flood        *FloodHandler
	Subsidy      *SubsidyHandler
	Shelter      *ShelterHandler
	Announcement *AnnouncementHandler
	Area         *AreaHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
	Dashboard    *DashboardHandler
	Report       *ReportHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Request:      NewRequestHandler(services.Request),
		Donation:     NewDonationHandler(services.Request, services.Dashboard),
		Flood:        NewFloodHandler(services.Flood),
		Subsidy:      NewSubsidyHandler(services.Subsidy, services.Request),
		Shelter:      NewShelterHandler(services.Shelter),
		Announcement: NewAnnouncementHandler(services.Announcement),
		Area:         NewAreaHandler(services.Area),
		Notification: NewNotificationHandler(services.Notification),
		Audit:        NewAuditHandler(services.Audit),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		Report:       NewReportHandler(services.Report),
	}
}

// Response is the success envelope.
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

var validate = validator.New()

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Response{Message: message, Data: data})
}

// bind parses the body into dst and validates it.
func bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	return validate.Struct(dst)
}

func currentActor(c *fiber.Ctx) (domain.Actor, error) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return domain.Actor{}, middleware.Unauthorized("User not found")
	}
	return actor, nil
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.BadRequest("Invalid " + name)
	}
	return id, nil
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.PaginationParams{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", domain.DefaultPageSize),
	}
	params.Normalize()
	return params
}

// kindQuery reads an optional ?kind= filter.
func kindQuery(c *fiber.Ctx) (*domain.RequestKind, error) {
	raw := c.Query("kind")
	if raw == "" {
		return nil, nil
	}
	kind := domain.RequestKind(raw)
	if !kind.IsValid() {
		return nil, domain.NewValidationError("kind", "must be victim, shelter, donation or subsidy")
	}
	return &kind, nil
}

// locale prefers the user's saved locale, then Accept-Language.
func locale(c *fiber.Ctx) string {
	if user := middleware.GetCurrentUser(c); user != nil && user.Locale != "" {
		return user.Locale
	}
	if l := c.AcceptsLanguages("en", "si", "ta"); l != "" {
		return l
	}
	return i18n.DefaultLocale
}
