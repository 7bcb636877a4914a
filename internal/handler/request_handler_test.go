package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/middleware"
	"flowx-relief/internal/mocks"
)

func newTestApp(user *domain.User) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	if user != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(middleware.UserContextKey, user)
			c.Locals(middleware.ActorContextKey, user.Actor())
			return c.Next()
		})
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func sevaka() *domain.User {
	gn := int64(31)
	ds := int64(5)
	return &domain.User{ID: uuid.New(), Role: domain.RoleGramaSevaka, GNDivisionID: &gn, DivisionalSecretariatID: &ds, IsActive: true}
}

func requestRoutes(app *fiber.App, h *RequestHandler) {
	app.Get("/requests/:role/:view", h.List)
	app.Post("/requests", h.Create)
	app.Put("/requests/:id/status", h.Transition)
}

func TestRequestHandler_List(t *testing.T) {
	user := sevaka()
	svc := new(mocks.RequestService)
	app := newTestApp(user)
	requestRoutes(app, NewRequestHandler(svc))

	kind := domain.KindVictim
	svc.On("ListForActor", mock.Anything, user.Actor(), domain.RequestFilter{View: domain.ViewPending, Kind: &kind}).
		Return([]domain.Request{{ID: 9, Kind: domain.KindVictim, Status: domain.StatusPending}}, nil).Once()

	resp, body := doJSON(t, app, fiber.MethodGet, "/requests/grama_sevaka/pending?kind=victim", "")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "OK", body["message"])
	items := body["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, float64(9), items[0].(map[string]interface{})["id"])
	svc.AssertExpectations(t)
}

func TestRequestHandler_ListRoleMismatch(t *testing.T) {
	svc := new(mocks.RequestService)
	app := newTestApp(sevaka())
	requestRoutes(app, NewRequestHandler(svc))

	resp, body := doJSON(t, app, fiber.MethodGet, "/requests/government_officer/pending", "")
	assert.Equal(t, 403, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
	svc.AssertNotCalled(t, "ListForActor", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestHandler_ListBadInput(t *testing.T) {
	app := newTestApp(sevaka())
	requestRoutes(app, NewRequestHandler(new(mocks.RequestService)))

	resp, _ := doJSON(t, app, fiber.MethodGet, "/requests/grama_sevaka/archived", "")
	assert.Equal(t, 404, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodGet, "/requests/grama_sevaka/history?kind=loan", "")
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestRequestHandler_Transition(t *testing.T) {
	user := sevaka()
	svc := new(mocks.RequestService)
	app := newTestApp(user)
	requestRoutes(app, NewRequestHandler(svc))

	remarks := "verified on site"
	svc.On("Transition", mock.Anything, user.Actor(), int64(42), domain.TransitionInput{Status: domain.StatusApproved, Remarks: &remarks}).
		Return(&domain.Request{ID: 42, Status: domain.StatusApproved}, nil).Once()

	resp, body := doJSON(t, app, fiber.MethodPut, "/requests/42/status", `{"status":"approved","remarks":"verified on site"}`)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "approved", body["data"].(map[string]interface{})["status"])
}

func TestRequestHandler_TransitionErrors(t *testing.T) {
	user := sevaka()
	svc := new(mocks.RequestService)
	app := newTestApp(user)
	requestRoutes(app, NewRequestHandler(svc))

	resp, body := doJSON(t, app, fiber.MethodPut, "/requests/42/status", `{"status":"archived"}`)
	assert.Equal(t, 400, resp.StatusCode)
	details := body["details"].([]interface{})
	assert.Equal(t, "status", details[0].(map[string]interface{})["field"])

	resp, _ = doJSON(t, app, fiber.MethodPut, "/requests/abc/status", `{"status":"approved"}`)
	assert.Equal(t, 400, resp.StatusCode)

	svc.On("Transition", mock.Anything, mock.Anything, int64(43), mock.Anything).
		Return(nil, fmt.Errorf("status changed concurrently: %w", domain.ErrInvalidTransition)).Once()
	resp, body = doJSON(t, app, fiber.MethodPut, "/requests/43/status", `{"status":"rejected"}`)
	assert.Equal(t, 409, resp.StatusCode)
	assert.Contains(t, body["message"], "status changed concurrently")

	svc.On("Transition", mock.Anything, mock.Anything, int64(44), mock.Anything).Return(nil, domain.ErrNotFound).Once()
	resp, _ = doJSON(t, app, fiber.MethodPut, "/requests/44/status", `{"status":"approved"}`)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestRequestHandler_Create(t *testing.T) {
	house := int64(400)
	citizen := &domain.User{ID: uuid.New(), Role: domain.RoleCitizen, HouseID: &house, IsActive: true}
	svc := new(mocks.RequestService)
	app := newTestApp(citizen)
	requestRoutes(app, NewRequestHandler(svc))

	svc.On("Create", mock.Anything, citizen.Actor(), mock.MatchedBy(func(in domain.CreateRequestInput) bool {
		return in.Kind == domain.KindShelter && in.EmergencyLevel == domain.EmergencyCritical
	})).Return(&domain.Request{ID: 1, Kind: domain.KindShelter, Status: domain.StatusPending}, nil).Once()

	resp, body := doJSON(t, app, fiber.MethodPost, "/requests",
		`{"kind":"shelter","title":"House flooded","message":"Family of five","emergency_level":"critical"}`)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "Request submitted", body["message"])

	svc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateRequest).Once()
	resp, body = doJSON(t, app, fiber.MethodPost, "/requests",
		`{"kind":"victim","title":"Food","message":"Need rations","emergency_level":"low"}`)
	assert.Equal(t, 409, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body["code"])
}

func TestRequestHandler_Unauthenticated(t *testing.T) {
	app := newTestApp(nil)
	requestRoutes(app, NewRequestHandler(new(mocks.RequestService)))

	resp, _ := doJSON(t, app, fiber.MethodGet, "/requests/citizen/pending", "")
	assert.Equal(t, 401, resp.StatusCode)
}
