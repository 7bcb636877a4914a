package handler

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/mocks"
	"flowx-relief/internal/service/area"
)

func TestAreaHandler_Name(t *testing.T) {
	repo := new(mocks.AreaRepository)
	repo.On("Name", mock.Anything, domain.AreaDivisionalSecretariat, int64(5)).Return("Kaduwela", nil).Once()
	repo.On("Name", mock.Anything, domain.AreaGNDivision, int64(999)).Return("", nil).Once()

	app := newTestApp(nil)
	h := NewAreaHandler(area.NewService(repo, nil))
	app.Get("/area/:type/:id/name", h.Name)

	resp, body := doJSON(t, app, fiber.MethodGet, "/area/divisional_secretariat/5/name", "")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Kaduwela", body["data"].(map[string]interface{})["name"])

	resp, _ = doJSON(t, app, fiber.MethodGet, "/area/grama_niladhari_division/999/name", "")
	assert.Equal(t, 404, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/area/province/1/name", "")
	assert.Equal(t, 400, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/area/district/x/name", "")
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDonationHandler_Create(t *testing.T) {
	svc := new(mocks.RequestService)
	app := newTestApp(nil)
	h := NewDonationHandler(svc, nil)
	app.Post("/donations", h.Create)

	svc.On("CreateDonation", mock.Anything, mock.MatchedBy(func(in domain.CreateDonationInput) bool {
		return in.Email == "donor@example.org" && in.DivisionalSecretariatID == 5
	})).Return(&domain.Request{ID: 77, Kind: domain.KindDonation, Status: domain.StatusNew}, nil).Once()

	resp, body := doJSON(t, app, fiber.MethodPost, "/donations",
		`{"fullname":"Sunil","donation_email":"donor@example.org","category":"food","message":"50kg rice","divisional_secretariat_id":5}`)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "new", body["data"].(map[string]interface{})["status"])

	resp, body = doJSON(t, app, fiber.MethodPost, "/donations", `{"fullname":"Sunil","donation_email":"nope"}`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.NotEmpty(t, body["details"])
}
