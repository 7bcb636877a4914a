package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/mocks"
	"flowx-relief/internal/service/notification"
)

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestList_NormalizesPaging(t *testing.T) {
	notifRepo := new(mocks.NotificationRepository)
	svc := notification.NewService(notifRepo, new(mocks.UserRepository), nil)

	userID := uuid.New()
	items := []domain.Notification{{ID: uuid.New(), UserID: userID}}
	notifRepo.On("ListByUser", mock.Anything, userID, true, domain.PaginationParams{Page: 1, PageSize: domain.DefaultPageSize}).
		Return(items, int64(1), nil)

	page, err := svc.List(context.Background(), userID, true, domain.PaginationParams{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.TotalPages)
	notifRepo.AssertExpectations(t)
}

func TestNotifyRequestSubmitted_ReachesAreaStaff(t *testing.T) {
	notifRepo := new(mocks.NotificationRepository)
	userRepo := new(mocks.UserRepository)
	svc := notification.NewService(notifRepo, userRepo, nil)

	sevaka := domain.User{ID: uuid.New(), Role: domain.RoleGramaSevaka, Locale: "en"}
	officer := domain.User{ID: uuid.New(), Role: domain.RoleGovernmentOfficer, Locale: "si"}
	userRepo.On("ListStaffFor", mock.Anything, int64(11), int64(3)).Return([]domain.User{sevaka, officer}, nil)
	notifRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil).Twice()

	req := &domain.Request{ID: 8, Kind: domain.KindVictim, GNDivisionID: int64Ptr(11), DivisionalSecretariatID: 3}
	require.NoError(t, svc.NotifyRequestSubmitted(context.Background(), req))

	notifRepo.AssertNumberOfCalls(t, "Create", 2)
	created := notifRepo.Calls[0].Arguments.Get(1).(*domain.Notification)
	assert.Equal(t, sevaka.ID, created.UserID)
	assert.Equal(t, domain.NotifRequestSubmitted, created.Type)
	assert.Contains(t, string(created.Data), `"request_id":8`)
}

func TestNotifyStatusChanged_CitizenOwner(t *testing.T) {
	notifRepo := new(mocks.NotificationRepository)
	userRepo := new(mocks.UserRepository)
	svc := notification.NewService(notifRepo, userRepo, nil)

	owner := &domain.User{ID: uuid.New(), Role: domain.RoleCitizen, Locale: "ta"}
	userRepo.On("GetByID", mock.Anything, owner.ID).Return(owner, nil)
	notifRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil).Once()

	req := &domain.Request{ID: 4, Kind: domain.KindShelter, Status: domain.StatusApproved, RequestedBy: &owner.ID}
	require.NoError(t, svc.NotifyStatusChanged(context.Background(), req, domain.StatusPending))

	created := notifRepo.Calls[0].Arguments.Get(1).(*domain.Notification)
	assert.Equal(t, owner.ID, created.UserID)
	assert.Contains(t, string(created.Data), `"previous_status":"pending"`)
	userRepo.AssertNotCalled(t, "ListByHouse", mock.Anything, mock.Anything)
}

func TestNotifyStatusChanged_FallsBackToHousehold(t *testing.T) {
	notifRepo := new(mocks.NotificationRepository)
	userRepo := new(mocks.UserRepository)
	svc := notification.NewService(notifRepo, userRepo, nil)

	members := []domain.User{{ID: uuid.New(), Locale: "en"}, {ID: uuid.New(), Locale: "en"}, {ID: uuid.New(), Locale: "si"}}
	userRepo.On("ListByHouse", mock.Anything, int64(21)).Return(members, nil)
	notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := &domain.Request{ID: 4, Kind: domain.KindSubsidy, Status: domain.StatusDistributed, HouseID: int64Ptr(21)}
	require.NoError(t, svc.NotifyStatusChanged(context.Background(), req, domain.StatusApproved))

	notifRepo.AssertNumberOfCalls(t, "Create", 3)
}

func TestNotifyStatusChanged_DonationEmailsDonor(t *testing.T) {
	notifRepo := new(mocks.NotificationRepository)
	emailSvc := new(mocks.EmailService)
	svc := notification.NewService(notifRepo, new(mocks.UserRepository), emailSvc)

	emailSvc.On("SendDonationStatusEmail", mock.Anything, "donor@example.com", "Nimal", int64(6), "collected").Return(nil)

	req := &domain.Request{
		ID:         6,
		Kind:       domain.KindDonation,
		Status:     domain.StatusCollected,
		DonorName:  strPtr("Nimal"),
		DonorEmail: strPtr("donor@example.com"),
	}
	require.NoError(t, svc.NotifyStatusChanged(context.Background(), req, domain.StatusApproved))

	emailSvc.AssertExpectations(t)
	notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotifyAnnouncement_SkipsAuthorAndToleratesFailures(t *testing.T) {
	notifRepo := new(mocks.NotificationRepository)
	userRepo := new(mocks.UserRepository)
	svc := notification.NewService(notifRepo, userRepo, nil)

	author := uuid.New()
	other := uuid.New()
	userRepo.On("ListActiveIDs", mock.Anything).Return([]uuid.UUID{author, other}, nil)
	notifRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()

	a := &domain.Announcement{ID: 3, Title: "Evacuate", Description: "Move to higher ground", AuthorID: author, EmergencyLevel: domain.EmergencyCritical}
	require.NoError(t, svc.NotifyAnnouncement(context.Background(), a))

	created := notifRepo.Calls[0].Arguments.Get(1).(*domain.Notification)
	assert.Equal(t, other, created.UserID)
	assert.Equal(t, domain.NotifAnnouncement, created.Type)
}
