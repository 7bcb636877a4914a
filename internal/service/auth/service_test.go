package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"flowx-relief/internal/config"
	"flowx-relief/internal/domain"
	"flowx-relief/internal/mocks"
	"flowx-relief/internal/repository"
)

type fixture struct {
	users    *mocks.UserRepository
	sessions *mocks.SessionRepository
	areas    *mocks.AreaRepository
	email    *mocks.EmailService
	svc      *service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("officer-code"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:        "test-secret-test-secret-test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		SecurityCodes: map[string][]string{
			"grama_sevaka":       {"gs-2025"},
			"government_officer": {string(hashed)},
		},
	}
	f := &fixture{
		users:    new(mocks.UserRepository),
		sessions: new(mocks.SessionRepository),
		areas:    new(mocks.AreaRepository),
		email:    new(mocks.EmailService),
	}
	f.svc = NewService(f.users, f.sessions, f.areas, f.email, cfg).(*service)
	f.svc.cost = bcrypt.MinCost
	return f
}

func TestRegister_CitizenGetsHouse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gn := int64(31)

	f.users.On("ExistsByEmail", ctx, "nimal@example.org").Return(false, nil).Once()
	f.areas.On("GetGNDivision", ctx, gn).Return(&domain.GNDivision{ID: gn, DivisionalSecretariatID: 5}, nil).Once()
	f.areas.On("FindOrCreateHouse", ctx, gn, "12/A", "Temple Rd").Return(int64(400), nil).Once()
	f.users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleCitizen && *u.HouseID == 400 && *u.DivisionalSecretariatID == 5 && u.Locale == "en"
	})).Return(nil).Once()
	f.email.On("SendWelcomeEmail", ctx, "nimal@example.org", "Nimal Perera", "en").Return(nil).Once()
	f.sessions.On("Create", ctx, mock.Anything).Return(nil).Once()

	user, tokens, err := f.svc.Register(ctx, domain.RegisterInput{
		Email: "nimal@example.org", Password: "password123", FullName: "Nimal Perera",
		GNDivisionID: &gn, HouseNumber: " 12/A ", Address: "Temple Rd",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	claims, err := f.svc.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	actor := claims.Actor()
	assert.Equal(t, domain.RoleCitizen, actor.Role)
	require.NotNil(t, actor.HouseID)
	assert.Equal(t, int64(400), *actor.HouseID)
	f.areas.AssertExpectations(t)
}

func TestRegister_SecurityCodes(t *testing.T) {
	ds := int64(5)
	gn := int64(31)

	t.Run("plain code", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
		f.areas.On("GetGNDivision", mock.Anything, gn).Return(&domain.GNDivision{ID: gn, DivisionalSecretariatID: ds}, nil)
		f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.email.On("SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.sessions.On("Create", mock.Anything, mock.Anything).Return(nil)

		user, _, err := f.svc.Register(context.Background(), domain.RegisterInput{
			Email: "gs@example.org", Password: "password123", FullName: "Grama Sevaka",
			Role: domain.RoleGramaSevaka, SecurityCode: "gs-2025", GNDivisionID: &gn,
		})
		require.NoError(t, err)
		assert.Nil(t, user.HouseID)
		assert.Equal(t, gn, *user.GNDivisionID)
	})

	t.Run("hashed code", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
		f.areas.On("GetDivisionalSecretariat", mock.Anything, ds).Return(&domain.DivisionalSecretariat{ID: ds}, nil)
		f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.email.On("SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.sessions.On("Create", mock.Anything, mock.Anything).Return(nil)

		user, _, err := f.svc.Register(context.Background(), domain.RegisterInput{
			Email: "go@example.org", Password: "password123", FullName: "Officer",
			Role: domain.RoleGovernmentOfficer, SecurityCode: "officer-code", DivisionalSecretariatID: &ds,
		})
		require.NoError(t, err)
		assert.Equal(t, ds, *user.DivisionalSecretariatID)
	})

	t.Run("wrong code", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.svc.Register(context.Background(), domain.RegisterInput{
			Email: "x@example.org", Password: "password123", FullName: "X",
			Role: domain.RoleGramaSevaka, SecurityCode: "guess", GNDivisionID: &gn,
		})
		assert.ErrorIs(t, err, ErrInvalidSecurityCode)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.users.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("admin without configured codes", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.svc.Register(context.Background(), domain.RegisterInput{
			Role: domain.RoleAdmin, SecurityCode: "anything",
		})
		assert.ErrorIs(t, err, ErrInvalidSecurityCode)
	})
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.users.On("ExistsByEmail", mock.Anything, "taken@example.org").Return(true, nil).Once()

	_, _, err := f.svc.Register(context.Background(), domain.RegisterInput{Email: "taken@example.org"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("GetByEmail", ctx, "a@example.org").Return(&domain.User{PasswordHash: string(hash), IsActive: true}, nil).Once()
		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: "a@example.org", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("GetByEmail", ctx, "a@example.org").Return(&domain.User{PasswordHash: string(hash)}, nil).Once()
		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: "a@example.org", Password: "password123"})
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})

	t.Run("records client meta on the session", func(t *testing.T) {
		f := newFixture(t)
		ctx := domain.WithRequestMeta(ctx, domain.RequestMeta{IPAddress: "10.0.0.1", UserAgent: "curl"})
		f.users.On("GetByEmail", ctx, "a@example.org").Return(&domain.User{ID: uuid.New(), Role: domain.RoleAdmin, PasswordHash: string(hash), IsActive: true}, nil).Once()
		f.sessions.On("Create", ctx, mock.MatchedBy(func(s *repository.Session) bool {
			return s.IPAddress != nil && *s.IPAddress == "10.0.0.1" && *s.UserAgent == "curl"
		})).Return(nil).Once()

		_, tokens, err := f.svc.Login(ctx, domain.LoginInput{Email: "a@example.org", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, int64(900), tokens.ExpiresIn)
		f.sessions.AssertExpectations(t)
	})
}

func TestRefreshToken_Rotates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	sessionID := uuid.New()

	f.sessions.On("GetByTokenHash", ctx, hashToken("old-refresh")).Return(&repository.Session{ID: sessionID, UserID: userID}, nil).Once()
	f.users.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, Role: domain.RoleAdmin, IsActive: true}, nil).Once()
	f.sessions.On("Revoke", ctx, sessionID).Return(nil).Once()
	f.sessions.On("Create", ctx, mock.Anything).Return(nil).Once()

	tokens, err := f.svc.RefreshToken(ctx, "old-refresh")
	require.NoError(t, err)
	assert.NotEqual(t, "old-refresh", tokens.RefreshToken)
	f.sessions.AssertExpectations(t)
}

func TestRefreshToken_Unknown(t *testing.T) {
	f := newFixture(t)
	f.sessions.On("GetByTokenHash", mock.Anything, mock.Anything).Return(nil, nil).Once()
	_, err := f.svc.RefreshToken(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	f := newFixture(t)
	f.sessions.On("Create", mock.Anything, mock.Anything).Return(nil)
	issued := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return issued }

	tokens, err := f.svc.generateTokenPair(context.Background(), &domain.User{ID: uuid.New(), Role: domain.RoleCitizen})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = f.svc.ValidateAccessToken(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
