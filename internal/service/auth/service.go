package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"flowx-relief/internal/config"
	"flowx-relief/internal/domain"
	"flowx-relief/internal/pkg/i18n"
	"flowx-relief/internal/repository"
	"flowx-relief/internal/service/email"
)

var (
	ErrInvalidCredentials  = fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	ErrInvalidToken        = fmt.Errorf("invalid or expired token: %w", domain.ErrUnauthorized)
	ErrEmailExists         = fmt.Errorf("email already registered: %w", domain.ErrConflict)
	ErrInvalidSecurityCode = fmt.Errorf("invalid security code: %w", domain.ErrForbidden)
	ErrAccountDisabled     = fmt.Errorf("account disabled: %w", domain.ErrForbidden)
)

type Service interface {
	Register(ctx context.Context, input domain.RegisterInput) (*domain.User, *domain.TokenPair, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(token string) (*Claims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Claims carries the role and scope references so requests can be scoped
// without a user lookup.
type Claims struct {
	UserID                  uuid.UUID   `json:"user_id"`
	Role                    domain.Role `json:"role"`
	DivisionalSecretariatID *int64      `json:"ds_id,omitempty"`
	GNDivisionID            *int64      `json:"gn_id,omitempty"`
	HouseID                 *int64      `json:"house_id,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Actor() domain.Actor {
	return domain.Actor{
		ID:                      c.UserID,
		Role:                    c.Role,
		DivisionalSecretariatID: c.DivisionalSecretariatID,
		GNDivisionID:            c.GNDivisionID,
		HouseID:                 c.HouseID,
	}
}

type service struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	areaRepo     repository.AreaRepository
	emailService email.Service
	cfg          *config.Config
	cost         int
	now          func() time.Time
}

func NewService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, areaRepo repository.AreaRepository, emailService email.Service, cfg *config.Config) Service {
	return &service{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		areaRepo:     areaRepo,
		emailService: emailService,
		cfg:          cfg,
		cost:         bcrypt.DefaultCost,
		now:          time.Now,
	}
}

func (s *service) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, *domain.TokenPair, error) {
	if input.Role == "" {
		input.Role = domain.RoleCitizen
	}
	if !input.Role.IsValid() {
		return nil, nil, domain.NewValidationError("role", "is not a known role")
	}
	if input.Role != domain.RoleCitizen && !s.checkSecurityCode(input.Role, input.SecurityCode) {
		return nil, nil, ErrInvalidSecurityCode
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailExists
	}

	user := &domain.User{
		ID:       uuid.New(),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		FullName: input.FullName,
		Role:     input.Role,
		Locale:   input.Locale,
		IsActive: true,
	}
	if user.Locale == "" {
		user.Locale = i18n.DefaultLocale
	}
	if input.Phone != "" {
		user.Phone = &input.Phone
	}
	if err := s.assignScope(ctx, user, input); err != nil {
		return nil, nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, nil, err
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	if err := s.emailService.SendWelcomeEmail(ctx, user.Email, user.FullName, user.Locale); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
	}

	tokens, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// assignScope fills the scope references a role is bound to, checking that
// the referenced areas exist.
func (s *service) assignScope(ctx context.Context, user *domain.User, input domain.RegisterInput) error {
	switch user.Role {
	case domain.RoleAdmin:
		return nil

	case domain.RoleGovernmentOfficer:
		if input.DivisionalSecretariatID == nil {
			return domain.NewValidationError("divisional_secretariat_id", "is required")
		}
		ds, err := s.areaRepo.GetDivisionalSecretariat(ctx, *input.DivisionalSecretariatID)
		if err != nil {
			return err
		}
		if ds == nil {
			return domain.NewValidationError("divisional_secretariat_id", "does not exist")
		}
		user.DivisionalSecretariatID = &ds.ID
		return nil

	case domain.RoleGramaSevaka, domain.RoleCitizen:
		if input.GNDivisionID == nil {
			return domain.NewValidationError("grama_niladhari_division_id", "is required")
		}
		gn, err := s.areaRepo.GetGNDivision(ctx, *input.GNDivisionID)
		if err != nil {
			return err
		}
		if gn == nil {
			return domain.NewValidationError("grama_niladhari_division_id", "does not exist")
		}
		user.GNDivisionID = &gn.ID
		user.DivisionalSecretariatID = &gn.DivisionalSecretariatID
		if user.Role == domain.RoleGramaSevaka {
			return nil
		}

		if strings.TrimSpace(input.HouseNumber) == "" {
			return domain.NewValidationError("house_number", "is required")
		}
		houseID, err := s.areaRepo.FindOrCreateHouse(ctx, gn.ID, strings.TrimSpace(input.HouseNumber), input.Address)
		if err != nil {
			return err
		}
		user.HouseID = &houseID
		return nil
	}
	return domain.ErrUnauthorized
}

// checkSecurityCode accepts a code configured for the role, either as a
// bcrypt hash or as plain text.
func (s *service) checkSecurityCode(role domain.Role, code string) bool {
	if code == "" {
		return false
	}
	for _, want := range s.cfg.SecurityCodes[string(role)] {
		if strings.HasPrefix(want, "$2") {
			if bcrypt.CompareHashAndPassword([]byte(want), []byte(code)) == nil {
				return true
			}
			continue
		}
		if subtle.ConstantTimeCompare([]byte(want), []byte(code)) == 1 {
			return true
		}
	}
	return false
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	tokens, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidToken
	}

	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	return s.generateTokenPair(ctx, user)
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.sessionRepo.Revoke(ctx, session.ID)
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.Role.IsValid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *service) generateTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	now := s.now()
	accessClaims := &Claims{
		UserID:                  user.ID,
		Role:                    user.Role,
		DivisionalSecretariatID: user.DivisionalSecretariatID,
		GNDivisionID:            user.GNDivisionID,
		HouseID:                 user.HouseID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTAccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID.String(),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshTokenRaw := uuid.New().String()
	meta := domain.RequestMetaFrom(ctx)

	session := &repository.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refreshTokenRaw),
		UserAgent: optional(meta.UserAgent),
		IPAddress: optional(meta.IPAddress),
		ExpiresAt: now.Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenRaw,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
	}, nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
