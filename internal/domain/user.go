package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                      uuid.UUID `json:"id" db:"id"`
	Email                   string    `json:"email" db:"email"`
	PasswordHash            string    `json:"-" db:"password_hash"`
	FullName                string    `json:"full_name" db:"full_name"`
	Phone                   *string   `json:"phone,omitempty" db:"phone"`
	Role                    Role      `json:"role" db:"role"`
	DivisionalSecretariatID *int64    `json:"divisional_secretariat_id,omitempty" db:"divisional_secretariat_id"`
	GNDivisionID            *int64    `json:"grama_niladhari_division_id,omitempty" db:"grama_niladhari_division_id"`
	HouseID                 *int64    `json:"house_id,omitempty" db:"house_id"`
	Locale                  string    `json:"locale" db:"locale"`
	IsActive                bool      `json:"is_active" db:"is_active"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time `json:"updated_at" db:"updated_at"`
}

type Role string

const (
	RoleAdmin             Role = "admin"
	RoleGovernmentOfficer Role = "government_officer"
	RoleGramaSevaka       Role = "grama_sevaka"
	RoleCitizen           Role = "citizen"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleGovernmentOfficer, RoleGramaSevaka, RoleCitizen:
		return true
	default:
		return false
	}
}

func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleGovernmentOfficer || r == RoleGramaSevaka
}

func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Actor is the authenticated caller as seen by scope and lifecycle checks.
type Actor struct {
	ID                      uuid.UUID
	Role                    Role
	DivisionalSecretariatID *int64
	GNDivisionID            *int64
	HouseID                 *int64
}

func (u *User) Actor() Actor {
	return Actor{
		ID:                      u.ID,
		Role:                    u.Role,
		DivisionalSecretariatID: u.DivisionalSecretariatID,
		GNDivisionID:            u.GNDivisionID,
		HouseID:                 u.HouseID,
	}
}

type RegisterInput struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	FullName     string `json:"full_name" validate:"required,min=2"`
	Phone        string `json:"phone" validate:"omitempty,sl_phone"`
	SecurityCode string `json:"security_code"`
	Locale       string `json:"locale" validate:"omitempty,oneof=en si ta"`

	DivisionalSecretariatID *int64 `json:"divisional_secretariat_id"`
	GNDivisionID            *int64 `json:"grama_niladhari_division_id"`
	HouseNumber             string `json:"house_number" validate:"omitempty,max=50"`
	Address                 string `json:"address" validate:"omitempty,max=255"`

	Role Role `json:"-"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UpdateProfileInput struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=120"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,sl_phone"`
	Locale   *string `json:"locale,omitempty" validate:"omitempty,oneof=en si ta"`
}
