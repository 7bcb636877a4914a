package domain

import "time"

type ShelterStatus string

const (
	ShelterOpen   ShelterStatus = "open"
	ShelterClosed ShelterStatus = "closed"
)

type Shelter struct {
	ID                      int64         `json:"id" db:"id"`
	Name                    string        `json:"name" db:"name"`
	Size                    int           `json:"size" db:"size"`
	Address                 string        `json:"address" db:"address"`
	Available               int           `json:"available" db:"available"`
	Status                  ShelterStatus `json:"status" db:"status"`
	DivisionalSecretariatID int64         `json:"divisional_secretariat_id" db:"divisional_secretariat_id"`
	Latitude                *float64      `json:"latitude,omitempty" db:"latitude"`
	Longitude               *float64      `json:"longitude,omitempty" db:"longitude"`
	CreatedAt               time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time     `json:"updated_at" db:"updated_at"`
}

type ShelterAssignment struct {
	ID         int64     `json:"id" db:"id"`
	ShelterID  int64     `json:"shelter_id" db:"shelter_id"`
	RequestID  int64     `json:"request_id" db:"request_id"`
	HouseID    *int64    `json:"house_id,omitempty" db:"house_id"`
	AssignedAt time.Time `json:"assigned_at" db:"assigned_at"`
}

type CreateShelterInput struct {
	Name      string   `json:"name" validate:"required,max=120"`
	Size      int      `json:"size" validate:"required,gt=0"`
	Address   string   `json:"address" validate:"required,max=255"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

type UpdateShelterInput struct {
	Name      *string        `json:"name,omitempty" validate:"omitempty,max=120"`
	Size      *int           `json:"size,omitempty" validate:"omitempty,gt=0"`
	Address   *string        `json:"address,omitempty" validate:"omitempty,max=255"`
	Available *int           `json:"available,omitempty" validate:"omitempty,gte=0"`
	Status    *ShelterStatus `json:"status,omitempty" validate:"omitempty,oneof=open closed"`
	Latitude  *float64       `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64       `json:"longitude,omitempty" validate:"omitempty,longitude"`
}
