package domain

import (
	"time"

	"github.com/google/uuid"
)

type SubsidyStatus string

const (
	SubsidyActive   SubsidyStatus = "active"
	SubsidyInactive SubsidyStatus = "inactive"
)

// Subsidy is a stock of relief goods for one flood. CurrentQuantity is what
// is still available for approval.
type Subsidy struct {
	ID              int64         `json:"id" db:"id"`
	FloodID         int64         `json:"flood_id" db:"flood_id"`
	Name            string        `json:"name" db:"name"`
	Category        string        `json:"category" db:"category"`
	Quantity        int           `json:"quantity" db:"quantity"`
	CurrentQuantity int           `json:"current_quantity" db:"current_quantity"`
	Status          SubsidyStatus `json:"status" db:"status"`
	CreatedBy       *uuid.UUID    `json:"created_by,omitempty" db:"created_by"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// Allocated is the amount already handed to approved requests.
func (s *Subsidy) Allocated() int {
	return s.Quantity - s.CurrentQuantity
}

type CreateSubsidyInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Category string `json:"category" validate:"required,max=80"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type UpdateSubsidyInput struct {
	Name     *string        `json:"name,omitempty" validate:"omitempty,max=120"`
	Category *string        `json:"category,omitempty" validate:"omitempty,max=80"`
	Quantity *int           `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Status   *SubsidyStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type CreateSubsidyRequestInput struct {
	HouseID         int64   `json:"house_id" validate:"required,gt=0"`
	Quantity        int     `json:"quantity" validate:"required,gt=0"`
	CollectionPlace string  `json:"collection_place" validate:"required,max=255"`
	Message         *string `json:"message,omitempty" validate:"omitempty,max=1000"`
}
