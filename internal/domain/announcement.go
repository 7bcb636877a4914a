package domain

import (
	"time"

	"github.com/google/uuid"
)

type Announcement struct {
	ID             int64          `json:"id" db:"id"`
	Title          string         `json:"title" db:"title"`
	Description    string         `json:"description" db:"description"`
	EmergencyLevel EmergencyLevel `json:"emergency_level" db:"emergency_level"`
	AuthorID       uuid.UUID      `json:"author_id" db:"author_id"`
	AuthorRole     Role           `json:"author_role" db:"author_role"`
	FloodID        int64          `json:"flood_id" db:"flood_id"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

type CreateAnnouncementInput struct {
	Title          string         `json:"title" validate:"required,max=150"`
	Description    string         `json:"description" validate:"required,max=4000"`
	EmergencyLevel EmergencyLevel `json:"emergency_level" validate:"required,emergency_level"`
}
