package domain

import (
	"time"

	"github.com/google/uuid"
)

type FloodStatus string

const (
	FloodActive FloodStatus = "active"
	FloodOver   FloodStatus = "over"
)

type Flood struct {
	ID          int64       `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Status      FloodStatus `json:"status" db:"status"`
	Description *string     `json:"description,omitempty" db:"description"`
	StartDate   time.Time   `json:"start_date" db:"start_date"`
	EndDate     *time.Time  `json:"end_date,omitempty" db:"end_date"`
	CreatedBy   *uuid.UUID  `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

type CreateFloodInput struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
}

type UpdateFloodInput struct {
	Name        *string      `json:"name,omitempty" validate:"omitempty,max=120"`
	Status      *FloodStatus `json:"status,omitempty" validate:"omitempty,oneof=active over"`
	Description *string      `json:"description,omitempty" validate:"omitempty,max=1000"`
	EndDate     *string      `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type FloodDetail struct {
	ID              int64     `json:"id" db:"id"`
	FloodID         int64     `json:"flood_id" db:"flood_id"`
	Date            time.Time `json:"date" db:"detail_date"`
	RiverLevel      float64   `json:"river_level" db:"river_level"`
	RainFall        float64   `json:"rain_fall" db:"rain_fall"`
	WaterRisingRate float64   `json:"water_rising_rate" db:"water_rising_rate"`
	FloodArea       float64   `json:"flood_area" db:"flood_area"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type FloodDetailInput struct {
	Date            string   `json:"date" validate:"required,datetime=2006-01-02"`
	RiverLevel      *float64 `json:"river_level" validate:"required,gte=0"`
	RainFall        *float64 `json:"rain_fall" validate:"required,gte=0"`
	WaterRisingRate *float64 `json:"water_rising_rate" validate:"required"`
	FloodArea       *float64 `json:"flood_area" validate:"required,gte=0"`
}

type MetricSummary struct {
	Mean     float64 `json:"mean"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Variance float64 `json:"variance"`
}

type FloodStatistics struct {
	FloodID         int64         `json:"flood_id"`
	Samples         int           `json:"samples"`
	From            *time.Time    `json:"from,omitempty"`
	To              *time.Time    `json:"to,omitempty"`
	RiverLevel      MetricSummary `json:"river_level"`
	RainFall        MetricSummary `json:"rain_fall"`
	WaterRisingRate MetricSummary `json:"water_rising_rate"`
	FloodArea       MetricSummary `json:"flood_area"`
}
