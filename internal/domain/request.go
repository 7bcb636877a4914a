package domain

import (
	"time"

	"github.com/google/uuid"
)

// Request is the shared shape of victim requests, shelter requests,
// donations and subsidy assignments.
type Request struct {
	ID                      int64           `json:"id" db:"id"`
	Kind                    RequestKind     `json:"kind" db:"kind"`
	Status                  RequestStatus   `json:"status" db:"status"`
	FloodID                 int64           `json:"flood_id" db:"flood_id"`
	Title                   string          `json:"title" db:"title"`
	Message                 string          `json:"message" db:"message"`
	Category                *string         `json:"category,omitempty" db:"category"`
	EmergencyLevel          *EmergencyLevel `json:"emergency_level,omitempty" db:"emergency_level"`
	Needs                   *string         `json:"needs,omitempty" db:"needs"`
	Remarks                 *string         `json:"remarks,omitempty" db:"remarks"`
	HouseID                 *int64          `json:"house_id,omitempty" db:"house_id"`
	GNDivisionID            *int64          `json:"grama_niladhari_division_id,omitempty" db:"grama_niladhari_division_id"`
	DivisionalSecretariatID int64           `json:"divisional_secretariat_id" db:"divisional_secretariat_id"`
	DistrictID              *int64          `json:"district_id,omitempty" db:"district_id"`
	RequestedBy             *uuid.UUID      `json:"requested_by,omitempty" db:"requested_by"`
	DonorName               *string         `json:"donor_name,omitempty" db:"donor_name"`
	DonorEmail              *string         `json:"donor_email,omitempty" db:"donor_email"`
	DonorPhone              *string         `json:"donor_phone,omitempty" db:"donor_phone"`
	SubsidyID               *int64          `json:"subsidy_id,omitempty" db:"subsidy_id"`
	Quantity                *int            `json:"quantity,omitempty" db:"quantity"`
	CollectionPlace         *string         `json:"collection_place,omitempty" db:"collection_place"`
	ShelterID               *int64          `json:"shelter_id,omitempty" db:"shelter_id"`
	CreatedAt               time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at" db:"updated_at"`
}

type RequestKind string

const (
	KindVictim   RequestKind = "victim"
	KindShelter  RequestKind = "shelter"
	KindDonation RequestKind = "donation"
	KindSubsidy  RequestKind = "subsidy"
)

func (k RequestKind) IsValid() bool {
	_, ok := lifecycles[k]
	return ok
}

type RequestStatus string

const (
	StatusNew         RequestStatus = "new"
	StatusPending     RequestStatus = "pending"
	StatusApproved    RequestStatus = "approved"
	StatusRejected    RequestStatus = "rejected"
	StatusDistributed RequestStatus = "distributed"
	StatusCollected   RequestStatus = "collected"
)

type EmergencyLevel string

const (
	EmergencyCritical EmergencyLevel = "critical"
	EmergencyHigh     EmergencyLevel = "high"
	EmergencyMedium   EmergencyLevel = "medium"
	EmergencyLow      EmergencyLevel = "low"
)

func (e EmergencyLevel) IsValid() bool {
	switch e {
	case EmergencyCritical, EmergencyHigh, EmergencyMedium, EmergencyLow:
		return true
	default:
		return false
	}
}

// RequestView selects one of the list endpoints.
type RequestView string

const (
	ViewPending  RequestView = "pending"
	ViewApproved RequestView = "approved"
	ViewHistory  RequestView = "history"
)

func (v RequestView) IsValid() bool {
	return v == ViewPending || v == ViewApproved || v == ViewHistory
}

// Statuses returns the statuses a view covers; nil means all of them.
func (v RequestView) Statuses() []RequestStatus {
	switch v {
	case ViewPending:
		return []RequestStatus{StatusNew, StatusPending}
	case ViewApproved:
		return []RequestStatus{StatusApproved, StatusDistributed, StatusCollected}
	default:
		return nil
	}
}

// ScopedToFlood reports whether the view is limited to the current flood.
func (v RequestView) ScopedToFlood() bool {
	return v != ViewHistory
}

type RequestFilter struct {
	View    RequestView
	Kind    *RequestKind
	FloodID *int64
}

type CreateRequestInput struct {
	Kind           RequestKind    `json:"kind" validate:"required,oneof=victim shelter"`
	Title          string         `json:"title" validate:"required,max=150"`
	Message        string         `json:"message" validate:"required,max=2000"`
	EmergencyLevel EmergencyLevel `json:"emergency_level" validate:"required,emergency_level"`
	Needs          *string        `json:"needs,omitempty" validate:"omitempty,max=500"`
}

type CreateDonationInput struct {
	FullName                string  `json:"fullname" validate:"required,max=120"`
	Email                   string  `json:"donation_email" validate:"required,email"`
	Phone                   *string `json:"donation_phone_number,omitempty" validate:"omitempty,sl_phone"`
	Category                string  `json:"category" validate:"required,max=80"`
	Message                 string  `json:"message" validate:"required,max=2000"`
	DivisionalSecretariatID int64   `json:"divisional_secretariat_id" validate:"required,gt=0"`
}

// TransitionInput is the body of PUT /requests/:id/status. Nil fields are left untouched.
type TransitionInput struct {
	Status          RequestStatus   `json:"status" validate:"required,oneof=new pending approved rejected distributed collected"`
	Remarks         *string         `json:"remarks,omitempty" validate:"omitempty,max=1000"`
	EmergencyLevel  *EmergencyLevel `json:"emergency_level,omitempty" validate:"omitempty,emergency_level"`
	ShelterID       *int64          `json:"shelter_id,omitempty" validate:"omitempty,gt=0"`
	CollectionPlace *string         `json:"collection_place,omitempty" validate:"omitempty,max=255"`
}

// RequestChanges holds the columns a transition actually writes.
type RequestChanges struct {
	Status          *RequestStatus
	Remarks         *string
	EmergencyLevel  *EmergencyLevel
	ShelterID       *int64
	CollectionPlace *string
}

func (c RequestChanges) IsEmpty() bool {
	return c.Status == nil && c.Remarks == nil && c.EmergencyLevel == nil &&
		c.ShelterID == nil && c.CollectionPlace == nil
}

// Diff keeps only the input fields that are present and differ from r.
func (r *Request) Diff(in TransitionInput) RequestChanges {
	var c RequestChanges
	if in.Status != r.Status {
		s := in.Status
		c.Status = &s
	}
	if in.Remarks != nil && !equalString(r.Remarks, *in.Remarks) {
		c.Remarks = in.Remarks
	}
	if in.EmergencyLevel != nil && (r.EmergencyLevel == nil || *r.EmergencyLevel != *in.EmergencyLevel) {
		c.EmergencyLevel = in.EmergencyLevel
	}
	if in.ShelterID != nil && (r.ShelterID == nil || *r.ShelterID != *in.ShelterID) {
		c.ShelterID = in.ShelterID
	}
	if in.CollectionPlace != nil && !equalString(r.CollectionPlace, *in.CollectionPlace) {
		c.CollectionPlace = in.CollectionPlace
	}
	return c
}

func equalString(current *string, next string) bool {
	return current != nil && *current == next
}

type StatusCounts struct {
	New         int64 `json:"new"`
	Pending     int64 `json:"pending"`
	Approved    int64 `json:"approved"`
	Rejected    int64 `json:"rejected"`
	Distributed int64 `json:"distributed"`
	Collected   int64 `json:"collected"`
	Total       int64 `json:"total"`
}

func (s *StatusCounts) Add(status RequestStatus, n int64) {
	switch status {
	case StatusNew:
		s.New += n
	case StatusPending:
		s.Pending += n
	case StatusApproved:
		s.Approved += n
	case StatusRejected:
		s.Rejected += n
	case StatusDistributed:
		s.Distributed += n
	case StatusCollected:
		s.Collected += n
	}
	s.Total += n
}
