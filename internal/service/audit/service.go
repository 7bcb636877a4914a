package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"flowx-relief/internal/domain"
	"flowx-relief/internal/repository"
)

// Entry is one action to record.
type Entry struct {
	UserID     uuid.UUID
	Action     string
	EntityType string
	EntityID   string
	OldValue   interface{}
	NewValue   interface{}
	Meta       domain.RequestMeta
}

type Service interface {
	Record(ctx context.Context, entry Entry) error
	GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error)
	ListByEntity(ctx context.Context, entityType, entityID string, params domain.PaginationParams) (domain.Page[domain.AuditLog], error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{
		auditRepo: auditRepo,
	}
}

func (s *service) Record(ctx context.Context, entry Entry) error {
	log := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		OldValue:   marshal(entry.OldValue),
		NewValue:   marshal(entry.NewValue),
		IPAddress:  optional(entry.Meta.IPAddress),
		UserAgent:  optional(entry.Meta.UserAgent),
	}
	return s.auditRepo.Create(ctx, log)
}

func (s *service) GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	params := domain.PaginationParams{
		Page:     1,
		PageSize: limit,
	}

	logs, _, err := s.auditRepo.List(ctx, params)
	return logs, err
}

func (s *service) ListByEntity(ctx context.Context, entityType, entityID string, params domain.PaginationParams) (domain.Page[domain.AuditLog], error) {
	params.Normalize()
	logs, total, err := s.auditRepo.ListByEntity(ctx, entityType, entityID, params)
	if err != nil {
		return domain.Page[domain.AuditLog]{}, err
	}
	return domain.NewPage(logs, params, total), nil
}

func marshal(v interface{}) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
