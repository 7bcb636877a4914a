package repository

import (
	"context"
	"database/sql"
	"errors"

	"flowx-relief/internal/domain"
)

type ShelterRepository interface {
	Create(ctx context.Context, shelter *domain.Shelter) error
	GetByID(ctx context.Context, id int64) (*domain.Shelter, error)
	List(ctx context.Context, divisionalSecretariatID *int64) ([]domain.Shelter, error)
	Update(ctx context.Context, shelter *domain.Shelter) error
	// ReserveSlot takes one free place in an open shelter of the given
	// secretariat. It reports false when none is available.
	ReserveSlot(ctx context.Context, shelterID, divisionalSecretariatID int64) (bool, error)
	CreateAssignment(ctx context.Context, assignment *domain.ShelterAssignment) error
}

type shelterRepository struct {
	db dbtx
}

func NewShelterRepository(db dbtx) ShelterRepository {
	return newShelterRepository(db)
}

func newShelterRepository(db dbtx) *shelterRepository {
	return &shelterRepository{db: db}
}

func (r *shelterRepository) Create(ctx context.Context, shelter *domain.Shelter) error {
	query := `
		INSERT INTO shelters (name, size, address, available, status, divisional_secretariat_id, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		shelter.Name, shelter.Size, shelter.Address, shelter.Available, shelter.Status,
		shelter.DivisionalSecretariatID, shelter.Latitude, shelter.Longitude,
	).Scan(&shelter.ID, &shelter.CreatedAt, &shelter.UpdatedAt)
}

func (r *shelterRepository) GetByID(ctx context.Context, id int64) (*domain.Shelter, error) {
	var shelter domain.Shelter
	err := r.db.GetContext(ctx, &shelter, `SELECT * FROM shelters WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shelter, nil
}

func (r *shelterRepository) List(ctx context.Context, divisionalSecretariatID *int64) ([]domain.Shelter, error) {
	shelters := []domain.Shelter{}
	if divisionalSecretariatID != nil {
		query := `SELECT * FROM shelters WHERE divisional_secretariat_id = $1 ORDER BY id DESC`
		err := r.db.SelectContext(ctx, &shelters, query, *divisionalSecretariatID)
		return shelters, err
	}
	err := r.db.SelectContext(ctx, &shelters, `SELECT * FROM shelters ORDER BY id DESC`)
	return shelters, err
}

func (r *shelterRepository) Update(ctx context.Context, shelter *domain.Shelter) error {
	query := `
		UPDATE shelters
		SET name = $2, size = $3, address = $4, available = $5, status = $6,
			latitude = $7, longitude = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		shelter.ID, shelter.Name, shelter.Size, shelter.Address, shelter.Available, shelter.Status,
		shelter.Latitude, shelter.Longitude,
	).Scan(&shelter.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *shelterRepository) ReserveSlot(ctx context.Context, shelterID, divisionalSecretariatID int64) (bool, error) {
	query := `
		UPDATE shelters
		SET available = available - 1, updated_at = NOW()
		WHERE id = $1 AND divisional_secretariat_id = $2 AND status = 'open' AND available > 0`
	res, err := r.db.ExecContext(ctx, query, shelterID, divisionalSecretariatID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *shelterRepository) CreateAssignment(ctx context.Context, assignment *domain.ShelterAssignment) error {
	query := `
		INSERT INTO shelter_assignments (shelter_id, request_id, house_id)
		VALUES ($1, $2, $3)
		RETURNING id, assigned_at`

	return r.db.QueryRowxContext(ctx, query,
		assignment.ShelterID, assignment.RequestID, assignment.HouseID,
	).Scan(&assignment.ID, &assignment.AssignedAt)
}
