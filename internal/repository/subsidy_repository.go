package repository

import (
	"context"
	"database/sql"
	"errors"

	"flowx-relief/internal/domain"
)

type SubsidyRepository interface {
	Create(ctx context.Context, subsidy *domain.Subsidy) error
	GetByID(ctx context.Context, id int64) (*domain.Subsidy, error)
	ListByFlood(ctx context.Context, floodID int64) ([]domain.Subsidy, error)
	Update(ctx context.Context, subsidy *domain.Subsidy) error
	// AdjustStock adds delta to current_quantity unless that would make it
	// negative or exceed the total quantity. It reports whether it applied.
	AdjustStock(ctx context.Context, id int64, delta int) (bool, error)
}

type subsidyRepository struct {
	db dbtx
}

func NewSubsidyRepository(db dbtx) SubsidyRepository {
	return newSubsidyRepository(db)
}

func newSubsidyRepository(db dbtx) *subsidyRepository {
	return &subsidyRepository{db: db}
}

func (r *subsidyRepository) Create(ctx context.Context, subsidy *domain.Subsidy) error {
	query := `
		INSERT INTO subsidies (flood_id, name, category, quantity, current_quantity, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		subsidy.FloodID, subsidy.Name, subsidy.Category, subsidy.Quantity,
		subsidy.CurrentQuantity, subsidy.Status, subsidy.CreatedBy,
	).Scan(&subsidy.ID, &subsidy.CreatedAt, &subsidy.UpdatedAt)
}

func (r *subsidyRepository) GetByID(ctx context.Context, id int64) (*domain.Subsidy, error) {
	var subsidy domain.Subsidy
	err := r.db.GetContext(ctx, &subsidy, `SELECT * FROM subsidies WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subsidy, nil
}

func (r *subsidyRepository) ListByFlood(ctx context.Context, floodID int64) ([]domain.Subsidy, error) {
	subsidies := []domain.Subsidy{}
	query := `SELECT * FROM subsidies WHERE flood_id = $1 ORDER BY id DESC`
	err := r.db.SelectContext(ctx, &subsidies, query, floodID)
	return subsidies, err
}

func (r *subsidyRepository) Update(ctx context.Context, subsidy *domain.Subsidy) error {
	query := `
		UPDATE subsidies
		SET name = $2, category = $3, quantity = $4, current_quantity = $5, status = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		subsidy.ID, subsidy.Name, subsidy.Category, subsidy.Quantity, subsidy.CurrentQuantity, subsidy.Status,
	).Scan(&subsidy.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *subsidyRepository) AdjustStock(ctx context.Context, id int64, delta int) (bool, error) {
	query := `
		UPDATE subsidies
		SET current_quantity = current_quantity + $2, updated_at = NOW()
		WHERE id = $1
			AND current_quantity + $2 >= 0
			AND current_quantity + $2 <= quantity`
	res, err := r.db.ExecContext(ctx, query, id, delta)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
