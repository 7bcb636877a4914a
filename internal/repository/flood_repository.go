package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"flowx-relief/internal/domain"
)

type FloodRepository interface {
	// FindActiveOn returns the active flood whose window covers day, latest start first.
	FindActiveOn(ctx context.Context, day time.Time) (*domain.Flood, error)
	// FindLatest returns the flood with the latest start date, highest id on ties.
	FindLatest(ctx context.Context) (*domain.Flood, error)
	GetByID(ctx context.Context, id int64) (*domain.Flood, error)
	List(ctx context.Context) ([]domain.Flood, error)
	Create(ctx context.Context, flood *domain.Flood) error
	Update(ctx context.Context, id int64, input domain.UpdateFloodInput) error
	CloseActive(ctx context.Context, day time.Time) (int64, error)
	CloseExpired(ctx context.Context, day time.Time) (int64, error)
	UpsertDetail(ctx context.Context, detail *domain.FloodDetail) error
	ListDetails(ctx context.Context, floodID int64) ([]domain.FloodDetail, error)
}

type floodRepository struct {
	db dbtx
}

func NewFloodRepository(db dbtx) FloodRepository {
	return newFloodRepository(db)
}

func newFloodRepository(db dbtx) *floodRepository {
	return &floodRepository{db: db}
}

func (r *floodRepository) FindActiveOn(ctx context.Context, day time.Time) (*domain.Flood, error) {
	query := `
		SELECT * FROM floods
		WHERE status = 'active'
			AND start_date <= $1::date
			AND COALESCE(end_date, $1::date) >= $1::date
		ORDER BY start_date DESC
		LIMIT 1`
	return r.getOne(ctx, query, day.Format("2006-01-02"))
}

func (r *floodRepository) FindLatest(ctx context.Context) (*domain.Flood, error) {
	query := `SELECT * FROM floods ORDER BY start_date DESC, id DESC LIMIT 1`
	return r.getOne(ctx, query)
}

func (r *floodRepository) GetByID(ctx context.Context, id int64) (*domain.Flood, error) {
	return r.getOne(ctx, `SELECT * FROM floods WHERE id = $1`, id)
}

func (r *floodRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Flood, error) {
	var flood domain.Flood
	err := r.db.GetContext(ctx, &flood, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &flood, nil
}

func (r *floodRepository) List(ctx context.Context) ([]domain.Flood, error) {
	floods := []domain.Flood{}
	err := r.db.SelectContext(ctx, &floods, `SELECT * FROM floods ORDER BY start_date DESC, id DESC`)
	return floods, err
}

func (r *floodRepository) Create(ctx context.Context, flood *domain.Flood) error {
	query := `
		INSERT INTO floods (name, status, description, start_date, end_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		flood.Name, flood.Status, flood.Description, flood.StartDate, flood.EndDate, flood.CreatedBy,
	).Scan(&flood.ID, &flood.CreatedAt, &flood.UpdatedAt)
}

func (r *floodRepository) Update(ctx context.Context, id int64, input domain.UpdateFloodInput) error {
	var sets []string
	var args []interface{}
	if input.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *input.Name)
	}
	if input.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *input.Status)
	}
	if input.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *input.Description)
	}
	if input.EndDate != nil {
		sets = append(sets, "end_date = ?::date")
		args = append(args, *input.EndDate)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	query := r.db.Rebind(`UPDATE floods SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CloseActive ends every active flood as of day.
func (r *floodRepository) CloseActive(ctx context.Context, day time.Time) (int64, error) {
	query := `
		UPDATE floods
		SET status = 'over', end_date = COALESCE(end_date, $1::date), updated_at = NOW()
		WHERE status = 'active'`
	res, err := r.db.ExecContext(ctx, query, day.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CloseExpired marks active floods whose end date has passed as over.
func (r *floodRepository) CloseExpired(ctx context.Context, day time.Time) (int64, error) {
	query := `
		UPDATE floods
		SET status = 'over', updated_at = NOW()
		WHERE status = 'active' AND end_date IS NOT NULL AND end_date < $1::date`
	res, err := r.db.ExecContext(ctx, query, day.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *floodRepository) UpsertDetail(ctx context.Context, detail *domain.FloodDetail) error {
	query := `
		INSERT INTO flood_details (flood_id, detail_date, river_level, rain_fall, water_rising_rate, flood_area)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (detail_date) DO UPDATE
		SET flood_id = EXCLUDED.flood_id,
			river_level = EXCLUDED.river_level,
			rain_fall = EXCLUDED.rain_fall,
			water_rising_rate = EXCLUDED.water_rising_rate,
			flood_area = EXCLUDED.flood_area
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		detail.FloodID, detail.Date, detail.RiverLevel, detail.RainFall, detail.WaterRisingRate, detail.FloodArea,
	).Scan(&detail.ID, &detail.CreatedAt)
}

func (r *floodRepository) ListDetails(ctx context.Context, floodID int64) ([]domain.FloodDetail, error) {
	details := []domain.FloodDetail{}
	query := `SELECT * FROM flood_details WHERE flood_id = $1 ORDER BY detail_date ASC`
	err := r.db.SelectContext(ctx, &details, query, floodID)
	return details, err
}
