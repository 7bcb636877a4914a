package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"flowx-relief/internal/domain"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) error
	GetByID(ctx context.Context, id int64) (*domain.Announcement, error)
	List(ctx context.Context, floodID *int64, params domain.PaginationParams) ([]domain.Announcement, int64, error)
	Delete(ctx context.Context, id int64) error
}

type announcementRepository struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	query := `
		INSERT INTO announcements (title, description, emergency_level, author_id, author_role, flood_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		a.Title, a.Description, a.EmergencyLevel, a.AuthorID, a.AuthorRole, a.FloodID,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *announcementRepository) GetByID(ctx context.Context, id int64) (*domain.Announcement, error) {
	var a domain.Announcement
	err := r.db.GetContext(ctx, &a, `SELECT * FROM announcements WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) List(ctx context.Context, floodID *int64, params domain.PaginationParams) ([]domain.Announcement, int64, error) {
	params.Normalize()

	var w where
	if floodID != nil {
		w.add("flood_id = ?", *floodID)
	}

	var total int64
	countQuery := r.db.Rebind(`SELECT COUNT(*) FROM announcements` + w.String())
	if err := r.db.GetContext(ctx, &total, countQuery, w.args...); err != nil {
		return nil, 0, err
	}

	items := []domain.Announcement{}
	query := r.db.Rebind(`SELECT * FROM announcements` + w.String() + ` ORDER BY id DESC LIMIT ? OFFSET ?`)
	args := append(w.args, params.PageSize, params.Offset())
	err := r.db.SelectContext(ctx, &items, query, args...)
	return items, total, err
}

func (r *announcementRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
