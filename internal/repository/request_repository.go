package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"flowx-relief/internal/domain"
)

const requestColumns = `id, kind, status, flood_id, title, message, category, emergency_level, needs, remarks,
	house_id, grama_niladhari_division_id, divisional_secretariat_id, district_id, requested_by,
	donor_name, donor_email, donor_phone, subsidy_id, quantity, collection_place, shelter_id,
	created_at, updated_at`

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	GetInScope(ctx context.Context, id int64, scope domain.Scope) (*domain.Request, error)
	List(ctx context.Context, scope domain.Scope, filter domain.RequestFilter) ([]domain.Request, error)
	// UpdateStatus writes changes only while the row still has the expected
	// status and lies in scope. It reports whether a row was updated.
	UpdateStatus(ctx context.Context, id int64, expected domain.RequestStatus, scope domain.Scope, changes domain.RequestChanges) (bool, error)
	HasActiveRequest(ctx context.Context, houseID int64, kind domain.RequestKind, floodID int64, statuses []domain.RequestStatus) (bool, error)
	CountByStatus(ctx context.Context, scope domain.Scope, kind *domain.RequestKind, floodID *int64) (domain.StatusCounts, error)
}

type requestRepository struct {
	db dbtx
}

func NewRequestRepository(db dbtx) RequestRepository {
	return newRequestRepository(db)
}

func newRequestRepository(db dbtx) *requestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `
		INSERT INTO relief_requests (kind, status, flood_id, title, message, category, emergency_level, needs,
			house_id, grama_niladhari_division_id, divisional_secretariat_id, district_id, requested_by,
			donor_name, donor_email, donor_phone, subsidy_id, quantity, collection_place)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.Kind, req.Status, req.FloodID, req.Title, req.Message, req.Category, req.EmergencyLevel, req.Needs,
		req.HouseID, req.GNDivisionID, req.DivisionalSecretariatID, req.DistrictID, req.RequestedBy,
		req.DonorName, req.DonorEmail, req.DonorPhone, req.SubsidyID, req.Quantity, req.CollectionPlace,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	return r.GetInScope(ctx, id, domain.Scope{Level: domain.ScopeAll})
}

func (r *requestRepository) GetInScope(ctx context.Context, id int64, scope domain.Scope) (*domain.Request, error) {
	var w where
	w.add("id = ?", id)
	w.addScope(scope, "")

	var req domain.Request
	query := r.db.Rebind(`SELECT ` + requestColumns + ` FROM relief_requests` + w.String())
	err := r.db.GetContext(ctx, &req, query, w.args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) List(ctx context.Context, scope domain.Scope, filter domain.RequestFilter) ([]domain.Request, error) {
	var w where
	w.addScope(scope, "")
	if statuses := filter.View.Statuses(); statuses != nil {
		w.add("status = ANY(?)", statusArray(statuses))
	}
	if filter.Kind != nil {
		w.add("kind = ?", *filter.Kind)
	}
	if filter.FloodID != nil {
		w.add("flood_id = ?", *filter.FloodID)
	}

	requests := []domain.Request{}
	query := r.db.Rebind(`SELECT ` + requestColumns + ` FROM relief_requests` + w.String() + ` ORDER BY id DESC`)
	if err := r.db.SelectContext(ctx, &requests, query, w.args...); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id int64, expected domain.RequestStatus, scope domain.Scope, changes domain.RequestChanges) (bool, error) {
	if changes.IsEmpty() {
		return true, nil
	}

	var sets []string
	var args []interface{}
	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if changes.Status != nil {
		set("status", *changes.Status)
	}
	if changes.Remarks != nil {
		set("remarks", *changes.Remarks)
	}
	if changes.EmergencyLevel != nil {
		set("emergency_level", *changes.EmergencyLevel)
	}
	if changes.ShelterID != nil {
		set("shelter_id", *changes.ShelterID)
	}
	if changes.CollectionPlace != nil {
		set("collection_place", *changes.CollectionPlace)
	}
	sets = append(sets, "updated_at = NOW()")

	var w where
	w.add("id = ?", id)
	w.add("status = ?", expected)
	w.addScope(scope, "")

	query := r.db.Rebind(`UPDATE relief_requests SET ` + strings.Join(sets, ", ") + w.String())
	res, err := r.db.ExecContext(ctx, query, append(args, w.args...)...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *requestRepository) HasActiveRequest(ctx context.Context, houseID int64, kind domain.RequestKind, floodID int64, statuses []domain.RequestStatus) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM relief_requests
			WHERE house_id = $1 AND kind = $2 AND flood_id = $3 AND status = ANY($4)
		)`
	err := r.db.GetContext(ctx, &exists, query, houseID, kind, floodID, statusArray(statuses))
	return exists, err
}

func (r *requestRepository) CountByStatus(ctx context.Context, scope domain.Scope, kind *domain.RequestKind, floodID *int64) (domain.StatusCounts, error) {
	var w where
	w.addScope(scope, "")
	if kind != nil {
		w.add("kind = ?", *kind)
	}
	if floodID != nil {
		w.add("flood_id = ?", *floodID)
	}

	var rows []struct {
		Status domain.RequestStatus `db:"status"`
		Count  int64                `db:"count"`
	}
	query := r.db.Rebind(`SELECT status, COUNT(*) AS count FROM relief_requests` + w.String() + ` GROUP BY status`)
	if err := r.db.SelectContext(ctx, &rows, query, w.args...); err != nil {
		return domain.StatusCounts{}, err
	}

	var counts domain.StatusCounts
	for _, row := range rows {
		counts.Add(row.Status, row.Count)
	}
	return counts, nil
}
