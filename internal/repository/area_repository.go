package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"flowx-relief/internal/domain"
)

type AreaRepository interface {
	ListDistricts(ctx context.Context) ([]domain.District, error)
	ListDivisionalSecretariats(ctx context.Context, districtID int64) ([]domain.DivisionalSecretariat, error)
	ListGNDivisions(ctx context.Context, divisionalSecretariatID int64) ([]domain.GNDivision, error)
	// Name returns "" when the area does not exist.
	Name(ctx context.Context, areaType domain.AreaType, id int64) (string, error)
	GetGNDivision(ctx context.Context, id int64) (*domain.GNDivision, error)
	GetDivisionalSecretariat(ctx context.Context, id int64) (*domain.DivisionalSecretariat, error)
	HouseScope(ctx context.Context, houseID int64) (*domain.HouseScope, error)
	FindOrCreateHouse(ctx context.Context, gnDivisionID int64, houseNumber, address string) (int64, error)
}

type areaRepository struct {
	db *sqlx.DB
}

func NewAreaRepository(db *sqlx.DB) AreaRepository {
	return &areaRepository{db: db}
}

func (r *areaRepository) ListDistricts(ctx context.Context) ([]domain.District, error) {
	districts := []domain.District{}
	err := r.db.SelectContext(ctx, &districts, `SELECT id, name FROM districts ORDER BY name`)
	return districts, err
}

func (r *areaRepository) ListDivisionalSecretariats(ctx context.Context, districtID int64) ([]domain.DivisionalSecretariat, error) {
	items := []domain.DivisionalSecretariat{}
	query := `SELECT id, name, district_id FROM divisional_secretariats WHERE district_id = $1 ORDER BY name`
	err := r.db.SelectContext(ctx, &items, query, districtID)
	return items, err
}

func (r *areaRepository) ListGNDivisions(ctx context.Context, divisionalSecretariatID int64) ([]domain.GNDivision, error) {
	items := []domain.GNDivision{}
	query := `
		SELECT id, name, divisional_secretariat_id FROM grama_niladhari_divisions
		WHERE divisional_secretariat_id = $1 ORDER BY name`
	err := r.db.SelectContext(ctx, &items, query, divisionalSecretariatID)
	return items, err
}

var areaTables = map[domain.AreaType]string{
	domain.AreaDistrict:              "districts",
	domain.AreaDivisionalSecretariat: "divisional_secretariats",
	domain.AreaGNDivision:            "grama_niladhari_divisions",
}

func (r *areaRepository) Name(ctx context.Context, areaType domain.AreaType, id int64) (string, error) {
	table, ok := areaTables[areaType]
	if !ok {
		return "", fmt.Errorf("unknown area type %q", areaType)
	}

	var name string
	err := r.db.GetContext(ctx, &name, `SELECT name FROM `+table+` WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return name, err
}

func (r *areaRepository) GetGNDivision(ctx context.Context, id int64) (*domain.GNDivision, error) {
	var gn domain.GNDivision
	query := `SELECT id, name, divisional_secretariat_id FROM grama_niladhari_divisions WHERE id = $1`
	err := r.db.GetContext(ctx, &gn, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gn, nil
}

func (r *areaRepository) GetDivisionalSecretariat(ctx context.Context, id int64) (*domain.DivisionalSecretariat, error) {
	var ds domain.DivisionalSecretariat
	query := `SELECT id, name, district_id FROM divisional_secretariats WHERE id = $1`
	err := r.db.GetContext(ctx, &ds, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

func (r *areaRepository) HouseScope(ctx context.Context, houseID int64) (*domain.HouseScope, error) {
	var hs domain.HouseScope
	query := `
		SELECT h.id AS house_id,
			gn.id AS grama_niladhari_division_id,
			ds.id AS divisional_secretariat_id,
			ds.district_id AS district_id
		FROM houses h
		JOIN grama_niladhari_divisions gn ON gn.id = h.grama_niladhari_division_id
		JOIN divisional_secretariats ds ON ds.id = gn.divisional_secretariat_id
		WHERE h.id = $1`
	err := r.db.GetContext(ctx, &hs, query, houseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hs, nil
}

func (r *areaRepository) FindOrCreateHouse(ctx context.Context, gnDivisionID int64, houseNumber, address string) (int64, error) {
	var id int64
	query := `
		INSERT INTO houses (grama_niladhari_division_id, house_number, address)
		VALUES ($1, $2, $3)
		ON CONFLICT (grama_niladhari_division_id, house_number) DO UPDATE SET address = EXCLUDED.address
		RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, gnDivisionID, houseNumber, address).Scan(&id)
	return id, err
}
