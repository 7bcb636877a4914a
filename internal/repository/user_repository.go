package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"flowx-relief/internal/domain"
)

const userColumns = `id, email, password_hash, full_name, phone, role, divisional_secretariat_id,
	grama_niladhari_division_id, house_id, locale, is_active, created_at, updated_at`

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// ListStaffFor returns the active staff responsible for a request's area:
	// the grama sevaka of its division and the officers of its secretariat.
	ListStaffFor(ctx context.Context, gnDivisionID, divisionalSecretariatID int64) ([]domain.User, error)
	ListByHouse(ctx context.Context, houseID int64) ([]domain.User, error)
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, phone, role, divisional_secretariat_id,
			grama_niladhari_division_id, house_id, locale, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Phone, user.Role,
		user.DivisionalSecretariatID, user.GNDivisionID, user.HouseID, user.Locale, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET full_name = :full_name, phone = :phone, locale = :locale, updated_at = NOW()
		WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) ListStaffFor(ctx context.Context, gnDivisionID, divisionalSecretariatID int64) ([]domain.User, error) {
	users := []domain.User{}
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE is_active
			AND ((role = 'grama_sevaka' AND grama_niladhari_division_id = $1)
				OR (role = 'government_officer' AND divisional_secretariat_id = $2))
		ORDER BY created_at`
	err := r.db.SelectContext(ctx, &users, query, gnDivisionID, divisionalSecretariatID)
	return users, err
}

func (r *userRepository) ListByHouse(ctx context.Context, houseID int64) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE house_id = $1 AND is_active ORDER BY created_at`
	err := r.db.SelectContext(ctx, &users, query, houseID)
	return users, err
}

func (r *userRepository) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users WHERE is_active`)
	return ids, err
}
