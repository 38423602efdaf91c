package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
	"github.com/Revach69/bashert/internal/pkg/dberrors"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and assigns the generated ID. Roles are stored
// as a text array.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password, full_name, phone, roles, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.Email, user.Password, user.FullName, user.Phone,
		rolesToStrings(user.Roles), user.IsActive).Scan(&id)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("email already in use")
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	user.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	var roles []string
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password, full_name, phone, roles, is_active,
			created_at, updated_at, last_login_at
		FROM users `+where,
		arg).Scan(
		&user.ID, &user.Email, &user.Password, &user.FullName, &user.Phone,
		&roles, &user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}

	user.Roles = stringsToRoles(roles)
	return user, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// AddRole appends a role to the user's role set if not already present.
func (r *UserRepository) AddRole(ctx context.Context, userID int64, role models.Role) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users
		SET roles = array_append(roles, $1), updated_at = NOW()
		WHERE id = $2 AND NOT ($1 = ANY(roles))`,
		string(role), userID)

	if err != nil {
		return fmt.Errorf("error adding role: %w", err)
	}

	// Zero rows means either absent user or role already held; the caller
	// has loaded the user beforehand, so treat it as already assigned.
	_ = result
	return nil
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	now := time.Now()
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET last_login_at = $1
		WHERE id = $2`,
		now, userID)

	if err != nil {
		return fmt.Errorf("failed to update last login time: %w", err)
	}

	return nil
}

// SetActive toggles account disabling.
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2`,
		active, userID)

	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user not found")
	}

	return nil
}

func rolesToStrings(roles []models.Role) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, string(role))
	}
	return out
}

func stringsToRoles(values []string) []models.Role {
	out := make([]models.Role, 0, len(values))
	for _, v := range values {
		out = append(out, models.Role(v))
	}
	return out
}
