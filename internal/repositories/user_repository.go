package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/hearthloaf/hearthloaf/internal/models"
)

// SQLiteUserRepository implements UserRepository using SQLite
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-based user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &SQLiteUserRepository{
		db: db,
	}
}

// Create creates a new user
func (r *SQLiteUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, is_active, is_admin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, datetime('now'), datetime('now'))
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.IsActive, user.IsAdmin)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *SQLiteUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, is_active, is_admin, last_login, created_at, updated_at
		FROM users WHERE id = ?
	`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a user by username
func (r *SQLiteUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, is_active, is_admin, last_login, created_at, updated_at
		FROM users WHERE username = ?
	`

	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

// UpdateLastLogin records the user's most recent login time
func (r *SQLiteUserRepository) UpdateLastLogin(ctx context.Context, id int64, loginTime time.Time) error {
	query := `UPDATE users SET last_login = ?, updated_at = datetime('now') WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, loginTime, id)
	return err
}

// IsAdmin reports whether the user holds the admin role. An unknown user is
// simply not an admin.
func (r *SQLiteUserRepository) IsAdmin(ctx context.Context, id int64) (bool, error) {
	var isAdmin bool
	err := r.db.QueryRowContext(ctx, `SELECT is_admin FROM users WHERE id = ? AND is_active = 1`, id).Scan(&isAdmin)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return isAdmin, nil
}

func (r *SQLiteUserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.IsActive, &user.IsAdmin, &lastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	return user, nil
}
