package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/fintrack/internal/models"
)

const userColumns = `id, username, email, full_name, is_active, mobile_number, address, profile_image, created_at, updated_at`

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

func scanUser(row rowScanner, u *models.User, extra ...any) error {
	dest := []any{
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.IsActive,
		&u.MobileNumber, &u.Address, &u.ProfileImage, &u.CreatedAt, &u.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash, fullName string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, full_name)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	user := &models.User{}
	err := scanUser(r.DB.QueryRowContext(ctx, query, username, email, passwordHash, fullName), user)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// ==========================
// Get By ID (password hash excluded)
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user := &models.User{}
	if err := scanUser(r.DB.QueryRowContext(ctx, query, id), user); err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// ==========================
// Get With Password (by id, hash included)
// ==========================
func (r *UserRepo) GetWithPassword(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + `, password_hash FROM users WHERE id = $1`

	user := &models.User{}
	if err := scanUser(r.DB.QueryRowContext(ctx, query, id), user, &user.PasswordHash); err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// ==========================
// Get By Email (hash included, for login)
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + `, password_hash FROM users WHERE email = $1`

	user := &models.User{}
	if err := scanUser(r.DB.QueryRowContext(ctx, query, email), user, &user.PasswordHash); err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// ==========================
// Exists checks
// ==========================
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

// ==========================
// Update Profile
// ==========================
func (r *UserRepo) UpdateProfile(ctx context.Context, id string, p models.ProfileUpdate) (*models.User, error) {
	query := `
		UPDATE users
		SET full_name = COALESCE($1, full_name),
		    mobile_number = COALESCE($2, mobile_number),
		    address = COALESCE($3, address),
		    username = COALESCE($4, username),
		    email = COALESCE($5, email),
		    updated_at = now()
		WHERE id = $6
		RETURNING ` + userColumns

	user := &models.User{}
	row := r.DB.QueryRowContext(ctx, query, p.FullName, p.MobileNumber, p.Address, p.Username, p.Email, id)
	if err := scanUser(row, user); err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// ==========================
// Update Password
// ==========================
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
