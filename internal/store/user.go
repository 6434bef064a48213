// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all EricWriter
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
// Stores guard data integrity only; ownership checks belong to the handlers.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"ericwriter/internal/models"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// userColumns lists the columns selected in user queries.
const userColumns = `id, username, password_hash, theme,
	custom_font_size, custom_bg_primary, custom_bg_secondary,
	custom_text_primary, custom_text_secondary, custom_accent_color,
	created_at`

// scanUser scans a user row from the result set.
func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := scanner.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Theme,
		&u.Custom.FontSize, &u.Custom.BgPrimary, &u.Custom.BgSecondary,
		&u.Custom.TextPrimary, &u.Custom.TextSecondary, &u.Custom.AccentColor,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByUsername retrieves a user by username. Returns nil if not found.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by ID. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// Create inserts a new user with a bcrypt-hashed password. A taken
// username yields models.ErrConflict and leaves the existing row untouched.
func (s *UserStore) Create(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING `+userColumns,
		username, string(hash),
	)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("create user %q: %w", username, models.ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// timingDummyHash returns a bcrypt hash compared against when the user does
// not exist, so a missing account costs as much as a wrong password.
func timingDummyHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("ericwriter-dummy-password"), bcrypt.DefaultCost)
	})
	return dummyHash
}

// Verify checks a plaintext password against the user's stored hash. A nil
// user always fails, after doing the same amount of hashing work.
func (s *UserStore) Verify(user *models.User, password string) bool {
	if user == nil {
		bcrypt.CompareHashAndPassword(timingDummyHash(), []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// UpdateTheme switches the user to one of the named presets (or custom).
// The stored custom fields are left as they are.
func (s *UserStore) UpdateTheme(ctx context.Context, userID int64, theme models.Theme) error {
	if _, err := models.ParseTheme(string(theme)); err != nil {
		return fmt.Errorf("update theme: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `UPDATE users SET theme = $1 WHERE id = $2`, theme, userID)
	if err != nil {
		return fmt.Errorf("update theme: %w", err)
	}
	return requireRow(result, "update theme")
}

// UpdateCustomTheme stores every custom field and selects the custom theme.
func (s *UserStore) UpdateCustomTheme(ctx context.Context, userID int64, cs models.CustomSettings) error {
	if err := cs.Validate(); err != nil {
		return fmt.Errorf("update custom theme: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			theme = $1,
			custom_font_size = $2,
			custom_bg_primary = $3,
			custom_bg_secondary = $4,
			custom_text_primary = $5,
			custom_text_secondary = $6,
			custom_accent_color = $7
		WHERE id = $8
	`, models.ThemeCustom, cs.FontSize, cs.BgPrimary, cs.BgSecondary,
		cs.TextPrimary, cs.TextSecondary, cs.AccentColor, userID,
	)
	if err != nil {
		return fmt.Errorf("update custom theme: %w", err)
	}
	return requireRow(result, "update custom theme")
}

// requireRow converts a zero-row write into models.ErrNotFound.
func requireRow(result sql.Result, op string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}
