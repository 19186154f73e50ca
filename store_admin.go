package blogtok

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username is unknown so both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("blogtok-dummy-password"), bcrypt.DefaultCost)

func hashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (s *Store) createAdminUser(ctx context.Context, username, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	now := s.timestamp()
	_, err = s.db.ExecContext(ctx, `INSERT INTO admin_users (username, password_hash, email, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		username, hash, nil, now, now)
	return err
}

// VerifyAdminCredentials returns the admin whose username and password
// match, or ErrUnauthorized.
func (s *Store) VerifyAdminCredentials(ctx context.Context, username, password string) (AdminUser, error) {
	var u AdminUser
	var hash string
	var email sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, email, created_at, updated_at FROM admin_users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &hash, &email, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return AdminUser{}, ErrUnauthorized
	}
	if err != nil {
		return AdminUser{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return AdminUser{}, ErrUnauthorized
	}
	u.Email = stringPtr(email)
	return u, nil
}

// GetAdminUser returns the admin account.
func (s *Store) GetAdminUser(ctx context.Context) (AdminUser, error) {
	var u AdminUser
	var email sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT id, username, email, created_at, updated_at FROM admin_users ORDER BY id LIMIT 1`).
		Scan(&u.ID, &u.Username, &email, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return AdminUser{}, notFoundf("admin user")
	}
	if err != nil {
		return AdminUser{}, err
	}
	u.Email = stringPtr(email)
	return u, nil
}

// UpdateAdminUser changes the admin account (id 1). Username is required;
// email and password are only changed when given.
func (s *Store) UpdateAdminUser(ctx context.Context, up AdminUpdate) error {
	username := strings.TrimSpace(up.Username)
	if username == "" {
		return validationf("username is required")
	}
	query := `UPDATE admin_users SET username = ?, updated_at = ?`
	args := []any{username, s.timestamp()}
	if email := strings.TrimSpace(up.Email); email != "" {
		query += `, email = ?`
		args = append(args, email)
	}
	if up.Password != "" {
		hash, err := hashPassword(up.Password)
		if err != nil {
			return err
		}
		query += `, password_hash = ?`
		args = append(args, hash)
	}
	query += ` WHERE id = 1`

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return conflictf("username %q is taken", username)
		}
		return err
	}
	return requireAffected(res, "admin user", 1)
}

// SetAdminPassword replaces the password of the named admin. On an empty
// admin table it creates the account instead.
func (s *Store) SetAdminPassword(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return validationf("username and password are required")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE admin_users SET password_hash = ?, updated_at = ? WHERE username = ?`,
		hash, s.timestamp(), username)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil || n > 0 {
		return err
	}
	n, err := s.count(ctx, "admin_users")
	if err != nil {
		return err
	}
	if n > 0 {
		return notFoundf("admin user %q", username)
	}
	return s.createAdminUser(ctx, username, password)
}
