package blogtok

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ListSettings returns every site setting as a map.
func (s *Store) ListSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT setting_key, setting_value FROM site_settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

// GetSetting returns the value stored under key.
func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT setting_value FROM site_settings WHERE setting_key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFoundf("setting %q", key)
	}
	return v, err
}

// UpsertSetting stores value under key, replacing any previous value.
func (s *Store) UpsertSetting(ctx context.Context, key, value string) error {
	return s.UpsertSettings(ctx, []Setting{{Key: key, Value: value}})
}

// UpsertSettings writes a batch of settings in one transaction. Either
// every key is written or none is.
func (s *Store) UpsertSettings(ctx context.Context, settings []Setting) error {
	for _, st := range settings {
		if strings.TrimSpace(st.Key) == "" {
			return validationf("setting key is required")
		}
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO site_settings (setting_key, setting_value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(setting_key) DO UPDATE SET setting_value = excluded.setting_value, updated_at = excluded.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := s.timestamp()
	for _, st := range settings {
		if _, err := stmt.ExecContext(ctx, st.Key, st.Value, now); err != nil {
			return fmt.Errorf("upsert setting %q: %w", st.Key, err)
		}
	}
	return tx.Commit()
}
