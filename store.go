package blogtok

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02 15:04:05.000000"

// Store wraps a SQLite database holding categories, articles, site
// settings and the admin account.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// Pragmas go in the DSN so every pooled connection gets them.
	// busy_timeout comes first so the journal_mode switch on a fresh
	// connection waits for locks too. Foreign keys stay off: deleting a
	// category leaves article references dangling.
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Add("_pragma", "foreign_keys(OFF)")
	q.Set("_txlock", "immediate")
	db, err := sql.Open("sqlite", "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db, now: time.Now}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    description TEXT,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS articles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    excerpt TEXT,
    read_time TEXT,
    image TEXT,
    category_id INTEGER REFERENCES categories(id),
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at);
CREATE INDEX IF NOT EXISTS idx_articles_category_id ON articles(category_id);

CREATE TABLE IF NOT EXISTS site_settings (
    setting_key TEXT PRIMARY KEY,
    setting_value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS admin_users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    email TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Bootstrap fills an empty database: the admin account (which needs a
// password), the seed categories and the seed settings. Tables that already
// hold rows are left alone.
func (s *Store) Bootstrap(ctx context.Context, seed Seed, adminUsername, adminPassword string) error {
	n, err := s.count(ctx, "admin_users")
	if err != nil {
		return err
	}
	if n == 0 {
		if adminPassword == "" {
			return errors.New("blogtok: AdminPassword is required to create the first admin user")
		}
		if err := s.createAdminUser(ctx, adminUsername, adminPassword); err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}
	}

	if n, err = s.count(ctx, "categories"); err != nil {
		return err
	}
	if n == 0 {
		for _, c := range seed.Categories {
			if _, err := s.CreateCategory(ctx, c.Name, c.Description); err != nil {
				return fmt.Errorf("seed category %q: %w", c.Name, err)
			}
		}
	}

	if n, err = s.count(ctx, "site_settings"); err != nil {
		return err
	}
	if n == 0 && len(seed.Settings) > 0 {
		if err := s.UpsertSettings(ctx, seed.settingsList()); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}
	return nil
}

// count is only called with constant table names.
func (s *Store) count(ctx context.Context, table string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
	return n, err
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		if se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}
