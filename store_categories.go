package blogtok

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategory returns a category by id.
func (s *Store) GetCategory(ctx context.Context, id int64) (Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, description, created_at FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, notFoundf("category %d", id)
	}
	return c, err
}

// CreateCategory inserts a category and returns its id.
func (s *Store) CreateCategory(ctx context.Context, name, description string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, validationf("category name is required")
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO categories (name, description, created_at) VALUES (?, ?, ?)`,
		name, nullString(description), s.timestamp())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, conflictf("a category named %q already exists", name)
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateCategory renames a category and replaces its description.
func (s *Store) UpdateCategory(ctx context.Context, id int64, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationf("category name is required")
	}
	res, err := s.db.ExecContext(ctx, `UPDATE categories SET name = ?, description = ? WHERE id = ?`,
		name, nullString(description), id)
	if err != nil {
		if isUniqueViolation(err) {
			return conflictf("a category named %q already exists", name)
		}
		return err
	}
	return requireAffected(res, "category", id)
}

// DeleteCategory removes a category. Articles that reference it keep their
// category_id.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "category", id)
}

// CountCategories returns the number of categories.
func (s *Store) CountCategories(ctx context.Context) (int, error) {
	return s.count(ctx, "categories")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(sc scanner) (Category, error) {
	var c Category
	var desc sql.NullString
	if err := sc.Scan(&c.ID, &c.Name, &desc, &c.CreatedAt); err != nil {
		return Category{}, err
	}
	c.Description = stringPtr(desc)
	return c, nil
}

func requireAffected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFoundf("%s %d", what, id)
	}
	return nil
}
