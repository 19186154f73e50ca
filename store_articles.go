package blogtok

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

const articleColumns = `a.id, a.title, a.content, a.excerpt, a.read_time, a.image, a.category_id, a.created_at`

// ListArticles returns all articles, newest first.
func (s *Store) ListArticles(ctx context.Context) ([]Article, error) {
	return s.queryArticles(ctx, false,
		`SELECT `+articleColumns+` FROM articles a ORDER BY a.created_at DESC, a.id DESC`)
}

// ListArticlesWithCategory returns all articles joined with their category
// name, newest first. CategoryName is nil when the article has no category
// or its category was deleted.
func (s *Store) ListArticlesWithCategory(ctx context.Context) ([]Article, error) {
	return s.queryArticles(ctx, true,
		`SELECT `+articleColumns+`, c.name FROM articles a
		 LEFT JOIN categories c ON a.category_id = c.id
		 ORDER BY a.created_at DESC, a.id DESC`)
}

// GetArticle returns an article by id.
func (s *Store) GetArticle(ctx context.Context, id int64) (Article, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles a WHERE a.id = ?`, id)
	a, err := scanArticle(row, false)
	if errors.Is(err, sql.ErrNoRows) {
		return Article{}, notFoundf("article %d", id)
	}
	return a, err
}

// CreateArticle inserts an article and returns its id. Title and content
// are required; the remaining fields are stored as NULL when empty.
func (s *Store) CreateArticle(ctx context.Context, in ArticleInput) (int64, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Content) == "" {
		return 0, validationf("title and content are required")
	}
	created := in.CreatedAt
	if created == "" {
		created = s.timestamp()
	}
	var category sql.NullInt64
	if in.CategoryID != nil {
		category = sql.NullInt64{Int64: *in.CategoryID, Valid: true}
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO articles (title, content, excerpt, read_time, image, category_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		title, in.Content, nullString(in.Excerpt), nullString(in.ReadTime), nullString(in.Image), category, created)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteArticle removes an article by id.
func (s *Store) DeleteArticle(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "article", id)
}

// CountArticles returns the number of articles.
func (s *Store) CountArticles(ctx context.Context) (int, error) {
	return s.count(ctx, "articles")
}

func (s *Store) queryArticles(ctx context.Context, withCategory bool, query string, args ...any) ([]Article, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []Article{}
	for rows.Next() {
		a, err := scanArticle(rows, withCategory)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func scanArticle(sc scanner, withCategory bool) (Article, error) {
	var a Article
	var excerpt, readTime, image, categoryName sql.NullString
	var categoryID sql.NullInt64
	dest := []any{&a.ID, &a.Title, &a.Content, &excerpt, &readTime, &image, &categoryID, &a.CreatedAt}
	if withCategory {
		dest = append(dest, &categoryName)
	}
	if err := sc.Scan(dest...); err != nil {
		return Article{}, err
	}
	a.Excerpt = stringPtr(excerpt)
	a.ReadTime = stringPtr(readTime)
	a.Image = stringPtr(image)
	a.CategoryID = int64Ptr(categoryID)
	a.CategoryName = stringPtr(categoryName)
	return a, nil
}
