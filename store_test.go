package blogtok

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test_blog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCategory(t *testing.T, s *Store, name string) int64 {
	t.Helper()
	id, err := s.CreateCategory(context.Background(), name, "")
	require.NoError(t, err)
	return id
}

func mustArticle(t *testing.T, s *Store, in ArticleInput) int64 {
	t.Helper()
	id, err := s.CreateArticle(context.Background(), in)
	require.NoError(t, err)
	return id
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	s := setupTestStore(t)
	require.NotNil(t, s.db)
	require.NoError(t, s.Ping(context.Background()))
}

func TestCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	id, err := s.CreateCategory(ctx, "  Technology ", "All things tech")
	require.NoError(t, err)

	got, err := s.GetCategory(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Technology", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "All things tech", *got.Description)
	assert.NotEmpty(t, got.CreatedAt)

	require.NoError(t, s.UpdateCategory(ctx, id, "Tech", ""))
	got, err = s.GetCategory(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Tech", got.Name)
	assert.Nil(t, got.Description)

	n, err := s.CountCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.DeleteCategory(ctx, id))
	_, err = s.GetCategory(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteCategory(ctx, id), ErrNotFound)
	assert.ErrorIs(t, s.UpdateCategory(ctx, id, "Other", ""), ErrNotFound)
}

func TestListCategoriesOrderedByName(t *testing.T) {
	s := setupTestStore(t)
	for _, n := range []string{"Sports", "Business", "Lifestyle"} {
		mustCategory(t, s, n)
	}
	cats, err := s.ListCategories(context.Background())
	require.NoError(t, err)
	var names []string
	for _, c := range cats {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Business", "Lifestyle", "Sports"}, names)
}

func TestCreateCategoryValidation(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.CreateCategory(context.Background(), "   ", "x")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCategoryNameUniqueness(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	mustCategory(t, s, "Tech")

	_, err := s.CreateCategory(ctx, "Tech", "")
	assert.ErrorIs(t, err, ErrConflict)

	// Uniqueness is case-sensitive.
	_, err = s.CreateCategory(ctx, "tech", "")
	assert.NoError(t, err)

	other := mustCategory(t, s, "Science")
	assert.ErrorIs(t, s.UpdateCategory(ctx, other, "Tech", ""), ErrConflict)
}

func TestCreateArticleRequiresTitleAndContent(t *testing.T) {
	s := setupTestStore(t)
	tests := []struct {
		name string
		in   ArticleInput
	}{
		{"missing title", ArticleInput{Content: "body"}},
		{"blank title", ArticleInput{Title: "  ", Content: "body"}},
		{"missing content", ArticleInput{Title: "Title"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateArticle(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	n, err := s.CountArticles(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateArticleDefaultsOptionalFieldsToNull(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	id := mustArticle(t, s, ArticleInput{Title: "Hello", Content: "World", Excerpt: "  "})

	got, err := s.GetArticle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "World", got.Content)
	assert.Nil(t, got.Excerpt)
	assert.Nil(t, got.ReadTime)
	assert.Nil(t, got.Image)
	assert.Nil(t, got.CategoryID)
	assert.NotEmpty(t, got.CreatedAt)
}

func TestListArticlesNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	first := mustArticle(t, s, ArticleInput{Title: "Old", Content: "x", CreatedAt: "2024-01-01 00:00:00.000000"})
	second := mustArticle(t, s, ArticleInput{Title: "New", Content: "x", CreatedAt: "2024-06-01 00:00:00.000000"})
	tie := mustArticle(t, s, ArticleInput{Title: "Tie", Content: "x", CreatedAt: "2024-06-01 00:00:00.000000"})

	articles, err := s.ListArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 3)
	assert.Equal(t, []int64{tie, second, first}, []int64{articles[0].ID, articles[1].ID, articles[2].ID})
}

func TestDeleteArticle(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	id := mustArticle(t, s, ArticleInput{Title: "Bye", Content: "x"})

	require.NoError(t, s.DeleteArticle(ctx, id))
	_, err := s.GetArticle(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteArticle(ctx, id), ErrNotFound)
}

func TestDeletedCategoryLeavesDanglingReference(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	cat := mustCategory(t, s, "Technology")
	keep := mustCategory(t, s, "Business")
	orphan := mustArticle(t, s, ArticleInput{Title: "Orphan", Content: "x", CategoryID: &cat})
	mustArticle(t, s, ArticleInput{Title: "Kept", Content: "x", CategoryID: &keep})

	require.NoError(t, s.DeleteCategory(ctx, cat))

	articles, err := s.ListArticlesWithCategory(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	for _, a := range articles {
		switch a.ID {
		case orphan:
			require.NotNil(t, a.CategoryID, "category_id must survive the delete")
			assert.Equal(t, cat, *a.CategoryID)
			assert.Nil(t, a.CategoryName)
		default:
			require.NotNil(t, a.CategoryName)
			assert.Equal(t, "Business", *a.CategoryName)
		}
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	_, err := s.GetSetting(ctx, "site_name")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.UpsertSetting(ctx, "site_name", "First"))
	require.NoError(t, s.UpsertSetting(ctx, "site_name", "Second"))
	v, err := s.GetSetting(ctx, "site_name")
	require.NoError(t, err)
	assert.Equal(t, "Second", v)

	require.NoError(t, s.UpsertSettings(ctx, []Setting{
		{Key: "a", Value: "1"},
		{Key: "b", Value: ""},
	}))
	all, err := s.ListSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"site_name": "Second", "a": "1", "b": ""}, all)
}

func TestUpsertSettingsIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	require.NoError(t, s.UpsertSetting(ctx, "site_name", "Before"))

	err := s.UpsertSettings(ctx, []Setting{
		{Key: "site_name", Value: "After"},
		{Key: "", Value: "broken"},
	})
	require.ErrorIs(t, err, ErrValidation)

	v, err := s.GetSetting(ctx, "site_name")
	require.NoError(t, err)
	assert.Equal(t, "Before", v)
}

func TestUpsertSettingsRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	err := s.UpsertSettings(cctx, []Setting{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}})
	require.Error(t, err)

	all, err := s.ListSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateArticle(ctx, ArticleInput{Title: "t", Content: "c"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	n, err := s.CountArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestAdminCredentials(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	require.NoError(t, s.createAdminUser(ctx, "admin", "s3cret"))

	u, err := s.VerifyAdminCredentials(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)

	_, err = s.VerifyAdminCredentials(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = s.VerifyAdminCredentials(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrUnauthorized)

	var stored string
	require.NoError(t, s.db.QueryRow(`SELECT password_hash FROM admin_users`).Scan(&stored))
	assert.NotEqual(t, "s3cret", stored)
}

func TestUpdateAdminUser(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	assert.ErrorIs(t, s.UpdateAdminUser(ctx, AdminUpdate{Username: "x"}), ErrNotFound)

	require.NoError(t, s.createAdminUser(ctx, "admin", "old"))
	assert.ErrorIs(t, s.UpdateAdminUser(ctx, AdminUpdate{Username: " "}), ErrValidation)

	require.NoError(t, s.UpdateAdminUser(ctx, AdminUpdate{Username: "editor", Email: "e@example.com"}))
	u, err := s.GetAdminUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "editor", u.Username)
	require.NotNil(t, u.Email)
	assert.Equal(t, "e@example.com", *u.Email)

	// Password untouched when omitted.
	_, err = s.VerifyAdminCredentials(ctx, "editor", "old")
	require.NoError(t, err)

	require.NoError(t, s.UpdateAdminUser(ctx, AdminUpdate{Username: "editor", Password: "new"}))
	_, err = s.VerifyAdminCredentials(ctx, "editor", "old")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = s.VerifyAdminCredentials(ctx, "editor", "new")
	assert.NoError(t, err)
}

func TestSetAdminPassword(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.SetAdminPassword(ctx, "admin", "first"))
	_, err := s.VerifyAdminCredentials(ctx, "admin", "first")
	require.NoError(t, err)

	require.NoError(t, s.SetAdminPassword(ctx, "admin", "second"))
	_, err = s.VerifyAdminCredentials(ctx, "admin", "second")
	require.NoError(t, err)

	assert.ErrorIs(t, s.SetAdminPassword(ctx, "someone", "x"), ErrNotFound)
	assert.ErrorIs(t, s.SetAdminPassword(ctx, "admin", ""), ErrValidation)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	seed := Seed{
		Categories: []SeedCategory{{Name: "Technology"}, {Name: "Business", Description: "Money"}},
		Settings:   map[string]string{"site_name": "BlogTok"},
	}

	assert.Error(t, s.Bootstrap(ctx, seed, "admin", ""), "first admin needs a password")

	require.NoError(t, s.Bootstrap(ctx, seed, "admin", "pw"))
	require.NoError(t, s.Bootstrap(ctx, seed, "admin", ""), "second run must not need a password")

	n, err := s.CountCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	v, err := s.GetSetting(ctx, "site_name")
	require.NoError(t, err)
	assert.Equal(t, "BlogTok", v)
	_, err = s.VerifyAdminCredentials(ctx, "admin", "pw")
	assert.NoError(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	mustCategory(t, s, "Dup")
	_, err := s.db.ExecContext(ctx, `INSERT INTO categories (name, created_at) VALUES ('Dup', 'x')`)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}
