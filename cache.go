package blogtok

import (
	"context"
	"sync"
	"time"
)

// ArticleCache is an in-memory cache of the joined article listing and the
// category listing with TTL. Writers call Invalidate after every mutation.
type ArticleCache struct {
	mu         sync.RWMutex
	articles   []Article
	categories []Category
	fetched    time.Time
	ttl        time.Duration
	store      *Store
}

// NewArticleCache creates an ArticleCache backed by the given Store.
func NewArticleCache(s *Store, ttl time.Duration) *ArticleCache {
	return &ArticleCache{store: s, ttl: ttl}
}

func (c *ArticleCache) valid() bool {
	return c.articles != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ArticleCache) Invalidate() {
	c.mu.Lock()
	c.articles = nil
	c.categories = nil
	c.mu.Unlock()
}

func (c *ArticleCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	articles, err := c.store.ListArticlesWithCategory(ctx)
	if err != nil {
		return err
	}
	categories, err := c.store.ListCategories(ctx)
	if err != nil {
		return err
	}
	c.articles = articles
	c.categories = categories
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached listings after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ArticleCache) ensureLoaded(ctx context.Context) ([]Article, []Category, error) {
	c.mu.RLock()
	if c.valid() {
		articles, categories := c.articles, c.categories
		c.mu.RUnlock()
		return articles, categories, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, err
	}
	return c.articles, c.categories, nil
}

// ArticlesWithCategory returns every article with its category name, newest
// first. The slice is shared; callers must not modify it.
func (c *ArticleCache) ArticlesWithCategory(ctx context.Context) ([]Article, error) {
	articles, _, err := c.ensureLoaded(ctx)
	return articles, err
}

// Categories returns every category ordered by name.
func (c *ArticleCache) Categories(ctx context.Context) ([]Category, error) {
	_, categories, err := c.ensureLoaded(ctx)
	return categories, err
}
