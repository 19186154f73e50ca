package blogtok

// Category groups articles. Names are unique and compared case-sensitively.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

// Article is a stored post. CategoryID may point at a category that no
// longer exists; CategoryName is then nil and readers show "Uncategorized".
type Article struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Excerpt      *string `json:"excerpt"`
	ReadTime     *string `json:"read_time"`
	Image        *string `json:"image"`
	CategoryID   *int64  `json:"category_id"`
	CreatedAt    string  `json:"created_at"`
	CategoryName *string `json:"category_name"`
}

// ArticleInput carries the fields accepted when creating an article.
// Empty optional strings are stored as NULL.
type ArticleInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	ReadTime   string `json:"read_time"`
	Image      string `json:"-"`
	CategoryID *int64 `json:"category_id"`
	CreatedAt  string `json:"-"` // defaults to now
}

// Setting is one row of the site_settings key-value store.
type Setting struct {
	Key   string
	Value string
}

// AdminUser is the single administrator account. The password hash never
// leaves the store.
type AdminUser struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     *string `json:"email"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// AdminUpdate describes a change to the admin account. Empty Email or
// Password leaves the stored value untouched.
type AdminUpdate struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// SearchQuery is the input to App.Search.
type SearchQuery struct {
	Query    string
	Category string // "" or "all" disables the filter
	Limit    int    // <= 0 means DefaultSearchLimit
}

// SearchResult is an article annotated for display.
type SearchResult struct {
	Article
	RelevanceScore     int    `json:"relevance_score"`
	HighlightedTitle   string `json:"highlighted_title"`
	HighlightedExcerpt string `json:"highlighted_excerpt"`
}

// SearchResponse is the body of GET /api/search. Total counts the results
// returned after truncation; Matched counts every candidate.
type SearchResponse struct {
	Query    string         `json:"query"`
	Category string         `json:"category"`
	Total    int            `json:"total"`
	Matched  int            `json:"matched"`
	Results  []SearchResult `json:"results"`
}
