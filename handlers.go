package blogtok

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/blogtok/views"
)

func (a *App) handleHealth(c echo.Context) error {
	status := http.StatusOK
	body := map[string]any{
		"status":      "ok",
		"message":     "Server is running",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": a.Config.Environment,
	}
	if err := a.Store.Ping(c.Request().Context()); err != nil {
		a.log.Error().Err(err).Msg("health check: database unreachable")
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
		body["message"] = "Database unreachable"
	}
	return c.JSON(status, body)
}

func (a *App) handleSearch(c echo.Context) error {
	q := SearchQuery{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return validationf("limit must be an integer")
		}
		q.Limit = n
	}
	resp, err := a.Search(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *App) handleListArticles(c echo.Context) error {
	articles, err := a.Store.ListArticles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articles)
}

func (a *App) handleListArticlesWithCategories(c echo.Context) error {
	articles, err := a.Cache.ArticlesWithCategory(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articles)
}

func (a *App) handleCountArticles(c echo.Context) error {
	n, err := a.Store.CountArticles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"count": n})
}

func (a *App) handleGetArticle(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	article, err := a.Store.GetArticle(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

func (a *App) handleCreateArticle(c echo.Context) error {
	ctx := c.Request().Context()
	in, err := a.readArticleInput(c)
	if err != nil {
		return err
	}
	// Check the required fields before touching the disk.
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return validationf("title and content are required")
	}
	image, err := a.saveUploadedImage(c)
	if err != nil {
		return err
	}
	in.Image = image

	id, err := a.Store.CreateArticle(ctx, in)
	if err != nil {
		a.removeUpload(image)
		return err
	}
	a.Cache.Invalidate()
	article, err := a.Store.GetArticle(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, article)
}

func (a *App) handleDeleteArticle(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := a.Store.DeleteArticle(c.Request().Context(), id); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, message{Message: "Article deleted successfully"})
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (a *App) handleListCategories(c echo.Context) error {
	categories, err := a.Cache.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

func (a *App) handleCountCategories(c echo.Context) error {
	n, err := a.Store.CountCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"count": n})
}

func (a *App) handleGetCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	category, err := a.Store.GetCategory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

func (a *App) handleCreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	var req categoryRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	id, err := a.Store.CreateCategory(ctx, req.Name, req.Description)
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	category, err := a.Store.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

func (a *App) handleUpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req categoryRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := a.Store.UpdateCategory(ctx, id, req.Name, req.Description); err != nil {
		return err
	}
	a.Cache.Invalidate()
	category, err := a.Store.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

func (a *App) handleDeleteCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := a.Store.DeleteCategory(c.Request().Context(), id); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, message{Message: "Category deleted successfully"})
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, validationf("invalid id %q", c.Param("id"))
	}
	return id, nil
}

// bindJSON decodes the request body, reporting malformed input as a
// validation error.
func bindJSON(c echo.Context, v any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return validationf("invalid request body: %v", he.Message)
		}
		return validationf("invalid request body")
	}
	return nil
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := statusFor(err)
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = http.StatusText(code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}
	if code >= 500 {
		a.log.Error().Err(err).Str("method", c.Request().Method).Str("uri", c.Request().RequestURI).Msg("server error")
		if !a.Config.ExposeErrors {
			msg = "internal server error"
		}
	}

	if !strings.HasPrefix(c.Request().URL.Path, "/api/") {
		site := a.site(c.Request().Context())
		switch {
		case code == http.StatusNotFound:
			_ = RenderStatus(c, code, views.NotFound(site))
			return
		case code >= 500:
			_ = RenderStatus(c, code, views.ServerError(site))
			return
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorBody{Error: msg})
}
