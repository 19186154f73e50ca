package blogtok

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/blogtok/views"
)

// site returns the branding for rendered pages. Stored settings win over
// the configured fallbacks.
func (a *App) site(ctx context.Context) views.Site {
	s := views.Site{Name: a.Config.Name, Description: a.Config.Description}
	settings, err := a.Store.ListSettings(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("load site settings for branding")
		return s
	}
	if v := settings["site_name"]; v != "" {
		s.Name = v
	}
	if v := settings["site_description"]; v != "" {
		s.Description = v
	}
	return s
}

// handlePage serves the front end. HTML files get the site branding
// applied; everything else is served as a static file.
func (a *App) handlePage(c echo.Context) error {
	name := path.Clean("/" + c.Param("*"))
	if name == "/" {
		name = "/index.html"
	}
	file := filepath.Join(a.Config.StaticDir, filepath.FromSlash(name))

	if !strings.HasSuffix(name, ".html") {
		info, err := os.Stat(file)
		if err != nil || info.IsDir() {
			return echo.ErrNotFound
		}
		return c.File(file)
	}

	html, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return RenderStatus(c, http.StatusOK, views.Page(string(html), a.site(c.Request().Context())))
}
