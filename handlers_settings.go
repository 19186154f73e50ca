package blogtok

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// socialKeys are the optional link settings shared by the site settings
// form and the about page.
var socialKeys = []string{"facebookLink", "twitterLink", "instagramLink", "youtubeLink"}

// aboutEditableKeys may be written through PUT /api/about.
var aboutEditableKeys = []string{
	"heroTitle", "heroSubtitle",
	"missionTitle", "missionContent",
	"communityTitle", "communityContent",
	"innovationTitle", "innovationContent",
	"impactTitle", "impactContent",
	"contactTitle", "contactDescription", "contactEmail", "contactPhone", "contactAddress",
}

// aboutDefaults fills about page keys that have no stored value.
var aboutDefaults = map[string]string{
	"heroTitle":          "About BlogTok",
	"heroSubtitle":       "Discover stories, thinking, and expertise from writers on any topic that matters to you.",
	"missionTitle":       "Our Mission",
	"missionContent":     "We believe that everyone has a story to tell and knowledge to share.",
	"communityTitle":     "Our Community",
	"communityContent":   "BlogTok is home to thousands of writers and millions of readers.",
	"innovationTitle":    "Innovation",
	"innovationContent":  "We're constantly evolving to better serve our community.",
	"impactTitle":        "Global Impact",
	"impactContent":      "Stories have the power to change minds, spark movements, and bridge divides.",
	"contactTitle":       "Get In Touch",
	"contactDescription": "Have questions? We'd love to hear from you.",
	"contactEmail":       "hello@blogtok.com",
	"contactPhone":       "+1 (555) 123-4567",
	"contactAddress":     "San Francisco, CA",
}

func aboutKeys() []string {
	return append(append([]string{}, aboutEditableKeys...), socialKeys...)
}

func (a *App) handleListSettings(c echo.Context) error {
	settings, err := a.Store.ListSettings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

func (a *App) handleGetSetting(c echo.Context) error {
	key := c.Param("key")
	v, err := a.Store.GetSetting(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{key: v})
}

type siteSettingsRequest struct {
	SiteName        string `json:"site_name"`
	SiteDescription string `json:"site_description"`
	FacebookLink    string `json:"facebookLink"`
	TwitterLink     string `json:"twitterLink"`
	InstagramLink   string `json:"instagramLink"`
	YoutubeLink     string `json:"youtubeLink"`
}

func (r siteSettingsRequest) settings() []Setting {
	return []Setting{
		{Key: "site_name", Value: strings.TrimSpace(r.SiteName)},
		{Key: "site_description", Value: strings.TrimSpace(r.SiteDescription)},
		{Key: "facebookLink", Value: r.FacebookLink},
		{Key: "twitterLink", Value: r.TwitterLink},
		{Key: "instagramLink", Value: r.InstagramLink},
		{Key: "youtubeLink", Value: r.YoutubeLink},
	}
}

func (a *App) handleUpdateSiteSettings(c echo.Context) error {
	var req siteSettingsRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.SiteName) == "" || strings.TrimSpace(req.SiteDescription) == "" {
		return validationf("site name and description are required")
	}
	settings := req.settings()
	if err := a.Store.UpsertSettings(c.Request().Context(), settings); err != nil {
		return err
	}
	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Site settings updated successfully",
		"settings": out,
	})
}

func (a *App) handleGetAbout(c echo.Context) error {
	settings, err := a.Store.ListSettings(c.Request().Context())
	if err != nil {
		return err
	}
	about := make(map[string]string)
	for _, k := range aboutKeys() {
		v := settings[k]
		if v == "" {
			v = aboutDefaults[k]
		}
		about[k] = v
	}
	return c.JSON(http.StatusOK, about)
}

func (a *App) handleUpdateAbout(c echo.Context) error {
	var body map[string]any
	if err := bindJSON(c, &body); err != nil {
		return err
	}
	var updates []Setting
	for _, k := range aboutEditableKeys {
		v, ok := body[k]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return validationf("%s must be a string", k)
		}
		updates = append(updates, Setting{Key: k, Value: s})
	}
	if len(updates) == 0 {
		return validationf("no valid fields to update")
	}
	if err := a.Store.UpsertSettings(c.Request().Context(), updates); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"message":       "About page content updated successfully",
		"updatedFields": len(updates),
	})
}
