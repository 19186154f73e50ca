package blogtok

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/blogtok/search"
)

// feedSize is how many of the latest articles the feed and sitemap list.
const feedSize = 50

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

func latest(articles []Article) []Article {
	if len(articles) > feedSize {
		return articles[:feedSize]
	}
	return articles
}

func (a *App) handleFeed(c echo.Context) error {
	ctx := c.Request().Context()
	articles, err := a.Cache.ArticlesWithCategory(ctx)
	if err != nil {
		return err
	}
	site := a.site(ctx)
	base := a.Config.URL

	items := make([]rssItem, 0, feedSize)
	for _, art := range latest(articles) {
		pubDate := ""
		if t, ok := parseTimestamp(art.CreatedAt); ok {
			pubDate = t.Format(time.RFC1123Z)
		}
		summary := search.Excerpt(art.Content, excerptRunes)
		if art.Excerpt != nil {
			summary = *art.Excerpt
		}
		item := rssItem{
			Title:       art.Title,
			Link:        ArticleURL(base, art.ID),
			Description: summary,
			PubDate:     pubDate,
			GUID:        ArticleURL(base, art.ID),
		}
		if art.CategoryName != nil {
			item.Category = *art.CategoryName
		}
		items = append(items, item)
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Name,
			Link:        BuildURL(base, ""),
			Description: site.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
