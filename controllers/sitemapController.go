package controllers

import (
	"context"
	"encoding/xml"
	"net/http"
	"os"
	"time"

	"daleelai-be/models"
	"daleelai-be/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const defaultSiteURL = "https://daleel-ai.com"

// URLEntry is one <url> element of the sitemap
type URLEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []URLEntry `xml:"url"`
}

// SitemapController enumerates the site's content into sitemap.xml
type SitemapController struct {
	store *store.Store
}

func NewSitemapController(s *store.Store) *SitemapController {
	return &SitemapController{store: s}
}

// Sitemap renders the full sitemap. Every sub-query is best-effort: a
// failing collection logs a warning and drops out of the map, so at worst
// the static page list is served. This handler never errors.
func (sc *SitemapController) Sitemap(c *gin.Context) {
	baseURL := os.Getenv("SITE_URL")
	if baseURL == "" {
		baseURL = defaultSiteURL
	}

	entries := StaticEntries(baseURL, time.Now())

	if sc.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		entries = append(entries, sc.toolEntries(ctx, baseURL)...)
		entries = append(entries, sc.newsEntries(ctx, baseURL)...)
		entries = append(entries, sc.courseEntries(ctx, baseURL)...)
	}

	body, err := xml.MarshalIndent(urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  entries,
	}, "", "  ")
	if err != nil {
		log.WithError(err).Warn("failed to render sitemap")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), body...))
}

// StaticEntries is the fixed page list the sitemap falls back to
func StaticEntries(baseURL string, now time.Time) []URLEntry {
	lastMod := now.Format("2006-01-02")
	return []URLEntry{
		{Loc: baseURL + "/", LastMod: lastMod, ChangeFreq: "daily", Priority: "1.0"},
		{Loc: baseURL + "/tools", LastMod: lastMod, ChangeFreq: "daily", Priority: "0.9"},
		{Loc: baseURL + "/courses", LastMod: lastMod, ChangeFreq: "weekly", Priority: "0.8"},
		{Loc: baseURL + "/news", LastMod: lastMod, ChangeFreq: "daily", Priority: "0.8"},
		{Loc: baseURL + "/learning-paths", LastMod: lastMod, ChangeFreq: "weekly", Priority: "0.7"},
		{Loc: baseURL + "/about", LastMod: lastMod, ChangeFreq: "monthly", Priority: "0.5"},
	}
}

func (sc *SitemapController) toolEntries(ctx context.Context, baseURL string) []URLEntry {
	cursor, err := sc.store.Tools().Find(ctx, bson.M{})
	if err != nil {
		log.WithError(err).Warn("sitemap: failed to enumerate tools")
		return nil
	}
	var tools []models.Tool
	if err := cursor.All(ctx, &tools); err != nil {
		log.WithError(err).Warn("sitemap: failed to decode tools")
		return nil
	}

	entries := make([]URLEntry, 0, len(tools))
	for _, tool := range tools {
		entries = append(entries, URLEntry{
			Loc:        baseURL + "/tools/" + tool.Slug,
			LastMod:    tool.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}
	return entries
}

func (sc *SitemapController) newsEntries(ctx context.Context, baseURL string) []URLEntry {
	cursor, err := sc.store.News().Find(ctx, bson.M{})
	if err != nil {
		log.WithError(err).Warn("sitemap: failed to enumerate news")
		return nil
	}
	var items []models.NewsItem
	if err := cursor.All(ctx, &items); err != nil {
		log.WithError(err).Warn("sitemap: failed to decode news")
		return nil
	}

	entries := make([]URLEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, URLEntry{
			Loc:        baseURL + "/news/" + item.Slug,
			LastMod:    item.PublishedAt.Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}
	return entries
}

func (sc *SitemapController) courseEntries(ctx context.Context, baseURL string) []URLEntry {
	cursor, err := sc.store.Courses().Find(ctx, bson.M{"isPublished": true})
	if err != nil {
		log.WithError(err).Warn("sitemap: failed to enumerate courses")
		return nil
	}
	var courses []models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		log.WithError(err).Warn("sitemap: failed to decode courses")
		return nil
	}

	entries := make([]URLEntry, 0, len(courses))
	for _, course := range courses {
		entries = append(entries, URLEntry{
			Loc:        baseURL + "/courses/" + course.Slug,
			LastMod:    course.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}
	return entries
}
