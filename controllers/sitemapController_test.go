package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// With no database the sitemap must still render the static page list.
func TestSitemapFallsBackToStaticPages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	sc := NewSitemapController(nil)
	r.GET("/sitemap.xml", sc.Sitemap)

	w := performRequest(r, http.MethodGet, "/sitemap.xml", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")

	body := w.Body.String()
	assert.Contains(t, body, "<urlset")
	assert.Contains(t, body, "https://daleel-ai.com/tools")
	assert.Contains(t, body, "https://daleel-ai.com/courses")
	assert.Contains(t, body, "<changefreq>daily</changefreq>")
}

func TestStaticEntries(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	entries := StaticEntries("https://example.com", now)

	assert.NotEmpty(t, entries)
	assert.Equal(t, "https://example.com/", entries[0].Loc)
	assert.Equal(t, "1.0", entries[0].Priority)
	for _, e := range entries {
		assert.Equal(t, "2026-08-01", e.LastMod)
	}
}
