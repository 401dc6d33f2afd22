package scraper

import (
	"io"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/anaskhan96/soup"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// ErrForbidden marks an upstream page that refused the request outright.
// It is the one fetch failure passed through as a hard HTTP status.
var ErrForbidden = errors.New("upstream returned 403 Forbidden")

const fetchTimeout = 8 * time.Second

// CourseMetadata is the extractor's output. A degraded result carries zeroed
// fields plus Error.
type CourseMetadata struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Thumbnail     string  `json:"thumbnail"`
	Rating        float64 `json:"rating"`
	ReviewsCount  int64   `json:"reviewsCount"`
	DatePublished string  `json:"datePublished"`
	StudentsCount int64   `json:"studentsCount"`
	Error         string  `json:"error,omitempty"`
}

// FetchCourseMetadata downloads a course page and extracts its metadata
func FetchCourseMetadata(url string) (CourseMetadata, error) {
	doc, err := fetchPage(url)
	if err != nil {
		return CourseMetadata{}, err
	}
	return Extract(doc), nil
}

// fetchPage retrieves the raw page with browser-like headers. Course hosts
// commonly block default Go user agents.
func fetchPage(url string) (string, error) {
	client := &http.Client{Timeout: fetchTimeout}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ar,en;q=0.9")

	res, err := client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to fetch page")
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusForbidden {
		return "", ErrForbidden
	}
	if res.StatusCode >= 400 {
		return "", errors.Errorf("upstream returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read page body")
	}
	return string(body), nil
}

// Extract pulls course metadata out of a page: open-graph/meta tags first,
// then JSON-LD structured data folded through an ordered merge, then the
// body-text and vendor-specific fallbacks.
func Extract(doc string) CourseMetadata {
	root := soup.HTMLParse(doc)
	meta := CourseMetadata{}

	meta.Title = firstNonEmpty(metaContent(root, "og:title"), titleText(root))
	meta.Description = firstNonEmpty(metaContent(root, "og:description"), metaByName(root, "description"))
	meta.Thumbnail = metaContent(root, "og:image")

	for _, item := range structuredItems(root) {
		meta = item.mergeInto(meta)
	}

	if meta.StudentsCount == 0 {
		meta.StudentsCount = studentsFromText(bodyText(root))
	}

	if meta.Rating == 0 {
		if v, err := strconv.ParseFloat(metaContent(root, "udemy_com:rating"), 64); err == nil {
			meta.Rating = v
		}
	}

	return meta
}

// structuredItem is one Course- or Product-shaped JSON-LD entry. Keeping the
// shape explicit makes the merge precedence a testable function instead of
// an implicit iteration side effect.
type itemKind string

const (
	courseShaped  itemKind = "Course"
	productShaped itemKind = "Product"
)

type structuredItem struct {
	Kind          itemKind
	Rating        float64
	ReviewsCount  int64
	DatePublished string
	StudentsCount int64
}

// mergeInto applies a later item over the accumulated metadata: every field
// the item carries overwrites, empty fields leave the earlier value alone.
func (it structuredItem) mergeInto(meta CourseMetadata) CourseMetadata {
	if it.Rating > 0 {
		meta.Rating = it.Rating
	}
	if it.ReviewsCount > 0 {
		meta.ReviewsCount = it.ReviewsCount
	}
	if it.DatePublished != "" {
		meta.DatePublished = it.DatePublished
	}
	if it.StudentsCount > 0 {
		meta.StudentsCount = it.StudentsCount
	}
	return meta
}

// structuredItems parses every ld+json script block into the tagged item
// list, in document order. Malformed blocks are logged and skipped.
func structuredItems(root soup.Root) []structuredItem {
	var items []structuredItem

	for _, script := range root.FindAll("script", "type", "application/ld+json") {
		raw := strings.TrimSpace(script.FullText())
		if raw == "" {
			continue
		}
		if !gjson.Valid(raw) {
			log.WithField("block", truncate(raw, 80)).Debug("skipping unparseable ld+json block")
			continue
		}
		parsed := gjson.Parse(raw)
		if parsed.IsArray() {
			for _, entry := range parsed.Array() {
				if item, ok := parseStructuredItem(entry); ok {
					items = append(items, item)
				}
			}
		} else if item, ok := parseStructuredItem(parsed); ok {
			items = append(items, item)
		}
	}

	return items
}

func parseStructuredItem(entry gjson.Result) (structuredItem, bool) {
	kind, ok := entryKind(entry)
	if !ok {
		return structuredItem{}, false
	}

	item := structuredItem{
		Kind:          kind,
		Rating:        entry.Get("aggregateRating.ratingValue").Float(),
		ReviewsCount:  entry.Get("aggregateRating.reviewCount").Int(),
		DatePublished: entry.Get("datePublished").String(),
	}

	entry.Get("interactionStatistic").ForEach(func(_, stat gjson.Result) bool {
		if strings.Contains(stat.Get("interactionType").String(), "Register") {
			item.StudentsCount = stat.Get("userInteractionCount").Int()
		}
		return true
	})

	return item, true
}

// entryKind maps @type (string or array) to the tagged kind
func entryKind(entry gjson.Result) (itemKind, bool) {
	// the backslash keeps gjson from reading @type as a path modifier
	t := entry.Get(`\@type`)
	if t.IsArray() {
		for _, v := range t.Array() {
			if k, ok := namedKind(v.String()); ok {
				return k, true
			}
		}
		return "", false
	}
	return namedKind(t.String())
}

func namedKind(name string) (itemKind, bool) {
	switch name {
	case string(courseShaped):
		return courseShaped, true
	case string(productShaped):
		return productShaped, true
	}
	return "", false
}

// studentsPatterns are tried in order; the first match wins. Numbers may
// carry thousands separators or a k/m magnitude suffix.
var studentsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([\d][\d,.]*)\s*([km])?\+?\s*students`),
	regexp.MustCompile(`(?i)([\d][\d,.]*)\s*([km])?\+?\s*learners`),
	regexp.MustCompile(`(?i)([\d][\d,.]*)\s*([km])?\+?\s*enrolled`),
}

// studentsFromText scans visible page text for an enrollment figure
func studentsFromText(text string) int64 {
	for _, pattern := range studentsPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		n, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
		if err != nil {
			continue
		}
		switch strings.ToLower(match[2]) {
		case "k":
			n *= 1_000
		case "m":
			n *= 1_000_000
		}
		// 1.2k is 1199.99... in float, round before truncating
		return int64(math.Round(n))
	}
	return 0
}

func metaContent(root soup.Root, property string) string {
	tag := root.Find("meta", "property", property)
	if tag.Error != nil {
		return ""
	}
	return tag.Attrs()["content"]
}

func metaByName(root soup.Root, name string) string {
	tag := root.Find("meta", "name", name)
	if tag.Error != nil {
		return ""
	}
	return tag.Attrs()["content"]
}

func titleText(root soup.Root) string {
	tag := root.Find("title")
	if tag.Error != nil {
		return ""
	}
	return strings.TrimSpace(tag.Text())
}

func bodyText(root soup.Root) string {
	body := root.Find("body")
	if body.Error != nil {
		return ""
	}
	return body.FullText()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
