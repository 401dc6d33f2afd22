package scraper

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coursePage = `<!DOCTYPE html>
<html>
<head>
<title>Fallback Title</title>
<meta property="og:title" content="Machine Learning Basics" />
<meta property="og:description" content="An introductory ML course" />
<meta property="og:image" content="https://example.com/thumb.jpg" />
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Course",
  "datePublished": "2024-03-01",
  "aggregateRating": {"ratingValue": "4.5", "reviewCount": "120"},
  "interactionStatistic": [
    {"@type": "InteractionCounter", "interactionType": "https://schema.org/RegisterAction", "userInteractionCount": 9876}
  ]
}
</script>
</head>
<body><p>Learn the basics.</p></body>
</html>`

func TestExtractCoursePage(t *testing.T) {
	meta := Extract(coursePage)

	assert.Equal(t, "Machine Learning Basics", meta.Title)
	assert.Equal(t, "An introductory ML course", meta.Description)
	assert.Equal(t, "https://example.com/thumb.jpg", meta.Thumbnail)
	assert.Equal(t, 4.5, meta.Rating)
	assert.Equal(t, int64(120), meta.ReviewsCount)
	assert.Equal(t, "2024-03-01", meta.DatePublished)
	assert.Equal(t, int64(9876), meta.StudentsCount)
}

func TestExtractTitleFallback(t *testing.T) {
	meta := Extract(`<html><head><title>  Plain Title  </title></head><body></body></html>`)

	assert.Equal(t, "Plain Title", meta.Title)
	assert.Zero(t, meta.Rating)
}

func TestExtractLaterItemWins(t *testing.T) {
	doc := `<html><head>
<script type="application/ld+json">
[
  {"@type": "Course", "aggregateRating": {"ratingValue": 4.0, "reviewCount": 10}},
  {"@type": "Product", "aggregateRating": {"ratingValue": 4.8, "reviewCount": 55}}
]
</script>
</head><body></body></html>`

	meta := Extract(doc)

	assert.Equal(t, 4.8, meta.Rating)
	assert.Equal(t, int64(55), meta.ReviewsCount)
}

func TestExtractLaterItemKeepsEarlierFields(t *testing.T) {
	doc := `<html><head>
<script type="application/ld+json">
{"@type": "Course", "datePublished": "2023-07-15", "aggregateRating": {"ratingValue": 3.9, "reviewCount": 12}}
</script>
<script type="application/ld+json">
{"@type": "Product", "aggregateRating": {"ratingValue": 4.2, "reviewCount": 40}}
</script>
</head><body></body></html>`

	meta := Extract(doc)

	// the product item has no datePublished, so the course's survives
	assert.Equal(t, "2023-07-15", meta.DatePublished)
	assert.Equal(t, 4.2, meta.Rating)
	assert.Equal(t, int64(40), meta.ReviewsCount)
}

func TestExtractSkipsMalformedBlocks(t *testing.T) {
	doc := `<html><head>
<script type="application/ld+json">{not valid json</script>
<script type="application/ld+json">{"@type": "Course", "aggregateRating": {"ratingValue": "4.1", "reviewCount": "7"}}</script>
</head><body></body></html>`

	meta := Extract(doc)

	assert.Equal(t, 4.1, meta.Rating)
	assert.Equal(t, int64(7), meta.ReviewsCount)
}

func TestExtractIgnoresUnrelatedTypes(t *testing.T) {
	doc := `<html><head>
<script type="application/ld+json">{"@type": "Organization", "aggregateRating": {"ratingValue": "1.0"}}</script>
</head><body></body></html>`

	meta := Extract(doc)

	assert.Zero(t, meta.Rating)
}

func TestExtractStudentsFromBodyText(t *testing.T) {
	doc := `<html><head></head><body><div>Join 12,345 students enrolled worldwide</div></body></html>`

	meta := Extract(doc)

	assert.Equal(t, int64(12345), meta.StudentsCount)
}

func TestExtractUdemyRatingFallback(t *testing.T) {
	doc := `<html><head><meta property="udemy_com:rating" content="4.7" /></head><body></body></html>`

	meta := Extract(doc)

	assert.Equal(t, 4.7, meta.Rating)
}

func TestStudentsFromText(t *testing.T) {
	cases := []struct {
		text string
		want int64
	}{
		{"12,345 students enrolled", 12345},
		{"1.2k learners", 1200},
		{"3m students", 3000000},
		{"500 enrolled", 500},
		{"25K+ Students", 25000},
		{"no enrollment info here", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, studentsFromText(tc.text), "text: %s", tc.text)
	}
}

func TestFetchCourseMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		w.Write([]byte(coursePage))
	}))
	defer server.Close()

	meta, err := FetchCourseMetadata(server.URL)

	require.NoError(t, err)
	assert.Equal(t, "Machine Learning Basics", meta.Title)
	assert.Equal(t, 4.5, meta.Rating)
}

func TestFetchCourseMetadataForbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := FetchCourseMetadata(server.URL)

	assert.Equal(t, ErrForbidden, err)
}

func TestFetchCourseMetadataServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := FetchCourseMetadata(server.URL)

	require.Error(t, err)
	assert.NotEqual(t, ErrForbidden, err)
}
