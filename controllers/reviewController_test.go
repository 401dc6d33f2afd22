package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func reviewRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rc := NewReviewController(nil)
	r.POST("/api/submit-review", rc.SubmitReview)
	return r
}

func TestSubmitReviewMissingFields(t *testing.T) {
	r := reviewRouter()

	cases := []string{
		`{}`,
		`{"courseId": "665f1f77bcf86cd799439011"}`,
		`{"courseId": "665f1f77bcf86cd799439011", "review": {"rating": 5}}`,
		`{"courseId": "665f1f77bcf86cd799439011", "review": {"userId": "u1"}}`,
		`{"review": {"userId": "u1", "rating": 5}}`,
	}

	for _, body := range cases {
		w := performRequest(r, http.MethodPost, "/api/submit-review", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestSubmitReviewInvalidCourseID(t *testing.T) {
	r := reviewRouter()

	body := `{"courseId": "not-a-hex-id", "review": {"userId": "u1", "rating": 5}}`
	w := performRequest(r, http.MethodPost, "/api/submit-review", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid course ID")
}

func TestSubmitReviewRatingOutOfRange(t *testing.T) {
	r := reviewRouter()

	body := `{"courseId": "665f1f77bcf86cd799439011", "review": {"userId": "u1", "rating": 9}}`
	w := performRequest(r, http.MethodPost, "/api/submit-review", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitReviewStoreNotInitialized(t *testing.T) {
	r := reviewRouter()

	body := `{"courseId": "665f1f77bcf86cd799439011", "review": {"userId": "u1", "rating": 5}}`
	w := performRequest(r, http.MethodPost, "/api/submit-review", body)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"initialized":false`)
}

func TestFetchCourseMissingURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cc := NewCourseController(nil, nil)
	r.POST("/api/fetch-course", cc.FetchCourse)

	w := performRequest(r, http.MethodPost, "/api/fetch-course", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
