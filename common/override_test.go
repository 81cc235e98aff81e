package common

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MethodOverride(router))

	router.POST("/things", func(c *gin.Context) { c.String(http.StatusOK, "posted") })
	router.PUT("/things", func(c *gin.Context) { c.String(http.StatusOK, "put") })
	router.DELETE("/things", func(c *gin.Context) { c.String(http.StatusOK, "deleted") })
	return router
}

func TestMethodOverride_FormField(t *testing.T) {
	router := setupRouter()

	form := url.Values{"_method": {"PUT"}}
	req, _ := http.NewRequest("POST", "/things", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "put", w.Body.String())
}

func TestMethodOverride_QueryParam(t *testing.T) {
	router := setupRouter()

	req, _ := http.NewRequest("POST", "/things?_method=DELETE", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deleted", w.Body.String())
}

func TestMethodOverride_PlainPostUntouched(t *testing.T) {
	router := setupRouter()

	req, _ := http.NewRequest("POST", "/things", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "posted", w.Body.String())
}

func TestMethodOverride_OnlyPutAndDelete(t *testing.T) {
	router := setupRouter()

	req, _ := http.NewRequest("POST", "/things?_method=PATCH", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// unsupported overrides fall through to the POST handler
	assert.Equal(t, "posted", w.Body.String())
}

func TestMethodOverride_GetUntouched(t *testing.T) {
	router := setupRouter()
	router.GET("/things", func(c *gin.Context) { c.String(http.StatusOK, "got") })

	req, _ := http.NewRequest("GET", "/things?_method=DELETE", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "got", w.Body.String())
}
