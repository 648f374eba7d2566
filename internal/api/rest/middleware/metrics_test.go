//go:build unit
// +build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_CountsRequestsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/things/:id", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/things/:id", "200"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/things/42", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/things/:id", "200"))
	assert.Equal(t, before+1, after, "counter should be labelled with the route pattern")
}

func TestMetrics_LabelsUnmatchedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/no/such/route", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	assert.Equal(t, before+1, after)
}
