package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestContactCollectors(t *testing.T) {
	m := NewMetrics()

	m.RecordSubmission(OutcomeSent)
	m.RecordSubmission("SENT")
	m.RecordSubmission(OutcomeFailed)
	m.RecordSubmission("")
	m.ObserveSend("resend", 120*time.Millisecond)
	m.IncImageOptimized(640, false)
	m.IncImageOptimized(640, true)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.contactSubmissions.WithLabelValues("sent")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.contactSubmissions.WithLabelValues("failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.contactSubmissions.WithLabelValues("unknown")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.imageOptimizationsRun.WithLabelValues("640", "miss")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.imageOptimizationsRun.WithLabelValues("640", "hit")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordSubmission(OutcomeSent)
		m.ObserveSend("log", time.Second)
		m.IncImageOptimized(64, true)
	})
}

func TestGinMiddlewareRecordsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/:locale", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fr", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/en", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/:locale", "200")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "portfolio_http_requests_total")
}

func TestGinMiddlewareBoundsMethodLabel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.GinMiddleware())

	for _, method := range []string{"FOOBAR", "X-SCAN-1", "patch"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, "/nowhere", nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("OTHER", "unmatched", "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("PATCH", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.httpRequestsTotal))
}
