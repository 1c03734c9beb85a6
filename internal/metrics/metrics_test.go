package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/gravadigital/community-api/internal/domain/attendance"
)

func TestObserverCounters(t *testing.T) {
	m := New()

	m.ToggleSettled(attendance.ActionUpsert, nil)
	m.ToggleSettled(attendance.ActionUpsert, errors.New("boom"))
	m.ToggleSettled(attendance.ActionDelete, nil)
	m.ReadDegraded("going_count")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.toggles.WithLabelValues("upsert", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.toggles.WithLabelValues("upsert", "rolled_back")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.toggles.WithLabelValues("delete", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.readsDegraded.WithLabelValues("going_count")))
}

func TestProjectionSize(t *testing.T) {
	m := New()
	m.ProjectionSize(7)
	assert.Equal(t, 7.0, testutil.ToFloat64(m.birthdays))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/events/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/api/events/1", "/api/events/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/events/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "community_http_requests_total")
}
