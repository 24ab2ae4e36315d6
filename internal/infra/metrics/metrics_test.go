package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveEnsure(t *testing.T) {
	m := New()

	m.ObserveEnsure(3, 1, 0)
	m.ObserveEnsure(0, 3, 1)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.instancesCreated))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.instancesSkipped))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ensureConflicts))
}

func TestObserveObligationChange(t *testing.T) {
	m := New()

	m.ObserveObligationChange("pay")
	m.ObserveObligationChange("pay")
	m.ObserveObligationChange("delete")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.obligationChanges.WithLabelValues("pay")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.obligationChanges.WithLabelValues("delete")))
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.POST("/fixed/:id/pay", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"1", "2", "3"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/fixed/"+id+"/pay", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.requestCount.WithLabelValues("200", http.MethodPost, "/fixed/:id/pay")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "ledger_requests_total"))
}
