package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/fleveque/shoe-card-service/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestObserveVariant(t *testing.T) {
	m := New()
	m.ObserveVariant(model.VariantOnSale)
	m.ObserveVariant(model.VariantOnSale)
	m.ObserveVariant(model.VariantDefault)

	if got := testutil.ToFloat64(m.Resolutions.WithLabelValues("on-sale")); got != 2 {
		t.Errorf("expected 2 on-sale resolutions, got %v", got)
	}
	if got := testutil.ToFloat64(m.Resolutions.WithLabelValues("default")); got != 1 {
		t.Errorf("expected 1 default resolution, got %v", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/metrics", m.Handler())

	req := httptest.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/ping", "200")); got != 1 {
		t.Errorf("expected 1 recorded request, got %v", got)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics handler, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "shoecard_http_requests_total") {
		t.Error("expected exposition to contain shoecard_http_requests_total")
	}
}
