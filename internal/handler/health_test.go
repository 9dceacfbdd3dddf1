package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coin-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	tracer := trace.NewNoopTracerProvider().Tracer("test")
	h := New(tracer, &stubMarket{}, 0)
	r.GET("/health", h.Health)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if body != "{\"status\":\"healthy\"}\n" && body != "{\"status\":\"healthy\"}" {
		t.Errorf("unexpected body: %s", body)
	}
}

type snapshotMarket struct {
	stubMarket
	snap service.Snapshot
}

func (s *snapshotMarket) Snapshot() service.Snapshot { return s.snap }

func (s *snapshotMarket) UpstreamBudget() int { return 7 }

func TestHealthReportsResources(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	market := &snapshotMarket{snap: service.Snapshot{
		CoinsStatus:  service.Status{UpdatedAt: time.Now()},
		GlobalStatus: service.Status{IsError: true},
	}}
	h := New(trace.NewNoopTracerProvider().Tracer("test"), market, 0)
	r.GET("/health", h.Health)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	var body struct {
		Status    string                    `json:"status"`
		Resources map[string]resourceHealth `json:"resources"`
		Remaining *int                      `json:"upstream_calls_remaining"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "healthy" {
		t.Fatalf("unexpected status %q", body.Status)
	}
	if !body.Resources["coins"].HasData || body.Resources["coins"].IsError {
		t.Fatalf("unexpected coins health: %+v", body.Resources["coins"])
	}
	if body.Resources["global"].HasData || !body.Resources["global"].IsError {
		t.Fatalf("unexpected global health: %+v", body.Resources["global"])
	}
	if body.Remaining == nil || *body.Remaining != 7 {
		t.Fatalf("expected upstream budget 7, got %v", body.Remaining)
	}
}
