package handler

import (
	"context"
	"net/http"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/service"
	"coin-dashboard/internal/viewmodel"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// MarketReader is the read side of service.MarketService.
type MarketReader interface {
	Coins(ctx context.Context) ([]domain.CoinRecord, service.Status)
	Global(ctx context.Context) (domain.GlobalMarketSnapshot, service.Status)
	Exchanges(ctx context.Context) ([]domain.ExchangeRecord, service.Status)
	Categories(ctx context.Context) ([]domain.Category, service.Status)
	MarketChart(ctx context.Context, coinID string) ([]domain.PricePoint, service.Status)
}

type Handler struct {
	tracer   trace.Tracer
	market   MarketReader
	pageSize int
}

func New(tracer trace.Tracer, market MarketReader, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = viewmodel.DefaultPageSize
	}
	return &Handler{
		tracer:   tracer,
		market:   market,
		pageSize: pageSize,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/cards", h.GetCards)
	api.GET("/summary", h.GetSummary)
	api.GET("/overview", h.GetOverview)
	api.GET("/highlights", h.GetHighlights)
	api.GET("/options", h.GetOptions)
	api.GET("/chart/:id", h.GetChart)
	api.GET("/coins", h.GetCoins)
	api.GET("/coins/export", h.ExportCoins)
	api.GET("/search", h.SearchCoins)
}

// failed answers 503 when a resource has never loaded. A resource that
// failed after an earlier success is still served, flagged with is_error.
func failed(c *gin.Context, resource string, status service.Status) bool {
	if status.IsError && !status.HasData() {
		respondError(c, http.StatusServiceUnavailable, gin.H{"error": "failed to load " + resource})
		return true
	}
	return false
}

// respondError writes an error body that clients must not cache.
func respondError(c *gin.Context, code int, body gin.H) {
	c.Header("Cache-Control", "no-store")
	c.JSON(code, body)
}

func withStatus(body gin.H, status service.Status) gin.H {
	body["is_error"] = status.IsError
	body["updated_at"] = status.UpdatedAt
	return body
}
