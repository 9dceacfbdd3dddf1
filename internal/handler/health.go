package handler

import (
	"net/http"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// snapshotter is implemented by service.MarketService. Health reads held
// state only and never triggers an upstream fetch.
type snapshotter interface {
	Snapshot() service.Snapshot
}

type budgeter interface {
	UpstreamBudget() int
}

type resourceHealth struct {
	HasData bool `json:"has_data"`
	IsError bool `json:"is_error"`
}

// Health godoc
// @Summary      Health check
// @Description  Returns the health status of the service and whether each market resource has loaded, and the remaining upstream rate limit
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	body := gin.H{"status": "healthy"}
	if s, ok := h.market.(snapshotter); ok {
		snap := s.Snapshot()
		body["resources"] = map[string]resourceHealth{
			domain.ResourceCoins:      {snap.CoinsStatus.HasData(), snap.CoinsStatus.IsError},
			domain.ResourceGlobal:     {snap.GlobalStatus.HasData(), snap.GlobalStatus.IsError},
			domain.ResourceExchanges:  {snap.ExchangesStatus.HasData(), snap.ExchangesStatus.IsError},
			domain.ResourceCategories: {snap.CategoriesStatus.HasData(), snap.CategoriesStatus.IsError},
		}
	}
	if b, ok := h.market.(budgeter); ok {
		if n := b.UpstreamBudget(); n >= 0 {
			body["upstream_calls_remaining"] = n
		}
	}
	c.JSON(http.StatusOK, body)
}
