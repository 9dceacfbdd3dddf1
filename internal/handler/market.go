package handler

import (
	"net/http"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/viewmodel"

	"github.com/gin-gonic/gin"
)

// GetCards godoc
// @Summary      Headline price cards
// @Description  Returns the top 3 coins by market cap as price cards
// @Tags         market
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/cards [get]
func (h *Handler) GetCards(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-cards")
	defer span.End()

	coins, status := h.market.Coins(ctx)
	if failed(c, domain.ResourceCoins, status) {
		return
	}
	c.JSON(http.StatusOK, withStatus(gin.H{
		"cards": viewmodel.TopPriceCards(coins, viewmodel.TopCardCount),
	}, status))
}

// GetSummary godoc
// @Summary      Market summary table
// @Description  Returns the top 5 coins as compact table rows
// @Tags         market
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-summary")
	defer span.End()

	coins, status := h.market.Coins(ctx)
	if failed(c, domain.ResourceCoins, status) {
		return
	}
	c.JSON(http.StatusOK, withStatus(gin.H{
		"rows": viewmodel.MarketSummary(coins, viewmodel.SummaryRowCount),
	}, status))
}

// GetOverview godoc
// @Summary      Global market overview
// @Description  Returns total market cap and volume, bitcoin dominance and 24h change
// @Tags         market
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/overview [get]
func (h *Handler) GetOverview(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-overview")
	defer span.End()

	global, status := h.market.Global(ctx)
	if failed(c, domain.ResourceGlobal, status) {
		return
	}
	overview := viewmodel.BuildOverview(global)
	c.JSON(http.StatusOK, withStatus(gin.H{
		"overview":         overview,
		"total_market_cap": viewmodel.FormatCompact(overview.TotalMarketCap),
		"total_volume":     viewmodel.FormatCompact(overview.TotalVolume),
	}, status))
}

// GetHighlights godoc
// @Summary      Category and exchange highlights
// @Description  Returns the first 3 categories and the summed 24h exchange volume in BTC
// @Tags         market
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/highlights [get]
func (h *Handler) GetHighlights(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-highlights")
	defer span.End()

	categories, catStatus := h.market.Categories(ctx)
	exchanges, exStatus := h.market.Exchanges(ctx)
	if failed(c, domain.ResourceCategories, catStatus) || failed(c, domain.ResourceExchanges, exStatus) {
		return
	}

	status := catStatus
	if exStatus.IsError {
		status = exStatus
	}
	c.JSON(http.StatusOK, withStatus(gin.H{
		"highlights": viewmodel.BuildHighlights(categories, exchanges),
	}, status))
}
