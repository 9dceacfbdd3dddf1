package handler

import (
	"net/http"
	"strings"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/viewmodel"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetOptions godoc
// @Summary      Coin picker options
// @Description  Returns one option per coin, the selected coin (first coin when none is given) and its USD price
// @Tags         chart
// @Produce      json
// @Param        selected  query  string  false  "Currently selected coin id"
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/options [get]
func (h *Handler) GetOptions(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-options")
	defer span.End()

	coins, status := h.market.Coins(ctx)
	if failed(c, domain.ResourceCoins, status) {
		return
	}
	options := viewmodel.ComboboxOptions(coins)
	selected := viewmodel.DefaultSelection(options, strings.TrimSpace(c.Query("selected")))
	c.JSON(http.StatusOK, withStatus(gin.H{
		"options":  options,
		"selected": selected,
		"price":    viewmodel.SelectedPrice(options, selected),
	}, status))
}

// GetChart godoc
// @Summary      Price chart series
// @Description  Returns daily USD prices for a coin, trimmed to the trailing window
// @Tags         chart
// @Produce      json
// @Param        id      path   string  true   "Coin id (e.g., bitcoin)"
// @Param        window  query  string  false  "Chart window (7D, 15D, 30D)"  default(7D)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/chart/{id} [get]
func (h *Handler) GetChart(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-chart")
	defer span.End()

	coinID := strings.ToLower(strings.TrimSpace(c.Param("id")))
	span.SetAttributes(attribute.String("coin_id", coinID))

	window, err := domain.ParseWindow(c.DefaultQuery("window", string(domain.Window7D)))
	if err != nil {
		respondError(c, http.StatusBadRequest, gin.H{
			"error":             err.Error(),
			"supported_windows": domain.SupportedWindows,
		})
		return
	}

	points, status := h.market.MarketChart(ctx, coinID)
	if failed(c, domain.ResourceChart, status) {
		return
	}
	c.JSON(http.StatusOK, withStatus(gin.H{
		"coin_id": coinID,
		"window":  window,
		"series":  viewmodel.ChartSeries(points, window),
	}, status))
}
