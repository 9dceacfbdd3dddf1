package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/viewmodel"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

// GetCoins godoc
// @Summary      Coin table page
// @Description  Filters coins by name, sorts by a column and returns one page
// @Tags         coins
// @Produce      json
// @Param        filter  query  string  false  "Case-insensitive name filter"
// @Param        sort    query  string  false  "Sort column (name, price, volume, marketRank, marketCap, changePercentage, highIn24, lowIn24)"
// @Param        dir     query  string  false  "Sort direction (asc, desc)"
// @Param        page    query  int     false  "Zero-based page index"  default(0)
// @Param        size    query  int     false  "Page size (default 8, max 100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/coins [get]
func (h *Handler) GetCoins(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-coins")
	defer span.End()

	q := viewmodel.TableQuery{
		Filter:   c.Query("filter"),
		PageSize: h.pageSize,
	}

	if col := strings.TrimSpace(c.Query("sort")); col != "" {
		if !viewmodel.IsSortableColumn(col) {
			respondError(c, http.StatusBadRequest, gin.H{
				"error":            "unsupported sort column: " + col,
				"sortable_columns": viewmodel.SortableColumns,
			})
			return
		}
		dir, err := viewmodel.ParseSortDirection(c.DefaultQuery("dir", string(viewmodel.SortAsc)))
		if err != nil {
			respondError(c, http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		q.Sort = viewmodel.SortSpec{Column: col, Direction: dir}
	}

	if p := c.Query("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			respondError(c, http.StatusBadRequest, gin.H{"error": "page must be a non-negative integer"})
			return
		}
		q.PageIndex = n
	}
	if s := c.Query("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxPageSize {
			respondError(c, http.StatusBadRequest, gin.H{"error": fmt.Sprintf("size must be between 1 and %d", maxPageSize)})
			return
		}
		q.PageSize = n
	}

	coins, status := h.market.Coins(ctx)
	if failed(c, domain.ResourceCoins, status) {
		return
	}
	c.JSON(http.StatusOK, withStatus(gin.H{
		"page": viewmodel.Table(viewmodel.TableRows(coins), q),
		"sort": q.Sort,
	}, status))
}

// ExportCoins godoc
// @Summary      Export coins as CSV
// @Description  Downloads every loaded coin row, unfiltered, as crypto_data.csv
// @Tags         coins
// @Produce      text/csv
// @Success      200  {string}  string
// @Failure      503  {object}  map[string]string
// @Router       /api/coins/export [get]
func (h *Handler) ExportCoins(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.export-coins")
	defer span.End()

	coins, status := h.market.Coins(ctx)
	if failed(c, domain.ResourceCoins, status) {
		return
	}
	out, err := viewmodel.ExportCSV(viewmodel.TableRows(coins))
	if err != nil {
		respondError(c, http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+viewmodel.CSVFileName+`"`)
	c.Data(http.StatusOK, viewmodel.CSVContentType, []byte(out))
}

// SearchCoins godoc
// @Summary      Live coin search
// @Description  Returns the first 5 coins whose name matches and how many more matched
// @Tags         coins
// @Produce      json
// @Param        q  query  string  false  "Search text"
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/search [get]
func (h *Handler) SearchCoins(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.search-coins")
	defer span.End()

	coins, status := h.market.Coins(ctx)
	if failed(c, domain.ResourceCoins, status) {
		return
	}
	result := viewmodel.LiveSearch(coins, c.Query("q"), viewmodel.LiveSearchLimit)
	c.JSON(http.StatusOK, withStatus(gin.H{
		"hits":       result.Hits,
		"more":       result.More,
		"more_label": result.MoreLabel(),
	}, status))
}
