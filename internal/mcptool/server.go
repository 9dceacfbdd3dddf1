// Package mcptool exposes the dashboard view-model as Model Context Protocol tools.
package mcptool

import (
	"context"
	"fmt"
	"strings"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/service"
	"coin-dashboard/internal/viewmodel"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	serverName    = "coin-dashboard"
	serverVersion = "1.0.0"
)

type MarketReader interface {
	Coins(ctx context.Context) ([]domain.CoinRecord, service.Status)
	Global(ctx context.Context) (domain.GlobalMarketSnapshot, service.Status)
	Exchanges(ctx context.Context) ([]domain.ExchangeRecord, service.Status)
	Categories(ctx context.Context) ([]domain.Category, service.Status)
	MarketChart(ctx context.Context, coinID string) ([]domain.PricePoint, service.Status)
}

type Tools struct {
	tracer trace.Tracer
	market MarketReader
}

func NewTools(tracer trace.Tracer, market MarketReader) *Tools {
	return &Tools{tracer: tracer, market: market}
}

// NewServer registers every dashboard tool on a fresh MCP server.
func NewServer(tools *Tools) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "top_cards",
		Description: "Headline price cards for the top coins by market cap",
	}, tools.TopCards)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "market_overview",
		Description: "Global market totals, bitcoin dominance and highlight categories",
	}, tools.Overview)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_coins",
		Description: "Case-insensitive coin name search, at most five hits",
	}, tools.Search)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "coin_chart",
		Description: "Daily USD prices of one coin for a 7D, 15D or 30D window",
	}, tools.Chart)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "coin_table",
		Description: "One page of the full coin table with optional filter and sort",
	}, tools.Table)

	return server
}

type TopCardsInput struct {
	Count int `json:"count,omitempty" jsonschema:"number of cards, default 3"`
}

type TopCardsOutput struct {
	Cards []viewmodel.PriceCard `json:"cards"`
}

func (t *Tools) TopCards(ctx context.Context, req *mcp.CallToolRequest, in TopCardsInput) (*mcp.CallToolResult, TopCardsOutput, error) {
	ctx, span := t.tracer.Start(ctx, "mcp.top_cards")
	defer span.End()

	coins, status := t.market.Coins(ctx)
	if err := requireData(domain.ResourceCoins, status); err != nil {
		return nil, TopCardsOutput{}, err
	}
	n := in.Count
	if n <= 0 {
		n = viewmodel.TopCardCount
	}
	return nil, TopCardsOutput{Cards: viewmodel.TopPriceCards(coins, n)}, nil
}

type OverviewInput struct{}

type OverviewOutput struct {
	Overview   viewmodel.GlobalOverview `json:"overview"`
	Highlights viewmodel.Highlights     `json:"highlights"`
	Summary    []viewmodel.SummaryRow   `json:"summary"`
}

func (t *Tools) Overview(ctx context.Context, req *mcp.CallToolRequest, in OverviewInput) (*mcp.CallToolResult, OverviewOutput, error) {
	ctx, span := t.tracer.Start(ctx, "mcp.market_overview")
	defer span.End()

	global, status := t.market.Global(ctx)
	if err := requireData(domain.ResourceGlobal, status); err != nil {
		return nil, OverviewOutput{}, err
	}
	coins, _ := t.market.Coins(ctx)
	exchanges, _ := t.market.Exchanges(ctx)
	categories, _ := t.market.Categories(ctx)

	return nil, OverviewOutput{
		Overview:   viewmodel.BuildOverview(global),
		Highlights: viewmodel.BuildHighlights(categories, exchanges),
		Summary:    viewmodel.MarketSummary(coins, viewmodel.SummaryRowCount),
	}, nil
}

type SearchInput struct {
	Query string `json:"query" jsonschema:"text to match against coin names"`
}

type SearchOutput struct {
	Hits      []viewmodel.SearchHit `json:"hits"`
	More      int                   `json:"more"`
	MoreLabel string                `json:"more_label,omitempty"`
}

func (t *Tools) Search(ctx context.Context, req *mcp.CallToolRequest, in SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	ctx, span := t.tracer.Start(ctx, "mcp.search_coins")
	defer span.End()

	coins, status := t.market.Coins(ctx)
	if err := requireData(domain.ResourceCoins, status); err != nil {
		return nil, SearchOutput{}, err
	}
	res := viewmodel.LiveSearch(coins, in.Query, viewmodel.LiveSearchLimit)
	return nil, SearchOutput{Hits: res.Hits, More: res.More, MoreLabel: res.MoreLabel()}, nil
}

type ChartInput struct {
	CoinID string `json:"coin_id" jsonschema:"coin id such as bitcoin"`
	Window string `json:"window,omitempty" jsonschema:"7D, 15D or 30D, default 7D"`
}

type ChartOutput struct {
	CoinID string                 `json:"coin_id"`
	Window domain.Window          `json:"window"`
	Points []viewmodel.ChartPoint `json:"points"`
	Stale  bool                   `json:"stale"`
}

func (t *Tools) Chart(ctx context.Context, req *mcp.CallToolRequest, in ChartInput) (*mcp.CallToolResult, ChartOutput, error) {
	ctx, span := t.tracer.Start(ctx, "mcp.coin_chart")
	defer span.End()

	id := strings.ToLower(strings.TrimSpace(in.CoinID))
	if id == "" {
		return nil, ChartOutput{}, fmt.Errorf("coin_id is required")
	}
	window := domain.Window7D
	if in.Window != "" {
		w, err := domain.ParseWindow(in.Window)
		if err != nil {
			return nil, ChartOutput{}, err
		}
		window = w
	}
	span.SetAttributes(attribute.String("coin_id", id), attribute.String("window", string(window)))

	points, status := t.market.MarketChart(ctx, id)
	if err := requireData(domain.ResourceChart, status); err != nil {
		return nil, ChartOutput{}, err
	}
	return nil, ChartOutput{
		CoinID: id,
		Window: window,
		Points: viewmodel.ChartSeries(points, window),
		Stale:  status.IsError,
	}, nil
}

type TableInput struct {
	Filter    string `json:"filter,omitempty" jsonschema:"case-insensitive name filter"`
	Sort      string `json:"sort,omitempty" jsonschema:"column to sort by"`
	Direction string `json:"direction,omitempty" jsonschema:"asc or desc"`
	Page      int    `json:"page,omitempty" jsonschema:"zero-based page index"`
	PageSize  int    `json:"page_size,omitempty" jsonschema:"rows per page, default 8"`
}

func (t *Tools) Table(ctx context.Context, req *mcp.CallToolRequest, in TableInput) (*mcp.CallToolResult, viewmodel.Page, error) {
	ctx, span := t.tracer.Start(ctx, "mcp.coin_table")
	defer span.End()

	q := viewmodel.TableQuery{Filter: in.Filter, PageIndex: in.Page, PageSize: in.PageSize}
	if q.PageSize <= 0 {
		q.PageSize = viewmodel.DefaultPageSize
	}
	if in.Sort != "" {
		if !viewmodel.IsSortableColumn(in.Sort) {
			return nil, viewmodel.Page{}, fmt.Errorf("unknown sort column %q", in.Sort)
		}
		dir, err := viewmodel.ParseSortDirection(in.Direction)
		if err != nil {
			return nil, viewmodel.Page{}, err
		}
		if dir == "" {
			dir = viewmodel.SortAsc
		}
		q.Sort = viewmodel.SortSpec{Column: in.Sort, Direction: dir}
	}

	coins, status := t.market.Coins(ctx)
	if err := requireData(domain.ResourceCoins, status); err != nil {
		return nil, viewmodel.Page{}, err
	}
	return nil, viewmodel.Table(viewmodel.TableRows(coins), q), nil
}

func requireData(resource string, status service.Status) error {
	if status.HasData() {
		return nil
	}
	if status.Err != nil {
		return fmt.Errorf("failed to load %s: %w", resource, status.Err)
	}
	return fmt.Errorf("no %s data available", resource)
}
