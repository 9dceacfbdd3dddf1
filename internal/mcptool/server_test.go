package mcptool

import (
	"context"
	"errors"
	"testing"
	"time"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/service"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace"
)

var loaded = service.Status{UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

type stubMarket struct {
	coins       []domain.CoinRecord
	coinsStatus service.Status
}

func (s *stubMarket) Coins(ctx context.Context) ([]domain.CoinRecord, service.Status) {
	return s.coins, s.coinsStatus
}

func (s *stubMarket) Global(ctx context.Context) (domain.GlobalMarketSnapshot, service.Status) {
	return domain.GlobalMarketSnapshot{
		ActiveCryptocurrencies: 100,
		TotalMarketCap:         map[string]float64{"usd": 1000, "eur": 900},
		MarketCapPercentage:    map[string]float64{"btc": 50.126},
	}, loaded
}

func (s *stubMarket) Exchanges(ctx context.Context) ([]domain.ExchangeRecord, service.Status) {
	return []domain.ExchangeRecord{{TradeVolume24hBTC: 10}, {TradeVolume24hBTC: 5}}, loaded
}

func (s *stubMarket) Categories(ctx context.Context) ([]domain.Category, service.Status) {
	return []domain.Category{{Name: "Layer 1"}, {Name: "DeFi"}, {Name: "Meme"}, {Name: "Gaming"}}, loaded
}

func (s *stubMarket) MarketChart(ctx context.Context, coinID string) ([]domain.PricePoint, service.Status) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]domain.PricePoint, 30)
	for i := range points {
		points[i] = domain.PricePoint{Timestamp: start.AddDate(0, 0, i), Price: float64(i) + 0.126}
	}
	return points, loaded
}

func newTools(market *stubMarket) *Tools {
	return NewTools(trace.NewNoopTracerProvider().Tracer("test"), market)
}

func sampleMarket() *stubMarket {
	return &stubMarket{
		coins: []domain.CoinRecord{
			{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: 50000, MarketCapRank: 1},
			{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: 3000, MarketCapRank: 2},
			{ID: "tether", Symbol: "usdt", Name: "Tether", CurrentPrice: 1, MarketCapRank: 3},
			{ID: "solana", Symbol: "sol", Name: "Solana", CurrentPrice: 150, MarketCapRank: 4},
		},
		coinsStatus: loaded,
	}
}

func TestTopCards(t *testing.T) {
	_, out, err := newTools(sampleMarket()).TopCards(context.Background(), nil, TopCardsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(out.Cards))
	}
	if out.Cards[0].PriceText != "$50,000.00" || out.Cards[0].Icon != "₿" {
		t.Fatalf("unexpected first card: %+v", out.Cards[0])
	}
}

func TestTopCardsWithoutData(t *testing.T) {
	market := &stubMarket{coinsStatus: service.Status{IsError: true, Err: errors.New("429")}}
	_, _, err := newTools(market).TopCards(context.Background(), nil, TopCardsInput{})
	if err == nil {
		t.Fatal("expected error when coins never loaded")
	}
}

func TestOverview(t *testing.T) {
	_, out, err := newTools(sampleMarket()).Overview(context.Background(), nil, OverviewInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Overview.TotalMarketCap != 1900 {
		t.Fatalf("expected summed market cap 1900, got %v", out.Overview.TotalMarketCap)
	}
	if out.Overview.BitcoinDominance != 50.13 {
		t.Fatalf("expected dominance 50.13, got %v", out.Overview.BitcoinDominance)
	}
	if len(out.Highlights.Categories) != 3 || out.Highlights.MarketPairs != 15 {
		t.Fatalf("unexpected highlights: %+v", out.Highlights)
	}
	if len(out.Summary) != 4 {
		t.Fatalf("expected 4 summary rows, got %d", len(out.Summary))
	}
}

func TestSearch(t *testing.T) {
	_, out, err := newTools(sampleMarket()).Search(context.Background(), nil, SearchInput{Query: "ETH"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Hits) != 2 || out.Hits[0].ID != "ethereum" || out.Hits[1].ID != "tether" {
		t.Fatalf("unexpected hits: %+v", out.Hits)
	}
	if out.More != 0 || out.MoreLabel != "" {
		t.Fatalf("unexpected overflow: %+v", out)
	}
}

func TestChart(t *testing.T) {
	tools := newTools(sampleMarket())

	_, out, err := tools.Chart(context.Background(), nil, ChartInput{CoinID: "Bitcoin", Window: "15d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.CoinID != "bitcoin" || out.Window != domain.Window15D || len(out.Points) != 15 {
		t.Fatalf("unexpected chart: %s %s %d", out.CoinID, out.Window, len(out.Points))
	}
	if out.Points[14].Price != 29.13 || out.Points[14].Date != "2024-01-30" {
		t.Fatalf("unexpected last point: %+v", out.Points[14])
	}

	if _, _, err := tools.Chart(context.Background(), nil, ChartInput{CoinID: "bitcoin", Window: "1Y"}); err == nil {
		t.Fatal("expected error for unsupported window")
	}
	if _, _, err := tools.Chart(context.Background(), nil, ChartInput{}); err == nil {
		t.Fatal("expected error for missing coin id")
	}
}

func TestTable(t *testing.T) {
	tools := newTools(sampleMarket())

	_, page, err := tools.Table(context.Background(), nil, TableInput{Sort: "price", Direction: "desc", PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.PageCount != 2 || page.Rows[0].Name != "Bitcoin" || page.Rows[1].Name != "Ethereum" {
		t.Fatalf("unexpected page: %+v", page)
	}

	if _, _, err := tools.Table(context.Background(), nil, TableInput{Sort: "bogus"}); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestServerListsAndCallsTools(t *testing.T) {
	ctx := context.Background()
	server := NewServer(newTools(sampleMarket()))

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	list, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range list.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"top_cards", "market_overview", "search_coins", "coin_chart", "coin_table"} {
		if !names[want] {
			t.Fatalf("expected tool %s to be registered", want)
		}
	}

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "search_coins",
		Arguments: map[string]any{"query": "bit"},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res.Content)
	}
}
