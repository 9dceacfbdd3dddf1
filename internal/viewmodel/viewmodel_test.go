package viewmodel

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/schema"
)

func sampleCoins() []domain.CoinRecord {
	return []domain.CoinRecord{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", Image: "btc.png", CurrentPrice: 50000, MarketCap: 1e12, MarketCapRank: 1, TotalVolume: 3e10, High24h: 51000, Low24h: 49000, PriceChangePercentage24h: 1.2345},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum", Image: "eth.png", CurrentPrice: 3000, MarketCap: 4e11, MarketCapRank: 2, TotalVolume: 1.5e10, High24h: 3100, Low24h: 2900, PriceChangePercentage24h: -0.5},
		{ID: "tether", Symbol: "usdt", Name: "Tether", Image: "usdt.png", CurrentPrice: 1, MarketCap: 1e11, MarketCapRank: 3, TotalVolume: 5e10, High24h: 1.001, Low24h: 0.999, PriceChangePercentage24h: 0},
		{ID: "bitcoin-cash", Symbol: "bch", Name: "Bitcoin Cash", Image: "bch.png", CurrentPrice: 400, MarketCap: 8e9, MarketCapRank: 4, TotalVolume: 3e8, High24h: 410, Low24h: 390, PriceChangePercentage24h: 2},
		{ID: "wrapped-bitcoin", Symbol: "wbtc", Name: "Wrapped Bitcoin", Image: "wbtc.png", CurrentPrice: 49990, MarketCap: 7e9, MarketCapRank: 5, TotalVolume: 2e8, High24h: 50900, Low24h: 48900, PriceChangePercentage24h: 1.1},
		{ID: "solana", Symbol: "sol", Name: "Solana", Image: "sol.png", CurrentPrice: 150, MarketCap: 6e10, MarketCapRank: 6, TotalVolume: 2e9, High24h: 155, Low24h: 140, PriceChangePercentage24h: -3.25},
	}
}

func TestTopPriceCardsLengthAndSign(t *testing.T) {
	t.Parallel()

	coins := sampleCoins()
	for n := 0; n <= len(coins); n++ {
		cards := TopPriceCards(coins[:n], TopCardCount)
		want := n
		if want > TopCardCount {
			want = TopCardCount
		}
		if len(cards) != want {
			t.Fatalf("len(coins)=%d: expected %d cards, got %d", n, want, len(cards))
		}
		for i, card := range cards {
			pct := coins[i].PriceChangePercentage24h
			if strings.HasPrefix(card.Change, "+") != (pct >= 0) {
				t.Fatalf("card %d change %q does not match sign of %v", i, card.Change, pct)
			}
		}
	}
}

func TestTopPriceCardsStyle(t *testing.T) {
	t.Parallel()

	cards := TopPriceCards(sampleCoins(), TopCardCount)
	want := []struct{ icon, change, direction string }{
		{"₿", "+1.23%", DirectionUp},
		{"Ξ", "-0.50%", DirectionDown},
		{"₮", "+0.00%", DirectionUp},
	}
	for i, w := range want {
		if cards[i].Icon != w.icon || cards[i].Change != w.change || cards[i].Direction != w.direction {
			t.Fatalf("card %d: got %+v, want %+v", i, cards[i], w)
		}
	}
	if cards[0].PriceText != "$50,000.00" {
		t.Fatalf("unexpected price text: %s", cards[0].PriceText)
	}
}

func TestMarketSummary(t *testing.T) {
	t.Parallel()

	rows := MarketSummary(sampleCoins(), SummaryRowCount)
	if len(rows) != SummaryRowCount {
		t.Fatalf("expected %d rows, got %d", SummaryRowCount, len(rows))
	}
	if rows[0].Price != "$50,000" || rows[0].Change != "1.23%" || !rows[0].IsPositive {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Change != "-0.50%" || rows[1].IsPositive {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	if rows[4].MarketRank != 5 {
		t.Fatalf("expected upstream order preserved, got rank %d", rows[4].MarketRank)
	}
}

func TestComboboxOptions(t *testing.T) {
	t.Parallel()

	options := ComboboxOptions(sampleCoins())
	if len(options) != 6 {
		t.Fatalf("expected one option per coin, got %d", len(options))
	}
	first := options[0]
	if first.Value != "bitcoin" || first.Label != "Bitcoin" || first.Price != "50000" || first.Change != "+1.2345" {
		t.Fatalf("unexpected option: %+v", first)
	}
	if options[1].Change != "-0.5000" || options[1].Direction != DirectionDown {
		t.Fatalf("unexpected change: %+v", options[1])
	}
}

func TestComboboxOptionDirectionFromValue(t *testing.T) {
	t.Parallel()

	coins := []domain.CoinRecord{
		{ID: "tiny-drop", Name: "Tiny Drop", PriceChangePercentage24h: -0.00001},
		{ID: "flat", Name: "Flat", PriceChangePercentage24h: 0},
	}
	options := ComboboxOptions(coins)
	if options[0].Change != "-0.0000" || options[0].Direction != DirectionDown {
		t.Fatalf("expected a rounded-to-zero drop to stay down, got %+v", options[0])
	}
	if options[1].Change != "+0.0000" || options[1].Direction != DirectionUp {
		t.Fatalf("expected zero change to be up, got %+v", options[1])
	}
}

func TestDefaultSelection(t *testing.T) {
	t.Parallel()

	options := ComboboxOptions(sampleCoins())
	if got := DefaultSelection(options, ""); got != "bitcoin" {
		t.Fatalf("expected bitcoin, got %q", got)
	}
	if got := DefaultSelection(options, "solana"); got != "solana" {
		t.Fatalf("expected prior selection kept, got %q", got)
	}
	if got := DefaultSelection(nil, ""); got != "" {
		t.Fatalf("expected empty selection, got %q", got)
	}
	if got := SelectedPrice(options, "missing"); got != "" {
		t.Fatalf("expected empty price, got %q", got)
	}
}

func TestDefaultSelectionFromUpstreamPayload(t *testing.T) {
	t.Parallel()

	payload := `[{"id":"bitcoin","symbol":"btc","name":"Bitcoin","image":"https://img/btc.png",
		"current_price":50000,"market_cap":1000000000000,"market_cap_rank":1,"fully_diluted_valuation":null,
		"total_volume":30000000000,"high_24h":51000,"low_24h":49000,"price_change_24h":500,
		"price_change_percentage_24h":1.0,"market_cap_change_24h":1,"market_cap_change_percentage_24h":1,
		"circulating_supply":19000000,"total_supply":21000000,"max_supply":21000000,"ath":69000,
		"ath_change_percentage":-27,"ath_date":"2021-11-10T14:24:11.849Z","atl":67.81,
		"atl_change_percentage":73000,"atl_date":"2013-07-06T00:00:00.000Z","roi":null,
		"last_updated":"2024-01-01T00:00:00.000Z"}]`

	coins, err := schema.ParseCoins([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	options := ComboboxOptions(coins)
	selected := DefaultSelection(options, "")
	if selected != "bitcoin" {
		t.Fatalf("expected bitcoin default, got %q", selected)
	}
	if got := SelectedPrice(options, selected); got != "$50,000.00" {
		t.Fatalf("expected $50,000.00, got %q", got)
	}
}

func dailySeries(n int) []domain.PricePoint {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	points := make([]domain.PricePoint, n)
	for i := range points {
		points[i] = domain.PricePoint{Timestamp: start.AddDate(0, 0, i), Price: 100 + float64(i) + 0.456}
	}
	return points
}

func TestChartSeriesWindows(t *testing.T) {
	t.Parallel()

	full := dailySeries(30)
	for _, w := range domain.SupportedWindows {
		series := ChartSeries(full, w)
		if len(series) != w.Days() {
			t.Fatalf("%s: expected %d points, got %d", w, w.Days(), len(series))
		}
		offset := len(full) - w.Days()
		for i, p := range series {
			src := full[offset+i]
			if p.Date != src.Timestamp.Format("2006-01-02") {
				t.Fatalf("%s: point %d date %s, want %s", w, i, p.Date, src.Timestamp.Format("2006-01-02"))
			}
			if p.Price != Round2(src.Price) {
				t.Fatalf("%s: point %d price %v", w, i, p.Price)
			}
		}
	}
}

func TestChartSeriesShortHistory(t *testing.T) {
	t.Parallel()

	series := ChartSeries(dailySeries(4), domain.Window15D)
	if len(series) != 4 {
		t.Fatalf("expected all 4 points, got %d", len(series))
	}
	if series[0].Price != 100.46 {
		t.Fatalf("expected rounded price, got %v", series[0].Price)
	}
	if got := ChartSeries(dailySeries(30), domain.Window("1Y")); len(got) != 0 {
		t.Fatalf("expected no points for unknown window, got %d", len(got))
	}
}

func TestChartSeriesUsesUTCDay(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+9", 9*3600)
	points := []domain.PricePoint{{Timestamp: time.Date(2024, 3, 2, 5, 0, 0, 0, loc), Price: 1}}
	series := ChartSeries(points, domain.Window7D)
	if series[0].Date != "2024-03-01" {
		t.Fatalf("expected UTC day, got %s", series[0].Date)
	}
}

func TestBuildOverview(t *testing.T) {
	t.Parallel()

	overview := BuildOverview(domain.GlobalMarketSnapshot{
		ActiveCryptocurrencies:          10000,
		TotalMarketCap:                  map[string]float64{"usd": 100, "eur": 50},
		TotalVolume:                     map[string]float64{"usd": 7},
		MarketCapPercentage:             map[string]float64{"btc": 52.3456, "eth": 17},
		MarketCapChangePercentage24hUSD: -1.5,
	})
	if overview.TotalMarketCap != 150 {
		t.Fatalf("expected 150, got %v", overview.TotalMarketCap)
	}
	if overview.TotalVolume != 7 || overview.BitcoinDominance != 52.35 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
	if overview.ActiveCryptocurrencies != 10000 || overview.MarketCapChange24h != -1.5 {
		t.Fatalf("expected pass-through fields, got %+v", overview)
	}
}

func TestBuildOverviewDefaults(t *testing.T) {
	t.Parallel()

	overview := BuildOverview(domain.GlobalMarketSnapshot{})
	if overview != (GlobalOverview{}) {
		t.Fatalf("expected zero overview, got %+v", overview)
	}
}

func TestBuildHighlights(t *testing.T) {
	t.Parallel()

	categories := []domain.Category{{Name: "Layer 1"}, {Name: "DeFi"}, {Name: "Meme"}, {Name: "Gaming"}}
	exchanges := []domain.ExchangeRecord{{TradeVolume24hBTC: 1.5}, {TradeVolume24hBTC: 2.5}}

	h := BuildHighlights(categories, exchanges)
	if !reflect.DeepEqual(h.Categories, []string{"Layer 1", "DeFi", "Meme"}) {
		t.Fatalf("unexpected categories: %v", h.Categories)
	}
	if h.MarketPairs != 4 {
		t.Fatalf("expected 4, got %v", h.MarketPairs)
	}

	empty := BuildHighlights(nil, nil)
	if len(empty.Categories) != 0 || empty.MarketPairs != 0 {
		t.Fatalf("expected empty highlights, got %+v", empty)
	}
}

func TestLiveSearch(t *testing.T) {
	t.Parallel()

	coins := sampleCoins()
	result := LiveSearch(coins, "BIT", 2)
	if len(result.Hits) != 2 || result.More != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Hits[0].ID != "bitcoin" || result.Hits[1].ID != "bitcoin-cash" {
		t.Fatalf("expected upstream order, got %+v", result.Hits)
	}
	if result.MoreLabel() != "See more coins (+1)" {
		t.Fatalf("unexpected label: %q", result.MoreLabel())
	}

	if r := LiveSearch(coins, "  ", 5); len(r.Hits) != 0 || r.More != 0 {
		t.Fatalf("expected blank search to match nothing, got %+v", r)
	}
	if r := LiveSearch(coins, "sol", 0); len(r.Hits) != 1 || r.MoreLabel() != "" {
		t.Fatalf("unexpected result: %+v", r)
	}
}
