package viewmodel

import (
	"sort"

	"coin-dashboard/internal/domain"
)

const dominanceKey = "btc"

type GlobalOverview struct {
	ActiveCryptocurrencies int     `json:"active_cryptocurrencies"`
	TotalMarketCap         float64 `json:"total_market_cap"`
	TotalVolume            float64 `json:"total_volume"`
	BitcoinDominance       float64 `json:"bitcoin_dominance"`
	MarketCapChange24h     float64 `json:"market_cap_change_24h"`
}

// BuildOverview aggregates a global snapshot. Absent maps and keys count as 0.
func BuildOverview(snapshot domain.GlobalMarketSnapshot) GlobalOverview {
	return GlobalOverview{
		ActiveCryptocurrencies: snapshot.ActiveCryptocurrencies,
		TotalMarketCap:         sumValues(snapshot.TotalMarketCap),
		TotalVolume:            sumValues(snapshot.TotalVolume),
		BitcoinDominance:       Round2(snapshot.MarketCapPercentage[dominanceKey]),
		MarketCapChange24h:     snapshot.MarketCapChangePercentage24hUSD,
	}
}

// sumValues adds in key order so the float result does not depend on map iteration.
func sumValues(m map[string]float64) float64 {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var total float64
	for _, k := range keys {
		total += m[k]
	}
	return total
}

const HighlightCategoryCount = 3

type Highlights struct {
	Categories  []string `json:"categories"`
	MarketPairs float64  `json:"market_pairs"`
}

// BuildHighlights takes the first three category names and sums exchange
// 24h BTC volume as the market-pairs figure.
func BuildHighlights(categories []domain.Category, exchanges []domain.ExchangeRecord) Highlights {
	n := len(categories)
	if n > HighlightCategoryCount {
		n = HighlightCategoryCount
	}
	names := make([]string, 0, n)
	for _, c := range categories[:n] {
		names = append(names, c.Name)
	}

	var pairs float64
	for _, ex := range exchanges {
		pairs += ex.TradeVolume24hBTC
	}
	return Highlights{Categories: names, MarketPairs: pairs}
}
