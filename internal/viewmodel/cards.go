package viewmodel

import "coin-dashboard/internal/domain"

const (
	TopCardCount     = 3
	SummaryRowCount  = 5
	DirectionUp      = "up"
	DirectionDown    = "down"
	bitcoinID        = "bitcoin"
	ethereumID       = "ethereum"
	defaultCardIcon  = "₮"
	defaultCardColor = "#F3F4F6"
)

// PriceCard is one of the headline cards above the chart.
type PriceCard struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	PriceText string  `json:"price_text"`
	Change    string  `json:"change"`
	Direction string  `json:"direction"`
	Icon      string  `json:"icon"`
	Color     string  `json:"color"`
}

// TopPriceCards maps the first n coins, in upstream order, to price cards.
func TopPriceCards(coins []domain.CoinRecord, n int) []PriceCard {
	if n > len(coins) {
		n = len(coins)
	}
	if n < 0 {
		n = 0
	}
	cards := make([]PriceCard, 0, n)
	for _, coin := range coins[:n] {
		icon, color := cardStyle(coin.ID)
		cards = append(cards, PriceCard{
			ID:        coin.ID,
			Symbol:    coin.Symbol,
			Name:      coin.Name,
			Price:     coin.CurrentPrice,
			PriceText: FormatUSD(coin.CurrentPrice),
			Change:    FormatSignedPercent(coin.PriceChangePercentage24h, 2) + "%",
			Direction: direction(coin.PriceChangePercentage24h),
			Icon:      icon,
			Color:     color,
		})
	}
	return cards
}

func cardStyle(id string) (icon, color string) {
	switch id {
	case bitcoinID:
		return "₿", "#FFEDD5"
	case ethereumID:
		return "Ξ", "#DBEAFE"
	default:
		return defaultCardIcon, defaultCardColor
	}
}

func direction(pct float64) string {
	if pct >= 0 {
		return DirectionUp
	}
	return DirectionDown
}

// SummaryRow is a row of the compact market table on the home view.
type SummaryRow struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	Change     string `json:"change"`
	Volume     string `json:"volume"`
	MarketRank int    `json:"market_rank"`
	IsPositive bool   `json:"is_positive"`
	Icon       string `json:"icon"`
}

// MarketSummary maps the first n coins to compact table rows.
func MarketSummary(coins []domain.CoinRecord, n int) []SummaryRow {
	if n > len(coins) {
		n = len(coins)
	}
	if n < 0 {
		n = 0
	}
	rows := make([]SummaryRow, 0, n)
	for _, coin := range coins[:n] {
		rows = append(rows, SummaryRow{
			Name:       coin.Name,
			Price:      "$" + FormatNumber(coin.CurrentPrice),
			Change:     decimalFixed(coin.PriceChangePercentage24h, 2) + "%",
			Volume:     "$" + FormatNumber(coin.TotalVolume),
			MarketRank: coin.MarketCapRank,
			IsPositive: coin.PriceChangePercentage24h >= 0,
			Icon:       coin.Image,
		})
	}
	return rows
}
