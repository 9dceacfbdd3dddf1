package domain

import (
	"encoding/json"
	"time"
)

// CoinRecord is one entry of the CoinGecko /coins/markets response.
type CoinRecord struct {
	ID                           string    `json:"id"`
	Symbol                       string    `json:"symbol"`
	Name                         string    `json:"name"`
	Image                        string    `json:"image"`
	CurrentPrice                 float64   `json:"current_price"`
	MarketCap                    float64   `json:"market_cap"`
	MarketCapRank                int       `json:"market_cap_rank"`
	FullyDilutedValuation        *float64  `json:"fully_diluted_valuation"`
	TotalVolume                  float64   `json:"total_volume"`
	High24h                      float64   `json:"high_24h"`
	Low24h                       float64   `json:"low_24h"`
	PriceChange24h               float64   `json:"price_change_24h"`
	PriceChangePercentage24h     float64   `json:"price_change_percentage_24h"`
	MarketCapChange24h           float64   `json:"market_cap_change_24h"`
	MarketCapChangePercentage24h float64   `json:"market_cap_change_percentage_24h"`
	CirculatingSupply            float64   `json:"circulating_supply"`
	TotalSupply                  *float64  `json:"total_supply"`
	MaxSupply                    *float64  `json:"max_supply"`
	ATH                          float64   `json:"ath"`
	ATHChangePercentage          float64   `json:"ath_change_percentage"`
	ATHDate                      time.Time `json:"ath_date"`
	ATL                          float64   `json:"atl"`
	ATLChangePercentage          float64   `json:"atl_change_percentage"`
	ATLDate                      time.Time `json:"atl_date"`
	ROI                          *ROI      `json:"roi"`
	LastUpdated                  time.Time `json:"last_updated"`

	// Extra holds upstream fields this type does not model.
	Extra map[string]json.RawMessage `json:"-"`
}

type ROI struct {
	Times      float64 `json:"times"`
	Currency   string  `json:"currency"`
	Percentage float64 `json:"percentage"`
}

// GlobalMarketSnapshot is the "data" object of the CoinGecko /global response.
// Maps are keyed by lower-case currency code.
type GlobalMarketSnapshot struct {
	ActiveCryptocurrencies          int                        `json:"active_cryptocurrencies"`
	OngoingICOs                     int                        `json:"ongoing_icos"`
	TotalMarketCap                  map[string]float64         `json:"total_market_cap"`
	TotalVolume                     map[string]float64         `json:"total_volume"`
	MarketCapPercentage             map[string]float64         `json:"market_cap_percentage"`
	MarketCapChangePercentage24hUSD float64                    `json:"market_cap_change_percentage_24h_usd"`
	Extra                           map[string]json.RawMessage `json:"-"`
}

// ExchangeRecord is one entry of the CoinGecko /exchanges response.
type ExchangeRecord struct {
	ID                          string                     `json:"id"`
	Name                        string                     `json:"name"`
	YearEstablished             int                        `json:"year_established,omitempty"`
	Country                     *string                    `json:"country"`
	Description                 *string                    `json:"description"`
	URL                         string                     `json:"url"`
	Image                       string                     `json:"image"`
	HasTradingIncentive         *bool                      `json:"has_trading_incentive"`
	TrustScore                  float64                    `json:"trust_score"`
	TrustScoreRank              int                        `json:"trust_score_rank"`
	TradeVolume24hBTC           float64                    `json:"trade_volume_24h_btc"`
	TradeVolume24hBTCNormalized float64                    `json:"trade_volume_24h_btc_normalized"`
	Extra                       map[string]json.RawMessage `json:"-"`
}

// Category is one entry of the CoinGecko categories list. Only the name is used.
type Category struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// PricePoint is a single (timestamp, price) sample of a coin's history.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// Resource names used as cache keys and in status reporting.
const (
	ResourceCoins      = "coins"
	ResourceGlobal     = "global"
	ResourceExchanges  = "exchanges"
	ResourceCategories = "categories"
	ResourceChart      = "chart"
)

// ListResources are refreshed together on every staleness tick.
var ListResources = []string{ResourceCoins, ResourceGlobal, ResourceExchanges, ResourceCategories}

// ChartKey is the cache key of one coin's historical series.
func ChartKey(coinID string) string {
	return ResourceChart + ":" + coinID
}
