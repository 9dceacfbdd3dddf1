// Package schema turns raw CoinGecko payloads into typed records.
//
// Every parser returns either the records or an error; it never panics.
// Shape problems are reported as a *domain.ValidationError listing every
// offending field path, malformed JSON as a *domain.ParseError. Members the
// records do not model are kept in their Extra maps.
package schema

import (
	"time"

	"coin-dashboard/internal/domain"

	"github.com/tidwall/gjson"
)

var coinFields = keySet(
	"id", "symbol", "name", "image", "current_price", "market_cap", "market_cap_rank",
	"fully_diluted_valuation", "total_volume", "high_24h", "low_24h", "price_change_24h",
	"price_change_percentage_24h", "market_cap_change_24h", "market_cap_change_percentage_24h",
	"circulating_supply", "total_supply", "max_supply", "ath", "ath_change_percentage", "ath_date",
	"atl", "atl_change_percentage", "atl_date", "roi", "last_updated",
)

var globalFields = keySet(
	"active_cryptocurrencies", "ongoing_icos", "total_market_cap", "total_volume",
	"market_cap_percentage", "market_cap_change_percentage_24h_usd",
)

var exchangeFields = keySet(
	"id", "name", "year_established", "country", "description", "url", "image",
	"has_trading_incentive", "trust_score", "trust_score_rank", "trade_volume_24h_btc",
	"trade_volume_24h_btc_normalized",
)

// ParseCoins validates a /coins/markets array. An entry with any issue is
// dropped; the rest are returned together with the *domain.ValidationError.
func ParseCoins(raw []byte) ([]domain.CoinRecord, error) {
	root, err := document(domain.ResourceCoins, raw)
	if err != nil {
		return nil, err
	}

	c := &checker{}
	if !root.IsArray() {
		c.addf("", "expected array, got %s", typeName(root))
		return nil, c.err(domain.ResourceCoins)
	}

	items := root.Array()
	coins := make([]domain.CoinRecord, 0, len(items))
	for i, item := range items {
		p := index("", i)
		if !item.IsObject() {
			c.addf(p, "expected object, got %s", typeName(item))
			continue
		}
		before := len(c.issues)
		coin := parseCoin(c, item, p)
		if len(c.issues) > before {
			continue
		}
		coins = append(coins, coin)
	}

	return coins, c.partialErr(domain.ResourceCoins, len(coins))
}

func parseCoin(c *checker, obj gjson.Result, p string) domain.CoinRecord {
	coin := domain.CoinRecord{
		ID:                           c.str(obj, p, "id"),
		Symbol:                       c.str(obj, p, "symbol"),
		Name:                         c.str(obj, p, "name"),
		Image:                        c.urlStr(obj, p, "image"),
		CurrentPrice:                 c.num(obj, p, "current_price"),
		MarketCap:                    c.num(obj, p, "market_cap"),
		MarketCapRank:                int(c.num(obj, p, "market_cap_rank")),
		FullyDilutedValuation:        c.nullableNum(obj, p, "fully_diluted_valuation"),
		TotalVolume:                  c.num(obj, p, "total_volume"),
		High24h:                      c.num(obj, p, "high_24h"),
		Low24h:                       c.num(obj, p, "low_24h"),
		PriceChange24h:               c.num(obj, p, "price_change_24h"),
		PriceChangePercentage24h:     c.num(obj, p, "price_change_percentage_24h"),
		MarketCapChange24h:           c.num(obj, p, "market_cap_change_24h"),
		MarketCapChangePercentage24h: c.num(obj, p, "market_cap_change_percentage_24h"),
		CirculatingSupply:            c.num(obj, p, "circulating_supply"),
		TotalSupply:                  c.nullableNum(obj, p, "total_supply"),
		MaxSupply:                    c.nullableNum(obj, p, "max_supply"),
		ATH:                          c.num(obj, p, "ath"),
		ATHChangePercentage:          c.num(obj, p, "ath_change_percentage"),
		ATHDate:                      c.datetime(obj, p, "ath_date"),
		ATL:                          c.num(obj, p, "atl"),
		ATLChangePercentage:          c.num(obj, p, "atl_change_percentage"),
		ATLDate:                      c.datetime(obj, p, "atl_date"),
		LastUpdated:                  c.datetime(obj, p, "last_updated"),
		Extra:                        extras(obj, coinFields),
	}

	roi := field(obj, "roi")
	rp := join(p, "roi")
	switch {
	case !roi.Exists():
		c.addf(rp, "required")
	case roi.Type == gjson.Null:
	case !roi.IsObject():
		c.addf(rp, "expected object or null, got %s", typeName(roi))
	default:
		coin.ROI = &domain.ROI{
			Times:      c.num(roi, rp, "times"),
			Currency:   c.str(roi, rp, "currency"),
			Percentage: c.num(roi, rp, "percentage"),
		}
	}
	return coin
}

// ParseGlobal validates a /global response. Every member of "data" is
// optional; absent members decode to zero values and empty maps.
func ParseGlobal(raw []byte) (domain.GlobalMarketSnapshot, error) {
	snap := domain.GlobalMarketSnapshot{
		TotalMarketCap:      map[string]float64{},
		TotalVolume:         map[string]float64{},
		MarketCapPercentage: map[string]float64{},
	}

	root, err := document(domain.ResourceGlobal, raw)
	if err != nil {
		return snap, err
	}

	c := &checker{}
	if !root.IsObject() {
		c.addf("", "expected object, got %s", typeName(root))
		return snap, c.err(domain.ResourceGlobal)
	}

	data := field(root, "data")
	if !data.Exists() {
		return snap, nil
	}
	if !data.IsObject() {
		c.addf("data", "expected object, got %s", typeName(data))
		return snap, c.err(domain.ResourceGlobal)
	}

	snap.ActiveCryptocurrencies = int(c.optNum(data, "data", "active_cryptocurrencies"))
	snap.OngoingICOs = int(c.optNum(data, "data", "ongoing_icos"))
	snap.TotalMarketCap = c.numberMap(data, "data", "total_market_cap")
	snap.TotalVolume = c.numberMap(data, "data", "total_volume")
	snap.MarketCapPercentage = c.numberMap(data, "data", "market_cap_percentage")
	snap.MarketCapChangePercentage24hUSD = c.optNum(data, "data", "market_cap_change_percentage_24h_usd")
	snap.Extra = extras(data, globalFields)

	return snap, c.err(domain.ResourceGlobal)
}

// ParseExchanges validates a /exchanges array. Invalid entries are dropped
// the same way ParseCoins drops them.
func ParseExchanges(raw []byte) ([]domain.ExchangeRecord, error) {
	root, err := document(domain.ResourceExchanges, raw)
	if err != nil {
		return nil, err
	}

	c := &checker{}
	if !root.IsArray() {
		c.addf("", "expected array, got %s", typeName(root))
		return nil, c.err(domain.ResourceExchanges)
	}

	items := root.Array()
	out := make([]domain.ExchangeRecord, 0, len(items))
	for i, item := range items {
		p := index("", i)
		if !item.IsObject() {
			c.addf(p, "expected object, got %s", typeName(item))
			continue
		}
		before := len(c.issues)
		ex := domain.ExchangeRecord{
			ID:                          c.str(item, p, "id"),
			Name:                        c.str(item, p, "name"),
			YearEstablished:             int(c.optNum(item, p, "year_established")),
			Country:                     c.nullableStr(item, p, "country"),
			Description:                 c.nullableStr(item, p, "description"),
			URL:                         c.str(item, p, "url"),
			Image:                       c.str(item, p, "image"),
			HasTradingIncentive:         c.nullableBool(item, p, "has_trading_incentive"),
			TrustScore:                  c.num(item, p, "trust_score"),
			TrustScoreRank:              int(c.num(item, p, "trust_score_rank")),
			TradeVolume24hBTC:           c.num(item, p, "trade_volume_24h_btc"),
			TradeVolume24hBTCNormalized: c.num(item, p, "trade_volume_24h_btc_normalized"),
			Extra:                       extras(item, exchangeFields),
		}
		if len(c.issues) > before {
			continue
		}
		out = append(out, ex)
	}

	return out, c.partialErr(domain.ResourceExchanges, len(out))
}

// ParseCategories reads the categories array. Entries without a string
// "name" are skipped rather than reported.
func ParseCategories(raw []byte) ([]domain.Category, error) {
	root, err := document(domain.ResourceCategories, raw)
	if err != nil {
		return nil, err
	}

	if !root.IsArray() {
		c := &checker{}
		c.addf("", "expected array, got %s", typeName(root))
		return nil, c.err(domain.ResourceCategories)
	}

	out := []domain.Category{}
	root.ForEach(func(_, item gjson.Result) bool {
		name := field(item, "name")
		if !item.IsObject() || name.Type != gjson.String {
			return true
		}
		id := field(item, "id")
		if !id.Exists() {
			id = field(item, "category_id")
		}
		out = append(out, domain.Category{
			ID:   id.String(),
			Name: name.Str,
		})
		return true
	})
	return out, nil
}

// ParseMarketChart reads the "prices" series of a /coins/{id}/market_chart
// response. Points are returned in upstream order.
func ParseMarketChart(raw []byte) ([]domain.PricePoint, error) {
	root, err := document(domain.ResourceChart, raw)
	if err != nil {
		return nil, err
	}

	c := &checker{}
	if !root.IsObject() {
		c.addf("", "expected object, got %s", typeName(root))
		return nil, c.err(domain.ResourceChart)
	}

	prices := field(root, "prices")
	if !prices.Exists() {
		c.addf("prices", "required")
		return nil, c.err(domain.ResourceChart)
	}
	if !prices.IsArray() {
		c.addf("prices", "expected array, got %s", typeName(prices))
		return nil, c.err(domain.ResourceChart)
	}

	items := prices.Array()
	points := make([]domain.PricePoint, 0, len(items))
	for i, pair := range items {
		p := index("prices", i)
		values := pair.Array()
		if !pair.IsArray() || len(values) < 2 {
			c.addf(p, "expected [timestamp, price] pair")
			continue
		}
		if values[0].Type != gjson.Number || values[1].Type != gjson.Number {
			c.addf(p, "expected numeric pair, got [%s, %s]", typeName(values[0]), typeName(values[1]))
			continue
		}
		points = append(points, domain.PricePoint{
			Timestamp: time.UnixMilli(int64(values[0].Num)).UTC(),
			Price:     values[1].Num,
		})
	}

	if err := c.err(domain.ResourceChart); err != nil {
		return nil, err
	}
	return points, nil
}
