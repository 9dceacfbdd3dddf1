package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"coin-dashboard/internal/domain"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	coingeckoBaseURL = "https://api.coingecko.com/api/v3"
	marketsPageSize  = 100
)

// Endpoints overrides the URLs used for the global and categories resources.
// Empty fields fall back to paths under the base URL.
type Endpoints struct {
	BaseURL       string
	GlobalURL     string
	CategoriesURL string
}

// CoinGeckoProvider issues single GET requests against the CoinGecko free API.
// Responses are checked for a success status and well-formed JSON and returned
// unvalidated; shape checking is the caller's job.
type CoinGeckoProvider struct {
	client        *http.Client
	baseURL       string
	globalURL     string
	categoriesURL string
	tracer        trace.Tracer
	limiter       *RateLimiter
}

// NewCoinGeckoProvider creates a new provider with built-in rate limiting.
// Rate limited to 8 requests per minute (one token every 7.5 seconds).
func NewCoinGeckoProvider(tracer trace.Tracer, endpoints Endpoints) *CoinGeckoProvider {
	base := strings.TrimRight(endpoints.BaseURL, "/")
	if base == "" {
		base = coingeckoBaseURL
	}
	return &CoinGeckoProvider{
		client:        &http.Client{Timeout: 30 * time.Second},
		baseURL:       base,
		globalURL:     endpoints.GlobalURL,
		categoriesURL: endpoints.CategoriesURL,
		tracer:        tracer,
		limiter:       NewRateLimiter(8, 7500*time.Millisecond),
	}
}

// FetchCoinMarkets fetches the first page of coins ordered by market cap.
func (p *CoinGeckoProvider) FetchCoinMarkets(ctx context.Context) (json.RawMessage, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.fetch-coin-markets")
	defer span.End()

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(marketsPageSize))
	q.Set("page", "1")
	q.Set("sparkline", "false")

	return p.get(ctx, domain.ResourceCoins, p.baseURL+"/coins/markets?"+q.Encode())
}

// FetchGlobal fetches global market statistics.
func (p *CoinGeckoProvider) FetchGlobal(ctx context.Context) (json.RawMessage, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.fetch-global")
	defer span.End()

	target := p.globalURL
	if target == "" {
		target = p.baseURL + "/global"
	}
	return p.get(ctx, domain.ResourceGlobal, target)
}

// FetchExchanges fetches the exchange list.
func (p *CoinGeckoProvider) FetchExchanges(ctx context.Context) (json.RawMessage, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.fetch-exchanges")
	defer span.End()

	return p.get(ctx, domain.ResourceExchanges, p.baseURL+"/exchanges")
}

// FetchCategories fetches the coin category list.
func (p *CoinGeckoProvider) FetchCategories(ctx context.Context) (json.RawMessage, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.fetch-categories")
	defer span.End()

	target := p.categoriesURL
	if target == "" {
		target = p.baseURL + "/coins/categories"
	}
	return p.get(ctx, domain.ResourceCategories, target)
}

// FetchMarketChart fetches 30 days of daily USD prices for one coin.
func (p *CoinGeckoProvider) FetchMarketChart(ctx context.Context, coinID string) (json.RawMessage, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.fetch-market-chart")
	defer span.End()
	span.SetAttributes(attribute.String("coin_id", coinID))

	if strings.TrimSpace(coinID) == "" {
		return nil, errors.New("fetch market chart: empty coin id")
	}

	target := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=%d&interval=daily",
		p.baseURL, url.PathEscape(coinID), domain.ChartLookbackDays)

	return p.get(ctx, domain.ResourceChart, target)
}

func (p *CoinGeckoProvider) get(ctx context.Context, resource, target string) (json.RawMessage, error) {
	body, err := p.doRequest(ctx, resource, target)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", resource, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, &domain.ParseError{Resource: resource, Err: errors.New("response body is not valid JSON")}
	}
	return json.RawMessage(body), nil
}

// Remaining reports the calls left in the current rate limit window.
func (p *CoinGeckoProvider) Remaining() int {
	return p.limiter.Remaining()
}

func (p *CoinGeckoProvider) doRequest(ctx context.Context, resource, target string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &domain.NetworkError{Resource: resource, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return io.ReadAll(resp.Body)
}
