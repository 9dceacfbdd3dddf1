package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"coin-dashboard/internal/cache"
	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/schema"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// MarketDataProvider issues one upstream request per call and returns the raw body.
type MarketDataProvider interface {
	FetchCoinMarkets(ctx context.Context) (json.RawMessage, error)
	FetchGlobal(ctx context.Context) (json.RawMessage, error)
	FetchExchanges(ctx context.Context) (json.RawMessage, error)
	FetchCategories(ctx context.Context) (json.RawMessage, error)
	FetchMarketChart(ctx context.Context, coinID string) (json.RawMessage, error)
}

type QueryCache interface {
	Get(ctx context.Context, key string, fetch cache.Fetcher) ([]byte, error)
	Invalidate(ctx context.Context, key string)
}

// Status is the load state of one resource as shown to the presentation layer.
type Status struct {
	Loading   bool      `json:"loading"`
	IsError   bool      `json:"is_error"`
	Err       error     `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasData reports whether at least one load has succeeded.
func (s Status) HasData() bool {
	return !s.UpdatedAt.IsZero()
}

type resource[T any] struct {
	mu     sync.RWMutex
	data   T
	status Status
}

func (r *resource[T]) get() (T, Status) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data, r.status
}

func (r *resource[T]) begin() {
	r.mu.Lock()
	r.status.Loading = true
	r.mu.Unlock()
}

func (r *resource[T]) succeed(data T, at time.Time) {
	r.mu.Lock()
	r.data = data
	r.status = Status{UpdatedAt: at}
	r.mu.Unlock()
}

// fail keeps the last good data.
func (r *resource[T]) fail(err error) {
	r.mu.Lock()
	r.status.Loading = false
	r.status.IsError = true
	r.status.Err = err
	r.mu.Unlock()
}

// MarketService fetches, validates and keeps the last good copy of every
// upstream resource.
type MarketService struct {
	tracer   trace.Tracer
	provider MarketDataProvider
	cache    QueryCache
	now      func() time.Time

	coins      resource[[]domain.CoinRecord]
	global     resource[domain.GlobalMarketSnapshot]
	exchanges  resource[[]domain.ExchangeRecord]
	categories resource[[]domain.Category]

	chartsMu sync.Mutex
	charts   map[string]*resource[[]domain.PricePoint]
}

func NewMarketService(tracer trace.Tracer, provider MarketDataProvider, queryCache QueryCache) *MarketService {
	s := &MarketService{
		tracer:   tracer,
		provider: provider,
		cache:    queryCache,
		now:      time.Now,
		charts:   make(map[string]*resource[[]domain.PricePoint]),
	}
	s.coins.data = []domain.CoinRecord{}
	s.global.data = domain.GlobalMarketSnapshot{
		TotalMarketCap:      map[string]float64{},
		TotalVolume:         map[string]float64{},
		MarketCapPercentage: map[string]float64{},
	}
	s.exchanges.data = []domain.ExchangeRecord{}
	s.categories.data = []domain.Category{}
	return s
}

func load[T any](ctx context.Context, s *MarketService, r *resource[T], key string, fetch cache.Fetcher, parse func([]byte) (T, error)) (T, Status) {
	ctx, span := s.tracer.Start(ctx, "market-service.load")
	defer span.End()
	span.SetAttributes(attribute.String("resource", key))

	r.begin()
	raw, err := s.cache.Get(ctx, key, fetch)
	if err == nil {
		var data T
		data, err = parse(raw)
		if err == nil {
			r.succeed(data, s.now())
			return r.get()
		}
		var verr *domain.ValidationError
		if errors.As(err, &verr) && verr.Partial {
			log.Printf("Warning: %s: dropped invalid entries: %v", key, err)
			r.succeed(data, s.now())
			return r.get()
		}
	}

	span.RecordError(err)
	log.Printf("load %s failed, keeping last good data: %v", key, err)
	r.fail(err)
	return r.get()
}

func rawFetcher(fn func(ctx context.Context) (json.RawMessage, error)) cache.Fetcher {
	return func(ctx context.Context) ([]byte, error) {
		return fn(ctx)
	}
}

// Coins returns the validated coin list, sorted by market cap as upstream delivers it.
func (s *MarketService) Coins(ctx context.Context) ([]domain.CoinRecord, Status) {
	return load(ctx, s, &s.coins, domain.ResourceCoins, rawFetcher(s.provider.FetchCoinMarkets), schema.ParseCoins)
}

func (s *MarketService) Global(ctx context.Context) (domain.GlobalMarketSnapshot, Status) {
	return load(ctx, s, &s.global, domain.ResourceGlobal, rawFetcher(s.provider.FetchGlobal), schema.ParseGlobal)
}

func (s *MarketService) Exchanges(ctx context.Context) ([]domain.ExchangeRecord, Status) {
	return load(ctx, s, &s.exchanges, domain.ResourceExchanges, rawFetcher(s.provider.FetchExchanges), schema.ParseExchanges)
}

func (s *MarketService) Categories(ctx context.Context) ([]domain.Category, Status) {
	return load(ctx, s, &s.categories, domain.ResourceCategories, rawFetcher(s.provider.FetchCategories), schema.ParseCategories)
}

// MarketChart returns the 30-day daily history of one coin.
func (s *MarketService) MarketChart(ctx context.Context, coinID string) ([]domain.PricePoint, Status) {
	if coinID == "" {
		return []domain.PricePoint{}, Status{IsError: true, Err: errors.New("coin id is required")}
	}
	fetch := func(ctx context.Context) ([]byte, error) {
		return s.provider.FetchMarketChart(ctx, coinID)
	}
	r, known := s.chartResource(coinID)
	points, status := load(ctx, s, r, domain.ChartKey(coinID), fetch, schema.ParseMarketChart)
	if !known && !status.IsError {
		s.keepChart(coinID, r)
	}
	return points, status
}

// chartResource returns the held chart for coinID, or a fresh one that is
// only kept once it loads. Ids upstream rejects never enter the map.
func (s *MarketService) chartResource(coinID string) (*resource[[]domain.PricePoint], bool) {
	s.chartsMu.Lock()
	defer s.chartsMu.Unlock()
	if r, ok := s.charts[coinID]; ok {
		return r, true
	}
	return &resource[[]domain.PricePoint]{data: []domain.PricePoint{}}, false
}

func (s *MarketService) keepChart(coinID string, r *resource[[]domain.PricePoint]) {
	s.chartsMu.Lock()
	defer s.chartsMu.Unlock()
	if _, ok := s.charts[coinID]; !ok {
		s.charts[coinID] = r
	}
}

// Snapshot is everything the service currently holds, without fetching.
type Snapshot struct {
	Coins            []domain.CoinRecord
	CoinsStatus      Status
	Global           domain.GlobalMarketSnapshot
	GlobalStatus     Status
	Exchanges        []domain.ExchangeRecord
	ExchangesStatus  Status
	Categories       []domain.Category
	CategoriesStatus Status
}

func (s *MarketService) Snapshot() Snapshot {
	var snap Snapshot
	snap.Coins, snap.CoinsStatus = s.coins.get()
	snap.Global, snap.GlobalStatus = s.global.get()
	snap.Exchanges, snap.ExchangesStatus = s.exchanges.get()
	snap.Categories, snap.CategoriesStatus = s.categories.get()
	return snap
}

// UpstreamBudget reports how many upstream calls the provider can make right
// now without waiting, or -1 when the provider is not rate limited.
func (s *MarketService) UpstreamBudget() int {
	if l, ok := s.provider.(interface{ Remaining() int }); ok {
		return l.Remaining()
	}
	return -1
}

// Refresh refetches the four list resources concurrently. A failing resource
// does not stop the others; the returned error joins every failure.
func (s *MarketService) Refresh(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "market-service.refresh")
	defer span.End()

	var mu sync.Mutex
	var errs []error
	record := func(resource string, status Status) {
		if !status.IsError {
			return
		}
		mu.Lock()
		errs = append(errs, fmt.Errorf("%s: %w", resource, status.Err))
		mu.Unlock()
	}

	var g errgroup.Group
	for _, key := range domain.ListResources {
		s.cache.Invalidate(ctx, key)
	}
	g.Go(func() error {
		_, status := s.Coins(ctx)
		record(domain.ResourceCoins, status)
		return nil
	})
	g.Go(func() error {
		_, status := s.Global(ctx)
		record(domain.ResourceGlobal, status)
		return nil
	})
	g.Go(func() error {
		_, status := s.Exchanges(ctx)
		record(domain.ResourceExchanges, status)
		return nil
	})
	g.Go(func() error {
		_, status := s.Categories(ctx)
		record(domain.ResourceCategories, status)
		return nil
	})
	_ = g.Wait()

	if len(errs) > 0 {
		err := errors.Join(errs...)
		span.RecordError(err)
		return err
	}
	log.Printf("Refreshed %d market resources", len(domain.ListResources))
	return nil
}
