package job

import (
	"context"
	"log"
	"time"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/service"
	"coin-dashboard/internal/viewmodel"

	"go.opentelemetry.io/otel/trace"
)

// chartWarmDelay staggers chart requests behind the list refresh.
const chartWarmDelay = 10 * time.Second

// RefreshPoller refetches market data every time the staleness window elapses.
type RefreshPoller struct {
	tracer       trace.Tracer
	market       MarketRefresher
	pollInterval time.Duration
	warmDelay    time.Duration
}

type MarketRefresher interface {
	Refresh(ctx context.Context) error
	Coins(ctx context.Context) ([]domain.CoinRecord, service.Status)
	MarketChart(ctx context.Context, coinID string) ([]domain.PricePoint, service.Status)
}

func NewRefreshPoller(tracer trace.Tracer, market MarketRefresher, staleSecs int) *RefreshPoller {
	return &RefreshPoller{
		tracer:       tracer,
		market:       market,
		pollInterval: time.Duration(staleSecs) * time.Second,
		warmDelay:    chartWarmDelay,
	}
}

// Start launches the polling goroutines. Blocks until ctx is cancelled.
func (p *RefreshPoller) Start(ctx context.Context) {
	log.Println("Refresh poller starting...")

	// Tier 1: coins, global, exchanges and categories every staleness window
	go p.pollLoop(ctx, "market-lists", p.pollInterval, func(ctx context.Context) error {
		return p.market.Refresh(ctx)
	})

	// Tier 2: the chart of one headline coin per window, round-robin
	go p.pollCharts(ctx)

	<-ctx.Done()
	log.Println("Refresh poller stopped")
}

func (p *RefreshPoller) pollLoop(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) {
	// Run immediately on start
	if err := fn(ctx); err != nil {
		log.Printf("poller %s initial run error: %v", name, err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				log.Printf("poller %s error: %v", name, err)
			}
		}
	}
}

func (p *RefreshPoller) pollCharts(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(p.warmDelay):
	}

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	coinIndex := 0
	p.warmChart(ctx, &coinIndex)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.warmChart(ctx, &coinIndex)
		}
	}
}

// warmChart loads the history of the next headline coin so a chart switch
// is served from cache.
func (p *RefreshPoller) warmChart(ctx context.Context, coinIndex *int) {
	ctx, span := p.tracer.Start(ctx, "refresh-poller.warm-chart")
	defer span.End()

	coins, _ := p.market.Coins(ctx)
	n := len(coins)
	if n > viewmodel.TopCardCount {
		n = viewmodel.TopCardCount
	}
	if n == 0 {
		return
	}

	coinID := coins[*coinIndex%n].ID
	*coinIndex++
	if _, status := p.market.MarketChart(ctx, coinID); status.IsError {
		log.Printf("chart warm-up error for %s: %v", coinID, status.Err)
	}
}
