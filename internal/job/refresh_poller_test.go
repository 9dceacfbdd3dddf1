package job

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/service"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

func TestNewRefreshPollerInterval(t *testing.T) {
	poller := NewRefreshPoller(testTracer, &stubMarket{}, 1000)
	if poller.pollInterval != 1000*time.Second {
		t.Fatalf("expected 1000s interval, got %v", poller.pollInterval)
	}
}

func TestRefreshPollerStart(t *testing.T) {
	t.Parallel()

	stub := &stubMarket{coins: []domain.CoinRecord{{ID: "bitcoin"}}}
	poller := NewRefreshPoller(testTracer, stub, 1)
	poller.warmDelay = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	go poller.Start(ctx)

	eventually(t, func() bool { return stub.refreshCount() > 0 && len(stub.chartIDs()) > 0 })
	cancel()
}

func TestRefreshPollerKeepsRunningAfterError(t *testing.T) {
	t.Parallel()

	stub := &stubMarket{refreshErr: errors.New("upstream down")}
	poller := NewRefreshPoller(testTracer, stub, 1)
	poller.pollInterval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.pollLoop(ctx, "test", poller.pollInterval, stub.Refresh)

	eventually(t, func() bool { return stub.refreshCount() >= 3 })
}

func TestWarmChartRoundRobin(t *testing.T) {
	stub := &stubMarket{coins: []domain.CoinRecord{{ID: "bitcoin"}, {ID: "ethereum"}, {ID: "tether"}, {ID: "solana"}}}
	poller := NewRefreshPoller(testTracer, stub, 1)

	idx := 0
	for i := 0; i < 4; i++ {
		poller.warmChart(context.Background(), &idx)
	}

	got := stub.chartIDs()
	want := []string{"bitcoin", "ethereum", "tether", "bitcoin"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected warm order: %v", got)
		}
	}
}

func TestWarmChartWithoutCoins(t *testing.T) {
	stub := &stubMarket{}
	poller := NewRefreshPoller(testTracer, stub, 1)

	idx := 0
	poller.warmChart(context.Background(), &idx)
	if len(stub.chartIDs()) != 0 || idx != 0 {
		t.Fatalf("expected no chart request, got %v", stub.chartIDs())
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met")
}

type stubMarket struct {
	mu         sync.Mutex
	coins      []domain.CoinRecord
	refreshErr error
	refreshes  int
	charts     []string
}

func (s *stubMarket) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshes++
	return s.refreshErr
}

func (s *stubMarket) Coins(ctx context.Context) ([]domain.CoinRecord, service.Status) {
	return s.coins, service.Status{UpdatedAt: time.Now()}
}

func (s *stubMarket) MarketChart(ctx context.Context, coinID string) ([]domain.PricePoint, service.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charts = append(s.charts, coinID)
	return nil, service.Status{}
}

func (s *stubMarket) refreshCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshes
}

func (s *stubMarket) chartIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.charts...)
}
