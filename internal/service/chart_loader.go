package service

import (
	"sync"

	"coin-dashboard/internal/domain"
)

// ChartToken identifies one chart request. Only the newest token may store a result.
type ChartToken struct {
	CoinID     string
	generation uint64
}

type ChartState struct {
	CoinID string
	Points []domain.PricePoint
	Status Status
}

// ChartLoader holds the chart of the currently selected coin for one session.
// A response for a superseded request is dropped instead of overwriting the
// state of a newer one.
type ChartLoader struct {
	mu         sync.Mutex
	generation uint64
	state      ChartState
}

func NewChartLoader() *ChartLoader {
	return &ChartLoader{state: ChartState{Points: []domain.PricePoint{}}}
}

// Begin starts a request for coinID and marks the chart as loading.
func (l *ChartLoader) Begin(coinID string) ChartToken {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	if l.state.CoinID != coinID {
		l.state = ChartState{CoinID: coinID, Points: []domain.PricePoint{}}
	}
	l.state.Status.Loading = true
	return ChartToken{CoinID: coinID, generation: l.generation}
}

// Complete stores the result of the request identified by token and reports
// whether it was kept. A failed status with no points keeps the points already held.
func (l *ChartLoader) Complete(token ChartToken, points []domain.PricePoint, status Status) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if token.generation != l.generation {
		return false
	}
	status.Loading = false
	if !status.IsError || len(points) > 0 {
		l.state.Points = points
	}
	l.state.Status = status
	return true
}

func (l *ChartLoader) Current() ChartState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}
