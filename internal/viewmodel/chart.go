package viewmodel

import (
	"coin-dashboard/internal/domain"
)

const chartDateLayout = "2006-01-02"

type ChartPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// ChartSeries formats a fetched history and keeps the trailing window.Days()
// points in their original order. An unknown window yields no points.
func ChartSeries(points []domain.PricePoint, window domain.Window) []ChartPoint {
	k := window.Days()
	if k <= 0 {
		return []ChartPoint{}
	}
	if len(points) > k {
		points = points[len(points)-k:]
	}

	series := make([]ChartPoint, 0, len(points))
	for _, p := range points {
		series = append(series, ChartPoint{
			Date:  p.Timestamp.UTC().Format(chartDateLayout),
			Price: Round2(p.Price),
		})
	}
	return series
}
