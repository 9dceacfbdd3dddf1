package tui

import (
	"coin-dashboard/internal/viewmodel"

	"github.com/guptarohit/asciigraph"
)

const (
	graphHeight     = 8
	graphLabelWidth = 14
	graphMinWidth   = 10
)

// priceGraph plots the series as a line graph with price labels on the left.
// width is the full panel width, labels included.
func priceGraph(points []viewmodel.ChartPoint, width int) string {
	if len(points) == 0 {
		return ""
	}
	prices := make([]float64, len(points))
	for i, p := range points {
		prices[i] = p.Price
	}

	plotWidth := width - graphLabelWidth
	if plotWidth < graphMinWidth {
		plotWidth = graphMinWidth
	}
	opts := []asciigraph.Option{
		asciigraph.Height(graphHeight),
		asciigraph.Precision(2),
	}
	if len(prices) > 1 {
		opts = append(opts, asciigraph.Width(plotWidth))
	}
	return asciigraph.Plot(prices, opts...)
}
