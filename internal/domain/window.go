package domain

import (
	"fmt"
	"strings"
)

// Window is the trailing span of daily points shown on the price chart.
type Window string

const (
	Window7D  Window = "7D"
	Window15D Window = "15D"
	Window30D Window = "30D"
)

// SupportedWindows lists the chart windows in toggle order.
var SupportedWindows = []Window{Window7D, Window15D, Window30D}

// ChartLookbackDays is how many daily points are fetched for every coin.
const ChartLookbackDays = 30

// Days returns the number of trailing points kept for the window.
func (w Window) Days() int {
	switch w {
	case Window7D:
		return 7
	case Window15D:
		return 15
	case Window30D:
		return 30
	default:
		return 0
	}
}

func (w Window) IsValid() bool {
	return w.Days() > 0
}

// ParseWindow accepts "7D", "15D" or "30D" (case-insensitive).
func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToUpper(strings.TrimSpace(s)))
	if !w.IsValid() {
		return "", fmt.Errorf("unsupported window: %q", s)
	}
	return w, nil
}
