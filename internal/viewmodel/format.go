// Package viewmodel maps validated market records into display-ready records.
// Every function here is pure: no I/O, no shared state, inputs are never mutated.
package viewmodel

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var enPrinter = message.NewPrinter(language.AmericanEnglish)

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return roundTo(v, 2)
}

func roundTo(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// FormatUSD renders v as US dollars with grouping and exactly two decimals, e.g. "$50,000.00".
func FormatUSD(v float64) string {
	r := Round2(v)
	s := enPrinter.Sprint(number.Decimal(math.Abs(r), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	if r < 0 {
		return "-$" + s
	}
	return "$" + s
}

// FormatNumber renders v with grouping and at most three fraction digits, e.g. "1,234.568".
func FormatNumber(v float64) string {
	return enPrinter.Sprint(number.Decimal(roundTo(v, 3), number.MaxFractionDigits(3)))
}

var compactUnits = []string{"", "K", "M", "B", "T"}

// FormatCompact renders v in short form with at most one fraction digit, e.g. "1.2T".
func FormatCompact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	unit := 0
	for v >= 1000 && unit < len(compactUnits)-1 {
		v /= 1000
		unit++
	}
	d := decimal.NewFromFloat(v).Round(1)
	if d.GreaterThanOrEqual(decimal.NewFromInt(1000)) && unit < len(compactUnits)-1 {
		d = d.Div(decimal.NewFromInt(1000)).Round(1)
		unit++
	}
	if d.IsZero() {
		sign = ""
	}
	return sign + d.String() + compactUnits[unit]
}

// FormatSignedPercent renders v with a fixed number of decimals and a leading
// "+" when v is zero or positive. The sign comes from the value, not from the
// formatted text.
func FormatSignedPercent(v float64, places int32) string {
	s := decimalFixed(v, places)
	if v >= 0 {
		return "+" + s
	}
	if s[0] != '-' {
		// rounded to zero, keep the sign visible
		s = "-" + s
	}
	return s
}

func decimalFixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// formatPlain renders v the way a JSON number prints: shortest form, no exponent.
func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
