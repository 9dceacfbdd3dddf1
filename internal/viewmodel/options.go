package viewmodel

import (
	"strconv"

	"coin-dashboard/internal/domain"
)

// Option is one entry of the coin picker above the chart.
type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Price  string `json:"price"`
	Change string `json:"change"`
	// Direction is decided from the numeric change, never from Change.
	Direction string `json:"direction"`
}

func ComboboxOptions(coins []domain.CoinRecord) []Option {
	options := make([]Option, 0, len(coins))
	for _, coin := range coins {
		options = append(options, Option{
			Value:     coin.ID,
			Label:     coin.Name,
			Icon:      coin.Image,
			Price:     formatPlain(coin.CurrentPrice),
			Change:    FormatSignedPercent(coin.PriceChangePercentage24h, 4),
			Direction: direction(coin.PriceChangePercentage24h),
		})
	}
	return options
}

// DefaultSelection keeps current when set, otherwise picks the first option.
func DefaultSelection(options []Option, current string) string {
	if current != "" || len(options) == 0 {
		return current
	}
	return options[0].Value
}

func FindOption(options []Option, value string) (Option, bool) {
	for _, opt := range options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// SelectedPrice is the USD price of the selected option, or "" when nothing matches.
func SelectedPrice(options []Option, value string) string {
	opt, ok := FindOption(options, value)
	if !ok {
		return ""
	}
	price, err := strconv.ParseFloat(opt.Price, 64)
	if err != nil {
		return FormatUSD(0)
	}
	return FormatUSD(price)
}
