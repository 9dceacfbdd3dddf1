package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"coin-dashboard/internal/domain"
	"coin-dashboard/internal/service"
	"coin-dashboard/internal/viewmodel"

	tele "gopkg.in/telebot.v3"
)

// MarketReader is the subset of service.MarketService the bot answers from.
type MarketReader interface {
	Coins(ctx context.Context) ([]domain.CoinRecord, service.Status)
	Global(ctx context.Context) (domain.GlobalMarketSnapshot, service.Status)
	MarketChart(ctx context.Context, coinID string) ([]domain.PricePoint, service.Status)
}

const requestTimeout = 15 * time.Second

func StartTelegramBot(token string, market MarketReader) {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/top", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		coins, status := market.Coins(ctx)
		return c.Send(TopMessage(coins, status))
	})

	b.Handle("/price", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /price bitcoin")
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		coins, status := market.Coins(ctx)
		return c.Send(PriceMessage(coins, status, args[0]))
	})

	b.Handle("/global", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		snapshot, status := market.Global(ctx)
		return c.Send(GlobalMessage(snapshot, status))
	})

	b.Handle("/search", func(c tele.Context) error {
		text := strings.Join(c.Args(), " ")
		if strings.TrimSpace(text) == "" {
			return c.Send("Usage: /search eth")
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		coins, status := market.Coins(ctx)
		return c.Send(SearchMessage(coins, status, text))
	})

	b.Handle("/chart", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /chart bitcoin [7D|15D|30D]")
		}
		window := domain.Window7D
		if len(args) > 1 {
			w, err := domain.ParseWindow(args[1])
			if err != nil {
				return c.Send(err.Error())
			}
			window = w
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		id := strings.ToLower(args[0])
		points, status := market.MarketChart(ctx, id)
		return c.Send(ChartMessage(id, viewmodel.ChartSeries(points, window), status, window))
	})

	log.Println("Telegram bot started")
	go b.Start()
}

// unavailable is the reply when a resource has never loaded.
func unavailable(resource string, status service.Status) (string, bool) {
	if status.HasData() {
		return "", false
	}
	if status.Err != nil {
		return fmt.Sprintf("Failed to load %s: %v", resource, status.Err), true
	}
	return fmt.Sprintf("No %s data yet, try again shortly.", resource), true
}

func TopMessage(coins []domain.CoinRecord, status service.Status) string {
	if msg, ok := unavailable(domain.ResourceCoins, status); ok {
		return msg
	}
	var b strings.Builder
	b.WriteString("Top coins\n")
	for _, row := range viewmodel.MarketSummary(coins, viewmodel.SummaryRowCount) {
		fmt.Fprintf(&b, "#%d %s %s (%s) vol %s\n", row.MarketRank, row.Name, row.Price, row.Change, row.Volume)
	}
	return strings.TrimRight(b.String(), "\n")
}

// PriceMessage looks a coin up by id or symbol.
func PriceMessage(coins []domain.CoinRecord, status service.Status, query string) string {
	if msg, ok := unavailable(domain.ResourceCoins, status); ok {
		return msg
	}
	q := strings.ToLower(strings.TrimSpace(query))
	for _, coin := range coins {
		if coin.ID != q && strings.ToLower(coin.Symbol) != q {
			continue
		}
		return fmt.Sprintf(
			"%s (%s)\nPrice: %s\n24h Change: %s%%\n24h High: %s\n24h Low: %s\n24h Volume: $%s",
			coin.Name, strings.ToUpper(coin.Symbol),
			viewmodel.FormatUSD(coin.CurrentPrice),
			viewmodel.FormatSignedPercent(coin.PriceChangePercentage24h, 2),
			viewmodel.FormatUSD(coin.High24h),
			viewmodel.FormatUSD(coin.Low24h),
			viewmodel.FormatCompact(coin.TotalVolume),
		)
	}
	return fmt.Sprintf("Unknown coin: %s", query)
}

func GlobalMessage(snapshot domain.GlobalMarketSnapshot, status service.Status) string {
	if msg, ok := unavailable(domain.ResourceGlobal, status); ok {
		return msg
	}
	o := viewmodel.BuildOverview(snapshot)
	return fmt.Sprintf(
		"Global market\nActive coins: %s\nMarket cap: $%s\n24h Volume: $%s\nBTC dominance: %.2f%%\nMarket cap 24h: %s%%",
		viewmodel.FormatNumber(float64(o.ActiveCryptocurrencies)),
		viewmodel.FormatCompact(o.TotalMarketCap),
		viewmodel.FormatCompact(o.TotalVolume),
		o.BitcoinDominance,
		viewmodel.FormatSignedPercent(o.MarketCapChange24h, 2),
	)
}

func SearchMessage(coins []domain.CoinRecord, status service.Status, text string) string {
	if msg, ok := unavailable(domain.ResourceCoins, status); ok {
		return msg
	}
	res := viewmodel.LiveSearch(coins, text, viewmodel.LiveSearchLimit)
	if len(res.Hits) == 0 {
		return "No coins found"
	}
	lines := make([]string, 0, len(res.Hits)+1)
	for _, hit := range res.Hits {
		lines = append(lines, fmt.Sprintf("%s (%s) %s", hit.Name, hit.ID, hit.Price))
	}
	if label := res.MoreLabel(); label != "" {
		lines = append(lines, label)
	}
	return strings.Join(lines, "\n")
}

func ChartMessage(coinID string, series []viewmodel.ChartPoint, status service.Status, window domain.Window) string {
	if len(series) == 0 {
		if status.IsError {
			return fmt.Sprintf("Failed to load chart for %s", coinID)
		}
		return fmt.Sprintf("No chart data for %s", coinID)
	}
	first, last := series[0], series[len(series)-1]
	change := 0.0
	if first.Price != 0 {
		change = (last.Price - first.Price) / first.Price * 100
	}
	return fmt.Sprintf(
		"%s %s\n%s: %s\n%s: %s\nChange: %s%%",
		coinID, window,
		first.Date, viewmodel.FormatUSD(first.Price),
		last.Date, viewmodel.FormatUSD(last.Price),
		viewmodel.FormatSignedPercent(change, 2),
	)
}
