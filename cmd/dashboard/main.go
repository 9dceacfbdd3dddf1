package main

import (
	"context"
	"log"
	"os"
	"time"

	"coin-dashboard/internal/cache"
	"coin-dashboard/internal/config"
	"coin-dashboard/internal/provider"
	"coin-dashboard/internal/service"
	"coin-dashboard/internal/tui"
	"coin-dashboard/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc              = godotenv.Load
	loadConfigFunc           = config.Load
	initRedisFunc            = cache.InitRedis
	initTracerFunc           = tracing.InitTracer
	logToFileFunc            = tea.LogToFile
	newCoinGeckoProviderFunc = func(tracer trace.Tracer, cfg *config.Config) service.MarketDataProvider {
		return provider.NewCoinGeckoProvider(tracer, provider.Endpoints{
			BaseURL:       cfg.CoinGeckoBaseURL,
			GlobalURL:     cfg.CoinGeckoGlobalURL,
			CategoriesURL: cfg.CoinGeckoCategoriesURL,
		})
	}
	newMarketServiceFunc = service.NewMarketService
	runProgramFunc       = func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}
)

func main() {
	// The terminal belongs to the UI; logs go to a file.
	if f, err := logToFileFunc("dashboard.log", "dashboard"); err == nil {
		defer f.Close()
	}

	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initRedisFunc(ctx, cfg.RedisAddr())

	tp, tracer, err := initTracerFunc(ctx, tracing.Options{
		Enabled:   cfg.TracingEnabled,
		Endpoint:  cfg.OTLPEndpoint,
		Component: "dashboard",
	})
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	staleAfter := time.Duration(cfg.StaleSecs) * time.Second
	cgProvider := newCoinGeckoProviderFunc(tracer, cfg)
	queryCache := cache.NewQueryCache(tracer, staleAfter, cache.Client)
	marketService := newMarketServiceFunc(tracer, cgProvider, queryCache)

	model := tui.NewAppModel(tui.Services{
		Market:     marketService,
		StaleAfter: staleAfter,
		PageSize:   cfg.TablePageSize,
		Export:     tui.FileExporter(cfg.ExportDir),
		Username:   os.Getenv("USER"),
	})
	model.SetContext(ctx)

	if err := runProgramFunc(model); err != nil {
		log.Printf("dashboard exited with error: %v", err)
	}
}
