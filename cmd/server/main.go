package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coin-dashboard/internal/bot"
	"coin-dashboard/internal/cache"
	"coin-dashboard/internal/config"
	"coin-dashboard/internal/handler"
	"coin-dashboard/internal/job"
	"coin-dashboard/internal/provider"
	"coin-dashboard/internal/service"
	"coin-dashboard/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "coin-dashboard/docs"
)

var (
	loadEnvFunc              = godotenv.Load
	loadConfigFunc           = config.Load
	initRedisFunc            = cache.InitRedis
	initTracerFunc           = tracing.InitTracer
	newCoinGeckoProviderFunc = func(tracer trace.Tracer, cfg *config.Config) service.MarketDataProvider {
		return provider.NewCoinGeckoProvider(tracer, provider.Endpoints{
			BaseURL:       cfg.CoinGeckoBaseURL,
			GlobalURL:     cfg.CoinGeckoGlobalURL,
			CategoriesURL: cfg.CoinGeckoCategoriesURL,
		})
	}
	newMarketServiceFunc   = service.NewMarketService
	newRefreshPollerFunc   = job.NewRefreshPoller
	startPollerFunc        = func(p *job.RefreshPoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc   = func(token string, market bot.MarketReader) { bot.StartTelegramBot(token, market) }
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Coin Dashboard API
// @version         1.0
// @description     Market cards, overview, chart series and coin table for the crypto dashboard.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional second cache tier
	initRedisFunc(ctx, cfg.RedisAddr())

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx, tracing.Options{
		Enabled:   cfg.TracingEnabled,
		Endpoint:  cfg.OTLPEndpoint,
		Component: "server",
	})
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Create provider, query cache and market service
	staleAfter := time.Duration(cfg.StaleSecs) * time.Second
	cgProvider := newCoinGeckoProviderFunc(tracer, cfg)
	queryCache := cache.NewQueryCache(tracer, staleAfter, cache.Client)
	marketService := newMarketServiceFunc(tracer, cgProvider, queryCache)

	// Start refresh poller (background goroutines, stopped by ctx cancel)
	poller := newRefreshPollerFunc(tracer, marketService, cfg.StaleSecs)
	startPollerFunc(poller, ctx)

	// Start Telegram bot
	startTelegramBotFunc(cfg.TelegramBotToken, marketService)

	// Create handlers and routes
	h := newHandlerFunc(tracer, marketService, cfg.TablePageSize)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("coin-dashboard"))
	r.Use(handler.CacheControl(cfg.StaleSecs))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		log.Printf("HTTP server listening on %s", srv.Addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
