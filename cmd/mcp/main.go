package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"coin-dashboard/internal/cache"
	"coin-dashboard/internal/config"
	"coin-dashboard/internal/mcptool"
	"coin-dashboard/internal/provider"
	"coin-dashboard/internal/service"
	"coin-dashboard/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace"
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
	newMarketServiceFunc = service.NewMarketService
	runStdioFunc         = func(ctx context.Context, server *mcp.Server) error {
		return server.Run(ctx, &mcp.StdioTransport{})
	}
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initRedisFunc(ctx, cfg.RedisAddr())

	tp, tracer, err := initTracerFunc(ctx, tracing.Options{
		Enabled:   cfg.TracingEnabled,
		Endpoint:  cfg.OTLPEndpoint,
		Component: "mcp",
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

	server := mcptool.NewServer(mcptool.NewTools(tracer, marketService))

	if cfg.MCPTransport != "http" {
		log.Println("MCP server running on stdio")
		if err := runStdioFunc(ctx, server); err != nil {
			log.Printf("MCP stdio server stopped: %v", err)
		}
		return
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.MCPHTTPBind, cfg.MCPHTTPPort),
		Handler: handler,
	}

	go func() {
		log.Printf("MCP HTTP server listening on %s", srv.Addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Printf("MCP HTTP server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down MCP server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Printf("MCP HTTP server shutdown error: %v", err)
	}

	log.Println("MCP server exited")
}
