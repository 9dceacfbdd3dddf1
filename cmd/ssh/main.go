package main

import (
	"context"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"coin-dashboard/internal/cache"
	"coin-dashboard/internal/config"
	"coin-dashboard/internal/job"
	"coin-dashboard/internal/provider"
	"coin-dashboard/internal/service"
	"coin-dashboard/internal/tui"
	"coin-dashboard/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
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
	newRefreshPollerFunc = job.NewRefreshPoller
	startPollerFunc      = func(p *job.RefreshPoller, ctx context.Context) { go p.Start(ctx) }
	newWishServerFunc    = wish.NewServer
	setupSignalNotify    = ossignal.Notify
	waitForSignalFunc    = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initRedisFunc(ctx, cfg.RedisAddr())

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx, tracing.Options{
		Enabled:   cfg.TracingEnabled,
		Endpoint:  cfg.OTLPEndpoint,
		Component: "ssh",
	})
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// One market service is shared by every session; each session gets its
	// own view state.
	staleAfter := time.Duration(cfg.StaleSecs) * time.Second
	cgProvider := newCoinGeckoProviderFunc(tracer, cfg)
	queryCache := cache.NewQueryCache(tracer, staleAfter, cache.Client)
	marketService := newMarketServiceFunc(tracer, cgProvider, queryCache)

	poller := newRefreshPollerFunc(tracer, marketService, cfg.StaleSecs)
	startPollerFunc(poller, ctx)

	// Build Wish SSH server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				svc := tui.Services{
					Market:     marketService,
					StaleAfter: staleAfter,
					PageSize:   cfg.TablePageSize,
					Username:   s.User(),
				}

				model := tui.NewAppModel(svc)
				model.SetContext(s.Context())
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)

				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}
