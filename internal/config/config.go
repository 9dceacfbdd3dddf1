package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const defaultCoinGeckoBaseURL = "https://api.coingecko.com/api/v3"

type Config struct {
	CoinGeckoBaseURL       string
	CoinGeckoGlobalURL     string
	CoinGeckoCategoriesURL string
	StaleSecs              int

	HTTPPort       int
	SSHPort        int
	SSHHostKeyPath string
	TablePageSize  int
	ExportDir      string

	RedisEnabled bool
	RedisURL     string

	TelegramBotToken string

	MCPTransport string
	MCPHTTPBind  string
	MCPHTTPPort  int

	TracingEnabled bool
	OTLPEndpoint   string
}

func Load() *Config {
	cfg := &Config{
		CoinGeckoGlobalURL:     strings.TrimSpace(os.Getenv("COINGECKO_GLOBAL_API")),
		CoinGeckoCategoriesURL: strings.TrimSpace(os.Getenv("COINGECKO_CATEGORIES_API")),
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		OTLPEndpoint:           strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
	}

	cfg.CoinGeckoBaseURL = strings.TrimSpace(os.Getenv("COINGECKO_BASE_URL"))
	if cfg.CoinGeckoBaseURL == "" {
		cfg.CoinGeckoBaseURL = defaultCoinGeckoBaseURL
	}
	if cfg.CoinGeckoGlobalURL == "" {
		log.Println("Warning: COINGECKO_GLOBAL_API not set, using base URL /global")
	}
	if cfg.CoinGeckoCategoriesURL == "" {
		log.Println("Warning: COINGECKO_CATEGORIES_API not set, using base URL /coins/categories")
	}

	cfg.StaleSecs = 1000
	if v := strings.TrimSpace(os.Getenv("STALE_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StaleSecs = n
		}
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < 65536 {
			cfg.HTTPPort = n
		}
	}

	cfg.SSHPort = 2222
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < 65536 {
			cfg.SSHPort = n
		}
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/id_ed25519"
	}

	cfg.TablePageSize = 8
	if v := strings.TrimSpace(os.Getenv("TABLE_PAGE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			cfg.TablePageSize = n
		}
	}

	cfg.ExportDir = strings.TrimSpace(os.Getenv("EXPORT_DIR"))
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}

	cfg.RedisEnabled = strings.EqualFold(strings.TrimSpace(os.Getenv("REDIS_ENABLED")), "true")
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	if cfg.RedisEnabled && cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, bot will be disabled")
	}

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Printf("Warning: unsupported MCP_TRANSPORT=%q, defaulting to stdio", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}

	cfg.MCPHTTPBind = strings.TrimSpace(os.Getenv("MCP_HTTP_BIND"))
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}

	cfg.MCPHTTPPort = 8090
	if v := strings.TrimSpace(os.Getenv("MCP_HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPHTTPPort = n
		}
	}

	cfg.TracingEnabled = !strings.EqualFold(strings.TrimSpace(os.Getenv("TRACING_ENABLED")), "false")

	return cfg
}

// RedisAddr is the address handed to cache.InitRedis, empty when Redis is off.
func (c *Config) RedisAddr() string {
	if !c.RedisEnabled {
		return ""
	}
	return c.RedisURL
}
