package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
	"github.com/lmittmann/tint"

	"github.com/freshmandiapp/freshmandi/internal/address"
	"github.com/freshmandiapp/freshmandi/internal/auth"
	"github.com/freshmandiapp/freshmandi/internal/cart"
	"github.com/freshmandiapp/freshmandi/internal/config"
	"github.com/freshmandiapp/freshmandi/internal/httpclient"
	"github.com/freshmandiapp/freshmandi/internal/kv"
	"github.com/freshmandiapp/freshmandi/internal/logging"
	"github.com/freshmandiapp/freshmandi/internal/observability"
	"github.com/freshmandiapp/freshmandi/internal/orders"
	"github.com/freshmandiapp/freshmandi/internal/support"
)

// App holds the wired client core: the device-local stores and the typed
// API clients every screen works against.
type App struct {
	Config         *config.Config
	Logger         *slog.Logger
	KV             kv.Provider
	SessionManager *auth.SessionManager
	Auth           *auth.Client
	Addresses      *address.Store
	Carts          *cart.Store
	Checkout       *cart.Checkout
	Orders         *orders.Client
	Support        *support.Client

	sentryEnabled bool
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	sentryEnabled := false
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			EnableLogs:       true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sentry: %w", err)
		}
		sentryEnabled = true
	}

	logger := newLogger(cfg, sentryEnabled)

	kvProvider, err := kv.NewProvider(kv.Config{
		Provider:              cfg.KVProvider,
		RedisConnectionString: cfg.RedisConnectionString,
		FilePath:              cfg.KVFilePath,
	})
	if err != nil {
		flushSentry(sentryEnabled)
		return nil, fmt.Errorf("failed to initialize kv provider: %w", err)
	}

	var transport http.RoundTripper
	if sentryEnabled {
		transport = observability.WrapRoundTripper(http.DefaultTransport, cfg.APIBaseURL)
	}
	apiClientCfg := httpclient.DefaultConfig("freshmandi-api")
	apiClientCfg.Timeout = cfg.RequestTimeout
	apiClientCfg.Transport = transport
	apiClient := httpclient.New(apiClientCfg, logger.With("component", "http_client"))

	authClient := auth.NewClient(cfg.APIBaseURL, apiClient)
	ordersClient := orders.NewClient(cfg.APIBaseURL, apiClient)
	supportClient := support.NewClient(cfg.APIBaseURL, apiClient)

	sessionManager := auth.NewSessionManager(kvProvider, logger.With("component", "session"))
	addresses := address.NewStore(kvProvider, logger.With("component", "address_store"))
	carts := cart.NewStore(kvProvider, logger.With("component", "cart_store"))
	checkout := cart.NewCheckout(carts, addresses, ordersClient, logger.With("component", "checkout"))

	return &App{
		Config:         cfg,
		Logger:         logger,
		KV:             kvProvider,
		SessionManager: sessionManager,
		Auth:           authClient,
		Addresses:      addresses,
		Carts:          carts,
		Checkout:       checkout,
		Orders:         ordersClient,
		Support:        supportClient,
		sentryEnabled:  sentryEnabled,
	}, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.KV != nil {
		closeKVProvider(a.Logger, a.KV)
	}
	flushSentry(a.sentryEnabled)
}

// UserKey resolves the active data partition for the current invocation.
func (a *App) UserKey(ctx context.Context) string {
	return a.SessionManager.UserKey(ctx)
}

func newLogger(cfg *config.Config, sentryEnabled bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var console slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.LogFormat)) {
	case "json":
		console = slog.NewJSONHandler(os.Stderr, opts)
	default:
		console = tint.NewHandler(os.Stderr, &tint.Options{
			Level: cfg.LogLevel,
		})
	}

	if !sentryEnabled {
		return slog.New(console)
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(logging.Fanout(console, sentryHandler))
}

func closeKVProvider(logger *slog.Logger, provider kv.Provider) {
	if err := provider.Close(); err != nil && logger != nil {
		logger.Warn("failed to close kv provider", "error", err)
	}
}

func flushSentry(enabled bool) {
	if enabled {
		sentry.Flush(2 * time.Second)
	}
}
