package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dharmasatrya/flightmcp/internal/cache"
	"github.com/dharmasatrya/flightmcp/internal/config"
	"github.com/dharmasatrya/flightmcp/internal/handler"
	"github.com/dharmasatrya/flightmcp/internal/logger"
	"github.com/dharmasatrya/flightmcp/internal/metrics"
	"github.com/dharmasatrya/flightmcp/internal/providers"
	"github.com/dharmasatrya/flightmcp/internal/ratelimit"
	"github.com/dharmasatrya/flightmcp/internal/service"
	"github.com/dharmasatrya/flightmcp/internal/tools"
)

var version = "dev"

type options struct {
	configPath string
	envFile    string
	httpAddr   string

	cfg    *config.Config
	logger *zap.Logger
}

// app holds everything both transports share.
type app struct {
	registry   *prometheus.Registry
	cache      cache.Cache
	dispatcher *tools.Dispatcher
	server     *mcp.Server
}

func main() {
	opts := &options{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "flightmcp",
		Short:         "Flight search MCP server backed by SerpApi Google Flights",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath, opts.envFile)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = log
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStdio(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "path to a dotenv file (defaults to ./.env when present)")

	root.AddCommand(&cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdin/stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStdio(cmd.Context(), opts)
		},
	})

	httpCmd := &cobra.Command{
		Use:   "http",
		Short: "Serve MCP, the command API and metrics over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHTTP(cmd.Context(), opts)
		},
	}
	httpCmd.Flags().StringVar(&opts.httpAddr, "addr", "", "listen address (overrides HTTP_ADDR)")
	root.AddCommand(httpCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "flightmcp:", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewPrometheusMetrics(registry)

	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	})

	breaker := providers.DefaultBreakerConfig()
	breaker.Window = cfg.Breaker.Window
	breaker.Cooldown = cfg.Breaker.Cooldown
	breaker.FailureRatio = cfg.Breaker.FailureRatio
	breaker.MinRequests = cfg.Breaker.MinRequests

	provider := providers.NewSerpAPI(providers.SerpAPIConfig{
		BaseURL: cfg.SerpAPI.BaseURL,
		APIKey:  cfg.SerpAPI.APIKey,
		Timeout: cfg.SerpAPI.RequestTimeout,
		Breaker: breaker,
	}, limiter, rec, log)

	flightCache, err := cache.New(cache.Config{
		Backend:       cfg.Cache.Backend,
		TTL:           cfg.Cache.TTL,
		SweepInterval: cfg.Cache.SweepInterval,
		Redis: cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	log.Info("cache ready", zap.String("backend", cfg.Cache.Backend), zap.Duration("ttl", cfg.Cache.TTL))

	svc := service.New(provider, flightCache, rec, log, service.Config{IncludeRawData: cfg.App.IncludeRawData})

	dispatcher, err := tools.NewDispatcher(svc, rec, log)
	if err != nil {
		_ = flightCache.Close()
		return nil, fmt.Errorf("init tools: %w", err)
	}

	return &app{
		registry:   registry,
		cache:      flightCache,
		dispatcher: dispatcher,
		server:     tools.NewServer(dispatcher, version),
	}, nil
}

func runStdio(parent context.Context, opts *options) error {
	ctx, cancel := signalAwareContext(parent)
	defer cancel()

	a, err := newApp(opts.cfg, opts.logger)
	if err != nil {
		return err
	}
	defer a.cache.Close()

	opts.logger.Info("serving MCP over stdio", zap.String("version", version))
	if err := tools.RunStdio(ctx, a.server); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func runHTTP(parent context.Context, opts *options) error {
	ctx, cancel := signalAwareContext(parent)
	defer cancel()

	a, err := newApp(opts.cfg, opts.logger)
	if err != nil {
		return err
	}
	defer a.cache.Close()

	addr := opts.httpAddr
	if addr == "" {
		addr = opts.cfg.App.HTTPAddr
	}

	e := handler.NewRouter(handler.RouterConfig{
		Dispatcher: a.dispatcher,
		MCP:        tools.NewHTTPHandler(a.server),
		Gatherer:   a.registry,
		Logger:     opts.logger,
	})

	errCh := make(chan error, 1)
	go func() {
		opts.logger.Info("starting HTTP server", zap.String("addr", addr), zap.String("version", version))
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	opts.logger.Info("shutting down HTTP server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return e.Shutdown(shutdownCtx)
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
