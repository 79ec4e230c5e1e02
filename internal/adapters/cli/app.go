package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/colonial-go/internal/adapters/api"
	"github.com/andrescamacho/colonial-go/internal/adapters/cache"
	"github.com/andrescamacho/colonial-go/internal/adapters/metrics"
	"github.com/andrescamacho/colonial-go/internal/adapters/persistence"
	"github.com/andrescamacho/colonial-go/internal/adapters/providers"
	"github.com/andrescamacho/colonial-go/internal/application/markets"
	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/application/setup"
	"github.com/andrescamacho/colonial-go/internal/domain/commodity"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/prefs"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/config"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/database"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
)

// App is the wired application shared by every command
type App struct {
	Config   *config.Config
	Logger   logging.Logger
	DB       *gorm.DB
	Prefs    *prefs.Preferences
	Projects *api.ProjectAPIRepository
	Astro    *providers.AstroClient
	Bodies   *providers.BodiesClient
	Search   *markets.SearchService
	Mediator mediator.Mediator

	closers []func() error
}

// NewApp loads configuration and wires storage, backend clients and the
// mediator. Close releases everything it opened.
func NewApp(ctx context.Context, configPath string, verbose bool) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := cfg.Logging.ToLogging()
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	app := &App{Config: cfg, Logger: logger}
	app.closers = append(app.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	var (
		apiMetrics     *metrics.APIMetricsCollector
		commandMetrics *metrics.CommandMetricsCollector
	)
	if cfg.Metrics.Enabled {
		if apiMetrics, commandMetrics, err = initMetrics(); err != nil {
			return nil, err
		}
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.closers = append(app.closers, func() error { return database.Close(db) })

	app.Prefs = prefs.New(persistence.NewGormPreferenceStore(db, nil))
	snapshots := persistence.NewGormProjectSnapshotRepository(db, nil)

	backend := api.NewClient(apiOptions(cfg, apiMetrics))
	backend.Breaker().OnStateChange(func(from, to api.CircuitState) {
		logger.Warn("backend circuit breaker changed state",
			logging.String("from", from.String()), logging.String("to", to.String()))
		if apiMetrics != nil {
			apiMetrics.RecordBreakerState(from.String(), to.String())
		}
	})
	app.Projects = api.NewProjectRepository(backend)

	app.Astro = providers.NewAstroClient(providerClient(cfg, cfg.Providers.AstroURL, apiMetrics))
	app.Bodies = providers.NewBodiesClient(providerClient(cfg, cfg.Providers.BodiesURL, apiMetrics))
	poi := providers.NewPOIClient(providerClient(cfg, cfg.Providers.POIURL, apiMetrics), nil)

	var backendSearch market.Searcher = app.Projects
	if cfg.Cache.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			// the memo still works without redis
			logger.Warn("market search cache disabled", logging.Err(err))
		} else {
			backendSearch = cache.NewMarketSearchCache(app.Projects, rdb, cfg.Cache.TTL, cfg.Cache.Prefix)
			app.closers = append(app.closers, rdb.Close)
		}
	}
	app.Search = markets.NewSearchService(map[string]market.Searcher{
		markets.SourceBackend: backendSearch,
		markets.SourcePOI:     poi,
	}, app.Prefs, nil)

	taxonomy := commodity.Default()
	taxonomy.OnUnknown(func(id string) {
		logger.Warn("unknown commodity", logging.String("commodity", id))
	})

	app.Mediator = mediator.NewMediator()
	if commandMetrics != nil {
		app.Mediator.Use(metrics.PrometheusMiddleware(commandMetrics))
	}
	registry := setup.NewHandlerRegistry(app.Projects, app.Projects, snapshots, app.Search, app.Prefs, taxonomy, nil)
	if err := registry.RegisterAll(app.Mediator); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// Close releases resources in reverse order of acquisition
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func initMetrics() (*metrics.APIMetricsCollector, *metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry()

	apiMetrics := metrics.NewAPIMetricsCollector()
	commandMetrics := metrics.NewCommandMetricsCollector()
	marketMetrics := metrics.NewMarketMetricsCollector()
	liveMetrics := metrics.NewLiveMetricsCollector()
	for _, c := range []interface{ Register() error }{apiMetrics, commandMetrics, marketMetrics, liveMetrics} {
		if err := c.Register(); err != nil {
			return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	metrics.SetGlobalMarketCollector(marketMetrics)
	metrics.SetGlobalLiveCollector(liveMetrics)
	return apiMetrics, commandMetrics, nil
}

func apiOptions(cfg *config.Config, recorder *metrics.APIMetricsCollector) api.Options {
	retries := cfg.API.Retry.MaxAttempts
	if retries == 0 {
		retries = -1 // zero means the client default
	}
	opts := api.Options{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: float64(cfg.API.RateLimit.Requests),
		Burst:             cfg.API.RateLimit.Burst,
		MaxRetries:        retries,
		BackoffBase:       cfg.API.Retry.BackoffBase,
		BreakerFailures:   cfg.API.Breaker.MaxFailures,
		BreakerTimeout:    cfg.API.Breaker.Timeout,
	}
	if recorder != nil {
		opts.Recorder = recorder
	}
	return opts
}

func providerClient(cfg *config.Config, baseURL string, recorder *metrics.APIMetricsCollector) *api.Client {
	opts := api.Options{
		BaseURL:           baseURL,
		Timeout:           cfg.Providers.Timeout,
		RequestsPerSecond: float64(cfg.Providers.RateLimit),
		Burst:             cfg.Providers.RateLimit,
	}
	if recorder != nil {
		opts.Recorder = recorder
	}
	return api.NewClient(opts)
}
