// Package app assembles the atlas service from configuration. It is the
// composition root shared by cmd/apiserver and the cbtalk CLI.
package app

import (
	"context"
	stdhttp "net/http"

	"github.com/turtacn/CentralBankTalk/internal/application/atlas"
	"github.com/turtacn/CentralBankTalk/internal/config"
	"github.com/turtacn/CentralBankTalk/internal/domain/choropleth"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/database/redis"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/datasource"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/storage/minio"
	httpserver "github.com/turtacn/CentralBankTalk/internal/interfaces/http"
	"github.com/turtacn/CentralBankTalk/internal/interfaces/http/handlers"
	"github.com/turtacn/CentralBankTalk/internal/interfaces/http/middleware"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// App holds every long-lived dependency of one process.
type App struct {
	Config     *config.Config
	Logger     logging.Logger
	Collector  prometheus.MetricsCollector
	Metrics    *prometheus.AppMetrics
	Repository *atlas.Repository
	Service    atlas.Service

	checkers []handlers.HealthChecker
	closers  []func() error
}

type Option func(*options)

type options struct {
	redisClient *redis.Client
	source      datasource.Source
}

// WithRedisClient injects an already-connected cache client instead of
// dialing cache.redis.addr.
func WithRedisClient(c *redis.Client) Option {
	return func(o *options) { o.redisClient = c }
}

// WithSource overrides the dataset source selected by datasets.source.
func WithSource(s datasource.Source) Option {
	return func(o *options) { o.source = s }
}

// New wires the dataset source, the optional Redis tier, the repository and
// the service. A Redis outage at startup is logged and the cache skipped;
// every other failure is returned.
func New(cfg *config.Config, logger logging.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeValidation, "config is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{Config: cfg, Logger: logger}

	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create metrics collector")
		}
		a.Collector = collector
		a.Metrics = prometheus.NewAppMetrics(collector)
	}

	src := o.source
	if src == nil {
		var err error
		if src, err = a.newSource(); err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	repoOpts := []atlas.RepositoryOption{
		atlas.WithPaths(cfg.Datasets.Paths),
		atlas.WithExcludeISOA2(cfg.Datasets.ExcludeISOA2...),
		atlas.WithFetchTimeout(cfg.Datasets.Fetch.Timeout),
		atlas.WithRepositoryLogger(logger),
		atlas.WithRepositoryMetrics(a.Metrics),
	}
	if cache := a.newCache(o.redisClient); cache != nil {
		repoOpts = append(repoOpts, atlas.WithCache(cache, cfg.Cache.Redis.DefaultTTL))
	}

	a.Repository = atlas.NewRepository(src, repoOpts...)
	a.closers = append(a.closers, a.Repository.Close)
	a.checkers = append([]handlers.HealthChecker{
		handlers.CheckFunc{Component: "datasets", Fn: a.Repository.Ping},
	}, a.checkers...)

	a.Service = atlas.NewService(a.Repository,
		atlas.WithDefaultIndicator(cfg.Render.DefaultIndicator),
		atlas.WithBlendSpace(choropleth.BlendSpace(cfg.Render.BlendSpace)),
		atlas.WithServiceLogger(logger),
		atlas.WithServiceMetrics(a.Metrics),
	)

	logger.Info("Atlas service assembled",
		logging.String("source", a.Repository.SourceName()),
		logging.Bool("redis", len(a.checkers) > 1),
		logging.Bool("metrics", a.Metrics != nil),
	)
	return a, nil
}

func (a *App) newSource() (datasource.Source, error) {
	ds := a.Config.Datasets
	switch ds.Source {
	case config.SourceFile:
		return datasource.NewFileSource(ds.BaseDir), nil
	case config.SourceHTTP:
		src, err := datasource.NewHTTPSource(ds.BaseURL,
			datasource.WithTimeout(ds.Fetch.Timeout),
			datasource.WithRetry(ds.Fetch.RetryMax, ds.Fetch.RetryWait),
			datasource.WithLogger(a.Logger),
		)
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.SourceMinIO:
		mc := a.Config.MinIO
		client, err := minio.NewMinIOClient(&minio.MinIOConfig{
			Endpoint:        mc.Endpoint,
			AccessKeyID:     mc.AccessKey,
			SecretAccessKey: mc.SecretKey,
			UseSSL:          mc.UseSSL,
			Region:          mc.Region,
			Bucket:          mc.Bucket,
		}, a.Logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return minio.NewDatasetSource(client), nil
	default:
		return nil, errors.New(errors.ErrCodeValidation, "unknown dataset source").WithDetail(ds.Source)
	}
}

func (a *App) newCache(injected *redis.Client) redis.PayloadCache {
	rc := a.Config.Cache.Redis
	client := injected
	if client == nil {
		if !rc.Enabled {
			return nil
		}
		var err error
		client, err = redis.NewClient(&redis.RedisConfig{
			Addr:         rc.Addr,
			Password:     rc.Password,
			DB:           rc.DB,
			PoolSize:     rc.PoolSize,
			DialTimeout:  rc.DialTimeout,
			ReadTimeout:  rc.ReadTimeout,
			WriteTimeout: rc.WriteTimeout,
		}, a.Logger)
		if err != nil {
			a.Logger.Warn("Redis cache unavailable, continuing without it",
				logging.String("addr", rc.Addr), logging.Err(err))
			return nil
		}
		a.closers = append(a.closers, client.Close)
	}

	a.checkers = append(a.checkers, handlers.CheckFunc{Component: "redis", Fn: client.Ping})
	return redis.NewRedisCache(client, a.Logger,
		redis.WithPrefix(rc.KeyPrefix),
		redis.WithDefaultTTL(rc.DefaultTTL),
	)
}

// HealthCheckers returns the readiness checks, datasets first.
func (a *App) HealthCheckers() []handlers.HealthChecker {
	return append([]handlers.HealthChecker(nil), a.checkers...)
}

// Router builds the full HTTP handler tree.
func (a *App) Router(version string) stdhttp.Handler {
	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = a.Config.CORS.AllowedOrigins

	return httpserver.NewRouter(httpserver.RouterConfig{
		AtlasHandler:     handlers.NewAtlasHandler(a.Service, a.Logger),
		HealthHandler:    handlers.NewHealthHandler(version, a.Metrics, a.checkers...),
		CORS:             &cors,
		Logging:          middleware.DefaultLoggingConfig(),
		Logger:           a.Logger,
		MetricsCollector: a.Collector,
		Metrics:          a.Metrics,
		MetricsPath:      a.Config.Metrics.Path,
	})
}

// Server wraps Router in an http.Server configured from server.*.
func (a *App) Server(version string) *httpserver.Server {
	return httpserver.NewServer(a.Config.Server, a.Router(version), a.Logger)
}

// Ping runs every readiness check once and returns the first failure.
func (a *App) Ping(ctx context.Context) error {
	for _, c := range a.checkers {
		if err := c.Check(ctx); err != nil {
			return errors.Wrap(err, errors.ErrCodeServiceUnavailable, c.Name()+" is not ready")
		}
	}
	return nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

//Personal.AI order the ending
