// Command subwatch watches the trial/subscription lifecycle of one account and
// serves the resulting banner over HTTP.
//
// Configuration is read from the environment (and .env):
//
//	ACCOUNT_PLATFORM, ACCOUNT_TENANT, ACCOUNT_USERNAME, ACCOUNT_ORG_ID,
//	ACCOUNT_TENANTS (comma separated), ACCOUNT_IS_ADMIN, ACCOUNT_MAIN_TENANT
//	PLATFORM_API_URL, PLATFORM_API_TOKEN, PLATFORM_TIMEOUT, PLATFORM_CACHE_TTL
//	CACHE_BACKEND (memory|redis), CACHE_SIZE, REDIS_URL, REDIS_KEY_PREFIX
//	BILLING_PORTAL (platform|paddle), PADDLE_API_KEY, PADDLE_ENVIRONMENT
//	HTTP_ADDR, APP_ENV
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/mentorkit/pkg/banner"
	"github.com/dmitrymomot/mentorkit/pkg/cache"
	"github.com/dmitrymomot/mentorkit/pkg/config"
	"github.com/dmitrymomot/mentorkit/pkg/httpserver"
	"github.com/dmitrymomot/mentorkit/pkg/logger"
	"github.com/dmitrymomot/mentorkit/pkg/platform"
	"github.com/dmitrymomot/mentorkit/pkg/subscription"
)

type appConfig struct {
	Env           string `env:"APP_ENV" envDefault:"development"`
	CacheBackend  string `env:"CACHE_BACKEND" envDefault:"memory"`
	CacheSize     int    `env:"CACHE_SIZE" envDefault:"256"`
	BillingPortal string `env:"BILLING_PORTAL" envDefault:"platform"`
	ReturnURL     string `env:"BILLING_RETURN_URL"`
	StopOnExpiry  bool   `env:"STOP_ON_TRIAL_END" envDefault:"true"`

	Account accountConfig `envPrefix:"ACCOUNT_"`
}

type accountConfig struct {
	Platform      string   `env:"PLATFORM,required"`
	TenantKey     string   `env:"TENANT,required"`
	Username      string   `env:"USERNAME,required"`
	OrgID         string   `env:"ORG_ID,required"`
	Tenants       []string `env:"TENANTS,required" envSeparator:","`
	IsAdmin       bool     `env:"IS_ADMIN"`
	MainTenantKey string   `env:"MAIN_TENANT,required"`
}

func (a accountConfig) toAccount() subscription.Account {
	return subscription.Account{
		Platform:      a.Platform,
		TenantKey:     a.TenantKey,
		Username:      a.Username,
		OrgID:         a.OrgID,
		Tenants:       a.Tenants,
		IsAdmin:       a.IsAdmin,
		MainTenantKey: a.MainTenantKey,
	}
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, "subwatch"),
		logger.WithContextExtractors(requestIDExtractor),
	)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, log)
	stop()

	if err != nil {
		log.Error("subwatch stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	var checks []httpserver.Check

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	if rdb, ok := store.(*cache.RedisStore); ok {
		checks = append(checks, httpserver.Check{Name: "redis", Probe: rdb.Ping})
	}

	var platformCfg platform.Config
	if err := config.Load(&platformCfg); err != nil {
		return err
	}
	client, err := platform.New(platformCfg,
		platform.WithCache(store),
		platform.WithLogger(log),
	)
	if err != nil {
		return err
	}

	opts := []subscription.Option{
		subscription.WithLogger(log),
		subscription.WithReturnURL(cfg.ReturnURL),
	}
	switch cfg.BillingPortal {
	case "platform", "":
	case "paddle":
		var paddleCfg subscription.PaddleConfig
		if err := config.Load(&paddleCfg); err != nil {
			return err
		}
		portal, err := subscription.NewPaddlePortal(paddleCfg)
		if err != nil {
			return err
		}
		opts = append(opts, subscription.WithPortalCreator(portal))
	default:
		return errors.New("unknown billing portal: " + cfg.BillingPortal)
	}

	recOpts := []banner.RecorderOption{
		banner.WithNotify(func(s banner.State) {
			log.Info("banner updated", slog.String("kind", string(s.Kind)), slog.String("label", s.Label))
		}),
	}
	if cfg.StopOnExpiry {
		recOpts = append(recOpts, banner.WithStopOnTrialEnd())
	}
	rec := banner.NewRecorder(recOpts...)

	ctrl, err := subscription.NewController(cfg.Account.toAccount(), client, rec, opts...)
	if err != nil {
		return err
	}
	defer ctrl.Stop()

	if err := ctrl.Start(ctx); err != nil {
		// polling is armed only by a successful cycle that detects a countdown
		log.Warn("initial subscription check failed", logger.Error(err))
	}

	checks = append(checks, httpserver.Check{
		Name: "controller",
		Probe: func(context.Context) error {
			if !ctrl.Active() {
				return subscription.ErrControllerStopped
			}
			return nil
		},
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Get("/health", httpserver.Health(log, checks...))
	r.Mount("/subscription", banner.Router(rec, ctrl.TriggerCallback))

	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return err
	}
	srv := httpserver.New(httpCfg,
		httpserver.WithLogger(log),
		httpserver.OnShutdown(func(context.Context) { ctrl.Stop() }),
	)
	return srv.Run(ctx, r)
}

func newStore(ctx context.Context, cfg appConfig) (cache.Store, func(), error) {
	switch cfg.CacheBackend {
	case "memory", "":
		return cache.NewLRU(cfg.CacheSize), func() {}, nil
	case "redis":
		var redisCfg cache.RedisConfig
		if err := config.Load(&redisCfg); err != nil {
			return nil, nil, err
		}
		client, err := cache.ConnectRedis(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedisStore(client, redisCfg.KeyPrefix), func() { _ = client.Close() }, nil
	default:
		return nil, nil, errors.New("unknown cache backend: " + cfg.CacheBackend)
	}
}

func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id := middleware.GetReqID(ctx); id != "" {
		return slog.String("request_id", id), true
	}
	return slog.Attr{}, false
}
