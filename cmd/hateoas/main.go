package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/time/rate"

	"github.com/totegamma/hateoas-playground/internal/config"
	"github.com/totegamma/hateoas-playground/internal/infra/cache"
	"github.com/totegamma/hateoas-playground/internal/infra/database"
	"github.com/totegamma/hateoas-playground/internal/infra/repository"
	"github.com/totegamma/hateoas-playground/internal/infra/tracing"
	"github.com/totegamma/hateoas-playground/internal/present/rest"
	restmw "github.com/totegamma/hateoas-playground/internal/present/rest/middleware"
	"github.com/totegamma/hateoas-playground/internal/usecase"
)

const serviceName = "hateoas"

func main() {
	configPath := flag.String("config", "", "path to a yaml config file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.EnableTrace {
		shutdown, err := tracing.Setup(ctx, cfg.Server.TraceEndpoint, serviceName)
		if err != nil {
			slog.Error("failed to setup tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				slog.Error("failed to flush traces", slog.String("error", err.Error()))
			}
		}()
	}

	users, err := repository.BuildFixtureUsers(cfg.Fixtures)
	if err != nil {
		slog.Error("invalid fixtures", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var (
		userRepo  usecase.UserRepository
		groupRepo usecase.GroupRepository
	)
	if cfg.Server.PostgresDsn != "" {
		db, err := database.NewPostgres(cfg.Server.PostgresDsn)
		if err != nil {
			slog.Error("failed to connect database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		err = database.MigratePostgres(db)
		if err != nil {
			slog.Error("failed to migrate database", slog.String("error", err.Error()))
			os.Exit(1)
		}

		ur := repository.NewUserRepository(db)
		err = ur.Seed(ctx, users)
		if err != nil {
			slog.Error("failed to seed database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		userRepo = ur
		groupRepo = repository.NewGroupRepository(db)
	} else {
		fixture := repository.NewFixtureRepository(users)
		userRepo = fixture
		groupRepo = fixture
	}

	responseCache, err := newResponseCache(ctx, cfg.Server)
	if err != nil {
		slog.Error("failed to setup response cache", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handler := rest.NewHandler(
		usecase.NewUserUsecase(userRepo, responseCache),
		usecase.NewGroupUsecase(groupRepo, userRepo, responseCache),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := restmw.NewMetrics(reg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if cfg.Server.EnableTrace {
		e.Use(otelecho.Middleware(serviceName))
	}
	if cfg.Server.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.Server.RateLimit))))
	}
	e.Use(metrics.Observe)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	handler.RegisterRoutes(e)

	slog.Info("starting server",
		slog.String("addr", cfg.Server.ListenAddr),
		slog.String("cache", cfg.Server.CacheBackend),
		slog.Bool("postgres", cfg.Server.PostgresDsn != ""),
	)
	go func() {
		if err := e.Start(cfg.Server.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
}

// newResponseCache returns a nil cache for the none backend.
func newResponseCache(ctx context.Context, server config.Server) (usecase.ResponseCache, error) {
	switch server.CacheBackend {
	case config.CacheRedis:
		rdb, err := database.NewRedis(ctx, server.RedisAddr, server.RedisDB)
		if err != nil {
			return nil, err
		}
		return cache.NewRedisCache(rdb, "hateoas:", server.CacheTTL), nil
	case config.CacheMemcached:
		mc, err := database.NewMemcached(server.MemcachedAddr)
		if err != nil {
			return nil, err
		}
		return cache.NewMemcachedCache(mc, "hateoas:", server.CacheTTL), nil
	case config.CacheNone:
		return nil, nil
	default:
		return cache.NewMemoryCache(server.CacheTTL), nil
	}
}
