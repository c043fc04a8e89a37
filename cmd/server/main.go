// Command server runs the zaakregister API: the catalogi type registry and
// the zaken case registry behind a single HTTP surface.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"zaakregister/internal/authz"
	"zaakregister/internal/catalogi"
	catalogihandler "zaakregister/internal/catalogi/handler"
	catalogimetrics "zaakregister/internal/catalogi/metrics"
	catalogiservice "zaakregister/internal/catalogi/service"
	"zaakregister/internal/documenten"
	"zaakregister/internal/notificaties"
	"zaakregister/internal/objecten"
	"zaakregister/internal/platform/config"
	"zaakregister/internal/platform/httpserver"
	"zaakregister/internal/platform/logger"
	"zaakregister/internal/platform/metrics"
	"zaakregister/internal/platform/middleware"
	platformredis "zaakregister/internal/platform/redis"
	"zaakregister/internal/selectielijst"
	"zaakregister/internal/zaken"
	zaakhandler "zaakregister/internal/zaken/handler"
	zakenmetrics "zaakregister/internal/zaken/metrics"
	zakenservice "zaakregister/internal/zaken/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	var (
		catalogiStore catalogi.Store
		zakenStore    zaken.Store
	)
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		catalogiStore = catalogi.NewPostgresStore(db)
		zakenStore = zaken.NewPostgresStore(db)
		log.Info("using postgres storage")
	} else {
		catalogiStore = catalogi.NewMemoryStore()
		zakenStore = zaken.NewMemoryStore()
		log.Warn("no postgres DSN configured, using in-memory storage")
	}

	rdb, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var selectielijstClient selectielijst.Client = selectielijst.NewHTTPClient(10 * time.Second)
	if rdb != nil {
		selectielijstClient = selectielijst.NewCachedClient(selectielijstClient, rdb.Client, cfg.SelectielijstCacheTTL)
	}

	var sink notificaties.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := notificaties.NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.NotificatieTopic)
		if err != nil {
			return err
		}
		defer kafka.Close()
		sink = kafka
		log.Info("publishing notificaties to kafka", "topic", cfg.NotificatieTopic)
	} else {
		sink = notificaties.NewMemoryPublisher()
		log.Warn("no kafka brokers configured, notificaties stay in memory")
	}
	publisher := notificaties.NewAsyncPublisher(sink, log, 256)

	catalogiSvc := catalogiservice.New(catalogiStore, selectielijstClient,
		catalogiservice.WithLogger(log),
		catalogiservice.WithPublisher(publisher),
		catalogiservice.WithMetrics(catalogimetrics.New()),
		catalogiservice.WithPublishRequirements(catalogi.PublishRequirements{
			MinStatustypen:    cfg.PublishMinStatustypen,
			MinResultaattypen: cfg.PublishMinResultaattypen,
			MinRoltypen:       cfg.PublishMinRoltypen,
		}),
	)

	zakenSvc := zakenservice.New(zakenStore, catalogiStore,
		documenten.NewHTTPClient(10*time.Second),
		objecten.NewHTTPClient(10*time.Second),
		zakenservice.WithLogger(log),
		zakenservice.WithPublisher(publisher),
		zakenservice.WithMetrics(zakenmetrics.New()),
		zakenservice.WithConfig(zakenservice.Config{
			ReserveIdentificatieEnabled: cfg.ReserveIdentificatieEnabled,
		}),
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Metrics(metrics.New()))
	router.Use(middleware.Timeout(30 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if rdb != nil {
			if err := rdb.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"degraded","cache":"unreachable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireAuth(authz.NewValidator(cfg.JWTSigningKey), log))
		r.Use(middleware.ContentTypeJSON)
		catalogihandler.New(catalogiSvc, log).Register(r)
		zaakhandler.New(zakenSvc, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return publisher.Run(ctx)
	})
	group.Go(func() error {
		log.Info("zaakregister listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
