// Command server runs the care-team eligibility and status audit service.
// main wires dependencies and the server lifecycle; business logic lives in
// the internal packages. Without a database DSN the service runs entirely
// in memory, which is the local development configuration.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"careteam/internal/assignment"
	"careteam/internal/careteam"
	"careteam/internal/careteam/handler"
	"careteam/internal/directory"
	"careteam/internal/eligibility"
	eligmetrics "careteam/internal/eligibility/metrics"
	"careteam/internal/events"
	httpapi "careteam/internal/http"
	"careteam/internal/jwt"
	"careteam/internal/platform/config"
	"careteam/internal/platform/httpserver"
	"careteam/internal/platform/kafka"
	"careteam/internal/platform/logger"
	"careteam/internal/platform/metrics"
	"careteam/internal/platform/postgres"
	"careteam/internal/platform/redis"
	"careteam/internal/preference"
	"careteam/internal/restriction"
	"careteam/internal/statuslog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	checks := map[string]httpapi.HealthCheck{}

	var (
		directoryStore   directory.Store
		assignmentStore  assignment.Store
		preferenceStore  preference.Store
		restrictionStore restriction.Store
		statusLogStore   statuslog.Store
		txRunner         careteam.TxRunner
	)

	if cfg.DatabaseDSN != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		directoryStore = directory.NewPostgresStore(db)
		assignmentStore = assignment.NewPostgresStore(db)
		preferenceStore = preference.NewPostgresStore(db)
		restrictionStore = restriction.NewPostgresStore(db)
		statusLogStore = statuslog.NewPostgresStore(db)
		txRunner = careteam.NewPostgresTx(db)
		checks["postgres"] = db.PingContext
		log.Info("storage configured", "backend", "postgres")
	} else {
		directoryStore = directory.NewInMemoryStore()
		assignmentStore = assignment.NewInMemoryStore()
		preferenceStore = preference.NewInMemoryStore()
		restrictionStore = restriction.NewInMemoryStore()
		statusLogStore = statuslog.NewInMemoryStore()
		txRunner = careteam.NewShardedTx()
		log.Info("storage configured", "backend", "memory")
	}

	assignments := assignment.NewRegistry(assignmentStore)
	preferences := preference.NewRegistry(preferenceStore)
	restrictions := restriction.NewRegistry(restrictionStore)

	var verdictCache eligibility.VerdictCache
	if cfg.RedisURL != "" {
		rdb, err := redis.New(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		verdictCache = eligibility.NewRedisCache(rdb.Client, config.VerdictCacheTTL)
		checks["redis"] = rdb.Health
		log.Info("verdict cache enabled", "ttl", config.VerdictCacheTTL.String())
	}

	var sink events.Sink = events.NewMemorySink()
	if len(cfg.KafkaBrokers) > 0 {
		kc, err := kafka.New(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		defer kc.Close()
		sink = events.NewKafkaSink(kc, cfg.KafkaTopic)
		log.Info("event stream enabled", "topic", cfg.KafkaTopic)
	}
	publisher := events.NewPublisher(sink, m, log)

	evaluator := eligibility.NewService(preferences, restrictions, verdictCache, eligmetrics.New(), log)

	svc := careteam.NewService(
		directoryStore,
		assignments,
		preferences,
		restrictions,
		statusLogStore,
		evaluator,
		txRunner,
		publisher,
		m,
		log,
	)

	jwtService := jwt.NewService(cfg.JWTSigningKey, "careteam")
	h := handler.New(svc, log, m, jwtService)
	router := httpapi.NewRouter(h, checks)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting careteam service", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return publisher.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("careteam service stopped")
	return nil
}
