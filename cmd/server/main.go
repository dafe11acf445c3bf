package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campusvote/internal/biometric"
	"campusvote/internal/biometric/lockout"
	"campusvote/internal/election/adapters"
	electionhandler "campusvote/internal/election/handler"
	electionservice "campusvote/internal/election/service"
	jwttoken "campusvote/internal/jwt_token"
	ledgermetrics "campusvote/internal/ledger/metrics"
	ledgerservice "campusvote/internal/ledger/service"
	"campusvote/internal/platform/config"
	"campusvote/internal/platform/httpserver"
	platformkafka "campusvote/internal/platform/kafka"
	"campusvote/internal/platform/logger"
	"campusvote/internal/platform/metrics"
	"campusvote/internal/platform/postgres"
	platformredis "campusvote/internal/platform/redis"
	voterhandler "campusvote/internal/voter/handler"
	voterservice "campusvote/internal/voter/service"
	votinghandler "campusvote/internal/voting/handler"
	votingmetrics "campusvote/internal/voting/metrics"
	votingservice "campusvote/internal/voting/service"
	"campusvote/migrations"
	"campusvote/pkg/platform/audit/publisher"
	"campusvote/pkg/platform/audit/publishers/stream"
	"campusvote/pkg/platform/httputil"
	authmw "campusvote/pkg/platform/middleware/auth"
	"campusvote/pkg/platform/middleware/metadata"
	"campusvote/pkg/platform/middleware/request"
	"campusvote/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "campusvote: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		db *sql.DB
		st stores
	)
	if cfg.Database.URL != "" {
		db, err = postgres.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := migrations.Apply(ctx, db); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		st = newPostgresStores(db, cfg.Ledger)
		log.Info("using postgres storage")
	} else {
		st = newMemoryStores(cfg.Ledger)
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var lockoutStore lockout.Store = lockout.NewInMemoryStore()
	if redisClient != nil {
		defer redisClient.Close()
		lockoutStore = lockout.NewRedisStore(redisClient.Client)
		log.Info("biometric lockout backed by redis")
	}

	publisherOpts := []publisher.Option{
		publisher.WithAsyncBuffer(1024),
		publisher.WithLogger(log),
	}
	kafkaClient, err := platformkafka.New(ctx, cfg.Kafka)
	if err != nil {
		return err
	}
	if kafkaClient != nil {
		defer kafkaClient.Close()
		publisherOpts = append(publisherOpts, publisher.WithSink(stream.New(kafkaClient, cfg.Kafka.AuditTopic,
			stream.WithLogger(log),
			stream.WithMetrics(stream.NewMetrics()),
		)))
		log.Info("streaming audit events", "topic", cfg.Kafka.AuditTopic)
	}
	auditPublisher := publisher.NewPublisher(st.audit, publisherOpts...)
	defer auditPublisher.Close()

	appMetrics := metrics.New()
	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)

	probes := []biometric.Probe{biometric.NewWebProof()}
	if cfg.Biometric.AgentURL != "" {
		probes = append([]biometric.Probe{
			biometric.NewNativeProof(cfg.Biometric.AgentURL, biometric.WithScanTimeout(cfg.Biometric.Timeout)),
		}, probes...)
	}
	authenticator := biometric.Select(ctx, log, probes...)

	lockoutService, err := lockout.New(lockoutStore,
		lockout.WithLogger(log),
		lockout.WithAuditEmitter(auditPublisher),
		lockout.WithPolicy(cfg.Biometric.MaxFailures, cfg.Biometric.LockoutWindow),
	)
	if err != nil {
		return err
	}
	gate := biometric.NewGate(authenticator, st.credentials,
		biometric.WithLogger(log),
		biometric.WithLockout(lockoutService),
		biometric.WithAuditEmitter(auditPublisher),
	)

	voters := voterservice.New(st.voters, gate, jwtService,
		voterservice.WithLogger(log),
		voterservice.WithMetrics(appMetrics),
		voterservice.WithAuditEmitter(auditPublisher),
		voterservice.WithTokenTTL(cfg.Auth.TokenTTL),
		voterservice.WithEnrollmentTTL(cfg.Auth.EnrollmentTTL),
	)
	ledger := ledgerservice.New(st.ledger, st.sequencer,
		ledgerservice.WithLogger(log),
		ledgerservice.WithMetrics(ledgermetrics.New()),
		ledgerservice.WithCandidateDirectory(adapters.NewCandidateDirectory(st.elections)),
	)
	elections := electionservice.New(st.elections, voters, ledger,
		electionservice.WithLogger(log),
		electionservice.WithMetrics(appMetrics),
		electionservice.WithAuditEmitter(auditPublisher),
	)
	voting := votingservice.New(elections, gate, ledger, voters,
		votingservice.WithLogger(log),
		votingservice.WithMetrics(votingmetrics.New()),
		votingservice.WithAuditEmitter(auditPublisher),
		votingservice.WithAuditLog(auditPublisher),
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.AccessLog(log))

	r.Get("/healthz", healthHandler(db, redisClient))
	r.Handle("/metrics", promhttp.Handler())

	voterHTTP := voterhandler.New(voters, log)
	voterHTTP.Register(r)
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(jwttoken.NewJWTServiceAdapter(jwtService), log))
		voterHTTP.RegisterAuthenticated(r)
		electionhandler.New(elections, log).Register(r)
		votinghandler.New(voting, log).Register(r)
	})

	srv := httpserver.New(cfg.Server.Addr, r)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting campusvote", "addr", cfg.Server.Addr, "biometric", biometricMethod(authenticator))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func healthHandler(db *sql.DB, redis *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		check := func(name string, err error) {
			if err != nil {
				status[name], status["status"], code = "down", "degraded", http.StatusServiceUnavailable
				return
			}
			status[name] = "up"
		}
		if db != nil {
			check("postgres", db.PingContext(ctx))
		}
		if redis != nil {
			check("redis", redis.Health(ctx))
		}
		httputil.WriteJSON(w, code, status)
	}
}

func biometricMethod(a biometric.Authenticator) string {
	if p, ok := a.(biometric.Probe); ok {
		return p.Method()
	}
	return "unavailable"
}
