package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/barangan-student/siaa-project09/internal/api"
	"github.com/barangan-student/siaa-project09/internal/core/domain"
	"github.com/barangan-student/siaa-project09/internal/core/ports"
	"github.com/barangan-student/siaa-project09/internal/core/service"
	"github.com/barangan-student/siaa-project09/internal/infrastructure/config"
	redisdb "github.com/barangan-student/siaa-project09/internal/infrastructure/db/redis"
	"github.com/barangan-student/siaa-project09/internal/infrastructure/db/sqlite"
	"github.com/barangan-student/siaa-project09/internal/infrastructure/queue"
	"github.com/barangan-student/siaa-project09/internal/infrastructure/session"
	"github.com/barangan-student/siaa-project09/internal/pkg/password"
	"github.com/barangan-student/siaa-project09/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init("info", true)
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(cfg.LogLevel, cfg.Env == "development")

	// Credential store. Storage failure here is fatal: there is no
	// partial-degraded mode.
	store, err := sqlite.Open(sqlite.Config{Path: cfg.SQLite.Path, Timeout: cfg.SQLite.Timeout})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SQLite.Path).Msg("open credential store")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}

	hasher := password.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err := seedDefaults(ctx, store, hasher, cfg); err != nil {
		log.Fatal().Err(err).Msg("seed defaults")
	}

	// Session container store.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect redis")
	}
	defer rdb.Close()

	// Audit trail, written off the request path by sharded workers.
	auditStore := sqlite.NewAuditStore(store)
	if err := auditStore.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure audit schema")
	}
	audit := queue.NewAuditDispatcher(cfg.Audit.Workers, auditStore, log)
	audit.Start(ctx)

	sessions := session.NewRedisManager(rdb, cfg.Session.TTL)
	throttle := newLoginThrottle(rdb, cfg)
	authService := service.NewAuthService(store, hasher, throttle)
	authorizer := service.NewAuthzService(store)

	e := api.NewRouter(api.Dependencies{
		Auth:       authService,
		Authz:      authorizer,
		Sessions:   sessions,
		Audit:      audit,
		Store:      store,
		Redis:      rdb,
		SessionTTL: cfg.Session.TTL,
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// newLoginThrottle builds the Redis-backed lockout, or nil when disabled.
func newLoginThrottle(rdb *redis.Client, cfg *config.Config) ports.LoginThrottle {
	if cfg.Auth.MaxLoginFailures <= 0 {
		return nil
	}
	return redisdb.NewLoginThrottle(rdb, cfg.Auth.MaxLoginFailures, cfg.Auth.ThrottleWindow)
}

// seedDefaults hashes the configured initial passwords and installs the
// bootstrap dataset: the two seed groups and one account per group. Safe to
// run on every start; existing rows are left untouched.
func seedDefaults(ctx context.Context, store ports.CredentialStore, hasher password.Hasher, cfg *config.Config) error {
	adminHash, err := hasher.Hash(cfg.Auth.SeedAdminPassword)
	if err != nil {
		return err
	}
	employeeHash, err := hasher.Hash(cfg.Auth.SeedEmployeePassword)
	if err != nil {
		return err
	}

	groups := []string{domain.GroupAdmin, domain.GroupEmployee}
	users := []ports.SeedUser{
		{Username: "admin", PasswordHash: adminHash, Group: domain.GroupAdmin},
		{Username: "employee", PasswordHash: employeeHash, Group: domain.GroupEmployee},
	}
	return store.SeedDefaults(ctx, groups, users)
}
