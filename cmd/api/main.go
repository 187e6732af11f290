// @title                       Pantry API
// @version                     1.0
// @description                 Users, comments, ingredients and roles with JWT authentication and audited soft deletes.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/sirpyerre/pantry-api/internal/api"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
	"github.com/sirpyerre/pantry-api/internal/core/service"
	"github.com/sirpyerre/pantry-api/internal/infrastructure/config"
	"github.com/sirpyerre/pantry-api/internal/infrastructure/db/mongo"
	"github.com/sirpyerre/pantry-api/internal/infrastructure/db/postgres"
	"github.com/sirpyerre/pantry-api/internal/infrastructure/db/redis"
	"github.com/sirpyerre/pantry-api/internal/infrastructure/limiter"
	"github.com/sirpyerre/pantry-api/internal/infrastructure/queue"
	"github.com/sirpyerre/pantry-api/internal/infrastructure/security"
	"github.com/sirpyerre/pantry-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty && !cfg.IsProduction(),
		Service: "pantry-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Relational store ---
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		SlowQuery:       cfg.Postgres.SlowQuery,
	}, log)
	if err != nil {
		return err
	}
	defer func() { _ = postgres.Close(db) }()

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info().Msg("database migrations applied")
	}

	// --- Optional audit journal ---
	var (
		trail       ports.AuditTrail
		mongoClient *gomongo.Client
	)
	if cfg.Mongo.URI != "" {
		client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = mongo.Disconnect(client, cfg.ShutdownTimeout) }()
		mongoClient = client

		journal := mongo.NewAuditTrail(mdb)
		if err := journal.EnsureIndexes(ctx); err != nil {
			return err
		}

		// Workers outlive the signal context so queued events can drain.
		workerCtx, cancelWorkers := context.WithCancel(context.WithoutCancel(ctx))
		defer cancelWorkers()
		dispatcher := queue.NewDispatcher(cfg.Mongo.AuditWorkers, journal, log)
		dispatcher.Start(workerCtx)
		defer dispatcher.Close()

		trail = dispatcher
		log.Info().Str("database", cfg.Mongo.Database).Msg("audit journal enabled")
	}

	// --- Login throttling ---
	var (
		loginLimiter ports.LoginLimiter
		redisClient  *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		redisClient = rdb
		loginLimiter = redis.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("shared login limiter enabled")
	} else {
		loginLimiter = limiter.NewMemory(cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
	}

	// --- Core ---
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := security.NewJWTCodec(cfg.Auth.JWTSecret)
	resolver := security.StaticClaims{RoleID: cfg.Auth.DefaultRoleID, TenantID: cfg.Auth.DefaultTenantID}

	userRepo := postgres.NewUserRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	ingredientRepo := postgres.NewIngredientRepository(db)
	roleRepo := postgres.NewRoleRepository(db)

	e := api.NewRouter(api.Deps{
		Logger:      log,
		Tokens:      tokens,
		Auth:        service.NewAuthService(userRepo, hasher, tokens, resolver, loginLimiter, cfg.Auth.AccessTokenTTL, log),
		Users:       service.NewUserService(userRepo, hasher, trail, log),
		Comments:    service.NewCommentService(commentRepo, userRepo, trail, log),
		Ingredients: service.NewIngredientService(ingredientRepo, trail, log),
		Roles:       service.NewRoleService(roleRepo, trail, log),
		Postgres:    db,
		Mongo:       mongoClient,
		Redis:       redisClient,
	})

	// --- Serve until signalled ---
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
