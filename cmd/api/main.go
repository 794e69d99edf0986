package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/gymguider/fitness-api/internal/api"
	"github.com/gymguider/fitness-api/internal/api/handler"
	"github.com/gymguider/fitness-api/internal/core/auth"
	"github.com/gymguider/fitness-api/internal/core/service"
	"github.com/gymguider/fitness-api/internal/infrastructure/config"
	mongostore "github.com/gymguider/fitness-api/internal/infrastructure/db/mongo"
	redisstore "github.com/gymguider/fitness-api/internal/infrastructure/db/redis"
	"github.com/gymguider/fitness-api/internal/infrastructure/queue"
	"github.com/gymguider/fitness-api/pkg/logger"
)

const (
	shutdownTimeout = 15 * time.Second
	serviceName     = "gymguider-api"
)

// @title                       GymGuider API
// @version                     1.0
// @description                 Fitness tracking backend: accounts, exercise catalogue, workout plans and logs.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not configured yet.
		boot := bootLogger(os.Stderr)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("api stopped with error")
		os.Exit(1)
	}
}

// bootLogger is used before the configured logger exists.
func bootLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("service", serviceName).Logger()
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Timeout: cfg.Mongo.StoreTimeout})
	if err != nil {
		return err
	}
	defer rdb.Close()

	identities := mongostore.NewIdentityRepository(db, cfg.Mongo.StoreTimeout)
	exercises := mongostore.NewExerciseRepository(db, cfg.Mongo.StoreTimeout)
	plans := mongostore.NewPlanRepository(db, cfg.Mongo.StoreTimeout)
	logs := mongostore.NewLogRepository(db, cfg.Mongo.StoreTimeout)

	for _, idx := range []interface{ EnsureIndexes(context.Context) error }{identities, exercises, plans, logs} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			return err
		}
	}

	// --- Auth ---
	tokenCfg := auth.TokenConfig{Secret: []byte(cfg.Auth.JWTSecret), TTL: cfg.Auth.TokenTTL, Issuer: serviceName}
	issuer, err := auth.NewTokenIssuer(tokenCfg, nil)
	if err != nil {
		return err
	}
	verifier, err := auth.NewTokenVerifier(tokenCfg, identities, nil, logger.Component("token"))
	if err != nil {
		return err
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	limiter := redisstore.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
	policy := auth.NewPolicy()

	// --- Events ---
	dispatchCtx, cancelDispatch := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Events.Workers, redisstore.NewEventPublisher(rdb, cfg.Events.Channel), logger.Component("events"))
	dispatcher.Start(dispatchCtx)
	defer func() {
		cancelDispatch()
		dispatcher.Wait()
	}()

	// --- Services ---
	authService := service.NewAuthService(identities, hasher, issuer, verifier, limiter, dispatcher, logger.Component("auth"))

	e := api.NewRouter(api.Dependencies{
		Auth:      authService,
		Resolver:  authService,
		Users:     service.NewIdentityService(identities, policy, logger.Component("users")),
		Exercises: service.NewExerciseService(exercises, policy, logger.Component("exercises")),
		Plans:     service.NewWorkoutPlanService(plans, logs, exercises, identities, policy, dispatcher, logger.Component("plans")),
		Logs:      service.NewWorkoutLogService(logs, exercises, identities, policy, dispatcher, logger.Component("logs")),
		Readiness: []handler.DependencyCheck{handler.MongoCheck(db), handler.RedisCheck(rdb)},
		Log:       logger.Component("http"),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
