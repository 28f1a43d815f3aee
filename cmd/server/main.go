// Command server runs the freefortalk auth API.
//
// @title        freefortalk auth API
// @version      1.0
// @description  Signup, login and session token issuance.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/karnbhushan1994/freefortalk/internal/api"
	"github.com/karnbhushan1994/freefortalk/internal/api/handler"
	"github.com/karnbhushan1994/freefortalk/internal/core/service"
	"github.com/karnbhushan1994/freefortalk/internal/infrastructure/config"
	mongostore "github.com/karnbhushan1994/freefortalk/internal/infrastructure/db/mongo"
	"github.com/karnbhushan1994/freefortalk/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "freefortalk",
	})

	// Token and hashing config are validated here, before any request is accepted.
	tokens, err := service.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn.Duration())
	if err != nil {
		return err
	}
	hasher, err := service.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("MongoDB connected")

	users := mongostore.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	authService := service.NewAuthService(users, hasher, tokens, service.AuthConfig{
		AllowAdminSignup: cfg.AllowAdminSignup,
	}, log)

	e := api.NewRouter(api.Options{
		ExposeErrorDetail: !cfg.IsProduction(),
		CORSOrigins:       cfg.CORSOrigins,
		StaticDir:         cfg.StaticDir,
	}, authService, tokens, map[string]handler.HealthCheck{
		"mongodb": mongostore.Pinger(client),
	}, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration())
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
