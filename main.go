package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/smyja/flite/internal/config"
	"github.com/smyja/flite/internal/models"
	"github.com/smyja/flite/internal/router"
)

// Time running requests get to finish after a shutdown signal.
const shutdownTimeout = 10 * time.Second

//	@title						flite
//	@version					0.0.0
//	@description				The backend for flite, a personal finance tracker with budget categories and transactions.
//
//	@license.name				AGPL-3.0
//	@license.url				https://www.gnu.org/licenses/agpl-3.0.en.html
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the token.
func main() {
	cfg := config.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if err := connect(cfg.Database); err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(cfg)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(cfg, r.Group("/"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("address", server.Addr).Msg("Listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server did not shut down cleanly")
	}

	if sqlDB, err := models.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// connect opens PostgreSQL when a database host is configured
// and the SQLite file at the configured path otherwise.
func connect(db config.Database) error {
	if db.Postgres() {
		log.Info().Str("host", db.Host).Str("database", db.Name).Msg("Connecting to PostgreSQL")
		return models.ConnectPostgres(db.DSN())
	}

	// Create data directory
	err := os.MkdirAll(filepath.Dir(db.Path), os.ModePerm)
	if err != nil {
		return err
	}

	log.Info().Str("path", db.Path).Msg("Using SQLite")
	return models.Connect(db.Path)
}
