package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/catalog-admin/api/v1"
	"github.com/catalog-admin/config"
	"github.com/catalog-admin/database"
	"github.com/catalog-admin/events"
	"github.com/catalog-admin/logging"
	"github.com/catalog-admin/middleware"
	"github.com/catalog-admin/routes"
	"github.com/catalog-admin/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config) error {
	db, err := database.Connect(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close(db)
	}()

	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	publisher, closePublisher := newPublisher(cfg)
	defer closePublisher()

	deps := v1.Dependencies{
		DB:             db,
		Observer:       events.NewSyncModelObserver(publisher, cfg.EventsStrict),
		Tokens:         services.NewTokenService(cfg.JWTSecret, 24*time.Hour),
		DefaultPerPage: cfg.DefaultPerPage,
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	// CORS configuration
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: !cfg.AllowAllOrigins(),
		MaxAge:           12 * time.Hour,
	}
	if cfg.AllowAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, deps)

	srv := &http.Server{Addr: cfg.Addr(), Handler: router, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", srv.Addr).
			Bool("auth", deps.Tokens.Enabled()).
			Bool("broker", cfg.AMQPURL != "").
			Msg("catalog admin API listening")
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newPublisher picks the broker publisher, or the log publisher when AMQP_URL is empty
func newPublisher(cfg *config.Config) (events.Publisher, func()) {
	if cfg.AMQPURL == "" {
		logging.Warn().Msg("AMQP_URL not set, change events are only logged")
		return events.LogPublisher{}, func() {}
	}

	amqpCfg := events.DefaultAMQPConfig(cfg.AMQPURL)
	amqpCfg.Exchange = cfg.AMQPExchange
	publisher := events.NewAMQPPublisher(amqpCfg)
	if err := publisher.Connect(); err != nil {
		// the publisher reconnects on the next event
		logging.Err(err).Msg("broker unavailable at startup")
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logging.Err(err).Msg("close broker connection")
		}
	}
}
