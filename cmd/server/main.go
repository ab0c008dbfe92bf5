package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventvenues/config"
	_ "eventvenues/docs"
	"eventvenues/internal/adapters/auth"
	"eventvenues/internal/adapters/email"
	httpDelivery "eventvenues/internal/delivery/http"
	"eventvenues/internal/delivery/http/controllers"
	"eventvenues/internal/delivery/http/middleware"
	"eventvenues/internal/repository/cache"
	"eventvenues/internal/repository/postgres"
	"eventvenues/internal/services"
)

// @title Event Venues API
// @version 1.0
// @description Venue booking and attendee lifecycle for organization events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment)
	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	redisClient, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("connect redis", "err", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	userRepo := postgres.NewUserRepository(db)
	orgRepo := postgres.NewOrganizationRepository(db)
	profileRepo := postgres.NewAppProfileRepository(db)
	attendeeRepo := postgres.NewEventAttendeeRepository(db)
	eventCache := cache.NewEventCache(redisClient, cfg.EventCacheTTL)

	gate := services.NewGate(userRepo, orgRepo, profileRepo)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	eventService := services.NewEventService(eventRepo, venueRepo, attendeeRepo, userRepo, eventCache, gate, logger, cfg.ServiceTimeout)
	venueService := services.NewVenueService(eventRepo, venueRepo, gate, logger, cfg.ServiceTimeout)
	attendeeService := services.NewAttendeeService(attendeeRepo, eventRepo, userRepo, eventCache, gate, emailService, logger, cfg.ServiceTimeout, cfg.SkipMembershipCheck)
	if cfg.SkipMembershipCheck {
		logger.Warn("organization membership check is disabled for added attendees")
	}

	router := httpDelivery.NewRouter(httpDelivery.Controllers{
		Events:    controllers.NewEventController(logger, eventService),
		Venues:    controllers.NewVenueController(logger, venueService),
		Attendees: controllers.NewAttendeeController(logger, attendeeService),
	}, auth.NewJWTVerifier(cfg.JWTSecret), logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", srv.Addr), slog.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		logger.Error("server failed", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown server", "err", err)
	}
	logger.Info("server stopped")
}
