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

	_ "github.com/lib/pq"

	"clubhub/config"
	_ "clubhub/docs"
	"clubhub/internal/adapters/auth"
	"clubhub/internal/adapters/email"
	httpdelivery "clubhub/internal/delivery/http"
	"clubhub/internal/delivery/http/controllers"
	"clubhub/internal/delivery/http/middleware"
	"clubhub/internal/domain"
	"clubhub/internal/repository/memory"
	"clubhub/internal/repository/postgres"
	"clubhub/internal/services"
)

// @title ClubHub Membership API
// @version 1.0
// @description Club rosters, roles and invitations.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	memberRepo, invitationRepo, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "store", cfg.Store, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		logger.Error("failed to load email templates", "err", err)
		os.Exit(1)
	}

	membershipService := services.NewMembershipService(
		memberRepo,
		invitationRepo,
		services.NewAuthorizationGate(cfg.EnforceRoleCeiling),
		services.NewEmailService(mailer, renderer),
		logger,
		cfg.ContextTimeout,
		services.WithAppBaseURL(cfg.AppBaseURL),
	)

	membershipController := controllers.NewMembershipController(logger, membershipService)
	requireAuth := middleware.RequireAuth(auth.NewJWTVerifier(cfg.JWTSecret), logger)
	router := httpdelivery.NewRouter(membershipController, requireAuth)

	var handler http.Handler = router
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr, "env", cfg.Environment, "store", cfg.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}

// openStore returns the repositories for the configured backend and a func releasing them.
func openStore(cfg *config.Config, logger *slog.Logger) (domain.MemberRepository, domain.InvitationRepository, func(), error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewMemberStore(), memory.NewInvitationStore(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ContextTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}
	logger.Info("database connection established")
	return postgres.NewMemberRepository(db), postgres.NewInvitationRepository(db), func() { _ = db.Close() }, nil
}
