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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"landingwaitlist/config"
	_ "landingwaitlist/docs"
	"landingwaitlist/internal/adapters/auth"
	"landingwaitlist/internal/adapters/email"
	httpdelivery "landingwaitlist/internal/delivery/http"
	"landingwaitlist/internal/delivery/http/controllers"
	"landingwaitlist/internal/delivery/http/middleware"
	"landingwaitlist/internal/metrics"
	"landingwaitlist/internal/services"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the waitlist HTTP server.

Examples:
  # Postgres (default)
  DATABASE_URL=postgres://... waitlistd serve

  # Embedded SQLite
  STORE_DRIVER=sqlite SQLITE_PATH=./waitlist.db waitlistd serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, repo, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("store ready", "driver", cfg.StoreDriver)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	waitlistService := services.NewWaitlistService(repo, emailService, m, logger, cfg.CountRefreshDelay)
	if n, err := waitlistService.RefreshCount(ctx); err != nil {
		logger.Warn("initial waitlist count failed", "err", err)
	} else {
		logger.Info("waitlist loaded", "count", n)
	}

	waitlistController := controllers.NewWaitlistController(logger, waitlistService, m, cfg.SubmitTimeout)
	routes := httpdelivery.RouterConfig{
		Logger:         logger,
		Waitlist:       waitlistController,
		Page:           controllers.NewPageController(logger, waitlistController),
		Health:         controllers.NewHealthController(logger, db),
		Limiter:        middleware.NewKeyedLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute),
		TrustProxy:     cfg.TrustProxy,
		Metrics:        m,
		Gatherer:       reg,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.AdminEnabled() {
		tokens := auth.NewJWT(cfg.JWTSecret)
		adminService := services.NewAdminService(cfg.AdminEmail, cfg.AdminPasswordHash, auth.NewBcryptHasher(0), tokens, cfg.JWTExpiry)
		routes.Admin = controllers.NewAdminController(logger, adminService, waitlistService)
		routes.TokenVerifier = tokens
	} else {
		logger.Info("admin routes disabled: set JWT_SECRET, ADMIN_EMAIL and ADMIN_PASSWORD_HASH to enable")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpdelivery.NewRouter(routes),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.SubmitTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if w, ok := waitlistService.(interface{ WaitForConfirmations() }); ok {
		w.WaitForConfirmations()
	}
	return nil
}
