package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	emailAdapter "tigerlee/internal/adapters/email"
	web "tigerlee/internal/adapters/http"
	"tigerlee/internal/adapters/http/middleware"
	"tigerlee/internal/adapters/storage"
	"tigerlee/internal/application/broadcast"
	"tigerlee/internal/application/orchestrators"
	"tigerlee/internal/config"
	"tigerlee/internal/domain/admin"
)

const (
	shutdownTimeout = 15 * time.Second
	sweepInterval   = 5 * time.Minute
	visitorIdle     = 10 * time.Minute
)

func newServeCmd(load configLoader, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, version)
		},
	}
}

// serve runs the HTTP server until ctx is cancelled, then drains
// connections and pending staff emails.
func serve(ctx context.Context, cfg config.Config, version string) error {
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	schemaVersion, err := storage.SchemaVersion(ctx, a.db)
	if err != nil {
		return err
	}

	hub := broadcast.NewHub()
	hub.Subscribe("activity", orchestrators.ActivityRecorder{Store: a.stores.Activity})
	notifier := &orchestrators.StaffNotifier{
		Sender:     newSender(cfg),
		Recipients: cfg.StaffRecipients(),
		SiteURL:    cfg.SiteURL,
	}
	hub.Subscribe("staff-email", notifier)

	cred, err := newCredential(cfg)
	if err != nil {
		return err
	}

	keys := cfg.Keys()
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler := web.NewMux(a.stores, hub, a.collector, web.Options{
		CSRFKey:          keys.CSRF,
		CookieHashKey:    keys.CookieHash,
		CookieBlockKey:   keys.CookieBlock,
		Secure:           cfg.IsProduction(),
		TrustedOrigins:   trustedOrigins(cfg.SiteURL),
		Credential:       cred,
		BookingRecipient: cfg.BookingRecipient,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
		Limiter:          limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go sweepVisitors(ctx, limiter)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_starting", "addr", cfg.Addr, "env", cfg.Env, "version", version,
			"schema", schemaVersion, "store_backend", cfg.StoreBackend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server_shutdown_failed", "error", err)
	}
	notifier.Wait()
	return nil
}

// newSender picks Resend when an API key is configured and logs only otherwise.
func newSender(cfg config.Config) emailAdapter.Sender {
	if cfg.ResendAPIKey == "" {
		slog.Warn("email_disabled", "detail", "resend_api_key not set, staff emails are logged only")
		return emailAdapter.NewNoopSender()
	}
	return emailAdapter.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
}

// newCredential returns the bcrypt credential when a hash is configured,
// and the admin/admin placeholder otherwise.
func newCredential(cfg config.Config) (admin.Credential, error) {
	if cfg.AdminPasswordHash == "" {
		slog.Warn("admin_stub_credential", "detail", "admin_password_hash not set, using the admin/admin placeholder")
		return admin.NewStubCredential(), nil
	}
	cred, err := admin.NewHashedCredential(cfg.AdminUsername, cfg.AdminPasswordHash)
	if err != nil {
		return nil, fmt.Errorf("admin_password_hash: %w", err)
	}
	return cred, nil
}

// trustedOrigins returns the site host for cross-origin CSRF checks.
func trustedOrigins(siteURL string) []string {
	u, err := url.Parse(siteURL)
	if err != nil || u.Host == "" {
		return nil
	}
	return []string{u.Host}
}

func sweepVisitors(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Sweep(visitorIdle); n > 0 {
				slog.Debug("rate_limit_sweep", "removed", n)
			}
		}
	}
}
