// Package main is the entry point for the credtrail API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/api"
	"github.com/credtrailhq/credtrail/internal/config"
	"github.com/credtrailhq/credtrail/internal/crypto"
	"github.com/credtrailhq/credtrail/internal/db"
	"github.com/credtrailhq/credtrail/internal/db/migrations"
	"github.com/credtrailhq/credtrail/internal/dbpool"
	"github.com/credtrailhq/credtrail/internal/models"
	"github.com/credtrailhq/credtrail/internal/security"
	"github.com/credtrailhq/credtrail/internal/service"
	"github.com/credtrailhq/credtrail/internal/store"
	"github.com/credtrailhq/credtrail/internal/ws"
)

const (
	shutdownTimeout = 10 * time.Second
	drainTimeout    = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("loading configuration")
	}

	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

// newLogger builds the process logger from config. Bad values fall back
// to info/text rather than failing startup.
func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return log
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), int32(cfg.DBMaxConns))
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	keys, err := crypto.NewStaticProvider(cfg.EncryptionKey.Value())
	if err != nil {
		return fmt.Errorf("loading encryption key: %w", err)
	}

	base := store.Base{Pool: pool, Log: log, Crypto: crypto.NewService(keys)}

	providerStore := store.NewProviderStore(base)
	licenseStore := store.NewLicenseStore(base)
	phaseStore := store.NewPhaseStore(base)
	facilityStore := store.NewFacilityStore(base)
	commStore := store.NewCommunicationStore(base)
	documentStore := store.NewDocumentStore(base)
	userStore := store.NewUserStore(base)
	auditStore := store.NewAuditStore(base)
	bulkStore := store.NewBulkStore(base)
	searchStore := store.NewSearchStore(base)
	statsStore := store.NewStatsStore(base)

	// Background workers get their own context so they keep draining
	// after the HTTP server has stopped accepting requests.
	bgCtx, stopBg := context.WithCancel(context.Background())
	defer stopBg()

	worker := service.NewAuditWorker(auditStore, log, 0)
	workerDone := make(chan struct{})
	go func() {
		worker.Run(bgCtx)
		close(workerDone)
	}()

	hub := ws.NewHub(log)
	hubDone := make(chan struct{})
	go func() {
		hub.Run(bgCtx)
		close(hubDone)
	}()

	bridge := db.NewNotifyBridge(log, pool, hub)
	if err := bridge.Start(bgCtx); err != nil {
		return fmt.Errorf("starting notify bridge: %w", err)
	}

	tokens := security.NewTokenService(cfg.JWTSecret.Value(), cfg.JWTPreviousSecret.Value())
	guard := security.NewBruteForceGuard(bgCtx, log)

	users := service.NewUserService(userStore, log)

	if err := bootstrapAdmin(ctx, cfg, users, userStore, log); err != nil {
		return err
	}

	deps := &api.RouterDeps{
		Log:            log,
		Pool:           pool,
		Hub:            hub,
		Tokens:         tokens,
		UserLookup:     userStore,
		Auth:           service.NewAuthService(userStore, tokens, guard, worker, log),
		Providers:      service.NewProviderService(providerStore, log),
		Licenses:       service.NewLicenseService(licenseStore, log),
		Phases:         service.NewPhaseService(phaseStore, log),
		Facilities:     service.NewFacilityService(facilityStore, log),
		Communications: service.NewCommunicationService(commStore, log),
		Documents:      service.NewDocumentService(documentStore, log),
		Accounts:       users,
		Timeline:       service.NewTimelineService(auditStore),
		AuditAdmin:     service.NewAuditService(auditStore, log),
		Importer:       service.NewImportService(bulkStore, log),
		Stats:          service.NewStatsService(statsStore),
		Search:         service.NewSearchService(searchStore),
		CORSOrigins:    cfg.CORSOrigins,
		Version:        config.Version,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(ctx, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute, // audit exports stream the whole filter window
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"version": config.Version,
		}).Info("server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("forced shutdown")
	}

	// No new requests can enqueue work now; let the audit worker flush
	// its queue and the hub close its clients.
	stopBg()

	for _, done := range []chan struct{}{workerDone, hubDone} {
		select {
		case <-done:
		case <-time.After(drainTimeout):
		}
	}

	log.Info("server stopped")

	return nil
}

// bootstrapAdmin creates the first admin account when the users table is
// empty and bootstrap credentials are configured. Without it a fresh
// deployment has no way to log in.
func bootstrapAdmin(
	ctx context.Context, cfg *config.Config, users *service.UserService,
	userStore *store.UserStore, log *logrus.Logger,
) error {
	n, err := userStore.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("checking for existing accounts: %w", err)
	}

	if n > 0 {
		return nil
	}

	if cfg.BootstrapAdminEmail == "" || cfg.BootstrapAdminPassword.Value() == "" {
		log.Warn("no accounts exist and no bootstrap admin configured; logins will fail")

		return nil
	}

	req := models.CreateUserRequest{
		Email:    cfg.BootstrapAdminEmail,
		Password: cfg.BootstrapAdminPassword.Value(),
		FullName: "Administrator",
		Role:     models.RoleAdmin,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("bootstrap admin credentials: %w", err)
	}

	if _, err := users.CreateUser(ctx, req, models.Actor{}); err != nil {
		return fmt.Errorf("creating bootstrap admin: %w", err)
	}

	log.WithField("email", cfg.BootstrapAdminEmail).Info("bootstrap admin created")

	return nil
}
