// Package main provides a standalone seeding script that loads demo
// accounts, providers, and facilities into PostgreSQL for local development.
//
// Usage:
//
//	DATABASE_URL=postgres://... ENCRYPTION_KEY=<hex 32-byte key> go run ./scripts/seed
//
// Re-running is safe: rows that already exist are skipped.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

// config holds environment-driven seed settings.
type config struct {
	DatabaseURL string
	Password    string
	DryRun      bool
	enc         *encryptor
}

// report holds the final seeding summary.
type report struct {
	Target            string
	UsersCreated      int
	UsersSkipped      int
	ProvidersCreated  int
	ProvidersSkipped  int
	FacilitiesCreated int
	FacilitiesSkipped int
	Duration          time.Duration
	DryRun            bool
	Err               error
}

func main() {
	cfg := loadConfig()
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	// DEA numbers are encrypted at rest; the script needs the same key the
	// API server uses so seeded rows decrypt transparently.
	encKey := os.Getenv("ENCRYPTION_KEY")
	if encKey == "" {
		slog.Error("ENCRYPTION_KEY is required (hex-encoded 32-byte AES-256 key)")
		os.Exit(1)
	}

	enc, err := newEncryptor(encKey)
	if err != nil {
		slog.Error("failed to initialize encryption", "error", err)
		os.Exit(1)
	}
	cfg.enc = enc

	slog.Info("seeding demo data", "dry_run", cfg.DryRun)

	start := time.Now()
	r, err := runSeed(context.Background(), cfg)
	r.Duration = time.Since(start)
	if err != nil {
		r.Err = err
		slog.Error("seeding failed", "error", err)
	}
	printReport(&r, cfg.Password)
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads configuration from environment variables.
func loadConfig() config {
	return config{
		DatabaseURL: envOr("DATABASE_URL", ""),
		Password:    envOr("SEED_PASSWORD", "credtrail-demo"),
		DryRun:      os.Getenv("DRY_RUN") == "true" || os.Getenv("DRY_RUN") == "1",
	}
}

// runSeed executes the full seeding pipeline in one transaction.
func runSeed(ctx context.Context, cfg config) (report, error) {
	r := report{
		Target: sanitizeURL(cfg.DatabaseURL),
		DryRun: cfg.DryRun,
	}

	if cfg.DryRun {
		slog.Info("dry run, skipping PostgreSQL writes")
		r.UsersCreated = len(demoUsers)
		r.ProvidersCreated = len(demoProviders)
		r.FacilitiesCreated = len(demoFacilities)
		return r, nil
	}

	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return r, fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return r, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	r.UsersCreated, r.UsersSkipped, err = insertUsers(ctx, tx, cfg.Password)
	if err != nil {
		return r, fmt.Errorf("seed users: %w", err)
	}
	slog.Info("seeded users", "created", r.UsersCreated, "skipped", r.UsersSkipped)

	r.ProvidersCreated, r.ProvidersSkipped, err = insertProviders(ctx, tx, cfg.enc)
	if err != nil {
		return r, fmt.Errorf("seed providers: %w", err)
	}
	slog.Info("seeded providers", "created", r.ProvidersCreated, "skipped", r.ProvidersSkipped)

	r.FacilitiesCreated, r.FacilitiesSkipped, err = insertFacilities(ctx, tx)
	if err != nil {
		return r, fmt.Errorf("seed facilities: %w", err)
	}
	slog.Info("seeded facilities", "created", r.FacilitiesCreated, "skipped", r.FacilitiesSkipped)

	if err := tx.Commit(ctx); err != nil {
		return r, fmt.Errorf("commit: %w", err)
	}
	slog.Info("transaction committed")
	return r, nil
}

// printReport outputs the final seeding summary.
func printReport(r *report, password string) {
	fmt.Println()
	fmt.Println("=== CredTrail Seed Report ===")
	if r.DryRun {
		fmt.Println("MODE: DRY RUN (no changes made)")
	}
	fmt.Printf("Target: %s\n", r.Target)
	fmt.Println()
	fmt.Printf("Users:      %d created, %d already present\n", r.UsersCreated, r.UsersSkipped)
	fmt.Printf("Providers:  %d created, %d already present\n", r.ProvidersCreated, r.ProvidersSkipped)
	fmt.Printf("Facilities: %d created, %d already present\n", r.FacilitiesCreated, r.FacilitiesSkipped)
	fmt.Printf("\nDuration: %.1fs\n", r.Duration.Seconds())
	if r.Err != nil {
		fmt.Printf("Status: FAILED: %v\n", r.Err)
		return
	}
	fmt.Println("Status: SUCCESS")

	if r.UsersCreated > 0 {
		fmt.Println()
		fmt.Println("Demo accounts (shared password):")
		for _, u := range demoUsers {
			fmt.Printf("  %-28s %s\n", u.Email, u.Role)
		}
		fmt.Printf("Password: %s\n", password)
	}
}
