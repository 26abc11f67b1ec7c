// Package store provides focused, single-concern data access stores
// for the credtrail credentialing dashboard.
//
// Each store owns one domain (providers, facilities, audit, etc.) and
// embeds shared helpers (Pool, crypto, logger) via the Base struct.
// Stores never import each other — shared logic lives in this file
// or in dedicated helper files (audit_capture.go, scan.go).
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/crypto"
	"github.com/credtrailhq/credtrail/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool   *dbpool.Pool
	Log    *logrus.Logger
	Crypto *crypto.Service
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// beginTx starts a read-write transaction.
func (b *Base) beginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := b.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return tx, nil
}

// beginReadTx starts a read-only transaction, used where several reads
// must observe one snapshot (stats, exports).
func (b *Base) beginReadTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := b.Pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("beginning read transaction: %w", err)
	}

	return tx, nil
}
