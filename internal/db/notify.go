package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jinzhu/inflection"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/dbpool"
)

const (
	listenChannel  = "audit_events"
	minReconnect   = 1 * time.Second
	maxReconnect   = 30 * time.Second
	notifyDeadline = 2 * time.Minute
)

// validChannel matches safe PostgreSQL LISTEN channel names.
var validChannel = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Broadcaster sends messages to connected clients.
type Broadcaster interface {
	BroadcastEvent(eventType string, data json.RawMessage)
}

// NotifyBridge subscribes to PostgreSQL LISTEN/NOTIFY on the audit_events
// channel and forwards each payload to the WebSocket hub. Stores emit a
// pg_notify in the same transaction as the audit row, so only committed
// changes reach the hub.
type NotifyBridge struct {
	log  *logrus.Logger
	pool *dbpool.Pool
	hub  Broadcaster
}

// NewNotifyBridge creates a NotifyBridge wired to the given pool and hub.
func NewNotifyBridge(log *logrus.Logger, pool *dbpool.Pool, hub Broadcaster) *NotifyBridge {
	return &NotifyBridge{
		log:  log,
		pool: pool,
		hub:  hub,
	}
}

// Start verifies database reachability, then launches the listen loop in a
// background goroutine. Failures after startup are handled by reconnecting
// inside the loop, not surfaced to the caller.
func (b *NotifyBridge) Start(ctx context.Context) error {
	if !validChannel.MatchString(listenChannel) {
		return fmt.Errorf("notify bridge: invalid channel name %q", listenChannel)
	}

	if err := b.pool.Ping(ctx); err != nil {
		return fmt.Errorf("notify bridge: database not reachable: %w", err)
	}

	go b.run(ctx)

	return nil
}

// run keeps one LISTEN session alive, reconnecting with jittered backoff
// whenever the session drops, until the context is cancelled.
func (b *NotifyBridge) run(ctx context.Context) {
	wait := minReconnect

	for ctx.Err() == nil {
		err := b.listenOnce(ctx)
		if err == nil || ctx.Err() != nil {
			return
		}

		b.log.WithError(err).WithField("retry_in", wait).
			Warn("notify bridge connection lost, reconnecting")

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		wait = nextReconnectWait(wait)
	}
}

// listenOnce holds a dedicated connection on LISTEN and forwards
// notifications until the connection fails or the context is cancelled.
func (b *NotifyBridge) listenOnce(ctx context.Context) error {
	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Release()

	// LISTEN takes the channel name inline, not as a bind parameter;
	// pgx.Identifier quotes it.
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{listenChannel}.Sanitize()); err != nil {
		return fmt.Errorf("executing LISTEN: %w", err)
	}

	b.log.WithField("channel", listenChannel).Info("notify bridge listening")

	for {
		// Bound each wait so the loop notices context cancellation even
		// when the channel is quiet.
		if err := conn.Conn().PgConn().Conn().SetReadDeadline(time.Now().Add(notifyDeadline)); err != nil {
			return fmt.Errorf("setting read deadline: %w", err)
		}

		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}

			return fmt.Errorf("waiting for notification: %w", err)
		}

		b.forward(n)
	}
}

// forward pushes one notification to the hub. The payload is the envelope
// the store wrote: table, action, record_id and audit row id, never the
// snapshots themselves (pg_notify caps payloads at 8000 bytes; clients
// fetch diffs through the audit API).
func (b *NotifyBridge) forward(n *pgconn.Notification) {
	b.log.WithFields(logrus.Fields{
		"channel": n.Channel,
		"pid":     n.PID,
	}).Debug("notification received")

	var payload struct {
		Table  string `json:"table"`
		Action string `json:"action"`
	}
	if err := json.Unmarshal([]byte(n.Payload), &payload); err != nil || payload.Table == "" || payload.Action == "" {
		b.log.Warn("dropping notification without table/action")

		return
	}

	b.hub.BroadcastEvent(eventType(payload.Table, payload.Action), json.RawMessage(n.Payload))
}

// eventType builds the dotted event name for a change, e.g. audit rows on
// the providers table with action "update" become "provider.update".
func eventType(table, action string) string {
	return inflection.Singular(table) + "." + action
}

// nextReconnectWait doubles the wait with ±25% jitter, capped at
// maxReconnect, so restarting replicas do not reconnect in lockstep.
func nextReconnectWait(current time.Duration) time.Duration {
	next := current * 2
	if next > maxReconnect {
		next = maxReconnect
	}

	jitter := float64(next) * (0.75 + rand.Float64()*0.5) //nolint:gosec // jitter doesn't need crypto rand.

	return time.Duration(jitter)
}
