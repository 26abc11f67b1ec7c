package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/credtrailhq/credtrail/internal/models"
)

// UserStore handles dashboard accounts. Users are deactivated, never
// deleted, so audit rows keep a resolvable actor.
type UserStore struct {
	Base
}

// NewUserStore creates a new UserStore.
func NewUserStore(base Base) *UserStore {
	return &UserStore{Base: base}
}

// CreateUser inserts an account with an already-hashed password. A
// duplicate email surfaces as ErrDuplicateKey.
func (s *UserStore) CreateUser(
	ctx context.Context,
	req models.CreateUserRequest,
	passwordHash string,
	actor models.Actor,
) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	query := `INSERT INTO users (email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	row := tx.QueryRow(ctx, query, req.Email, passwordHash, req.FullName, req.Role)

	u, err := scanUser(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created user: %w", mapPgError(err, models.ErrUserNotFound))
	}

	newSnap, err := snapshotRow(ctx, tx, "users", u.ID)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "users", u.ID, "insert", nil, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create user: %w", err)
	}

	return u, nil
}

// GetUser fetches one account by ID.
func (s *UserStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(s.Pool.QueryRow(ctx, query, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	return u, nil
}

// GetUserByEmail fetches one account by email, case-insensitively.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	u, err := scanUser(s.Pool.QueryRow(ctx, query, email).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}

	return u, nil
}

// ListUsers returns a filtered page of accounts plus a has-more flag.
func (s *UserStore) ListUsers(ctx context.Context, opts models.UserQueryOpts) ([]models.User, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var fb filterBuilder

	fb.eq("role", string(opts.Role))

	if opts.Active != nil {
		fb.add("active = $"+strconv.Itoa(fb.nextArg()), *opts.Active)
	}

	limit := clampLimit(opts.Limit)

	query := fmt.Sprintf(
		"SELECT %s FROM users%s ORDER BY email LIMIT $%d OFFSET $%d",
		userColumns, fb.where(), fb.nextArg(), fb.nextArg()+1,
	)
	args := append(fb.args, limit+1, clampOffset(opts.Offset))

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("listing users: %w", err)
	}

	return collectRows(rows, limit, scanUser)
}

// UpdateUser changes an account's name, role or active flag. An update
// that would leave the system without an active admin is rejected with
// ErrLastAdmin; the target row is locked for the check.
func (s *UserStore) UpdateUser(
	ctx context.Context,
	id string,
	req models.UpdateUserRequest,
	actor models.Actor,
) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var sc setClause

	if req.FullName != nil {
		sc.set("full_name", *req.FullName)
	}

	if req.Role != nil {
		sc.set("role", *req.Role)
	}

	if req.Active != nil {
		sc.set("active", *req.Active)
	}

	if sc.empty() {
		return s.GetUser(ctx, id)
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var (
		curRole   models.Role
		curActive bool
	)

	err = tx.QueryRow(ctx, "SELECT role, active FROM users WHERE id = $1 FOR UPDATE", id).
		Scan(&curRole, &curActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("locking user row: %w", err)
	}

	losesAdmin := (req.Role != nil && *req.Role != models.RoleAdmin) ||
		(req.Active != nil && !*req.Active)

	if curRole == models.RoleAdmin && curActive && losesAdmin {
		var others int

		err := tx.QueryRow(ctx,
			"SELECT count(*) FROM users WHERE role = 'admin' AND active AND id <> $1", id,
		).Scan(&others)
		if err != nil {
			return nil, fmt.Errorf("counting active admins: %w", err)
		}

		if others == 0 {
			return nil, models.ErrLastAdmin
		}
	}

	oldSnap, err := snapshotRow(ctx, tx, "users", id)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING %s",
		sc.sql(), sc.nextArg(), userColumns,
	)
	args := append(sc.args, id)

	u, err := scanUser(tx.QueryRow(ctx, query, args...).Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning updated user: %w", err)
	}

	newSnap, err := snapshotRow(ctx, tx, "users", id)
	if err != nil {
		return nil, err
	}

	if err := s.recordChange(ctx, tx, "users", id, "update", oldSnap, newSnap, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update user: %w", err)
	}

	return u, nil
}

// RecordLogin stamps last_login_at. Login telemetry does not touch
// updated_at and writes no audit row here; session events go through the
// audit worker instead.
func (s *UserStore) RecordLogin(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.Pool.Exec(ctx, "UPDATE users SET last_login_at = now() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("recording login: %w", err)
	}

	return nil
}

// CountUsers returns the total number of accounts, used by the bootstrap
// admin check at startup.
func (s *UserStore) CountUsers(ctx context.Context) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var n int
	if err := s.Pool.QueryRow(ctx, "SELECT count(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}

	return n, nil
}
