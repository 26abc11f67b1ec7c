package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/metrics"
	"github.com/credtrailhq/credtrail/internal/models"
	"github.com/credtrailhq/credtrail/internal/security"
)

// loginFloor is the minimum wall time for a login attempt. Together with
// the dummy hash below it keeps response timing from revealing whether an
// email exists.
const loginFloor = 100 * time.Millisecond

// dummyHash is compared against when the email is unknown, so the
// not-found path costs a bcrypt verification like the found path does.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("credtrail-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthUserStore defines the account lookups AuthService depends on.
type AuthUserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	RecordLogin(ctx context.Context, id string) error
}

// Compile-time check: *AuthService must satisfy domain.AuthService.
var _ domain.AuthService = (*AuthService)(nil)

// AuthService handles login, token refresh and identity lookup. Logins and
// lockouts are recorded asynchronously through the audit worker under the
// synthetic "sessions" table.
type AuthService struct {
	users  AuthUserStore
	tokens *security.TokenService
	guard  *security.BruteForceGuard
	audit  *AuditWorker
	log    *logrus.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(
	users AuthUserStore,
	tokens *security.TokenService,
	guard *security.BruteForceGuard,
	audit *AuditWorker,
	log *logrus.Logger,
) *AuthService {
	return &AuthService{users: users, tokens: tokens, guard: guard, audit: audit, log: log}
}

// Login verifies credentials and returns an access/refresh token pair.
// Every outcome takes at least loginFloor.
func (s *AuthService) Login(
	ctx context.Context, req models.LoginRequest, requestID string,
) (*models.TokenPair, error) {
	start := time.Now()
	defer func() {
		if remaining := loginFloor - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}()

	if s.guard.IsBlocked(req.Email) {
		return nil, models.ErrAccountLocked
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrUserNotFound) {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password)) //nolint:errcheck // always fails, run for timing only.
		s.recordFailure(req.Email, requestID)

		return nil, models.ErrInvalidCredentials
	}

	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailure(req.Email, requestID)

		return nil, models.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, models.ErrUserInactive
	}

	s.guard.Reset(req.Email)

	// Login should not fail because the last-login stamp did.
	if err := s.users.RecordLogin(ctx, user.ID); err != nil {
		s.log.WithError(err).Warn("recording last login failed")
	}

	pair, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}

	pair.User = user

	s.audit.Enqueue(&AuditJob{
		Table:  "sessions",
		Action: "insert",
		Data:   map[string]any{"email": user.Email, "outcome": "success"},
		Actor:  models.Actor{ID: user.ID, Email: user.Email, RequestID: requestID},
	})

	return pair, nil
}

// recordFailure counts a failed attempt and, when it trips the lockout,
// queues the lockout audit entry.
func (s *AuthService) recordFailure(email, requestID string) {
	metrics.LoginFailures.Inc()

	if s.guard.RecordFailure(email) {
		s.audit.Enqueue(&AuditJob{
			Table:  "sessions",
			Action: "insert",
			Data:   map[string]any{"email": email, "outcome": "lockout"},
			Actor:  models.Actor{Email: email, RequestID: requestID},
		})
	}
}

// Refresh exchanges a valid refresh token for a fresh pair. The user must
// still exist and be active.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUser(ctx, claims.Subject)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, models.ErrInvalidCredentials
	}

	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, models.ErrUserInactive
	}

	return s.mintPair(user)
}

// Me returns the account behind a validated access token's subject.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUser(ctx, userID)
}

func (s *AuthService) mintPair(user *models.User) (*models.TokenPair, error) {
	access, err := s.tokens.MintAccessToken(user)
	if err != nil {
		return nil, err
	}

	refresh, err := s.tokens.MintRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(security.AccessTokenTTL.Seconds()),
	}, nil
}
