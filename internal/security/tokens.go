package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/credtrailhq/credtrail/internal/models"
)

// Token type constants for the typ claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Token lifetimes.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// tokenLeeway absorbs small clock skew between instances.
const tokenLeeway = 30 * time.Second

// Sentinel errors for token validation.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims are the JWT claims carried by credtrail tokens.
type Claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email,omitempty"`
	Role  models.Role `json:"role,omitempty"`
	Type  string      `json:"typ"`
}

// TokenService mints and verifies HS256 JWTs. It supports dual-secret
// rotation: tokens are always signed with the current secret but verify
// against either the current or the previous one, so a secret can be
// rotated without invalidating every session at once.
type TokenService struct {
	currentSecret  []byte
	previousSecret []byte
}

// NewTokenService creates a TokenService. previousSecret may be empty when
// no rotation is in progress.
func NewTokenService(currentSecret, previousSecret string) *TokenService {
	s := &TokenService{currentSecret: []byte(currentSecret)}
	if previousSecret != "" {
		s.previousSecret = []byte(previousSecret)
	}

	return s
}

// MintAccessToken signs a short-lived access token for the user.
func (s *TokenService) MintAccessToken(user *models.User) (string, error) {
	return s.mint(user, TokenTypeAccess, AccessTokenTTL)
}

// MintRefreshToken signs a long-lived refresh token for the user.
func (s *TokenService) MintRefreshToken(user *models.User) (string, error) {
	return s.mint(user, TokenTypeRefresh, RefreshTokenTTL)
}

func (s *TokenService) mint(user *models.User, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: user.Email,
		Role:  user.Role,
		Type:  typ,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.currentSecret)
}

// VerifyAccess parses and validates an access token.
func (s *TokenService) VerifyAccess(tokenString string) (*Claims, error) {
	return s.verify(tokenString, TokenTypeAccess)
}

// VerifyRefresh parses and validates a refresh token.
func (s *TokenService) VerifyRefresh(tokenString string) (*Claims, error) {
	return s.verify(tokenString, TokenTypeRefresh)
}

func (s *TokenService) verify(tokenString, wantType string) (*Claims, error) {
	claims, err := s.parseWith(tokenString, s.currentSecret)
	if err != nil && s.previousSecret != nil {
		claims, err = s.parseWith(tokenString, s.previousSecret)
	}

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	if claims.Type != wantType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}

func (s *TokenService) parseWith(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalidToken
		}

		return secret, nil
	}, jwt.WithLeeway(tokenLeeway))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
