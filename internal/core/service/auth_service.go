package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/elexus/guest-registry/internal/api/metrics"
	"github.com/elexus/guest-registry/internal/core/domain"
	"github.com/elexus/guest-registry/internal/core/ports"
)

// AuthService implements login, profile lookup, and token revocation.
type AuthService struct {
	repo      ports.AuthRepository
	revoker   ports.TokenRevoker // nil disables server-side logout
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, revoker ports.TokenRevoker, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		revoker:   revoker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login verifies the submitted credentials and returns a signed session
// token plus the account summary. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.repo.TouchLastLogin(ctx, account.ID); err != nil {
		// Non-critical: the session is still valid without the stamp.
		s.logger.Warn().Err(err).Int("account_id", account.ID).Msg("failed to update last_login")
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", account.Username).Str("role", account.Role).Msg("login")

	return token, account, nil
}

// Profile returns the non-sensitive account record behind a session.
func (s *AuthService) Profile(ctx context.Context, accountID int) (*domain.Account, error) {
	return s.repo.FindByID(ctx, accountID)
}

// Logout revokes the session token until its natural expiry. When no
// revocation store is configured the call succeeds without effect and logout
// stays client-side only.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.revoker == nil || jti == "" {
		return nil
	}
	return s.revoker.Revoke(ctx, jti, expiresAt)
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       account.ID,
		"username":  account.Username,
		"role":      account.Role,
		"full_name": account.FullName,
		"jti":       uuid.NewString(),
		"iat":       now.Unix(),
		"exp":       now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
