package ports

import (
	"context"
	"time"

	"github.com/elexus/guest-registry/internal/core/domain"
)

type AuthService interface {
	// Login verifies credentials and returns a signed session token together
	// with a non-sensitive account summary.
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
	// Profile returns the account behind an authenticated session.
	Profile(ctx context.Context, accountID int) (*domain.Account, error)
	// Logout revokes the session token identified by jti until its expiry.
	// Without a configured revocation store this is a no-op and logout remains
	// client-side only.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}
