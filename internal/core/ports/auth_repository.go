package ports

import (
	"context"
	"time"

	"github.com/elexus/guest-registry/internal/core/domain"
)

// AuthRepository defines the interface for staff account persistence.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id int) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// TouchLastLogin stamps the account's last_login with the current time.
	TouchLastLogin(ctx context.Context, id int) error
}

// TokenRevoker records session tokens that must be rejected before their
// natural expiry. Implementations key on the token's jti claim.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
