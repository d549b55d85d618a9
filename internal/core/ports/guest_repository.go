package ports

import (
	"context"

	"github.com/elexus/guest-registry/internal/core/domain"
)

// ListGuestsFilter carries the query parameters for listing guests.
// Search is a case-insensitive substring matched against the name and every
// preference/notes field (OR-combined). Classes restricts results to guests
// whose class is in the set. Both filters combine with AND semantics.
type ListGuestsFilter struct {
	Search  string
	Classes []string
}

// GuestRepository defines persistence operations for guests and their visits.
type GuestRepository interface {
	List(ctx context.Context, filter ListGuestsFilter) ([]domain.Guest, error)
	Insert(ctx context.Context, g *domain.Guest) (*domain.Guest, error)
	FindByID(ctx context.Context, id int) (*domain.Guest, error)
	// Update replaces all editable fields of the guest row. The photo_path
	// column is written only when replacePhoto is true.
	Update(ctx context.Context, g *domain.Guest, replacePhoto bool) (*domain.Guest, error)
	Delete(ctx context.Context, id int) error

	InsertVisit(ctx context.Context, v *domain.Visit) (*domain.Visit, error)
	ListVisits(ctx context.Context, guestID int) ([]domain.Visit, error)

	Stats(ctx context.Context) (*domain.Stats, error)
}
