package ports

import (
	"context"

	"github.com/elexus/guest-registry/internal/core/domain"
)

// GuestInput carries the editable fields of a guest profile.
type GuestInput struct {
	Name            string
	Class           string
	Alcohol         string
	Cigarette       string
	Cigar           string
	SpecialRequests string
	OtherInfo       string
}

// PhotoUpload is an in-memory photo received with a create/update call.
// Size and content-type limits are enforced at the API boundary before a
// PhotoUpload is constructed.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// GuestService defines the use-case operations over the guest registry.
// Every operation requires an authenticated session; the acting account id is
// passed in by the transport layer where attribution is recorded.
type GuestService interface {
	List(ctx context.Context, filter ListGuestsFilter) ([]domain.Guest, error)
	Create(ctx context.Context, input GuestInput, photo *PhotoUpload, createdBy int) (*domain.Guest, error)
	Get(ctx context.Context, id int) (*domain.Guest, error)
	Update(ctx context.Context, id int, input GuestInput, photo *PhotoUpload) (*domain.Guest, error)
	Delete(ctx context.Context, id int) error
	AddVisit(ctx context.Context, guestID int, notes string, createdBy int) (*domain.Visit, error)
	ListVisits(ctx context.Context, guestID int) ([]domain.Visit, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

// PhotoStore persists uploaded guest photos and serves them back under a
// public path. Remove is best-effort; callers must not fail a critical
// operation when file removal errors.
type PhotoStore interface {
	Save(photo *PhotoUpload) (string, error)
	Remove(publicPath string) error
}
