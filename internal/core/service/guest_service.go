package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/elexus/guest-registry/internal/api/metrics"
	"github.com/elexus/guest-registry/internal/core/domain"
	"github.com/elexus/guest-registry/internal/core/ports"
)

// GuestService implements the CRUD use cases over the guest registry.
type GuestService struct {
	repo   ports.GuestRepository
	photos ports.PhotoStore
	logger zerolog.Logger
}

func NewGuestService(repo ports.GuestRepository, photos ports.PhotoStore, logger zerolog.Logger) *GuestService {
	return &GuestService{repo: repo, photos: photos, logger: logger}
}

// List returns guests matching the filter, newest-created first. An empty
// filter returns all guests.
func (s *GuestService) List(ctx context.Context, filter ports.ListGuestsFilter) ([]domain.Guest, error) {
	return s.repo.List(ctx, filter)
}

// Create validates and persists a new guest, attributing it to createdBy.
// The photo, when present, is stored first so the row records its path.
func (s *GuestService) Create(ctx context.Context, input ports.GuestInput, photo *ports.PhotoUpload, createdBy int) (*domain.Guest, error) {
	if err := validateGuestInput(input); err != nil {
		return nil, err
	}

	photoPath := ""
	if photo != nil {
		path, err := s.photos.Save(photo)
		if err != nil {
			return nil, fmt.Errorf("store photo: %w", err)
		}
		photoPath = path
	}

	guest := &domain.Guest{
		Name:            strings.TrimSpace(input.Name),
		Class:           domain.GuestClass(input.Class),
		PhotoPath:       photoPath,
		Alcohol:         input.Alcohol,
		Cigarette:       input.Cigarette,
		Cigar:           input.Cigar,
		SpecialRequests: input.SpecialRequests,
		OtherInfo:       input.OtherInfo,
		CreatedBy:       createdBy,
	}

	created, err := s.repo.Insert(ctx, guest)
	if err != nil {
		if photoPath != "" {
			// The row never existed; drop the orphaned file.
			if rmErr := s.photos.Remove(photoPath); rmErr != nil {
				s.logger.Warn().Err(rmErr).Str("photo_path", photoPath).Msg("failed to remove orphaned photo")
			}
		}
		return nil, err
	}

	metrics.GuestsCreatedTotal.WithLabelValues(string(created.Class)).Inc()
	s.logger.Info().Int("guest_id", created.ID).Str("class", string(created.Class)).Msg("guest created")

	return created, nil
}

// Get returns a single guest augmented with its creator's display name.
func (s *GuestService) Get(ctx context.Context, id int) (*domain.Guest, error) {
	return s.repo.FindByID(ctx, id)
}

// Update replaces all editable fields of the guest. The photo reference is
// replaced only when a new photo is supplied; the previous file is then
// removed best-effort.
func (s *GuestService) Update(ctx context.Context, id int, input ports.GuestInput, photo *ports.PhotoUpload) (*domain.Guest, error) {
	if err := validateGuestInput(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	photoPath := ""
	if photo != nil {
		path, err := s.photos.Save(photo)
		if err != nil {
			return nil, fmt.Errorf("store photo: %w", err)
		}
		photoPath = path
	}

	guest := &domain.Guest{
		ID:              id,
		Name:            strings.TrimSpace(input.Name),
		Class:           domain.GuestClass(input.Class),
		PhotoPath:       photoPath,
		Alcohol:         input.Alcohol,
		Cigarette:       input.Cigarette,
		Cigar:           input.Cigar,
		SpecialRequests: input.SpecialRequests,
		OtherInfo:       input.OtherInfo,
	}

	updated, err := s.repo.Update(ctx, guest, photo != nil)
	if err != nil {
		return nil, err
	}

	if photo != nil && existing.PhotoPath != "" && existing.PhotoPath != photoPath {
		if rmErr := s.photos.Remove(existing.PhotoPath); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("photo_path", existing.PhotoPath).Msg("failed to remove replaced photo")
		}
	}

	s.logger.Info().Int("guest_id", id).Msg("guest updated")
	return updated, nil
}

// Delete removes the guest row and, best-effort, its stored photo. A failed
// file removal never blocks the row deletion.
func (s *GuestService) Delete(ctx context.Context, id int) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.PhotoPath != "" {
		if rmErr := s.photos.Remove(existing.PhotoPath); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("photo_path", existing.PhotoPath).Msg("failed to remove guest photo")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.GuestsDeletedTotal.Inc()
	s.logger.Info().Int("guest_id", id).Msg("guest deleted")
	return nil
}

// AddVisit appends an immutable visit note to an existing guest. Notes may be
// empty.
func (s *GuestService) AddVisit(ctx context.Context, guestID int, notes string, createdBy int) (*domain.Visit, error) {
	if _, err := s.repo.FindByID(ctx, guestID); err != nil {
		return nil, err
	}

	visit, err := s.repo.InsertVisit(ctx, &domain.Visit{
		GuestID:   guestID,
		Notes:     notes,
		CreatedBy: createdBy,
	})
	if err != nil {
		return nil, err
	}

	metrics.VisitsRecordedTotal.Inc()
	return visit, nil
}

// ListVisits returns a guest's visits newest-first, each augmented with the
// recorder's display name.
func (s *GuestService) ListVisits(ctx context.Context, guestID int) ([]domain.Visit, error) {
	return s.repo.ListVisits(ctx, guestID)
}

// Stats returns the aggregate counters shown on the dashboard.
func (s *GuestService) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.repo.Stats(ctx)
}

func validateGuestInput(input ports.GuestInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return &domain.ValidationError{Reason: "name is required"}
	}
	if input.Class == "" {
		return &domain.ValidationError{Reason: "class is required"}
	}
	if !domain.GuestClass(input.Class).Valid() {
		return &domain.ValidationError{Reason: fmt.Sprintf("class must be one of: %s", classList())}
	}
	return nil
}

func classList() string {
	names := make([]string, len(domain.GuestClasses))
	for i, c := range domain.GuestClasses {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
