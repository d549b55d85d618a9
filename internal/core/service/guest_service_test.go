package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/elexus/guest-registry/internal/core/domain"
	"github.com/elexus/guest-registry/internal/core/ports"
)

type stubGuestRepo struct {
	guests    map[int]*domain.Guest
	visits    map[int][]domain.Visit
	nextID    int
	insertErr error
}

func newStubGuestRepo() *stubGuestRepo {
	return &stubGuestRepo{
		guests: make(map[int]*domain.Guest),
		visits: make(map[int][]domain.Visit),
		nextID: 1,
	}
}

func cloneGuest(g *domain.Guest) *domain.Guest {
	if g == nil {
		return nil
	}
	clone := *g
	return &clone
}

func (r *stubGuestRepo) List(_ context.Context, _ ports.ListGuestsFilter) ([]domain.Guest, error) {
	out := make([]domain.Guest, 0, len(r.guests))
	for _, g := range r.guests {
		out = append(out, *g)
	}
	return out, nil
}

func (r *stubGuestRepo) Insert(_ context.Context, g *domain.Guest) (*domain.Guest, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	copy := cloneGuest(g)
	copy.ID = r.nextID
	r.nextID++
	r.guests[copy.ID] = cloneGuest(copy)
	return copy, nil
}

func (r *stubGuestRepo) FindByID(_ context.Context, id int) (*domain.Guest, error) {
	if g, ok := r.guests[id]; ok {
		return cloneGuest(g), nil
	}
	return nil, domain.ErrGuestNotFound
}

func (r *stubGuestRepo) Update(_ context.Context, g *domain.Guest, replacePhoto bool) (*domain.Guest, error) {
	existing, ok := r.guests[g.ID]
	if !ok {
		return nil, domain.ErrGuestNotFound
	}
	copy := cloneGuest(g)
	if !replacePhoto {
		copy.PhotoPath = existing.PhotoPath
	}
	r.guests[g.ID] = cloneGuest(copy)
	return copy, nil
}

func (r *stubGuestRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.guests[id]; !ok {
		return domain.ErrGuestNotFound
	}
	delete(r.guests, id)
	return nil
}

func (r *stubGuestRepo) InsertVisit(_ context.Context, v *domain.Visit) (*domain.Visit, error) {
	copy := *v
	copy.ID = len(r.visits[v.GuestID]) + 1
	r.visits[v.GuestID] = append([]domain.Visit{copy}, r.visits[v.GuestID]...)
	return &copy, nil
}

func (r *stubGuestRepo) ListVisits(_ context.Context, guestID int) ([]domain.Visit, error) {
	return r.visits[guestID], nil
}

func (r *stubGuestRepo) Stats(_ context.Context) (*domain.Stats, error) {
	return &domain.Stats{TotalGuests: len(r.guests)}, nil
}

type stubPhotoStore struct {
	saved   []string
	removed []string
	saveErr error
	nextID  int
}

func (s *stubPhotoStore) Save(photo *ports.PhotoUpload) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.nextID++
	path := fmt.Sprintf("/uploads/photo-%d", s.nextID)
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *stubPhotoStore) Remove(publicPath string) error {
	s.removed = append(s.removed, publicPath)
	return nil
}

func validInput() ports.GuestInput {
	return ports.GuestInput{
		Name:    "Ahmet",
		Class:   "VIP",
		Alcohol: "Vodka",
	}
}

func TestGuestService_Create_Success(t *testing.T) {
	repo := newStubGuestRepo()
	photos := &stubPhotoStore{}
	svc := NewGuestService(repo, photos, zerolog.Nop())

	created, err := svc.Create(context.Background(), validInput(), nil, 7)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if created.Name != "Ahmet" || created.Class != domain.ClassVIP {
		t.Fatalf("unexpected guest: %+v", created)
	}
	if created.CreatedBy != 7 {
		t.Fatalf("expected attribution to account 7, got %d", created.CreatedBy)
	}
}

func TestGuestService_Create_WithPhoto(t *testing.T) {
	repo := newStubGuestRepo()
	photos := &stubPhotoStore{}
	svc := NewGuestService(repo, photos, zerolog.Nop())

	photo := &ports.PhotoUpload{Filename: "face.jpg", ContentType: "image/jpeg", Data: []byte{0xff}}
	created, err := svc.Create(context.Background(), validInput(), photo, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.PhotoPath == "" {
		t.Fatalf("expected photo path to be recorded")
	}
	if len(photos.saved) != 1 {
		t.Fatalf("expected one saved photo, got %d", len(photos.saved))
	}
}

func TestGuestService_Create_Validation(t *testing.T) {
	repo := newStubGuestRepo()
	svc := NewGuestService(repo, &stubPhotoStore{}, zerolog.Nop())

	cases := []struct {
		name  string
		input ports.GuestInput
	}{
		{"missing name", ports.GuestInput{Class: "VIP"}},
		{"blank name", ports.GuestInput{Name: "   ", Class: "VIP"}},
		{"missing class", ports.GuestInput{Name: "Ahmet"}},
		{"unknown class", ports.GuestInput{Name: "Ahmet", Class: "Platinum"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input, nil, 1)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(repo.guests) != 0 {
				t.Fatalf("invalid input must persist nothing")
			}
		})
	}
}

func TestGuestService_Create_InsertFailureRemovesPhoto(t *testing.T) {
	repo := newStubGuestRepo()
	repo.insertErr = errors.New("db down")
	photos := &stubPhotoStore{}
	svc := NewGuestService(repo, photos, zerolog.Nop())

	photo := &ports.PhotoUpload{Filename: "face.jpg", ContentType: "image/jpeg", Data: []byte{0xff}}
	if _, err := svc.Create(context.Background(), validInput(), photo, 1); err == nil {
		t.Fatalf("expected insert error")
	}
	if len(photos.removed) != 1 {
		t.Fatalf("expected orphaned photo removal, removed=%v", photos.removed)
	}
}

func TestGuestService_Update_PreservesPhotoWithoutNewUpload(t *testing.T) {
	repo := newStubGuestRepo()
	photos := &stubPhotoStore{}
	svc := NewGuestService(repo, photos, zerolog.Nop())

	photo := &ports.PhotoUpload{Filename: "face.jpg", ContentType: "image/jpeg", Data: []byte{0xff}}
	created, err := svc.Create(context.Background(), validInput(), photo, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	input := validInput()
	input.Alcohol = "Whisky"
	updated, err := svc.Update(context.Background(), created.ID, input, nil)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Alcohol != "Whisky" {
		t.Fatalf("expected field update, got %+v", updated)
	}
	if updated.PhotoPath != created.PhotoPath {
		t.Fatalf("photo path must survive an update without a new photo: %q != %q", updated.PhotoPath, created.PhotoPath)
	}
	if len(photos.removed) != 0 {
		t.Fatalf("no photo should be removed: %v", photos.removed)
	}
}

func TestGuestService_Update_ReplacesPhoto(t *testing.T) {
	repo := newStubGuestRepo()
	photos := &stubPhotoStore{}
	svc := NewGuestService(repo, photos, zerolog.Nop())

	first := &ports.PhotoUpload{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte{0xff}}
	created, err := svc.Create(context.Background(), validInput(), first, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	second := &ports.PhotoUpload{Filename: "b.jpg", ContentType: "image/jpeg", Data: []byte{0xfe}}
	updated, err := svc.Update(context.Background(), created.ID, validInput(), second)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PhotoPath == created.PhotoPath {
		t.Fatalf("expected new photo path")
	}
	if len(photos.removed) != 1 || photos.removed[0] != created.PhotoPath {
		t.Fatalf("expected old photo removal, removed=%v", photos.removed)
	}
}

func TestGuestService_Update_NotFound(t *testing.T) {
	repo := newStubGuestRepo()
	svc := NewGuestService(repo, &stubPhotoStore{}, zerolog.Nop())

	if _, err := svc.Update(context.Background(), 42, validInput(), nil); !errors.Is(err, domain.ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound, got %v", err)
	}
}

func TestGuestService_Delete_RemovesPhotoAndRow(t *testing.T) {
	repo := newStubGuestRepo()
	photos := &stubPhotoStore{}
	svc := NewGuestService(repo, photos, zerolog.Nop())

	photo := &ports.PhotoUpload{Filename: "face.jpg", ContentType: "image/jpeg", Data: []byte{0xff}}
	created, err := svc.Create(context.Background(), validInput(), photo, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound after delete, got %v", err)
	}
	if len(photos.removed) != 1 {
		t.Fatalf("expected photo removal on delete")
	}

	// Deleting twice fails the same way.
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound on second delete, got %v", err)
	}
}

func TestGuestService_AddVisit(t *testing.T) {
	repo := newStubGuestRepo()
	svc := NewGuestService(repo, &stubPhotoStore{}, zerolog.Nop())

	created, err := svc.Create(context.Background(), validInput(), nil, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	visit, err := svc.AddVisit(context.Background(), created.ID, "ordered the usual", 3)
	if err != nil {
		t.Fatalf("add visit failed: %v", err)
	}
	if visit.GuestID != created.ID || visit.CreatedBy != 3 {
		t.Fatalf("unexpected visit: %+v", visit)
	}

	visits, err := svc.ListVisits(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("list visits failed: %v", err)
	}
	if len(visits) != 1 || visits[0].Notes != "ordered the usual" {
		t.Fatalf("unexpected visits: %+v", visits)
	}
}

func TestGuestService_AddVisit_UnknownGuest(t *testing.T) {
	repo := newStubGuestRepo()
	svc := NewGuestService(repo, &stubPhotoStore{}, zerolog.Nop())

	if _, err := svc.AddVisit(context.Background(), 99, "notes", 1); !errors.Is(err, domain.ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound, got %v", err)
	}
}

func TestGuestService_AddVisit_EmptyNotesAllowed(t *testing.T) {
	repo := newStubGuestRepo()
	svc := NewGuestService(repo, &stubPhotoStore{}, zerolog.Nop())

	created, err := svc.Create(context.Background(), validInput(), nil, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.AddVisit(context.Background(), created.ID, "", 1); err != nil {
		t.Fatalf("empty notes must be accepted: %v", err)
	}
}
