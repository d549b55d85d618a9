// Package storage keeps uploaded guest photos on the local filesystem under a
// server-managed directory, served back at /uploads/<generated name>.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/elexus/guest-registry/internal/api/metrics"
	"github.com/elexus/guest-registry/internal/core/ports"
)

const publicPrefix = "/uploads/"

// PhotoStore writes photos into dir with generated names so client-supplied
// filenames never touch the filesystem.
type PhotoStore struct {
	dir string
}

// NewPhotoStore ensures dir exists and returns a store over it.
func NewPhotoStore(dir string) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &PhotoStore{dir: dir}, nil
}

// Save writes the photo and returns its public path (e.g. /uploads/guest-<id>.jpg).
func (s *PhotoStore) Save(photo *ports.PhotoUpload) (string, error) {
	name := "guest-" + uuid.NewString() + extensionFor(photo)

	if err := os.WriteFile(filepath.Join(s.dir, name), photo.Data, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}

	metrics.PhotoBytesStored.Observe(float64(len(photo.Data)))
	return publicPrefix + name, nil
}

// Remove deletes the file behind a public path. A path that is already gone
// is not an error.
func (s *PhotoStore) Remove(publicPath string) error {
	name := strings.TrimPrefix(publicPath, publicPrefix)
	// Refuse anything that could escape the upload dir.
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid photo path %q", publicPath)
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove photo: %w", err)
	}
	return nil
}

// extensionFor picks a file extension from the original filename, falling
// back to the detected content type.
func extensionFor(photo *ports.PhotoUpload) string {
	if ext := strings.ToLower(filepath.Ext(photo.Filename)); ext != "" && len(ext) <= 5 {
		return ext
	}
	switch photo.ContentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
