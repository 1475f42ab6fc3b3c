// Package storage provides local-disk storage for user profile pictures.
// It defines the ImageStore interface, a disk-backed implementation, and
// the validation rules shared by every backend: a size ceiling and a
// sniffed MIME-type allowlist.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFileNotFound       = errors.New("file not found")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrInvalidContentType = errors.New("content type is not allowed")
	ErrInvalidFileName    = errors.New("file name is invalid")
)

// DefaultMaxFileSize is the maximum allowed image size in bytes (5 MiB).
const DefaultMaxFileSize = 5 * 1024 * 1024

// allowedImageTypes maps the permitted sniffed MIME types to the file
// extension used when the image is written to disk.
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// ImageStore defines the contract for profile-picture storage backends.
type ImageStore interface {
	// Save validates and stores an image for a user and returns the
	// generated file name.
	Save(ctx context.Context, userID uuid.UUID, content io.Reader) (string, error)
	// Open returns a reader over the stored image and its MIME type.
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
	// Remove deletes a stored image. Removing a missing file is not an
	// error; stale references to already-deleted files are expected.
	Remove(ctx context.Context, name string) error
}

// DiskStore stores images as flat files under a single directory.
type DiskStore struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

// NewDiskStore creates the storage directory if needed and returns a
// ready-to-use DiskStore. maxBytes <= 0 falls back to DefaultMaxFileSize.
func NewDiskStore(dir string, maxBytes int64) (*DiskStore, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileSize
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &DiskStore{dir: dir, maxBytes: maxBytes, now: time.Now}, nil
}

// Save reads the image into memory, validates its size and sniffed MIME
// type, and writes it to disk as user_<id>_<unixtime>.<ext>.
func (s *DiskStore) Save(_ context.Context, userID uuid.UUID, content io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(content, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrFileTooLarge
	}

	// Sniff the real content type; the client-supplied header is not
	// trusted.
	mime := http.DetectContentType(data)
	ext, ok := allowedImageTypes[mime]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidContentType, mime)
	}

	name := fmt.Sprintf("user_%s_%d.%s", userID, s.now().Unix(), ext)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return name, nil
}

// Open returns the stored image content and its MIME type derived from the
// file extension.
func (s *DiskStore) Open(_ context.Context, name string) (io.ReadCloser, string, error) {
	if err := validateName(name); err != nil {
		return nil, "", err
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrFileNotFound
		}
		return nil, "", fmt.Errorf("opening file: %w", err)
	}

	return f, mimeFromExt(name), nil
}

// Remove deletes the named image. A missing file is treated as success.
func (s *DiskStore) Remove(_ context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

// validateName rejects names that could escape the storage directory.
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return ErrInvalidFileName
	}
	return nil
}

func mimeFromExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
