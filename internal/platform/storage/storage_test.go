package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
)

// pngBytes returns data that sniffs as image/png.
func pngBytes(size int) []byte {
	sig := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if size < len(sig) {
		return sig
	}
	data := make([]byte, size)
	copy(data, sig)
	return data
}

func newTestStore(t *testing.T, maxBytes int64) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir(), maxBytes)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestDiskStore_SaveAndOpen(t *testing.T) {
	store := newTestStore(t, 0)
	store.now = func() time.Time { return time.Unix(1700000000, 0) }

	userID := uuid.New()
	content := pngBytes(256)
	name, err := store.Save(context.Background(), userID, bytes.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "user_" + userID.String() + "_1700000000.png"; name != want {
		t.Errorf("unexpected file name: got %s, want %s", name, want)
	}

	rc, mime, err := store.Open(context.Background(), name)
	if err != nil {
		t.Fatalf("unexpected error opening file: %v", err)
	}
	defer rc.Close()

	if mime != "image/png" {
		t.Errorf("expected image/png, got %s", mime)
	}

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("failed to read content: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Error("stored content does not match original")
	}
}

func TestDiskStore_RejectsOversizedFile(t *testing.T) {
	store := newTestStore(t, 512)

	_, err := store.Save(context.Background(), uuid.New(), bytes.NewReader(pngBytes(1024)))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestDiskStore_RejectsInvalidContentType(t *testing.T) {
	store := newTestStore(t, 0)

	_, err := store.Save(context.Background(), uuid.New(), bytes.NewReader([]byte("just some plain text content")))
	if !errors.Is(err, ErrInvalidContentType) {
		t.Fatalf("expected ErrInvalidContentType, got %v", err)
	}
}

func TestDiskStore_OpenMissingFile(t *testing.T) {
	store := newTestStore(t, 0)

	_, _, err := store.Open(context.Background(), "user_1_123.png")
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestDiskStore_RemoveIsIdempotent(t *testing.T) {
	store := newTestStore(t, 0)

	name, err := store.Save(context.Background(), uuid.New(), bytes.NewReader(pngBytes(64)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Remove(context.Background(), name); err != nil {
		t.Fatalf("unexpected error removing file: %v", err)
	}
	// Removing again is not an error.
	if err := store.Remove(context.Background(), name); err != nil {
		t.Fatalf("expected remove of missing file to succeed, got %v", err)
	}

	_, _, err = store.Open(context.Background(), name)
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound after removal, got %v", err)
	}
}

func TestDiskStore_RejectsTraversalNames(t *testing.T) {
	store := newTestStore(t, 0)

	for _, name := range []string{"", "../escape.png", "a/b.png", "a\\b.png", "..", "user_..png_.."} {
		if _, _, err := store.Open(context.Background(), name); !errors.Is(err, ErrInvalidFileName) {
			t.Errorf("Open(%q): expected ErrInvalidFileName, got %v", name, err)
		}
		if err := store.Remove(context.Background(), name); !errors.Is(err, ErrInvalidFileName) {
			t.Errorf("Remove(%q): expected ErrInvalidFileName, got %v", name, err)
		}
	}
}

func TestMimeFromExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.jpg", "image/jpeg"},
		{"a.jpeg", "image/jpeg"},
		{"a.PNG", "image/png"},
		{"a.gif", "image/gif"},
		{"a.webp", "image/webp"},
		{"a.bin", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := mimeFromExt(tt.name); got != tt.want {
			t.Errorf("mimeFromExt(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
