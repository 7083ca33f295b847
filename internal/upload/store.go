// Package upload stores user-uploaded images on disk and hands out the
// relative URLs they are served under.
package upload

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// URLPrefix is the path uploaded files are served under.
const URLPrefix = "/uploads/"

// MaxFileSize is the largest accepted upload (5 MiB).
const MaxFileSize = 5 << 20

// Store writes files into Dir.
type Store struct {
	Dir string
	now func() time.Time
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir, now: time.Now}, nil
}

// Save persists src under a generated name that keeps the original extension
// and returns the name.
func (s *Store) Save(originalName string, src io.Reader) (string, error) {
	name := s.generateName(originalName)
	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}

func (s *Store) generateName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString(), ext)
}

// ContentType detects the type of a stored file from its content.
func (s *Store) ContentType(name string) (string, error) {
	mt, err := mimetype.DetectFile(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	return mt.String(), nil
}

// Remove deletes a stored file in a detached goroutine. Failures are logged
// and never reach the caller. done, if non-nil, is closed when the attempt finishes.
func (s *Store) Remove(name string, done chan<- struct{}) {
	go func() {
		if done != nil {
			defer close(done)
		}
		if err := s.remove(name); err != nil {
			slog.Warn("delete upload failed", "file", name, "error", err)
		}
	}()
}

func (s *Store) remove(name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("invalid upload name %q", name)
	}
	return os.Remove(filepath.Join(s.Dir, name))
}

// URL returns the relative reference for a stored file name.
func URL(name string) string {
	return URLPrefix + name
}

// IsImage reports whether a declared content type is an image type.
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}
