// Package media saves uploaded images under the directory layout used for
// businesses, products, events and profiles.
package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted upload.
const MaxImageSize = 5 << 20

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var (
	ErrTooLarge    = errors.New("file too large (max 5MB)")
	ErrUnsupported = errors.New("invalid file type, only JPG/JPEG/PNG/GIF/WEBP allowed")
)

// Store writes files below Root. Saved paths are relative and slash-separated.
type Store struct {
	Root string
}

func NewStore(root string) *Store {
	return &Store{Root: root}
}

// Directory layout.
func BusinessMainDir(businessID uint) string {
	return path.Join("business", strconv.FormatUint(uint64(businessID), 10), "main")
}

func BusinessOptionalDir(businessID uint) string {
	return path.Join("business", strconv.FormatUint(uint64(businessID), 10), "optional")
}

func ProductDir(businessID uint) string {
	return path.Join("business", strconv.FormatUint(uint64(businessID), 10), "products")
}

const (
	ProfileDir = "profiles"
	EventDir   = "events"
)

// Save copies an uploaded file into dir under a fresh name and returns its
// relative path.
func (s *Store) Save(file *multipart.FileHeader, dir string) (string, error) {
	if file.Size > MaxImageSize {
		return "", ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExts[ext] {
		return "", ErrUnsupported
	}

	rel := path.Join(dir, uuid.NewString()+ext)
	dst := filepath.Join(s.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", rel, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", rel, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("write %s: %w", rel, err)
	}
	return rel, nil
}

// Remove deletes a previously saved file. Missing files are not an error.
func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	clean := path.Clean("/" + rel)
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(clean)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
