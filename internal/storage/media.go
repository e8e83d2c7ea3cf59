package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

var (
	// ErrUnsupportedImageType is returned for file extensions that are not
	// accepted as images
	ErrUnsupportedImageType = errors.New("unsupported image type")

	// ErrFileTooLarge is returned when an upload exceeds the size limit
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// MediaStore saves uploaded images under a base directory, one subdirectory
// per entity kind. File names are a slug of the owning record's name plus a
// random suffix, so re-uploads never clash.
type MediaStore struct {
	root     string
	maxBytes int64
}

// NewMediaStore creates a media store rooted at dir
func NewMediaStore(dir string, maxUploadMB int64) *MediaStore {
	return &MediaStore{
		root:     dir,
		maxBytes: maxUploadMB << 20,
	}
}

// SaveImage stores the uploaded file and returns its path relative to the
// media root, e.g. "uploads/stations/central-1b9d6bcd.jpg".
func (s *MediaStore) SaveImage(entity, name string, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImageType, ext)
	}
	if file.Size > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, file.Size)
	}

	relPath := filepath.Join("uploads", entity, fmt.Sprintf("%s-%s%s", Slugify(name), uuid.New().String(), ext))
	fullPath := filepath.Join(s.root, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return filepath.ToSlash(relPath), nil
}

// Remove deletes a previously stored file. A missing file is not an error.
func (s *MediaStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Root returns the base directory files are stored under
func (s *MediaStore) Root() string {
	return s.root
}

// Slugify lowercases a name and collapses anything that is not a letter or
// digit into single hyphens
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		return "item"
	}
	return slug
}
