// Package images manages product image files: copying uploads into the
// managed directory, generating thumbnails, and rendering data URLs.
package images

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"tillbook/internal/core/apperror"
)

const (
	thumbDir  = "thumbs"
	thumbSize = 256
)

// Store keeps image files under one managed directory.
type Store struct {
	dir string
}

// NewStore creates the managed directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, thumbDir), 0o755); err != nil {
		return nil, fmt.Errorf("create images directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SaveAll copies the given files into the managed directory under fresh
// names and returns the managed paths. Paths already inside the directory
// are kept as-is; missing sources are skipped.
func (s *Store) SaveAll(paths []string) ([]string, error) {
	saved := make([]string, 0, len(paths))
	for _, path := range paths {
		if strings.HasPrefix(path, s.dir) {
			saved = append(saved, path)
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}

		ext := filepath.Ext(path)
		if ext == "" {
			ext = ".png"
		}
		destPath := filepath.Join(s.dir, uuid.NewString()+ext)

		if err := copyFile(path, destPath); err != nil {
			return nil, fmt.Errorf("copy image: %w", err)
		}
		if err := s.writeThumbnail(destPath); err != nil {
			// A failed thumbnail is not fatal; the original remains usable.
			os.Remove(s.thumbPath(destPath))
		}
		saved = append(saved, destPath)
	}
	return saved, nil
}

// ReadDataURL returns the image as a base64 data URL.
func (s *Store) ReadDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperror.NewNotFound("image", path)
	}
	return "data:" + mimeForExt(filepath.Ext(path)) + ";base64," +
		base64.StdEncoding.EncodeToString(data), nil
}

// ThumbnailDataURL returns the thumbnail as a base64 data URL, falling back
// to the full image when no thumbnail exists.
func (s *Store) ThumbnailDataURL(path string) (string, error) {
	if url, err := s.ReadDataURL(s.thumbPath(path)); err == nil {
		return url, nil
	}
	return s.ReadDataURL(path)
}

// Remove deletes an image and its thumbnail. Missing files are not errors.
func (s *Store) Remove(path string) {
	os.Remove(path)
	os.Remove(s.thumbPath(path))
}

func (s *Store) writeThumbnail(path string) error {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}
	thumb := imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)
	return imaging.Save(thumb, s.thumbPath(path))
}

func (s *Store) thumbPath(path string) string {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); !isRasterExt(ext) {
		name = strings.TrimSuffix(name, ext) + ".png"
	}
	return filepath.Join(s.dir, thumbDir, name)
}

func isRasterExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".gif", ".tif", ".tiff", ".bmp":
		return true
	}
	return false
}

func mimeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	}
	return "image/png"
}

func copyFile(srcPath, destPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	return os.WriteFile(destPath, data, 0o644)
}
