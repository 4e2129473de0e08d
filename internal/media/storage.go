// Package media stores uploaded files and serves them under /media/<name>.
package media

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Storage.Open for unknown names.
var ErrNotFound = errors.New("media not found")

// ErrInvalidName rejects names that could escape the media root.
var ErrInvalidName = errors.New("invalid media name")

// Object is an opened stored file.
type Object struct {
	Body io.ReadCloser
	Size int64
}

// Storage is a flat namespace of files.
type Storage interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (*Object, error)
}

// GenerateName prefixes the base of the original file name with a random
// uuid so uploads never collide.
func GenerateName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return -1
		case ' ':
			return '_'
		}
		return r
	}, base)
	if base == "" || base == "." || base == ".." {
		base = "upload"
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + base
}

// ValidateName accepts only plain file names.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, "/\\\x00") || strings.Contains(name, "..") {
		return ErrInvalidName
	}
	return nil
}

// ContentType picks a content type from the file extension.
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	case ".svg":
		return "image/svg+xml"
	case ".mp4":
		return "video/mp4"
	case ".txt":
		return "text/plain"
	case ".csv":
		return "text/csv"
	}
	return "application/octet-stream"
}
