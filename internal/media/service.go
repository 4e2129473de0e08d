package media

import (
	"context"
	"errors"
	"io"
	"log"
	"mime/multipart"

	"github.com/krishiconnect/krishi-backend/internal/apperr"
)

type Service interface {
	Store(ctx context.Context, originalName string, r io.Reader, size int64) (string, error)
	StoreAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
	Open(ctx context.Context, name string) (*Object, error)
}

type service struct {
	storage Storage
	baseURL string
}

// NewService returns URLs as baseURL + "/media/<name>". An empty baseURL
// gives root-relative URLs.
func NewService(storage Storage, baseURL string) Service {
	return &service{storage: storage, baseURL: baseURL}
}

func (s *service) url(name string) string {
	return s.baseURL + "/media/" + name
}

// Store writes one file and returns its public URL.
func (s *service) Store(ctx context.Context, originalName string, r io.Reader, size int64) (string, error) {
	name := GenerateName(originalName)
	if err := s.storage.Put(ctx, name, r, size, ContentType(name)); err != nil {
		return "", apperr.Storage(err, "Failed to upload %s", originalName)
	}
	log.Printf("✅ Stored media %s", name)
	return s.url(name), nil
}

// StoreAll stops at the first failing file. Files written before it stay.
func (s *service) StoreAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, apperr.Validation("No files uploaded")
	}
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, apperr.Storage(err, "Failed to upload %s", fh.Filename)
		}
		url, err := s.Store(ctx, fh.Filename, f, fh.Size)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *service) Open(ctx context.Context, name string) (*Object, error) {
	obj, err := s.storage.Open(ctx, name)
	switch {
	case errors.Is(err, ErrInvalidName):
		return nil, apperr.Validation("Invalid file name")
	case errors.Is(err, ErrNotFound):
		return nil, apperr.NotFound("File not found")
	case err != nil:
		return nil, err
	}
	return obj, nil
}
