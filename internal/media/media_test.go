package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/krishiconnect/krishi-backend/internal/apperr"
)

var generatedName = regexp.MustCompile(`^[0-9a-f]{32}_`)

func TestGenerateName(t *testing.T) {
	cases := map[string]string{
		"field.jpg":             "field.jpg",
		"../../etc/passwd":      "passwd",
		`C:\photos\my farm.png`: "my_farm.png",
		"":                      "upload",
		"..":                    "upload",
	}
	for in, wantBase := range cases {
		got := GenerateName(in)
		if !generatedName.MatchString(got) {
			t.Errorf("GenerateName(%q) = %q, missing uuid prefix", in, got)
			continue
		}
		if base := got[33:]; base != wantBase {
			t.Errorf("GenerateName(%q) base = %q, want %q", in, base, wantBase)
		}
		if err := ValidateName(got); err != nil {
			t.Errorf("generated name %q does not validate: %v", got, err)
		}
	}

	if GenerateName("a.jpg") == GenerateName("a.jpg") {
		t.Error("expected unique names for the same upload")
	}
}

func TestValidateNameRejectsTraversal(t *testing.T) {
	for _, name := range []string{"", ".", "..", "../x.jpg", "a/b.jpg", `a\b.jpg`, "x..jpg/.."} {
		if err := ValidateName(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}

func TestLocalStoreAndOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	svc := NewService(store, "")
	ctx := context.Background()

	url, err := svc.Store(ctx, "crop.png", strings.NewReader("png-bytes"), 9)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if !strings.HasPrefix(url, "/media/") || !strings.HasSuffix(url, "_crop.png") {
		t.Fatalf("unexpected url %q", url)
	}

	name := strings.TrimPrefix(url, "/media/")
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Fatalf("file not written: %v", err)
	}

	obj, err := svc.Open(ctx, name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer obj.Body.Close()
	data, _ := io.ReadAll(obj.Body)
	if string(data) != "png-bytes" || obj.Size != 9 {
		t.Fatalf("unexpected content %q size %d", data, obj.Size)
	}

	if _, err := svc.Open(ctx, "missing.png"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := svc.Open(ctx, "../secret"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for traversal, got %v", err)
	}
}

type flakyStorage struct {
	*LocalStorage
	failAfter int
	puts      int
}

func (s *flakyStorage) Put(ctx context.Context, name string, r io.Reader, size int64, ct string) error {
	s.puts++
	if s.puts > s.failAfter {
		return errors.New("disk full")
	}
	return s.LocalStorage.Put(ctx, name, r, size, ct)
}

func multipartBody(t *testing.T, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, n := range names {
		part, err := w.CreateFormFile("files", n)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = part.Write([]byte("content of " + n))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	r.POST("/upload/images", h.UploadImages)
	r.GET("/media/:name", h.Serve)
	return r
}

func TestUploadAndServe(t *testing.T) {
	store, _ := NewLocalStorage(t.TempDir())
	r := setupRouter(NewService(store, ""))

	body, ct := multipartBody(t, "one.jpg", "two.pdf")
	req := httptest.NewRequest(http.MethodPost, "/upload/images", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ImageURLs []string `json:"image_urls"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.ImageURLs) != 2 {
		t.Fatalf("expected 2 urls, got %v", resp.ImageURLs)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.ImageURLs[0], nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 serving media, got %d", rec.Code)
	}
	if rec.Body.String() != "content of one.jpg" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", got)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/nope.jpg", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing media, got %d", rec.Code)
	}
}

func TestUploadAbortsOnFirstFailure(t *testing.T) {
	dir := t.TempDir()
	local, _ := NewLocalStorage(dir)
	r := setupRouter(NewService(&flakyStorage{LocalStorage: local, failAfter: 1}, ""))

	body, ct := multipartBody(t, "ok.jpg", "broken.jpg", "never.jpg")
	req := httptest.NewRequest(http.MethodPost, "/upload/images", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "broken.jpg") {
		t.Errorf("expected error to name the failed file, got %s", rec.Body.String())
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected the first file to remain on disk, found %d files", len(entries))
	}
}
