package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad %s", "field"), http.StatusBadRequest},
		{Unauthorized("no header"), http.StatusUnauthorized},
		{InvalidToken("expired"), http.StatusUnauthorized},
		{Forbidden("nope"), http.StatusForbidden},
		{NotFound("farmer not found"), http.StatusNotFound},
		{Conflict("email already registered"), http.StatusConflict},
		{Storage(errors.New("disk full"), "failed to upload a.png"), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("crop not found")), http.StatusNotFound},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Errorf("Status(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestStorageErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Storage(cause, "failed to upload %s", "a.png")

	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected storage kind")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if !strings.Contains(err.Error(), "a.png") {
		t.Fatalf("expected message to name the file, got %q", err.Error())
	}
}

func TestRespondHidesUnknownErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	Respond(c, errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "pq:") {
		t.Fatalf("driver error leaked: %s", rec.Body.String())
	}
}
