package apperr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestKindOf(t *testing.T) {
	if KindOf(Validation("bad")) != KindValidation {
		t.Error("validation error lost its kind")
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("plain errors must default to internal")
	}
	wrapped := Wrap(errors.New("cause"), "context")
	if KindOf(wrapped) != KindInternal || !errors.Is(wrapped, wrapped.Err) {
		t.Error("wrapped error must stay internal and keep its cause")
	}
}

func TestRespondStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{InsufficientStock("out of stock"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Forbidden("not yours"), http.StatusForbidden},
		{Conflict("already done"), http.StatusConflict},
		{Wrap(errors.New("boom"), "db fell over"), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Respond(c, tc.err)
		if w.Code != tc.want {
			t.Errorf("Respond(%v) wrote %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}

func TestRespondHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, Wrap(errors.New("pq: connection refused"), "failed to fetch orders"))
	body := w.Body.String()
	if strings.Contains(body, "pq:") || strings.Contains(body, "connection refused") {
		t.Errorf("internal cause leaked to client: %s", body)
	}
}
