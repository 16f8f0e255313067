package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mergington/activity-board/internal/adapters/contracttest"
	"github.com/mergington/activity-board/internal/adapters/devapi"
	memactivityapi "github.com/mergington/activity-board/internal/adapters/memory/activityapi"
	"github.com/mergington/activity-board/internal/domain"
	"github.com/mergington/activity-board/internal/ports/out/activityapi"
)

func TestContract_HTTPClient(t *testing.T) {
	contracttest.RunActivityAPI(t, func(t *testing.T, seed domain.Catalog) (activityapi.Client, func()) {
		t.Helper()
		srv := httptest.NewServer(devapi.NewRouter(memactivityapi.NewBackend(seed), nil))
		c, err := New(srv.URL, Options{HTTPClient: srv.Client()})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return c, srv.Close
	})
}

type capturedRequest struct {
	method    string
	rawPath   string
	path      string
	rawQuery  string
	requestID string
	accept    string
}

func newCapturingServer(t *testing.T, status int, body string) (*httptest.Server, func() []capturedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []capturedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, capturedRequest{
			method:    r.Method,
			rawPath:   r.URL.EscapedPath(),
			path:      r.URL.Path,
			rawQuery:  r.URL.RawQuery,
			requestID: r.Header.Get(RequestIDHeader),
			accept:    r.Header.Get("Accept"),
		})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedRequest(nil), seen...)
	}
}

func TestClient_Signup_PercentEncodesNameAndEmail(t *testing.T) {
	t.Parallel()

	srv, seen := newCapturingServer(t, http.StatusOK, `{"message":"Signed up!"}`)
	c, err := New(srv.URL+"/", Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	msg, err := c.Signup(context.Background(), "Drama/Theater Club", "a+b@x.com")
	if err != nil {
		t.Fatalf("Signup err=%v", err)
	}
	if msg != "Signed up!" {
		t.Fatalf("msg=%q", msg)
	}

	reqs := seen()
	if len(reqs) != 1 {
		t.Fatalf("requests=%d, want 1", len(reqs))
	}
	got := reqs[0]
	if got.method != http.MethodPost {
		t.Fatalf("method=%s", got.method)
	}
	if got.rawPath != "/activities/Drama%2FTheater%20Club/signup" {
		t.Fatalf("escaped path=%q", got.rawPath)
	}
	if got.rawQuery != "email=a%2Bb%40x.com" {
		t.Fatalf("query=%q", got.rawQuery)
	}
	if got.requestID == "" || got.accept != "application/json" {
		t.Fatalf("headers: request id=%q accept=%q", got.requestID, got.accept)
	}
}

func TestClient_Signup_EmptyInputsAreSentVerbatim(t *testing.T) {
	t.Parallel()

	srv, seen := newCapturingServer(t, http.StatusNotFound, `{"detail":"Activity not found"}`)
	c, err := New(srv.URL, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.Signup(context.Background(), "", "")
	re := (*activityapi.RejectedError)(nil)
	if !errors.As(err, &re) || re.Status != http.StatusNotFound || re.Detail != "Activity not found" {
		t.Fatalf("err=%v, want 404 Activity not found", err)
	}
	got := seen()[0]
	if got.path != "/activities//signup" || got.rawQuery != "email=" {
		t.Fatalf("path=%q query=%q", got.path, got.rawQuery)
	}
}

func TestClient_Unregister_UsesDelete(t *testing.T) {
	t.Parallel()

	srv, seen := newCapturingServer(t, http.StatusOK, `{"message":"Removed"}`)
	c, err := New(srv.URL, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	msg, err := c.Unregister(context.Background(), "Chess Club", "a@x.com")
	if err != nil || msg != "Removed" {
		t.Fatalf("Unregister msg=%q err=%v", msg, err)
	}
	got := seen()[0]
	if got.method != http.MethodDelete || got.path != "/activities/Chess Club/participants" {
		t.Fatalf("request=%+v", got)
	}
}

func TestClient_RejectionWithoutDetail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "null detail", body: `{"detail":null}`},
		{name: "not json", body: `<html>bad gateway</html>`},
		{name: "structured detail", body: `{"detail":[{"loc":["query","email"]}]}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv, _ := newCapturingServer(t, http.StatusBadGateway, tt.body)
			c, err := New(srv.URL, Options{})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			_, err = c.Unregister(context.Background(), "Chess Club", "a@x.com")
			re := (*activityapi.RejectedError)(nil)
			if !errors.As(err, &re) {
				t.Fatalf("err=%v, want *RejectedError", err)
			}
			if re.Status != http.StatusBadGateway || re.Detail != "" {
				t.Fatalf("rejection=%+v", re)
			}
		})
	}
}

func TestClient_MalformedBodies(t *testing.T) {
	t.Parallel()

	srv, _ := newCapturingServer(t, http.StatusOK, `not json`)
	c, err := New(srv.URL, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.ListActivities(context.Background()); !errors.Is(err, activityapi.ErrMalformedResponse) {
		t.Fatalf("ListActivities err=%v, want ErrMalformedResponse", err)
	}
	if _, err := c.Signup(context.Background(), "Chess Club", "a@x.com"); !errors.Is(err, activityapi.ErrMalformedResponse) {
		t.Fatalf("Signup err=%v, want ErrMalformedResponse", err)
	}
}

func TestClient_ServerGone_IsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.ListActivities(context.Background()); !errors.Is(err, activityapi.ErrUnavailable) {
		t.Fatalf("ListActivities err=%v, want ErrUnavailable", err)
	}
	if _, err := c.Unregister(context.Background(), "Chess Club", "a@x.com"); !errors.Is(err, activityapi.ErrUnavailable) {
		t.Fatalf("Unregister err=%v, want ErrUnavailable", err)
	}
}

func TestNew_RejectsBadURLs(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "localhost:8000", "ftp://example.com", "http://"} {
		if _, err := New(raw, Options{}); err == nil {
			t.Fatalf("New(%q) err=nil", raw)
		} else if !strings.Contains(err.Error(), "api url") {
			t.Fatalf("New(%q) err=%v", raw, err)
		}
	}
}
