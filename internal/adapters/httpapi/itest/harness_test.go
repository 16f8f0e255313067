package itest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mergington/activity-board/internal/adapters/apiclient"
	"github.com/mergington/activity-board/internal/adapters/devapi"
	"github.com/mergington/activity-board/internal/adapters/httpapi"
	memactivityapi "github.com/mergington/activity-board/internal/adapters/memory/activityapi"
	memclock "github.com/mergington/activity-board/internal/adapters/memory/clock"
	"github.com/mergington/activity-board/internal/app/board"
)

// testStack runs the dev backend and the board web surface as two real
// HTTP servers wired through the API client.
type testStack struct {
	api     *httptest.Server
	baseURL string
	client  *http.Client

	rt  *board.Runtime
	clk *memclock.ManualClock
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	backend := memactivityapi.NewBackend(memactivityapi.SampleCatalog())
	apiSrv := httptest.NewServer(devapi.NewRouter(backend, nil))
	t.Cleanup(apiSrv.Close)

	client, err := apiclient.New(apiSrv.URL, apiclient.Options{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}

	clk := memclock.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	rt := board.NewRuntime(client, clk, httpapi.RequestConfirmer{}, nil, board.Options{})
	if err := rt.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewServer(rt)))
	t.Cleanup(srv.Close)

	return &testStack{
		api:     apiSrv,
		baseURL: srv.URL,
		client:  srv.Client(),
		rt:      rt,
		clk:     clk,
	}
}

func (s *testStack) url(path string) string {
	if strings.HasPrefix(path, "/") {
		return s.baseURL + path
	}
	return s.baseURL + "/" + path
}

// postForm follows the redirect back to the board, like a browser would.
func (s *testStack) postForm(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()

	resp, err := s.client.PostForm(s.url(path), form)
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func (s *testStack) page(t *testing.T) string {
	t.Helper()

	resp, err := s.client.Get(s.url("/"))
	if err != nil {
		t.Fatalf("get /: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status=%d body=%s", resp.StatusCode, string(b))
	}
	return string(b)
}

func requireContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Fatalf("body missing %q\nbody=%s", want, body)
	}
}

func requireNotContains(t *testing.T, body, unwanted string) {
	t.Helper()
	if strings.Contains(body, unwanted) {
		t.Fatalf("body unexpectedly contains %q\nbody=%s", unwanted, body)
	}
}
