// Package apiclient is the HTTP implementation of the activities API port.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
	"github.com/oapi-codegen/runtime"

	"github.com/mergington/activity-board/internal/domain"
	"github.com/mergington/activity-board/internal/ports/out/activityapi"
)

// RequestIDHeader carries a per-call identifier so server logs can be matched to board logs.
const RequestIDHeader = "X-Request-Id"

const maxResponseBytes = 4 << 20

// Options tunes the HTTP client. The zero value uses a fresh http.Client with no timeout.
type Options struct {
	HTTPClient *http.Client

	// Timeout bounds each call when HTTPClient is nil. Zero leaves it to the transport.
	Timeout time.Duration
}

// Client talks to the activities REST API.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	hc      *http.Client

	newRequestID func() string
}

var _ activityapi.Client = (*Client)(nil)

func New(baseURL string, opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url must be http or https, got %q", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("api url has no host: %q", baseURL)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:      strings.TrimRight(u.String(), "/"),
		hc:           hc,
		newRequestID: uuid.NewString,
	}, nil
}

// envelope is the body shape of both mutating endpoints: {message} on success,
// {detail} on failure.
type envelope struct {
	Message nullable.Nullable[string] `json:"message,omitempty"`
	Detail  nullable.Nullable[string] `json:"detail,omitempty"`
}

func (c *Client) ListActivities(ctx context.Context) (domain.Catalog, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/activities", "")
	if err != nil {
		return domain.Catalog{}, err
	}
	if !isSuccess(status) {
		return domain.Catalog{}, rejected(status, body)
	}
	var cat domain.Catalog
	if err := json.Unmarshal(body, &cat); err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %w", activityapi.ErrMalformedResponse, err)
	}
	return cat, nil
}

func (c *Client) Signup(ctx context.Context, activity, email string) (string, error) {
	path, err := activityPath(activity, "/signup")
	if err != nil {
		return "", err
	}
	query, err := emailQuery(email)
	if err != nil {
		return "", err
	}
	return c.mutate(ctx, http.MethodPost, path, query)
}

func (c *Client) Unregister(ctx context.Context, activity, email string) (string, error) {
	path, err := activityPath(activity, "/participants")
	if err != nil {
		return "", err
	}
	query, err := emailQuery(email)
	if err != nil {
		return "", err
	}
	return c.mutate(ctx, http.MethodDelete, path, query)
}

func (c *Client) mutate(ctx context.Context, method, path, query string) (string, error) {
	status, body, err := c.do(ctx, method, path, query)
	if err != nil {
		return "", err
	}
	if !isSuccess(status) {
		return "", rejected(status, body)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Errorf("%w: %w", activityapi.ErrMalformedResponse, err)
	}
	return stringOrEmpty(env.Message), nil
}

func (c *Client) do(ctx context.Context, method, path, query string) (int, []byte, error) {
	target := c.baseURL + path
	if query != "" {
		target += "?" + query
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, c.newRequestID())

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", activityapi.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read body: %w", activityapi.ErrUnavailable, err)
	}
	return resp.StatusCode, body, nil
}

// activityPath percent-encodes the activity name as a single path segment, the
// way generated OpenAPI clients encode path parameters.
func activityPath(activity, suffix string) (string, error) {
	seg, err := runtime.StyleParamWithLocation("simple", false, "activityName", runtime.ParamLocationPath, activity)
	if err != nil {
		return "", fmt.Errorf("encode activity name: %w", err)
	}
	return "/activities/" + seg + suffix, nil
}

func emailQuery(email string) (string, error) {
	frag, err := runtime.StyleParamWithLocation("form", true, "email", runtime.ParamLocationQuery, email)
	if err != nil {
		return "", fmt.Errorf("encode email: %w", err)
	}
	parsed, err := url.ParseQuery(frag)
	if err != nil {
		return "", fmt.Errorf("encode email: %w", err)
	}
	values := url.Values{}
	for k, vs := range parsed {
		for _, v := range vs {
			values.Add(k, v)
		}
	}
	return values.Encode(), nil
}

// rejected maps a non-2xx answer to a RejectedError. An undecodable body still
// counts as a rejection, just without detail.
func rejected(status int, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &activityapi.RejectedError{Status: status}
	}
	return &activityapi.RejectedError{Status: status, Detail: stringOrEmpty(env.Detail)}
}

func stringOrEmpty(n nullable.Nullable[string]) string {
	if !n.IsSpecified() || n.IsNull() {
		return ""
	}
	v, err := n.Get()
	if err != nil {
		return ""
	}
	return v
}

func isSuccess(status int) bool { return status >= 200 && status < 300 }
