// Package devapi serves the activities REST contract over any activityapi.Client.
// Backed by the in-memory backend it is the local stand-in for the real server.
package devapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/nullable"

	"github.com/mergington/activity-board/internal/ports/out/activityapi"
)

// NewRouter constructs the REST router. A nil logger discards request logs.
func NewRouter(api activityapi.Client, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := &handlers{api: api, log: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/activities", h.listActivities)
	r.Post("/activities/{activityName}/signup", h.signup)
	r.Delete("/activities/{activityName}/participants", h.unregister)
	return r
}

type handlers struct {
	api activityapi.Client
	log *slog.Logger
}

type envelope struct {
	Message nullable.Nullable[string] `json:"message,omitempty"`
	Detail  nullable.Nullable[string] `json:"detail,omitempty"`
}

func (h *handlers) listActivities(w http.ResponseWriter, r *http.Request) {
	cat, err := h.api.ListActivities(r.Context())
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *handlers) signup(w http.ResponseWriter, r *http.Request) {
	msg, err := h.api.Signup(r.Context(), activityName(r), r.URL.Query().Get("email"))
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Message: nullable.NewNullableWithValue(msg)})
}

func (h *handlers) unregister(w http.ResponseWriter, r *http.Request) {
	msg, err := h.api.Unregister(r.Context(), activityName(r), r.URL.Query().Get("email"))
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Message: nullable.NewNullableWithValue(msg)})
}

func (h *handlers) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	if re := (*activityapi.RejectedError)(nil); errors.As(err, &re) {
		writeJSON(w, re.Status, envelope{Detail: nullable.NewNullableWithValue(re.Detail)})
		return
	}
	h.log.Error("activities request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err)
	writeJSON(w, http.StatusInternalServerError, envelope{Detail: nullable.NewNullableWithValue("Internal server error")})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// activityName returns the decoded {activityName} segment. chi matches on the
// raw path when the request carries escapes such as %2F.
func activityName(r *http.Request) string {
	name := chi.URLParam(r, "activityName")
	if r.URL.RawPath == "" {
		return name
	}
	if v, err := url.PathUnescape(name); err == nil {
		return v
	}
	return name
}
