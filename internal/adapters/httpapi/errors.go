package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		message = fmt.Sprintf("%s (request %s)", message, rid)
	}
	http.Error(w, message, status)
}
