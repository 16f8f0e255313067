package activityapi

import (
	"context"

	"github.com/mergington/activity-board/internal/domain"
)

// Client is the board's view of the activities REST API.
//
// Implementations must not retry, cache or merge: every ListActivities call
// returns the full catalog as the server currently reports it.
type Client interface {
	// ListActivities returns the whole catalog (GET /activities).
	ListActivities(ctx context.Context) (domain.Catalog, error)

	// Signup registers email for the activity (POST /activities/{name}/signup)
	// and returns the server's success message.
	Signup(ctx context.Context, activity, email string) (string, error)

	// Unregister removes email from the activity
	// (DELETE /activities/{name}/participants) and returns the server's success message.
	Unregister(ctx context.Context, activity, email string) (string, error)
}
