package contracttest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mergington/activity-board/internal/domain"
	activityapiport "github.com/mergington/activity-board/internal/ports/out/activityapi"
)

type CleanupFunc = func()

// ActivityAPIFactory builds a client whose server starts from seed.
type ActivityAPIFactory func(t *testing.T, seed domain.Catalog) (activityapiport.Client, CleanupFunc)

// Seed is the catalog every contract run starts from.
func Seed() domain.Catalog {
	return domain.NewCatalog(
		domain.Activity{
			Name:            "Chess Club",
			Description:     "Learn strategies",
			Schedule:        "Fri 3pm",
			MaxParticipants: 10,
			Participants:    []string{"a@x.com"},
		},
		domain.Activity{
			Name:            "Drama & Theater",
			Description:     "Act, direct, produce",
			Schedule:        "Mon 4pm",
			MaxParticipants: 5,
		},
	)
}

func RunActivityAPI(t *testing.T, newClient ActivityAPIFactory) {
	t.Helper()
	ctx := context.Background()

	client, cleanup := newClient(t, Seed())
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	c, err := client.ListActivities(ctx)
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if got := c.Names(); len(got) != 2 || got[0] != "Chess Club" || got[1] != "Drama & Theater" {
		t.Fatalf("ListActivities names=%v, want [Chess Club Drama & Theater]", got)
	}
	chess, _ := c.Get("Chess Club")
	if chess.SpotsLeft() != 9 || chess.Schedule != "Fri 3pm" {
		t.Fatalf("Chess Club=%+v", chess)
	}

	// Names and emails that need percent-encoding.
	const email = "new+student@x.com"
	msg, err := client.Signup(ctx, "Drama & Theater", email)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if msg == "" {
		t.Fatalf("Signup returned empty message")
	}
	c, err = client.ListActivities(ctx)
	if err != nil {
		t.Fatalf("ListActivities after signup: %v", err)
	}
	drama, _ := c.Get("Drama & Theater")
	if !drama.HasParticipant(email) {
		t.Fatalf("participants=%v, want %q present", drama.Participants, email)
	}

	// Duplicate signup is rejected with 400 and a detail.
	_, err = client.Signup(ctx, "Drama & Theater", email)
	requireRejected(t, err, http.StatusBadRequest)

	// Unknown activity is rejected with 404.
	_, err = client.Signup(ctx, "Knitting", email)
	requireRejected(t, err, http.StatusNotFound)

	msg, err = client.Unregister(ctx, "Drama & Theater", email)
	if err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	if msg == "" {
		t.Fatalf("Unregister returned empty message")
	}
	c, err = client.ListActivities(ctx)
	if err != nil {
		t.Fatalf("ListActivities after unregister: %v", err)
	}
	drama, _ = c.Get("Drama & Theater")
	if drama.HasParticipant(email) {
		t.Fatalf("participants=%v, want %q removed", drama.Participants, email)
	}

	// Unregistering someone not on the roster is rejected.
	_, err = client.Unregister(ctx, "Chess Club", "not-in-list@x.com")
	requireRejected(t, err, http.StatusBadRequest)
}

func requireRejected(t *testing.T, err error, status int) {
	t.Helper()
	re := (*activityapiport.RejectedError)(nil)
	if !errors.As(err, &re) {
		t.Fatalf("err=%v (type=%T), want *RejectedError", err, err)
	}
	if re.Status != status {
		t.Fatalf("status=%d, want %d", re.Status, status)
	}
	if re.Detail == "" {
		t.Fatalf("rejection carried no detail")
	}
}
