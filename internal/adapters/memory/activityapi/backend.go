package activityapi

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/mergington/activity-board/internal/domain"
	"github.com/mergington/activity-board/internal/ports/out/activityapi"
)

// Backend is an in-memory implementation of activityapi.Client that keeps the
// server side of the contract: rejections use the same statuses and detail
// texts the activities API reports.
// It is safe for concurrent use.
type Backend struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]*domain.Activity
}

func NewBackend(seed domain.Catalog) *Backend {
	b := &Backend{byName: make(map[string]*domain.Activity)}
	for _, a := range seed.Activities() {
		a := a
		if _, ok := b.byName[a.Name]; !ok {
			b.order = append(b.order, a.Name)
		}
		b.byName[a.Name] = &a
	}
	return b
}

func (b *Backend) ListActivities(ctx context.Context) (domain.Catalog, error) {
	_ = ctx
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Activity, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, *b.byName[name])
	}
	return domain.NewCatalog(out...), nil
}

func (b *Backend) Signup(ctx context.Context, activity, email string) (string, error) {
	_ = ctx
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.byName[activity]
	if !ok {
		return "", &activityapi.RejectedError{Status: http.StatusNotFound, Detail: "Activity not found"}
	}
	if a.HasParticipant(email) {
		return "", &activityapi.RejectedError{Status: http.StatusBadRequest, Detail: "Student already signed up for this activity"}
	}
	if a.SpotsLeft() <= 0 {
		return "", &activityapi.RejectedError{Status: http.StatusBadRequest, Detail: "Activity is full"}
	}
	a.Participants = append(a.Participants, email)
	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

func (b *Backend) Unregister(ctx context.Context, activity, email string) (string, error) {
	_ = ctx
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.byName[activity]
	if !ok {
		return "", &activityapi.RejectedError{Status: http.StatusNotFound, Detail: "Activity not found"}
	}
	idx := -1
	for i, p := range a.Participants {
		if p == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", &activityapi.RejectedError{Status: http.StatusBadRequest, Detail: "Student is not signed up for this activity"}
	}
	a.Participants = append(a.Participants[:idx:idx], a.Participants[idx+1:]...)
	return fmt.Sprintf("Unregistered %s from %s", email, activity), nil
}
