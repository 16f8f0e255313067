package domain

// Activity is one entry of the activity catalog as reported by the server.
type Activity struct {
	// Name is the catalog key. It is not part of the JSON object body.
	Name string `json:"-"`

	Description     string `json:"description"`
	Schedule        string `json:"schedule"`
	MaxParticipants int    `json:"max_participants"`

	// Participants is kept in server order; duplicates are not rejected here.
	Participants []string `json:"participants"`
}

// SpotsLeft is capacity minus the current participant count.
// It is computed for display only and is never stored.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// HasParticipant reports whether email appears in the roster.
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

func (a Activity) clone() Activity {
	out := a
	if a.Participants != nil {
		out.Participants = append([]string(nil), a.Participants...)
	}
	return out
}
