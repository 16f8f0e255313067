package board

import (
	"reflect"
	"testing"

	"github.com/mergington/activity-board/internal/domain"
)

func chessClubCatalog() domain.Catalog {
	return domain.NewCatalog(domain.Activity{
		Name:            "Chess Club",
		Description:     "Learn strategies and compete",
		Schedule:        "Fri 3pm",
		MaxParticipants: 10,
		Participants:    []string{"a@x.com"},
	})
}

func optionValues(opts []Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Value)
	}
	return out
}

func TestRender_ChessClubScenario(t *testing.T) {
	t.Parallel()

	b := Render(chessClubCatalog())

	if len(b.Cards) != 1 {
		t.Fatalf("cards=%d, want 1", len(b.Cards))
	}
	card := b.Cards[0]
	if card.Name != "Chess Club" || card.Schedule != "Fri 3pm" || card.Description != "Learn strategies and compete" {
		t.Fatalf("card=%+v", card)
	}
	if got := card.Availability(); got != "9 spots left" {
		t.Fatalf("Availability()=%q, want %q", got, "9 spots left")
	}
	want := []ParticipantRow{{Email: "a@x.com", Activity: "Chess Club"}}
	if !reflect.DeepEqual(card.Participants, want) {
		t.Fatalf("participants=%+v, want %+v", card.Participants, want)
	}
	if got := optionValues(b.Options); !reflect.DeepEqual(got, []string{"", "Chess Club"}) {
		t.Fatalf("options=%v", got)
	}
	if !b.Options[0].Placeholder || b.Options[0].Label != PlaceholderLabel {
		t.Fatalf("first option=%+v, want placeholder", b.Options[0])
	}
}

func TestRender_IsIdempotent(t *testing.T) {
	t.Parallel()

	c := domain.NewCatalog(
		domain.Activity{Name: "Gym Class", MaxParticipants: 30, Participants: []string{"john@x.com", "olivia@x.com"}},
		domain.Activity{Name: "Art Club", MaxParticipants: 15},
	)
	first := Render(c)
	second := Render(c)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Render not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestRender_KeepsCatalogOrderAndEmptyRoster(t *testing.T) {
	t.Parallel()

	c := domain.NewCatalog(
		domain.Activity{Name: "Zumba", MaxParticipants: 2},
		domain.Activity{Name: "Archery", MaxParticipants: 3, Participants: []string{"x@x.com", "x@x.com"}},
	)
	b := Render(c)

	if got := optionValues(b.Options); !reflect.DeepEqual(got, []string{"", "Zumba", "Archery"}) {
		t.Fatalf("options=%v", got)
	}
	if b.Cards[0].Name != "Zumba" || len(b.Cards[0].Participants) != 0 {
		t.Fatalf("first card=%+v, want Zumba without participants", b.Cards[0])
	}
	// Duplicates are rendered as the server sent them.
	if len(b.Cards[1].Participants) != 2 || b.Cards[1].SpotsLeft != 1 {
		t.Fatalf("second card=%+v", b.Cards[1])
	}
}

func TestRender_SpotsLeftMatchesRoster(t *testing.T) {
	t.Parallel()

	c := domain.NewCatalog(
		domain.Activity{Name: "A", MaxParticipants: 12, Participants: []string{"1", "2"}},
		domain.Activity{Name: "B", MaxParticipants: 1, Participants: []string{"1"}},
		domain.Activity{Name: "C", MaxParticipants: 0},
	)
	for i, card := range Render(c).Cards {
		a := c.Activities()[i]
		if card.SpotsLeft != a.MaxParticipants-len(a.Participants) {
			t.Fatalf("%s SpotsLeft=%d", card.Name, card.SpotsLeft)
		}
		if card.SpotsLeft < 0 {
			t.Fatalf("%s SpotsLeft negative for well-formed input", card.Name)
		}
	}
}

func TestRender_EmptyCatalogKeepsPlaceholder(t *testing.T) {
	t.Parallel()

	b := Render(domain.Catalog{})
	if len(b.Cards) != 0 {
		t.Fatalf("cards=%d, want 0", len(b.Cards))
	}
	if got := optionValues(b.Options); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("options=%v", got)
	}
}
