package board

import (
	"fmt"

	"github.com/mergington/activity-board/internal/domain"
)

const (
	// PlaceholderLabel is the "no selection" entry that leads the activity options.
	PlaceholderLabel = "-- Select an activity --"

	NoParticipantsText = "No participants yet."
	LoadingText        = "Loading activities..."
)

// Board is the rendered form of one catalog snapshot.
type Board struct {
	Cards   []Card
	Options []Option
}

// Card is one activity in the list.
type Card struct {
	Name        string
	Description string
	Schedule    string
	SpotsLeft   int

	// Participants is empty when nobody signed up; renderers then show NoParticipantsText.
	Participants []ParticipantRow
}

// Availability is the human text for the spots-left count.
func (c Card) Availability() string {
	return fmt.Sprintf("%d spots left", c.SpotsLeft)
}

// ParticipantRow is a participant line together with its unregister control.
// The control is tagged with both the email and the owning activity.
type ParticipantRow struct {
	Email    string
	Activity string
}

// Option is one entry of the activity select control.
type Option struct {
	Value       string
	Label       string
	Placeholder bool
}

func placeholderOption() Option {
	return Option{Value: "", Label: PlaceholderLabel, Placeholder: true}
}

// Render builds the card list and the select options from the same catalog,
// in catalog order. It has no side effects.
func Render(c domain.Catalog) Board {
	activities := c.Activities()
	b := Board{
		Cards:   make([]Card, 0, len(activities)),
		Options: make([]Option, 0, len(activities)+1),
	}
	b.Options = append(b.Options, placeholderOption())
	for _, a := range activities {
		card := Card{
			Name:        a.Name,
			Description: a.Description,
			Schedule:    a.Schedule,
			SpotsLeft:   a.SpotsLeft(),
		}
		for _, p := range a.Participants {
			card.Participants = append(card.Participants, ParticipantRow{Email: p, Activity: a.Name})
		}
		b.Cards = append(b.Cards, card)
		b.Options = append(b.Options, Option{Value: a.Name, Label: a.Name})
	}
	return b
}

func (b Board) clone() Board {
	out := Board{}
	if b.Cards != nil {
		out.Cards = make([]Card, len(b.Cards))
		for i, c := range b.Cards {
			c.Participants = append([]ParticipantRow(nil), c.Participants...)
			out.Cards[i] = c
		}
	}
	if b.Options != nil {
		out.Options = append([]Option(nil), b.Options...)
	}
	return out
}
