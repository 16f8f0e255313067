package board

import "fmt"

// SignupSubmitted is a signup form submission, with the inputs as typed.
type SignupSubmitted struct {
	Email    string
	Activity string
}

// UnregisterClicked is a click inside the activity list. Control is the
// unregister control that was hit, or nil when the click landed elsewhere.
type UnregisterClicked struct {
	Control *ParticipantRow
}

// Effect describes the work an event asks for. Runtime.Dispatch executes it.
type Effect interface {
	isEffect()
}

// NoEffect is returned for events that require nothing.
type NoEffect struct{}

// SignupEffect submits a signup. Values are sent as-is, empty ones included.
type SignupEffect struct {
	Email    string
	Activity string
}

// UnregisterEffect removes a participant once the user accepts Prompt.
type UnregisterEffect struct {
	Activity string
	Email    string
	Prompt   string
}

func (NoEffect) isEffect()         {}
func (SignupEffect) isEffect()     {}
func (UnregisterEffect) isEffect() {}

func OnSignupSubmit(ev SignupSubmitted) Effect {
	return SignupEffect{Email: ev.Email, Activity: ev.Activity}
}

func OnUnregisterClick(ev UnregisterClicked) Effect {
	if ev.Control == nil {
		return NoEffect{}
	}
	return UnregisterEffect{
		Activity: ev.Control.Activity,
		Email:    ev.Control.Email,
		Prompt:   UnregisterPrompt(ev.Control.Email, ev.Control.Activity),
	}
}

// UnregisterPrompt is the confirmation question shown before an unregister.
func UnregisterPrompt(email, activity string) string {
	return fmt.Sprintf("Unregister %s from %s?", email, activity)
}
