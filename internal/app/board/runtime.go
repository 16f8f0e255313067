package board

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/mergington/activity-board/internal/domain"
	"github.com/mergington/activity-board/internal/ports/out/activityapi"
	clockport "github.com/mergington/activity-board/internal/ports/out/clock"
	"github.com/mergington/activity-board/internal/ports/out/confirm"
)

// User-facing texts.
const (
	LoadFailureText = "Failed to load activities. Please try again later."

	SignupRejectedText = "An error occurred"
	SignupFailedText   = "Failed to sign up. Please try again."

	UnregisterRejectedText = "Failed to unregister"
	UnregisterFailedText   = "Failed to unregister. Please try again."
)

const (
	DefaultSignupMessageTTL     = 5000 * time.Millisecond
	DefaultUnregisterMessageTTL = 4000 * time.Millisecond
)

// Action names a mutating flow.
type Action string

const (
	ActionSignup     Action = "signup"
	ActionUnregister Action = "unregister"
)

// Outcome is how a dispatched effect ended.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeRejected  Outcome = "rejected"
	OutcomeFailed    Outcome = "failed"
	// OutcomeAborted means the user declined the confirmation.
	OutcomeAborted Outcome = "aborted"
	// OutcomeIgnored means the effect required no work.
	OutcomeIgnored Outcome = "ignored"
)

// Result is what a flow reports after it has updated the state.
type Result struct {
	Outcome Outcome
	Message Message
	// Err is a *Error for rejected and failed outcomes.
	Err error
}

// Recorder observes loads and flow outcomes. Implementations must be safe for concurrent use.
type Recorder interface {
	CatalogLoaded(ok bool)
	ActionCompleted(action Action, outcome Outcome)
}

type nopRecorder struct{}

func (nopRecorder) CatalogLoaded(bool)              {}
func (nopRecorder) ActionCompleted(Action, Outcome) {}

// Options configures a Runtime. Zero values fall back to defaults.
type Options struct {
	SignupMessageTTL     time.Duration
	UnregisterMessageTTL time.Duration

	Logger   *slog.Logger
	Recorder Recorder
}

// Runtime binds effects to API calls and state writes.
//
// Flows are not serialized against each other: overlapping submissions race
// and whichever reload finishes last decides the final render.
type Runtime struct {
	api     activityapi.Client
	clk     clockport.Clock
	confirm confirm.Confirmer
	state   *State

	log *slog.Logger
	rec Recorder

	signupTTL     time.Duration
	unregisterTTL time.Duration

	background sync.WaitGroup
}

func NewRuntime(api activityapi.Client, clk clockport.Clock, confirmer confirm.Confirmer, state *State, opts Options) *Runtime {
	if state == nil {
		state = NewState()
	}
	if confirmer == nil {
		confirmer = confirm.Always(false)
	}
	r := &Runtime{
		api:           api,
		clk:           clk,
		confirm:       confirmer,
		state:         state,
		log:           opts.Logger,
		rec:           opts.Recorder,
		signupTTL:     opts.SignupMessageTTL,
		unregisterTTL: opts.UnregisterMessageTTL,
	}
	if r.log == nil {
		r.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.rec == nil {
		r.rec = nopRecorder{}
	}
	if r.signupTTL <= 0 {
		r.signupTTL = DefaultSignupMessageTTL
	}
	if r.unregisterTTL <= 0 {
		r.unregisterTTL = DefaultUnregisterMessageTTL
	}
	return r
}

func (r *Runtime) State() *State { return r.state }

// Init performs the one load-and-render of page start.
func (r *Runtime) Init(ctx context.Context) error {
	return r.Refresh(ctx)
}

// LoadActivities fetches the catalog. It does not touch the state.
func (r *Runtime) LoadActivities(ctx context.Context) (domain.Catalog, error) {
	cat, err := r.api.ListActivities(ctx)
	if err != nil {
		return domain.Catalog{}, loadFailure(err)
	}
	return cat, nil
}

// Refresh loads the catalog and renders it. On failure the list is replaced by
// LoadFailureText; the returned error is informational only.
func (r *Runtime) Refresh(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	cat, err := r.LoadActivities(ctx)
	if err != nil {
		r.log.Error("error fetching activities", "error", err)
		r.state.failLoad(LoadFailureText)
		r.rec.CatalogLoaded(false)
		return err
	}
	r.state.render(Render(cat))
	r.rec.CatalogLoaded(true)
	return nil
}

// Dispatch executes an effect returned by an event handler.
func (r *Runtime) Dispatch(ctx context.Context, eff Effect) Result {
	switch e := eff.(type) {
	case SignupEffect:
		return r.SubmitSignup(ctx, e.Email, e.Activity)
	case UnregisterEffect:
		if !r.confirm.Confirm(ctx, e.Prompt) {
			r.rec.ActionCompleted(ActionUnregister, OutcomeAborted)
			return Result{Outcome: OutcomeAborted}
		}
		return r.unregister(ctx, e.Activity, e.Email)
	case NoEffect, nil:
		return Result{Outcome: OutcomeIgnored}
	default:
		r.log.Warn("unknown effect", "type", fmt.Sprintf("%T", eff))
		return Result{Outcome: OutcomeIgnored}
	}
}

// SubmitSignup signs email up for activity. On success the refreshed roster is
// rendered before the success message appears and the form is cleared.
func (r *Runtime) SubmitSignup(ctx context.Context, email, activity string) Result {
	ctx = context.WithoutCancel(ctx)
	r.state.setForm(Form{Email: email, Activity: activity})

	msg, err := r.api.Signup(ctx, activity, email)
	var res Result
	if err == nil {
		_ = r.Refresh(ctx)
		res = Result{Outcome: OutcomeSucceeded, Message: Message{Text: msg, Kind: MessageSuccess}}
		r.state.showMessageAndResetForm(res.Message)
	} else {
		res = r.failure(err, SignupRejectedText, SignupFailedText)
		r.log.Error("error signing up", "activity", activity, "error", err)
		r.state.showMessage(res.Message)
	}
	r.scheduleHide(r.signupTTL)
	r.rec.ActionCompleted(ActionSignup, res.Outcome)
	return r.visible(res)
}

// SubmitUnregister asks for confirmation and then removes email from activity.
func (r *Runtime) SubmitUnregister(ctx context.Context, activity, email string) Result {
	return r.Dispatch(ctx, OnUnregisterClick(UnregisterClicked{
		Control: &ParticipantRow{Email: email, Activity: activity},
	}))
}

// unregister shows the server message first and reloads in the background;
// Wait joins that reload.
func (r *Runtime) unregister(ctx context.Context, activity, email string) Result {
	ctx = context.WithoutCancel(ctx)

	msg, err := r.api.Unregister(ctx, activity, email)
	var res Result
	if err == nil {
		res = Result{Outcome: OutcomeSucceeded, Message: Message{Text: msg, Kind: MessageSuccess}}
		r.state.showMessage(res.Message)
		r.background.Add(1)
		go func() {
			defer r.background.Done()
			_ = r.Refresh(ctx)
		}()
	} else {
		res = r.failure(err, UnregisterRejectedText, UnregisterFailedText)
		r.log.Error("error unregistering", "activity", activity, "error", err)
		r.state.showMessage(res.Message)
	}
	r.scheduleHide(r.unregisterTTL)
	r.rec.ActionCompleted(ActionUnregister, res.Outcome)
	return r.visible(res)
}

// Wait blocks until every background reload has finished.
func (r *Runtime) Wait() {
	r.background.Wait()
}

func (r *Runtime) failure(err error, rejectedText, failedText string) Result {
	be := classifyMutation(err)
	if be.Kind == KindRequestRejected {
		text := be.Detail
		if text == "" {
			text = rejectedText
		}
		return Result{Outcome: OutcomeRejected, Message: Message{Text: text, Kind: MessageError}, Err: be}
	}
	return Result{Outcome: OutcomeFailed, Message: Message{Text: failedText, Kind: MessageError}, Err: be}
}

// scheduleHide hides the message slot after d. Earlier timers are left
// running; when one fires it hides whatever message is current.
func (r *Runtime) scheduleHide(d time.Duration) {
	r.clk.AfterFunc(d, r.state.hideMessage)
}

func (r *Runtime) visible(res Result) Result {
	res.Message.Visible = true
	return res
}
