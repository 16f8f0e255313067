package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/mergington/activity-board/internal/app/board"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Server renders the board and turns form posts into board events.
//
// The runtime must be built with RequestConfirmer so that the answer posted
// on the confirmation page reaches the unregister flow.
type Server struct {
	Board *board.Runtime
}

func NewServer(rt *board.Runtime) *Server {
	return &Server{Board: rt}
}

type boardView struct {
	board.Snapshot

	LoadingText        string
	NoParticipantsText string
}

type confirmView struct {
	Prompt   string
	Activity string
	Email    string
}

func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "board.html", boardView{
		Snapshot:           s.Board.State().Snapshot(),
		LoadingText:        board.LoadingText,
		NoParticipantsText: board.NoParticipantsText,
	})
}

func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	eff := board.OnSignupSubmit(board.SignupSubmitted{
		Email:    r.PostForm.Get("email"),
		Activity: r.PostForm.Get("activity"),
	})
	s.Board.Dispatch(r.Context(), eff)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Unregister answers a participant's unregister button. Without a confirm
// field it asks first; confirm=yes or confirm=no carries the answer.
func (s *Server) Unregister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	eff := board.OnUnregisterClick(board.UnregisterClicked{Control: &board.ParticipantRow{
		Email:    r.PostForm.Get("email"),
		Activity: r.PostForm.Get("activity"),
	}})
	ue, ok := eff.(board.UnregisterEffect)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	switch r.PostForm.Get("confirm") {
	case "":
		s.render(w, r, "confirm.html", confirmView{Prompt: ue.Prompt, Activity: ue.Activity, Email: ue.Email})
		return
	case "yes":
		s.Board.Dispatch(WithConfirmation(r.Context(), true), ue)
	case "no":
		s.Board.Dispatch(WithConfirmation(r.Context(), false), ue)
	default:
		writeError(w, r, http.StatusBadRequest, "confirm must be yes or no")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		writeError(w, r, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
