package board

import "sync"

// MessageKind selects how a transient message is styled.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is the single transient status line.
type Message struct {
	Text    string
	Kind    MessageKind
	Visible bool
}

// Form mirrors the signup form inputs.
type Form struct {
	Email    string
	Activity string
}

// Snapshot is a read-only copy of everything the board displays.
type Snapshot struct {
	// Loaded is false until the first load attempt finishes.
	Loaded bool

	// LoadFailure replaces the card list when the last load failed.
	LoadFailure string

	Cards   []Card
	Options []Option
	Form    Form
	Message Message
}

// State is the board's page model: the activity list, the select options, the
// signup form and the message slot. It is created once at startup and written
// only by the Runtime; presentation adapters read it through Snapshot.
// It is safe for concurrent use.
type State struct {
	mu sync.RWMutex

	loaded      bool
	loadFailure string
	cards       []Card
	options     []Option
	form        Form
	message     Message
}

func NewState() *State {
	return &State{options: []Option{placeholderOption()}}
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := Board{Cards: s.cards, Options: s.options}.clone()
	return Snapshot{
		Loaded:      s.loaded,
		LoadFailure: s.loadFailure,
		Cards:       b.Cards,
		Options:     b.Options,
		Form:        s.form,
		Message:     s.message,
	}
}

// render replaces cards and options together so both always come from one catalog.
func (s *State) render(b Board) {
	b = b.clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.loadFailure = ""
	s.cards = b.Cards
	s.options = b.Options
}

// failLoad swaps the card list for a failure notice. Options are left as they were.
func (s *State) failLoad(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.loadFailure = text
	s.cards = nil
}

func (s *State) setForm(f Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

func (s *State) showMessage(m Message) {
	m.Visible = true
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = m
}

// showMessageAndResetForm is the last step of a successful signup.
func (s *State) showMessageAndResetForm(m Message) {
	m.Visible = true
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = m
	s.form = Form{}
}

// hideMessage hides whatever message is current.
func (s *State) hideMessage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message.Visible = false
}
