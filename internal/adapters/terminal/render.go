// Package terminal renders the board as plain text and asks for
// confirmation on a line-oriented stream.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mergington/activity-board/internal/app/board"
)

// Render writes the activity list followed by the message slot, if visible.
func Render(w io.Writer, snap board.Snapshot) error {
	bw := bufio.NewWriter(w)
	switch {
	case snap.LoadFailure != "":
		fmt.Fprintln(bw, snap.LoadFailure)
	case !snap.Loaded:
		fmt.Fprintln(bw, board.LoadingText)
	default:
		for i, c := range snap.Cards {
			if i > 0 {
				fmt.Fprintln(bw)
			}
			writeCard(bw, c)
		}
	}
	if snap.Message.Visible {
		fmt.Fprintf(bw, "\n[%s] %s\n", snap.Message.Kind, snap.Message.Text)
	}
	return bw.Flush()
}

func writeCard(w io.Writer, c board.Card) {
	fmt.Fprintln(w, c.Name)
	fmt.Fprintf(w, "  %s\n", c.Description)
	fmt.Fprintf(w, "  Schedule: %s\n", c.Schedule)
	fmt.Fprintf(w, "  Availability: %s\n", c.Availability())
	fmt.Fprintln(w, "  Participants:")
	if len(c.Participants) == 0 {
		fmt.Fprintf(w, "    %s\n", board.NoParticipantsText)
		return
	}
	for _, p := range c.Participants {
		fmt.Fprintf(w, "    - %s\n", p.Email)
	}
}

// RenderMessage writes only the outcome of a flow.
func RenderMessage(w io.Writer, m board.Message) error {
	if m.Text == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "[%s] %s\n", m.Kind, m.Text)
	return err
}

// Prompter asks yes/no questions on In and writes prompts to Out.
// Anything other than y or yes, including EOF, is a no.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

func (p Prompter) Confirm(_ context.Context, prompt string) bool {
	fmt.Fprintf(p.Out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.Out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
