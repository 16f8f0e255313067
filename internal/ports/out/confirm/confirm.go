package confirm

import "context"

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Func adapts a function to Confirmer.
type Func func(ctx context.Context, prompt string) bool

func (f Func) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Always answers every prompt with the same value.
type Always bool

func (a Always) Confirm(context.Context, string) bool { return bool(a) }
