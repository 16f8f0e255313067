package httpapi

import "context"

type confirmationKey struct{}

// WithConfirmation stores the user's answer to an unregister prompt.
func WithConfirmation(ctx context.Context, yes bool) context.Context {
	return context.WithValue(ctx, confirmationKey{}, yes)
}

func ConfirmationFromContext(ctx context.Context) (yes bool, ok bool) {
	yes, ok = ctx.Value(confirmationKey{}).(bool)
	return yes, ok
}

// RequestConfirmer answers prompts from the request context.
// Requests without a recorded answer are declined.
type RequestConfirmer struct{}

func (RequestConfirmer) Confirm(ctx context.Context, _ string) bool {
	yes, _ := ConfirmationFromContext(ctx)
	return yes
}
