package ports

import "context"

// ReasoningPort is the boundary to the external reasoning service. Given a
// system instruction and a user prompt, it returns a raw text completion;
// parsing is the caller's responsibility.
type ReasoningPort interface {
	Complete(ctx context.Context, system string, prompt string) (string, error)
}
