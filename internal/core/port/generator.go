package port

import "context"

type TextGenerator interface {
	// GenerateFromPrompt produces a single text completion for a prompt.
	GenerateFromPrompt(ctx context.Context, prompt string) (string, error)
}
