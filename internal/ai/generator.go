package ai

import "context"

// Generator produces a free-text completion for a prompt. No output
// schema is enforced by the provider; any structure layered on top (such
// as delimited JSON blocks) is the caller's own convention.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
