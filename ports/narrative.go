package ports

import (
	"context"

	"pharmabrand/domain/strategy"
)

// LLMClient interface for chat-completion providers
type LLMClient interface {
	ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error)
}

// NarrativeGenerator produces the tactical narrative for one tactic.
// On any transport, service or parse failure it returns the
// all-sentinel narrative together with the error; callers report the
// error inline and continue the batch.
type NarrativeGenerator interface {
	Generate(ctx context.Context, tactic string, differentiators []string) (strategy.PlanNarrative, error)
}
