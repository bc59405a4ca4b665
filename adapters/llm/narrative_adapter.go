package llm

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strings"

	"pharmabrand/domain/strategy"
	"pharmabrand/internal/errors"
	"pharmabrand/ports"
)

// braceSpan matches the first brace-delimited span in a response body,
// greedily, across newlines.
var braceSpan = regexp.MustCompile(`(?s)\{.*\}`)

// NarrativeAdapter implements ports.NarrativeGenerator against a chat
// LLM. One synchronous request per tactic; failures come back as the
// all-sentinel narrative plus the error, never as a panic or an aborted
// batch.
type NarrativeAdapter struct {
	client    ports.LLMClient
	model     string
	maxTokens int
}

// NewNarrativeAdapter creates the adapter with its fixed model.
func NewNarrativeAdapter(client ports.LLMClient, model string, maxTokens int) *NarrativeAdapter {
	return &NarrativeAdapter{client: client, model: model, maxTokens: maxTokens}
}

// Generate builds the plan prompt, calls the model, and parses the JSON
// object out of the response text.
func (a *NarrativeAdapter) Generate(ctx context.Context, tactic string, differentiators []string) (strategy.PlanNarrative, error) {
	prompt := BuildPlanPrompt(tactic, differentiators)

	raw, err := a.client.ChatCompletion(ctx, a.model, prompt, a.maxTokens)
	if err != nil {
		log.Printf("[Narrative] Generation call failed: %v", err)
		return strategy.SentinelNarrative(), errors.GenerationFailure("narrative generation failed", err)
	}

	narrative, err := ParseNarrative(raw)
	if err != nil {
		log.Printf("[Narrative] Response parse failed: %v", err)
		return strategy.SentinelNarrative(), err
	}
	return narrative, nil
}

// ParseNarrative extracts the structured plan from a response body.
// A body that is already valid JSON parses directly; otherwise the
// first greedy brace-delimited span is extracted and parsed. Missing
// keys stay empty here; display-time code substitutes the per-field
// sentinels.
func ParseNarrative(body string) (strategy.PlanNarrative, error) {
	trimmed := strings.TrimSpace(body)

	var narrative strategy.PlanNarrative
	if json.Unmarshal([]byte(trimmed), &narrative) == nil {
		return narrative, nil
	}

	span := braceSpan.FindString(trimmed)
	if span == "" {
		return strategy.SentinelNarrative(), errors.GenerationFailure("response contained no JSON object", nil)
	}
	if err := json.Unmarshal([]byte(span), &narrative); err != nil {
		return strategy.SentinelNarrative(), errors.GenerationFailure("response JSON could not be parsed", err)
	}
	return narrative, nil
}
