package llm

import (
	"fmt"
	"strings"
)

// planPrompt is the fixed template for tactical narrative generation.
// The model is told to answer with strictly one JSON object carrying
// exactly the three expected keys.
const planPrompt = `You are advising a pharmaceutical brand team.

Tactic: %s
Product differentiators: %s

Write a tactical recommendation that executes the tactic above while
emphasizing the listed product differentiators. Respond with strictly a
JSON object with exactly these keys:
  "description": a concise narrative description of the recommended tactic
  "cost": an estimated cost range for executing it
  "timeframe": an estimated timeframe for execution
Return only the JSON object and nothing else.`

// BuildPlanPrompt embeds the tactic text and the comma-joined
// differentiator list into the fixed template. An empty list renders as
// the literal "None".
func BuildPlanPrompt(tactic string, differentiators []string) string {
	joined := "None"
	if len(differentiators) > 0 {
		joined = strings.Join(differentiators, ", ")
	}
	return fmt.Sprintf(planPrompt, tactic, joined)
}
