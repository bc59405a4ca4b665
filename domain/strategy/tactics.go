package strategy

import (
	"fmt"

	"pharmabrand/internal/errors"
)

// TacticTable indexes the tactic sheet by imperative name.
type TacticTable struct {
	byImperative map[string]Tactic
}

// NewTacticTable builds the index. Lookup is by exact string equality;
// a later duplicate row wins, matching first-match-row semantics is not
// needed because imperative names are unique per sheet.
func NewTacticTable(tactics []Tactic) TacticTable {
	idx := make(map[string]Tactic, len(tactics))
	for _, t := range tactics {
		if _, seen := idx[t.Imperative]; !seen {
			idx[t.Imperative] = t
		}
	}
	return TacticTable{byImperative: idx}
}

// Len returns the number of indexed imperatives.
func (t TacticTable) Len() int { return len(t.byImperative) }

// Resolve maps an imperative and role to its tactic text. A missing row
// is NOT_FOUND; callers report it inline and continue the batch.
func (t TacticTable) Resolve(imperative, role string) (string, error) {
	tactic, ok := t.byImperative[imperative]
	if !ok {
		return "", errors.NotFound(fmt.Sprintf("no tactic found for strategic imperative: %s", imperative))
	}
	return tactic.ForRole(role), nil
}
