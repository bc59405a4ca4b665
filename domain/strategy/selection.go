package strategy

// Stage is the wizard position derived from a selection. Stages are
// strictly ordered; each is gated by the previous stage's completion.
type Stage int

const (
	StageCriteria Stage = iota
	StageImperatives
	StageDifferentiators
	StageActionReady
)

func (s Stage) String() string {
	switch s {
	case StageCriteria:
		return "criteria"
	case StageImperatives:
		return "imperatives"
	case StageDifferentiators:
		return "differentiators"
	case StageActionReady:
		return "action-ready"
	}
	return "unknown"
}

// Selection is one session's wizard state. It lives only for the
// session and is never persisted. Disease is collected to complete
// step 1 but feeds no filter.
type Selection struct {
	Role      string
	Lifecycle string
	Journey   string
	Disease   string

	Imperatives     []string
	Differentiators []string
}

// NewSelection starts a session at the placeholder sentinels.
func NewSelection() Selection {
	return Selection{
		Role:      RolePlaceholder,
		Lifecycle: LifecyclePlaceholder,
		Journey:   JourneyPlaceholder,
		Disease:   DiseasePlaceholder,
	}
}

// CriteriaComplete reports whether all four step-1 dropdowns carry a
// non-placeholder value.
func (s *Selection) CriteriaComplete() bool {
	return s.Role != RolePlaceholder && s.Role != "" &&
		s.Lifecycle != LifecyclePlaceholder && s.Lifecycle != "" &&
		s.Journey != JourneyPlaceholder && s.Journey != "" &&
		s.Disease != DiseasePlaceholder && s.Disease != ""
}

// Stage derives the wizard position from the gates: criteria complete,
// then at least one imperative, then at least one differentiator.
func (s *Selection) Stage() Stage {
	if !s.CriteriaComplete() {
		return StageCriteria
	}
	if len(s.Imperatives) == 0 {
		return StageImperatives
	}
	if len(s.Differentiators) == 0 {
		return StageDifferentiators
	}
	return StageActionReady
}

// SetCriteria records the step-1 choices. Any change to an axis value
// invalidates the later-stage selections; downstream options are
// recomputed from scratch on the next render.
func (s *Selection) SetCriteria(role, lifecycle, journey, disease string) {
	changed := role != s.Role || lifecycle != s.Lifecycle || journey != s.Journey
	s.Role = role
	s.Lifecycle = lifecycle
	s.Journey = journey
	s.Disease = disease
	if changed {
		s.Imperatives = nil
		s.Differentiators = nil
	}
}

// SetImperatives records the step-2 picks, capped at MaxSelections and
// restricted to the offered options. Emptying the stage invalidates the
// differentiator picks.
func (s *Selection) SetImperatives(picks, offered []string) {
	s.Imperatives = capPicks(picks, offered)
	if len(s.Imperatives) == 0 {
		s.Differentiators = nil
	}
}

// SetDifferentiators records the step-3 picks, capped at MaxSelections
// and restricted to the offered options.
func (s *Selection) SetDifferentiators(picks, offered []string) {
	s.Differentiators = capPicks(picks, offered)
}

// capPicks keeps the first MaxSelections distinct picks that appear in
// the offered options, preserving pick order.
func capPicks(picks, offered []string) []string {
	valid := make(map[string]bool, len(offered))
	for _, opt := range offered {
		valid[opt] = true
	}
	var kept []string
	seen := make(map[string]bool, MaxSelections)
	for _, p := range picks {
		if !valid[p] || seen[p] {
			continue
		}
		kept = append(kept, p)
		seen[p] = true
		if len(kept) == MaxSelections {
			break
		}
	}
	return kept
}
