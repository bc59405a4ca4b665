package strategy

import "strings"

// Column names the workbook must carry.
const (
	ImperativeColumn       = "Strategic Imperative"
	DifferentiatorColumn   = "Differentiator"
	PatientCaregiverColumn = "Patient & Caregiver"
	HCPEngagementColumn    = "HCP Engagement"
)

// Marker is the cell token that flags an imperative as applicable for a
// criteria column. Matching is case-insensitive.
const Marker = "x"

// HCPRole is the only role value that routes tactic resolution to the
// HCP Engagement column; every other value uses Patient & Caregiver.
const HCPRole = "HCP"

// MaxSelections caps imperatives and differentiators per plan.
const MaxSelections = 3

// Dropdown sentinels shown before a value is chosen.
const (
	RolePlaceholder      = "Audience"
	LifecyclePlaceholder = "Product Life Cycle"
	JourneyPlaceholder   = "Customer Journey Focus"
	DiseasePlaceholder   = "Disease State"
)

// DiseaseStates is the fixed disease-state catalog. The selection is
// collected to complete step 1 but is not consulted by any filter.
var DiseaseStates = []string{
	"Diabetes", "Hypertension", "Asthma", "Depression", "Arthritis",
	"Alzheimer's", "COPD", "Obesity", "Cancer", "Stroke",
}

// RowData is one criteria row keyed by column name.
type RowData map[string]string

// CriteriaMatrix is the first workbook sheet read into memory: one row
// per strategic imperative, axis columns carrying applicability markers.
type CriteriaMatrix struct {
	Columns []string
	Rows    []RowData
}

// HasColumn reports whether the matrix header carries the exact name.
func (m *CriteriaMatrix) HasColumn(name string) bool {
	for _, col := range m.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Axes holds the three criteria dimensions derived from the matrix
// header, without placeholder sentinels.
type Axes struct {
	Roles      []string
	Lifecycles []string
	Journeys   []string
}

// Tactic is one row of the tactic sheet: an imperative with its two
// role-specific action descriptions.
type Tactic struct {
	Imperative       string
	PatientCaregiver string
	HCPEngagement    string
}

// ForRole returns the tactic text for the role. Exactly "HCP" selects
// the HCP Engagement column; anything else, including empty or
// unexpected values, selects Patient & Caregiver.
func (t Tactic) ForRole(role string) string {
	if role == HCPRole {
		return t.HCPEngagement
	}
	return t.PatientCaregiver
}

// Sentinel values substituted when a generated field is unavailable.
const (
	NoDescription = "No description available."
	NotAvailable  = "N/A"
)

// PlanNarrative is the structured result of one generation call.
type PlanNarrative struct {
	Description string `json:"description"`
	Cost        string `json:"cost"`
	Timeframe   string `json:"timeframe"`
}

// SentinelNarrative is the all-sentinel result substituted when a
// generation call fails outright.
func SentinelNarrative() PlanNarrative {
	return PlanNarrative{
		Description: NoDescription,
		Cost:        NotAvailable,
		Timeframe:   NotAvailable,
	}
}

// WithDefaults fills any missing field with its sentinel. Applied at
// display time; the parsed record itself keeps absent keys empty.
func (n PlanNarrative) WithDefaults() PlanNarrative {
	if strings.TrimSpace(n.Description) == "" {
		n.Description = NoDescription
	}
	if strings.TrimSpace(n.Cost) == "" {
		n.Cost = NotAvailable
	}
	if strings.TrimSpace(n.Timeframe) == "" {
		n.Timeframe = NotAvailable
	}
	return n
}

// PlanItem is one imperative's slot in a generation pass. Notice carries
// the inline error text when the item failed; the pass continues either
// way.
type PlanItem struct {
	Imperative string
	Tactic     string
	Narrative  PlanNarrative
	Notice     string
}
