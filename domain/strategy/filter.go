package strategy

import (
	"fmt"
	"strings"

	"pharmabrand/internal/errors"
)

// FilterImperatives selects the imperatives whose role, lifecycle and
// journey cells all carry the applicability marker. The three values
// must be exact column names; otherwise SCHEMA_MISMATCH is returned and
// the caller shows an empty list with an error notice. Row order is
// preserved and nothing is deduplicated beyond natural row uniqueness.
func FilterImperatives(m *CriteriaMatrix, role, lifecycle, journey string) ([]string, error) {
	for _, col := range []string{role, lifecycle, journey} {
		if !m.HasColumn(col) {
			return nil, errors.SchemaMismatch(fmt.Sprintf("criteria matrix has no column %q", col))
		}
	}

	var imperatives []string
	for _, row := range m.Rows {
		if !marked(row[role]) || !marked(row[lifecycle]) || !marked(row[journey]) {
			continue
		}
		if imp := strings.TrimSpace(row[ImperativeColumn]); imp != "" {
			imperatives = append(imperatives, imp)
		}
	}
	return imperatives, nil
}

func marked(cell string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), Marker)
}
