package insights

import (
	"strings"

	"pharmabrand/domain/strategy"

	"github.com/montanaflynn/stats"
)

// Coverage summarizes how densely the criteria matrix is marked. Shown
// on the dashboard panel; never consulted by filtering.
type Coverage struct {
	Imperatives       int
	AxisDensity       map[string]float64 // axis label -> mean fraction of marked cells per row
	MeanMarksPerRow   float64
	MedianMarksPerRow float64
}

// MatrixCoverage computes marker statistics over the loaded matrix.
func MatrixCoverage(axes strategy.Axes, m *strategy.CriteriaMatrix) Coverage {
	cov := Coverage{
		Imperatives: len(m.Rows),
		AxisDensity: make(map[string]float64, 3),
	}
	if len(m.Rows) == 0 {
		return cov
	}

	groups := map[string][]string{
		"Audience":  axes.Roles,
		"Lifecycle": axes.Lifecycles,
		"Journey":   axes.Journeys,
	}

	var allColumns []string
	for label, columns := range groups {
		density := make([]float64, 0, len(m.Rows))
		for _, row := range m.Rows {
			density = append(density, markFraction(row, columns))
		}
		mean, _ := stats.Mean(density)
		cov.AxisDensity[label] = mean
		allColumns = append(allColumns, columns...)
	}

	marks := make([]float64, 0, len(m.Rows))
	for _, row := range m.Rows {
		count := 0.0
		for _, col := range allColumns {
			if isMarker(row[col]) {
				count++
			}
		}
		marks = append(marks, count)
	}
	cov.MeanMarksPerRow, _ = stats.Mean(marks)
	cov.MedianMarksPerRow, _ = stats.Median(marks)
	return cov
}

func markFraction(row strategy.RowData, columns []string) float64 {
	if len(columns) == 0 {
		return 0
	}
	marked := 0
	for _, col := range columns {
		if isMarker(row[col]) {
			marked++
		}
	}
	return float64(marked) / float64(len(columns))
}

func isMarker(cell string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), strategy.Marker)
}
