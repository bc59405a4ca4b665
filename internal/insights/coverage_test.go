package insights

import (
	"testing"

	"pharmabrand/domain/strategy"

	"github.com/stretchr/testify/require"
)

func TestMatrixCoverage(t *testing.T) {
	axes := strategy.Axes{
		Roles:      []string{"HCP", "Patient"},
		Lifecycles: []string{"Launch", "Growth"},
		Journeys:   []string{"Awareness", "Diagnosis"},
	}
	matrix := &strategy.CriteriaMatrix{
		Rows: []strategy.RowData{
			{"HCP": "x", "Launch": "x", "Awareness": "x"},
			{"HCP": "x", "Patient": "x", "Launch": "x", "Growth": "x", "Awareness": "x", "Diagnosis": "x"},
		},
	}

	cov := MatrixCoverage(axes, matrix)
	require.Equal(t, 2, cov.Imperatives)
	require.InDelta(t, 0.75, cov.AxisDensity["Audience"], 1e-9)
	require.InDelta(t, 0.75, cov.AxisDensity["Lifecycle"], 1e-9)
	require.InDelta(t, 0.75, cov.AxisDensity["Journey"], 1e-9)
	require.InDelta(t, 4.5, cov.MeanMarksPerRow, 1e-9)
	require.InDelta(t, 4.5, cov.MedianMarksPerRow, 1e-9)
}

func TestMatrixCoverage_EmptyMatrix(t *testing.T) {
	cov := MatrixCoverage(strategy.Axes{}, &strategy.CriteriaMatrix{})
	require.Equal(t, 0, cov.Imperatives)
	require.Empty(t, cov.AxisDensity)
}
