package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pharmabrand/domain/strategy"
	"pharmabrand/internal/errors"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testHeader = []interface{}{
	"Strategic Imperative",
	"HCP", "Patient", "Caregiver",
	"Notes",
	"Launch", "Growth", "Mature", "Decline",
	"Awareness", "Diagnosis", "Treatment", "Adherence",
}

// writeWorkbook builds a three-sheet fixture in dir and returns its path.
func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &testHeader))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{
		"Reduce Time to Diagnosis", "x", "", "", "", "x", "", "", "", "x", "", "", "",
	}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{
		"Expand Patient Support", "", "X", "", "", "X", "", "", "", "X", "", "", "",
	}))

	_, err := f.NewSheet("Sheet2")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Sheet2", "A1", &[]interface{}{"Differentiator", "Owner"}))
	require.NoError(t, f.SetSheetRow("Sheet2", "A2", &[]interface{}{"Fast onset", "Medical"}))
	require.NoError(t, f.SetSheetRow("Sheet2", "A3", &[]interface{}{"Once daily", "Medical"}))
	require.NoError(t, f.SetSheetRow("Sheet2", "A4", &[]interface{}{"Fast onset", "Marketing"}))
	require.NoError(t, f.SetSheetRow("Sheet2", "A5", &[]interface{}{"", "Marketing"}))

	_, err = f.NewSheet("Sheet3")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Sheet3", "A1", &[]interface{}{
		"Strategic Imperative", "Patient & Caregiver", "HCP Engagement",
	}))
	require.NoError(t, f.SetSheetRow("Sheet3", "A2", &[]interface{}{
		"Reduce Time to Diagnosis", "Run patient awareness campaigns", "Host diagnostic webinars",
	}))

	path := filepath.Join(dir, "strategy.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadCriteria_DerivesAxes(t *testing.T) {
	store := NewWorkbookStore()
	path := writeWorkbook(t, t.TempDir())

	axes, matrix, err := store.LoadCriteria(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, []string{"HCP", "Patient"}, axes.Roles, "Caregiver must be excluded from the role axis")
	require.Equal(t, []string{"Launch", "Growth", "Mature", "Decline"}, axes.Lifecycles)
	require.Equal(t, []string{"Awareness", "Diagnosis", "Treatment", "Adherence"}, axes.Journeys)
	require.Len(t, matrix.Rows, 2)

	imperatives, err := strategy.FilterImperatives(matrix, "HCP", "Launch", "Awareness")
	require.NoError(t, err)
	require.Equal(t, []string{"Reduce Time to Diagnosis"}, imperatives)
}

func TestLoadCriteria_TooFewColumnsIsLoadError(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Strategic Imperative", "HCP", "Launch"}))
	path := filepath.Join(t.TempDir(), "narrow.xlsx")
	require.NoError(t, f.SaveAs(path))

	store := NewWorkbookStore()
	_, _, err := store.LoadCriteria(context.Background(), path)
	require.Error(t, err)
	require.True(t, errors.IsLoadError(err), "expected LOAD_ERROR, got %v", err)
}

func TestLoadCriteria_MissingFileIsLoadError(t *testing.T) {
	store := NewWorkbookStore()
	_, _, err := store.LoadCriteria(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	require.True(t, errors.IsLoadError(err))
}

func TestLoadDifferentiators_DistinctFirstSeenOrder(t *testing.T) {
	store := NewWorkbookStore()
	path := writeWorkbook(t, t.TempDir())

	diffs, err := store.LoadDifferentiators(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []string{"Fast onset", "Once daily"}, diffs)
}

func TestLoadDifferentiators_MissingColumnIsSchemaMismatch(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &testHeader))
	_, err := f.NewSheet("Sheet2")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Sheet2", "A1", &[]interface{}{"Name"}))
	path := filepath.Join(t.TempDir(), "nodiff.xlsx")
	require.NoError(t, f.SaveAs(path))

	store := NewWorkbookStore()
	_, err = store.LoadDifferentiators(context.Background(), path)
	require.Error(t, err)
	require.True(t, errors.IsSchemaMismatch(err), "expected SCHEMA_MISMATCH, got %v", err)
}

func TestLoadTactics_ResolvesRows(t *testing.T) {
	store := NewWorkbookStore()
	path := writeWorkbook(t, t.TempDir())

	tactics, err := store.LoadTactics(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, tactics.Len())

	text, err := tactics.Resolve("Reduce Time to Diagnosis", "HCP")
	require.NoError(t, err)
	require.Equal(t, "Host diagnostic webinars", text)

	text, err = tactics.Resolve("Reduce Time to Diagnosis", "Patient")
	require.NoError(t, err)
	require.Equal(t, "Run patient awareness campaigns", text)
}

func TestLoadTactics_MissingColumnIsSchemaMismatch(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &testHeader))
	_, err := f.NewSheet("Sheet2")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Sheet2", "A1", &[]interface{}{"Differentiator"}))
	_, err = f.NewSheet("Sheet3")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Sheet3", "A1", &[]interface{}{"Strategic Imperative", "HCP Engagement"}))
	path := filepath.Join(t.TempDir(), "notactic.xlsx")
	require.NoError(t, f.SaveAs(path))

	store := NewWorkbookStore()
	_, err = store.LoadTactics(context.Background(), path)
	require.Error(t, err)
	require.True(t, errors.IsSchemaMismatch(err))
}

func TestCache_SameFileReturnsSameData(t *testing.T) {
	store := NewWorkbookStore()
	path := writeWorkbook(t, t.TempDir())
	ctx := context.Background()

	_, first, err := store.LoadCriteria(ctx, path)
	require.NoError(t, err)
	_, second, err := store.LoadCriteria(ctx, path)
	require.NoError(t, err)
	require.Same(t, first, second, "an unchanged file must hand back the cached matrix")
}

func TestCache_DistinctFilesReadFresh(t *testing.T) {
	store := NewWorkbookStore()
	dirA, dirB := t.TempDir(), t.TempDir()
	ctx := context.Background()

	_, a, err := store.LoadCriteria(ctx, writeWorkbook(t, dirA))
	require.NoError(t, err)
	_, b, err := store.LoadCriteria(ctx, writeWorkbook(t, dirB))
	require.NoError(t, err)
	require.NotSame(t, a, b)
}

func TestCache_ModifiedFileReloads(t *testing.T) {
	store := NewWorkbookStore()
	dir := t.TempDir()
	path := writeWorkbook(t, dir)
	ctx := context.Background()

	_, first, err := store.LoadCriteria(ctx, path)
	require.NoError(t, err)

	// Rewrite the file and move its mtime forward so the cache key changes.
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &testHeader))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{
		"Launch Disease Education", "x", "", "", "", "x", "", "", "", "x", "", "", "",
	}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	_, second, err := store.LoadCriteria(ctx, path)
	require.NoError(t, err)
	require.NotSame(t, first, second)
	require.Equal(t, "Launch Disease Education", second.Rows[0][strategy.ImperativeColumn])
}

func TestCache_InvalidateForcesReread(t *testing.T) {
	store := NewWorkbookStore()
	path := writeWorkbook(t, t.TempDir())
	ctx := context.Background()

	_, first, err := store.LoadCriteria(ctx, path)
	require.NoError(t, err)

	store.Invalidate(path)

	_, second, err := store.LoadCriteria(ctx, path)
	require.NoError(t, err)
	require.NotSame(t, first, second)
}
