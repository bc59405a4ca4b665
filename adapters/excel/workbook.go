package excel

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"pharmabrand/domain/strategy"
	"pharmabrand/internal/errors"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/singleflight"
)

// Sheet layout of the strategy workbook, by position.
const (
	criteriaSheet       = 0
	differentiatorSheet = 1
	tacticSheet         = 2
)

// maxCriteriaColumns bounds sheet 1 to columns A-M; at least that many
// must be present.
const maxCriteriaColumns = 13

// Header index ranges for the axis option sets (identity column is A,
// column E is unused by design).
const (
	roleStart, roleEnd           = 1, 4
	lifecycleStart, lifecycleEnd = 5, 9
	journeyStart, journeyEnd     = 9, 13
)

// excludedRole is dropped from the role axis unconditionally.
const excludedRole = "Caregiver"

// workbookSnapshot is one cached read of a workbook file: the raw rows
// of its first three sheets plus the modification time they were read
// at. Derived products are computed once per snapshot so repeated loads
// of an unchanged file hand back the same data.
type workbookSnapshot struct {
	modTime time.Time
	sheets  [][][]string

	criteriaOnce sync.Once
	axes         strategy.Axes
	matrix       *strategy.CriteriaMatrix
	criteriaErr  error

	diffOnce        sync.Once
	differentiators []string
	diffErr         error

	tacticOnce sync.Once
	tactics    strategy.TacticTable
	tacticErr  error
}

// WorkbookStore reads strategy workbooks and caches each file until its
// modification time changes. Concurrent loads of the same file collapse
// into a single read.
type WorkbookStore struct {
	mu    sync.RWMutex
	cache map[string]*workbookSnapshot
	group singleflight.Group
}

// NewWorkbookStore creates an empty store.
func NewWorkbookStore() *WorkbookStore {
	return &WorkbookStore{cache: make(map[string]*workbookSnapshot)}
}

// Invalidate drops the cached snapshot for a file.
func (s *WorkbookStore) Invalidate(filename string) {
	s.mu.Lock()
	delete(s.cache, filename)
	s.mu.Unlock()
}

// snapshot returns the cached workbook read, re-reading only when the
// file's modification time has moved.
func (s *WorkbookStore) snapshot(ctx context.Context, filename string) (*workbookSnapshot, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, errors.LoadError(fmt.Sprintf("workbook not found: %s", filename), err)
	}

	s.mu.RLock()
	cached, ok := s.cache[filename]
	s.mu.RUnlock()
	if ok && cached.modTime.Equal(info.ModTime()) {
		return cached, nil
	}

	v, err, _ := s.group.Do(filename, func() (interface{}, error) {
		// Re-check under the group: another caller may have refreshed
		// the entry while this one waited.
		s.mu.RLock()
		cached, ok := s.cache[filename]
		s.mu.RUnlock()
		if ok && cached.modTime.Equal(info.ModTime()) {
			return cached, nil
		}
		snap, err := readWorkbook(filename, info.ModTime())
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[filename] = snap
		s.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.(*workbookSnapshot), nil
}

// readWorkbook opens the file and captures the raw rows of its first
// three sheets. Missing trailing sheets are recorded as nil so their
// absence surfaces at the stage that needs them, not here.
func readWorkbook(filename string, modTime time.Time) (*workbookSnapshot, error) {
	start := time.Now()
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, errors.LoadError(fmt.Sprintf("failed to open workbook: %s", filename), err)
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([][][]string, 3)
	for i := 0; i < 3 && i < len(names); i++ {
		rows, err := f.GetRows(names[i])
		if err != nil {
			return nil, errors.LoadError(fmt.Sprintf("failed to read sheet %q", names[i]), err)
		}
		sheets[i] = rows
	}

	log.Printf("[WorkbookStore] Read %s in %.2fms (%d sheets)",
		filename, float64(time.Since(start).Nanoseconds())/1e6, len(names))

	return &workbookSnapshot{modTime: modTime, sheets: sheets}, nil
}

// LoadCriteria reads sheet 1, columns A-M only, header row as column
// names, and derives the three axis option sets. Fewer than 13 columns
// is a fatal load error.
func (s *WorkbookStore) LoadCriteria(ctx context.Context, filename string) (strategy.Axes, *strategy.CriteriaMatrix, error) {
	snap, err := s.snapshot(ctx, filename)
	if err != nil {
		return strategy.Axes{}, nil, err
	}
	snap.criteriaOnce.Do(func() {
		snap.axes, snap.matrix, snap.criteriaErr = deriveCriteria(snap.sheets[criteriaSheet])
	})
	return snap.axes, snap.matrix, snap.criteriaErr
}

func deriveCriteria(rows [][]string) (strategy.Axes, *strategy.CriteriaMatrix, error) {
	if len(rows) == 0 {
		return strategy.Axes{}, nil, errors.LoadError("criteria sheet is empty", nil)
	}

	header := trimRow(rows[0], maxCriteriaColumns)
	if len(header) < maxCriteriaColumns {
		return strategy.Axes{}, nil, errors.LoadError(
			fmt.Sprintf("workbook has only %d columns but at least %d are required", len(header), maxCriteriaColumns), nil)
	}

	matrix := &strategy.CriteriaMatrix{Columns: header}
	for _, raw := range rows[1:] {
		cells := trimRow(raw, maxCriteriaColumns)
		row := make(strategy.RowData, len(header))
		for i, col := range header {
			if i < len(cells) {
				row[col] = cells[i]
			}
		}
		matrix.Rows = append(matrix.Rows, row)
	}

	axes := strategy.Axes{
		Lifecycles: append([]string(nil), header[lifecycleStart:lifecycleEnd]...),
		Journeys:   append([]string(nil), header[journeyStart:journeyEnd]...),
	}
	for _, role := range header[roleStart:roleEnd] {
		if strings.EqualFold(role, excludedRole) {
			continue
		}
		axes.Roles = append(axes.Roles, role)
	}
	return axes, matrix, nil
}

// LoadDifferentiators reads the distinct values of the Differentiator
// column on sheet 2, first-seen order, empties dropped.
func (s *WorkbookStore) LoadDifferentiators(ctx context.Context, filename string) ([]string, error) {
	snap, err := s.snapshot(ctx, filename)
	if err != nil {
		return nil, err
	}
	snap.diffOnce.Do(func() {
		snap.differentiators, snap.diffErr = deriveDifferentiators(snap.sheets[differentiatorSheet])
	})
	return snap.differentiators, snap.diffErr
}

func deriveDifferentiators(rows [][]string) ([]string, error) {
	if len(rows) == 0 {
		return nil, errors.SchemaMismatch("workbook has no differentiator sheet")
	}

	col := -1
	for i, name := range rows[0] {
		if strings.TrimSpace(name) == strategy.DifferentiatorColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, errors.SchemaMismatch(fmt.Sprintf("differentiator sheet must have a column named %q", strategy.DifferentiatorColumn))
	}

	var out []string
	seen := make(map[string]bool)
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[col])
		if value == "" || seen[value] {
			continue
		}
		out = append(out, value)
		seen[value] = true
	}
	return out, nil
}

// LoadTactics reads sheet 3 into the tactic table. All three named
// columns must be present; a missing one is fatal for the stage.
func (s *WorkbookStore) LoadTactics(ctx context.Context, filename string) (strategy.TacticTable, error) {
	snap, err := s.snapshot(ctx, filename)
	if err != nil {
		return strategy.TacticTable{}, err
	}
	snap.tacticOnce.Do(func() {
		snap.tactics, snap.tacticErr = deriveTactics(snap.sheets[tacticSheet])
	})
	return snap.tactics, snap.tacticErr
}

func deriveTactics(rows [][]string) (strategy.TacticTable, error) {
	if len(rows) == 0 {
		return strategy.TacticTable{}, errors.SchemaMismatch("workbook has no tactic sheet")
	}

	idx := make(map[string]int)
	for i, name := range rows[0] {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{strategy.ImperativeColumn, strategy.PatientCaregiverColumn, strategy.HCPEngagementColumn} {
		if _, ok := idx[required]; !ok {
			return strategy.TacticTable{}, errors.SchemaMismatch(fmt.Sprintf("tactic sheet must have a column named %q", required))
		}
	}

	var tactics []strategy.Tactic
	for _, row := range rows[1:] {
		imperative := cellAt(row, idx[strategy.ImperativeColumn])
		if imperative == "" {
			continue
		}
		tactics = append(tactics, strategy.Tactic{
			Imperative:       imperative,
			PatientCaregiver: cellAt(row, idx[strategy.PatientCaregiverColumn]),
			HCPEngagement:    cellAt(row, idx[strategy.HCPEngagementColumn]),
		})
	}
	return strategy.NewTacticTable(tactics), nil
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func trimRow(row []string, max int) []string {
	if len(row) > max {
		row = row[:max]
	}
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}
