package ports

import (
	"context"

	"pharmabrand/domain/strategy"
)

// CriteriaSource reads the three-sheet strategy workbook. Implementations
// cache per filename; a load error is fatal for the current render.
type CriteriaSource interface {
	// LoadCriteria reads sheet 1 (columns A-M) into the criteria matrix
	// and derives the three axis option sets from its header.
	LoadCriteria(ctx context.Context, filename string) (strategy.Axes, *strategy.CriteriaMatrix, error)

	// LoadDifferentiators reads the distinct differentiator names from
	// sheet 2 in first-seen order.
	LoadDifferentiators(ctx context.Context, filename string) ([]string, error)

	// LoadTactics reads sheet 3 into the tactic table.
	LoadTactics(ctx context.Context, filename string) (strategy.TacticTable, error)
}
