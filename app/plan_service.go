package app

import (
	"context"
	"log"

	"pharmabrand/domain/strategy"
	"pharmabrand/internal/errors"
	"pharmabrand/internal/insights"
	"pharmabrand/ports"
)

// PlanService drives the wizard: which options each stage offers and
// the generation pass over the selected imperatives. It owns no state;
// selections live in the caller's session.
type PlanService struct {
	source    ports.CriteriaSource
	generator ports.NarrativeGenerator
	workbook  string
}

// NewPlanService wires the service to its workbook and generator.
func NewPlanService(source ports.CriteriaSource, generator ports.NarrativeGenerator, workbook string) *PlanService {
	return &PlanService{source: source, generator: generator, workbook: workbook}
}

// Axes returns the three axis option sets from the workbook header.
func (s *PlanService) Axes(ctx context.Context) (strategy.Axes, error) {
	axes, _, err := s.source.LoadCriteria(ctx, s.workbook)
	return axes, err
}

// Imperatives runs the imperative filter for the selection's criteria.
// A schema mismatch yields an empty list together with the error; the
// caller shows the notice and stays at the imperative stage.
func (s *PlanService) Imperatives(ctx context.Context, sel strategy.Selection) ([]string, error) {
	_, matrix, err := s.source.LoadCriteria(ctx, s.workbook)
	if err != nil {
		return nil, err
	}
	return strategy.FilterImperatives(matrix, sel.Role, sel.Lifecycle, sel.Journey)
}

// Differentiators returns the distinct differentiator names.
func (s *PlanService) Differentiators(ctx context.Context) ([]string, error) {
	return s.source.LoadDifferentiators(ctx, s.workbook)
}

// Coverage computes the dashboard's matrix coverage metrics.
func (s *PlanService) Coverage(ctx context.Context) (insights.Coverage, error) {
	axes, matrix, err := s.source.LoadCriteria(ctx, s.workbook)
	if err != nil {
		return insights.Coverage{}, err
	}
	return insights.MatrixCoverage(axes, matrix), nil
}

// GeneratePlan runs the generation pass: for every selected imperative,
// in selection order, resolve its tactic and generate a narrative, one
// call at a time. A missing tactic row or a failed generation is
// isolated to its item; siblings still proceed. Only a tactic-sheet
// schema mismatch aborts the pass.
func (s *PlanService) GeneratePlan(ctx context.Context, sel strategy.Selection) ([]strategy.PlanItem, error) {
	tactics, err := s.source.LoadTactics(ctx, s.workbook)
	if err != nil {
		return nil, err
	}

	items := make([]strategy.PlanItem, 0, len(sel.Imperatives))
	for _, imperative := range sel.Imperatives {
		item := strategy.PlanItem{Imperative: imperative}

		tactic, err := tactics.Resolve(imperative, sel.Role)
		if err != nil {
			// No generation call is attempted for a missing tactic row.
			item.Notice = err.Error()
			items = append(items, item)
			continue
		}
		item.Tactic = tactic

		narrative, err := s.generator.Generate(ctx, tactic, sel.Differentiators)
		if err != nil {
			log.Printf("[PlanService] Generation failed for %q: %v", imperative, err)
			item.Notice = err.Error()
		}
		item.Narrative = narrative
		items = append(items, item)
	}
	return items, nil
}

// InvalidateWorkbook drops the cached workbook so the next render
// re-reads the file.
func (s *PlanService) InvalidateWorkbook() {
	type invalidator interface{ Invalidate(string) }
	if inv, ok := s.source.(invalidator); ok {
		inv.Invalidate(s.workbook)
	}
}

// IsStageFatal reports whether an error must abort the current render
// rather than be shown beside its item.
func IsStageFatal(err error) bool {
	return errors.IsLoadError(err) || errors.IsSchemaMismatch(err)
}
