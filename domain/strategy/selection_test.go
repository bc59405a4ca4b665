package strategy

import (
	"reflect"
	"testing"
)

func completeSelection() Selection {
	sel := NewSelection()
	sel.SetCriteria("HCP", "Launch", "Awareness", "Diabetes")
	return sel
}

func TestSelection_StartsAtCriteriaStage(t *testing.T) {
	sel := NewSelection()
	if sel.Stage() != StageCriteria {
		t.Errorf("Expected criteria stage, got %v", sel.Stage())
	}
	if sel.CriteriaComplete() {
		t.Error("Placeholder selection must not count as complete")
	}
}

func TestSelection_DiseaseGatesStageOne(t *testing.T) {
	sel := NewSelection()
	sel.SetCriteria("HCP", "Launch", "Awareness", DiseasePlaceholder)
	if sel.Stage() != StageCriteria {
		t.Error("Stage 1 must require a disease state even though no filter consults it")
	}

	sel.SetCriteria("HCP", "Launch", "Awareness", "Diabetes")
	if sel.Stage() != StageImperatives {
		t.Errorf("Expected imperatives stage, got %v", sel.Stage())
	}
}

func TestSelection_StageProgression(t *testing.T) {
	sel := completeSelection()
	offered := []string{"A", "B", "C", "D"}

	sel.SetImperatives([]string{"A"}, offered)
	if sel.Stage() != StageDifferentiators {
		t.Errorf("Expected differentiators stage, got %v", sel.Stage())
	}

	sel.SetDifferentiators([]string{"Fast onset"}, []string{"Fast onset", "Once daily"})
	if sel.Stage() != StageActionReady {
		t.Errorf("Expected action-ready stage, got %v", sel.Stage())
	}
}

func TestSelection_PicksAreCappedAndValidated(t *testing.T) {
	sel := completeSelection()
	offered := []string{"A", "B", "C", "D"}

	sel.SetImperatives([]string{"A", "bogus", "B", "A", "C", "D"}, offered)
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(sel.Imperatives, want) {
		t.Errorf("Expected %v, got %v", want, sel.Imperatives)
	}
}

func TestSelection_CriteriaChangeInvalidatesDownstream(t *testing.T) {
	sel := completeSelection()
	sel.SetImperatives([]string{"A"}, []string{"A"})
	sel.SetDifferentiators([]string{"Fast onset"}, []string{"Fast onset"})

	sel.SetCriteria("Patient", "Launch", "Awareness", "Diabetes")
	if len(sel.Imperatives) != 0 || len(sel.Differentiators) != 0 {
		t.Error("Changing an axis must clear imperatives and differentiators")
	}
	if sel.Stage() != StageImperatives {
		t.Errorf("Expected to fall back to imperatives stage, got %v", sel.Stage())
	}
}

func TestSelection_DiseaseOnlyChangeKeepsDownstream(t *testing.T) {
	sel := completeSelection()
	sel.SetImperatives([]string{"A"}, []string{"A"})

	sel.SetCriteria("HCP", "Launch", "Awareness", "Asthma")
	if len(sel.Imperatives) != 1 {
		t.Error("A disease-only change feeds no filter and must not clear picks")
	}
}

func TestSelection_EmptyImperativesClearDifferentiators(t *testing.T) {
	sel := completeSelection()
	sel.SetImperatives([]string{"A"}, []string{"A"})
	sel.SetDifferentiators([]string{"Fast onset"}, []string{"Fast onset"})

	sel.SetImperatives(nil, []string{"A"})
	if len(sel.Differentiators) != 0 {
		t.Error("Emptying the imperative stage must clear the differentiator picks")
	}
}
