package advisor

import (
	"math"
	"testing"
	"time"

	"github.com/waypointhq/waypoint/internal/cpm"
	"github.com/waypointhq/waypoint/internal/model"
)

var base = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// fixture builds a project that exercises every heuristic:
//
//	a(32h, 1 assignee) → b(20h) on the critical path, FS-linked;
//	c(8h) feeds b start-to-start and carries 32h of float.
func fixture(t *testing.T) (*cpm.Result, []model.Task, []model.Dependency) {
	t.Helper()
	tasks := []model.Task{
		{ID: "a", ProjectID: "p1", Name: "Design", DurationHours: 32, Start: base, AssigneeIDs: []string{"u1"}},
		{ID: "b", ProjectID: "p1", Name: "Build", DurationHours: 20, Start: base},
		{ID: "c", ProjectID: "p1", Name: "Docs", DurationHours: 8, Start: base},
	}
	deps := []model.Dependency{
		{ID: "d1", ProjectID: "p1", PredecessorID: "a", SuccessorID: "b", Type: model.FinishToStart},
		{ID: "d2", ProjectID: "p1", PredecessorID: "c", SuccessorID: "b", Type: model.StartToStart},
	}
	res, err := cpm.Analyze("p1", tasks, deps)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return res, tasks, deps
}

func suggestionsOfKind(r *Report, kind string) []Suggestion {
	var out []Suggestion
	for _, s := range r.Suggestions {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

func TestOptimize_FastTrack(t *testing.T) {
	t.Parallel()
	res, tasks, deps := fixture(t)
	report := Optimize(res, tasks, deps)

	ft := suggestionsOfKind(report, KindFastTrack)
	if len(ft) != 1 {
		t.Fatalf("fast-track suggestions = %d, want 1", len(ft))
	}
	if ft[0].TaskID != "b" || ft[0].RelatedTaskID != "a" {
		t.Errorf("fast-track targets %s←%s, want b←a", ft[0].TaskID, ft[0].RelatedTaskID)
	}
	if want := 20 * 0.30; math.Abs(ft[0].EstimatedSavingsHours-want) > 1e-9 {
		t.Errorf("fast-track savings = %v, want %v", ft[0].EstimatedSavingsHours, want)
	}
	if ft[0].Risk != RiskMedium {
		t.Errorf("fast-track risk = %q, want %q", ft[0].Risk, RiskMedium)
	}
}

func TestOptimize_Crash(t *testing.T) {
	t.Parallel()
	res, tasks, deps := fixture(t)
	report := Optimize(res, tasks, deps)

	crash := suggestionsOfKind(report, KindCrash)
	// Only a has assignees; b is critical but unstaffed.
	if len(crash) != 1 {
		t.Fatalf("crash suggestions = %d, want 1", len(crash))
	}
	if crash[0].TaskID != "a" {
		t.Errorf("crash target = %s, want a", crash[0].TaskID)
	}
	if want := 32 * 0.20; math.Abs(crash[0].EstimatedSavingsHours-want) > 1e-9 {
		t.Errorf("crash savings = %v, want %v", crash[0].EstimatedSavingsHours, want)
	}
	if crash[0].Risk != RiskLow {
		t.Errorf("crash risk = %q, want %q", crash[0].Risk, RiskLow)
	}
}

func TestOptimize_Parallelize(t *testing.T) {
	t.Parallel()
	res, tasks, deps := fixture(t)
	report := Optimize(res, tasks, deps)

	par := suggestionsOfKind(report, KindParallelize)
	if len(par) != 1 {
		t.Fatalf("parallelize suggestions = %d, want 1", len(par))
	}
	if par[0].TaskID != "c" {
		t.Errorf("parallelize target = %s, want c", par[0].TaskID)
	}
	if par[0].FloatAvailableHours <= parallelizeFloatThresholdHours {
		t.Errorf("float = %v, want above threshold %v", par[0].FloatAvailableHours, parallelizeFloatThresholdHours)
	}
}

func TestOptimize_Totals(t *testing.T) {
	t.Parallel()
	res, tasks, deps := fixture(t)
	report := Optimize(res, tasks, deps)

	if report.CompressionOpportunities != 2 {
		t.Errorf("CompressionOpportunities = %d, want 2", report.CompressionOpportunities)
	}
	if want := 20*0.30 + 32*0.20; math.Abs(report.EstimatedSavingsHours-want) > 1e-9 {
		t.Errorf("EstimatedSavingsHours = %v, want %v", report.EstimatedSavingsHours, want)
	}
	if report.Analysis != res {
		t.Error("report does not carry the source analysis")
	}
}

func TestOptimize_QuietOnHealthySchedule(t *testing.T) {
	t.Parallel()
	// A single unstaffed task has no FS predecessors, no assignees, and no
	// non-critical slack: nothing to suggest.
	tasks := []model.Task{{ID: "solo", ProjectID: "p1", Name: "Solo", DurationHours: 8, Start: base}}
	res, err := cpm.Analyze("p1", tasks, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	report := Optimize(res, tasks, nil)
	if len(report.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want none", report.Suggestions)
	}
	if report.EstimatedSavingsHours != 0 || report.CompressionOpportunities != 0 {
		t.Errorf("totals = (%v, %d), want zero", report.EstimatedSavingsHours, report.CompressionOpportunities)
	}
}
