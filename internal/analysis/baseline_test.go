package analysis

import (
	"testing"

	"gaze-go/internal/models"
)

func TestCompareKnownTaskTypes(t *testing.T) {
	c := NewBaselineComparator()
	user := models.AxisStatistics{XAvg: 700, YAvg: 500, XStd: 150, YStd: 100}

	for _, task := range models.KnownTaskTypes {
		t.Run(task.String(), func(t *testing.T) {
			cmp := c.Compare(user, task)
			if cmp.Failed() {
				t.Fatalf("unexpected error marker: %s", cmp.Error)
			}
			if cmp.User == nil || cmp.Baseline == nil || cmp.DiffPercent == nil {
				t.Fatalf("expected fully populated comparison, got %+v", cmp)
			}
			if *cmp.User != user {
				t.Errorf("user stats changed: %+v", *cmp.User)
			}

			base := normativeBaselines[task]
			if *cmp.Baseline != base {
				t.Errorf("baseline mismatch: got %+v want %+v", *cmp.Baseline, base)
			}
			wantX := (user.XAvg - base.XAvg) / base.XAvg * 100
			if !almostEqual(cmp.DiffPercent.XAvg, wantX) {
				t.Errorf("x_avg diff: got %v want %v", cmp.DiffPercent.XAvg, wantX)
			}
			wantYStd := (user.YStd - base.YStd) / base.YStd * 100
			if !almostEqual(cmp.DiffPercent.YStd, wantYStd) {
				t.Errorf("y_std diff: got %v want %v", cmp.DiffPercent.YStd, wantYStd)
			}
		})
	}
}

func TestCompareUnknownTaskType(t *testing.T) {
	c := NewBaselineComparator()

	cmp := c.Compare(models.AxisStatistics{XAvg: 1, YAvg: 1}, "unknown_type")
	if !cmp.Failed() {
		t.Fatal("expected error marker for unknown task type")
	}
	if cmp.Error != "unknown task type: unknown_type" {
		t.Errorf("unexpected error text %q", cmp.Error)
	}
	if cmp.User != nil || cmp.Baseline != nil || cmp.DiffPercent != nil {
		t.Errorf("expected no values alongside error marker, got %+v", cmp)
	}
}

func TestCompareZeroBaselineFieldYieldsZeroDiff(t *testing.T) {
	c := NewBaselineComparatorWith(map[models.TaskType]models.AxisStatistics{
		models.TaskImage: {XAvg: 0, YAvg: 200, XStd: 0, YStd: 50},
	})

	cmp := c.Compare(models.AxisStatistics{XAvg: 123, YAvg: 300, XStd: 9, YStd: 25}, models.TaskImage)
	if cmp.Failed() {
		t.Fatalf("unexpected error marker: %s", cmp.Error)
	}
	if cmp.DiffPercent.XAvg != 0 || cmp.DiffPercent.XStd != 0 {
		t.Errorf("expected zero diff for zero baseline fields, got %+v", *cmp.DiffPercent)
	}
	if !almostEqual(cmp.DiffPercent.YAvg, 50) || !almostEqual(cmp.DiffPercent.YStd, -50) {
		t.Errorf("unexpected diffs %+v", *cmp.DiffPercent)
	}
}

func TestCompareIsDeterministic(t *testing.T) {
	c := NewBaselineComparator()
	user := models.AxisStatistics{XAvg: 640.5, YAvg: 480.25, XStd: 120.125, YStd: 90.0625}

	first := c.Compare(user, models.TaskText)
	second := c.Compare(user, models.TaskText)
	if *first.DiffPercent != *second.DiffPercent || *first.Baseline != *second.Baseline {
		t.Fatalf("expected identical comparisons, got %+v and %+v", *first.DiffPercent, *second.DiffPercent)
	}
}

func TestNormativeBaselinesReturnsCopy(t *testing.T) {
	table := NormativeBaselines()
	if len(table) != 4 {
		t.Fatalf("expected 4 baselines, got %d", len(table))
	}

	table[models.TaskBaseline] = models.AxisStatistics{}
	delete(table, models.TaskVideo)

	if normativeBaselines[models.TaskBaseline].XAvg == 0 {
		t.Fatal("built-in table was mutated through the copy")
	}
	if _, ok := normativeBaselines[models.TaskVideo]; !ok {
		t.Fatal("built-in table lost an entry through the copy")
	}
}
