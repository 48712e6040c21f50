package analysis

import (
	"fmt"

	"gaze-go/internal/models"
)

// normativeBaselines are population reference values per task type.
// The map is never written after package init.
var normativeBaselines = map[models.TaskType]models.AxisStatistics{
	models.TaskBaseline: {
		XAvg: 713.5751317312771,
		YAvg: 402.7833802120454,
		XStd: 250.3032201790183,
		YStd: 180.3955841826786,
	},
	models.TaskImage: {
		XAvg: 675.9809203021368,
		YAvg: 507.5129294969926,
		XStd: 96.34322937033356,
		YStd: 54.98972616789554,
	},
	models.TaskText: {
		XAvg: 798.1710423511332,
		YAvg: 603.50437211459584,
		XStd: 202.98884055053023,
		YStd: 138.0331209650518,
	},
	models.TaskVideo: {
		XAvg: 883.7260491898053,
		YAvg: 606.0342106999008,
		XStd: 197.26021187706115,
		YStd: 107.8777422682236,
	},
}

// NormativeBaselines returns a copy of the built-in reference table.
func NormativeBaselines() map[models.TaskType]models.AxisStatistics {
	out := make(map[models.TaskType]models.AxisStatistics, len(normativeBaselines))
	for k, v := range normativeBaselines {
		out[k] = v
	}
	return out
}

// BaselineComparator compares observed statistics with a fixed reference table.
// It holds no mutable state and may be shared between goroutines.
type BaselineComparator struct {
	baselines map[models.TaskType]models.AxisStatistics
}

// NewBaselineComparator returns a comparator over the built-in normative table.
func NewBaselineComparator() *BaselineComparator {
	return &BaselineComparator{baselines: normativeBaselines}
}

// NewBaselineComparatorWith returns a comparator over a caller-supplied table.
// The table is copied.
func NewBaselineComparatorWith(table map[models.TaskType]models.AxisStatistics) *BaselineComparator {
	baselines := make(map[models.TaskType]models.AxisStatistics, len(table))
	for k, v := range table {
		baselines[k] = v
	}
	return &BaselineComparator{baselines: baselines}
}

// Compare looks up the baseline for task and computes the percentage
// deviation of each field. An unknown task yields an error marker, not an error.
func (c *BaselineComparator) Compare(user models.AxisStatistics, task models.TaskType) models.Comparison {
	baseline, ok := c.baselines[task]
	if !ok {
		return models.Comparison{Error: fmt.Sprintf("unknown task type: %s", task)}
	}

	diff := models.AxisStatistics{
		XAvg: diffPercent(user.XAvg, baseline.XAvg),
		YAvg: diffPercent(user.YAvg, baseline.YAvg),
		XStd: diffPercent(user.XStd, baseline.XStd),
		YStd: diffPercent(user.YStd, baseline.YStd),
	}

	return models.Comparison{
		User:        &user,
		Baseline:    &baseline,
		DiffPercent: &diff,
	}
}

func diffPercent(userValue, baselineValue float64) float64 {
	if baselineValue == 0 {
		return 0
	}
	return (userValue - baselineValue) / baselineValue * 100
}
