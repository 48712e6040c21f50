package analysis

import (
	"fmt"

	"gaze-go/internal/models"
)

// NoGazeDataError is the marker stored in a TaskResult when a submission
// arrives without samples.
const NoGazeDataError = "no gaze data"

// Analyzer runs the per-task pipeline: extract, summarise, render, compare.
// Its fields are set once at construction, so one instance can serve
// concurrent requests without locking.
type Analyzer struct {
	comparator *BaselineComparator
	renderer   TrajectoryRenderer
}

func NewAnalyzer(comparator *BaselineComparator, renderer TrajectoryRenderer) *Analyzer {
	if comparator == nil {
		comparator = NewBaselineComparator()
	}
	if renderer == nil {
		renderer = NewPlotRenderer()
	}
	return &Analyzer{comparator: comparator, renderer: renderer}
}

// Comparator exposes the baseline comparator, mostly for read-only endpoints.
func (a *Analyzer) Comparator() *BaselineComparator {
	return a.comparator
}

// ProcessTask analyses one submission. Empty data yields a result carrying
// NoGazeDataError. Malformed or overflowing samples and render failures
// return an error; IsInvalidInput tells the first two apart.
func (a *Analyzer) ProcessTask(sub models.TaskSubmission) (models.TaskResult, error) {
	task := sub.Task
	if task == "" {
		task = models.TaskUnknown
	}

	if len(sub.Data) == 0 {
		return models.TaskResult{
			Task:      task,
			SessionID: sub.SessionID,
			Error:     NoGazeDataError,
		}, nil
	}

	xs, ys, err := ExtractCoordinates(sub.Data)
	if err != nil {
		return models.TaskResult{}, err
	}

	stats := CalculateStatistics(xs, ys)
	if err := checkFinite("", stats); err != nil {
		return models.TaskResult{}, err
	}

	comparison := a.comparator.Compare(stats, task)
	if comparison.DiffPercent != nil {
		if err := checkFinite("diff_percent.", *comparison.DiffPercent); err != nil {
			return models.TaskResult{}, err
		}
	}

	visualization, err := a.renderer.Render(xs, ys, task.String())
	if err != nil {
		return models.TaskResult{}, fmt.Errorf("failed to render %s trajectory: %w", task, err)
	}

	return models.TaskResult{
		Task:          task,
		SessionID:     sub.SessionID,
		Statistics:    &stats,
		Comparison:    &comparison,
		Visualization: visualization,
		DataPoints:    len(sub.Data),
	}, nil
}

// GenerateReport builds the session report for a stored session.
func (a *Analyzer) GenerateReport(record *models.SessionRecord) models.SessionReport {
	return GenerateReport(record.Tasks, record.UserInfo)
}
