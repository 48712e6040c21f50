package analysis

import (
	"fmt"

	"gaze-go/internal/models"
)

const (
	ReportTitle = "Eye-Tracking Analysis Report"

	// TotalTaskCount is the number of tasks a full session contains.
	TotalTaskCount = 4
)

// GenerateReport aggregates per-task results into a session report.
// The tasks map is copied so later store writes do not leak into the report.
func GenerateReport(tasks map[models.TaskType]models.TaskResult, info models.UserInfo) models.SessionReport {
	copied := make(map[models.TaskType]models.TaskResult, len(tasks))
	for k, v := range tasks {
		copied[k] = v
	}

	return models.SessionReport{
		Summary:        ReportTitle,
		Tasks:          copied,
		TotalTasks:     len(copied),
		Recommendation: Recommendation(len(copied)),
		UserInfo:       info,
	}
}

// Recommendation maps a completed-task count to advice text.
func Recommendation(completed int) string {
	switch {
	case completed == TotalTaskCount:
		return "All tasks completed. Data collection is complete."
	case completed >= 2:
		return fmt.Sprintf("Completed %d/%d tasks. Completing the remaining tasks is recommended for a more accurate analysis.", completed, TotalTaskCount)
	default:
		return "Too few tasks completed. Completing more tasks is recommended."
	}
}
