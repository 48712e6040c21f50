package views

//go:generate templ generate

import (
	"fmt"
	"sort"

	"gaze-go/internal/models"
)

// orderedTasks lists known task types in run order, then anything else by name.
func orderedTasks(tasks map[models.TaskType]models.TaskResult) []models.TaskType {
	out := make([]models.TaskType, 0, len(tasks))
	for _, t := range models.KnownTaskTypes {
		if _, ok := tasks[t]; ok {
			out = append(out, t)
		}
	}

	var extra []models.TaskType
	for t := range tasks {
		if !t.IsKnown() {
			extra = append(extra, t)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(out, extra...)
}

func display(v any) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprint(v)
}
