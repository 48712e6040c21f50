// catalog.go
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TaskDefinition describes how the client should run one stimulus task.
type TaskDefinition struct {
	Type        TaskType `yaml:"type" json:"type"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Duration    int      `yaml:"duration" json:"duration"` // seconds
}

// TaskCatalog holds every task definition, in presentation order.
type TaskCatalog struct {
	Tasks []TaskDefinition `yaml:"tasks" json:"tasks"`
}

// DefaultTaskCatalog is used when no catalog file is configured.
func DefaultTaskCatalog() *TaskCatalog {
	return &TaskCatalog{
		Tasks: []TaskDefinition{
			{Type: TaskBaseline, Name: "Baseline calibration", Description: "Follow the dots as they appear on screen so the tracker can calibrate to your eyes.", Duration: 15},
			{Type: TaskImage, Name: "Image viewing", Description: "Look carefully at the two pictures, focusing on the rooster.", Duration: 10},
			{Type: TaskVideo, Name: "Video watching", Description: "Watch the video and follow the picture naturally.", Duration: 20},
			{Type: TaskText, Name: "Text reading", Description: "Read the paragraph on screen out loud.", Duration: 30},
		},
	}
}

// LoadTaskCatalog reads and parses a tasks.yaml file.
func LoadTaskCatalog(path string) (*TaskCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task catalog: %w", err)
	}

	var catalog TaskCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task catalog YAML: %w", err)
	}

	for i, t := range catalog.Tasks {
		if !t.Type.IsKnown() {
			return nil, fmt.Errorf("task catalog entry %d: unknown task type %q", i, t.Type)
		}
		if t.Duration <= 0 {
			return nil, fmt.Errorf("task catalog entry %d (%s): duration must be positive", i, t.Type)
		}
	}

	return &catalog, nil
}

// Lookup returns the definition for a task type.
func (c *TaskCatalog) Lookup(t TaskType) (TaskDefinition, bool) {
	for _, def := range c.Tasks {
		if def.Type == t {
			return def, true
		}
	}
	return TaskDefinition{}, false
}
