// internal/models/gaze.go
package models

import "time"

// TaskType identifies the stimulus condition a gaze stream was recorded under.
// Only the four constants below are known; any other value is carried through
// as-is so the comparison step can report it back to the caller.
type TaskType string

const (
	TaskBaseline TaskType = "baseline"
	TaskImage    TaskType = "image"
	TaskText     TaskType = "text"
	TaskVideo    TaskType = "video"

	// TaskUnknown is used when a submission omits the task field entirely.
	TaskUnknown TaskType = "unknown"
)

// KnownTaskTypes lists the task types in the order the client runs them.
var KnownTaskTypes = []TaskType{TaskBaseline, TaskImage, TaskText, TaskVideo}

// IsKnown reports whether t is one of the four recognized task types.
func (t TaskType) IsKnown() bool {
	switch t {
	case TaskBaseline, TaskImage, TaskText, TaskVideo:
		return true
	}
	return false
}

func (t TaskType) String() string {
	return string(t)
}

// GazeSample is a single [x, y] screen coordinate as sent by the client.
// It is a slice rather than an array so that wrong-arity samples survive
// decoding and can be rejected with a MalformedSampleError.
type GazeSample []float64

// AxisStatistics holds per-axis mean and population standard deviation.
// The same shape is reused for baseline values and percentage deviations.
type AxisStatistics struct {
	XAvg float64 `json:"x_avg" yaml:"x_avg"`
	YAvg float64 `json:"y_avg" yaml:"y_avg"`
	XStd float64 `json:"x_std" yaml:"x_std"`
	YStd float64 `json:"y_std" yaml:"y_std"`
}

// Comparison is the result of checking user statistics against the normative
// baseline for a task. When the task type has no baseline only Error is set.
type Comparison struct {
	User        *AxisStatistics `json:"user,omitempty"`
	Baseline    *AxisStatistics `json:"baseline,omitempty"`
	DiffPercent *AxisStatistics `json:"diff_percent,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// Failed reports whether the comparison carries an error marker instead of values.
func (c Comparison) Failed() bool {
	return c.Error != ""
}

// UserInfo is opaque demographic metadata passed through from the client.
type UserInfo struct {
	Age    any `json:"age"`
	Gender any `json:"gender"`
}

// TaskSubmission is the raw payload for one completed task.
type TaskSubmission struct {
	Task      TaskType     `json:"task"`
	Data      []GazeSample `json:"data"`
	SessionID string       `json:"sessionId"`
	Age       any          `json:"age,omitempty"`
	Gender    any          `json:"gender,omitempty"`
}

// UserInfo returns the submission's pass-through metadata.
func (s TaskSubmission) UserInfo() UserInfo {
	return UserInfo{Age: s.Age, Gender: s.Gender}
}

// TaskResult is the analysed outcome of one task submission. When the
// submission had no samples only Task, SessionID and Error are populated.
type TaskResult struct {
	Task          TaskType        `json:"task"`
	SessionID     string          `json:"sessionId"`
	Statistics    *AxisStatistics `json:"statistics,omitempty"`
	Comparison    *Comparison     `json:"comparison,omitempty"`
	Visualization string          `json:"visualization,omitempty"`
	DataPoints    int             `json:"data_points"`
	Error         string          `json:"error,omitempty"`
}

// Failed reports whether the result is a "no data" error marker.
func (r TaskResult) Failed() bool {
	return r.Error != ""
}

// SessionRecord is what a session store keeps per client session.
type SessionRecord struct {
	SessionID string
	UserInfo  UserInfo
	Tasks     map[TaskType]TaskResult
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionSummary is the listing view of a session.
type SessionSummary struct {
	SessionID      string `json:"sessionId"`
	TasksCompleted int    `json:"tasks_completed"`
	Age            any    `json:"age"`
	Gender         any    `json:"gender"`
}

// Summary builds the listing view of the record.
func (r *SessionRecord) Summary() SessionSummary {
	return SessionSummary{
		SessionID:      r.SessionID,
		TasksCompleted: len(r.Tasks),
		Age:            r.UserInfo.Age,
		Gender:         r.UserInfo.Gender,
	}
}

// SessionReport is built fresh on every report request.
type SessionReport struct {
	Summary        string                  `json:"summary"`
	Tasks          map[TaskType]TaskResult `json:"tasks"`
	TotalTasks     int                     `json:"total_tasks"`
	Recommendation string                  `json:"recommendation"`
	UserInfo       UserInfo                `json:"user_info"`
}
