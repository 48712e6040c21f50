package models

import (
	"encoding/json"
	"time"
)

// GazeSession is the persisted form of a session.
type GazeSession struct {
	ID        string          `gorm:"primaryKey"`
	UserInfo  json.RawMessage `gorm:"type:jsonb"`
	Tasks     []GazeTaskRow   `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

// GazeTaskRow stores one TaskResult, keyed by session and task type.
type GazeTaskRow struct {
	SessionID string          `gorm:"primaryKey"`
	TaskType  string          `gorm:"primaryKey"`
	Result    json.RawMessage `gorm:"type:jsonb"`
	UpdatedAt time.Time
}
