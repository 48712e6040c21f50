package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gaze-go/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists sessions in PostgreSQL. Task results are stored as
// jsonb, one row per (session, task type).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) SaveTask(ctx context.Context, sessionID string, info models.UserInfo, result models.TaskResult) error {
	infoJSON, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to encode user info: %w", err)
	}
	row, err := toTaskRow(sessionID, result)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session := models.GazeSession{ID: sessionID, UserInfo: infoJSON}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&session).Error; err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		if err := tx.Model(&models.GazeSession{}).Where("id = ?", sessionID).Update("updated_at", time.Now()).Error; err != nil {
			return fmt.Errorf("failed to touch session: %w", err)
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "task_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"result", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to save task result: %w", err)
		}
		return nil
	})
}

func (s *GormStore) GetSession(ctx context.Context, sessionID string) (*models.SessionRecord, error) {
	var session models.GazeSession
	err := s.db.WithContext(ctx).Preload("Tasks").First(&session, "id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return toSessionRecord(session)
}

func (s *GormStore) ListSessions(ctx context.Context) ([]models.SessionSummary, error) {
	var sessions []models.GazeSession
	err := s.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Select("session_id", "task_type")
		}).
		Order("created_at").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]models.SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		var info models.UserInfo
		if len(session.UserInfo) > 0 {
			if err := json.Unmarshal(session.UserInfo, &info); err != nil {
				return nil, fmt.Errorf("session %s: failed to decode user info: %w", session.ID, err)
			}
		}
		summaries = append(summaries, models.SessionSummary{
			SessionID:      session.ID,
			TasksCompleted: len(session.Tasks),
			Age:            info.Age,
			Gender:         info.Gender,
		})
	}
	return summaries, nil
}

func (s *GormStore) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	res := s.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&models.GazeSession{})
	return int(res.RowsAffected), res.Error
}

func toTaskRow(sessionID string, result models.TaskResult) (models.GazeTaskRow, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return models.GazeTaskRow{}, fmt.Errorf("failed to encode task result: %w", err)
	}
	return models.GazeTaskRow{
		SessionID: sessionID,
		TaskType:  result.Task.String(),
		Result:    payload,
	}, nil
}

func toSessionRecord(session models.GazeSession) (*models.SessionRecord, error) {
	record := &models.SessionRecord{
		SessionID: session.ID,
		Tasks:     make(map[models.TaskType]models.TaskResult, len(session.Tasks)),
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}

	if len(session.UserInfo) > 0 {
		if err := json.Unmarshal(session.UserInfo, &record.UserInfo); err != nil {
			return nil, fmt.Errorf("session %s: failed to decode user info: %w", session.ID, err)
		}
	}

	for _, row := range session.Tasks {
		var result models.TaskResult
		if err := json.Unmarshal(row.Result, &result); err != nil {
			return nil, fmt.Errorf("session %s task %s: failed to decode result: %w", session.ID, row.TaskType, err)
		}
		record.Tasks[models.TaskType(row.TaskType)] = result
	}

	return record, nil
}
