package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gaze-go/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps per-session task results between requests. SaveTask
// must apply its read-modify-write of the task map atomically.
type SessionStore interface {
	// SaveTask creates the session on first use (recording info) and
	// overwrites any earlier result for the same task type.
	SaveTask(ctx context.Context, sessionID string, info models.UserInfo, result models.TaskResult) error
	GetSession(ctx context.Context, sessionID string) (*models.SessionRecord, error)
	ListSessions(ctx context.Context) ([]models.SessionSummary, error)
	// DeleteIdleSince removes sessions not written to since cutoff.
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error)
}

// MemoryStore is an in-process SessionStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.SessionRecord
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.SessionRecord),
		now:      time.Now,
	}
}

func (s *MemoryStore) SaveTask(ctx context.Context, sessionID string, info models.UserInfo, result models.TaskResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	record, ok := s.sessions[sessionID]
	if !ok {
		record = &models.SessionRecord{
			SessionID: sessionID,
			UserInfo:  info,
			Tasks:     make(map[models.TaskType]models.TaskResult),
			CreatedAt: now,
		}
		s.sessions[sessionID] = record
	}

	record.Tasks[result.Task] = result
	record.UpdatedAt = now
	return nil
}

// GetSession returns a copy; callers may not mutate the stored record.
func (s *MemoryStore) GetSession(ctx context.Context, sessionID string) (*models.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	out := *record
	out.Tasks = make(map[models.TaskType]models.TaskResult, len(record.Tasks))
	for k, v := range record.Tasks {
		out.Tasks[k] = v
	}
	return &out, nil
}

func (s *MemoryStore) ListSessions(ctx context.Context) ([]models.SessionSummary, error) {
	s.mu.RLock()
	records := make([]*models.SessionRecord, 0, len(s.sessions))
	for _, r := range s.sessions {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].SessionID < records[j].SessionID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	summaries := make([]models.SessionSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, r.Summary())
	}
	s.mu.RUnlock()

	return summaries, nil
}

func (s *MemoryStore) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, r := range s.sessions {
		if r.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}
