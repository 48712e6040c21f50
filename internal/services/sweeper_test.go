package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gaze-go/internal/models"
	"gaze-go/internal/repository"

	"go.uber.org/zap"
)

type failingStore struct {
	repository.SessionStore
}

func (failingStore) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, errors.New("db down")
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	store.SaveTask(ctx, "s1", models.UserInfo{}, models.TaskResult{Task: models.TaskBaseline})

	s := NewSweeper(zap.NewNop(), store, time.Hour, time.Minute)

	if removed := s.Sweep(ctx); removed != 0 {
		t.Fatalf("expected nothing removed yet, got %d", removed)
	}

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if removed := s.Sweep(ctx); removed != 1 {
		t.Fatalf("expected 1 session removed, got %d", removed)
	}
	if _, err := store.GetSession(ctx, "s1"); !errors.Is(err, repository.ErrSessionNotFound) {
		t.Errorf("expected session to be evicted, got %v", err)
	}
}

func TestSweepStoreError(t *testing.T) {
	s := NewSweeper(zap.NewNop(), failingStore{}, time.Hour, time.Minute)
	if removed := s.Sweep(context.Background()); removed != 0 {
		t.Fatalf("expected 0 on error, got %d", removed)
	}
}

func TestStartDisabledWithZeroTTL(t *testing.T) {
	s := NewSweeper(zap.NewNop(), failingStore{}, 0, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Would log errors from failingStore if the loop were running.
	s.Start(ctx)
}
