package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGormZapLoggerTrace(t *testing.T) {
	tests := []struct {
		name      string
		level     logger.LogLevel
		elapsed   time.Duration
		err       error
		wantLevel zapcore.Level
		wantLogs  int
	}{
		{"error", logger.Error, 0, errors.New("boom"), zapcore.ErrorLevel, 1},
		{"record not found is quiet", logger.Error, 0, gorm.ErrRecordNotFound, 0, 0},
		{"slow query", logger.Warn, time.Second, nil, zapcore.WarnLevel, 1},
		{"fast query at warn", logger.Warn, 0, nil, 0, 0},
		{"silent", logger.Silent, time.Second, errors.New("boom"), 0, 0},
		{"info traces everything", logger.Info, 0, nil, zapcore.DebugLevel, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			l := NewGormZapLogger(zap.New(core)).LogMode(tt.level)

			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), func() (string, int64) {
				return "SELECT 1", 1
			}, tt.err)

			if logs.Len() != tt.wantLogs {
				t.Fatalf("expected %d log entries, got %d", tt.wantLogs, logs.Len())
			}
			if tt.wantLogs > 0 && logs.All()[0].Level != tt.wantLevel {
				t.Errorf("expected level %s, got %s", tt.wantLevel, logs.All()[0].Level)
			}
		})
	}
}
