package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gaze-go/internal/config"
)

func TestInitWritesPerLevelFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, err := Init(config.LoggingConfig{Directory: dir, MaxSize: 1, MaxBackups: 1, MaxAge: 1})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	log.Info("task processed")
	log.Warn("slow render")
	_ = log.Sync()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	var sawInfo, sawWarn bool
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), "-info.log"):
			sawInfo = true
			data, _ := os.ReadFile(filepath.Join(dir, e.Name()))
			if strings.Contains(string(data), "slow render") {
				t.Error("warn entry leaked into info log")
			}
		case strings.HasSuffix(e.Name(), "-warn.log"):
			sawWarn = true
		}
	}
	if !sawInfo || !sawWarn {
		t.Fatalf("expected info and warn log files, got %v", entries)
	}
}
