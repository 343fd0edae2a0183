package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewLogger(t *testing.T) {
	l := NewLogger("", "")
	if l == nil {
		t.Fatal("Expected logger to be created, got nil")
	}

	// Logging methods must not panic without webhooks configured
	l.Info("Test info message", "TEST")
	l.Warn("Test warning message", "TEST")
	l.Debug("Test debug message", "TEST")
	l.System("Test system message", "TEST")
	l.Success("Test success message", "TEST")

	l.Close()
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelCritical, "CRITICAL"},
		{LevelError, "ERROR"},
		{LevelWarn, "WARN"},
		{LevelSuccess, "SUCCESS"},
		{LevelInfo, "INFO"},
		{LevelDebug, "DEBUG"},
		{LevelSystem, "SYSTEM"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLogFilesCreated(t *testing.T) {
	dir := t.TempDir()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	defer os.Chdir(oldWd)

	l := NewLogger("", "")
	l.Error("boom", "TEST")
	l.Close()

	if _, err := os.Stat(filepath.Join(dir, "logs", "combined.log")); err != nil {
		t.Errorf("combined.log not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs", "error.log")); err != nil {
		t.Errorf("error.log not created: %v", err)
	}
}

func TestGetReturnsSameInstance(t *testing.T) {
	l1 := Get()
	l2 := Get()
	if l1 != l2 {
		t.Error("Get() should return the same logger on subsequent calls")
	}
}
