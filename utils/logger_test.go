package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rentledger/services/logger"
)

func TestFileLogger_WritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewFileLogger(dir, logger.InfoLevel)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}

	l.Debug("hidden %d", 1)
	l.Error("audit write failed for %s", "availability_block")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	name := filepath.Join(dir, "app-"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "ERROR: ") || !strings.Contains(content, "audit write failed for availability_block") {
		t.Errorf("expected error line, got %q", content)
	}
	if strings.Contains(content, "hidden") {
		t.Errorf("debug line should be filtered at info level, got %q", content)
	}
}
