package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "smartboard.log")
	log, closeFn, err := New(Options{File: path})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info("layout saved", "component", "clock")
	log.Debug("dropped below info")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "layout saved") || !strings.Contains(got, "component=clock") {
		t.Fatalf("unexpected log %q", got)
	}
	if strings.Contains(got, "dropped below info") {
		t.Fatalf("debug record written at info level")
	}
}

func TestNewWithoutFileDiscards(t *testing.T) {
	log, closeFn, err := New(Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info("nowhere")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
