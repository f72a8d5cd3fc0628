package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

// inTempDir runs the test from an empty directory so logs/ lands there.
func inTempDir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
}

func TestSetupLoggingQuietDiscards(t *testing.T) {
	inTempDir(t)

	if f := setupLogging(false, true); f != nil {
		f.Close()
		t.Error("Expected nil log file without debug")
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetupLoggingDefaultsToStderr(t *testing.T) {
	inTempDir(t)

	if f := setupLogging(false, false); f != nil {
		f.Close()
		t.Error("Expected nil log file without debug")
	}
	if log.Writer() != os.Stderr {
		t.Errorf("Expected log output to be stderr, got %v", log.Writer())
	}
}

func TestSetupLoggingDebugWritesFile(t *testing.T) {
	inTempDir(t)

	f := setupLogging(true, true)
	if f == nil {
		t.Fatal("Expected a log file with debug")
	}
	defer f.Close()

	log.Println("Test log message")

	info, err := os.Stat(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
	if log.Writer() == os.Stderr || log.Writer() == os.Stdout {
		t.Error("Expected logs to go to the file only")
	}
}

func TestSetupLoggingRotates(t *testing.T) {
	inTempDir(t)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to write large log file: %v", err)
	}

	f := setupLogging(true, true)
	if f == nil {
		t.Fatal("Expected a log file")
	}
	defer f.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected the rotated file next to the new one, got %d entries", len(entries))
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected a fresh log file, got %d bytes", info.Size())
	}
}
