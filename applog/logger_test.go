package applog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewWritesConsoleLine(t *testing.T) {
	var buf bytes.Buffer
	log := New(zapcore.AddSync(&buf), zapcore.InfoLevel)

	log.Named("robot").Infof("move left=%d right=%d", 100, -100)
	log.Debug("hidden")
	_ = log.Sync()

	out := buf.String()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "robot") {
		t.Errorf("missing level or name in %q", out)
	}
	if !strings.Contains(out, "move left=100 right=-100") {
		t.Errorf("missing message in %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
}

func TestInitWritesFile(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	path := filepath.Join(t.TempDir(), "robodrive.log")
	if err := Init(DefaultOptions(path)); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Named("test").Info("hello")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file = %q, want it to contain hello", data)
	}
}
