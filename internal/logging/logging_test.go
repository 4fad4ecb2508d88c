package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "logsearch.log")

	closer, err := Init(path, zerolog.DebugLevel)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	log.Debug().Str("view", "logs").Msg("hello")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"view":"logs"`) || !strings.Contains(string(data), `"message":"hello"`) {
		t.Errorf("log file = %s", data)
	}
}

func TestInit_EmptyPathDiscards(t *testing.T) {
	closer, err := Init("", zerolog.InfoLevel)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer closer.Close()
	log.Info().Msg("dropped")
}
