package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info", FormatJSON)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debug().Msg("hidden")
	log.Info().Str("word", "cart").Msg("visible")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not a single JSON line: %q", buf.String())
	}
	if line["message"] != "visible" || line["word"] != "cart" || line["level"] != "info" {
		t.Errorf("unexpected log line: %v", line)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name, level, format string
	}{
		{"bad level", "loud", FormatJSON},
		{"bad format", "info", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(&bytes.Buffer{}, tt.level, tt.format); err == nil {
				t.Error("New() error = nil, want error")
			}
		})
	}
}
