package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_StampsServiceAndLevel(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf, Service: "reservations"})

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if line["service"] != "reservations" {
		t.Errorf("expected service=reservations, got %v", line["service"])
	}
	if line["message"] != "kept" {
		t.Errorf("expected message=kept, got %v", line["message"])
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first, Env: "test"})
	log := Init(Options{Output: &second, Level: "error"})

	log.Info().Msg("hello")
	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected output only in the first writer")
	}

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(first.Bytes()), &line); err != nil {
		t.Fatalf("decode %q: %v", first.String(), err)
	}
	if line["env"] != "test" {
		t.Errorf("expected env=test, got %v", line["env"])
	}
	if _, ok := line["service"]; ok {
		t.Errorf("service should be omitted when empty")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
		"panic":   zerolog.InfoLevel,
		"fatal":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
