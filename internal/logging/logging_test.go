package logging

import (
	"strings"
	"testing"
)

func TestLoggerWritesLogfmt(t *testing.T) {
	var buf strings.Builder
	log := New(&buf, Info)
	log.Info("execution started", F("execution_id", "ex-1"), F("route", "morning loop"))

	line := buf.String()
	if !strings.Contains(line, "level=info") {
		t.Fatalf("missing level in %q", line)
	}
	if !strings.Contains(line, `msg="execution started"`) {
		t.Fatalf("missing quoted message in %q", line)
	}
	if !strings.Contains(line, "execution_id=ex-1") {
		t.Fatalf("missing field in %q", line)
	}
	if !strings.Contains(line, `route="morning loop"`) {
		t.Fatalf("expected value with space to be quoted in %q", line)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf strings.Builder
	log := New(&buf, Warn)
	log.Info("dropped")
	log.Warn("kept")
	if strings.Contains(buf.String(), "dropped") {
		t.Fatalf("expected info line to be filtered")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected warn line to be written")
	}
}

func TestWithAttachesFields(t *testing.T) {
	var buf strings.Builder
	log := New(&buf, Debug).With(F("component", "guard"))
	log.Debug("check")
	if !strings.Contains(buf.String(), "component=guard") {
		t.Fatalf("missing attached field in %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG") != Debug {
		t.Fatalf("expected debug")
	}
	if ParseLevel("warning") != Warn {
		t.Fatalf("expected warn")
	}
	if ParseLevel("") != Info {
		t.Fatalf("expected info default")
	}
}
