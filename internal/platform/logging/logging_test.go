package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"gocycling/internal/platform/logging"
)

func TestNewRespectsLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := logging.New("info", &buf)
	logger.Debug("hidden")
	logger.Info("ride started", "ride_id", "r-1")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered at info level: %s", out)
	}
	if !strings.Contains(out, "ride started") || !strings.Contains(out, "ride_id=r-1") {
		t.Fatalf("expected structured info line, got %s", out)
	}
}

func TestNewFallsBackToWarn(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := logging.New("nonsense", &buf)
	logger.Info("quiet")
	logger.Warn("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Fatalf("expected warn fallback, got %s", buf.String())
	}
	logging.OrDiscard(nil).Error("nowhere")
}
