package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"go.trai.ch/zerr"

	"go.velin.dev/pipfile/internal/adapters/logger"
)

func newTestLogger() (*logger.Logger, *bytes.Buffer) {
	l := logger.New()
	buf := &bytes.Buffer{}
	l.SetOutput(buf)
	return l, buf
}

func TestLogger_Info(t *testing.T) {
	l, buf := newTestLogger()
	l.Info("resolved 5 packages")

	out := buf.String()
	if !strings.Contains(out, "level=INFO") || !strings.Contains(out, "resolved 5 packages") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestLogger_Warn(t *testing.T) {
	l, buf := newTestLogger()
	l.Warn("manifest declares no package sources")

	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestLogger_Error(t *testing.T) {
	l, buf := newTestLogger()
	l.Error(zerr.New("index unavailable"))

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "index unavailable") {
		t.Errorf("unexpected output: %q", out)
	}
}
