package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestInitWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWriter(&buf, "warn"); err != nil {
		t.Fatalf("init: %v", err)
	}
	ctx := context.Background()
	l := Named("test")
	l.Info(ctx, "hidden")
	l.Warn(ctx, "shown", String("skill", "Go"), Int("stars", 3), Error(errors.New("boom")))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered at warn level: %s", out)
	}
	for _, want := range []string{"shown", "skill=Go", "stars=3", "error=boom", "component=test", "source=logger_test.go"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestSetLevelString_RejectsUnknown(t *testing.T) {
	if err := SetLevelString("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	for _, lvl := range []string{"debug", "INFO", " warning ", "error", ""} {
		if err := SetLevelString(lvl); err != nil {
			t.Errorf("level %q rejected: %v", lvl, err)
		}
	}
}

func TestNop_Discards(t *testing.T) {
	l := Nop()
	l.Error(context.Background(), "nothing happens")
	l.Named("x").Info(context.Background(), "still nothing")
}
