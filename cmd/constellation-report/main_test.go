package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Garsondee/skill-constellation/internal/progress"
)

func TestParseProgress(t *testing.T) {
	got, err := parseProgress("Go=70, SQL=30.5,Node.js=12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got["Go"] != 70 || got["SQL"] != 30.5 || got["Node.js"] != 12 {
		t.Fatalf("unexpected mapping %v", got)
	}
}

func TestParseProgress_Rejects(t *testing.T) {
	for _, in := range []string{"", "Go", "=50", "Go=lots"} {
		if _, err := parseProgress(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestRunReport_DemoStaysInBounds(t *testing.T) {
	var buf bytes.Buffer
	err := runReport(&buf, reportOptions{
		progress: progress.DemoProgress(),
		source:   progress.SourceDemo,
		frames:   300,
		seed:     7,
		width:    1000,
		height:   800,
	})
	if err != nil {
		t.Fatalf("runReport: %v\n%s", err, buf.String())
	}
	out := buf.String()
	for _, want := range []string{"source=demo", "stars=8", "bounds: ok", "JavaScript"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRunReport_ReportsClamped(t *testing.T) {
	var buf bytes.Buffer
	err := runReport(&buf, reportOptions{
		progress: map[string]float64{"Go": 140, "SQL": -5},
		source:   progress.SourceStatic,
		seed:     1,
		width:    1000,
		height:   800,
	})
	if err != nil {
		t.Fatalf("runReport: %v", err)
	}
	if !strings.Contains(buf.String(), "clamped=2") {
		t.Fatalf("expected clamped=2:\n%s", buf.String())
	}
}

func TestRunReport_StatisticsUseClampedValues(t *testing.T) {
	var buf bytes.Buffer
	err := runReport(&buf, reportOptions{
		progress: map[string]float64{"Go": 70, "SQL": 150},
		source:   progress.SourceStatic,
		seed:     1,
		width:    1000,
		height:   800,
	})
	if err != nil {
		t.Fatalf("runReport: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"average=85%", "strongest: SQL 100%, Go 70%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "150%") {
		t.Fatalf("raw out-of-range value leaked into the report:\n%s", out)
	}
}

func TestRunReport_RejectsCanvasSmallerThanMargins(t *testing.T) {
	err := runReport(&bytes.Buffer{}, reportOptions{
		progress: map[string]float64{"Go": 50},
		width:    80,
		height:   800,
	})
	if err == nil {
		t.Fatal("expected error for a canvas narrower than both margins")
	}
}

func TestRunReport_RejectsBadCanvas(t *testing.T) {
	if err := runReport(&bytes.Buffer{}, reportOptions{width: 0, height: 10}); err == nil {
		t.Fatal("expected error for zero width")
	}
}
