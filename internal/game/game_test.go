package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/Garsondee/skill-constellation/internal/config"
	"github.com/Garsondee/skill-constellation/internal/progress"
	"github.com/Garsondee/skill-constellation/pkg/metrics"
)

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	cfg := config.New()
	cfg.Seed = 99
	return New(cfg, opts...)
}

func TestNew_StaticProgressIsAppliedImmediately(t *testing.T) {
	cfg := config.New()
	cfg.Seed = 1
	cfg.Progress = map[string]float64{"Go": 70, "SQL": 20}
	g := New(cfg)
	if g.Field().Len() != 2 {
		t.Fatalf("expected 2 stars, got %d", g.Field().Len())
	}
	if g.source != progress.SourceStatic {
		t.Fatalf("source = %q, want static", g.source)
	}
}

func TestApplyUpdate_ReconcilesAndLogs(t *testing.T) {
	m := metrics.NewManager()
	g := newTestGame(t, WithMetrics(m))
	g.ApplyUpdate(progress.Update{Progress: map[string]float64{"Go": 70, "SQL": 130}, Source: progress.SourceAPI})

	if g.Field().Len() != 2 {
		t.Fatalf("expected 2 stars, got %d", g.Field().Len())
	}
	if g.stats.Total != 2 {
		t.Fatalf("stats not refreshed: %+v", g.stats)
	}
	if g.stats.Average != 85 || g.stats.Strongest[0].Skill != "SQL" || g.stats.Strongest[0].Progress != 100 {
		t.Fatalf("stats should use clamped progress: %+v", g.stats)
	}
	entries := g.Activity().Recent()
	if len(entries) != 2 || entries[0].Kind != EntryReconcile || entries[1].Kind != EntryError {
		t.Fatalf("expected reconcile then clamp entries, got %+v", entries)
	}
}

func TestApplyUpdate_ErrorWithoutMappingKeepsStars(t *testing.T) {
	g := newTestGame(t)
	g.ApplyUpdate(progress.Update{Progress: map[string]float64{"Go": 70}, Source: progress.SourceAPI})
	g.ApplyUpdate(progress.Update{Source: progress.SourceAPI, Err: errors.New("timeout")})
	if g.Field().Len() != 1 {
		t.Fatal("a failed refresh must not clear the field")
	}
	last := g.Activity().Recent()[g.Activity().Len()-1]
	if last.Kind != EntryError || !strings.Contains(last.Message, "timeout") {
		t.Fatalf("unexpected last entry %+v", last)
	}
}

func TestDrainFeed_AppliesPendingUpdates(t *testing.T) {
	feed := make(chan progress.Update, 1)
	g := newTestGame(t, WithProgressFeed(feed))
	feed <- progress.Update{Progress: map[string]float64{"Go": 40}, Source: progress.SourceAPI}
	g.drainFeed()
	if g.Field().Len() != 1 {
		t.Fatalf("expected 1 star after drain, got %d", g.Field().Len())
	}
	g.drainFeed() // empty channel must not block
}

func TestPointer_ClickOnStarOpensInspector(t *testing.T) {
	g := newTestGame(t)
	g.ApplyUpdate(progress.Update{Progress: map[string]float64{"Go": 72}, Source: progress.SourceAPI})
	s, _ := g.Field().Lookup("Go")

	g.pointer(s.X, s.Y, true, false)
	g.pointer(s.X, s.Y, false, true)

	if !g.inspector.Visible() {
		t.Fatal("inspector should open after press/release on a star")
	}
	skill, pct := g.inspector.Skill()
	if skill != "Go" || pct != 72 {
		t.Fatalf("inspector shows %s %v", skill, pct)
	}
}

func TestPointer_DragDoesNotOpenInspector(t *testing.T) {
	g := newTestGame(t)
	g.ApplyUpdate(progress.Update{Progress: map[string]float64{"Go": 72}, Source: progress.SourceAPI})
	s, _ := g.Field().Lookup("Go")

	g.pointer(s.X, s.Y, true, false)
	g.pointer(s.X+40, s.Y+40, false, false)
	g.pointer(s.X+40, s.Y+40, false, true)

	if g.inspector.Visible() {
		t.Fatal("releasing a drag must not inspect")
	}
	moved, _ := g.Field().Lookup("Go")
	if moved.X != s.X+40 || moved.Y != s.Y+40 {
		t.Fatalf("star not dragged: (%v,%v)", moved.X, moved.Y)
	}
}

func TestPointer_DragReleasedOffCanvasThenClickInspects(t *testing.T) {
	g := newTestGame(t)
	g.ApplyUpdate(progress.Update{Progress: map[string]float64{"Go": 72}, Source: progress.SourceAPI})
	s, _ := g.Field().Lookup("Go")

	g.pointer(s.X, s.Y, true, false)
	g.pointer(-30, -30, false, false)
	g.pointer(-30, -30, false, true)
	if g.inspector.Visible() {
		t.Fatal("releasing a drag off the canvas must not inspect")
	}
	for i := 0; i < 60; i++ {
		g.Field().Step()
	}

	s, _ = g.Field().Lookup("Go")
	g.pointer(s.X, s.Y, true, false)
	g.pointer(s.X, s.Y, false, true)
	if !g.inspector.Visible() {
		t.Fatal("a later click on the star should open the inspector")
	}
}

func TestPointer_PressOutsideCanvasIgnored(t *testing.T) {
	g := newTestGame(t)
	g.pointer(-10, 20, true, false)
	if g.Field().Dragging() {
		t.Fatal("press outside the canvas should not start a drag")
	}
}

func TestToCanvas_SubtractsBorder(t *testing.T) {
	g := newTestGame(t)
	x, y := g.toCanvas(borderWidth+10, borderWidth+20)
	if x != 10 || y != 20 {
		t.Fatalf("toCanvas = (%v,%v), want (10,20)", x, y)
	}
}

func TestCopyInspected(t *testing.T) {
	var copied string
	g := newTestGame(t, WithClipboard(func(s string) error { copied = s; return nil }))
	g.copyInspected()
	if copied != "" {
		t.Fatal("nothing should be copied without an inspected star")
	}
	g.inspect("Go", 72.4)
	g.copyInspected()
	if copied != "Go: 72% proficiency" {
		t.Fatalf("copied %q", copied)
	}
}

func TestCopyInspected_ClipboardFailureIsLogged(t *testing.T) {
	g := newTestGame(t, WithClipboard(func(string) error { return errors.New("no xclip") }))
	g.inspect("Go", 50)
	g.copyInspected()
	last := g.Activity().Recent()[g.Activity().Len()-1]
	if last.Kind != EntryError {
		t.Fatalf("expected error entry, got %+v", last)
	}
}

func TestInspector_FollowsReconcile(t *testing.T) {
	g := newTestGame(t)
	g.ApplyUpdate(progress.Update{Progress: map[string]float64{"Go": 30, "SQL": 60}, Source: progress.SourceAPI})
	g.inspect("Go", 30)

	g.ApplyUpdate(progress.Update{Progress: map[string]float64{"Go": 55, "SQL": 60}, Source: progress.SourceAPI})
	if _, pct := g.inspector.Skill(); pct != 55 {
		t.Fatalf("inspector progress = %v, want 55", pct)
	}
	g.ApplyUpdate(progress.Update{Progress: map[string]float64{"SQL": 60}, Source: progress.SourceAPI})
	if g.inspector.Visible() {
		t.Fatal("inspector should close when its star is removed")
	}
}

func TestRequestRefresh(t *testing.T) {
	calls := 0
	g := newTestGame(t, WithRefresh(func() { calls++ }))
	g.requestRefresh()
	if calls != 1 {
		t.Fatalf("refresh called %d times", calls)
	}
}

func TestActivityLog_RingBufferKeepsNewest(t *testing.T) {
	al := NewActivityLog()
	for i := 0; i < logMaxEntries+5; i++ {
		al.Add(i, EntryRefresh, "x")
	}
	got := al.Recent()
	if len(got) != logMaxEntries {
		t.Fatalf("len = %d, want %d", len(got), logMaxEntries)
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != logMaxEntries+4 {
		t.Fatalf("unexpected window %d..%d", got[0].Tick, got[len(got)-1].Tick)
	}
}

func TestHUDLines(t *testing.T) {
	st := progress.Summarize(map[string]float64{"Go": 90, "SQL": 10})
	lines := hudLines(st, progress.SourceDemo)
	if !strings.Contains(lines[0], "skills: 2") || !strings.Contains(lines[0], "avg: 50%") || !strings.Contains(lines[0], "[demo]") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "strongest: Go 90%") {
		t.Fatalf("unexpected strongest line %q", lines[1])
	}
	if empty := hudLines(progress.Stats{}, ""); len(empty) != 2 || !strings.Contains(empty[0], "waiting") {
		t.Fatalf("unexpected empty HUD %v", empty)
	}
}

func TestGlowAlpha_Stops(t *testing.T) {
	if glowAlpha(0) != 0xff || glowAlpha(0.5) != 0x88 || glowAlpha(1) != 0 {
		t.Fatalf("stops = %x %x %x", glowAlpha(0), glowAlpha(0.5), glowAlpha(1))
	}
	if a := glowAlpha(0.75); a != 0x44 {
		t.Fatalf("alpha at 0.75 = %x, want 44", a)
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(50, 10); got != "█████░░░░░" {
		t.Fatalf("bar = %q", got)
	}
	if got := progressBar(150, 4); got != "████" {
		t.Fatalf("bar = %q", got)
	}
}
