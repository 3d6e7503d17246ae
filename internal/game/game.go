package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/skill-constellation/internal/config"
	"github.com/Garsondee/skill-constellation/internal/constellation"
	"github.com/Garsondee/skill-constellation/internal/progress"
	"github.com/Garsondee/skill-constellation/pkg/logger"
	"github.com/Garsondee/skill-constellation/pkg/metrics"
)

// borderWidth is the pixel gap between the window edge and the star field.
const borderWidth = 24

// Option configures a Game.
type Option func(*Game)

// WithProgressFeed sets the channel progress updates arrive on.
func WithProgressFeed(feed <-chan progress.Update) Option {
	return func(g *Game) { g.feed = feed }
}

// WithRefresh sets the function the R key calls.
func WithRefresh(fn func()) Option {
	return func(g *Game) { g.refresh = fn }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithMetrics records frame and reconcile metrics on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(g *Game) { g.metrics = m }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(g *Game) {
		if write != nil {
			g.copyText = write
		}
	}
}

// Game hosts the constellation in an ebiten window: it feeds the field
// progress and pointer input once per tick and paints its scene.
type Game struct {
	width      int
	height     int
	fieldW     int
	fieldH     int
	offX, offY int

	field *constellation.Field
	feed  <-chan progress.Update
	stats progress.Stats

	refresh  func()
	copyText func(string) error
	log      logger.Logger
	metrics  *metrics.Manager
	ctx      context.Context

	activity  *ActivityLog
	inspector Inspector
	showHUD   bool
	source    progress.Source
	tick      int

	// Last canvas-local cursor position, for move detection.
	lastX, lastY float64
	cursorSet    bool
	cursorShape  ebiten.CursorShapeType

	lastStep time.Duration

	// Offscreen star field. Never cleared; the fade fill leaves trails.
	skyBuf *ebiten.Image
	// Offscreen buffers for the side panels, rendered at 1x then scaled.
	inspBuf *ebiten.Image
	hudBuf  *ebiten.Image
}

// New creates the game for cfg. Graphics resources are allocated on first Draw.
func New(cfg *config.Config, opts ...Option) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		fieldW:   cfg.CanvasWidth,
		fieldH:   cfg.CanvasHeight,
		offX:     borderWidth,
		offY:     borderWidth,
		width:    borderWidth + cfg.CanvasWidth + borderWidth + logPanelWidth,
		height:   borderWidth + cfg.CanvasHeight + borderWidth,
		copyText: clipboard.WriteAll,
		log:      logger.Nop(),
		ctx:      context.Background(),
		activity: NewActivityLog(),
		showHUD:  true,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.field = constellation.New(cfg.CanvasWidth, cfg.CanvasHeight,
		constellation.WithRand(rand.New(rand.NewSource(seed))), // #nosec G404 -- cosmetic only
		constellation.WithInspect(g.inspect),
	)
	if cfg.Static() {
		g.ApplyUpdate(progress.Update{Progress: cfg.Progress, Source: progress.SourceStatic, At: time.Now()})
	}
	return g
}

// Field exposes the underlying constellation.
func (g *Game) Field() *constellation.Field { return g.field }

// Activity exposes the activity log.
func (g *Game) Activity() *ActivityLog { return g.activity }

// ApplyUpdate reconciles the field against u, or records a failed refresh.
func (g *Game) ApplyUpdate(u progress.Update) {
	if u.Progress == nil {
		if u.Err != nil {
			g.activity.Add(g.tick, EntryError, fmt.Sprintf("refresh failed: %v", u.Err))
		}
		return
	}
	if u.Source == progress.SourceDemo {
		g.activity.Add(g.tick, EntryError, "api unreachable, showing demo skills")
	}

	res := g.field.Reconcile(u.Progress)
	g.stats = progress.Summarize(g.field.Progress())
	g.source = u.Source
	g.metrics.ObserveReconcile(len(res.Added), len(res.Removed), res.Clamped, g.field.Len())

	g.activity.Add(g.tick, EntryReconcile, fmt.Sprintf("%d skills from %s (+%d -%d)",
		g.field.Len(), u.Source, len(res.Added), len(res.Removed)))
	if res.Clamped > 0 {
		g.log.Warn(g.ctx, "progress out of range, clamped to [0,100]", logger.Int("values", res.Clamped))
		g.activity.Add(g.tick, EntryError, fmt.Sprintf("%d progress values clamped", res.Clamped))
	}
	g.log.Info(g.ctx, "progress applied",
		logger.String("origin", string(u.Source)),
		logger.Int("stars", g.field.Len()),
		logger.Strings("added", res.Added),
		logger.Strings("removed", res.Removed))

	g.inspector.sync(g.field)
}

// inspect is the field's click handler.
func (g *Game) inspect(skill string, pct float64) {
	g.inspector.open(skill, pct)
	g.metrics.ObserveInspect(skill)
	g.activity.Add(g.tick, EntryInspect, fmt.Sprintf("%s %s", skill, constellation.FormatPercent(pct)))
	g.log.Debug(g.ctx, "star inspected", logger.String("skill", skill), logger.Float64("progress", pct))
}

// copyInspected puts the inspected skill on the clipboard.
func (g *Game) copyInspected() {
	text, ok := g.inspector.summary()
	if !ok {
		return
	}
	if err := g.copyText(text); err != nil {
		g.log.Warn(g.ctx, "clipboard write failed", logger.Error(err))
		g.activity.Add(g.tick, EntryError, "clipboard unavailable")
		return
	}
	g.activity.Add(g.tick, EntryInspect, "copied "+text)
}

// requestRefresh asks the progress source for a new mapping.
func (g *Game) requestRefresh() {
	if g.refresh == nil {
		g.activity.Add(g.tick, EntryRefresh, "static progress, nothing to refresh")
		return
	}
	g.refresh()
	g.activity.Add(g.tick, EntryRefresh, "refresh requested")
}

// drainFeed applies every pending update without blocking.
func (g *Game) drainFeed() {
	if g.feed == nil {
		return
	}
	for {
		select {
		case u := <-g.feed:
			g.ApplyUpdate(u)
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.tick++
	g.drainFeed()
	g.handleInput()

	start := time.Now()
	g.field.Step()
	g.lastStep = time.Since(start)

	g.applyCursor()
	return nil
}

// toCanvas converts window coordinates into star field coordinates.
func (g *Game) toCanvas(mx, my int) (float64, float64) {
	return float64(mx - g.offX), float64(my - g.offY)
}

// onCanvas reports whether canvas-local (x, y) is on the star field.
func (g *Game) onCanvas(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(g.fieldW) && y < float64(g.fieldH)
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.requestRefresh()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyInspected()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.inspector.close()
	}

	x, y := g.toCanvas(ebiten.CursorPosition())
	g.pointer(x, y,
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft))
}

// pointer turns one tick of mouse state into field events. A release is
// followed by a click when it lands on the canvas, as a browser would.
func (g *Game) pointer(x, y float64, pressed, released bool) {
	if pressed && g.onCanvas(x, y) {
		g.field.PointerDown(x, y)
	}
	if !g.cursorSet || x != g.lastX || y != g.lastY {
		g.field.PointerMove(x, y)
		g.lastX, g.lastY, g.cursorSet = x, y, true
	}
	if released {
		g.field.PointerUp()
		if g.onCanvas(x, y) {
			g.field.Click(x, y)
		}
	}
}

// applyCursor maps the field affordance onto the OS cursor.
func (g *Game) applyCursor() {
	shape := ebiten.CursorShapeDefault
	switch g.field.Cursor() {
	case constellation.CursorPointer:
		shape = ebiten.CursorShapePointer
	case constellation.CursorGrabbing:
		shape = ebiten.CursorShapeMove
	}
	if shape != g.cursorShape {
		ebiten.SetCursorShape(shape)
		g.cursorShape = shape
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
