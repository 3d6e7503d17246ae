package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 11
)

// EntryKind classifies an activity log line.
type EntryKind int

const (
	EntryReconcile EntryKind = iota
	EntryInspect
	EntryRefresh
	EntryError
)

var entryColors = [...]color.RGBA{
	EntryReconcile: {R: 167, G: 139, B: 250, A: 255}, // violet
	EntryInspect:   {R: 16, G: 185, B: 129, A: 255},  // green
	EntryRefresh:   {R: 59, G: 130, B: 246, A: 255},  // blue
	EntryError:     {R: 239, G: 68, B: 68, A: 255},   // red
}

// ActivityEntry is a single line in the activity log.
type ActivityEntry struct {
	Tick    int
	Kind    EntryKind
	Message string
}

// ActivityLog is a ring buffer of dashboard events rendered in the side panel.
type ActivityLog struct {
	entries []ActivityEntry
	head    int
	count   int
}

// NewActivityLog creates a log with a fixed capacity.
func NewActivityLog() *ActivityLog {
	return &ActivityLog{entries: make([]ActivityEntry, logMaxEntries)}
}

// Add appends an entry, evicting the oldest when full.
func (al *ActivityLog) Add(tick int, kind EntryKind, msg string) {
	al.entries[al.head] = ActivityEntry{Tick: tick, Kind: kind, Message: msg}
	al.head = (al.head + 1) % logMaxEntries
	if al.count < logMaxEntries {
		al.count++
	}
}

// Len returns the number of stored entries.
func (al *ActivityLog) Len() int { return al.count }

// Recent returns entries oldest first.
func (al *ActivityLog) Recent() []ActivityEntry {
	out := make([]ActivityEntry, al.count)
	for i := 0; i < al.count; i++ {
		idx := (al.head - al.count + i + logMaxEntries) % logMaxEntries
		out[i] = al.entries[idx]
	}
	return out
}

// Draw renders the log in the side panel, from panelY down to panelH.
func (al *ActivityLog) Draw(screen *ebiten.Image, panelX, panelY, panelH int) {
	px, py := float32(panelX), float32(panelY)
	vector.FillRect(screen, px, py, logPanelWidth, float32(panelH-panelY), color.RGBA{R: 12, G: 10, B: 30, A: 248}, false)
	vector.StrokeLine(screen, px, py, px, float32(panelH), 1.0, color.RGBA{R: 60, G: 50, B: 110, A: 255}, false)

	vector.FillRect(screen, px, py, logPanelWidth, 16, color.RGBA{R: 24, G: 20, B: 52, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "ACTIVITY", panelX+8, panelY+2)
	vector.StrokeLine(screen, px, py+16, px+logPanelWidth, py+16, 1.0, color.RGBA{R: 60, G: 50, B: 110, A: 200}, false)

	entries := al.Recent()
	maxVisible := (panelH - panelY - 24) / logLineHeight
	if maxVisible < 0 {
		maxVisible = 0
	}
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := panelY + 20
	for i, e := range entries {
		// Highlight the newest three.
		if i >= len(entries)-3 {
			vector.FillRect(screen, px+2, float32(y), logPanelWidth-4, logLineHeight, color.RGBA{R: 30, G: 26, B: 64, A: 160}, false)
		}
		vector.FillRect(screen, px+5, float32(y+3), 3, 5, entryColors[e.Kind], false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y)
		y += logLineHeight
	}
}
