package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/skill-constellation/internal/constellation"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale  = 2
	inspBufW   = logPanelWidth / inspScale
	inspBufH   = 92
	inspPad    = 4
	inspLineH  = 13
	inspBarLen = 20
)

// Inspector shows the skill last clicked in the constellation.
type Inspector struct {
	skill    string
	progress float64
	visible  bool
}

func (in *Inspector) open(skill string, progress float64) {
	in.skill = skill
	in.progress = progress
	in.visible = true
}

func (in *Inspector) close() {
	in.visible = false
}

// Visible reports whether a skill is shown.
func (in *Inspector) Visible() bool { return in.visible }

// Skill returns the shown skill and its progress.
func (in *Inspector) Skill() (string, float64) { return in.skill, in.progress }

// sync follows reconcile: the panel shows current progress and closes when
// its star is gone.
func (in *Inspector) sync(f *constellation.Field) {
	if !in.visible {
		return
	}
	s, ok := f.Lookup(in.skill)
	if !ok {
		in.close()
		return
	}
	in.progress = s.Progress
}

// summary is the clipboard text for the shown skill.
func (in *Inspector) summary() (string, bool) {
	if !in.visible {
		return "", false
	}
	return fmt.Sprintf("%s: %s proficiency", in.skill, constellation.FormatPercent(in.progress)), true
}

// progressBar renders p in [0,100] as a fixed-width text bar.
func progressBar(p float64, width int) string {
	filled := int(p / 100 * float64(width))
	filled = max(0, min(width, filled))
	b := make([]rune, 0, width)
	for i := 0; i < width; i++ {
		if i < filled {
			b = append(b, '█')
		} else {
			b = append(b, '░')
		}
	}
	return string(b)
}

// drawInspector renders the panel at the top of the side panel.
func (g *Game) drawInspector(screen *ebiten.Image, panelX int) {
	if g.inspBuf == nil {
		g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	}
	buf := g.inspBuf
	buf.Clear()

	bw, bh := float32(inspBufW), float32(inspBufH)
	panelBorder := color.RGBA{R: 90, G: 70, B: 160, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 20, G: 16, B: 46, A: 240}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)

	lx, ly := inspPad, inspPad
	if !g.inspector.visible {
		ebitenutil.DebugPrintAt(buf, "click a star", lx, ly)
		ebitenutil.DebugPrintAt(buf, "to inspect it", lx, ly+inspLineH)
	} else {
		in := &g.inspector
		ebitenutil.DebugPrintAt(buf, "[ "+in.skill+" ]", lx, ly)
		ly += inspLineH + 4
		vector.StrokeLine(buf, float32(lx), float32(ly), bw-inspPad, float32(ly), 1.0, panelBorder, false)
		ly += 4

		// Colour swatch next to the bar.
		vector.FillRect(buf, float32(lx), float32(ly+3), 6, 6, constellation.StarColor(in.progress), false)
		ebitenutil.DebugPrintAt(buf, progressBar(in.progress, inspBarLen), lx+10, ly)
		ly += inspLineH
		ebitenutil.DebugPrintAt(buf, constellation.FormatPercent(in.progress)+" proficiency", lx, ly)
		ly += inspLineH + 4
		ebitenutil.DebugPrintAt(buf, "[C] copy  [Esc] close", lx, ly)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(panelX), 0)
	screen.DrawImage(buf, opts)
}
