package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/skill-constellation/internal/constellation"
	"github.com/Garsondee/skill-constellation/internal/progress"
)

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

// hudLines builds the statistics and key legend text.
func hudLines(st progress.Stats, src progress.Source) []string {
	lines := []string{
		fmt.Sprintf("skills: %d  avg: %s  [%s]", st.Total, constellation.FormatPercent(st.Average), sourceLabel(src)),
	}
	if len(st.Strongest) > 0 {
		lines = append(lines, "strongest: "+joinScores(st.Strongest))
		lines = append(lines, "weakest:   "+joinScores(st.Weakest))
	}
	lines = append(lines, "drag=move  click=inspect  R=refresh  H=hide")
	return lines
}

func sourceLabel(src progress.Source) string {
	if src == "" {
		return "waiting"
	}
	return string(src)
}

func joinScores(scores []progress.SkillScore) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = fmt.Sprintf("%s %s", s.Skill, constellation.FormatPercent(s.Progress))
	}
	return strings.Join(parts, ", ")
}

// drawHUD renders the legend in the bottom-left of the star field. Text is
// drawn into hudBuf at 1x then composited at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := hudLines(g.stats, g.source)

	const lineH = 12 // debug font line height at 1x
	const charW = 6  // debug font char width at 1x
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)

	if g.hudBuf == nil {
		g.hudBuf = ebiten.NewImage(g.fieldW/hudScale, g.fieldH/hudScale)
	}
	bufH := float32(g.fieldH / hudScale)
	bx := float32(4)
	by := bufH - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 10, G: 8, B: 28, A: 200}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 90, G: 70, B: 160, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	opts.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.hudBuf, opts)
}
