package game

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Garsondee/skill-constellation/internal/constellation"
	"github.com/Garsondee/skill-constellation/pkg/logger"
)

// skyColor is the opaque base the fade fill settles toward.
var skyColor = color.RGBA{R: 15, G: 12, B: 41, A: 255}

// glowSpriteSize is the pixel diameter of the pre-rendered glow.
const glowSpriteSize = 128

var (
	glowSprite *ebiten.Image
	labelFace  *text.GoTextFace
	pctFace    *text.GoTextFace
)

// glowImage builds a white radial gradient with alpha stops 0xff, 0x88, 0x00
// at 0, 0.5 and 1 of the radius. It is tinted per star when drawn.
func glowImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			t := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) / c
			a := glowAlpha(t)
			// image.RGBA is premultiplied; white at alpha a is (a,a,a,a).
			img.SetRGBA(x, y, color.RGBA{R: a, G: a, B: a, A: a})
		}
	}
	return img
}

// glowAlpha interpolates the gradient stops at t in [0,1] of the radius.
func glowAlpha(t float64) uint8 {
	const mid = float64(0x88)
	switch {
	case t <= 0:
		return 0xff
	case t < 0.5:
		return uint8(math.Round(255 + (mid-255)*(t/0.5)))
	case t < 1:
		return uint8(math.Round(mid * (1 - (t-0.5)/0.5)))
	default:
		return 0
	}
}

// ensureAssets lazily creates the graphics the draw path needs.
func (g *Game) ensureAssets() error {
	if g.skyBuf == nil {
		g.skyBuf = ebiten.NewImage(g.fieldW, g.fieldH)
		g.skyBuf.Fill(skyColor)
	}
	if glowSprite == nil {
		glowSprite = ebiten.NewImageFromImage(glowImage(glowSpriteSize))
	}
	if labelFace == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return err
		}
		labelFace = &text.GoTextFace{Source: src, Size: 14}
		pctFace = &text.GoTextFace{Source: src, Size: 12}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.ensureAssets(); err != nil {
		g.log.Error(g.ctx, "load font failed", logger.Error(err))
		return
	}
	screen.Fill(color.RGBA{R: 8, G: 6, B: 20, A: 255})

	// One fade per Draw, not per Step: when ebiten runs several Updates per
	// frame the trails come out shorter.
	sc := g.field.Scene()
	drawScene(g.skyBuf, sc)
	g.metrics.ObserveFrame(g.lastStep, len(sc.Connections))

	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.skyBuf, &blit)

	ox, oy := float32(g.offX), float32(g.offY)
	fw, fh := float32(g.fieldW), float32(g.fieldH)
	vector.StrokeRect(screen, ox-1, oy-1, fw+2, fh+2, 2.0, color.RGBA{R: 70, G: 56, B: 130, A: 255}, false)

	panelX := g.offX + g.fieldW + g.offX
	g.drawInspector(screen, panelX)
	g.activity.Draw(screen, panelX, inspBufH*inspScale, g.height)

	if g.showHUD {
		g.drawHUD(screen)
	}
}

// drawScene paints one frame: fade, links, then stars with labels.
func drawScene(dst *ebiten.Image, sc constellation.Scene) {
	vector.FillRect(dst, 0, 0, float32(sc.Width), float32(sc.Height), sc.Fade, false)

	for _, c := range sc.Connections {
		lc := constellation.LinkColor
		clr := color.NRGBA{R: lc.R, G: lc.G, B: lc.B, A: uint8(math.Round(c.Opacity * 255))}
		vector.StrokeLine(dst, float32(c.X1), float32(c.Y1), float32(c.X2), float32(c.Y2), 1.0, clr, true)
	}

	for _, s := range sc.Stars {
		drawGlow(dst, s)
		vector.FillCircle(dst, float32(s.X), float32(s.Y), float32(s.Radius), s.Color, true)
		drawLabel(dst, s.Label, labelFace, s.X, s.LabelY, constellation.LabelColor)
		drawLabel(dst, s.Percent, pctFace, s.X, s.PercentY, constellation.PercentColor)
	}
}

func drawGlow(dst *ebiten.Image, s constellation.StarSprite) {
	scale := 2 * s.GlowRadius / glowSpriteSize
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-glowSpriteSize/2, -glowSpriteSize/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(s.X, s.Y)
	op.ColorScale.ScaleWithColor(s.Color)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(glowSprite, op)
}

// drawLabel centres str horizontally on x with its baseline at y.
func drawLabel(dst *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, face, op)
}
