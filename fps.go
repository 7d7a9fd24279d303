package skyisle

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DefaultToggleButton is the day/night button placement used by Run.
var DefaultToggleButton = image.Rect(20, 20, 150, 44)

// ToggleLabel returns the caption of the day/night button.
func (s *Scene) ToggleLabel() string {
	if s.sky != nil && !s.sky.IsDay() {
		return "Switch to Day"
	}
	return "Switch to Night"
}

// DrawOverlay draws the 2D controls over a rendered frame: the day/night
// button and, when showFPS is set, the current FPS and TPS.
func (s *Scene) DrawOverlay(screen *ebiten.Image, showFPS bool) {
	if r := s.toggleRect; !r.Empty() {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(r.Dx())/3, float64(r.Dy())/3)
		op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
		op.ColorScale.ScaleWithColor(Color{0, 0, 0, 0.5}.RGBA())
		screen.DrawImage(ensureWhiteImage(), &op)
		ebitenutil.DebugPrintAt(screen, s.ToggleLabel(), r.Min.X+8, r.Min.Y+4)
	}
	if showFPS {
		b := screen.Bounds()
		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		ebitenutil.DebugPrintAt(screen, msg, b.Max.X-90, 4)
	}
}
