package skyisle

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and game loop created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS is the fixed tick rate. Zero means 60.
	TPS int
	// ShowFPS draws the FPS/TPS counter in the top-right corner.
	ShowFPS bool
	// Debug logs per-frame timings.
	Debug bool
	// Assets and Textures select texture files to load in the background.
	// A nil Textures map uses DefaultTexturePaths.
	Assets   fs.FS
	Textures map[string]string
	// ExitOnScriptDone closes the window once an attached TestRunner
	// finishes.
	ExitOnScriptDone bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene   *Scene
	dt      float64
	showFPS bool
	exit    bool
}

func (g *game) Update() error {
	g.scene.Tick(g.dt)
	if g.exit && g.scene.testRunner != nil && g.scene.testRunner.Done() && len(g.scene.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	g.scene.DrawOverlay(screen, g.showFPS)
}

// Layout resizes the camera aspect and the sky raster to the window.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens a window and drives the scene until it is closed. Live mouse,
// wheel and key input is enabled, and the day/night button is placed at
// DefaultToggleButton unless one was set.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	scene.SetLiveInput(true)
	scene.SetDebugMode(cfg.Debug)
	if scene.toggleRect.Empty() {
		scene.SetToggleButton(DefaultToggleButton)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Assets != nil {
		paths := cfg.Textures
		if paths == nil {
			paths = DefaultTexturePaths
		}
		// Failures are logged by the library; missing textures render
		// their plain material color.
		_ = scene.Textures().LoadAsync(ctx, cfg.Assets, paths)
	}

	g := &game{
		scene:   scene,
		dt:      1 / float64(cfg.TPS),
		showFPS: cfg.ShowFPS,
		exit:    cfg.ExitOnScriptDone,
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
