// Package game runs the interactive viewer: one full-screen shader pass with
// the control panel on top.
package game

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/gradient-background/internal/audio"
	"github.com/iburimskiy/gradient-background/internal/clock"
	"github.com/iburimskiy/gradient-background/internal/config"
	"github.com/iburimskiy/gradient-background/internal/logging"
	"github.com/iburimskiy/gradient-background/internal/shading"
)

// frame is what one Draw call evaluates. It is fixed in Update so the panel
// never changes parameters halfway through a frame.
type frame struct {
	params shading.Params
	time   float64
}

type Game struct {
	opts   config.Options
	log    *slog.Logger
	shader *ebiten.Shader

	params shading.Params
	panel  *panel
	clock  *clock.Clock
	audio  *audio.Player
	frame  frame

	// screen size in physical pixels, as returned by Layout
	width, height int

	results    chan dialogResult
	dialogOpen bool

	status  string
	lastErr error
	hideHUD bool
}

// New compiles the shader and sets up the starting parameters from opts.
func New(opts config.Options) (*Game, error) {
	shader, err := ebiten.NewShader(shading.KageSource)
	if err != nil {
		return nil, fmt.Errorf("compile gradient shader: %w", err)
	}
	g := &Game{
		opts:    opts,
		log:     logging.Logger(),
		shader:  shader,
		params:  opts.Params(),
		panel:   newPanel(),
		clock:   clock.New(),
		audio:   audio.NewPlayer(),
		results: make(chan dialogResult, 1),
	}
	if opts.Audio != "" {
		if err := g.loadAudio(opts.Audio); err != nil {
			return nil, err
		}
	}
	g.frame = g.nextFrame()
	return g, nil
}

func (g *Game) loadAudio(path string) error {
	g.audio.SetPaused(g.clock.Paused())
	if err := g.audio.Load(path); err != nil {
		return fmt.Errorf("load audio: %w", err)
	}
	g.status = "playing " + path
	if g.audio.Paused() {
		g.status = "loaded " + path + " (paused)"
	}
	return nil
}

// togglePause pauses or resumes the clock and the audio together.
func (g *Game) togglePause() {
	g.clock.Toggle()
	g.audio.SetPaused(g.clock.Paused())
}

// Close stops audio playback.
func (g *Game) Close() {
	g.audio.Close()
}

// nextFrame snapshots the parameters for the coming Draw. Audio loudness
// raises the grain without touching the panel values.
func (g *Game) nextFrame() frame {
	p := g.params
	if g.audio.Playing() {
		p = p.ScaleGrain(1 + g.opts.AudioGain*g.audio.Level())
	}
	return frame{params: p.Clamped(), time: g.clock.Elapsed()}
}

func (g *Game) Update() error {
	select {
	case r := <-g.results:
		g.dialogOpen = false
		if err := r.apply(g); err != nil {
			g.lastErr = err
			g.log.Warn("dialog failed", "err", err)
		}
	default:
	}

	g.updatePanel(readPanelInput())

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.panel.toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.hideHUD = !g.hideHUD
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.params = g.opts.Params()
		g.lastErr = nil
		g.status = "reset"
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		res := shading.Resolution{Width: float64(g.width), Height: float64(g.height)}
		g.saveSnapshot(res, g.frame.time, g.frame.params)
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.openAudio()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	}

	g.audio.Update()
	g.frame = g.nextFrame()
	return nil
}

// updatePanel feeds input to the panel. A hidden HUD hides the panel too,
// so it must not react.
func (g *Game) updatePanel(in panelInput) {
	if g.hideHUD {
		return
	}
	if row := g.panel.update(&g.params, in); row >= 0 {
		g.pickColor(row)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	res := shading.Resolution{Width: float64(b.Dx()), Height: float64(b.Dy())}
	screen.DrawRectShader(b.Dx(), b.Dy(), g.shader, &ebiten.DrawRectShaderOptions{
		Uniforms: shading.Uniforms(g.frame.params, res, g.frame.time),
	})

	if g.hideHUD {
		return
	}
	g.panel.draw(screen, &g.params)
	ebitenutil.DebugPrintAt(screen, g.statusLine(), config.PanelX, 6)
}

func (g *Game) statusLine() string {
	elapsed := time.Duration(g.frame.time * float64(time.Second))
	s := fmt.Sprintf("%s  %.0f fps  %dx%d", formatDuration(elapsed), ebiten.ActualFPS(), g.width, g.height)
	if g.clock.Paused() {
		s += "  paused"
	}
	if g.audio.Playing() {
		s += fmt.Sprintf("  level %.2f", g.audio.Level())
	}
	if g.status != "" {
		s += "  | " + g.status
	}
	if g.lastErr != nil {
		s += "  | Error: " + g.lastErr.Error()
	}
	return s
}

// Layout keeps the screen at the window size times the device scale, capped
// by the configured pixel ratio, so the shader resolution is in physical
// pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := math.Min(ebiten.Monitor().DeviceScaleFactor(), g.opts.PixelRatio)
	ratio = math.Max(ratio, 1)
	w := max(1, int(float64(outsideWidth)*ratio))
	h := max(1, int(float64(outsideHeight)*ratio))
	if w != g.width || h != g.height {
		g.log.Info("viewport resized", "width", w, "height", h, "pixel_ratio", ratio)
		g.width, g.height = w, h
	}
	return w, h
}
