package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/gradient-background/internal/config"
	"github.com/iburimskiy/gradient-background/internal/controls"
	"github.com/iburimskiy/gradient-background/internal/shading"
)

const (
	valueTextWidth = 64
	// Width in pixels of a DebugPrint glyph.
	glyphWidth = 6
)

var (
	panelBackground = color.RGBA{R: 18, G: 18, B: 22, A: 210}
	panelBorder     = color.RGBA{R: 70, G: 70, B: 85, A: 255}
	rowHighlight    = color.RGBA{R: 50, G: 60, B: 90, A: 255}
	trackColor      = color.RGBA{R: 45, G: 45, B: 55, A: 255}
	fillColor       = color.RGBA{R: 47, G: 160, B: 240, A: 255}
	folderColor     = color.RGBA{R: 30, G: 30, B: 36, A: 255}
)

type folderHeader struct {
	name string
	rect image.Rectangle
}

// panel is the on-screen control panel: one row per controls.Control,
// grouped under folder headers.
type panel struct {
	rows    []controls.Control
	rects   []image.Rectangle
	tracks  []image.Rectangle
	headers []folderHeader
	bounds  image.Rectangle

	selected int
	dragging int
	visible  bool
}

func newPanel() *panel {
	pn := &panel{
		rows:     controls.All(),
		dragging: -1,
		visible:  true,
	}
	pn.layout()
	return pn
}

func (pn *panel) layout() {
	x := config.PanelX
	y := config.PanelY + config.PanelPadding
	w := config.PanelWidth
	h := config.PanelRowHeight

	pn.rects = make([]image.Rectangle, len(pn.rows))
	pn.tracks = make([]image.Rectangle, len(pn.rows))
	pn.headers = pn.headers[:0]
	for i, c := range pn.rows {
		if i == 0 || pn.rows[i-1].Folder != c.Folder {
			pn.headers = append(pn.headers, folderHeader{name: c.Folder, rect: image.Rect(x, y, x+w, y+h)})
			y += h
		}
		pn.rects[i] = image.Rect(x, y, x+w, y+h)
		tx := x + w - config.PanelPadding - config.SliderWidth
		pn.tracks[i] = image.Rect(tx, y+4, tx+config.SliderWidth, y+h-4)
		y += h
	}
	pn.bounds = image.Rect(x, config.PanelY, x+w, y+config.PanelPadding)
}

func (pn *panel) contains(x, y int) bool {
	return pn.visible && inRect(x, y, pn.bounds)
}

func (pn *panel) toggle() {
	pn.visible = !pn.visible
	pn.dragging = -1
}

// repeating reports a key press on the first frame and then at a steady rate
// while held.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 20 && d%3 == 0)
}

// panelInput is one tick of the input the panel reacts to.
type panelInput struct {
	shift                 bool
	up, down, left, right bool
	enter                 bool
	clicked, held         bool
	mouseX, mouseY        int
	wheel                 float64
}

func readPanelInput() panelInput {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	return panelInput{
		shift:   ebiten.IsKeyPressed(ebiten.KeyShift),
		up:      repeating(ebiten.KeyUp),
		down:    repeating(ebiten.KeyDown),
		left:    repeating(ebiten.KeyLeft),
		right:   repeating(ebiten.KeyRight),
		enter:   inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		clicked: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		held:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		mouseX:  mx,
		mouseY:  my,
		wheel:   wy,
	}
}

// update applies in to p. It returns the index of a colour row the user
// asked to edit, or -1. Mouse input outside the panel is ignored unless a
// slider drag is in progress.
func (pn *panel) update(p *shading.Params, in panelInput) int {
	if !pn.visible {
		return -1
	}

	steps := 1
	if in.shift {
		steps = 10
	}
	if in.down {
		pn.selected = (pn.selected + 1) % len(pn.rows)
	}
	if in.up {
		pn.selected = (pn.selected + len(pn.rows) - 1) % len(pn.rows)
	}
	if in.right {
		pn.rows[pn.selected].Nudge(p, steps)
	}
	if in.left {
		pn.rows[pn.selected].Nudge(p, -steps)
	}
	if in.enter && pn.rows[pn.selected].Kind == controls.Color {
		return pn.selected
	}

	mx, my := in.mouseX, in.mouseY
	if pn.dragging >= 0 {
		if in.held {
			tr := pn.tracks[pn.dragging]
			f := float64(mx-tr.Min.X) / float64(tr.Dx())
			pn.rows[pn.dragging].SetFraction(p, clamp01(f))
		} else {
			pn.dragging = -1
		}
	}
	if !pn.contains(mx, my) {
		return -1
	}

	if in.clicked {
		for i, r := range pn.rects {
			if !inRect(mx, my, r) {
				continue
			}
			pn.selected = i
			if pn.rows[i].Kind == controls.Color {
				return i
			}
			if inRect(mx, my, pn.tracks[i]) {
				pn.dragging = i
				f := float64(mx-pn.tracks[i].Min.X) / float64(pn.tracks[i].Dx())
				pn.rows[i].SetFraction(p, clamp01(f))
			}
		}
	}

	if in.wheel != 0 {
		for i, r := range pn.rects {
			if !inRect(mx, my, r) {
				continue
			}
			if in.wheel > 0 {
				pn.rows[i].Nudge(p, steps)
			} else {
				pn.rows[i].Nudge(p, -steps)
			}
		}
	}
	return -1
}

func fillRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}

func strokeRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, clr, false)
}

func (pn *panel) draw(screen *ebiten.Image, p *shading.Params) {
	if !pn.visible {
		ebitenutil.DebugPrintAt(screen, "Tab: show controls", config.PanelX, config.PanelY)
		return
	}

	fillRect(screen, pn.bounds, panelBackground)
	strokeRect(screen, pn.bounds, panelBorder)

	for _, h := range pn.headers {
		fillRect(screen, h.rect, folderColor)
		ebitenutil.DebugPrintAt(screen, h.name, h.rect.Min.X+config.PanelPadding, h.rect.Min.Y+1)
	}

	for i, c := range pn.rows {
		r := pn.rects[i]
		tr := pn.tracks[i]
		if i == pn.selected {
			fillRect(screen, r, rowHighlight)
		}
		ebitenutil.DebugPrintAt(screen, c.Label, r.Min.X+3*config.PanelPadding, r.Min.Y+1)

		value := c.Format(p)
		vx := tr.Min.X - config.PanelPadding - len(value)*glyphWidth
		ebitenutil.DebugPrintAt(screen, value, max(vx, tr.Min.X-valueTextWidth), r.Min.Y+1)

		switch c.Kind {
		case controls.Slider:
			fillRect(screen, tr, trackColor)
			filled := tr
			filled.Max.X = tr.Min.X + int(float64(tr.Dx())*clamp01(c.Fraction(p)))
			fillRect(screen, filled, fillColor)
		case controls.Color:
			fillRect(screen, tr, toRGBA(c.ColorValue(p)))
			strokeRect(screen, tr, panelBorder)
		}
	}
}
