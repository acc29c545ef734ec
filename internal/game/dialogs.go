package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/gradient-background/internal/config"
	"github.com/iburimskiy/gradient-background/internal/render"
	"github.com/iburimskiy/gradient-background/internal/shading"
)

// Dialogs block, so they run on their own goroutine and hand a dialogResult
// back to Update through Game.results.
type dialogResult struct {
	apply func(g *Game) error
}

func (g *Game) runDialog(fn func() dialogResult) {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	go func() {
		g.results <- fn()
	}()
}

// pickColor asks for a new colour for panel row i.
func (g *Game) pickColor(i int) {
	row := g.panel.rows[i]
	current := toRGBA(row.ColorValue(&g.params))
	g.runDialog(func() dialogResult {
		picked, err := zenity.SelectColor(
			zenity.Title("Color: "+row.Label),
			zenity.Color(current),
		)
		return dialogResult{apply: func(g *Game) error {
			if err != nil {
				return canceledOK(err)
			}
			c, ok := colorful.MakeColor(picked)
			if !ok {
				return nil
			}
			row.SetColor(&g.params, c)
			return nil
		}}
	})
}

// saveSnapshot asks for a file name and writes the frame described by res,
// t and p there, rendered on the CPU.
func (g *Game) saveSnapshot(res shading.Resolution, t float64, p shading.Params) {
	g.runDialog(func() dialogResult {
		path, err := zenity.SelectFileSave(
			zenity.Title("Save snapshot"),
			zenity.Filename(config.DefaultOutPath),
			zenity.ConfirmOverwrite(),
			zenity.FileFilters{{Name: "PNG image", Patterns: []string{"*.png"}}},
		)
		if err != nil {
			return dialogResult{apply: func(*Game) error { return canceledOK(err) }}
		}
		img, err := render.Frame(context.Background(), int(res.Width), int(res.Height), t, p, render.Options{Workers: g.opts.Workers})
		if err == nil {
			err = render.SavePNG(path, img)
		}
		return dialogResult{apply: func(g *Game) error {
			if err != nil {
				return fmt.Errorf("snapshot: %w", err)
			}
			g.status = "saved " + path
			g.log.Info("snapshot written", "path", path, "time", t)
			return nil
		}}
	})
}

// openAudio asks for an audio file and starts playing it.
func (g *Game) openAudio() {
	g.runDialog(func() dialogResult {
		path, err := zenity.SelectFile(
			zenity.Title("Open Audio File"),
			zenity.FileFilters{{
				Name:     "Audio",
				Patterns: []string{"*.wav", "*.mp3", "*.flac"},
			}},
		)
		return dialogResult{apply: func(g *Game) error {
			if err != nil {
				return canceledOK(err)
			}
			return g.loadAudio(path)
		}}
	})
}

func canceledOK(err error) error {
	if errors.Is(err, zenity.ErrCanceled) {
		return nil
	}
	return err
}
