package game

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// toRGBA converts a [0,1] colour to an opaque color.RGBA.
func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func inRect(x, y int, r image.Rectangle) bool {
	return image.Pt(x, y).In(r)
}

// formatDuration formats a duration as MM:SS.s
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := d.Seconds() - float64(minutes*60)
	return fmt.Sprintf("%02d:%04.1f", minutes, seconds)
}
