// Package controls describes the rows of the parameter panel and how each row
// reads and writes the shading parameters. It knows nothing about drawing.
package controls

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/gradient-background/internal/shading"
)

type Kind int

const (
	Slider Kind = iota
	Color
)

// Control is one row of the panel.
type Control struct {
	Folder string
	Label  string
	Kind   Kind
	Range  shading.Range

	scalar func(p *shading.Params) *float64
	color  func(p *shading.Params) *colorful.Color
}

func slider(folder, label string, r shading.Range, field func(p *shading.Params) *float64) Control {
	return Control{Folder: folder, Label: label, Kind: Slider, Range: r, scalar: field}
}

func colorRow(label string, field func(p *shading.Params) *colorful.Color) Control {
	return Control{Folder: "Color", Label: label, Kind: Color, color: field}
}

var all = []Control{
	colorRow("Left", func(p *shading.Params) *colorful.Color { return &p.ColorLeft }),
	colorRow("Middle", func(p *shading.Params) *colorful.Color { return &p.ColorMiddle }),
	colorRow("Right", func(p *shading.Params) *colorful.Color { return &p.ColorRight }),

	slider("Rotation", "Rotation start", shading.RotationStartRange, func(p *shading.Params) *float64 { return &p.RotationStart }),
	slider("Rotation", "Rotation amplitude", shading.RotationAmplitudeRange, func(p *shading.Params) *float64 { return &p.RotationAmplitude }),
	slider("Rotation", "Rotation speed", shading.RotationSpeedRange, func(p *shading.Params) *float64 { return &p.RotationSpeed }),

	slider("Left", "Offset", shading.OffsetRange, func(p *shading.Params) *float64 { return &p.LeftOffset }),
	slider("Left", "Roundness", shading.RoundnessRange, func(p *shading.Params) *float64 { return &p.LeftRoundness }),
	slider("Left", "Roundness offset", shading.LeftRoundnessOffsetRange, func(p *shading.Params) *float64 { return &p.LeftRoundnessOffset }),

	slider("Right", "Offset", shading.OffsetRange, func(p *shading.Params) *float64 { return &p.RightOffset }),
	slider("Right", "Roundness", shading.RoundnessRange, func(p *shading.Params) *float64 { return &p.RightRoundness }),
	slider("Right", "Roundness offset", shading.RightRoundnessOffsetRange, func(p *shading.Params) *float64 { return &p.RightRoundnessOffset }),

	slider("Grain", "Red", shading.GrainRange, func(p *shading.Params) *float64 { return &p.GrainR }),
	slider("Grain", "Green", shading.GrainRange, func(p *shading.Params) *float64 { return &p.GrainG }),
	slider("Grain", "Blue", shading.GrainRange, func(p *shading.Params) *float64 { return &p.GrainB }),

	slider("Other", "Middle", shading.MiddleRange, func(p *shading.Params) *float64 { return &p.Middle }),
	slider("Other", "Easing", shading.EasingRange, func(p *shading.Params) *float64 { return &p.Easing }),
}

// All returns the panel rows in display order. Rows of a folder are adjacent.
func All() []Control {
	out := make([]Control, len(all))
	copy(out, all)
	return out
}

// Folders returns folder names in display order.
func Folders() []string {
	var out []string
	for i, c := range all {
		if i == 0 || all[i-1].Folder != c.Folder {
			out = append(out, c.Folder)
		}
	}
	return out
}

// Value returns the current value of a slider row. Colour rows return 0.
func (c Control) Value(p *shading.Params) float64 {
	if c.Kind != Slider {
		return 0
	}
	return *c.scalar(p)
}

// Set stores v clamped to the row's range and snapped to its step.
func (c Control) Set(p *shading.Params, v float64) {
	if c.Kind != Slider {
		return
	}
	*c.scalar(p) = c.snap(v)
}

// Nudge moves a slider by a whole number of steps.
func (c Control) Nudge(p *shading.Params, steps int) {
	c.Set(p, c.Value(p)+float64(steps)*c.Range.Step)
}

// Fraction returns where the value sits inside the range, in [0,1].
func (c Control) Fraction(p *shading.Params) float64 {
	span := c.Range.Max - c.Range.Min
	if c.Kind != Slider || span <= 0 {
		return 0
	}
	return (c.Value(p) - c.Range.Min) / span
}

// SetFraction sets the value at fraction f of the range, as a slider drag does.
func (c Control) SetFraction(p *shading.Params, f float64) {
	c.Set(p, c.Range.Min+f*(c.Range.Max-c.Range.Min))
}

func (c Control) snap(v float64) float64 {
	v = c.Range.Clamp(v)
	if c.Range.Step > 0 {
		n := math.Round((v - c.Range.Min) / c.Range.Step)
		v = c.Range.Min + n*c.Range.Step
		// Drop the binary residue of the multiplication.
		v = math.Round(v*1e9) / 1e9
	}
	return c.Range.Clamp(v)
}

// ColorValue returns the colour of a colour row.
func (c Control) ColorValue(p *shading.Params) colorful.Color {
	if c.Kind != Color {
		return colorful.Color{}
	}
	return *c.color(p)
}

// SetColor stores a colour, clamped to [0,1] per channel.
func (c Control) SetColor(p *shading.Params, col colorful.Color) {
	if c.Kind != Color {
		return
	}
	*c.color(p) = col.Clamped()
}

// Format renders the row's value for display.
func (c Control) Format(p *shading.Params) string {
	if c.Kind == Color {
		return c.ColorValue(p).Hex()
	}
	return fmt.Sprintf("%.*f", decimals(c.Range.Step), c.Value(p))
}

func decimals(step float64) int {
	if step <= 0 || step >= 1 {
		return 0
	}
	return int(math.Round(-math.Log10(step)))
}
