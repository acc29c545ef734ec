package shading

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Range is the recognised interval of a scalar parameter and the increment the
// control panel moves it by.
type Range struct {
	Min, Max, Step float64
}

// Clamp limits v to the range. NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

var (
	RotationStartRange        = Range{0, 360, 0.1}
	RotationAmplitudeRange    = Range{0, 180, 0.1}
	RotationSpeedRange        = Range{0, 2, 0.01}
	OffsetRange               = Range{0, 2, 0.01}
	RoundnessRange            = Range{0, 2, 0.01}
	LeftRoundnessOffsetRange  = Range{0, 6.28, 0.01}
	RightRoundnessOffsetRange = Range{0, 6.2, 0.01}
	GrainRange                = Range{0, 0.3, 0.001}
	MiddleRange               = Range{0.2, 0.8, 0.01}
	EasingRange               = Range{0, 1, 0.01}
)

// Params is the set of values the shading function reads for one frame.
// Angles of the rotation are in degrees, roundness offsets in radians.
type Params struct {
	ColorLeft   colorful.Color
	ColorMiddle colorful.Color
	ColorRight  colorful.Color

	RotationStart     float64
	RotationAmplitude float64
	RotationSpeed     float64

	LeftOffset          float64
	LeftRoundness       float64
	LeftRoundnessOffset float64

	RightOffset          float64
	RightRoundness       float64
	RightRoundnessOffset float64

	GrainR, GrainG, GrainB float64

	Middle float64
	Easing float64
}

// Default colour stops.
const (
	DefaultColorLeft   = "#F0F883"
	DefaultColorMiddle = "#FFFFFF"
	DefaultColorRight  = "#BA70FF"
)

// DefaultParams returns the parameter set the viewer starts with.
func DefaultParams() Params {
	return Params{
		ColorLeft:   MustHex(DefaultColorLeft),
		ColorMiddle: MustHex(DefaultColorMiddle),
		ColorRight:  MustHex(DefaultColorRight),

		RotationStart:     0,
		RotationAmplitude: 20,
		RotationSpeed:     0.5,

		LeftOffset:          1,
		LeftRoundness:       0.3,
		LeftRoundnessOffset: 0,

		RightOffset:          1,
		RightRoundness:       0.3,
		RightRoundnessOffset: 0.7,

		GrainR: 0.1,
		GrainG: 0.1,
		GrainB: 0.1,

		Middle: 0.5,
		Easing: 0.5,
	}
}

// Clamped returns a copy with every field inside its documented range.
func (p Params) Clamped() Params {
	p.ColorLeft = clampColor(p.ColorLeft)
	p.ColorMiddle = clampColor(p.ColorMiddle)
	p.ColorRight = clampColor(p.ColorRight)

	p.RotationStart = RotationStartRange.Clamp(p.RotationStart)
	p.RotationAmplitude = RotationAmplitudeRange.Clamp(p.RotationAmplitude)
	p.RotationSpeed = RotationSpeedRange.Clamp(p.RotationSpeed)

	p.LeftOffset = OffsetRange.Clamp(p.LeftOffset)
	p.LeftRoundness = RoundnessRange.Clamp(p.LeftRoundness)
	p.LeftRoundnessOffset = LeftRoundnessOffsetRange.Clamp(p.LeftRoundnessOffset)

	p.RightOffset = OffsetRange.Clamp(p.RightOffset)
	p.RightRoundness = RoundnessRange.Clamp(p.RightRoundness)
	p.RightRoundnessOffset = RightRoundnessOffsetRange.Clamp(p.RightRoundnessOffset)

	p.GrainR = GrainRange.Clamp(p.GrainR)
	p.GrainG = GrainRange.Clamp(p.GrainG)
	p.GrainB = GrainRange.Clamp(p.GrainB)

	p.Middle = MiddleRange.Clamp(p.Middle)
	p.Easing = EasingRange.Clamp(p.Easing)
	return p
}

// MustHex parses a "#RRGGBB" colour and panics on malformed input.
// Use colorful.Hex for user supplied values.
func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func clampColor(c colorful.Color) colorful.Color {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ScaleGrain returns a copy with every grain amount multiplied by k and
// clamped to its range.
func (p Params) ScaleGrain(k float64) Params {
	p.GrainR = GrainRange.Clamp(p.GrainR * k)
	p.GrainG = GrainRange.Clamp(p.GrainG * k)
	p.GrainB = GrainRange.Clamp(p.GrainB * k)
	return p
}
