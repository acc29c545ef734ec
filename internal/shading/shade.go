// Package shading computes the animated gradient one pixel at a time.
package shading

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Resolution is the viewport size in physical pixels.
type Resolution struct {
	Width, Height float64
}

func (r Resolution) sane() Resolution {
	if !(r.Width >= 1) || math.IsInf(r.Width, 0) {
		r.Width = 1
	}
	if !(r.Height >= 1) || math.IsInf(r.Height, 0) {
		r.Height = 1
	}
	return r
}

// minReach keeps a zero offset from dividing by zero; the stop then collapses
// onto its edge.
const minReach = 1e-4

// RotationAngle returns the angle of the gradient axis in degrees at the given
// time. It oscillates around RotationStart by RotationAmplitude.
func RotationAngle(p Params, time float64) float64 {
	return rotationAngle(p.Clamped(), saneTime(time))
}

func rotationAngle(p Params, time float64) float64 {
	return p.RotationStart + p.RotationAmplitude*math.Sin(time*p.RotationSpeed)
}

// Shade returns the colour of the pixel at (x, y), in pixel units with the
// origin at the top left corner. Pixel centres sit on half coordinates.
// The result is always inside [0,1] per channel; out of range parameters are
// clamped before use.
func Shade(x, y float64, res Resolution, time float64, p Params) colorful.Color {
	p = p.Clamped()
	res = res.sane()
	time = saneTime(time)

	c := blend(x, y, res, time, p)
	c.R += p.GrainR * grain(x, y, time, 0)
	c.G += p.GrainG * grain(x, y, time, 1)
	c.B += p.GrainB * grain(x, y, time, 2)
	return clampColor(c)
}

// ShadeBlend is Shade without grain.
func ShadeBlend(x, y float64, res Resolution, time float64, p Params) colorful.Color {
	p = p.Clamped()
	return clampColor(blend(x, y, res.sane(), saneTime(time), p))
}

// Axis returns the position t in [0,1] of the pixel along the rotated gradient
// axis and its signed distance across it, in viewport widths.
func Axis(x, y float64, res Resolution, time float64, p Params) (t, across float64) {
	return axis(x, y, res.sane(), saneTime(time), p.Clamped())
}

func axis(x, y float64, res Resolution, time float64, p Params) (t, across float64) {
	angle := rotationAngle(p, time) * math.Pi / 180
	// Both axes are divided by the width so the rotation keeps its shape on
	// non-square viewports and t spans the width when the angle is zero.
	u := (x - res.Width/2) / res.Width
	v := (y - res.Height/2) / res.Width
	sin, cos := math.Sincos(angle)
	along := cos*u + sin*v
	across = -sin*u + cos*v
	return clamp01(along + 0.5), across
}

func blend(x, y float64, res Resolution, time float64, p Params) colorful.Color {
	t, across := axis(x, y, res, time, p)
	wl := stopWeight(t, across, p.Middle*p.LeftOffset, p.LeftRoundness, p.LeftRoundnessOffset, p.Easing)
	wr := stopWeight(1-t, across, (1-p.Middle)*p.RightOffset, p.RightRoundness, p.RightRoundnessOffset, p.Easing)
	c := p.ColorMiddle.BlendRgb(p.ColorLeft, wl)
	return c.BlendRgb(p.ColorRight, wr)
}

// stopWeight is 1 at a colour stop (d = 0) and reaches 0 at the stop's reach.
// Roundness bends the front across the axis; the bend vanishes at both ends of
// the axis so the stop colour is always exact at its edge. phase shifts where
// along the front the bulge sits.
func stopWeight(d, across, reach, roundness, phase, easing float64) float64 {
	bend := roundness * math.Sin(across*math.Pi+phase) * d * (1 - d)
	x := clamp01((d + bend) / math.Max(reach, minReach))
	return 1 - ease(x, easing)
}

// ease mixes a linear ramp with smoothstep by k.
func ease(x, k float64) float64 {
	return mix(x, smoothstep(x), k)
}

func smoothstep(x float64) float64 {
	x = clamp01(x)
	return x * x * (3 - 2*x)
}

func mix(a, b, k float64) float64 {
	return a + (b-a)*k
}

// grain returns noise in [-1,1) for a pixel, a time and a colour channel.
// It is a pure function of its inputs.
func grain(x, y, time float64, channel int) float64 {
	seed := math.Mod(time, grainPeriod) * grainTimeScale
	ch := float64(channel) * grainChannelShift
	return 2*hash(x+ch+seed, y-ch+seed) - 1
}

const (
	grainPeriod       = 64
	grainTimeScale    = 61.7
	grainChannelShift = 37.0
)

func hash(x, y float64) float64 {
	return fract(math.Sin(x*12.9898+y*78.233) * 43758.5453)
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}

func saneTime(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	return t
}
