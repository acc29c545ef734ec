package shading

import (
	_ "embed"

	"github.com/lucasb-eyer/go-colorful"
)

// KageSource is Shade written as an ebiten Kage fragment shader. It expects
// the uniforms built by Uniforms.
//
//go:embed gradient.kage
var KageSource []byte

// Uniforms maps the clamped parameter set, the resolution and the time onto
// the uniform variables of KageSource.
func Uniforms(p Params, res Resolution, time float64) map[string]any {
	p = p.Clamped()
	res = res.sane()
	return map[string]any{
		"Resolution": []float32{float32(res.Width), float32(res.Height)},
		"Time":       float32(saneTime(time)),

		"ColorLeft":   vec3(p.ColorLeft),
		"ColorMiddle": vec3(p.ColorMiddle),
		"ColorRight":  vec3(p.ColorRight),

		"RotationStart":     float32(p.RotationStart),
		"RotationAmplitude": float32(p.RotationAmplitude),
		"RotationSpeed":     float32(p.RotationSpeed),

		"LeftOffset":          float32(p.LeftOffset),
		"LeftRoundness":       float32(p.LeftRoundness),
		"LeftRoundnessOffset": float32(p.LeftRoundnessOffset),

		"RightOffset":          float32(p.RightOffset),
		"RightRoundness":       float32(p.RightRoundness),
		"RightRoundnessOffset": float32(p.RightRoundnessOffset),

		"Grain": []float32{float32(p.GrainR), float32(p.GrainG), float32(p.GrainB)},

		"Middle": float32(p.Middle),
		"Easing": float32(p.Easing),
	}
}

func vec3(c colorful.Color) []float32 {
	return []float32{float32(c.R), float32(c.G), float32(c.B)}
}
