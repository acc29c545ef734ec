package shading

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lucasb-eyer/go-colorful"
)

func TestDefaultParamsAreInRange(t *testing.T) {
	p := DefaultParams()
	if diff := cmp.Diff(p, p.Clamped()); diff != "" {
		t.Errorf("defaults change when clamped (-default +clamped):\n%s", diff)
	}
	if got := p.ColorLeft.Hex(); got != "#f0f883" {
		t.Errorf("ColorLeft = %s, want #f0f883", got)
	}
	if got := p.ColorRight.Hex(); got != "#ba70ff" {
		t.Errorf("ColorRight = %s, want #ba70ff", got)
	}
}

func TestClamped(t *testing.T) {
	in := Params{
		ColorLeft:            colorful.Color{R: -1, G: 2, B: math.NaN()},
		ColorMiddle:          colorful.Color{R: 0.5, G: 0.5, B: 0.5},
		ColorRight:           colorful.Color{R: 1, G: 1, B: 1},
		RotationStart:        400,
		RotationAmplitude:    -3,
		RotationSpeed:        math.NaN(),
		LeftOffset:           5,
		LeftRoundness:        -1,
		LeftRoundnessOffset:  7,
		RightOffset:          0.5,
		RightRoundness:       3,
		RightRoundnessOffset: 6.25,
		GrainR:               1,
		GrainG:               -0.1,
		GrainB:               0.05,
		Middle:               0,
		Easing:               1.5,
	}
	want := Params{
		ColorLeft:            colorful.Color{R: 0, G: 1, B: 0},
		ColorMiddle:          colorful.Color{R: 0.5, G: 0.5, B: 0.5},
		ColorRight:           colorful.Color{R: 1, G: 1, B: 1},
		RotationStart:        360,
		RotationAmplitude:    0,
		RotationSpeed:        0,
		LeftOffset:           2,
		LeftRoundness:        0,
		LeftRoundnessOffset:  6.28,
		RightOffset:          0.5,
		RightRoundness:       2,
		RightRoundnessOffset: 6.2,
		GrainR:               0.3,
		GrainG:               0,
		GrainB:               0.05,
		Middle:               0.2,
		Easing:               1,
	}
	if diff := cmp.Diff(want, in.Clamped()); diff != "" {
		t.Errorf("Clamped() mismatch (-want +got):\n%s", diff)
	}
}

func TestRangeClamp(t *testing.T) {
	r := Range{Min: 0.2, Max: 0.8, Step: 0.01}
	tests := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{0.1, 0.2},
		{0.9, 0.8},
		{math.Inf(1), 0.8},
		{math.Inf(-1), 0.2},
		{math.NaN(), 0.2},
	}
	for _, tt := range tests {
		if got := r.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestUniforms(t *testing.T) {
	p := DefaultParams()
	p.GrainR = 4
	u := Uniforms(p, res800x600, 2)
	want := []string{
		"Resolution", "Time", "ColorLeft", "ColorMiddle", "ColorRight",
		"RotationStart", "RotationAmplitude", "RotationSpeed",
		"LeftOffset", "LeftRoundness", "LeftRoundnessOffset",
		"RightOffset", "RightRoundness", "RightRoundnessOffset",
		"Grain", "Middle", "Easing",
	}
	if len(u) != len(want) {
		t.Errorf("Uniforms has %d entries, want %d", len(u), len(want))
	}
	for _, name := range want {
		if _, ok := u[name]; !ok {
			t.Errorf("Uniforms is missing %q", name)
		}
	}
	if diff := cmp.Diff([]float32{0.3, 0.1, 0.1}, u["Grain"]); diff != "" {
		t.Errorf("Grain uniform not clamped (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float32{800, 600}, u["Resolution"]); diff != "" {
		t.Errorf("Resolution uniform (-want +got):\n%s", diff)
	}
}

func TestScaleGrain(t *testing.T) {
	p := DefaultParams()
	got := p.ScaleGrain(2)
	if got.GrainR != 0.2 || got.GrainG != 0.2 || got.GrainB != 0.2 {
		t.Errorf("ScaleGrain(2) grain = %g/%g/%g, want 0.2 each", got.GrainR, got.GrainG, got.GrainB)
	}
	if got := p.ScaleGrain(10); got.GrainR != GrainRange.Max {
		t.Errorf("ScaleGrain(10) GrainR = %g, want %g", got.GrainR, GrainRange.Max)
	}
	if p.GrainR != 0.1 {
		t.Errorf("ScaleGrain modified the receiver: GrainR = %g", p.GrainR)
	}
}
