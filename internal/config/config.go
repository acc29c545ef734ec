package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/gradient-background/internal/shading"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "Gradient"

	// Cap on the device pixel ratio used for the shader resolution.
	DefaultPixelRatio = 1.0
	MaxPixelRatio     = 2.0

	// Panel geometry
	PanelWidth     = 400
	PanelX         = 12
	PanelY         = 28
	PanelRowHeight = 18
	PanelPadding   = 6
	SliderWidth    = 160

	// Audio-reactive grain
	VisualRingSize   = 8192
	LevelWindow      = 2048
	SmoothingFactor  = 0.6
	DefaultAudioGain = 1.5

	// Headless export
	DefaultFPS       = 60
	DefaultOutPath   = "gradient.png"
	DefaultFramesDir = "frames"
)

var ErrInvalidOption = errors.New("invalid option")

// Options is everything the command line can set.
type Options struct {
	Width, Height int
	PixelRatio    float64

	Headless bool
	Out      string
	Time     float64
	Frames   int
	FPS      float64
	Samples  int
	Workers  int

	ColorLeft, ColorMiddle, ColorRight string
	Grain                              float64

	Audio     string
	AudioGain float64

	LogLevel string
}

// Default returns the options used when no flag is given.
func Default() Options {
	return Options{
		Width:       WindowWidth,
		Height:      WindowHeight,
		PixelRatio:  DefaultPixelRatio,
		Out:         DefaultOutPath,
		Frames:      1,
		FPS:         DefaultFPS,
		Samples:     1,
		ColorLeft:   shading.DefaultColorLeft,
		ColorMiddle: shading.DefaultColorMiddle,
		ColorRight:  shading.DefaultColorRight,
		Grain:       -1,
		AudioGain:   DefaultAudioGain,
		LogLevel:    "info",
	}
}

// Parse reads options from args (without the program name).
func Parse(name string, args []string) (Options, error) {
	o := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.IntVar(&o.Width, "width", o.Width, "window or image width in pixels")
	fs.IntVar(&o.Height, "height", o.Height, "window or image height in pixels")
	fs.Float64Var(&o.PixelRatio, "pixel-ratio", o.PixelRatio, "cap on the device pixel ratio (1 to 2)")
	fs.BoolVar(&o.Headless, "headless", o.Headless, "render PNG files without opening a window")
	fs.StringVar(&o.Out, "out", o.Out, "output PNG file, or directory when -frames > 1")
	fs.Float64Var(&o.Time, "time", o.Time, "elapsed seconds of the first headless frame")
	fs.IntVar(&o.Frames, "frames", o.Frames, "number of headless frames")
	fs.Float64Var(&o.FPS, "fps", o.FPS, "frame rate of a headless sequence")
	fs.IntVar(&o.Samples, "samples", o.Samples, "supersamples per pixel axis for headless frames")
	fs.IntVar(&o.Workers, "workers", o.Workers, "render workers (0 = one per CPU)")
	fs.StringVar(&o.ColorLeft, "color-left", o.ColorLeft, "left colour stop (#RRGGBB)")
	fs.StringVar(&o.ColorMiddle, "color-middle", o.ColorMiddle, "middle colour stop (#RRGGBB)")
	fs.StringVar(&o.ColorRight, "color-right", o.ColorRight, "right colour stop (#RRGGBB)")
	fs.Float64Var(&o.Grain, "grain", o.Grain, "grain amount for all channels (negative keeps the default)")
	fs.StringVar(&o.Audio, "audio", o.Audio, "audio file driving the grain (.wav, .mp3, .flac)")
	fs.Float64Var(&o.AudioGain, "audio-gain", o.AudioGain, "how strongly the audio level scales the grain")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, o.Validate()
}

// Validate reports the first invalid option.
func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidOption, o.Width, o.Height)
	case o.PixelRatio < 1 || o.PixelRatio > MaxPixelRatio:
		return fmt.Errorf("%w: pixel ratio %g not in [1, %g]", ErrInvalidOption, o.PixelRatio, float64(MaxPixelRatio))
	case o.Frames < 1:
		return fmt.Errorf("%w: frames %d", ErrInvalidOption, o.Frames)
	case o.FPS <= 0:
		return fmt.Errorf("%w: fps %g", ErrInvalidOption, o.FPS)
	case o.Samples < 1 || o.Samples > 8:
		return fmt.Errorf("%w: samples %d not in [1, 8]", ErrInvalidOption, o.Samples)
	case o.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidOption, o.Workers)
	case o.AudioGain < 0:
		return fmt.Errorf("%w: audio gain %g", ErrInvalidOption, o.AudioGain)
	}
	for _, c := range []string{o.ColorLeft, o.ColorMiddle, o.ColorRight} {
		if _, err := colorful.Hex(c); err != nil {
			return fmt.Errorf("%w: colour %q: %v", ErrInvalidOption, c, err)
		}
	}
	if _, err := o.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (o Options) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(o.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidOption, o.LogLevel)
	}
	return l, nil
}

// Params builds the starting parameter set from the defaults and the colour
// and grain options. Options must be valid.
func (o Options) Params() shading.Params {
	p := shading.DefaultParams()
	if c, err := colorful.Hex(o.ColorLeft); err == nil {
		p.ColorLeft = c
	}
	if c, err := colorful.Hex(o.ColorMiddle); err == nil {
		p.ColorMiddle = c
	}
	if c, err := colorful.Hex(o.ColorRight); err == nil {
		p.ColorRight = c
	}
	if o.Grain >= 0 {
		p.GrainR, p.GrainG, p.GrainB = o.Grain, o.Grain, o.Grain
	}
	return p.Clamped()
}
