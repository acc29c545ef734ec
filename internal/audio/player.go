// Package audio plays a sound file and measures how loud it currently is.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/gradient-background/internal/config"
	"github.com/iburimskiy/gradient-background/internal/logging"
)

var ErrUnsupported = errors.New("unsupported audio file")

// Decode opens path and picks a decoder by extension. The returned streamer
// owns the file.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return streamer, format, nil
}

// Player plays one file at a time through the speaker and keeps a smoothed
// loudness level in [0,1]. Methods are called from the game loop.
type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap

	level    float64
	paused   bool
	initDone bool
	path     string
}

func NewPlayer() *Player {
	return &Player{}
}

// Load stops the current file, if any, and starts path. A paused player
// stays paused.
func (p *Player) Load(path string) error {
	streamer, format, err := Decode(path)
	if err != nil {
		return err
	}

	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, streamer), Paused: p.paused}
	t := NewTap(ctrl, config.VisualRingSize)

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
	default:
		speaker.Clear()
	}
	p.closeStreamer()

	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = t
	p.level = 0
	p.path = path

	speaker.Play(t)
	logging.Logger().Info("audio loaded", "path", path, "sample_rate", int(format.SampleRate))
	return nil
}

// Playing reports whether a file is loaded and not paused.
func (p *Player) Playing() bool {
	return p.ctrl != nil && !p.paused
}

func (p *Player) Path() string { return p.path }

// Paused reports whether playback is held, loaded or not.
func (p *Player) Paused() bool { return p.paused }

// SetPaused holds or resumes playback. It also applies to files loaded later.
func (p *Player) SetPaused(paused bool) {
	if p.ctrl == nil {
		p.paused = paused
		return
	}
	speaker.Lock()
	p.paused = paused
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Update folds the loudness of the most recent samples into the level.
// Call once per tick.
func (p *Player) Update() float64 {
	if p.tap == nil || p.paused {
		p.level *= config.SmoothingFactor
		return p.level
	}
	p.level = smooth(p.level, p.tap.RMS(config.LevelWindow))
	return p.level
}

func (p *Player) Level() float64 { return p.level }

// smooth compresses rms and blends it into prev.
func smooth(prev, rms float64) float64 {
	mag := math.Pow(clamp01(rms), 0.3)
	return clamp01(config.SmoothingFactor*prev + (1-config.SmoothingFactor)*mag)
}

func (p *Player) closeStreamer() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
}

// Close stops playback and releases the file.
func (p *Player) Close() {
	if p.initDone {
		speaker.Clear()
	}
	p.closeStreamer()
	p.ctrl = nil
	p.tap = nil
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
