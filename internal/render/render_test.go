package render

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iburimskiy/gradient-background/internal/shading"
)

func TestFrameMatchesShade(t *testing.T) {
	p := shading.DefaultParams()
	const w, h = 70, 45 // not a multiple of the tile size
	img, err := Frame(context.Background(), w, h, 1.5, p, Options{})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if got := img.Bounds().Size(); got.X != w || got.Y != h {
		t.Fatalf("size = %v, want %dx%d", got, w, h)
	}
	res := shading.Resolution{Width: w, Height: h}
	for _, pt := range [][2]int{{0, 0}, {69, 44}, {35, 22}, {33, 31}, {64, 10}} {
		c := shading.Shade(float64(pt[0])+0.5, float64(pt[1])+0.5, res, 1.5, p)
		r, g, b := c.RGB255()
		want := color.RGBA{R: r, G: g, B: b, A: 0xff}
		if got := img.RGBAAt(pt[0], pt[1]); got != want {
			t.Errorf("pixel %v = %v, want %v", pt, got, want)
		}
	}
}

func TestFrameIndependentOfWorkers(t *testing.T) {
	p := shading.DefaultParams()
	one, err := Frame(context.Background(), 100, 80, 7, p, Options{Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	many, err := Frame(context.Background(), 100, 80, 7, p, Options{Workers: 16})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(one.Pix, many.Pix) {
		t.Error("frames rendered with 1 and 16 workers differ")
	}
}

func TestFrameOpaque(t *testing.T) {
	img, err := Frame(context.Background(), 40, 40, 0, shading.DefaultParams(), Options{Workers: 3})
	if err != nil {
		t.Fatal(err)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			t.Fatalf("pixel %d has alpha %d", i/4, img.Pix[i])
		}
	}
}

func TestFrameSupersampled(t *testing.T) {
	p := shading.DefaultParams()
	p.GrainR, p.GrainG, p.GrainB = 0, 0, 0
	img, err := Frame(context.Background(), 32, 20, 0, p, Options{Samples: 3})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got.X != 32 || got.Y != 20 {
		t.Fatalf("size = %v, want 32x20", got)
	}
	// Without grain the gradient is smooth, so the average stays close to
	// the centre sample.
	res := shading.Resolution{Width: 32, Height: 20}
	c := shading.Shade(16.5, 10.5, res, 0, p)
	r, _, _ := c.RGB255()
	if got := img.RGBAAt(16, 10).R; absDiff(got, r) > 3 {
		t.Errorf("centre red = %d, want about %d", got, r)
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func TestFrameCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Frame(ctx, 256, 256, 0, shading.DefaultParams(), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Frame with canceled context: err = %v, want context.Canceled", err)
	}
}

func TestFrameInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		_, err := Frame(context.Background(), size[0], size[1], 0, shading.DefaultParams(), Options{})
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Frame(%v): err = %v, want ErrInvalidSize", size, err)
		}
	}
}

func TestSequenceFrameTime(t *testing.T) {
	tests := []struct {
		seq  Sequence
		i    int
		want float64
	}{
		{Sequence{FPS: 30}, 0, 0},
		{Sequence{FPS: 30}, 15, 0.5},
		{Sequence{FPS: 10, Start: 2}, 5, 2.5},
		{Sequence{}, 60, 1},
	}
	for _, tt := range tests {
		if got := tt.seq.FrameTime(tt.i); got != tt.want {
			t.Errorf("%+v.FrameTime(%d) = %g, want %g", tt.seq, tt.i, got, tt.want)
		}
	}
}

func TestWriteSequence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteSequence(context.Background(), dir, 24, 16, shading.DefaultParams(), Options{}, Sequence{Frames: 3, FPS: 24})
	if err != nil {
		t.Fatalf("WriteSequence: %v", err)
	}
	want := []string{
		filepath.Join(dir, "frame_0000.png"),
		filepath.Join(dir, "frame_0001.png"),
		filepath.Join(dir, "frame_0002.png"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		if got := img.Bounds().Size(); got.X != 24 || got.Y != 16 {
			t.Errorf("%s size = %v, want 24x16", path, got)
		}
	}
}
