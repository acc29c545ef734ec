// Package render evaluates the gradient on the CPU, one full frame at a time.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/iburimskiy/gradient-background/internal/logging"
	"github.com/iburimskiy/gradient-background/internal/shading"
)

// TileSize is the edge of the square blocks handed to workers.
const TileSize = 32

var ErrInvalidSize = errors.New("render: invalid frame size")

// Options tune how a frame is evaluated. The zero value renders one sample per
// pixel on runtime.NumCPU() workers.
type Options struct {
	// Samples per pixel along each axis. Values below 2 disable supersampling.
	Samples int
	// Workers limits the number of tiles evaluated at once.
	Workers int
}

func (o Options) samples() int {
	if o.Samples < 2 {
		return 1
	}
	return o.Samples
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return max(1, runtime.NumCPU())
}

// Frame shades every pixel of a width×height viewport at time t.
func Frame(ctx context.Context, width, height int, t float64, p shading.Params, opts Options) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	start := time.Now()
	s := opts.samples()
	res := shading.Resolution{Width: float64(width), Height: float64(height)}

	img := image.NewRGBA(image.Rect(0, 0, width*s, height*s))
	if err := Into(ctx, img, res, float64(s), t, p, opts.workers()); err != nil {
		return nil, err
	}
	if s > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = dst
	}

	logging.Logger().Debug("frame rendered",
		"width", width, "height", height, "time", t, "samples", s, "elapsed", time.Since(start))
	return img, nil
}

type tile struct {
	x0, y0, x1, y1 int
}

// Into shades img in place. Pixel (x, y) of img is evaluated at
// ((x+0.5)/scale, (y+0.5)/scale) of a viewport of size res, so an image
// scale times larger than res supersamples it. Tiles are independent and run
// on at most workers goroutines.
func Into(ctx context.Context, img *image.RGBA, res shading.Resolution, scale, t float64, p shading.Params, workers int) error {
	if scale <= 0 {
		scale = 1
	}
	p = p.Clamped()
	b := img.Bounds()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))

tiles:
	for ty := b.Min.Y; ty < b.Max.Y; ty += TileSize {
		for tx := b.Min.X; tx < b.Max.X; tx += TileSize {
			if gctx.Err() != nil {
				break tiles
			}
			tl := tile{x0: tx, y0: ty, x1: min(tx+TileSize, b.Max.X), y1: min(ty+TileSize, b.Max.Y)}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				shadeTile(img, tl, res, scale, t, p)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func shadeTile(img *image.RGBA, tl tile, res shading.Resolution, scale, t float64, p shading.Params) {
	for y := tl.y0; y < tl.y1; y++ {
		fy := (float64(y) + 0.5) / scale
		row := img.PixOffset(tl.x0, y)
		for x := tl.x0; x < tl.x1; x++ {
			c := shading.Shade((float64(x)+0.5)/scale, fy, res, t, p)
			r, g, b := c.RGB255()
			img.Pix[row] = r
			img.Pix[row+1] = g
			img.Pix[row+2] = b
			img.Pix[row+3] = 0xff
			row += 4
		}
	}
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// Sequence describes a run of frames sampled at a fixed rate.
type Sequence struct {
	Frames int
	FPS    float64
	Start  float64
}

// FrameTime returns the elapsed time of frame i.
func (s Sequence) FrameTime(i int) float64 {
	fps := s.FPS
	if fps <= 0 {
		fps = 60
	}
	return s.Start + float64(i)/fps
}

// WriteSequence renders seq into dir as frame_0000.png, frame_0001.png, ...
// and returns the written paths. Frames are rendered one after another, each
// one in parallel.
func WriteSequence(ctx context.Context, dir string, width, height int, p shading.Params, opts Options, seq Sequence) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	var paths []string
	for i := 0; i < max(1, seq.Frames); i++ {
		img, err := Frame(ctx, width, height, seq.FrameTime(i), p, opts)
		if err != nil {
			return paths, fmt.Errorf("frame %d: %w", i, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
		if err := SavePNG(path, img); err != nil {
			return paths, err
		}
		paths = append(paths, path)
		logging.Logger().Info("frame written", "path", path, "time", seq.FrameTime(i))
	}
	return paths, nil
}
