package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/gradient-background/internal/config"
	"github.com/iburimskiy/gradient-background/internal/game"
	"github.com/iburimskiy/gradient-background/internal/logging"
	"github.com/iburimskiy/gradient-background/internal/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "gradient:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := config.Parse("gradient", args)
	if err != nil {
		return err
	}
	level, err := opts.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logging.SetLogger(logger)

	if opts.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return renderHeadless(ctx, opts)
	}

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(config.WindowTitle + " - Tab: controls, Space: pause, P: snapshot, O: audio, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g, err := game.New(opts)
	if err != nil {
		return err
	}
	defer g.Close()

	logger.Info("starting", "width", opts.Width, "height", opts.Height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func renderHeadless(ctx context.Context, opts config.Options) error {
	p := opts.Params()
	ro := render.Options{Samples: opts.Samples, Workers: opts.Workers}

	if opts.Frames == 1 {
		img, err := render.Frame(ctx, opts.Width, opts.Height, opts.Time, p, ro)
		if err != nil {
			return fmt.Errorf("render frame: %w", err)
		}
		if err := render.SavePNG(opts.Out, img); err != nil {
			return fmt.Errorf("save png: %w", err)
		}
		logging.Logger().Info("frame written", "path", opts.Out, "time", opts.Time)
		return nil
	}

	dir := opts.Out
	if dir == config.DefaultOutPath {
		dir = config.DefaultFramesDir
	}
	seq := render.Sequence{Frames: opts.Frames, FPS: opts.FPS, Start: opts.Time}
	paths, err := render.WriteSequence(ctx, dir, opts.Width, opts.Height, p, ro, seq)
	if err != nil {
		return fmt.Errorf("render sequence: %w", err)
	}
	logging.Logger().Info("sequence written", "dir", dir, "frames", len(paths))
	return nil
}
