// Command glitter renders scene files to PNG images.
//
// Usage:
//
//	glitter [-workers n] [-out dir] [-v] scene.yaml [scene.toml ...]
//
// Scenes are rendered concurrently, each worker owning one renderer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gogpu/glitter"
	"github.com/gogpu/glitter/internal/parallel"
	"github.com/gogpu/glitter/text"
)

func main() {
	var (
		workers = flag.Int("workers", 0, "number of render workers (0 = GOMAXPROCS)")
		outDir  = flag.String("out", "", "directory for output images (default: next to each scene)")
		verbose = flag.Bool("v", false, "log compositing decisions")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] scene...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	glitter.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, flag.Args(), *outDir, *workers); err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, names []string, outDir string, workers int) error {
	font, err := text.GoRegular()
	if err != nil {
		return err
	}
	glyphs := text.NewGlyphCache(text.DefaultCacheSize)
	base := []glitter.Option{
		glitter.WithGlyphCache(glyphs),
		glitter.WithStrategyObserver(func(s glitter.Strategy) {
			logger.Debug("strategy", "strategy", s)
		}),
	}

	pool := parallel.NewWorkerPool(workers, func(int) *glitter.Renderer {
		return glitter.New(nil, base...)
	})
	defer pool.Close()
	logger.Info("rendering", "scenes", len(names), "workers", pool.Workers())

	jobs := make([]parallel.Job[*glitter.Renderer], 0, len(names))
	for _, name := range names {
		jobs = append(jobs, func(ctx context.Context, r *glitter.Renderer) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return renderScene(logger, r, base, name, outDir, font)
		})
	}
	start := time.Now()
	err = pool.Run(ctx, jobs)
	stats := glyphs.Stats()
	logger.Info("done", "elapsed", time.Since(start), "glyph_hits", stats.Hits, "glyph_misses", stats.Misses)
	return err
}

// renderScene loads one scene and writes its image with the worker's
// renderer r. Scenes that set renderer options get a renderer of their
// own built from base.
func renderScene(logger *slog.Logger, r *glitter.Renderer, base []glitter.Option,
	name, outDir string, font *text.Font,
) error {
	sc, err := LoadScene(name)
	if err != nil {
		return err
	}
	opts, err := sc.Options()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if len(opts) > 0 {
		r = glitter.New(nil, append(opts, base...)...)
	}

	s, err := sc.Render(r, font)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	out := sc.Output
	if outDir != "" {
		out = filepath.Join(outDir, filepath.Base(out))
	}
	if err := s.SavePNG(out); err != nil {
		return err
	}
	logger.Info("wrote", "scene", name, "output", out, "width", sc.Width, "height", sc.Height)
	return nil
}
