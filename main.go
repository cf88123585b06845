package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sky-compositor/pkg/compositor"
	"github.com/df07/go-sky-compositor/pkg/config"
	"github.com/df07/go-sky-compositor/pkg/core"
	"github.com/df07/go-sky-compositor/pkg/loaders"
	"github.com/df07/go-sky-compositor/pkg/scene"
	"github.com/df07/go-sky-compositor/pkg/sky"
	"github.com/df07/go-sky-compositor/pkg/texture"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type cliOptions struct {
	sceneName  string
	configPath string
	outputDir  string
	width      int
	height     int
	tileSize   int
	workers    int
	timeOfDay  float64
	linearIn   bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "go-sky-compositor [input.png ...]",
		Short: "Fill uncovered pixels of rendered scene buffers with a synthesized sky",
		Long: `go-sky-compositor applies a screen-space sky composite to rendered
scene buffers. Pixels fully covered by geometry (alpha == 1) pass through
unchanged; uncovered and edge pixels are blended over a sky color.

With input files, each PNG is composited in parallel. Without inputs, a
built-in scene buffer is generated (see --scene).`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&opts.sceneName, "scene", "discs", fmt.Sprintf("Built-in scene buffer: %v", scene.Names()))
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to YAML config file")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "output", "Output directory")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Output width (overrides config)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "Output height (overrides config)")
	cmd.Flags().IntVar(&opts.tileSize, "tile-size", 0, "Tile edge length (overrides config)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Parallel workers (0 = CPU count)")
	cmd.Flags().Float64Var(&opts.timeOfDay, "time-of-day", -1, "Time of day in [0,1] (overrides config)")
	cmd.Flags().BoolVar(&opts.linearIn, "linear-input", false, "Treat input PNG RGB as already linear")

	return cmd
}

// loadConfig merges the config file with flag overrides
func loadConfig(opts *cliOptions) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if opts.width > 0 {
		cfg.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Height = opts.height
	}
	if opts.tileSize > 0 {
		cfg.TileSize = opts.tileSize
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if opts.timeOfDay >= 0 {
		cfg.Sky.TimeOfDay = opts.timeOfDay
	}

	return cfg, cfg.Validate()
}

func run(ctx context.Context, opts *cliOptions, inputs []string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	logger := core.NewDefaultLogger()

	// No inputs: composite a built-in scene buffer
	if len(inputs) == 0 {
		tex, err := scene.Create(opts.sceneName, cfg.Width, cfg.Height)
		if err != nil {
			return err
		}

		timestamp := time.Now().Format("20060102_150405")
		outPath := filepath.Join(opts.outputDir, fmt.Sprintf("composite_%s_%s.png", opts.sceneName, timestamp))
		return compositeOne(ctx, tex, outPath, cfg, logger)
	}

	// Composite each input file in parallel
	g, ctx := errgroup.WithContext(ctx)
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			tex, err := loaders.LoadTexture(input, loaders.Options{DisplayEncoded: !opts.linearIn})
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			return compositeOne(ctx, tex, outputName(opts.outputDir, input), cfg, logger)
		})
	}
	return g.Wait()
}

// outputName derives the output path for an input file:
// output/<base>_sky.png
func outputName(outputDir, input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outputDir, base+"_sky.png")
}

// compositeOne runs a fullscreen pass over one scene buffer and saves the
// result as PNG
func compositeOne(ctx context.Context, tex *texture.Texture, outPath string, cfg config.Config, logger core.Logger) error {
	shader := sky.NewShader(tex)
	shader.Settings = cfg.Sky.Settings()

	passConfig := compositor.Config{TileSize: cfg.TileSize, NumWorkers: cfg.Workers}
	pass := compositor.NewPass(shader, tex.Width, tex.Height, passConfig, logger)

	startTime := time.Now()
	img, stats, err := pass.Run(ctx)
	if err != nil {
		return err
	}

	coverage := compositor.AnalyzeCoverage(tex)
	logger.Printf("Composite completed in %v (%d covered, %d blended, %d sky of %d pixels)\n",
		time.Since(startTime), coverage.CoveredPixels, coverage.BlendedPixels,
		coverage.SkyPixels, stats.TotalPixels)

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}

	logger.Printf("Composite saved as %s\n", outPath)
	return nil
}
