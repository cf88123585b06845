package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/df07/go-sky-compositor/pkg/compositor"
	"github.com/df07/go-sky-compositor/pkg/config"
	"github.com/df07/go-sky-compositor/pkg/scene"
	"github.com/df07/go-sky-compositor/pkg/sky"
	"github.com/hajimehoshi/ebiten/v2"
)

// Desktop viewer: recomposites a scene buffer every frame while sweeping
// the time-of-day setting through a full day cycle, and displays the
// output. The blend ignores time of day for now, so the image is static;
// the sweep exercises the settings upload path a host application uses.

const ticksPerSecond = 60

// quietLogger silences per-frame pass logging
type quietLogger struct{}

func (quietLogger) Printf(format string, args ...interface{}) {}

type viewerGame struct {
	shader     *sky.Shader
	pass       *compositor.Pass
	frame      *ebiten.Image
	img        *image.RGBA
	tick       uint64
	daySeconds float64
}

func (g *viewerGame) Update() error {
	// Day cycles shorter than one tick collapse to a single-tick cycle
	// instead of a modulo by zero
	cycleTicks := uint64(g.daySeconds * ticksPerSecond)
	if cycleTicks == 0 {
		cycleTicks = 1
	}
	g.shader.Settings.TimeOfDay = float64(g.tick%cycleTicks) / float64(cycleTicks)
	g.tick++

	img, _, err := g.pass.Run(context.Background())
	if err != nil {
		return err
	}
	g.img = img
	return nil
}

func (g *viewerGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		return
	}
	if g.frame == nil {
		g.frame = ebiten.NewImage(g.img.Bounds().Dx(), g.img.Bounds().Dy())
	}
	g.frame.WritePixels(g.img.Pix)
	screen.DrawImage(g.frame, nil)
}

func (g *viewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.shader.Texture.Width, g.shader.Texture.Height
}

func main() {
	sceneName := flag.String("scene", "discs", fmt.Sprintf("Built-in scene buffer: %v", scene.Names()))
	configPath := flag.String("config", "", "Path to YAML config file")
	daySeconds := flag.Float64("day-seconds", 10, "Wall-clock seconds per day cycle")
	flag.Parse()

	if *daySeconds <= 0 {
		fmt.Fprintf(os.Stderr, "day-seconds must be positive, got %v\n", *daySeconds)
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	tex, err := scene.Create(*sceneName, cfg.Width, cfg.Height)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	shader := sky.NewShader(tex)
	shader.Settings = cfg.Sky.Settings()

	passConfig := compositor.Config{TileSize: cfg.TileSize, NumWorkers: cfg.Workers}
	game := &viewerGame{
		shader:     shader,
		pass:       compositor.NewPass(shader, tex.Width, tex.Height, passConfig, quietLogger{}),
		daySeconds: *daySeconds,
	}

	ebiten.SetWindowTitle("Sky Compositor")
	ebiten.SetWindowSize(tex.Width*2, tex.Height*2)
	ebiten.SetTPS(ticksPerSecond)
	if err := ebiten.RunGame(game); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
