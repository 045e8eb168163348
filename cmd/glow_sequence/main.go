// Package main provides a headless tool that prints the glow command sequence
// built for a scene configuration, and optionally renders it with the CPU backend.
//
// Usage:
//
//	go run ./cmd/glow_sequence [flags]
//
// Flags:
//
//	--config <path>       Scene configuration (default data/glow.yaml)
//	--only <name,...>     Enable only the named objects (default: all objects)
//	--frames <n>          Simulate n frames at 60 TPS before printing (fade objects)
//	--png <path>          Render the scene and its outline into a PNG file
//	--intensity <v>       Override composite intensity (-1 keeps the config value)
//	--verbose             Enable verbose logging
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log"
	"os"
	"strings"

	"github.com/decker502/glow/internal/softrender"
	"github.com/decker502/glow/pkg/components"
	"github.com/decker502/glow/pkg/config"
	"github.com/decker502/glow/pkg/ecs"
	"github.com/decker502/glow/pkg/entities"
	"github.com/decker502/glow/pkg/glow"
)

var (
	configFlag    = flag.String("config", config.DefaultConfigPath, "Scene configuration file")
	onlyFlag      = flag.String("only", "", "Comma separated object names to enable (default all)")
	framesFlag    = flag.Int("frames", 1, "Number of 60 TPS frames to simulate")
	pngFlag       = flag.String("png", "", "Write the rendered frame to this PNG file")
	intensityFlag = flag.Float64("intensity", -1, "Override composite intensity")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "glow_sequence: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer) error {
	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		return err
	}
	cfg.ApplyLayout()

	renderer := softrender.NewRenderer(nil)
	params := cfg.Parameters()
	if *intensityFlag >= 0 {
		params.Intensity = glow.ClampIntensity(*intensityFlag)
	}
	co, err := glow.NewCoordinator(glow.NewCamera("Headless Camera"), renderer, params)
	if err != nil {
		return err
	}
	defer co.Close()
	renderer.SetMaterial(co)

	em := ecs.NewEntityManager()
	enabled := selectedNames(*onlyFlag)
	var glowing []*glow.Entity
	for _, obj := range cfg.Objects {
		id, err := entities.NewGlowObject(em, co, obj, entities.ObjectOptions{FadeRate: cfg.Effect.FadeRate})
		if err != nil {
			return err
		}
		glowComp, _ := ecs.GetComponent[*components.GlowComponent](em, id)
		if enabled != nil && !enabled[obj.Name] {
			continue
		}
		if err := glowComp.Entity.Enable(); err != nil {
			return err
		}
		glowing = append(glowing, glowComp.Entity)
	}

	const dt = 1.0 / 60.0
	for frame := 1; frame <= max(*framesFlag, 1); frame++ {
		for _, e := range glowing {
			e.Tick(dt)
		}
		co.Update(uint64(frame))
	}

	seq := co.Commands()
	st := seq.Stats()
	fmt.Fprintf(out, "# %d glowing, intensity %.2f, %d rebuilds\n", co.Builder().Len(), co.Intensity(), co.Builder().RebuildCount())
	fmt.Fprint(out, seq)
	fmt.Fprintf(out, "# commands=%d alloc=%d release=%d clear=%d colors=%d draws=%d blits=%d (blur=%d composite=%d)\n",
		len(seq), st.Allocations, st.Releases, st.Clears, st.ColorSets, st.Draws, st.Blits, st.BlurBlits, st.CompositeBlits)

	if err := seq.Validate(); err != nil {
		return fmt.Errorf("sequence invalid: %w", err)
	}
	if *pngFlag == "" {
		return nil
	}
	return renderPNG(*pngFlag, cfg, em, renderer, seq)
}

// selectedNames 解析 --only，为空时返回 nil 表示全部
func selectedNames(s string) map[string]bool {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	names := make(map[string]bool)
	for _, n := range strings.Split(s, ",") {
		names[strings.TrimSpace(n)] = true
	}
	return names
}

func renderPNG(path string, cfg *config.GlowConfig, em *ecs.EntityManager, r *softrender.Renderer, seq glow.Sequence) error {
	bg, err := config.ParseColor(cfg.Scene.Background)
	if err != nil {
		return err
	}
	camera := image.NewRGBA(image.Rect(0, 0, config.GameWindowWidth, config.GameWindowHeight))
	draw.Draw(camera, camera.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.ShapeComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		shape, _ := ecs.GetComponent[*components.ShapeComponent](em, id)
		for i, part := range shape.Parts {
			rend := &components.ShapeRenderable{Position: pos, Shape: shape, Index: i}
			softrender.FillPolygon(camera, rend.Polygon(), part.Fill)
		}
	}

	if err := r.Render(seq, camera); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, camera); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
