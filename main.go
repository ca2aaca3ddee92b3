// Command photontrace renders one of a handful of built-in demo scenes with
// the direct-lighting or the photon-mapped renderer and writes the result as
// a pair of PPM images.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ahartley/photontracer/pkg/camera"
	"github.com/ahartley/photontracer/pkg/config"
	"github.com/ahartley/photontracer/pkg/framebuffer"
)

var (
	app = kingpin.New("photontrace", "offline photon-mapped renderer")

	sceneFlag  = app.Flag("scene", "built-in scene to render").Default("default").Enum("default", "ao", "csg", "caustic")
	configFlag = app.Flag("config", "path to a YAML configuration file").Default("").String()
	outFlag    = app.Flag("out", "output file prefix").Default("render").String()
	seedFlag   = app.Flag("seed", "RNG seed").Default("1").Int64()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			// Load returns the defaults alongside any error.
			log.Printf("photontrace: %v; using defaults", err)
		}
		cfg = loaded
	}

	fb, err := framebuffer.New(cfg.Framebuffer.Width, cfg.Framebuffer.Height, cfg.Framebuffer.MaxWidth, cfg.Framebuffer.MaxHeight)
	if err != nil {
		log.Fatalf("photontrace: %v", err)
	}

	start := time.Now()
	if err := renderScene(*sceneFlag, cfg, *seedFlag, fb); err != nil {
		log.Fatalf("photontrace: %v", err)
	}
	log.Printf("rendered %q in %v", *sceneFlag, time.Since(start))

	if err := writeOutputs(fb, *outFlag); err != nil {
		log.Fatalf("photontrace: %v", err)
	}
}

// renderScene assembles the named scene, drives it through its camera and
// writes the result into fb.
func renderScene(name string, cfg config.Config, seed int64, fb *framebuffer.Framebuffer) error {
	switch name {
	case "default":
		s, cam := newDefaultScene(cfg)
		return cam.Render(context.Background(), s, fb, seed, camera.ProgressLogger("default"))
	case "ao":
		s, cam := newAmbientOcclusionScene(cfg)
		return cam.Render(context.Background(), s, fb, seed, camera.ProgressLogger("ao"))
	case "csg":
		s, cam := newCSGScene(cfg)
		return cam.Render(context.Background(), s, fb, seed, camera.ProgressLogger("csg"))
	case "caustic":
		ps, cam := newCausticGlassScene(cfg, seed)
		return cam.Render(context.Background(), ps, fb, seed, camera.ProgressLogger("caustic"))
	default:
		return fmt.Errorf("unknown scene %q", name)
	}
}

func writeOutputs(fb *framebuffer.Framebuffer, prefix string) error {
	colourFile, err := os.Create(prefix + ".ppm")
	if err != nil {
		return fmt.Errorf("creating %s.ppm: %w", prefix, err)
	}
	defer colourFile.Close()
	if err := fb.WriteColourPPM(colourFile); err != nil {
		return fmt.Errorf("writing %s.ppm: %w", prefix, err)
	}

	depthFile, err := os.Create(prefix + "_depth.ppm")
	if err != nil {
		return fmt.Errorf("creating %s_depth.ppm: %w", prefix, err)
	}
	defer depthFile.Close()
	if err := fb.WriteDepthPPM(depthFile); err != nil {
		return fmt.Errorf("writing %s_depth.ppm: %w", prefix, err)
	}

	fmt.Printf("wrote %s.ppm and %s_depth.ppm\n", prefix, prefix)
	return nil
}
