package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jLantxa/light/pkg/core"
	"github.com/jLantxa/light/pkg/loaders"
	"github.com/jLantxa/light/pkg/renderer"
	"github.com/jLantxa/light/pkg/scene"
)

func main() {
	sceneFlag := flag.String("scene", "demo", "Scene: a built-in name or a path to a .json scene document")
	width := flag.Int("width", 0, "Image width in pixels (0 uses the scene's resolution)")
	height := flag.Int("height", 0, "Image height in pixels (0 uses the scene's resolution)")
	spp := flag.Int("spp", 0, "Samples per pixel (0 uses the scene's setting)")
	depth := flag.Int("depth", 0, "Fixed bounce cutoff; switches extinction to the fixed policy")
	halfLife := flag.Float64("half-life", 0, "Stochastic extinction half-life in bounces; overrides -depth")
	passes := flag.Int("passes", 1, "Progressive passes to spread the samples over")
	workers := flag.Int("workers", 0, "Worker goroutines (0 uses one per CPU)")
	outputDir := flag.String("output", "output", "Directory for rendered images")
	dumpSpectrum := flag.String("dump-spectrum", "", "Print one pixel's accumulated spectrum, as column,row")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("light - spectral path tracer")
		fmt.Println("Usage: light [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.ListBuiltinScenes() {
			fmt.Printf("  %s - %s\n", info.ID, info.Description)
		}
		fmt.Println("  <path>.json - scene document loaded from disk")
		fmt.Println()
		fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.png")
		return
	}

	dumpX, dumpY, dumpPixel, err := parseDumpFlag(*dumpSpectrum)
	if err != nil {
		fmt.Printf("Error parsing -dump-spectrum: %v\n", err)
		os.Exit(1)
	}

	selected, label, err := resolveScene(*sceneFlag, *width, *height)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}

	if *width > 0 {
		selected.CameraConfig.Width = *width
	}
	if *height > 0 {
		selected.CameraConfig.Height = *height
	}
	if *spp > 0 {
		selected.Sampling.SamplesPerPixel = *spp
	}
	if *depth > 0 {
		selected.Sampling.MaxDepth = *depth
		selected.Sampling.HalfLife = 0
	}
	if *halfLife > 0 {
		selected.Sampling.HalfLife = *halfLife
	}

	if dumpPixel {
		if dumpX < 0 || dumpX >= selected.CameraConfig.Width ||
			dumpY < 0 || dumpY >= selected.CameraConfig.Height {
			fmt.Printf("Error: pixel (%d, %d) is outside the %dx%d image\n",
				dumpX, dumpY, selected.CameraConfig.Width, selected.CameraConfig.Height)
			os.Exit(1)
		}
	}

	fmt.Printf("Rendering scene %q at %dx%d...\n",
		label, selected.CameraConfig.Width, selected.CameraConfig.Height)

	prog, err := renderer.NewProgressive(selected, renderer.ProgressiveConfig{
		MaxPasses:  *passes,
		NumWorkers: *workers,
	}, core.StdoutLogger{})
	if err != nil {
		fmt.Printf("Error configuring renderer: %v\n", err)
		os.Exit(1)
	}

	startTime := time.Now()
	results, errs := prog.RenderProgressive(context.Background())

	var last renderer.PassResult
	for pass := range results {
		last = pass
	}
	if err := <-errs; err != nil {
		fmt.Printf("Error rendering: %v\n", err)
		os.Exit(1)
	}
	renderTime := time.Since(startTime)

	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Samples per pixel: %.1f (target %d)\n",
		last.Stats.AverageSamples, last.Stats.TargetSamples)

	sceneDir := filepath.Join(*outputDir, label)
	if err := os.MkdirAll(sceneDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(sceneDir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, last.Image); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)

	if dumpPixel {
		fmt.Printf("Spectrum of pixel (%d, %d):\n", dumpX, dumpY)
		stats := prog.Pixel(dumpX, dumpY)
		for k, wavelength := range prog.Wavelengths() {
			fmt.Printf("  %6.1f nm  %g\n", wavelength, stats.Power(k))
		}
	}
}

// resolveScene builds a built-in scene or loads a .json document. The
// returned label names the output subdirectory.
func resolveScene(id string, width, height int) (*scene.Scene, string, error) {
	if strings.HasSuffix(id, ".json") {
		s, err := loaders.LoadScene(id)
		if err != nil {
			return nil, "", err
		}
		label := strings.TrimSuffix(filepath.Base(id), ".json")
		return s, label, nil
	}

	s, err := scene.BuiltinScene(id, width, height)
	if err != nil {
		return nil, "", err
	}
	return s, id, nil
}

// parseDumpFlag parses the column,row argument of -dump-spectrum. An
// empty value disables the dump.
func parseDumpFlag(value string) (x, y int, enabled bool, err error) {
	if value == "" {
		return 0, 0, false, nil
	}
	if _, err := fmt.Sscanf(value, "%d,%d", &x, &y); err != nil {
		return 0, 0, false, fmt.Errorf("expected column,row, got %q", value)
	}
	return x, y, true, nil
}
