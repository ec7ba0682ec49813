package renderer

import (
	"context"
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/jLantxa/light/pkg/core"
	"github.com/jLantxa/light/pkg/geometry"
	"github.com/jLantxa/light/pkg/material"
	"github.com/jLantxa/light/pkg/scene"
)

const tolerance = 1e-9

// discardLogger mutes progress output in tests
type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}

// monoEmitterScene encloses the camera in an emitter that terminates every
// path at the first hit, sampled on a single-wavelength grid. Every sample
// then contributes exactly the emitted power, which makes rendered pixel
// values deterministic
func monoEmitterScene(t *testing.T, width, height, samplesPerPixel int, emittedPower float64) *scene.Scene {
	t.Helper()

	wavelengths := []float64{550.0}
	emission, err := core.NewSpectrum(wavelengths, []float64{emittedPower})
	if err != nil {
		t.Fatalf("Failed to create emission spectrum: %v", err)
	}
	absorption, err := core.NewSpectrum(wavelengths, []float64{0.0})
	if err != nil {
		t.Fatalf("Failed to create absorption spectrum: %v", err)
	}

	s := scene.NewScene()
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 100.0), material.NewMaterial(emission, absorption))
	s.CameraConfig = geometry.CameraConfig{
		Position: core.NewVec3(0, 0, 0),
		Facing:   core.NewVec3(0, 0, 1),
		Width:    width,
		Height:   height,
		FOV:      geometry.HorizontalFOV(math.Pi / 2),
	}
	s.Sampling = scene.SamplingConfig{
		SamplesPerPixel: samplesPerPixel,
		MaxDepth:        5,
		Wavelengths:     wavelengths,
	}
	return s
}

func TestNewRenderer(t *testing.T) {
	s := monoEmitterScene(t, 8, 6, 4, 1.0)

	r, err := NewRenderer(s)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	width, height := r.Resolution()
	if width != 8 || height != 6 {
		t.Errorf("Expected resolution 8x6, got %dx%d", width, height)
	}
	if len(r.Wavelengths()) != 1 {
		t.Errorf("Expected the scene's single-wavelength grid, got %d wavelengths", len(r.Wavelengths()))
	}
	if r.SamplesPerPixel() != 4 {
		t.Errorf("Expected 4 samples per pixel, got %d", r.SamplesPerPixel())
	}
}

func TestNewRenderer_DefaultWavelengths(t *testing.T) {
	s := monoEmitterScene(t, 8, 6, 4, 1.0)
	s.Sampling.Wavelengths = nil

	r, err := NewRenderer(s)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	wavelengths := r.Wavelengths()
	if len(wavelengths) != 19 {
		t.Fatalf("Expected the 19-sample default grid, got %d wavelengths", len(wavelengths))
	}
	if wavelengths[0] != 380.0 || wavelengths[len(wavelengths)-1] != 740.0 {
		t.Errorf("Expected the default grid to span 380-740, got %v-%v",
			wavelengths[0], wavelengths[len(wavelengths)-1])
	}
}

func TestNewRenderer_InvalidCamera(t *testing.T) {
	s := scene.NewScene() // zero camera config has no resolution

	if _, err := NewRenderer(s); err == nil {
		t.Error("Expected an error for an invalid camera configuration")
	}
}

func TestNewRenderer_InvalidWavelengths(t *testing.T) {
	s := monoEmitterScene(t, 8, 6, 4, 1.0)
	s.Sampling.Wavelengths = []float64{600.0, 500.0}

	if _, err := NewRenderer(s); err == nil {
		t.Error("Expected an error for a non-increasing wavelength grid")
	}
}

func TestRenderer_RenderBounds(t *testing.T) {
	s := monoEmitterScene(t, 8, 6, 4, 1.0)
	r, err := NewRenderer(s)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	grid := NewPixelGrid(8, 6, 1)
	random := rand.New(rand.NewSource(42))
	bounds := image.Rect(2, 1, 5, 3)

	stats := r.RenderBounds(context.Background(), bounds, grid, random, 2)

	if stats.TotalPixels != 6 {
		t.Errorf("Expected 6 pixels in bounds, got %d", stats.TotalPixels)
	}
	if stats.TotalSamples != 12 {
		t.Errorf("Expected 12 samples, got %d", stats.TotalSamples)
	}
	if stats.AverageSamples != 2.0 {
		t.Errorf("Expected 2.0 average samples, got %v", stats.AverageSamples)
	}

	for j := 0; j < 6; j++ {
		for i := 0; i < 8; i++ {
			expected := 0
			if image.Pt(i, j).In(bounds) {
				expected = 2
			}
			if got := grid[j][i].SampleCount; got != expected {
				t.Errorf("Expected %d samples at (%d,%d), got %d", expected, i, j, got)
			}
		}
	}
}

func TestRenderer_RenderBoundsResumes(t *testing.T) {
	s := monoEmitterScene(t, 8, 6, 5, 1.0)
	r, err := NewRenderer(s)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	grid := NewPixelGrid(8, 6, 1)
	random := rand.New(rand.NewSource(42))
	bounds := image.Rect(0, 0, 2, 2)

	r.RenderBounds(context.Background(), bounds, grid, random, 2)
	stats := r.RenderBounds(context.Background(), bounds, grid, random, 5)

	// Only the difference to the new target is sampled
	if stats.TotalSamples != 12 {
		t.Errorf("Expected 12 additional samples, got %d", stats.TotalSamples)
	}
	if got := grid[1][1].SampleCount; got != 5 {
		t.Errorf("Expected 5 cumulative samples, got %d", got)
	}
}

func TestRenderer_RenderBoundsCancelled(t *testing.T) {
	s := monoEmitterScene(t, 8, 6, 4, 1.0)
	r, err := NewRenderer(s)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	grid := NewPixelGrid(8, 6, 1)
	stats := r.RenderBounds(ctx, image.Rect(0, 0, 8, 6), grid, rand.New(rand.NewSource(42)), 4)

	if stats.TotalSamples != 0 {
		t.Errorf("Expected no samples after cancellation, got %d", stats.TotalSamples)
	}
}

func TestRender_EmitterFillsImage(t *testing.T) {
	s := monoEmitterScene(t, 8, 6, 4, 1.0)

	img, stats, err := Render(s, 2, discardLogger{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 8 || bounds.Dy() != 6 {
		t.Fatalf("Expected an 8x6 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	if stats.TotalPixels != 48 {
		t.Errorf("Expected 48 pixels, got %d", stats.TotalPixels)
	}
	if stats.TotalSamples != 192 {
		t.Errorf("Expected 192 samples, got %d", stats.TotalSamples)
	}
	if stats.AverageSamples != 4.0 {
		t.Errorf("Expected 4.0 average samples, got %v", stats.AverageSamples)
	}

	// Unit emission everywhere displays as pure white
	want := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for j := 0; j < 6; j++ {
		for i := 0; i < 8; i++ {
			if got := img.RGBAAt(i, j); got != want {
				t.Fatalf("Expected %v at (%d,%d), got %v", want, i, j, got)
			}
		}
	}
}

func TestRender_BackgroundOnMiss(t *testing.T) {
	wavelengths := []float64{550.0}
	background, err := core.NewSpectrum(wavelengths, []float64{0.25})
	if err != nil {
		t.Fatalf("Failed to create background spectrum: %v", err)
	}

	s := scene.NewScene().SetBackground(background)
	s.CameraConfig = geometry.CameraConfig{
		Position: core.NewVec3(0, 0, 0),
		Facing:   core.NewVec3(0, 0, 1),
		Width:    4,
		Height:   4,
		FOV:      geometry.HorizontalFOV(math.Pi / 2),
	}
	s.Sampling = scene.SamplingConfig{
		SamplesPerPixel: 2,
		MaxDepth:        3,
		Wavelengths:     wavelengths,
	}

	img, _, err := Render(s, 1, discardLogger{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Power 0.25 gamma corrects to 0.5, which quantizes to 127
	want := color.RGBA{R: 127, G: 127, B: 127, A: 255}
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			if got := img.RGBAAt(i, j); got != want {
				t.Fatalf("Expected %v at (%d,%d), got %v", want, i, j, got)
			}
		}
	}
}

func TestToRGBA(t *testing.T) {
	tests := []struct {
		name string
		rgb  core.Vec3
		want color.RGBA
	}{
		{"black", core.NewVec3(0, 0, 0), color.RGBA{R: 0, G: 0, B: 0, A: 255}},
		{"white", core.NewVec3(1, 1, 1), color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"quarter gray gamma corrects to half", core.NewVec3(0.25, 0.25, 0.25), color.RGBA{R: 127, G: 127, B: 127, A: 255}},
		{"overbright clamps to white", core.NewVec3(4, 4, 4), color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toRGBA(tt.rgb); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
