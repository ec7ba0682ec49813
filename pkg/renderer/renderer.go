package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math/rand"

	"github.com/jLantxa/light/pkg/core"
	"github.com/jLantxa/light/pkg/geometry"
	"github.com/jLantxa/light/pkg/scene"
	"github.com/jLantxa/light/pkg/tracer"
)

// displayGamma is applied to linear RGB right before 8-bit quantization
const displayGamma = 2.0

// Renderer traces spectral samples for a scene through its camera and
// converts accumulated pixel statistics into displayable colors
type Renderer struct {
	scene       *scene.Scene
	camera      *geometry.Camera
	tracer      *tracer.PathTracer
	wavelengths []float64
	width       int
	height      int
}

// NewRenderer builds the camera from the scene's camera configuration and
// a path tracer from its sampling configuration. Scenes that do not name a
// wavelength grid sample the default one
func NewRenderer(s *scene.Scene) (*Renderer, error) {
	camera, err := geometry.NewCamera(s.CameraConfig)
	if err != nil {
		return nil, fmt.Errorf("configuring camera: %w", err)
	}

	wavelengths := s.Sampling.Wavelengths
	if len(wavelengths) == 0 {
		wavelengths = tracer.DefaultWavelengths()
	}
	if _, err := core.NewZeroSpectrum(wavelengths); err != nil {
		return nil, fmt.Errorf("invalid wavelength grid: %w", err)
	}

	width, height := camera.Resolution()
	return &Renderer{
		scene:       s,
		camera:      camera,
		tracer:      tracer.FromSamplingConfig(s.Sampling),
		wavelengths: wavelengths,
		width:       width,
		height:      height,
	}, nil
}

// Resolution returns the image dimensions in pixels
func (r *Renderer) Resolution() (width, height int) {
	return r.width, r.height
}

// Wavelengths returns the sampled wavelength grid
func (r *Renderer) Wavelengths() []float64 {
	return r.wavelengths
}

// SamplesPerPixel returns the scene's target sample count per pixel
func (r *Renderer) SamplesPerPixel() int {
	return r.tracer.SamplesPerPixel
}

// RenderBounds samples every pixel within bounds up to targetSamples
// cumulative samples, accumulating into the shared statistics grid.
// Concurrent calls must not overlap bounds. Cancelling the context stops
// the scan between pixel rows; the returned statistics cover the samples
// actually taken
func (r *Renderer) RenderBounds(ctx context.Context, bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand, targetSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels:   bounds.Dx() * bounds.Dy(),
		TargetSamples: targetSamples,
	}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		select {
		case <-ctx.Done():
			return stats
		default:
		}

		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			stats.TotalSamples += r.samplePixel(i, j, &pixelStats[j][i], random, targetSamples)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}

// samplePixel adds samples to one pixel until it holds targetSamples. Each
// sample picks a wavelength uniformly at random, casts a camera ray tagged
// with it and accumulates the traced power into the matching bucket
func (r *Renderer) samplePixel(i, j int, ps *PixelStats, random *rand.Rand, targetSamples int) int {
	taken := 0
	for ps.SampleCount < targetSamples {
		k := random.Intn(len(r.wavelengths))
		ray, ok := r.camera.CastRay(i, j, r.wavelengths[k], random)
		if !ok {
			break
		}
		ps.AddSample(k, r.tracer.PropagateRay(r.scene, ray, 0, random))
		taken++
	}
	return taken
}

// newDisplaySpectrum allocates a scratch spectrum over the renderer's
// wavelength grid. The grid is validated at construction, so this cannot
// fail
func (r *Renderer) newDisplaySpectrum() *core.Spectrum {
	display, err := core.NewZeroSpectrum(r.wavelengths)
	if err != nil {
		panic(err)
	}
	return display
}

// toRGBA gamma corrects and quantizes a linear color to 8-bit RGBA
func toRGBA(rgb core.Vec3) color.RGBA {
	corrected := rgb.GammaCorrect(displayGamma).Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * corrected.X),
		G: uint8(255 * corrected.Y),
		B: uint8(255 * corrected.Z),
		A: 255,
	}
}

// Render renders the scene to completion in a single pass and returns the
// finished image with its sampling statistics. A non-positive numWorkers
// uses one worker per CPU; a nil logger logs to stdout
func Render(s *scene.Scene, numWorkers int, logger core.Logger) (*image.RGBA, RenderStats, error) {
	prog, err := NewProgressive(s, ProgressiveConfig{MaxPasses: 1, NumWorkers: numWorkers}, logger)
	if err != nil {
		return nil, RenderStats{}, err
	}

	passes, errs := prog.RenderProgressive(context.Background())

	var last PassResult
	for pass := range passes {
		last = pass
	}
	if err := <-errs; err != nil {
		return nil, RenderStats{}, err
	}

	return last.Image, last.Stats, nil
}
