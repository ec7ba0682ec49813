package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/jLantxa/light/pkg/core"
	"github.com/jLantxa/light/pkg/scene"
)

// ProgressiveConfig controls pass scheduling for progressive rendering
type ProgressiveConfig struct {
	TileSize           int // Edge length of worker tiles
	InitialSamples     int // Samples per pixel in the first preview pass
	MaxSamplesPerPixel int // Total samples per pixel, 0 for the scene's own target
	MaxPasses          int // Number of passes to spread the samples over
	NumWorkers         int // Parallel workers, 0 for one per CPU
}

// DefaultProgressiveConfig returns the pass schedule used by the web viewer
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:           DefaultTileSize,
		InitialSamples:     1,
		MaxSamplesPerPixel: 0, // Adopt the scene's samples per pixel
		MaxPasses:          7,
		NumWorkers:         0, // One per CPU
	}
}

// PassResult is the snapshot published after each progressive pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// ProgressiveRenderer renders a scene in passes of increasing cumulative
// sample count, publishing a full image snapshot after each pass. Pixel
// values converge toward the same image a single full pass would produce;
// passes only change when they become visible
type ProgressiveRenderer struct {
	renderer   *Renderer
	config     ProgressiveConfig
	tiles      []*Tile
	pixelStats [][]PixelStats
	pool       *WorkerPool
	logger     core.Logger
}

// NewProgressive builds a progressive renderer for the scene. A zero
// MaxSamplesPerPixel adopts the scene's samples-per-pixel target; a nil
// logger logs to stdout
func NewProgressive(s *scene.Scene, config ProgressiveConfig, logger core.Logger) (*ProgressiveRenderer, error) {
	r, err := NewRenderer(s)
	if err != nil {
		return nil, err
	}

	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if config.InitialSamples <= 0 {
		config.InitialSamples = 1
	}
	if config.MaxPasses <= 0 {
		config.MaxPasses = 1
	}
	if config.MaxSamplesPerPixel <= 0 {
		config.MaxSamplesPerPixel = r.SamplesPerPixel()
	}
	if logger == nil {
		logger = core.StdoutLogger{}
	}

	width, height := r.Resolution()
	tiles := NewTileGrid(width, height, config.TileSize)

	return &ProgressiveRenderer{
		renderer:   r,
		config:     config,
		tiles:      tiles,
		pixelStats: NewPixelGrid(width, height, len(r.Wavelengths())),
		pool:       NewWorkerPool(r, config.NumWorkers, len(tiles)),
		logger:     logger,
	}, nil
}

// Wavelengths returns the wavelength grid samples are drawn from
func (pr *ProgressiveRenderer) Wavelengths() []float64 {
	return pr.renderer.Wavelengths()
}

// Pixel returns the accumulated statistics of one pixel, nil when out of
// range. Workers keep writing to it while a render is in flight
func (pr *ProgressiveRenderer) Pixel(i, j int) *PixelStats {
	width, height := pr.renderer.Resolution()
	if i < 0 || i >= width || j < 0 || j >= height {
		return nil
	}
	return &pr.pixelStats[j][i]
}

// getSamplesForPass returns the cumulative per-pixel sample target after
// the given pass. The first pass is a quick preview; the remaining samples
// spread evenly across the remaining passes, with the last pass absorbing
// the rounding remainder
func (pr *ProgressiveRenderer) getSamplesForPass(passNumber int) int {
	if pr.config.MaxPasses == 1 || passNumber >= pr.config.MaxPasses {
		return pr.config.MaxSamplesPerPixel
	}
	if passNumber == 1 {
		return min(pr.config.InitialSamples, pr.config.MaxSamplesPerPixel)
	}

	remainingSamples := pr.config.MaxSamplesPerPixel - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	target := pr.config.InitialSamples + (passNumber-1)*samplesPerPass
	return min(target, pr.config.MaxSamplesPerPixel)
}

// renderPass brings every pixel up to the pass's cumulative sample target
// and assembles a snapshot of the whole image
func (pr *ProgressiveRenderer) renderPass(passNumber int) (*image.RGBA, RenderStats, error) {
	targetSamples := pr.getSamplesForPass(passNumber)

	pr.logger.Printf("Pass %d/%d: target %d samples per pixel (%d workers)\n",
		passNumber, pr.config.MaxPasses, targetSamples, pr.pool.NumWorkers())

	for taskID, tile := range pr.tiles {
		pr.pool.Submit(TileTask{
			Tile:          tile,
			TargetSamples: targetSamples,
			TaskID:        taskID,
			PixelStats:    pr.pixelStats,
		})
	}

	for range pr.tiles {
		if _, ok := pr.pool.Result(); !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed before pass %d finished", passNumber)
		}
	}

	img, stats := pr.snapshot(targetSamples)
	return img, stats, nil
}

// snapshot converts the shared statistics grid into an image and aggregate
// statistics for the current state of the render
func (pr *ProgressiveRenderer) snapshot(targetSamples int) (*image.RGBA, RenderStats) {
	width, height := pr.renderer.Resolution()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	display := pr.renderer.newDisplaySpectrum()

	stats := RenderStats{
		TotalPixels:   width * height,
		TargetSamples: targetSamples,
	}

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			ps := &pr.pixelStats[j][i]
			img.SetRGBA(i, j, toRGBA(ps.Color(display)))
			stats.TotalSamples += ps.SampleCount
		}
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)

	return img, stats
}

// RenderProgressive runs all passes on a background goroutine and streams
// a snapshot after each one. Both channels close when rendering finishes;
// a context cancellation or pass failure arrives on the error channel and
// ends the render. The caller must drain the pass channel. Call it at most
// once per ProgressiveRenderer
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		pr.pool.Start(ctx)
		defer pr.pool.Stop()

		pr.logger.Printf("Starting progressive render: %d passes up to %d samples per pixel\n",
			pr.config.MaxPasses, pr.config.MaxSamplesPerPixel)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			select {
			case <-ctx.Done():
				pr.logger.Printf("Render cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()
			img, stats, err := pr.renderPass(pass)
			if err == nil {
				err = ctx.Err() // a cancelled pass holds partial samples; never publish it
			}
			if err != nil {
				errChan <- err
				return
			}

			pr.logger.Printf("Pass %d completed in %v (%.1f samples/pixel)\n",
				pass, time.Since(startTime).Round(time.Millisecond), stats.AverageSamples)

			result := PassResult{
				PassNumber: pass,
				Image:      img,
				Stats:      stats,
				IsLast:     pass == pr.config.MaxPasses,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return passChan, errChan
}
