package renderer

import "github.com/jLantxa/light/pkg/core"

// RenderStats aggregates sampling totals for one rendered image or tile
type RenderStats struct {
	TotalPixels    int     // Number of pixels covered
	TotalSamples   int     // Samples taken across all pixels so far
	AverageSamples float64 // Mean samples per pixel
	TargetSamples  int     // Per-pixel sample count the render aims for
}

// PixelStats accumulates the spectral samples of a single pixel. Each
// bucket holds the raw power sum of the samples whose wavelength landed on
// that index; scaling happens at read time so progressive passes can keep
// adding samples to the same buckets
type PixelStats struct {
	buckets     []float64
	SampleCount int
}

// AddSample accumulates one traced power sample into the bucket for the
// chosen wavelength index
func (ps *PixelStats) AddSample(index int, power float64) {
	ps.buckets[index] += power
	ps.SampleCount++
}

// Power returns the radiance estimate for wavelength index i. A sample
// lands on a given bucket with probability 1/K, so the raw bucket mean is
// low by a factor of K; multiplying by the bucket count undoes that
func (ps *PixelStats) Power(i int) float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	return ps.buckets[i] * float64(len(ps.buckets)) / float64(ps.SampleCount)
}

// Color integrates the pixel's current radiance estimates into linear RGB.
// The display spectrum must span the wavelength grid the pixel accumulates
// on; its powers are overwritten
func (ps *PixelStats) Color(display *core.Spectrum) core.Vec3 {
	for i := 0; i < display.Len(); i++ {
		display.SetPower(i, ps.Power(i))
	}
	return core.SpectrumToRGB(display)
}

// NewPixelGrid allocates a height by width grid of pixel statistics with
// one accumulation bucket per wavelength
func NewPixelGrid(width, height, numWavelengths int) [][]PixelStats {
	grid := make([][]PixelStats, height)
	for j := range grid {
		grid[j] = make([]PixelStats, width)
		for i := range grid[j] {
			grid[j][i].buckets = make([]float64, numWavelengths)
		}
	}
	return grid
}
