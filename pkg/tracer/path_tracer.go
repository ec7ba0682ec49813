package tracer

import (
	"math/rand"

	"github.com/jLantxa/light/pkg/core"
	"github.com/jLantxa/light/pkg/scene"
)

// Rendering defaults
const (
	DefaultSamplesPerPixel = 16
	DefaultMaxDepth        = 5
	DefaultHalfLife        = 4.0
)

// DefaultWavelengths returns the standard sampling grid: 380 nm to 740 nm
// in 20 nm steps
func DefaultWavelengths() []float64 {
	wavelengths := make([]float64, 0, 19)
	for w := 380.0; w <= 740.0; w += 20.0 {
		wavelengths = append(wavelengths, w)
	}
	return wavelengths
}

// PathTracer estimates spectral radiance with a recursive Monte Carlo
// random walk. Each path carries a single wavelength.
type PathTracer struct {
	SamplesPerPixel int
	extinction      Extinction
}

// NewPathTracer creates a path tracer with the given sampling rate and
// extinction policy. Non-positive sample counts and a nil policy fall
// back to the defaults.
func NewPathTracer(samplesPerPixel int, extinction Extinction) *PathTracer {
	if samplesPerPixel <= 0 {
		samplesPerPixel = DefaultSamplesPerPixel
	}
	if extinction == nil {
		extinction = Fix{MaxDepth: DefaultMaxDepth}
	}
	return &PathTracer{
		SamplesPerPixel: samplesPerPixel,
		extinction:      extinction,
	}
}

// FromSamplingConfig builds a path tracer from a scene's sampling
// configuration. A positive half-life selects stochastic extinction,
// otherwise the fixed depth cutoff applies.
func FromSamplingConfig(config scene.SamplingConfig) *PathTracer {
	var extinction Extinction
	if config.HalfLife > 0 {
		extinction = NewHalfLife(config.HalfLife)
	} else {
		maxDepth := config.MaxDepth
		if maxDepth <= 0 {
			maxDepth = DefaultMaxDepth
		}
		extinction = Fix{MaxDepth: maxDepth}
	}
	return NewPathTracer(config.SamplesPerPixel, extinction)
}

// PropagateRay returns the spectral power gathered along the ray at its
// wavelength. Each hit contributes its emission plus the transmitted
// fraction of the power gathered by a cosine-weighted bounce off the hit
// normal; extinguished paths contribute nothing.
func (pt *PathTracer) PropagateRay(s *scene.Scene, ray core.Ray, depth int, random *rand.Rand) float64 {
	if pt.extinction.Terminate(depth, random) {
		return 0.0
	}

	hit, object, ok := s.NearestHit(ray)
	if !ok {
		return s.BackgroundAt(ray.Wavelength)
	}

	emitted := object.Material.EmissionAt(ray.Wavelength)
	transmitted := object.Material.TransmittanceAt(ray.Wavelength)
	if transmitted <= 0 {
		return emitted
	}

	bounce := core.RandomCosineDirection(hit.Normal, random)
	next := core.NewRay(hit.Point, bounce, ray.Wavelength)

	return emitted + transmitted*pt.PropagateRay(s, next, depth+1, random)
}
