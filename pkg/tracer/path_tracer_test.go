package tracer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jLantxa/light/pkg/core"
	"github.com/jLantxa/light/pkg/geometry"
	"github.com/jLantxa/light/pkg/material"
	"github.com/jLantxa/light/pkg/scene"
)

func mustSpectrum(t *testing.T, wavelengths, powers []float64) *core.Spectrum {
	t.Helper()
	spectrum, err := core.NewSpectrum(wavelengths, powers)
	if err != nil {
		t.Fatalf("Expected a valid spectrum, got error: %v", err)
	}
	return spectrum
}

func flatSpectrum(t *testing.T, power float64) *core.Spectrum {
	t.Helper()
	return mustSpectrum(t, []float64{380, 780}, []float64{power, power})
}

// terminalEmitterScene places a half-transmitting triangle in front of the
// ray and encloses everything in an emitting sphere that absorbs fully, so
// every bounce gathers the same known power.
func terminalEmitterScene(t *testing.T, transmittance float64, emission *core.Spectrum) *scene.Scene {
	t.Helper()

	pane := geometry.NewTriangle(
		core.NewVec3(-5, -5, 5),
		core.NewVec3(5, -5, 5),
		core.NewVec3(0, 5, 5),
	)
	surround := geometry.NewSphere(core.NewVec3(0, 0, 0), 10000)

	s := scene.NewScene()
	s.Add(pane, material.NewAbsorptive(flatSpectrum(t, transmittance)))
	s.Add(surround, material.NewMaterial(emission, flatSpectrum(t, 0)))
	return s
}

func TestFix_Terminate(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	extinction := Fix{MaxDepth: 3}

	for depth := 0; depth <= 3; depth++ {
		if extinction.Terminate(depth, random) {
			t.Errorf("Expected depth %d to survive a cutoff of 3", depth)
		}
	}
	for _, depth := range []int{4, 5, 100} {
		if !extinction.Terminate(depth, random) {
			t.Errorf("Expected depth %d to terminate with a cutoff of 3", depth)
		}
	}
}

func TestNewHalfLife_PropagationProbability(t *testing.T) {
	tests := []struct {
		name     string
		lambda   float64
		expected float64
	}{
		{name: "half-life of one", lambda: 1, expected: 0.5},
		{name: "half-life of four", lambda: 4, expected: math.Exp(-math.Ln2 / 4)},
		{name: "zero half-life", lambda: 0, expected: 0},
		{name: "negative half-life", lambda: -2, expected: 0},
	}

	const tolerance = 1e-12
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extinction := NewHalfLife(tt.lambda)
			if math.Abs(extinction.propagationProbability-tt.expected) > tolerance {
				t.Errorf("Expected propagation probability %v, got %v",
					tt.expected, extinction.propagationProbability)
			}
		})
	}
}

func TestHalfLife_TerminationRate(t *testing.T) {
	tests := []struct {
		name     string
		lambda   float64
		expected float64
	}{
		{name: "half-life of one", lambda: 1, expected: 0.5},
		{name: "half-life of four", lambda: 4, expected: 1 - math.Exp(-math.Ln2/4)},
	}

	const samples = 100000
	const tolerance = 0.01
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			random := rand.New(rand.NewSource(42))
			extinction := NewHalfLife(tt.lambda)

			terminated := 0
			for i := 0; i < samples; i++ {
				if extinction.Terminate(1, random) {
					terminated++
				}
			}

			rate := float64(terminated) / float64(samples)
			if math.Abs(rate-tt.expected) > tolerance {
				t.Errorf("Expected termination rate near %v, got %v", tt.expected, rate)
			}
		})
	}
}

func TestPathTracer_EmissiveAbsorptiveReturnsEmission(t *testing.T) {
	const emitted = 2.5

	s := scene.NewScene()
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, 10), 2),
		material.NewMaterial(flatSpectrum(t, emitted), flatSpectrum(t, 0)),
	)

	pt := NewPathTracer(1, Fix{MaxDepth: 5})
	random := rand.New(rand.NewSource(42))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 550)

	const tolerance = 1e-12
	for _, depth := range []int{0, 3, 5} {
		got := pt.PropagateRay(s, ray, depth, random)
		if math.Abs(got-emitted) > tolerance {
			t.Errorf("Expected exactly %v at depth %d, got %v", emitted, depth, got)
		}
	}
}

func TestPathTracer_DepthCutoff(t *testing.T) {
	s := terminalEmitterScene(t, 0.5, flatSpectrum(t, 4))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 550)

	const tolerance = 1e-12

	// One bounce allowed: half of the surrounding emission comes back
	pt := NewPathTracer(1, Fix{MaxDepth: 5})
	random := rand.New(rand.NewSource(42))
	if got := pt.PropagateRay(s, ray, 0, random); math.Abs(got-2.0) > tolerance {
		t.Errorf("Expected 2.0 through the half-transmitting pane, got %v", got)
	}

	// No bounce allowed: the pane emits nothing itself
	pt = NewPathTracer(1, Fix{MaxDepth: 0})
	random = rand.New(rand.NewSource(42))
	if got := pt.PropagateRay(s, ray, 0, random); got != 0 {
		t.Errorf("Expected 0 with the bounce cut off, got %v", got)
	}
}

func TestPathTracer_TerminatedPathContributesNothing(t *testing.T) {
	s := terminalEmitterScene(t, 0.5, flatSpectrum(t, 4))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 550)

	pt := NewPathTracer(1, Fix{MaxDepth: 3})
	random := rand.New(rand.NewSource(42))
	if got := pt.PropagateRay(s, ray, 4, random); got != 0 {
		t.Errorf("Expected 0 past the depth cutoff, got %v", got)
	}
}

func TestPathTracer_MissReturnsBackground(t *testing.T) {
	pt := NewPathTracer(1, Fix{MaxDepth: 5})
	random := rand.New(rand.NewSource(42))

	s := scene.NewScene()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 500)
	if got := pt.PropagateRay(s, ray, 0, random); got != 0 {
		t.Errorf("Expected 0 on a miss without a background, got %v", got)
	}

	s.SetBackground(mustSpectrum(t, []float64{400, 600}, []float64{0, 1}))

	const tolerance = 1e-9
	if got := pt.PropagateRay(s, ray, 0, random); math.Abs(got-0.5) > tolerance {
		t.Errorf("Expected interpolated background 0.5, got %v", got)
	}

	outside := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 700)
	if got := pt.PropagateRay(s, outside, 0, random); got != 0 {
		t.Errorf("Expected 0 outside the background domain, got %v", got)
	}
}

func TestPathTracer_WavelengthSelectivity(t *testing.T) {
	emission := mustSpectrum(t, []float64{400, 600}, []float64{2, 6})
	s := terminalEmitterScene(t, 0.5, emission)

	pt := NewPathTracer(1, Fix{MaxDepth: 5})
	random := rand.New(rand.NewSource(42))

	tests := []struct {
		wavelength float64
		expected   float64
	}{
		{wavelength: 500, expected: 2.0}, // 0.5 * 4
		{wavelength: 440, expected: 1.4}, // 0.5 * 2.8
		{wavelength: 600, expected: 3.0}, // 0.5 * 6
	}

	const tolerance = 1e-9
	for _, tt := range tests {
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), tt.wavelength)
		if got := pt.PropagateRay(s, ray, 0, random); math.Abs(got-tt.expected) > tolerance {
			t.Errorf("Expected %v at %v nm, got %v", tt.expected, tt.wavelength, got)
		}
	}
}

func TestFromSamplingConfig(t *testing.T) {
	pt := FromSamplingConfig(scene.SamplingConfig{SamplesPerPixel: 8, MaxDepth: 3})
	if pt.SamplesPerPixel != 8 {
		t.Errorf("Expected 8 samples per pixel, got %d", pt.SamplesPerPixel)
	}
	if fix, ok := pt.extinction.(Fix); !ok || fix.MaxDepth != 3 {
		t.Errorf("Expected a fixed cutoff at depth 3, got %v", pt.extinction)
	}

	pt = FromSamplingConfig(scene.SamplingConfig{SamplesPerPixel: 8, HalfLife: 2})
	if halfLife, ok := pt.extinction.(HalfLife); !ok || halfLife.Lambda != 2 {
		t.Errorf("Expected a half-life of 2, got %v", pt.extinction)
	}

	pt = FromSamplingConfig(scene.SamplingConfig{})
	if pt.SamplesPerPixel != DefaultSamplesPerPixel {
		t.Errorf("Expected the default sample count, got %d", pt.SamplesPerPixel)
	}
	if fix, ok := pt.extinction.(Fix); !ok || fix.MaxDepth != DefaultMaxDepth {
		t.Errorf("Expected the default depth cutoff, got %v", pt.extinction)
	}
}

func TestDefaultWavelengths(t *testing.T) {
	wavelengths := DefaultWavelengths()

	if len(wavelengths) != 19 {
		t.Fatalf("Expected 19 wavelengths, got %d", len(wavelengths))
	}
	if wavelengths[0] != 380 {
		t.Errorf("Expected the grid to start at 380, got %v", wavelengths[0])
	}
	if wavelengths[len(wavelengths)-1] != 740 {
		t.Errorf("Expected the grid to end at 740, got %v", wavelengths[len(wavelengths)-1])
	}
	for i := 1; i < len(wavelengths); i++ {
		if wavelengths[i]-wavelengths[i-1] != 20 {
			t.Errorf("Expected 20 nm steps, got %v at index %d", wavelengths[i]-wavelengths[i-1], i)
		}
	}
}
