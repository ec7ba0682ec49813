package scene

import (
	"math"

	"github.com/jLantxa/light/pkg/core"
	"github.com/jLantxa/light/pkg/geometry"
	"github.com/jLantxa/light/pkg/material"
)

// Object pairs a shape with the material it responds with
type Object struct {
	Shape    geometry.Shape
	Material *material.Material
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int       // Rays cast per pixel
	MaxDepth        int       // Bounce cutoff for the fixed extinction policy
	HalfLife        float64   // Stochastic extinction half-life, used instead of MaxDepth when > 0
	Wavelengths     []float64 // Sampled wavelength grid, nil for the default
}

// Scene owns the objects to render plus an optional background emission
// spectrum returned when a ray escapes. Scenes are built up front and are
// read-only while a render is in flight.
type Scene struct {
	Objects      []*Object
	Background   *core.Spectrum
	CameraConfig geometry.CameraConfig
	Sampling     SamplingConfig
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{Objects: make([]*Object, 0)}
}

// Add appends an object to the scene
func (s *Scene) Add(shape geometry.Shape, mat *material.Material) *Scene {
	s.Objects = append(s.Objects, &Object{Shape: shape, Material: mat})
	return s
}

// SetBackground sets the emission spectrum seen by escaping rays
func (s *Scene) SetBackground(background *core.Spectrum) *Scene {
	s.Background = background
	return s
}

// BackgroundAt returns the background emission at the given wavelength,
// 0 when no background is set or the wavelength is out of its domain
func (s *Scene) BackgroundAt(wavelength float64) float64 {
	if s.Background == nil {
		return 0.0
	}
	power, ok := s.Background.InterpolateAt(wavelength)
	if !ok {
		return 0.0
	}
	return power
}

// NearestHit intersects the ray with every object and returns the hit with
// the smallest non-negative t, together with the object that owns it
func (s *Scene) NearestHit(ray core.Ray) (geometry.HitRecord, *Object, bool) {
	closest := geometry.HitRecord{T: math.Inf(1)}
	var nearest *Object

	for _, object := range s.Objects {
		hit, ok := geometry.Intersect(object.Shape, ray)
		if !ok {
			continue
		}
		if hit.T < closest.T {
			closest = hit
			nearest = object
		}
	}

	return closest, nearest, nearest != nil
}
