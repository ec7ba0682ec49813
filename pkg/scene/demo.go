package scene

import (
	"math"

	"github.com/jLantxa/light/pkg/core"
	"github.com/jLantxa/light/pkg/geometry"
	"github.com/jLantxa/light/pkg/material"
)

// NewDemoScene builds the classic three-sphere arrangement: red, green and
// blue reflectors resting on a gray ground, lit by a small white light and
// an enclosing emissive sky. Zero width or height fall back to 800x600.
func NewDemoScene(width, height int) *Scene {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}

	red := material.NewAbsorptive(bandSpectrum(600, 700, 0.85, 0.04))
	green := material.NewAbsorptive(bandSpectrum(500, 570, 0.85, 0.04))
	blue := material.NewAbsorptive(bandSpectrum(430, 490, 0.85, 0.04))
	gray := material.NewAbsorptive(flatSpectrum(0.5))

	// Emitters absorb fully so paths terminate on them
	light := material.NewMaterial(flatSpectrum(8.0), flatSpectrum(0.0))
	sky := material.NewMaterial(flatSpectrum(0.5), flatSpectrum(0.0))

	s := NewScene()
	s.Add(geometry.NewSphere(core.NewVec3(-30, 10, 50), 10), red)
	s.Add(geometry.NewSphere(core.NewVec3(0, 10, 50), 10), green)
	s.Add(geometry.NewSphere(core.NewVec3(30, 10, 50), 10), blue)
	s.Add(geometry.NewSphere(core.NewVec3(0, -100000, 0), 100000), gray) // Ground
	s.Add(geometry.NewSphere(core.NewVec3(0, 100, 0), 1), light)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 10000), sky)

	s.CameraConfig = geometry.CameraConfig{
		Position: core.NewVec3(0, 10, 0),
		Facing:   core.NewVec3(0, -10, 50),
		Width:    width,
		Height:   height,
		FOV:      geometry.HorizontalFOV(90 * math.Pi / 180),
		Focus:    geometry.PinHole{},
	}
	s.Sampling = SamplingConfig{
		SamplesPerPixel: 16,
		MaxDepth:        5,
	}

	return s
}
