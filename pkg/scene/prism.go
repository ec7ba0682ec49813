package scene

import (
	"math"

	"github.com/jLantxa/light/pkg/core"
	"github.com/jLantxa/light/pkg/geometry"
	"github.com/jLantxa/light/pkg/material"
)

// NewPrismScene arranges a pair of blue-transmitting panes in front of an
// emissive back panel above a gray ground, viewed through a thin lens
// focused on the front pane. Zero width or height fall back to 800x600.
func NewPrismScene(width, height int) *Scene {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}

	glass := material.NewAbsorptive(bandSpectrum(430, 530, 0.9, 0.05))
	gray := material.NewAbsorptive(flatSpectrum(0.6))
	panel := material.NewMaterial(flatSpectrum(1.5), flatSpectrum(0.0))

	wedge := geometry.NewComposite(
		geometry.NewTriangle(
			core.NewVec3(-14, 0, 30),
			core.NewVec3(-2, 0, 30),
			core.NewVec3(-8, 12, 30),
		),
		geometry.NewTriangle(
			core.NewVec3(2, 0, 36),
			core.NewVec3(14, 0, 36),
			core.NewVec3(8, 12, 36),
		),
	)

	s := NewScene()
	s.Add(wedge, glass)
	s.Add(geometry.NewPlane(core.NewVec3(0, 0, 60), core.NewVec3(0, 0, -1)), panel)
	s.Add(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), gray)
	s.SetBackground(bandSpectrum(400, 480, 0.35, 0.1))

	s.CameraConfig = geometry.CameraConfig{
		Position: core.NewVec3(0, 6, -10),
		Facing:   core.NewVec3(0, 0, 1),
		Width:    width,
		Height:   height,
		FOV:      geometry.VerticalFOV(50 * math.Pi / 180),
		Focus: geometry.FocalPlane{
			FocalDistance: 40,
			Aperture:      0.8,
		},
	}
	s.Sampling = SamplingConfig{
		SamplesPerPixel: 32,
		HalfLife:        4,
	}

	return s
}
