package material

import (
	"github.com/jLantxa/light/pkg/core"
)

// Material describes how a surface responds to light, per wavelength.
// Both spectra are optional: a nil emission means the surface emits
// nothing, and a nil absorption means the surface transmits fully.
type Material struct {
	Emission        *core.Spectrum // Emitted power per wavelength
	Absorption      *core.Spectrum // Transmitted fraction per wavelength, 0 absorbs the path
	Transmittance   float64        // Bulk transmittance in [0,1], reserved for refractive transport
	Roughness       float64        // Surface roughness in [0,1], reserved for glossy transport
	RefractionIndex float64        // Index of refraction, >= 1
}

// NewMaterial creates a material with the given emission and absorption spectra
func NewMaterial(emission, absorption *core.Spectrum) *Material {
	return &Material{
		Emission:        emission,
		Absorption:      absorption,
		Transmittance:   1.0,
		Roughness:       0.0,
		RefractionIndex: 1.0,
	}
}

// NewEmissive creates a material that emits the given spectrum and transmits fully
func NewEmissive(emission *core.Spectrum) *Material {
	return NewMaterial(emission, nil)
}

// NewAbsorptive creates a passive material with the given absorption spectrum
func NewAbsorptive(absorption *core.Spectrum) *Material {
	return NewMaterial(nil, absorption)
}

// EmissionAt returns the power emitted at the given wavelength.
// Materials without an emission spectrum, or sampled outside its
// domain, emit nothing.
func (m *Material) EmissionAt(wavelength float64) float64 {
	if m.Emission == nil {
		return 0.0
	}
	power, ok := m.Emission.InterpolateAt(wavelength)
	if !ok {
		return 0.0
	}
	return power
}

// TransmittanceAt returns the fraction of power transmitted at the given
// wavelength. Materials without an absorption spectrum, or sampled outside
// its domain, transmit fully.
func (m *Material) TransmittanceAt(wavelength float64) float64 {
	if m.Absorption == nil {
		return 1.0
	}
	transmitted, ok := m.Absorption.InterpolateAt(wavelength)
	if !ok {
		return 1.0
	}
	return transmitted
}
