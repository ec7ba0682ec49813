package core

// Visible band limits for the wavelength to RGB approximation, in
// nanometers
const (
	MinVisibleWavelength = 380.0
	MaxVisibleWavelength = 780.0
)

// WavelengthToRGB approximates the linear RGB response of a monochromatic
// light at the given wavelength in nanometers. Wavelengths outside the
// visible band map to black. The mapping is the usual piecewise-linear
// visible-spectrum approximation with intensity falloff toward both ends
func WavelengthToRGB(wavelength float64) Vec3 {
	if wavelength < MinVisibleWavelength || wavelength > MaxVisibleWavelength {
		return Vec3{}
	}

	var r, g, b float64
	switch {
	case wavelength < 440:
		r = -(wavelength - 440) / (440 - 380)
		b = 1
	case wavelength < 490:
		g = (wavelength - 440) / (490 - 440)
		b = 1
	case wavelength < 510:
		g = 1
		b = -(wavelength - 510) / (510 - 490)
	case wavelength < 580:
		r = (wavelength - 510) / (580 - 510)
		g = 1
	case wavelength < 645:
		r = 1
		g = -(wavelength - 645) / (645 - 580)
	default:
		r = 1
	}

	// Attenuate toward the edges of the visible band
	factor := 1.0
	switch {
	case wavelength < 420:
		factor = 0.3 + 0.7*(wavelength-380)/(420-380)
	case wavelength > 700:
		factor = 0.3 + 0.7*(780-wavelength)/(780-700)
	}

	return Vec3{X: r * factor, Y: g * factor, Z: b * factor}
}

// SpectrumToRGB converts a radiance spectrum to linear RGB. Each channel
// is the response-weighted average of the per-wavelength powers, so a
// spectrum that is flat at power p over the grid maps to (p, p, p)
func SpectrumToRGB(s *Spectrum) Vec3 {
	var sum, response Vec3
	for i := 0; i < s.Len(); i++ {
		rgb := WavelengthToRGB(s.Wavelength(i))
		sum = sum.Add(rgb.Multiply(s.Power(i)))
		response = response.Add(rgb)
	}

	var out Vec3
	if response.X > 0 {
		out.X = sum.X / response.X
	}
	if response.Y > 0 {
		out.Y = sum.Y / response.Y
	}
	if response.Z > 0 {
		out.Z = sum.Z / response.Z
	}
	return out
}
