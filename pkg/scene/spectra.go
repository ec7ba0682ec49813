package scene

import (
	"github.com/jLantxa/light/pkg/core"
)

// mustSpectrum builds a spectrum from literal sample data known to be valid
func mustSpectrum(wavelengths, powers []float64) *core.Spectrum {
	spectrum, err := core.NewSpectrum(wavelengths, powers)
	if err != nil {
		panic(err)
	}
	return spectrum
}

// flatSpectrum has the same power across the whole visible band
func flatSpectrum(power float64) *core.Spectrum {
	return mustSpectrum(
		[]float64{core.MinVisibleWavelength, core.MaxVisibleWavelength},
		[]float64{power, power},
	)
}

// bandSpectrum holds the inside power between lo and hi and the outside
// power elsewhere, with short linear ramps at the band edges. Wavelengths
// are nanometers; lo and hi must leave room for the ramps inside the
// visible band.
func bandSpectrum(lo, hi, inside, outside float64) *core.Spectrum {
	const ramp = 20.0
	return mustSpectrum(
		[]float64{core.MinVisibleWavelength, lo - ramp, lo, hi, hi + ramp, core.MaxVisibleWavelength},
		[]float64{outside, outside, inside, inside, outside, outside},
	)
}
