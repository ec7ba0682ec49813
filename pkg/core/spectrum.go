package core

import "fmt"

// Spectrum is a spectral power distribution sampled at discrete
// wavelengths. The wavelength grid is fixed at construction and strictly
// increasing; powers are mutable so the spectrum can serve as an
// accumulation target during rendering
type Spectrum struct {
	wavelengths []float64
	powers      []float64
}

// NewSpectrum creates a spectrum from parallel wavelength/power samples.
// The wavelengths must be non-empty and strictly increasing
func NewSpectrum(wavelengths, powers []float64) (*Spectrum, error) {
	if len(wavelengths) == 0 {
		return nil, fmt.Errorf("spectrum needs at least one sample")
	}
	if len(wavelengths) != len(powers) {
		return nil, fmt.Errorf("spectrum has %d wavelengths but %d powers", len(wavelengths), len(powers))
	}
	for i := 1; i < len(wavelengths); i++ {
		if wavelengths[i] <= wavelengths[i-1] {
			return nil, fmt.Errorf("spectrum wavelengths must be strictly increasing: %g after %g",
				wavelengths[i], wavelengths[i-1])
		}
	}
	return &Spectrum{
		wavelengths: append([]float64(nil), wavelengths...),
		powers:      append([]float64(nil), powers...),
	}, nil
}

// NewZeroSpectrum creates a spectrum over the given grid with all powers
// initialized to zero
func NewZeroSpectrum(wavelengths []float64) (*Spectrum, error) {
	return NewSpectrum(wavelengths, make([]float64, len(wavelengths)))
}

// Len returns the number of samples in the spectrum
func (s *Spectrum) Len() int {
	return len(s.wavelengths)
}

// Wavelength returns the wavelength of sample i
func (s *Spectrum) Wavelength(i int) float64 {
	return s.wavelengths[i]
}

// Power returns the power of sample i
func (s *Spectrum) Power(i int) float64 {
	return s.powers[i]
}

// SetPower overwrites the power of sample i
func (s *Spectrum) SetPower(i int, power float64) {
	s.powers[i] = power
}

// AddPower accumulates delta into the power of sample i
func (s *Spectrum) AddPower(i int, delta float64) {
	s.powers[i] += delta
}

// InterpolateAt returns the power at an arbitrary wavelength by linear
// interpolation between the two bracketing samples. A wavelength exactly
// on the grid returns the stored power unchanged. Wavelengths outside
// [first, last] have no value; a single-sample spectrum only matches the
// exact stored wavelength
func (s *Spectrum) InterpolateAt(wavelength float64) (float64, bool) {
	first := s.wavelengths[0]
	last := s.wavelengths[len(s.wavelengths)-1]
	if wavelength < first || wavelength > last {
		return 0, false
	}

	if wavelength == first {
		return s.powers[0], true
	}
	for i := 1; i < len(s.wavelengths); i++ {
		w := s.wavelengths[i]
		if wavelength > w {
			continue
		}
		if wavelength == w {
			return s.powers[i], true
		}
		w0 := s.wavelengths[i-1]
		t := (wavelength - w0) / (w - w0)
		return s.powers[i-1] + t*(s.powers[i]-s.powers[i-1]), true
	}
	return 0, false
}
