package core

import (
	"math"
	"testing"
)

func TestNewSpectrum_Validation(t *testing.T) {
	tests := []struct {
		name        string
		wavelengths []float64
		powers      []float64
		wantErr     bool
	}{
		{"valid grid", []float64{400, 500, 600}, []float64{1, 2, 3}, false},
		{"single sample", []float64{550}, []float64{1}, false},
		{"empty", []float64{}, []float64{}, true},
		{"length mismatch", []float64{400, 500}, []float64{1}, true},
		{"decreasing wavelengths", []float64{500, 400}, []float64{1, 2}, true},
		{"duplicate wavelengths", []float64{400, 400}, []float64{1, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpectrum(tt.wavelengths, tt.powers)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewZeroSpectrum(t *testing.T) {
	s, err := NewZeroSpectrum([]float64{400, 500, 600})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Expected 3 samples, got %d", s.Len())
	}
	for i := 0; i < s.Len(); i++ {
		if s.Power(i) != 0 {
			t.Errorf("Expected zero power at sample %d, got %v", i, s.Power(i))
		}
	}
}

func TestSpectrum_PowerMutation(t *testing.T) {
	s, err := NewZeroSpectrum([]float64{400, 500, 600})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	s.SetPower(1, 2.5)
	s.AddPower(1, 0.5)
	s.AddPower(2, 1.0)

	if got := s.Power(0); got != 0 {
		t.Errorf("Expected power 0 at sample 0, got %v", got)
	}
	if got := s.Power(1); got != 3.0 {
		t.Errorf("Expected power 3.0 at sample 1, got %v", got)
	}
	if got := s.Power(2); got != 1.0 {
		t.Errorf("Expected power 1.0 at sample 2, got %v", got)
	}
}

func TestSpectrum_InterpolateAt(t *testing.T) {
	const tolerance = 1e-9

	s, err := NewSpectrum([]float64{400, 500, 600}, []float64{1, 3, 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name       string
		wavelength float64
		expected   float64
		hasValue   bool
	}{
		{"exact first sample", 400, 1, true},
		{"exact middle sample", 500, 3, true},
		{"exact last sample", 600, 2, true},
		{"midpoint of first interval", 450, 2, true},
		{"quarter of second interval", 525, 2.75, true},
		{"below the grid", 399.9, 0, false},
		{"above the grid", 600.1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.InterpolateAt(tt.wavelength)
			if ok != tt.hasValue {
				t.Fatalf("Expected hasValue=%v, got %v", tt.hasValue, ok)
			}
			if ok && math.Abs(got-tt.expected) > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSpectrum_InterpolateAt_SingleSample(t *testing.T) {
	s, err := NewSpectrum([]float64{550}, []float64{4.2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got, ok := s.InterpolateAt(550); !ok || got != 4.2 {
		t.Errorf("Expected exact match (4.2, true), got (%v, %v)", got, ok)
	}
	if _, ok := s.InterpolateAt(550.0001); ok {
		t.Errorf("Expected no value off the single sample")
	}
	if _, ok := s.InterpolateAt(549.9999); ok {
		t.Errorf("Expected no value off the single sample")
	}
}

func TestSpectrum_InterpolateAt_ExactStoredPower(t *testing.T) {
	wavelengths := []float64{380, 460, 540, 620, 700}
	powers := []float64{0.25, 0.5, 0.75, 1.0, 1.25}
	s, err := NewSpectrum(wavelengths, powers)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i, w := range wavelengths {
		got, ok := s.InterpolateAt(w)
		if !ok {
			t.Fatalf("Expected a value at stored wavelength %v", w)
		}
		if got != powers[i] {
			t.Errorf("Expected stored power %v at %v, got %v", powers[i], w, got)
		}
	}
}
