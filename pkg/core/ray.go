package core

// Ray is a half-line with an origin, a unit direction and the wavelength
// it samples
type Ray struct {
	Origin     Vec3
	Direction  Vec3
	Wavelength float64
}

// NewRay creates a ray from origin toward direction, tagged with a sample
// wavelength. The direction is normalized before it is stored
func NewRay(origin, direction Vec3, wavelength float64) Ray {
	return Ray{
		Origin:     origin,
		Direction:  direction.Normalize(),
		Wavelength: wavelength,
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
