package geometry

import (
	"github.com/jLantxa/light/pkg/core"
)

// Sphere is a sphere defined by its center and radius
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

func (*Sphere) isShape() {}

func (s *Sphere) intersect(ray core.Ray) (HitRecord, bool) {
	// Quadratic equation coefficients: at² + bt + c = 0
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	b := 2 * oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	t1, t2, ok := core.SolveQuadratic(a, b, c)
	if !ok {
		return HitRecord{}, false
	}

	t, ok := closestFacingSolution(t1, t2)
	if !ok {
		return HitRecord{}, false
	}

	point := ray.At(t)
	return HitRecord{
		T:      t,
		Point:  point,
		Normal: s.normalAt(point, ray.Direction),
	}, true
}

// normalAt computes the surface normal at an intersection point: the
// center-to-point axis carrying the sign of its projection onto the
// incident direction. The normal therefore follows the side the ray
// propagates toward, and hits from inside the sphere resolve the same way
// as hits from outside
func (s *Sphere) normalAt(point, direction core.Vec3) core.Vec3 {
	toCenter := s.Center.Subtract(point)
	return toCenter.Multiply(direction.Dot(toCenter)).Normalize()
}

// closestFacingSolution picks the nearest non-negative of two ascending
// ray parameters
func closestFacingSolution(t1, t2 float64) (float64, bool) {
	if t1 >= 0 {
		return t1, true
	}
	if t2 >= 0 {
		return t2, true
	}
	return 0, false
}
