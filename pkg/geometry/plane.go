package geometry

import (
	"math"

	"github.com/jLantxa/light/pkg/core"
)

// Rays closer to parallel than this are treated as not intersecting
const parallelEpsilon = 1e-8

// Plane is an infinite plane through a position with a unit normal
type Plane struct {
	Position core.Vec3
	Normal   core.Vec3
}

// NewPlane creates a plane through position. The normal is normalized
// before it is stored
func NewPlane(position, normal core.Vec3) *Plane {
	return &Plane{Position: position, Normal: normal.Normalize()}
}

func (*Plane) isShape() {}

func (p *Plane) intersect(ray core.Ray) (HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < parallelEpsilon {
		return HitRecord{}, false
	}

	t := p.Position.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < 0 {
		return HitRecord{}, false
	}

	return HitRecord{
		T:      t,
		Point:  ray.At(t),
		Normal: p.Normal,
	}, true
}
