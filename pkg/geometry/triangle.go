package geometry

import (
	"math"

	"github.com/jLantxa/light/pkg/core"
)

// Triangle is a single triangle defined by three vertices. The edge
// vectors and face normal are precomputed at construction
type Triangle struct {
	A, B, C core.Vec3
	edge1   core.Vec3 // B - A
	edge2   core.Vec3 // C - A
	normal  core.Vec3
}

// NewTriangle creates a triangle from three vertices. The face normal is
// normalize((c-a) × (b-a))
func NewTriangle(a, b, c core.Vec3) *Triangle {
	return &Triangle{
		A:      a,
		B:      b,
		C:      c,
		edge1:  b.Subtract(a),
		edge2:  c.Subtract(a),
		normal: c.Subtract(a).Cross(b.Subtract(a)).Normalize(),
	}
}

// Normal returns the precomputed face normal
func (tr *Triangle) Normal() core.Vec3 {
	return tr.normal
}

func (*Triangle) isShape() {}

// intersect implements the Möller-Trumbore algorithm
func (tr *Triangle) intersect(ray core.Ray) (HitRecord, bool) {
	h := ray.Direction.Cross(tr.edge2)
	det := tr.edge1.Dot(h)

	// Ray parallel to the triangle plane
	if math.Abs(det) < parallelEpsilon {
		return HitRecord{}, false
	}

	f := 1 / det
	s := ray.Origin.Subtract(tr.A)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return HitRecord{}, false
	}

	q := s.Cross(tr.edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return HitRecord{}, false
	}

	t := f * tr.edge2.Dot(q)
	if t <= parallelEpsilon {
		return HitRecord{}, false
	}

	return HitRecord{
		T:      t,
		Point:  ray.At(t),
		Normal: tr.normal,
	}, true
}
