package geometry

import (
	"github.com/jLantxa/light/pkg/core"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T      float64   // Parameter t along the ray
	Point  core.Vec3 // Point of intersection
	Normal core.Vec3 // Surface normal at the intersection point
}

// Shape is the closed set of primitives rays can intersect: Sphere, Plane,
// Triangle and Composite. The unexported marker keeps the set closed to
// this package so Intersect can dispatch exhaustively
type Shape interface {
	isShape()
}

// Intersect tests a ray against a shape and returns the nearest forward
// intersection
func Intersect(s Shape, ray core.Ray) (HitRecord, bool) {
	switch v := s.(type) {
	case *Sphere:
		return v.intersect(ray)
	case *Plane:
		return v.intersect(ray)
	case *Triangle:
		return v.intersect(ray)
	case *Composite:
		return v.intersect(ray)
	}
	return HitRecord{}, false
}
