package core

import (
	"math"
	"math/rand"
)

// RandomCosineDirection generates a cosine-weighted random direction in
// the hemisphere around the normal
func RandomCosineDirection(normal Vec3, random *rand.Rand) Vec3 {
	phi := 2 * math.Pi * random.Float64()
	s := random.Float64()
	r := math.Sqrt(s)

	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	z := math.Sqrt(1 - s)

	// Build a tangent frame around the normal, picking a reference axis
	// that is not near-parallel to it
	var ref Vec3
	if math.Abs(normal.X) > 0.1 {
		ref = NewVec3(0, 1, 0)
	} else {
		ref = NewVec3(1, 0, 0)
	}
	tangent := ref.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	return tangent.Multiply(x).
		Add(bitangent.Multiply(y)).
		Add(normal.Multiply(z))
}

// SamplePointInDisk returns a point uniformly distributed over a disk of
// the given radius, as a pair of offsets in the disk plane
func SamplePointInDisk(radius float64, random *rand.Rand) (float64, float64) {
	r := radius * math.Sqrt(random.Float64())
	phi := 2 * math.Pi * random.Float64()
	return r * math.Cos(phi), r * math.Sin(phi)
}
