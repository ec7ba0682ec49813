package geometry

import (
	"math"

	"github.com/jLantxa/light/pkg/core"
)

// Composite aggregates an ordered list of child shapes into one shape.
// Intersection is a linear scan over the children; there is no spatial
// acceleration
type Composite struct {
	Children []Shape
}

// NewComposite creates a composite from the given children
func NewComposite(children ...Shape) *Composite {
	return &Composite{Children: children}
}

// Add appends a child shape and returns the composite for chaining
func (c *Composite) Add(child Shape) *Composite {
	c.Children = append(c.Children, child)
	return c
}

func (*Composite) isShape() {}

func (c *Composite) intersect(ray core.Ray) (HitRecord, bool) {
	closest := HitRecord{T: math.Inf(1)}
	found := false

	for _, child := range c.Children {
		hit, ok := Intersect(child, ray)
		if ok && hit.T < closest.T {
			closest = hit
			found = true
		}
	}

	return closest, found
}
