package geometry

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jLantxa/light/pkg/core"
)

// WorldUp is the global up direction used to derive camera bases
var WorldUp = core.NewVec3(0, 1, 0)

// FOVAxis selects the image axis an opening angle is measured across
type FOVAxis int

const (
	FOVHorizontal FOVAxis = iota
	FOVVertical
)

// FieldOfView is an opening angle across one image axis, in radians
type FieldOfView struct {
	Axis  FOVAxis
	Angle float64
}

// HorizontalFOV creates a field of view measured across the image width
func HorizontalFOV(angle float64) FieldOfView {
	return FieldOfView{Axis: FOVHorizontal, Angle: angle}
}

// VerticalFOV creates a field of view measured across the image height
func VerticalFOV(angle float64) FieldOfView {
	return FieldOfView{Axis: FOVVertical, Angle: angle}
}

// FocusMode determines where camera rays originate
type FocusMode interface {
	isFocusMode()
}

// PinHole projects every ray through the camera position
type PinHole struct{}

// FocalPlane is a thin lens focused on a plane at a fixed distance.
// Ray origins are sampled over an aperture disc, which blurs everything
// away from the focal plane.
type FocalPlane struct {
	FocalDistance float64 // Distance from the camera to the plane in focus
	Aperture      float64 // Lens opening diameter
}

func (PinHole) isFocusMode()    {}
func (FocalPlane) isFocusMode() {}

// CameraConfig describes a camera placement and projection
type CameraConfig struct {
	Position core.Vec3
	Facing   core.Vec3 // View direction, normalized on configuration
	Width    int       // Horizontal resolution in pixels
	Height   int       // Vertical resolution in pixels
	Roll     float64   // Rotation around the facing axis, radians
	FOV      FieldOfView
	Focus    FocusMode // nil defaults to PinHole
}

// coordinateSystem is the camera's viewing basis. The three axes are unit
// length and mutually orthogonal, with w along the facing direction.
type coordinateSystem struct {
	origin core.Vec3
	u      core.Vec3 // Sensor column axis
	v      core.Vec3 // Sensor row axis
	w      core.Vec3 // Facing direction
}

// Camera turns pixel coordinates into primary rays. Configure replaces all
// derived state in one step; a rejected configuration leaves the previous
// state in place.
type Camera struct {
	coords coordinateSystem
	width  int
	height int
	focus  FocusMode

	distanceToPlane float64
	pixelWidth      float64
	pixelHeight     float64
	firstPixel      core.Vec3
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	camera := &Camera{}
	if err := camera.Configure(config); err != nil {
		return nil, err
	}
	return camera, nil
}

// Configure recomputes the viewing basis and sensor geometry from config.
// On error the camera keeps its previous configuration.
func (c *Camera) Configure(config CameraConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("camera resolution must be positive, got %dx%d", config.Width, config.Height)
	}
	if config.FOV.Angle <= 0 || config.FOV.Angle >= math.Pi {
		return fmt.Errorf("field of view must be within (0, pi), got %v", config.FOV.Angle)
	}

	focus := config.Focus
	if focus == nil {
		focus = PinHole{}
	}
	if plane, ok := focus.(FocalPlane); ok {
		if plane.FocalDistance < 0 {
			return fmt.Errorf("focal distance must not be negative, got %v", plane.FocalDistance)
		}
		if plane.Aperture < 0 {
			return fmt.Errorf("aperture must not be negative, got %v", plane.Aperture)
		}
	}

	w := config.Facing.Normalize()
	if w.LengthSquared() == 0 {
		return fmt.Errorf("camera facing direction is a zero vector")
	}
	u := w.Cross(WorldUp).Normalize()
	if u.LengthSquared() == 0 {
		return fmt.Errorf("camera facing direction is parallel to the world up axis")
	}
	v := u.Cross(w).Normalize()

	if config.Roll != 0 {
		u = core.RotateAroundAxis(u, w, config.Roll).Normalize()
		v = core.RotateAroundAxis(v, w, config.Roll).Normalize()
	}

	aspectRatio := float64(config.Width) / float64(config.Height)
	var distanceToPlane, sensorWidth, sensorHeight float64
	switch mode := focus.(type) {
	case FocalPlane:
		distanceToPlane = mode.FocalDistance
		if config.FOV.Axis == FOVHorizontal {
			sensorWidth = 2 * distanceToPlane * math.Tan(config.FOV.Angle/2)
			sensorHeight = sensorWidth / aspectRatio
		} else {
			sensorHeight = 2 * distanceToPlane * math.Tan(config.FOV.Angle/2)
			sensorWidth = sensorHeight * aspectRatio
		}
	case PinHole:
		sensorHeight = 1.0
		sensorWidth = sensorHeight * aspectRatio
		if config.FOV.Axis == FOVHorizontal {
			distanceToPlane = sensorWidth / (2 * math.Tan(config.FOV.Angle/2))
		} else {
			distanceToPlane = sensorHeight / (2 * math.Tan(config.FOV.Angle/2))
		}
	}

	pixelWidth := sensorWidth / float64(config.Width)
	pixelHeight := sensorHeight / float64(config.Height)

	firstPixel := config.Position.
		Add(w.Multiply(distanceToPlane)).
		Subtract(u.Multiply(sensorWidth/2 - pixelWidth/2)).
		Add(v.Multiply(sensorHeight/2 - pixelHeight/2))

	c.coords = coordinateSystem{origin: config.Position, u: u, v: v, w: w}
	c.width = config.Width
	c.height = config.Height
	c.focus = focus
	c.distanceToPlane = distanceToPlane
	c.pixelWidth = pixelWidth
	c.pixelHeight = pixelHeight
	c.firstPixel = firstPixel

	return nil
}

// Position returns the camera origin
func (c *Camera) Position() core.Vec3 {
	return c.coords.origin
}

// Direction returns the normalized facing direction
func (c *Camera) Direction() core.Vec3 {
	return c.coords.w
}

// Resolution returns the pixel grid dimensions
func (c *Camera) Resolution() (int, int) {
	return c.width, c.height
}

// CastRay builds the primary ray through pixel (i, j), tagged with the
// given wavelength. Pixels outside the resolution produce no ray.
func (c *Camera) CastRay(i, j int, wavelength float64, random *rand.Rand) (core.Ray, bool) {
	if i < 0 || i >= c.width || j < 0 || j >= c.height {
		return core.Ray{}, false
	}

	origin := c.coords.origin
	if plane, ok := c.focus.(FocalPlane); ok {
		x, y := core.SamplePointInDisk(plane.Aperture/2, random)
		origin = origin.Add(c.coords.u.Multiply(x)).Add(c.coords.v.Multiply(y))
	}

	pixel := c.firstPixel.
		Add(c.coords.u.Multiply(float64(i) * c.pixelWidth)).
		Subtract(c.coords.v.Multiply(float64(j) * c.pixelHeight))

	return core.NewRay(origin, pixel.Subtract(origin), wavelength), true
}
