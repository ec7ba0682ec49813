package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jLantxa/light/pkg/core"
	"github.com/jLantxa/light/pkg/geometry"
	"github.com/jLantxa/light/pkg/material"
	"github.com/jLantxa/light/pkg/scene"
)

// SceneDocument is the on-disk JSON description of a renderable scene:
// a camera, render settings and the world content. Name and description
// are optional display metadata.
type SceneDocument struct {
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Camera      CameraDocument `json:"camera"`
	Render      RenderDocument `json:"render"`
	Scene       WorldDocument  `json:"scene"`
}

// CameraDocument describes the camera placement and projection.
// Angles are degrees.
type CameraDocument struct {
	Position []float64      `json:"position"`
	Facing   []float64      `json:"facing"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	Roll     float64        `json:"roll,omitempty"`
	FOV      FOVDocument    `json:"fov"`
	Focus    *FocusDocument `json:"focus,omitempty"`
}

// FOVDocument is an opening angle across one image axis
type FOVDocument struct {
	Axis    string  `json:"axis"` // "horizontal" or "vertical"
	Degrees float64 `json:"degrees"`
}

// FocusDocument selects where camera rays originate. Mode "pinhole"
// needs no other fields; mode "focal-plane" reads focalDistance and
// aperture.
type FocusDocument struct {
	Mode          string  `json:"mode"`
	FocalDistance float64 `json:"focalDistance,omitempty"`
	Aperture      float64 `json:"aperture,omitempty"`
}

// RenderDocument carries the sampling settings. All fields are optional;
// absent values fall back to the renderer defaults.
type RenderDocument struct {
	SamplesPerPixel int                  `json:"samplesPerPixel,omitempty"`
	Extinction      *ExtinctionDocument  `json:"extinction,omitempty"`
	Wavelengths     *WavelengthsDocument `json:"wavelengths,omitempty"`
}

// ExtinctionDocument selects the path termination policy. Policy "fix"
// reads maxDepth; policy "half-life" reads halfLife.
type ExtinctionDocument struct {
	Policy   string  `json:"policy"`
	MaxDepth int     `json:"maxDepth,omitempty"`
	HalfLife float64 `json:"halfLife,omitempty"`
}

// WavelengthsDocument describes an evenly spaced wavelength grid in
// nanometers
type WavelengthsDocument struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// WorldDocument holds the scene content: an optional background emission
// spectrum and the object list
type WorldDocument struct {
	Background *SpectrumDocument `json:"background,omitempty"`
	Objects    []ObjectDocument  `json:"objects,omitempty"`
}

// SpectrumDocument is a sampled spectrum as parallel wavelength/power
// arrays. Wavelengths are nanometers and must be strictly increasing.
type SpectrumDocument struct {
	Wavelengths []float64 `json:"wavelengths"`
	Powers      []float64 `json:"powers"`
}

// ObjectDocument is one entry of the object list. Type selects which of
// the remaining fields apply: "sphere" reads center and radius, "plane"
// reads position and normal, "triangle" reads a, b and c, and
// "composite" reads children (object entries without materials of their
// own). The material is optional; an absent material neither emits nor
// absorbs.
type ObjectDocument struct {
	Type string `json:"type"`

	Center []float64 `json:"center,omitempty"`
	Radius float64   `json:"radius,omitempty"`

	Position []float64 `json:"position,omitempty"`
	Normal   []float64 `json:"normal,omitempty"`

	A []float64 `json:"a,omitempty"`
	B []float64 `json:"b,omitempty"`
	C []float64 `json:"c,omitempty"`

	Children []ObjectDocument `json:"children,omitempty"`

	Material *MaterialDocument `json:"material,omitempty"`
}

// MaterialDocument describes a surface response. Scalar fields are
// pointers so that an absent field keeps its default (transmittance 1,
// roughness 0, refraction index 1) while an explicit zero stays zero.
type MaterialDocument struct {
	Emission        *SpectrumDocument `json:"emission,omitempty"`
	Absorption      *SpectrumDocument `json:"absorption,omitempty"`
	Transmittance   *float64          `json:"transmittance,omitempty"`
	Roughness       *float64          `json:"roughness,omitempty"`
	RefractionIndex *float64          `json:"refractionIndex,omitempty"`
}

// LoadScene reads a JSON scene document from a file and builds the scene
// it describes
func LoadScene(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes a JSON scene document and builds the scene it
// describes. The returned scene carries the document's camera and
// sampling settings.
func ParseScene(r io.Reader) (*scene.Scene, error) {
	var doc SceneDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode scene document: %w", err)
	}
	return BuildScene(&doc)
}

// SaveScene writes a scene document to a file as indented JSON
func SaveScene(path string, doc *SceneDocument) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scene file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode scene document: %w", err)
	}
	return nil
}

// BuildScene validates a decoded document and assembles the scene it
// describes
func BuildScene(doc *SceneDocument) (*scene.Scene, error) {
	s := scene.NewScene()

	config, err := buildCamera(doc.Camera)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	s.CameraConfig = config

	sampling, err := buildSampling(doc.Render)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	s.Sampling = sampling

	if doc.Scene.Background != nil {
		background, err := buildSpectrum(doc.Scene.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		s.SetBackground(background)
	}

	for i := range doc.Scene.Objects {
		obj := &doc.Scene.Objects[i]
		shape, err := buildShape(obj)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		mat, err := buildMaterial(obj.Material)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Add(shape, mat)
	}

	return s, nil
}

func buildCamera(doc CameraDocument) (geometry.CameraConfig, error) {
	var config geometry.CameraConfig

	position, err := vec3Of(doc.Position, "position")
	if err != nil {
		return config, err
	}
	facing, err := vec3Of(doc.Facing, "facing")
	if err != nil {
		return config, err
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return config, fmt.Errorf("resolution must be positive, got %dx%d", doc.Width, doc.Height)
	}
	if doc.FOV.Degrees <= 0 || doc.FOV.Degrees >= 180 {
		return config, fmt.Errorf("fov degrees must be within (0, 180), got %v", doc.FOV.Degrees)
	}

	var fov geometry.FieldOfView
	switch doc.FOV.Axis {
	case "horizontal":
		fov = geometry.HorizontalFOV(doc.FOV.Degrees * math.Pi / 180)
	case "vertical":
		fov = geometry.VerticalFOV(doc.FOV.Degrees * math.Pi / 180)
	default:
		return config, fmt.Errorf("unknown fov axis %q", doc.FOV.Axis)
	}

	focus, err := buildFocus(doc.Focus)
	if err != nil {
		return config, err
	}

	return geometry.CameraConfig{
		Position: position,
		Facing:   facing,
		Width:    doc.Width,
		Height:   doc.Height,
		Roll:     doc.Roll * math.Pi / 180,
		FOV:      fov,
		Focus:    focus,
	}, nil
}

func buildFocus(doc *FocusDocument) (geometry.FocusMode, error) {
	if doc == nil {
		return geometry.PinHole{}, nil
	}
	switch doc.Mode {
	case "pinhole":
		return geometry.PinHole{}, nil
	case "focal-plane":
		return geometry.FocalPlane{
			FocalDistance: doc.FocalDistance,
			Aperture:      doc.Aperture,
		}, nil
	default:
		return nil, fmt.Errorf("unknown focus mode %q", doc.Mode)
	}
}

func buildSampling(doc RenderDocument) (scene.SamplingConfig, error) {
	var config scene.SamplingConfig

	if doc.SamplesPerPixel < 0 {
		return config, fmt.Errorf("samplesPerPixel must not be negative, got %d", doc.SamplesPerPixel)
	}
	config.SamplesPerPixel = doc.SamplesPerPixel

	if doc.Extinction != nil {
		switch doc.Extinction.Policy {
		case "fix":
			if doc.Extinction.MaxDepth <= 0 {
				return config, fmt.Errorf("extinction maxDepth must be positive, got %d", doc.Extinction.MaxDepth)
			}
			config.MaxDepth = doc.Extinction.MaxDepth
		case "half-life":
			if doc.Extinction.HalfLife <= 0 {
				return config, fmt.Errorf("extinction halfLife must be positive, got %v", doc.Extinction.HalfLife)
			}
			config.HalfLife = doc.Extinction.HalfLife
		default:
			return config, fmt.Errorf("unknown extinction policy %q", doc.Extinction.Policy)
		}
	}

	if doc.Wavelengths != nil {
		grid, err := buildWavelengthGrid(doc.Wavelengths)
		if err != nil {
			return config, err
		}
		config.Wavelengths = grid
	}

	return config, nil
}

func buildWavelengthGrid(doc *WavelengthsDocument) ([]float64, error) {
	if doc.Count < 1 {
		return nil, fmt.Errorf("wavelengths count must be at least 1, got %d", doc.Count)
	}
	if doc.Count == 1 {
		return []float64{doc.Min}, nil
	}
	if doc.Max <= doc.Min {
		return nil, fmt.Errorf("wavelengths range must be increasing, got [%v, %v]", doc.Min, doc.Max)
	}

	grid := make([]float64, doc.Count)
	step := (doc.Max - doc.Min) / float64(doc.Count-1)
	for i := range grid {
		grid[i] = doc.Min + float64(i)*step
	}
	grid[len(grid)-1] = doc.Max // pin the endpoint against rounding drift
	return grid, nil
}

func buildShape(doc *ObjectDocument) (geometry.Shape, error) {
	switch doc.Type {
	case "sphere":
		return buildSphere(doc)
	case "plane":
		return buildPlane(doc)
	case "triangle":
		return buildTriangle(doc)
	case "composite":
		return buildComposite(doc)
	case "":
		return nil, fmt.Errorf("no object type found")
	default:
		return nil, fmt.Errorf("unknown object type %q", doc.Type)
	}
}

func buildSphere(doc *ObjectDocument) (geometry.Shape, error) {
	center, err := vec3Of(doc.Center, "center")
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	if doc.Radius <= 0 {
		return nil, fmt.Errorf("sphere: radius must be positive, got %v", doc.Radius)
	}
	return geometry.NewSphere(center, doc.Radius), nil
}

func buildPlane(doc *ObjectDocument) (geometry.Shape, error) {
	position, err := vec3Of(doc.Position, "position")
	if err != nil {
		return nil, fmt.Errorf("plane: %w", err)
	}
	normal, err := vec3Of(doc.Normal, "normal")
	if err != nil {
		return nil, fmt.Errorf("plane: %w", err)
	}
	if normal.LengthSquared() == 0 {
		return nil, fmt.Errorf("plane: normal is a zero vector")
	}
	return geometry.NewPlane(position, normal), nil
}

func buildTriangle(doc *ObjectDocument) (geometry.Shape, error) {
	a, err := vec3Of(doc.A, "a")
	if err != nil {
		return nil, fmt.Errorf("triangle: %w", err)
	}
	b, err := vec3Of(doc.B, "b")
	if err != nil {
		return nil, fmt.Errorf("triangle: %w", err)
	}
	c, err := vec3Of(doc.C, "c")
	if err != nil {
		return nil, fmt.Errorf("triangle: %w", err)
	}
	return geometry.NewTriangle(a, b, c), nil
}

func buildComposite(doc *ObjectDocument) (geometry.Shape, error) {
	if len(doc.Children) == 0 {
		return nil, fmt.Errorf("composite defines no children")
	}

	children := make([]geometry.Shape, 0, len(doc.Children))
	for i := range doc.Children {
		child := &doc.Children[i]
		if child.Material != nil {
			return nil, fmt.Errorf("composite child %d: children share the composite's material", i)
		}
		shape, err := buildShape(child)
		if err != nil {
			return nil, fmt.Errorf("composite child %d: %w", i, err)
		}
		children = append(children, shape)
	}
	return geometry.NewComposite(children...), nil
}

func buildMaterial(doc *MaterialDocument) (*material.Material, error) {
	if doc == nil {
		return material.NewMaterial(nil, nil), nil
	}

	var emission, absorption *core.Spectrum
	var err error
	if doc.Emission != nil {
		emission, err = buildSpectrum(doc.Emission)
		if err != nil {
			return nil, fmt.Errorf("material emission: %w", err)
		}
	}
	if doc.Absorption != nil {
		absorption, err = buildSpectrum(doc.Absorption)
		if err != nil {
			return nil, fmt.Errorf("material absorption: %w", err)
		}
	}

	mat := material.NewMaterial(emission, absorption)
	if doc.Transmittance != nil {
		if *doc.Transmittance < 0 || *doc.Transmittance > 1 {
			return nil, fmt.Errorf("material transmittance must be within [0, 1], got %v", *doc.Transmittance)
		}
		mat.Transmittance = *doc.Transmittance
	}
	if doc.Roughness != nil {
		if *doc.Roughness < 0 || *doc.Roughness > 1 {
			return nil, fmt.Errorf("material roughness must be within [0, 1], got %v", *doc.Roughness)
		}
		mat.Roughness = *doc.Roughness
	}
	if doc.RefractionIndex != nil {
		if *doc.RefractionIndex < 1 {
			return nil, fmt.Errorf("material refraction index must be at least 1, got %v", *doc.RefractionIndex)
		}
		mat.RefractionIndex = *doc.RefractionIndex
	}
	return mat, nil
}

func buildSpectrum(doc *SpectrumDocument) (*core.Spectrum, error) {
	return core.NewSpectrum(doc.Wavelengths, doc.Powers)
}

func vec3Of(values []float64, name string) (core.Vec3, error) {
	if values == nil {
		return core.Vec3{}, fmt.Errorf("defines no %s", name)
	}
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%s must have 3 components, got %d", name, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}
