package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

type Detail int

const (
	Detailed Detail = iota
	Simple
)

func (d Detail) String() string {
	if d == Simple {
		return "simple"
	}
	return "detailed"
}

// Kinetics are the ranges per-shape motion is drawn from.
type Kinetics struct {
	RotationSpeed   Range
	FloatSpeed      Range
	FloatAmplitude  Range
	InitialRotation Range
	// WireframeThreshold: a shape renders as wireframe when its coin flip
	// lands above this value.
	WireframeThreshold float64
}

const DefaultWireframeThreshold = 0.6

func DefaultKinetics() Kinetics {
	return Kinetics{
		RotationSpeed:      Symmetric(0.01),
		FloatSpeed:         Range{Min: 0.001, Max: 0.002},
		FloatAmplitude:     Range{Min: 1, Max: 3},
		InitialRotation:    Range{Min: 0, Max: math.Pi},
		WireframeThreshold: DefaultWireframeThreshold,
	}
}

type shapeSpec struct {
	kind     Kind
	dims     Dims
	position Vec3
}

var detailedSpecs = []shapeSpec{
	{Icosahedron, Dims{Radius: 0.8}, Vec3{-10, 6, -8}},
	{Octahedron, Dims{Radius: 1.2}, Vec3{12, -6, -5}},
	{Tetrahedron, Dims{Radius: 1.0}, Vec3{-8, -8, -6}},
	{Dodecahedron, Dims{Radius: 0.9}, Vec3{10, 8, -10}},
	{Cone, Dims{Radius: 0.8, Height: 1.5, Segments: 8}, Vec3{6, -4, -4}},
	{Cylinder, Dims{Radius: 0.5, Height: 1.5, Segments: 12}, Vec3{-6, 4, -5}},
	{Torus, Dims{Radius: 0.8, Tube: 0.3, Segments: 16, Rings: 8}, Vec3{4, 2, -7}},
	{TorusKnot, Dims{Radius: 0.6, Tube: 0.2, Segments: 64}, Vec3{-4, -2, -8}},
}

var simpleSpecs = []shapeSpec{
	{Box, Dims{Radius: 1}, Vec3{-8, 4, -5}},
	{Sphere, Dims{Radius: 0.8, Segments: 8, Rings: 6}, Vec3{8, -4, -3}},
	{Cone, Dims{Radius: 0.6, Height: 1, Segments: 6}, Vec3{-6, -6, -4}},
}

// SimpleKinds is the reduced kind set used after a quality reduction.
var SimpleKinds = []Kind{Box, Sphere, Cone}

// Shape is one floating solid. OriginalPosition, RotationSpeed, FloatSpeed,
// FloatAmplitude and FloatPhase are fixed at construction.
type Shape struct {
	Kind             Kind
	Mesh             Mesh
	Index            int
	OriginalPosition Vec3
	RotationSpeed    Vec3
	FloatSpeed       float64
	FloatAmplitude   float64
	FloatPhase       float64
	Wireframe        bool
	// Flat shapes are drawn in their primary color only.
	Flat      bool
	Rotation  Vec3
	Offset    Vec3
	Primary   colorful.Color
	Secondary colorful.Color
}

func (s *Shape) Position() Vec3 {
	return s.OriginalPosition.Add(s.Offset)
}

// applyPalette colors the shape by index parity: even shapes take the
// palette as is, odd shapes take it swapped.
func (s *Shape) applyPalette(p Palette) {
	if s.Index%2 != 0 {
		p = p.Swapped()
	}
	s.Primary, s.Secondary = p.Primary, p.Secondary
}

// advance moves the shape to time t.
func (s *Shape) advance(t float64) {
	s.Rotation = s.Rotation.Add(s.RotationSpeed)
	s.Offset = Vec3{Y: math.Sin(t*s.FloatSpeed+s.FloatPhase) * s.FloatAmplitude}
}

type ShapeSet struct {
	Detail Detail
	Shapes []*Shape
}

// Kinds lists the kinds of the live shapes in order.
func (ss *ShapeSet) Kinds() []Kind {
	kinds := make([]Kind, 0, len(ss.Shapes))
	for _, s := range ss.Shapes {
		if s != nil {
			kinds = append(kinds, s.Kind)
		}
	}
	return kinds
}

// Release drops every shape and its mesh.
func (ss *ShapeSet) Release() {
	for i, s := range ss.Shapes {
		if s != nil {
			s.Mesh = Mesh{}
		}
		ss.Shapes[i] = nil
	}
	ss.Shapes = nil
}

// GenerateShapes instantiates the detailed or simple set with randomized
// kinetics. Per shape it draws three initial rotation angles, three rotation
// speeds, a float speed, a float amplitude and a wireframe coin flip.
func GenerateShapes(detail Detail, p Palette, k Kinetics, rng Rand) *ShapeSet {
	specs := detailedSpecs
	if detail == Simple {
		specs = simpleSpecs
	}
	ss := &ShapeSet{Detail: detail, Shapes: make([]*Shape, 0, len(specs))}
	for i, spec := range specs {
		mesh, err := BuildMesh(spec.kind, spec.dims)
		if err != nil {
			continue
		}
		s := &Shape{
			Kind:             spec.kind,
			Mesh:             mesh,
			Index:            i,
			OriginalPosition: spec.position,
			FloatPhase:       float64(i),
		}
		s.Rotation = Vec3{k.InitialRotation.Draw(rng), k.InitialRotation.Draw(rng), k.InitialRotation.Draw(rng)}
		s.RotationSpeed = Vec3{k.RotationSpeed.Draw(rng), k.RotationSpeed.Draw(rng), k.RotationSpeed.Draw(rng)}
		s.FloatSpeed = k.FloatSpeed.Draw(rng)
		s.FloatAmplitude = k.FloatAmplitude.Draw(rng)
		s.Wireframe = rng.Float64() > k.WireframeThreshold
		if detail == Simple {
			s.Wireframe, s.Flat = true, true
		}
		s.applyPalette(p)
		ss.Shapes = append(ss.Shapes, s)
	}
	return ss
}
