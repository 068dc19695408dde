package scene

import (
	"math"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// RotateXYZ applies Euler rotation in X, Y, Z order.
func (v Vec3) RotateXYZ(r Vec3) Vec3 {
	cx, sx := math.Cos(r.X), math.Sin(r.X)
	v.Y, v.Z = v.Y*cx-v.Z*sx, v.Y*sx+v.Z*cx
	cy, sy := math.Cos(r.Y), math.Sin(r.Y)
	v.X, v.Z = v.X*cy+v.Z*sy, -v.X*sy+v.Z*cy
	cz, sz := math.Cos(r.Z), math.Sin(r.Z)
	v.X, v.Y = v.X*cz-v.Y*sz, v.X*sz+v.Y*cz
	return v
}

// Rand is the random source consumed by the generators.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source. Seed 0 seeds from the wall clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Range is a closed-open interval sampled uniformly.
type Range struct {
	Min, Max float64
}

func (r Range) Draw(rng Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Symmetric returns [-half, half].
func Symmetric(half float64) Range {
	return Range{Min: -half, Max: half}
}

// Palette is the theme-driven color pair shared by the field and the shapes.
type Palette struct {
	Primary   colorful.Color
	Secondary colorful.Color
}

// Swapped returns the palette with primary and secondary exchanged.
func (p Palette) Swapped() Palette {
	return Palette{Primary: p.Secondary, Secondary: p.Primary}
}

// Gradient is the three-stop radial gradient baked into the field colors.
type Gradient struct {
	Inner, Mid, Outer colorful.Color
}

func DefaultGradient() Gradient {
	return Gradient{
		Inner: mustHex("#00d4ff"),
		Mid:   mustHex("#7b2cbf"),
		Outer: mustHex("#ffffff"),
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
