package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultParticleCount = 2000

	FieldRadius   = 50.0
	SpinFactor    = 0.1
	ArmCount      = 3
	LateralNoise  = 2.0
	FieldHeight   = 20.0
	JitterSpan    = 10.0
	ColorFalloff  = 25.0
	WobbleAmount  = 0.1
	FieldSpinRate = 0.05
)

// Field is the particle disk. Positions, BaseColors and Jitter always share
// the same length and are only ever replaced together.
type Field struct {
	Count      int
	Positions  []Vec3
	BaseColors []colorful.Color
	Jitter     []Vec3
	Palette    Palette
}

// GenerateField builds a three-armed spiral disk of count particles. Every
// random draw for the field happens here.
func GenerateField(count int, rng Rand, g Gradient) (*Field, error) {
	if count < 0 {
		return nil, ErrInvalidCount
	}
	f := &Field{
		Count:      count,
		Positions:  make([]Vec3, count),
		BaseColors: make([]colorful.Color, count),
		Jitter:     make([]Vec3, count),
	}
	height := Symmetric(FieldHeight / 2)
	noise := Symmetric(LateralNoise / 2)
	jitter := Symmetric(JitterSpan / 2)

	for i := 0; i < count; i++ {
		radius := rng.Float64() * FieldRadius
		spin := radius * SpinFactor
		branch := float64(i%ArmCount) * (2 * math.Pi / ArmCount)

		x := math.Cos(branch+spin)*radius + noise.Draw(rng)
		y := height.Draw(rng)
		z := math.Sin(branch+spin)*radius + noise.Draw(rng)
		f.Positions[i] = Vec3{x, y, z}

		f.Jitter[i] = Vec3{jitter.Draw(rng), jitter.Draw(rng), jitter.Draw(rng)}

		distance := math.Sqrt(x*x + z*z)
		f.BaseColors[i] = MixGradient(g, distance/ColorFalloff)
	}
	return f, nil
}

// MixGradient maps a radial mix value onto the three-stop gradient:
// [0, 0.5) spans Inner to Mid, [0.5, 1] spans Mid to Outer.
func MixGradient(g Gradient, mix float64) colorful.Color {
	if mix < 0.5 {
		return g.Inner.BlendRgb(g.Mid, clamp01(mix*2))
	}
	return g.Mid.BlendRgb(g.Outer, clamp01((mix-0.5)*2))
}

// Wobble is the per-particle render offset at time t. It is applied when
// drawing and never written back into Positions.
func Wobble(jitter Vec3, t float64) Vec3 {
	return Vec3{
		X: math.Sin(t+jitter.X) * WobbleAmount,
		Y: math.Cos(t+jitter.Y) * WobbleAmount,
		Z: math.Sin(t+jitter.Z) * WobbleAmount,
	}
}

// LiveColor is the palette mix the field is drawn with at time t.
func (f *Field) LiveColor(t float64) colorful.Color {
	return f.Palette.Primary.BlendRgb(f.Palette.Secondary, math.Sin(t)*0.5+0.5)
}

// Consistent reports whether all per-particle arrays match Count.
func (f *Field) Consistent() bool {
	return f != nil && len(f.Positions) == f.Count &&
		len(f.BaseColors) == f.Count && len(f.Jitter) == f.Count
}

// Release drops the structural arrays.
func (f *Field) Release() {
	f.Positions, f.BaseColors, f.Jitter = nil, nil, nil
	f.Count = 0
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
