package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/folio3d/internal/scene"
)

const (
	DefaultFPS          = 60
	DefaultTheme        = "dark"
	DefaultContentWait  = 3 * time.Second
	DefaultLogLevel     = "info"
	DefaultRotationHalf = 0.01
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Theme       string            `yaml:"theme"`
	Seed        int64             `yaml:"seed"`
	FPS         int               `yaml:"fps"`
	Field       FieldConfig       `yaml:"field"`
	Shapes      ShapesConfig      `yaml:"shapes"`
	Camera      CameraConfig      `yaml:"camera"`
	Performance PerformanceConfig `yaml:"performance"`
	Content     ContentConfig     `yaml:"content"`
	Log         LogConfig         `yaml:"log"`
}

type FieldConfig struct {
	ParticleCount int            `yaml:"particle_count"`
	Gradient      GradientConfig `yaml:"gradient"`
}

type GradientConfig struct {
	Inner string `yaml:"inner"`
	Mid   string `yaml:"mid"`
	Outer string `yaml:"outer"`
}

type ShapesConfig struct {
	Simple             bool    `yaml:"simple"`
	Wireframe          bool    `yaml:"wireframe"`
	WireframeThreshold float64 `yaml:"wireframe_threshold"`
	RotationSpeed      float64 `yaml:"rotation_speed"`
	FloatSpeedMin      float64 `yaml:"float_speed_min"`
	FloatSpeedMax      float64 `yaml:"float_speed_max"`
	AmplitudeMin       float64 `yaml:"amplitude_min"`
	AmplitudeMax       float64 `yaml:"amplitude_max"`
}

type CameraConfig struct {
	Smoothing    float64 `yaml:"smoothing"`
	PointerScale float64 `yaml:"pointer_scale"`
}

type PerformanceConfig struct {
	AutoDetect bool   `yaml:"auto_detect"`
	Monitor    bool   `yaml:"monitor"`
	Optimize   string `yaml:"optimize"`
}

type ContentConfig struct {
	URL     string        `yaml:"url"`
	DB      string        `yaml:"db"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	k := scene.DefaultKinetics()
	return &Config{
		Theme: DefaultTheme,
		FPS:   DefaultFPS,
		Field: FieldConfig{
			ParticleCount: scene.DefaultParticleCount,
			Gradient:      GradientConfig{Inner: "#00d4ff", Mid: "#7b2cbf", Outer: "#ffffff"},
		},
		Shapes: ShapesConfig{
			WireframeThreshold: scene.DefaultWireframeThreshold,
			RotationSpeed:      DefaultRotationHalf,
			FloatSpeedMin:      k.FloatSpeed.Min,
			FloatSpeedMax:      k.FloatSpeed.Max,
			AmplitudeMin:       k.FloatAmplitude.Min,
			AmplitudeMax:       k.FloatAmplitude.Max,
		},
		Camera: CameraConfig{
			Smoothing:    scene.DefaultSmoothing,
			PointerScale: scene.DefaultPointerScale,
		},
		Performance: PerformanceConfig{AutoDetect: true, Monitor: true},
		Content:     ContentConfig{Timeout: DefaultContentWait},
		Log:         LogConfig{Level: DefaultLogLevel},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so fields the file leaves
// out keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	if _, err := scene.ParseTheme(c.Theme); err != nil {
		return fmt.Errorf("%w: theme: %v", ErrInvalid, err)
	}
	if c.Field.ParticleCount < 0 {
		return fmt.Errorf("%w: particle_count must be >= 0, got %d", ErrInvalid, c.Field.ParticleCount)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("%w: fps must be in [1, 240], got %d", ErrInvalid, c.FPS)
	}
	if _, err := c.gradient(); err != nil {
		return err
	}
	s := c.Shapes
	if s.FloatSpeedMin > s.FloatSpeedMax || s.AmplitudeMin > s.AmplitudeMax {
		return fmt.Errorf("%w: shape ranges must have min <= max", ErrInvalid)
	}
	if s.RotationSpeed < 0 || math.IsNaN(s.WireframeThreshold) {
		return fmt.Errorf("%w: shape kinetics", ErrInvalid)
	}
	if c.Camera.Smoothing <= 0 || c.Camera.Smoothing > 1 {
		return fmt.Errorf("%w: camera smoothing must be in (0, 1], got %f", ErrInvalid, c.Camera.Smoothing)
	}
	switch c.Performance.Optimize {
	case "", "low", "medium", "high":
	default:
		return fmt.Errorf("%w: optimize level %q", ErrInvalid, c.Performance.Optimize)
	}
	return nil
}

func (c *Config) gradient() (scene.Gradient, error) {
	var g scene.Gradient
	for _, stop := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"inner", c.Field.Gradient.Inner, &g.Inner},
		{"mid", c.Field.Gradient.Mid, &g.Mid},
		{"outer", c.Field.Gradient.Outer, &g.Outer},
	} {
		col, err := colorful.Hex(stop.hex)
		if err != nil {
			return g, fmt.Errorf("%w: gradient %s %q", ErrInvalid, stop.name, stop.hex)
		}
		*stop.dst = col
	}
	return g, nil
}

// Kinetics maps the shape section to scene kinetics.
func (c *Config) Kinetics() scene.Kinetics {
	k := scene.DefaultKinetics()
	k.RotationSpeed = scene.Symmetric(c.Shapes.RotationSpeed)
	k.FloatSpeed = scene.Range{Min: c.Shapes.FloatSpeedMin, Max: c.Shapes.FloatSpeedMax}
	k.FloatAmplitude = scene.Range{Min: c.Shapes.AmplitudeMin, Max: c.Shapes.AmplitudeMax}
	k.WireframeThreshold = c.Shapes.WireframeThreshold
	return k
}

// SceneOptions maps the config to animator construction options.
func (c *Config) SceneOptions() ([]scene.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	g, _ := c.gradient()
	opts := []scene.Option{
		scene.WithTheme(scene.Theme(c.Theme)),
		scene.WithParticleCount(c.Field.ParticleCount),
		scene.WithGradient(g),
		scene.WithKinetics(c.Kinetics()),
		scene.WithSmoothing(c.Camera.Smoothing),
		scene.WithPointerScale(c.Camera.PointerScale),
	}
	if c.Seed != 0 {
		opts = append(opts, scene.WithSeed(c.Seed))
	}
	return opts, nil
}

// Apply queues the post-init settings on a freshly initialized animator.
func (c *Config) Apply(a *scene.Animator) error {
	if c.Shapes.Simple {
		if err := a.SwitchToSimpleShapes(); err != nil {
			return err
		}
	}
	if c.Shapes.Wireframe {
		return a.SetWireframeAll(true)
	}
	return nil
}

// ApplyChanges queues the commands that move a running animator from prev
// to c. Structural settings that only take effect at init are ignored.
func (c *Config) ApplyChanges(a *scene.Animator, prev *Config) error {
	if c.Theme != prev.Theme {
		if err := a.ApplyTheme(scene.Theme(c.Theme)); err != nil {
			return err
		}
	}
	if c.Field.ParticleCount != prev.Field.ParticleCount {
		if err := a.SetParticleCount(c.Field.ParticleCount); err != nil {
			return err
		}
	}
	if c.Shapes.Wireframe != prev.Shapes.Wireframe {
		if err := a.SetWireframeAll(c.Shapes.Wireframe); err != nil {
			return err
		}
	}
	if c.Shapes.Simple && !prev.Shapes.Simple {
		return a.SwitchToSimpleShapes()
	}
	return nil
}
