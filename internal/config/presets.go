package config

import "sort"

// Presets are named quality profiles layered over the defaults.
var Presets = map[string]func(*Config){
	"full": func(c *Config) {},
	"low": func(c *Config) {
		c.Field.ParticleCount = 1000
	},
	"medium": func(c *Config) {
		c.Field.ParticleCount = 500
		c.Shapes.Wireframe = true
	},
	"high": func(c *Config) {
		c.Field.ParticleCount = 200
		c.Shapes.Wireframe = true
		c.Shapes.Simple = true
		c.FPS = 30
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ApplyPreset layers the named preset onto cfg. It reports whether the
// preset exists.
func ApplyPreset(cfg *Config, name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(cfg)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
