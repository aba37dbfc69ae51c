package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]Sim{
	"calm": {
		Resolution2D: 48, Resolution3D: 10, Gravity: 250, BrushRadius: 20,
		ParticlesPerDraw: 4, MaxParticles: 4000, Dt: 0.016,
		Stiffness: 600, Viscosity: 8, Damping: 0.3,
	},
	"storm": {
		Resolution2D: 96, Resolution3D: 16, Gravity: 900, BrushRadius: 32,
		ParticlesPerDraw: 12, MaxParticles: 12000, Dt: 0.012,
		Stiffness: 1400, Viscosity: 1, Damping: 0.8,
	},
	"zero-g": {
		Resolution2D: 64, Resolution3D: 12, Gravity: 0, BrushRadius: 24,
		ParticlesPerDraw: 6, MaxParticles: 6000, Dt: 0.016,
		Stiffness: 900, Viscosity: 2, Damping: 0.9,
	},
}

func GetPreset(name string) (Sim, bool) {
	s, ok := Presets[name]
	return s, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset replaces the simulation section. Workers is kept since it
// describes the machine, not the scene.
func (c *Config) ApplyPreset(name string) error {
	s, ok := GetPreset(name)
	if !ok {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalid, name)
	}
	s.Workers = c.Sim.Workers
	c.Sim = s
	return nil
}
