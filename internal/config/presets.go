package config

import "sort"

var Presets = map[string]*Config{
	"lob": {
		Projectile: "basketball", Integrator: "semi-implicit", FrameRate: 60, LogLevel: "info",
		Launch: LaunchConfig{Angle: 60, Speed: 12, Height: 2, AirResistance: true},
	},
	"drive": {
		Projectile: "golfball", Integrator: "semi-implicit", FrameRate: 60, LogLevel: "info",
		Launch: LaunchConfig{Angle: 15, Speed: 30, Height: 0, AirResistance: true},
	},
	"siege": {
		Projectile: "cannonball", Integrator: "semi-implicit", FrameRate: 60, LogLevel: "info",
		Launch: LaunchConfig{Angle: 45, Speed: 30, Height: 30, AirResistance: true},
	},
	"vacuum": {
		Projectile: "cannonball", Integrator: "semi-implicit", FrameRate: 60, LogLevel: "info",
		Launch: LaunchConfig{Angle: 45, Speed: 20, Height: 0},
	},
	"drop": {
		Projectile: "cannonball", Integrator: "semi-implicit", FrameRate: 60, LogLevel: "info",
		Launch: LaunchConfig{Angle: 0, Speed: 0, Height: 20},
	},
	"moonshot": {
		Projectile: "golfball", Integrator: "semi-implicit", FrameRate: 60, LogLevel: "info",
		Launch: LaunchConfig{Angle: 90, Speed: 30, Height: 0, AirResistance: true, SlowMotion: true},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
