package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/integrators"
)

const (
	DefaultProjectile = "cannonball"
	DefaultAngle      = 45.0
	DefaultSpeed      = 20.0
	DefaultHeight     = 2.0
	DefaultFrameRate  = 60
	DefaultLogLevel   = "info"

	// EnvPrefix prefixes environment overrides, e.g. PROJSIM_LAUNCH_ANGLE.
	EnvPrefix = "PROJSIM"
)

type Config struct {
	Projectile string       `yaml:"projectile" mapstructure:"projectile"`
	Integrator string       `yaml:"integrator" mapstructure:"integrator"`
	FrameRate  int          `yaml:"frame_rate" mapstructure:"frame_rate"`
	LogLevel   string       `yaml:"log_level" mapstructure:"log_level"`
	Launch     LaunchConfig `yaml:"launch" mapstructure:"launch"`
}

type LaunchConfig struct {
	Angle         float64 `yaml:"angle" mapstructure:"angle"`
	Speed         float64 `yaml:"speed" mapstructure:"speed"`
	Height        float64 `yaml:"height" mapstructure:"height"`
	AirResistance bool    `yaml:"air_resistance" mapstructure:"air_resistance"`
	SlowMotion    bool    `yaml:"slow_motion" mapstructure:"slow_motion"`
}

func DefaultConfig() *Config {
	return &Config{
		Projectile: DefaultProjectile,
		Integrator: integrators.Default,
		FrameRate:  DefaultFrameRate,
		LogLevel:   DefaultLogLevel,
		Launch: LaunchConfig{
			Angle:         DefaultAngle,
			Speed:         DefaultSpeed,
			Height:        DefaultHeight,
			AirResistance: true,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("projectile", d.Projectile)
	v.SetDefault("integrator", d.Integrator)
	v.SetDefault("frame_rate", d.FrameRate)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("launch.angle", d.Launch.Angle)
	v.SetDefault("launch.speed", d.Launch.Speed)
	v.SetDefault("launch.height", d.Launch.Height)
	v.SetDefault("launch.air_resistance", d.Launch.AirResistance)
	v.SetDefault("launch.slow_motion", d.Launch.SlowMotion)
}

// Load layers defaults, the YAML file at path (skipped when path is empty)
// and PROJSIM_* environment variables, in increasing priority.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
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

func (c *Config) Validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("config: frame_rate must be positive, got %d", c.FrameRate)
	}
	if _, err := integrators.ByName(c.Integrator); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.LaunchParameters().Normalize(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) LaunchParameters() dynamo.LaunchParameters {
	return dynamo.LaunchParameters{
		AngleDegrees:   c.Launch.Angle,
		Speed:          c.Launch.Speed,
		PlatformHeight: c.Launch.Height,
		AirResistance:  c.Launch.AirResistance,
		SlowMotion:     c.Launch.SlowMotion,
	}
}
