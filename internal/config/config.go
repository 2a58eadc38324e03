package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-stretch/dsp/core"
	"github.com/cwbudde/algo-stretch/internal/host"
)

// EnvPrefix is prepended to environment overrides, e.g.
// STRETCHPEDAL_STRETCH_FACTOR=2.
const EnvPrefix = "STRETCHPEDAL"

type Config struct {
	Audio    AudioConfig    `mapstructure:"audio" yaml:"audio"`
	Stretch  StretchConfig  `mapstructure:"stretch" yaml:"stretch"`
	Playback PlaybackConfig `mapstructure:"playback" yaml:"playback"`
	Control  ControlConfig  `mapstructure:"control" yaml:"control"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

type AudioConfig struct {
	SampleRate int `mapstructure:"sample_rate" yaml:"sample_rate"`
	BlockSize  int `mapstructure:"block_size" yaml:"block_size"`
}

type StretchConfig struct {
	Factor float64 `mapstructure:"factor" yaml:"factor"`
	Wrap   bool    `mapstructure:"wrap" yaml:"wrap"`
	Seed   uint32  `mapstructure:"seed" yaml:"seed"`
}

type PlaybackConfig struct {
	Policy string `mapstructure:"policy" yaml:"policy"`
}

type ControlConfig struct {
	Listen string `mapstructure:"listen" yaml:"listen"`
}

type LogConfig struct {
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	JSON       bool   `mapstructure:"json" yaml:"json"`
}

// Default returns the pedal's built-in configuration.
func Default() *Config {
	pc := core.DefaultProcessorConfig()
	return &Config{
		Audio: AudioConfig{
			SampleRate: pc.SampleRate,
			BlockSize:  pc.BlockSize,
		},
		Stretch: StretchConfig{
			Factor: pc.Stretch,
			Wrap:   pc.Wrap,
		},
		Playback: PlaybackConfig{Policy: host.PlaybackPassthrough.String()},
		Control:  ControlConfig{Listen: "127.0.0.1:8077"},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.block_size", d.Audio.BlockSize)
	v.SetDefault("stretch.factor", d.Stretch.Factor)
	v.SetDefault("stretch.wrap", d.Stretch.Wrap)
	v.SetDefault("stretch.seed", d.Stretch.Seed)
	v.SetDefault("playback.policy", d.Playback.Policy)
	v.SetDefault("control.listen", d.Control.Listen)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.json", d.Log.JSON)
}

// Load reads configFile on top of the defaults and applies environment
// overrides. An empty configFile loads defaults and environment only; a
// named file that does not exist is an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks every field the pedal depends on.
func (c *Config) Validate() error {
	if err := c.ProcessorConfig().Validate(); err != nil {
		return err
	}
	if _, err := host.ParsePlaybackPolicy(c.Playback.Policy); err != nil {
		return fmt.Errorf("playback.policy: %w", err)
	}
	if c.Log.File != "" && c.Log.MaxSizeMB <= 0 {
		return errors.New("log.max_size_mb must be > 0 when log.file is set")
	}
	return nil
}

// ProcessorConfig converts the audio and stretch sections.
func (c *Config) ProcessorConfig() core.ProcessorConfig {
	return core.ProcessorConfig{
		SampleRate: c.Audio.SampleRate,
		BlockSize:  c.Audio.BlockSize,
		Stretch:    c.Stretch.Factor,
		Wrap:       c.Stretch.Wrap,
	}
}

// PlaybackPolicy returns the parsed playback policy.
func (c *Config) PlaybackPolicy() host.PlaybackPolicy {
	p, err := host.ParsePlaybackPolicy(c.Playback.Policy)
	if err != nil {
		return host.PlaybackPassthrough
	}
	return p
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("error marshaling config: %w", err)
	}
	return out, nil
}

// WriteFile writes c as YAML to path, refusing to overwrite unless force is set.
func (c *Config) WriteFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}
	out, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("error writing config file %s: %w", path, err)
	}
	return nil
}
