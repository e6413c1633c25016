// Package config loads settings shared by the integral CLI and the tool
// server: defaults, an optional YAML file, INTEGRAL_* environment variables
// and command-line flags, in increasing priority.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/njchilds90/gointegral"
)

const EnvPrefix = "INTEGRAL"

// Output formats understood by the CLI.
const (
	OutputText  = "text"
	OutputLaTeX = "latex"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

type Config struct {
	LogLevel  string       `mapstructure:"log_level"`
	Mode      string       `mapstructure:"mode"`
	Output    string       `mapstructure:"output"`
	Constant  string       `mapstructure:"constant"`
	Precision int          `mapstructure:"precision"`
	Prompt    bool         `mapstructure:"prompt"`
	Server    ServerConfig `mapstructure:"server"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// New returns a viper instance carrying defaults and environment binding.
// Callers may bind flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("log_level", "warn")
	v.SetDefault("mode", gointegral.MultiTermScan.String())
	v.SetDefault("output", OutputText)
	v.SetDefault("constant", gointegral.DefaultConstant)
	v.SetDefault("precision", -1)
	v.SetDefault("prompt", true)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.max_body_bytes", 1<<20)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (if non-empty) into v and decodes the merged settings.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
		dc.DecodeHook = mapstructure.StringToTimeDurationHookFunc()
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := gointegral.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch strings.ToLower(c.Output) {
	case OutputText, OutputLaTeX, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output)
	}
	if strings.TrimSpace(c.Constant) == "" {
		return fmt.Errorf("config: constant marker cannot be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: server.max_body_bytes must be positive")
	}
	return nil
}

// Options converts the config into pipeline options.
func (c *Config) Options() []gointegral.Option {
	mode, _ := gointegral.ParseMode(c.Mode)
	return []gointegral.Option{
		gointegral.WithMode(mode),
		gointegral.WithFormat(gointegral.WithConstant(c.Constant), gointegral.WithPrecision(c.Precision)),
	}
}
