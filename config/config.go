package config

import (
	"errors"
	"fmt"
	"time"

	"santorini/meta"
	"santorini/player"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string         `mapstructure:"log_level" yaml:"log_level" env:"SANTORINI_LOG_LEVEL"`
	Guard    GuardConfig    `mapstructure:"guard" yaml:"guard" envPrefix:"SANTORINI_GUARD_"`
	Observer ObserverConfig `mapstructure:"observer" yaml:"observer" envPrefix:"SANTORINI_OBSERVER_"`
	Series   SeriesConfig   `mapstructure:"series" yaml:"series" envPrefix:"SANTORINI_SERIES_"`
	Players  []player.Spec  `mapstructure:"players" yaml:"players"`
}

type GuardConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" env:"TIMEOUT"`
}

type ObserverConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" env:"TIMEOUT"`
}

type SeriesConfig struct {
	Games int `mapstructure:"games" yaml:"games" env:"GAMES"`
}

// Default returns a configuration for a series between a tree player and a random player.
func Default() Config {
	return Config{
		LogLevel: meta.LOG_LEVEL,
		Guard:    GuardConfig{Timeout: meta.GUARD_TIMEOUT},
		Observer: ObserverConfig{Timeout: meta.OBSERVER_TIMEOUT},
		Series:   SeriesConfig{Games: meta.SERIES_GAMES},
		Players: []player.Spec{
			{Kind: "tree", Name: "alice", Depth: meta.TREE_DEPTH},
			{Kind: "random", Name: "bob", Seed: 1},
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		// A players list in the file replaces the default players rather than merging into them.
		if v.IsSet("players") {
			cfg.Players = nil
		}
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Guard.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("guard timeout must be positive, got %v", c.Guard.Timeout))
	}
	if c.Observer.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("observer timeout must be positive, got %v", c.Observer.Timeout))
	}
	if c.Series.Games <= 0 {
		errs = append(errs, fmt.Errorf("series needs at least one game, got %d", c.Series.Games))
	}
	if len(c.Players) != 2 {
		errs = append(errs, fmt.Errorf("exactly two players required, got %d", len(c.Players)))
	}
	for i, p := range c.Players {
		if p.Kind == "" || p.Name == "" {
			errs = append(errs, fmt.Errorf("player %d needs a kind and a name", i))
		}
	}
	return errors.Join(errs...)
}

// YAML renders the effective configuration.
func (c Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(out), nil
}
