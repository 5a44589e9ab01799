// Package config loads the settings used to solve batches of machines.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/crillab/gophermachine/machine"
)

var validate = validator.New()

// Config holds the settings of a batch resolution.
type Config struct {
	// Strategy used to solve every machine of the batch.
	Strategy machine.Strategy `yaml:"strategy" validate:"lte=3"`
	// Workers is the number of machines solved in parallel.
	Workers int `yaml:"workers" validate:"gte=1,lte=256"`
	// MaxStates bounds the states visited by a search; 0 means no bound.
	MaxStates int `yaml:"max_states" validate:"gte=0"`
	// Verbose makes the integer solver print its progress.
	Verbose bool `yaml:"verbose"`
}

// Default returns the default configuration: counters strategy, one worker, unbounded searches.
func Default() Config {
	return Config{
		Strategy: machine.CountersStrategy,
		Workers:  1,
	}
}

// Parse reads a YAML configuration. Missing fields keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the YAML configuration stored in path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read configuration: %w", err)
	}
	return Parse(data)
}

// Validate returns an error if a field of c has an invalid value.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
