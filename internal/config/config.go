package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/seedmix/internal/simulator"
	"github.com/lox/seedmix/internal/worldgen"
)

// Config represents the complete seedmix configuration
type Config struct {
	LogLevel string            `hcl:"log_level,optional"`
	Storage  *StorageConfig    `hcl:"storage,block"`
	Simulate *SimulationConfig `hcl:"simulate,block"`
}

// StorageConfig locates the secret document inside a world directory
type StorageConfig struct {
	DataDir  string `hcl:"data_dir,optional"`
	FileName string `hcl:"file_name,optional"`
}

// SimulationConfig contains defaults for the simulate command
type SimulationConfig struct {
	Events  int   `hcl:"events,optional"`
	Workers int   `hcl:"workers,optional"`
	Radius  int32 `hcl:"radius,optional"`
	MinY    int32 `hcl:"min_y,optional"`
	MaxY    int32 `hcl:"max_y,optional"`
}

// Default returns the default configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Storage == nil {
		c.Storage = &StorageConfig{}
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = worldgen.DefaultDataDir
	}
	if c.Storage.FileName == "" {
		c.Storage.FileName = worldgen.DefaultFileName
	}
	if c.Simulate == nil {
		c.Simulate = &SimulationConfig{}
	}
	if c.Simulate.Events == 0 {
		c.Simulate.Events = simulator.DefaultEvents
	}
	if c.Simulate.Workers == 0 {
		c.Simulate.Workers = simulator.DefaultWorkers
	}
	if c.Simulate.Radius == 0 {
		c.Simulate.Radius = simulator.DefaultRadius
	}
	if c.Simulate.MinY == 0 && c.Simulate.MaxY == 0 {
		c.Simulate.MinY = simulator.DefaultMinY
		c.Simulate.MaxY = simulator.DefaultMaxY
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if strings.ContainsAny(c.Storage.FileName, `/\`) {
		return fmt.Errorf("storage file_name must be a bare file name, got %q", c.Storage.FileName)
	}
	if c.Simulate.Events < 0 {
		return fmt.Errorf("simulate events must not be negative: %d", c.Simulate.Events)
	}
	if c.Simulate.Workers < 0 {
		return fmt.Errorf("simulate workers must not be negative: %d", c.Simulate.Workers)
	}
	if c.Simulate.Radius < 0 {
		return fmt.Errorf("simulate radius must not be negative: %d", c.Simulate.Radius)
	}
	if c.Simulate.MinY > c.Simulate.MaxY {
		return fmt.Errorf("simulate min_y (%d) must not exceed max_y (%d)", c.Simulate.MinY, c.Simulate.MaxY)
	}
	return nil
}

// Layout returns the secret document layout
func (c *Config) Layout() worldgen.Layout {
	return worldgen.Layout{DataDir: c.Storage.DataDir, FileName: c.Storage.FileName}
}

// Level returns the configured log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
