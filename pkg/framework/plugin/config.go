package plugin

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/justyntemme/lv2go/pkg/framework/bus"
	"github.com/justyntemme/lv2go/pkg/framework/param"
)

// DefaultBlockSize is used when the host does not announce a maximum block
// length.
const DefaultBlockSize = 1024

// ErrInvalidConfig is returned for plugin descriptions that cannot be used.
var ErrInvalidConfig = errors.New("invalid plugin config")

// IOConfig is one supported channel layout.
type IOConfig struct {
	Inputs  int32 `yaml:"inputs"`
	Outputs int32 `yaml:"outputs"`
}

// ParameterConfig describes one parameter. Ordinals follow list order.
type ParameterConfig struct {
	Name     string  `yaml:"name"`
	Short    string  `yaml:"short"`
	Unit     string  `yaml:"unit"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Default  float64 `yaml:"default"`
	Steps    int32   `yaml:"steps"`
	Toggle   bool    `yaml:"toggle"`
	Bypass   bool    `yaml:"bypass"`
	ReadOnly bool    `yaml:"readOnly"`
}

// Config is the YAML plugin description.
type Config struct {
	Plugin           Info              `yaml:"plugin"`
	IO               []IOConfig        `yaml:"io"`
	Parameters       []ParameterConfig `yaml:"parameters"`
	ControlPorts     bool              `yaml:"controlPorts"`
	DefaultBlockSize int               `yaml:"defaultBlockSize"`
}

// LoadConfig reads and validates a plugin description from path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plugin config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a plugin description, fills defaults and validates it.
// Unknown fields are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DefaultBlockSize == 0 {
		c.DefaultBlockSize = DefaultBlockSize
	}
	if len(c.IO) == 0 {
		c.IO = []IOConfig{{Inputs: 2, Outputs: 2}}
	}
	for i := range c.Parameters {
		p := &c.Parameters[i]
		if p.Toggle || p.Bypass {
			p.Min, p.Max, p.Steps = 0, 1, 1
		}
		if p.Short == "" {
			p.Short = p.Name
		}
	}
}

// Validate checks the description for consistency.
func (c *Config) Validate() error {
	if err := c.Plugin.Validate(); err != nil {
		return err
	}
	if c.DefaultBlockSize < 1 {
		return fmt.Errorf("%w: defaultBlockSize must be positive", ErrInvalidConfig)
	}
	for i, io := range c.IO {
		if _, err := bus.NewChannelConfiguration(io.Inputs, io.Outputs); err != nil {
			return fmt.Errorf("%w: io[%d]: %v", ErrInvalidConfig, i, err)
		}
	}
	seen := make(map[string]bool, len(c.Parameters))
	for i, p := range c.Parameters {
		if p.Name == "" {
			return fmt.Errorf("%w: parameters[%d]: name is empty", ErrInvalidConfig, i)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: parameters[%d]: duplicate name %q", ErrInvalidConfig, i, p.Name)
		}
		seen[p.Name] = true
		if p.Max < p.Min {
			return fmt.Errorf("%w: parameter %q: max %g below min %g", ErrInvalidConfig, p.Name, p.Max, p.Min)
		}
		if p.Default < p.Min || p.Default > p.Max {
			return fmt.Errorf("%w: parameter %q: default %g outside [%g, %g]", ErrInvalidConfig, p.Name, p.Default, p.Min, p.Max)
		}
	}
	return nil
}

// IOConfigurations builds the bus configuration for every I/O entry.
func (c *Config) IOConfigurations() ([]*bus.Configuration, error) {
	configs := make([]*bus.Configuration, 0, len(c.IO))
	for i, io := range c.IO {
		cfg, err := bus.NewChannelConfiguration(io.Inputs, io.Outputs)
		if err != nil {
			return nil, fmt.Errorf("%w: io[%d]: %v", ErrInvalidConfig, i, err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// BuildRegistry creates a registry holding the described parameters at
// their default values.
func (c *Config) BuildRegistry() *param.Registry {
	registry := param.NewRegistry()
	for _, pc := range c.Parameters {
		b := param.New(pc.Name).
			ShortName(pc.Short).
			Unit(pc.Unit)
		switch {
		case pc.Bypass:
			b = b.Bypass()
		case pc.Toggle:
			b = b.Toggle()
		default:
			b = b.Range(pc.Min, pc.Max).Steps(pc.Steps)
		}
		b = b.Default(pc.Default)
		if pc.ReadOnly {
			b = b.ReadOnly()
		}
		registry.Add(b.Build())
	}
	return registry
}
