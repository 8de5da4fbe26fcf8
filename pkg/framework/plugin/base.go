package plugin

import (
	"fmt"

	"github.com/justyntemme/lv2go/pkg/framework/bus"
	"github.com/justyntemme/lv2go/pkg/framework/param"
	"github.com/justyntemme/lv2go/pkg/framework/state"
)

// Base provides core functionality for all plugins: metadata, the
// parameter registry, the supported I/O layouts and state handling.
type Base struct {
	Info             Info
	IOConfigs        []*bus.Configuration
	ControlPorts     bool
	DefaultBlockSize int

	params *param.Registry
	state  *state.Manager
}

// NewBase creates a plugin base from a validated description
func NewBase(cfg *Config) (*Base, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	configs, err := cfg.IOConfigurations()
	if err != nil {
		return nil, err
	}

	b := &Base{
		Info:             cfg.Plugin,
		IOConfigs:        configs,
		ControlPorts:     cfg.ControlPorts,
		DefaultBlockSize: cfg.DefaultBlockSize,
		params:           cfg.BuildRegistry(),
	}

	// Initialize state manager with parameter registry
	b.state = state.NewManager(b.Info.URI, b.params)

	return b, nil
}

// Parameters returns the parameter registry
func (b *Base) Parameters() *param.Registry {
	return b.params
}

// State returns the state manager
func (b *Base) State() *state.Manager {
	return b.state
}

// MaxInputs returns the largest input channel count across I/O layouts.
func (b *Base) MaxInputs() int {
	return bus.MaxChannels(b.IOConfigs, bus.DirectionInput)
}

// MaxOutputs returns the largest output channel count across I/O layouts.
func (b *Base) MaxOutputs() int {
	return bus.MaxChannels(b.IOConfigs, bus.DirectionOutput)
}
