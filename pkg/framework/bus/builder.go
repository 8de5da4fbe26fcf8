package bus

import (
	"errors"
	"fmt"
)

// maxBusChannels bounds a single bus.
const maxBusChannels = 32

// Builder provides a fluent API for creating bus configurations
type Builder struct {
	config *Configuration
}

// NewBuilder creates a new bus configuration builder
func NewBuilder() *Builder {
	return &Builder{
		config: &Configuration{},
	}
}

func (b *Builder) add(direction Direction, busType Type, name string, channels int32) *Builder {
	b.config.audioBuses = append(b.config.audioBuses, Info{
		Direction:    direction,
		ChannelCount: channels,
		Name:         name,
		BusType:      busType,
	})
	return b
}

// WithAudioInput adds a main audio input bus
func (b *Builder) WithAudioInput(name string, channels int32) *Builder {
	return b.add(DirectionInput, TypeMain, name, channels)
}

// WithAudioOutput adds a main audio output bus
func (b *Builder) WithAudioOutput(name string, channels int32) *Builder {
	return b.add(DirectionOutput, TypeMain, name, channels)
}

// WithAuxInput adds an auxiliary audio input bus
func (b *Builder) WithAuxInput(name string, channels int32) *Builder {
	return b.add(DirectionInput, TypeAux, name, channels)
}

// WithAuxOutput adds an auxiliary audio output bus
func (b *Builder) WithAuxOutput(name string, channels int32) *Builder {
	return b.add(DirectionOutput, TypeAux, name, channels)
}

// WithStereoInput adds a stereo input bus
func (b *Builder) WithStereoInput(name string) *Builder {
	return b.WithAudioInput(name, 2)
}

// WithStereoOutput adds a stereo output bus
func (b *Builder) WithStereoOutput(name string) *Builder {
	return b.WithAudioOutput(name, 2)
}

// WithMonoInput adds a mono input bus
func (b *Builder) WithMonoInput(name string) *Builder {
	return b.WithAudioInput(name, 1)
}

// WithMonoOutput adds a mono output bus
func (b *Builder) WithMonoOutput(name string) *Builder {
	return b.WithAudioOutput(name, 1)
}

// Validate checks the configuration
func (b *Builder) Validate() error {
	// Instruments and MIDI effects may have no audio input, and analyzers
	// no audio output, but a configuration with neither is useless.
	if len(b.config.audioBuses) == 0 {
		return errors.New("configuration must have at least one audio bus")
	}

	for _, bus := range b.config.audioBuses {
		if bus.ChannelCount <= 0 {
			return fmt.Errorf("invalid channel count %d for bus %s", bus.ChannelCount, bus.Name)
		}
		if bus.ChannelCount > maxBusChannels {
			return fmt.Errorf("channel count %d exceeds maximum of %d for bus %s", bus.ChannelCount, maxBusChannels, bus.Name)
		}
	}

	return nil
}

// Build returns the built configuration or an error
func (b *Builder) Build() (*Configuration, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b.config, nil
}

// MustBuild returns the built configuration or panics on error
func (b *Builder) MustBuild() *Configuration {
	config, err := b.Build()
	if err != nil {
		panic(err)
	}
	return config
}
