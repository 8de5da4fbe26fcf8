// Package bus describes the audio I/O configurations a plugin offers. Each
// configuration becomes one plugin descriptor; ports are laid out from the
// largest channel counts across all configurations.
package bus

// Direction represents the bus direction
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput Direction = 0
	// DirectionOutput represents output bus
	DirectionOutput Direction = 1
)

// Type represents the bus type
type Type int32

const (
	// TypeMain represents main bus
	TypeMain Type = 0
	// TypeAux represents auxiliary bus
	TypeAux Type = 1
)

// Info contains bus configuration
type Info struct {
	Direction    Direction
	ChannelCount int32
	Name         string
	BusType      Type
}

// Configuration is one audio I/O configuration.
type Configuration struct {
	audioBuses []Info
}

// NewStereoConfiguration creates a standard stereo I/O configuration
func NewStereoConfiguration() *Configuration {
	return NewBuilder().WithStereoInput("Stereo In").WithStereoOutput("Stereo Out").MustBuild()
}

// NewMonoConfiguration creates a mono I/O configuration
func NewMonoConfiguration() *Configuration {
	return NewBuilder().WithMonoInput("Mono In").WithMonoOutput("Mono Out").MustBuild()
}

// NewChannelConfiguration creates a configuration with a single main bus
// per direction. A zero count omits that bus.
func NewChannelConfiguration(inputs, outputs int32) (*Configuration, error) {
	b := NewBuilder()
	if inputs > 0 {
		b.WithAudioInput("Input", inputs)
	}
	if outputs > 0 {
		b.WithAudioOutput("Output", outputs)
	}
	return b.Build()
}

// Buses returns the buses for a direction in declaration order.
func (c *Configuration) Buses(direction Direction) []Info {
	var buses []Info
	for _, bus := range c.audioBuses {
		if bus.Direction == direction {
			buses = append(buses, bus)
		}
	}
	return buses
}

// TotalChannels returns the channel count summed over all buses of a
// direction.
func (c *Configuration) TotalChannels(direction Direction) int {
	total := 0
	for _, bus := range c.audioBuses {
		if bus.Direction == direction {
			total += int(bus.ChannelCount)
		}
	}
	return total
}

// MaxChannels returns the largest channel total for a direction across
// configurations.
func MaxChannels(configs []*Configuration, direction Direction) int {
	max := 0
	for _, c := range configs {
		if n := c.TotalChannels(direction); n > max {
			max = n
		}
	}
	return max
}
