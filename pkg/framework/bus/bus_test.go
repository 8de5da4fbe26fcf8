package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStereoConfiguration(t *testing.T) {
	c := NewStereoConfiguration()

	assert.Equal(t, 2, c.TotalChannels(DirectionInput))
	assert.Equal(t, 2, c.TotalChannels(DirectionOutput))
	require.Len(t, c.Buses(DirectionInput), 1)
	assert.Equal(t, "Stereo In", c.Buses(DirectionInput)[0].Name)
}

func TestChannelConfiguration(t *testing.T) {
	synth, err := NewChannelConfiguration(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, synth.TotalChannels(DirectionInput))
	assert.Equal(t, 2, synth.TotalChannels(DirectionOutput))

	_, err = NewChannelConfiguration(0, 0)
	assert.Error(t, err)
}

func TestBuilderSidechain(t *testing.T) {
	c, err := NewBuilder().
		WithStereoInput("Main In").
		WithAuxInput("Sidechain", 2).
		WithStereoOutput("Main Out").
		Build()
	require.NoError(t, err)

	assert.Equal(t, 4, c.TotalChannels(DirectionInput))
	buses := c.Buses(DirectionInput)
	require.Len(t, buses, 2)
	assert.Equal(t, TypeAux, buses[1].BusType)
}

func TestBuilderValidation(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
	}{
		{"empty", NewBuilder()},
		{"zero channels", NewBuilder().WithAudioOutput("Out", 0)},
		{"too many channels", NewBuilder().WithAudioOutput("Out", 33)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			assert.Error(t, err)
		})
	}

	assert.Panics(t, func() { NewBuilder().MustBuild() })
}

func TestMaxChannels(t *testing.T) {
	mono := NewMonoConfiguration()
	stereo := NewStereoConfiguration()
	quadOut, err := NewChannelConfiguration(1, 4)
	require.NoError(t, err)

	configs := []*Configuration{mono, stereo, quadOut}
	assert.Equal(t, 2, MaxChannels(configs, DirectionInput))
	assert.Equal(t, 4, MaxChannels(configs, DirectionOutput))
	assert.Equal(t, 0, MaxChannels(nil, DirectionOutput))
}
