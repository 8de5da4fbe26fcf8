package plugin

import (
	"sync/atomic"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/justyntemme/lv2go/pkg/framework/param"
	"github.com/justyntemme/lv2go/pkg/framework/process"
)

func TestLayoutResolve(t *testing.T) {
	l := Layout{Inputs: 2, Outputs: 2, Controls: 3}
	assert.Equal(t, 9, l.Count())
	assert.Equal(t, 6, l.ControlOffset())

	tests := []struct {
		port  uint32
		kind  PortKind
		index int
	}{
		{0, PortEvents, 0},
		{1, PortEvents, 1},
		{2, PortAudioIn, 0},
		{3, PortAudioIn, 1},
		{4, PortAudioOut, 0},
		{5, PortAudioOut, 1},
		{6, PortControl, 0},
		{8, PortControl, 2},
		{9, PortInvalid, 0},
		{1 << 31, PortInvalid, 0},
	}
	for _, tt := range tests {
		kind, index := l.Resolve(tt.port)
		assert.Equal(t, tt.kind, kind, "port %d", tt.port)
		assert.Equal(t, tt.index, index, "port %d", tt.port)
	}
}

func TestPortBindIdempotent(t *testing.T) {
	l := Layout{Inputs: 1, Outputs: 1, Controls: 1}
	buf := make([]float32, 4)
	p := unsafe.Pointer(&buf[0])

	once := newPortTable(l)
	twice := newPortTable(l)
	for port := uint32(0); port < uint32(l.Count()); port++ {
		assert.True(t, once.bind(port, p))
		twice.bind(port, p)
		twice.bind(port, p)
	}
	assert.Equal(t, once, twice)

	assert.False(t, once.bind(uint32(l.Count()), p))
	assert.True(t, once.bind(2, nil))
	assert.Nil(t, once.audioIn[0])

	once.release()
	assert.Nil(t, once.events[PortEventsIn])
	assert.Nil(t, once.control[0])
}

func TestBlockSizeGuard(t *testing.T) {
	h := newHost(t)
	ctx := process.NewContext(2, 2, 128, param.NewRegistry())
	var growths atomic.Uint64
	g := blockSizeGuard{ctx: ctx, max: 128, growths: &growths, log: h.logger()}

	assert.False(t, g.ensureCapacity(128))
	assert.True(t, g.ensureCapacity(256))
	assert.Equal(t, 256, g.max)
	assert.GreaterOrEqual(t, ctx.MaxBlockSize(), 256)
	assert.False(t, g.ensureCapacity(200))
	assert.Equal(t, 256, g.max)
	assert.Equal(t, 200, g.last)
	assert.True(t, g.ensureCapacity(512))
	assert.Equal(t, uint64(2), growths.Load())

	// Nothing is logged from the audio thread; report warns once.
	assert.Zero(t, countLines(h.logs.String(), "announced maximum"))
	g.report()
	g.report()
	assert.Equal(t, 1, countLines(h.logs.String(), "announced maximum"))
	assert.Contains(t, h.logs.String(), "block of 256 samples, above the announced maximum of 128")
}
