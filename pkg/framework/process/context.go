// Package process provides the per-block audio processing context: channel
// views over host buffers, block-sized scratch storage and the MIDI
// messages delivered for the block.
package process

import (
	"unsafe"

	"github.com/justyntemme/lv2go/pkg/framework/param"
	"github.com/justyntemme/lv2go/pkg/midi"
)

// Context provides a clean API for audio processing with zero allocations.
// Input and Output always have one entry per declared channel; channels the
// host left unconnected read silence and write to scratch storage.
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	numSamples   int
	maxBlockSize int

	// Pre-allocated block storage
	silence    []float32
	scratch    [][]float32
	workBuffer []float32
	tempBuffer []float32

	params  *param.Registry
	midi    *midi.BlockQueue
	midiOut func(msg midi.Message) bool
}

// NewContext creates a new process context with pre-allocated buffers
func NewContext(numInputs, numOutputs, maxBlockSize int, params *param.Registry) *Context {
	if maxBlockSize < 1 {
		maxBlockSize = 1
	}
	c := &Context{
		Input:   make([][]float32, numInputs),
		Output:  make([][]float32, numOutputs),
		scratch: make([][]float32, numOutputs),
		params:  params,
		midi:    midi.NewBlockQueue(midi.DefaultBlockQueueCapacity),
	}
	c.allocate(maxBlockSize)
	return c
}

func (c *Context) allocate(size int) {
	c.maxBlockSize = size
	c.silence = make([]float32, size)
	c.workBuffer = make([]float32, size)
	c.tempBuffer = make([]float32, size)
	for i := range c.scratch {
		c.scratch[i] = make([]float32, size)
	}
}

// MaxBlockSize returns the capacity of the block storage.
func (c *Context) MaxBlockSize() int {
	return c.maxBlockSize
}

// EnsureCapacity grows the block storage to hold size samples. It reports
// whether it had to allocate. Growing happens on the audio thread and is
// only expected when a host exceeds its declared maximum block length.
func (c *Context) EnsureCapacity(size int) bool {
	if size <= c.maxBlockSize {
		return false
	}
	c.allocate(size)
	return true
}

// Begin starts a new block of n samples: it clears the MIDI queue and
// detaches all channels.
func (c *Context) Begin(n int) {
	c.numSamples = n
	c.midi.Reset()
	for i := range c.Input {
		c.Input[i] = c.silence[:n]
	}
	for i := range c.Output {
		c.Output[i] = c.scratch[i][:n]
	}
}

// BindInput points input channel ch at a host buffer. A nil buffer reads
// as silence.
func (c *Context) BindInput(ch int, data unsafe.Pointer) {
	if ch < 0 || ch >= len(c.Input) {
		return
	}
	if data == nil {
		c.Input[ch] = c.silence[:c.numSamples]
		return
	}
	c.Input[ch] = unsafe.Slice((*float32)(data), c.numSamples)
}

// BindOutput points output channel ch at a host buffer. A nil buffer
// writes to scratch storage that the host never sees.
func (c *Context) BindOutput(ch int, data unsafe.Pointer) {
	if ch < 0 || ch >= len(c.Output) {
		return
	}
	if data == nil {
		c.Output[ch] = c.scratch[ch][:c.numSamples]
		return
	}
	c.Output[ch] = unsafe.Slice((*float32)(data), c.numSamples)
}

// Param returns the current plain value of a parameter
func (c *Context) Param(index int) float64 {
	if p := c.params.GetByIndex(index); p != nil {
		return p.GetValue()
	}
	return 0
}

// Params returns the parameter registry
func (c *Context) Params() *param.Registry {
	return c.params
}

// PushMIDI queues a MIDI message for this block. It returns false when the
// block queue is full.
func (c *Context) PushMIDI(msg midi.Message) bool {
	return c.midi.Push(msg)
}

// MIDI returns the MIDI messages delivered for this block in offset order.
func (c *Context) MIDI() []midi.Message {
	return c.midi.Messages()
}

// SetMIDIOutput installs the sink used by SendMIDI.
func (c *Context) SetMIDIOutput(fn func(msg midi.Message) bool) {
	c.midiOut = fn
}

// SendMIDI emits a MIDI message to the host at msg.Offset. It returns false
// when no output is connected or the output is full.
func (c *Context) SendMIDI(msg midi.Message) bool {
	if c.midiOut == nil {
		return false
	}
	return c.midiOut(msg)
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	return c.numSamples
}

// NumInputChannels returns the number of input channels
func (c *Context) NumInputChannels() int {
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// WorkBuffer returns a slice of the pre-allocated work buffer
// sized to the current block size - no allocation!
func (c *Context) WorkBuffer() []float32 {
	return c.workBuffer[:c.numSamples]
}

// TempBuffer returns a slice of the pre-allocated temp buffer
// sized to the current block size - no allocation!
func (c *Context) TempBuffer() []float32 {
	return c.tempBuffer[:c.numSamples]
}

// PassThrough copies input to output (for bypass)
func (c *Context) PassThrough() {
	numChannels := c.GetNumChannels()
	for ch := 0; ch < numChannels; ch++ {
		copy(c.Output[ch], c.Input[ch])
	}
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	for ch := range c.Output {
		clear(c.Output[ch])
	}
}
