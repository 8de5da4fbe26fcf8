// Package plugin provides the plugin description (YAML config, metadata,
// parameters, I/O layouts) and base processor functionality to reduce
// boilerplate in LV2 plugins.
package plugin

import (
	"sync/atomic"

	"github.com/justyntemme/lv2go/pkg/framework/param"
	"github.com/justyntemme/lv2go/pkg/framework/process"
)

// BaseProcessor provides common functionality for audio processors.
// Embedders supply ProcessAudio; MIDI is left in the block context.
type BaseProcessor struct {
	base         *Base
	sampleRate   float64
	maxBlockSize int
	active       atomic.Bool

	// Optional callbacks for customization
	onInitialize  func(sampleRate float64, maxBlockSize int) error
	onSetActive   func(active bool)
	onReset       func()
	onParamChange func(index int, source param.Source, sampleOffset int)
}

// NewBaseProcessor creates a new base processor for the given plugin
func NewBaseProcessor(base *Base) *BaseProcessor {
	return &BaseProcessor{base: base}
}

// Initialize implements the Processor interface
func (b *BaseProcessor) Initialize(sampleRate float64, maxBlockSize int) error {
	b.sampleRate = sampleRate
	b.maxBlockSize = maxBlockSize

	if b.onInitialize != nil {
		return b.onInitialize(sampleRate, maxBlockSize)
	}

	return nil
}

// SetActive implements the Processor interface
func (b *BaseProcessor) SetActive(active bool) {
	b.active.Store(active)
	if b.onSetActive != nil {
		b.onSetActive(active)
	}
}

// OnReset implements the Processor interface
func (b *BaseProcessor) OnReset() {
	if b.onReset != nil {
		b.onReset()
	}
}

// OnParamChange implements param.ChangeListener. It is called with the
// shared parameter lock held.
func (b *BaseProcessor) OnParamChange(index int, source param.Source, sampleOffset int) {
	if b.onParamChange != nil {
		b.onParamChange(index, source, sampleOffset)
	}
}

// Active reports whether the host has activated the processor
func (b *BaseProcessor) Active() bool {
	return b.active.Load()
}

// SampleRate returns the current sample rate
func (b *BaseProcessor) SampleRate() float64 {
	return b.sampleRate
}

// MaxBlockSize returns the block size negotiated at initialization
func (b *BaseProcessor) MaxBlockSize() int {
	return b.maxBlockSize
}

// Base returns the plugin description
func (b *BaseProcessor) Base() *Base {
	return b.base
}

// Parameters returns the parameter registry
func (b *BaseProcessor) Parameters() *param.Registry {
	return b.base.Parameters()
}

// HandleInitialize sets a callback for initialization
func (b *BaseProcessor) HandleInitialize(fn func(sampleRate float64, maxBlockSize int) error) {
	b.onInitialize = fn
}

// HandleSetActive sets a callback for activation/deactivation
func (b *BaseProcessor) HandleSetActive(fn func(active bool)) {
	b.onSetActive = fn
}

// HandleReset sets a callback for when the processor should reset its state
func (b *BaseProcessor) HandleReset(fn func()) {
	b.onReset = fn
}

// HandleParamChange sets a callback for parameter change notifications
func (b *BaseProcessor) HandleParamChange(fn func(index int, source param.Source, sampleOffset int)) {
	b.onParamChange = fn
}

// SimpleProcessor provides an even simpler base for basic effects
type SimpleProcessor struct {
	*BaseProcessor
	processFunc func(ctx *process.Context)
}

// NewSimpleProcessor creates a processor with just a process function
func NewSimpleProcessor(base *Base, processFunc func(ctx *process.Context)) *SimpleProcessor {
	return &SimpleProcessor{
		BaseProcessor: NewBaseProcessor(base),
		processFunc:   processFunc,
	}
}

// ProcessAudio implements the audio processing
func (s *SimpleProcessor) ProcessAudio(ctx *process.Context) {
	if s.processFunc != nil {
		s.processFunc(ctx)
	}
}
