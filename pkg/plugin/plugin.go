// Package plugin is the real-time bridge between an LV2 host and a Go audio
// processor. An Instance binds host port buffers, decodes the input event
// sequence into parameter changes and MIDI, keeps parameter state in sync
// with the delegate/UI thread and drives the processor once per block.
package plugin

import (
	"errors"
	"unsafe"

	fwplugin "github.com/justyntemme/lv2go/pkg/framework/plugin"
	"github.com/justyntemme/lv2go/pkg/framework/process"
	"github.com/justyntemme/lv2go/pkg/midi"
)

var (
	// ErrNoProcessor is returned when a plugin does not create a processor.
	ErrNoProcessor = errors.New("plugin created no processor")
	// ErrInvalidConfig is returned for unusable plugin descriptions.
	ErrInvalidConfig = fwplugin.ErrInvalidConfig
)

// Plugin is the main interface that users implement
type Plugin interface {
	// Config returns the plugin description
	Config() *fwplugin.Config

	// CreateProcessor creates a new instance of the audio processor
	CreateProcessor(base *fwplugin.Base) (Processor, error)
}

// Processor handles the actual audio processing.
//
// Processors that also implement param.ChangeListener are notified of
// every parameter change with the shared parameter lock held.
type Processor interface {
	// Initialize is called once when the instance is created
	Initialize(sampleRate float64, maxBlockSize int) error

	// ProcessAudio processes audio - ZERO ALLOCATIONS!
	ProcessAudio(ctx *process.Context)

	// SetActive is called when processing starts/stops
	SetActive(active bool)

	// OnReset is called after every activation
	OnReset()
}

// MIDIProcessor is an optional interface for processors that take MIDI
// synchronously as it is decoded. Returning false drops the message.
// Processors without it find the block's MIDI in process.Context.
type MIDIProcessor interface {
	ProcessMidiMsg(msg midi.Message) bool
}

// StateHandler is an optional interface for processors with state beyond
// their parameters. Both methods run on the delegate thread with the
// parameter lock held, so they must not call back into the instance.
type StateHandler interface {
	SaveCustomState() ([]byte, error)
	LoadCustomState(data []byte) error
}

// Handle is the host-facing lifecycle of a plugin instance.
type Handle interface {
	ConnectPort(port uint32, data unsafe.Pointer)
	Activate()
	Run(sampleCount uint32)
	Deactivate()
	Cleanup()
}

var _ Handle = (*Instance)(nil)
