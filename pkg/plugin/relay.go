package plugin

import (
	"sync/atomic"

	"github.com/justyntemme/lv2go/pkg/framework/process"
	"github.com/justyntemme/lv2go/pkg/midi"
)

// relay hands decoded MIDI to the processor. Processors without a MIDI
// intake get the message queued in the block context.
type relay struct {
	proc    MIDIProcessor
	ctx     *process.Context
	dropped *atomic.Uint64
}

// send delivers msg. Rejected messages are counted and never retried.
func (r *relay) send(msg midi.Message) bool {
	var ok bool
	if r.proc != nil {
		ok = r.proc.ProcessMidiMsg(msg)
	} else {
		ok = r.ctx.PushMIDI(msg)
	}
	if !ok {
		r.dropped.Add(1)
	}
	return ok
}
