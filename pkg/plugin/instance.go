package plugin

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/google/uuid"

	"github.com/justyntemme/lv2go/pkg/framework/debug"
	"github.com/justyntemme/lv2go/pkg/framework/param"
	fwplugin "github.com/justyntemme/lv2go/pkg/framework/plugin"
	"github.com/justyntemme/lv2go/pkg/framework/process"
	"github.com/justyntemme/lv2go/pkg/lv2"
	"github.com/justyntemme/lv2go/pkg/lv2/atom"
	"github.com/justyntemme/lv2go/pkg/midi"
)

// Stats counts what an instance had to drop or repair while running.
type Stats struct {
	Blocks      uint64 // blocks run
	Dropped     uint64 // input events that were not understood
	MidiDropped uint64 // MIDI messages the processor rejected
	Growths     uint64 // blocks larger than the announced maximum
}

// InstanceOption configures an Instance.
type InstanceOption func(*Instance)

// WithLogger sets the logger of an instance.
func WithLogger(l *debug.Logger) InstanceOption {
	return func(in *Instance) {
		in.log = l
	}
}

// Instance is one running plugin: the host calls ConnectPort, Activate,
// Run, Deactivate and Cleanup on the audio side while the delegate API
// (Parameter, SetParameter, SaveState, RestoreState) is used from another
// thread.
type Instance struct {
	id     uuid.UUID
	log    *debug.Logger
	base   *fwplugin.Base
	proc   Processor
	params *param.Registry

	layout     Layout
	ports      *portTable
	lastCtl    []float32
	urids      atom.URIDs
	ids        *IdentifierMap
	ctx        *process.Context
	guard      blockSizeGuard
	demux      *Demux
	updater    updater
	relay      relay
	out        *atom.Appender
	outClaimed bool

	firstActivate bool
	cleaned       bool

	blocks      atomic.Uint64
	dropped     atomic.Uint64
	midiDropped atomic.Uint64
	growths     atomic.Uint64
}

// Instantiate creates an instance of p for the given sample rate and host
// features.
func Instantiate(p Plugin, sampleRate float64, features []lv2.Feature, opts ...InstanceOption) (*Instance, error) {
	base, err := fwplugin.NewBase(p.Config())
	if err != nil {
		return nil, fmt.Errorf("instantiate: %w", err)
	}
	proc, err := p.CreateProcessor(base)
	if err != nil {
		return nil, fmt.Errorf("create processor: %w", err)
	}
	return NewInstance(base, proc, sampleRate, features, opts...)
}

// NewInstance wires proc to the host. Feature negotiation and identifier
// mapping happen here, once.
func NewInstance(base *fwplugin.Base, proc Processor, sampleRate float64, features []lv2.Feature, opts ...InstanceOption) (*Instance, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: nil base", ErrInvalidConfig)
	}
	if proc == nil {
		return nil, ErrNoProcessor
	}

	in := &Instance{
		id:            uuid.New(),
		base:          base,
		proc:          proc,
		params:        base.Parameters(),
		firstActivate: true,
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.log == nil {
		in.log = debug.Default()
	}
	in.log = in.log.With("instance", in.id.String())

	caps := negotiate(features)
	blockSize := caps.blockSize(base.DefaultBlockSize)

	count := in.params.Count()
	in.layout = Layout{Inputs: base.MaxInputs(), Outputs: base.MaxOutputs()}
	if base.ControlPorts {
		in.layout.Controls = count
	}
	in.ports = newPortTable(in.layout)
	in.lastCtl = make([]float32, in.layout.Controls)
	for i := range in.lastCtl {
		in.lastCtl[i] = float32(math.NaN())
	}

	if caps.urids != nil {
		in.urids = atom.MapURIDs(caps.urids)
	} else {
		in.log.Warn("host provides no %s; patch messages and MIDI will be ignored", lv2.URIDMapURI)
	}
	in.ids = NewIdentifierMap(caps.urids, base.Info, count)

	in.ctx = process.NewContext(in.layout.Inputs, in.layout.Outputs, blockSize, in.params)
	in.ctx.SampleRate = sampleRate
	in.ctx.SetMIDIOutput(in.sendMIDI)
	in.guard = blockSizeGuard{ctx: in.ctx, max: blockSize, growths: &in.growths, log: in.log}
	in.demux = NewDemux(in.urids, in.ids)
	in.out = atom.NewAppender(in.urids)

	listener, _ := proc.(param.ChangeListener)
	in.updater = updater{params: in.params, listener: listener}
	midiProc, _ := proc.(MIDIProcessor)
	in.relay = relay{proc: midiProc, ctx: in.ctx, dropped: &in.midiDropped}
	if sh, ok := proc.(StateHandler); ok {
		base.State().SetCustomState(sh.SaveCustomState, sh.LoadCustomState)
	}

	if err := proc.Initialize(sampleRate, blockSize); err != nil {
		return nil, fmt.Errorf("initialize processor: %w", err)
	}

	in.log.Info("instantiated %s at %.0f Hz: block size %d, %d params, %d ports",
		base.Info.URI, sampleRate, blockSize, count, in.layout.Count())
	return in, nil
}

// ID returns the instance id used in log output.
func (in *Instance) ID() uuid.UUID {
	return in.id
}

// Layout returns the port layout.
func (in *Instance) Layout() Layout {
	return in.layout
}

// MaxBlockSize returns the current block capacity.
func (in *Instance) MaxBlockSize() int {
	return in.guard.max
}

// IdentifierMap returns the parameter identifier map.
func (in *Instance) IdentifierMap() *IdentifierMap {
	return in.ids
}

// Stats returns a snapshot of the instance counters. It is called off the
// audio thread and reports a pending block size warning.
func (in *Instance) Stats() Stats {
	in.guard.report()
	return Stats{
		Blocks:      in.blocks.Load(),
		Dropped:     in.dropped.Load(),
		MidiDropped: in.midiDropped.Load(),
		Growths:     in.growths.Load(),
	}
}

// ConnectPort binds a host buffer to a port. The host calls it only while
// Run is not executing. Out of range ports are ignored.
func (in *Instance) ConnectPort(port uint32, data unsafe.Pointer) {
	if in.cleaned {
		return
	}
	in.ports.bind(port, data)
}

// Activate prepares the processor for running. The first activation sends
// every parameter to the processor once.
func (in *Instance) Activate() {
	if in.cleaned {
		return
	}
	if in.firstActivate {
		in.firstActivate = false
		in.params.Lock()
		for i := 0; i < in.params.Count(); i++ {
			in.updater.notify(i, param.SourceReset, -1)
		}
		in.params.Unlock()
	}
	in.proc.SetActive(true)
	in.proc.OnReset()
	in.log.Debug("activated")
}

// Deactivate tells the processor that processing stopped.
func (in *Instance) Deactivate() {
	if in.cleaned {
		return
	}
	in.proc.SetActive(false)
	in.guard.report()
	in.log.Debug("deactivated")
}

// Cleanup releases the port bindings and the processor. Later calls on the
// instance are ignored.
func (in *Instance) Cleanup() {
	if in.cleaned {
		return
	}
	in.cleaned = true
	in.guard.report()
	in.ports.release()
	in.params.Lock()
	in.updater.listener = nil
	in.base.State().SetCustomState(nil, nil)
	in.params.Unlock()
	in.relay.proc = nil
	in.proc = nil
	in.log.Debug("cleaned up")
}

// Run processes one block of n samples. Input events are applied as of
// the start of the block; nothing aborts a block once started.
func (in *Instance) Run(n uint32) {
	if in.cleaned {
		return
	}
	size := int(n)
	in.blocks.Add(1)
	in.guard.ensureCapacity(size)

	in.ctx.Begin(size)
	for ch, p := range in.ports.audioIn {
		in.ctx.BindInput(ch, p)
	}
	for ch, p := range in.ports.audioOut {
		in.ctx.BindOutput(ch, p)
	}
	in.outClaimed = in.out.Reset(atom.FromPointer(in.ports.events[PortEventsOut]))

	in.dispatchEvents(size)
	in.syncControls()

	in.proc.ProcessAudio(in.ctx)
	in.publishControls()
}

func (in *Instance) dispatchEvents(n int) {
	if !in.demux.Reset(atom.FromPointer(in.ports.events[PortEventsIn]), n) {
		return
	}
	for in.demux.Next() {
		ev := in.demux.Event()
		switch ev.Kind {
		case EventParameterSet:
			in.updater.apply(ev.Param.Ordinal, ev.Param.Value, param.SourceHost, int(ev.Offset))
		case EventMIDI:
			in.relay.send(ev.MIDI)
		default:
			in.dropped.Add(1)
		}
	}
	if in.demux.Truncated() {
		in.dropped.Add(1)
	}
}

// syncControls applies control port values that moved since the last
// block. A port that did not move leaves delegate changes alone.
func (in *Instance) syncControls() {
	for i, p := range in.ports.control {
		if p == nil || in.params.GetByIndex(i).ReadOnly() {
			continue
		}
		v := *(*float32)(p)
		if v == in.lastCtl[i] {
			continue
		}
		in.lastCtl[i] = v
		in.updater.apply(i, float64(v), param.SourceHost, 0)
	}
}

// publishControls writes read-only parameters to their control ports so
// the host sees what the processor reported.
func (in *Instance) publishControls() {
	for i, p := range in.ports.control {
		if p == nil {
			continue
		}
		if prm := in.params.GetByIndex(i); prm.ReadOnly() {
			*(*float32)(p) = float32(prm.GetValue())
		}
	}
}

func (in *Instance) sendMIDI(msg midi.Message) bool {
	if !in.outClaimed {
		return false
	}
	offset := max(msg.Offset, 0)
	if n := int32(in.ctx.NumSamples()); n > 0 && offset >= n {
		offset = n - 1
	}
	return in.out.AppendMIDI(int64(offset), msg.Status, msg.Data1, msg.Data2)
}

// Parameter returns the value of parameter i, or 0 if there is none.
func (in *Instance) Parameter(i int) float64 {
	p := in.params.GetByIndex(i)
	if p == nil {
		return 0
	}
	in.params.Lock()
	defer in.params.Unlock()
	return p.GetValue()
}

// SetParameter sets parameter i from the delegate/UI thread. It reports
// whether the stored value changed.
func (in *Instance) SetParameter(i int, value float64) bool {
	return in.updater.apply(i, value, param.SourceDelegate, -1)
}

// SaveState writes the parameter state, plus custom state from a
// StateHandler processor, to w.
func (in *Instance) SaveState(w io.Writer) error {
	data, err := in.StateBytes()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// StateBytes returns the state SaveState writes. The snapshot is taken and
// encoded under the parameter lock.
func (in *Instance) StateBytes() ([]byte, error) {
	var buf bytes.Buffer
	in.params.Lock()
	err := in.base.State().Save(&buf)
	in.params.Unlock()
	if err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	return buf.Bytes(), nil
}

// RestoreState reads state written by SaveState and applies it under the
// parameter lock. Every parameter that changes is reported to the
// processor; read-only parameters are left alone.
func (in *Instance) RestoreState(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("restore state: %w", err)
	}

	in.params.Lock()
	defer in.params.Unlock()
	if err := in.base.State().Load(bytes.NewReader(data), func(i int) {
		in.updater.notify(i, param.SourceRecall, -1)
	}); err != nil {
		return fmt.Errorf("restore state: %w", err)
	}
	return nil
}
