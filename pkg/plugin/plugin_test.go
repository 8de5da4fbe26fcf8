package plugin

import (
	"bytes"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/justyntemme/lv2go/pkg/framework/debug"
	"github.com/justyntemme/lv2go/pkg/framework/param"
	fwplugin "github.com/justyntemme/lv2go/pkg/framework/plugin"
	"github.com/justyntemme/lv2go/pkg/framework/process"
	"github.com/justyntemme/lv2go/pkg/lv2"
	"github.com/justyntemme/lv2go/pkg/lv2/atom"
	"github.com/justyntemme/lv2go/pkg/lv2/urid"
	"github.com/justyntemme/lv2go/pkg/midi"
)

const testURI = "http://example.com/plugins/test"

func testConfig(t *testing.T, controlPorts bool) *fwplugin.Config {
	t.Helper()
	cfg := &fwplugin.Config{
		Plugin:           fwplugin.Info{URI: testURI, Name: "Test"},
		IO:               []fwplugin.IOConfig{{Inputs: 2, Outputs: 2}, {Inputs: 1, Outputs: 1}},
		ControlPorts:     controlPorts,
		DefaultBlockSize: fwplugin.DefaultBlockSize,
		Parameters: []fwplugin.ParameterConfig{
			{Name: "Par0", Min: 0, Max: 1, Default: 0.5},
			{Name: "Par1", Min: 0, Max: 1, Default: 0.5},
		},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

type paramChange struct {
	index  int
	source param.Source
	offset int
}

// recorder is a processor that remembers everything the instance told it.
type recorder struct {
	mu          sync.Mutex
	changes     []paramChange
	midi        []midi.Message
	blocks      []int
	active      []bool
	resets      int
	rejectMIDI  bool
	sampleRate  float64
	blockSize   int
	sendOnBlock []midi.Message
	sent        []bool
}

func (r *recorder) Initialize(sampleRate float64, maxBlockSize int) error {
	r.sampleRate = sampleRate
	r.blockSize = maxBlockSize
	return nil
}

func (r *recorder) ProcessAudio(ctx *process.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks = append(r.blocks, ctx.NumSamples())
	for _, m := range r.sendOnBlock {
		r.sent = append(r.sent, ctx.SendMIDI(m))
	}
	ctx.CopyInputToOutput()
}

func (r *recorder) SetActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = append(r.active, active)
}

func (r *recorder) OnReset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets++
}

func (r *recorder) OnParamChange(index int, source param.Source, offset int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, paramChange{index, source, offset})
}

func (r *recorder) ProcessMidiMsg(msg midi.Message) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rejectMIDI {
		return false
	}
	r.midi = append(r.midi, msg)
	return true
}

func (r *recorder) changesFrom(source param.Source) []paramChange {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []paramChange
	for _, c := range r.changes {
		if c.source == source {
			out = append(out, c)
		}
	}
	return out
}

// audioOnly is a processor without MIDI intake or change notifications.
type audioOnly struct {
	midi []midi.Message
}

func (a *audioOnly) Initialize(float64, int) error { return nil }
func (a *audioOnly) SetActive(bool)                {}
func (a *audioOnly) OnReset()                      {}
func (a *audioOnly) ProcessAudio(ctx *process.Context) {
	a.midi = append(a.midi[:0], ctx.MIDI()...)
}

// host simulates the host side: URID map, features and port buffers.
type host struct {
	t      *testing.T
	urids  *urid.Table
	vocab  atom.URIDs
	events []byte
	out    []byte
	audio  [][]float32
	logs   bytes.Buffer
}

func newHost(t *testing.T) *host {
	h := &host{t: t, urids: urid.NewTable()}
	h.vocab = atom.MapURIDs(h.urids)
	h.events = make([]byte, 4096)
	h.out = make([]byte, 1024)
	return h
}

func (h *host) features(maxBlock int32) []lv2.Feature {
	features := h.urids.Features()
	if maxBlock > 0 {
		value := new(int32)
		*value = maxBlock
		features = append(features, lv2.Feature{
			URI: lv2.OptionsURI,
			Data: []lv2.Option{{
				Context: lv2.OptionInstance,
				Key:     h.urids.Map(lv2.BufSizeMaxBlockLength),
				Size:    4,
				Type:    h.urids.Map(lv2.AtomInt),
				Value:   unsafe.Pointer(value),
			}},
		})
	}
	return features
}

func (h *host) logger() *debug.Logger {
	l := debug.New(&h.logs, "test", 0)
	l.SetLevel(debug.LogLevelDebug)
	return l
}

func (h *host) param(n int) lv2.URID {
	return h.urids.Map(fwplugin.Info{URI: testURI}.ParameterKey(n))
}

// instantiate creates an instance with all ports connected.
func (h *host) instantiate(cfg *fwplugin.Config, proc Processor, maxBlock int32) *Instance {
	h.t.Helper()
	base, err := fwplugin.NewBase(cfg)
	require.NoError(h.t, err)
	in, err := NewInstance(base, proc, 48000, h.features(maxBlock), WithLogger(h.logger()))
	require.NoError(h.t, err)

	layout := in.Layout()
	h.audio = make([][]float32, layout.Inputs+layout.Outputs)
	for i := range h.audio {
		h.audio[i] = make([]float32, 4096)
	}
	in.ConnectPort(PortEventsIn, unsafe.Pointer(&h.events[0]))
	in.ConnectPort(PortEventsOut, unsafe.Pointer(&h.out[0]))
	for i := range h.audio {
		in.ConnectPort(uint32(eventPortCount+i), unsafe.Pointer(&h.audio[i][0]))
	}
	return in
}

// sequence writes the events produced by fill into the input port.
func (h *host) sequence(fill func(f *atom.Forge)) {
	h.t.Helper()
	f := atom.NewForge(h.vocab, h.events)
	f.BeginSequence()
	fill(f)
	_, err := f.End()
	require.NoError(h.t, err)
}

// claimOutput sets the capacity of the output port as a host does before
// every block.
func (h *host) claimOutput() {
	clear(h.out)
	*(*uint32)(unsafe.Pointer(&h.out[0])) = uint32(len(h.out) - atom.HeaderSize)
}

func (h *host) outputEvents() []atom.Event {
	var it atom.Iterator
	if !it.Reset(h.out) {
		return nil
	}
	var events []atom.Event
	for it.Next() {
		events = append(events, it.Event())
	}
	return events
}
