package process

import (
	"testing"
	"unsafe"

	"github.com/justyntemme/lv2go/pkg/framework/param"
	"github.com/justyntemme/lv2go/pkg/midi"
)

func newTestContext(in, out, block int) *Context {
	r := param.NewRegistry()
	r.Add(param.New("Gain").Range(0, 2).Default(1).Build())
	return NewContext(in, out, block, r)
}

func TestBindAndPassThrough(t *testing.T) {
	ctx := newTestContext(2, 2, 8)
	in := [][]float32{{1, 2, 3, 4}, {5, 6, 7, 8}}
	out := [][]float32{make([]float32, 4), make([]float32, 4)}

	ctx.Begin(4)
	for ch := range in {
		ctx.BindInput(ch, unsafe.Pointer(&in[ch][0]))
		ctx.BindOutput(ch, unsafe.Pointer(&out[ch][0]))
	}
	ctx.PassThrough()

	for ch := range in {
		for i := range in[ch] {
			if out[ch][i] != in[ch][i] {
				t.Fatalf("ch %d sample %d: got %v want %v", ch, i, out[ch][i], in[ch][i])
			}
		}
	}
}

func TestUnconnectedChannels(t *testing.T) {
	ctx := newTestContext(1, 1, 8)
	ctx.Begin(8)
	ctx.BindInput(0, nil)
	ctx.BindOutput(0, nil)
	// out of range binds are ignored
	ctx.BindInput(5, nil)
	ctx.BindOutput(-1, nil)

	if len(ctx.Input[0]) != 8 || len(ctx.Output[0]) != 8 {
		t.Fatalf("expected 8-sample views, got %d/%d", len(ctx.Input[0]), len(ctx.Output[0]))
	}
	for _, s := range ctx.Input[0] {
		if s != 0 {
			t.Fatal("unconnected input should read silence")
		}
	}
	ctx.ProcessChannels(func(ch int, input, output []float32) {
		for i := range output {
			output[i] = 1
		}
	})
	ctx.Begin(8)
	for _, s := range ctx.Input[0] {
		if s != 0 {
			t.Fatal("scratch output leaked into silence")
		}
	}
}

func TestEnsureCapacity(t *testing.T) {
	ctx := newTestContext(2, 2, 4)

	if ctx.EnsureCapacity(4) {
		t.Error("no growth expected at the current capacity")
	}
	if !ctx.EnsureCapacity(16) {
		t.Error("growth expected")
	}
	if ctx.MaxBlockSize() != 16 {
		t.Errorf("MaxBlockSize = %d, want 16", ctx.MaxBlockSize())
	}

	ctx.Begin(16)
	if len(ctx.WorkBuffer()) != 16 || len(ctx.TempBuffer()) != 16 {
		t.Error("work buffers not resized")
	}
	if len(ctx.Output[1]) != 16 {
		t.Error("scratch outputs not resized")
	}
}

func TestZeroLengthBlock(t *testing.T) {
	ctx := newTestContext(2, 2, 4)
	ctx.Begin(0)
	calls := 0
	ctx.ProcessChannels(func(ch int, input, output []float32) {
		calls++
		if len(input) != 0 || len(output) != 0 {
			t.Error("expected empty views")
		}
	})
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestMIDIQueueClearedPerBlock(t *testing.T) {
	ctx := newTestContext(2, 2, 64)
	ctx.Begin(64)
	ctx.PushMIDI(midi.Message{Offset: 3, Status: midi.StatusNoteOn, Data1: 60, Data2: 100})
	if len(ctx.MIDI()) != 1 {
		t.Fatalf("expected 1 message, got %d", len(ctx.MIDI()))
	}
	ctx.Begin(64)
	if len(ctx.MIDI()) != 0 {
		t.Error("MIDI queue should be cleared at block start")
	}
}

func TestContextParams(t *testing.T) {
	ctx := newTestContext(2, 2, 4)
	if ctx.Param(0) != 1 {
		t.Errorf("expected default gain 1, got %v", ctx.Param(0))
	}
	if ctx.Param(7) != 0 {
		t.Error("unknown parameter should read 0")
	}
	if ctx.Params().Count() != 1 {
		t.Errorf("expected 1 parameter, got %d", ctx.Params().Count())
	}
	if ctx.GetNumChannels() != 2 {
		t.Errorf("expected 2 channel pairs, got %d", ctx.GetNumChannels())
	}
}

func TestSendMIDI(t *testing.T) {
	ctx := newTestContext(1, 1, 8)
	msg := midi.Message{Offset: 1, Status: midi.StatusNoteOn, Data1: 64, Data2: 90}
	if ctx.SendMIDI(msg) {
		t.Error("SendMIDI without an output should fail")
	}

	var sent []midi.Message
	ctx.SetMIDIOutput(func(m midi.Message) bool {
		sent = append(sent, m)
		return true
	})
	if !ctx.SendMIDI(msg) || len(sent) != 1 || sent[0] != msg {
		t.Errorf("unexpected output %v", sent)
	}
}
