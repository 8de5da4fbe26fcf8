package midi

import (
	"testing"
)

func TestMessageType(t *testing.T) {
	tests := []struct {
		status   uint8
		expected uint8
	}{
		{0x90, StatusNoteOn},
		{0x9F, StatusNoteOn},
		{0x80, StatusNoteOff},
		{0x83, StatusNoteOff},
		{0xB2, StatusControlChange},
		{0xE0, StatusPitchBend},
		{0xF0, StatusSystemExclusive},
		{0xF8, StatusClock},
		{0x3C, 0}, // data byte
	}

	for _, tt := range tests {
		if got := MessageType(tt.status); got != tt.expected {
			t.Errorf("MessageType(0x%02X) = 0x%02X, expected 0x%02X", tt.status, got, tt.expected)
		}
	}
}

func TestMessageNotes(t *testing.T) {
	on := Message{Offset: 20, Status: 0x90, Data1: 60, Data2: 100}
	if !on.IsNote() {
		t.Error("Expected note on to be a note")
	}
	if on.Channel() != 0 {
		t.Errorf("Expected channel 0, got %d", on.Channel())
	}

	cc := Message{Status: 0xB5, Data1: 7, Data2: 90}
	if cc.IsNote() {
		t.Error("Expected CC not to be a note")
	}
	if cc.Channel() != 5 {
		t.Errorf("Expected channel 5, got %d", cc.Channel())
	}
}

func TestNoteClassification(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		noteOn  bool
		noteOff bool
	}{
		{"note on", Message{Status: 0x90, Data1: 60, Data2: 100}, true, false},
		{"note on channel 16", Message{Status: 0x9F, Data1: 60, Data2: 1}, true, false},
		{"note on velocity 0", Message{Status: 0x90, Data1: 60}, false, true},
		{"note off", Message{Status: 0x81, Data1: 60, Data2: 64}, false, true},
		{"control change", Message{Status: 0xB0, Data1: 64, Data2: 127}, false, false},
		{"pitch bend", Message{Status: 0xE0, Data2: 64}, false, false},
		{"clock", Message{Status: 0xF8}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.msg.IsNoteOn(); got != tt.noteOn {
				t.Errorf("IsNoteOn() = %v, expected %v", got, tt.noteOn)
			}
			if got := tt.msg.IsNoteOff(); got != tt.noteOff {
				t.Errorf("IsNoteOff() = %v, expected %v", got, tt.noteOff)
			}
		})
	}
}

func TestMessageString(t *testing.T) {
	tests := []struct {
		msg      Message
		expected string
	}{
		{Message{Offset: 20, Status: 0x90, Data1: 60, Data2: 100}, "NoteOn{ch:0, note:C4, vel:100, offset:20}"},
		{Message{Offset: 3, Status: 0x82, Data1: 69}, "NoteOff{ch:2, note:A4, vel:0, offset:3}"},
		{Message{Offset: 7, Status: 0xB1, Data1: 7, Data2: 90}, "Message{offset:7, status:0xB1, d1:7, d2:90}"},
	}

	for _, tt := range tests {
		if got := tt.msg.String(); got != tt.expected {
			t.Errorf("String() = %q, expected %q", got, tt.expected)
		}
	}
}

func TestNoteName(t *testing.T) {
	tests := []struct {
		note uint8
		name string
	}{
		{60, "C4"},  // Middle C
		{69, "A4"},  // A440
		{0, "C-1"},  // Lowest MIDI note
		{127, "G9"}, // Highest MIDI note
		{61, "C#4"}, // C# above middle C
	}

	for _, tt := range tests {
		if name := NoteName(tt.note); name != tt.name {
			t.Errorf("For note %d, expected name %s, got %s", tt.note, tt.name, name)
		}
	}
}
