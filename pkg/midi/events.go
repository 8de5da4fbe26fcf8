// Package midi models MIDI messages as delivered inside an audio block: a
// raw (status, data1, data2) message with a sample offset.
package midi

import (
	"fmt"
)

// Status bytes (high nibble for channel messages)
const (
	StatusNoteOff         uint8 = 0x80
	StatusNoteOn          uint8 = 0x90
	StatusPolyPressure    uint8 = 0xA0
	StatusControlChange   uint8 = 0xB0
	StatusProgramChange   uint8 = 0xC0
	StatusChannelPressure uint8 = 0xD0
	StatusPitchBend       uint8 = 0xE0
	StatusSystemExclusive uint8 = 0xF0
	StatusClock           uint8 = 0xF8
	StatusStart           uint8 = 0xFA
	StatusContinue        uint8 = 0xFB
	StatusStop            uint8 = 0xFC
	StatusActiveSensing   uint8 = 0xFE
	StatusReset           uint8 = 0xFF
)

// MessageType returns the message type of a status byte: the high nibble
// for channel messages, the full byte for system messages. Bytes without
// the status bit set return 0.
func MessageType(status uint8) uint8 {
	switch {
	case status < 0x80:
		return 0
	case status < 0xF0:
		return status & 0xF0
	default:
		return status
	}
}

// Message is a short MIDI message positioned inside the current block.
type Message struct {
	Offset int32
	Status uint8
	Data1  uint8
	Data2  uint8
}

// Type returns the message type of m.
func (m Message) Type() uint8 {
	return MessageType(m.Status)
}

// Channel returns the channel of a channel message.
func (m Message) Channel() uint8 {
	return m.Status & 0x0F
}

// IsNote reports whether m is a note on or note off.
func (m Message) IsNote() bool {
	t := m.Type()
	return t == StatusNoteOn || t == StatusNoteOff
}

// IsNoteOn reports whether m starts a note. A note on with velocity 0 is a
// note off.
func (m Message) IsNoteOn() bool {
	return m.Type() == StatusNoteOn && m.Data2 > 0
}

// IsNoteOff reports whether m ends a note.
func (m Message) IsNoteOff() bool {
	return m.IsNote() && !m.IsNoteOn()
}

func (m Message) String() string {
	switch {
	case m.IsNoteOn():
		return fmt.Sprintf("NoteOn{ch:%d, note:%s, vel:%d, offset:%d}",
			m.Channel(), NoteName(m.Data1), m.Data2, m.Offset)
	case m.IsNoteOff():
		return fmt.Sprintf("NoteOff{ch:%d, note:%s, vel:%d, offset:%d}",
			m.Channel(), NoteName(m.Data1), m.Data2, m.Offset)
	}
	return fmt.Sprintf("Message{offset:%d, status:0x%02X, d1:%d, d2:%d}",
		m.Offset, m.Status, m.Data1, m.Data2)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the scientific pitch name of a note number; 60 is C4.
func NoteName(note uint8) string {
	note &= 0x7F
	return fmt.Sprintf("%s%d", noteNames[note%12], int(note/12)-1)
}
