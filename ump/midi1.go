package ump

import (
	"bytes"

	"github.com/fjl/midisync/value"
	"gitlab.com/gomidi/midi/v2"
)

// FromMIDI1 converts a MIDI 1.0 byte stream message into an event on the given group.
// It returns nil for messages that have no UMP equivalent.
func FromMIDI1(msg midi.Message, group value.UInt4) Event {
	if len(msg) == 0 {
		return nil
	}
	var sysex []byte
	if msg.GetSysEx(&sysex) {
		sysex = bytes.TrimPrefix(sysex, []byte{0xF0})
		sysex = bytes.TrimSuffix(sysex, []byte{0xF7})
		return decodeSysEx7Body(sysex, group)
	}
	if len(msg) > 3 {
		return nil
	}

	var w [4]byte
	copy(w[1:], msg)
	if msg[0] >= 0xF0 {
		w[0] = header(System, group)
		return parseSystem(w[:], group)
	}
	w[0] = header(MIDI1Voice, group)
	return parseMIDI1(w[:], group)
}

// ToMIDI1 converts a MIDI 1.0 compatible event into a byte stream message. Values are
// reduced to MIDI 1.0 resolution. The result is false for MIDI 2.0 only events.
func ToMIDI1(e Event) (midi.Message, bool) {
	switch e := e.(type) {
	case *NoteOn:
		return midi.NoteOn(uint8(e.Channel), uint8(e.Note), uint8(e.Velocity.MIDI1())), true
	case *NoteOff:
		return midi.NoteOffVelocity(uint8(e.Channel), uint8(e.Note), uint8(e.Velocity.MIDI1())), true
	case *NotePressure:
		return midi.PolyAfterTouch(uint8(e.Channel), uint8(e.Note), uint8(e.Amount.MIDI1())), true
	case *CC:
		return midi.ControlChange(uint8(e.Channel), uint8(e.Controller), uint8(e.Value.MIDI1())), true
	case *ProgramChange:
		return midi.ProgramChange(uint8(e.Channel), uint8(e.Program)), true
	case *Pressure:
		return midi.AfterTouch(uint8(e.Channel), uint8(e.Amount.MIDI1())), true
	case *PitchBend:
		v := e.Value.MIDI1()
		return midi.Message{0xE0 | byte(e.Channel&0xF), byte(v.LSB()), byte(v.MSB())}, true
	case *SysEx7:
		return midi.SysEx(e.Payload()), true
	case *UniversalSysEx7:
		return midi.SysEx(e.Payload()), true
	case *TimecodeQuarterFrame, *SongPositionPointer, *SongSelect, *TuneRequest,
		*TimingClock, *Start, *Continue, *Stop, *ActiveSensing, *SystemReset:
		b := e.Encode(nil)
		return midi.Message(b[1 : 1+systemLength(b[1])]), true
	default:
		return nil, false
	}
}

// systemLength returns the MIDI 1.0 length of a system message.
func systemLength(status byte) int {
	switch status {
	case 0xF2:
		return 3
	case 0xF1, 0xF3:
		return 2
	default:
		return 1
	}
}
