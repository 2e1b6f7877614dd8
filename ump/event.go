package ump

import "github.com/fjl/midisync/value"

// Event represents any decoded UMP message.
type Event interface {
	// Encode appends the UMP encoding of the event to 'buf'.
	Encode(buf []byte) []byte
}

// NoteAttribute is the MIDI 2.0 note attribute carried by note on/off.
type NoteAttribute struct {
	Type byte
	Data uint16
}

// Note attribute types.
const (
	AttributeNone         = byte(0x00)
	AttributeManufacturer = byte(0x01)
	AttributeProfile      = byte(0x02)
	AttributePitch7_9     = byte(0x03) // 7.9 fixed point pitch
)

// NoteOn starts a note.
type NoteOn struct {
	Note      value.UInt7
	Velocity  value.Velocity
	Attribute NoteAttribute
	Channel   value.UInt4
	Group     value.UInt4
}

// NoteOff ends a note.
type NoteOff struct {
	Note      value.UInt7
	Velocity  value.Velocity
	Attribute NoteAttribute
	Channel   value.UInt4
	Group     value.UInt4
}

// NoteController selects a per-note controller. Registered controllers
// have standardized meanings, others are assignable.
type NoteController struct {
	Registered bool
	Number     byte
}

// NoteCC is a MIDI 2.0 per-note controller change.
type NoteCC struct {
	Note       value.UInt7
	Controller NoteController
	Value      uint32
	Channel    value.UInt4
	Group      value.UInt4
}

// NotePitchBend is a MIDI 2.0 per-note pitch bend.
type NotePitchBend struct {
	Note    value.UInt7
	Value   uint32
	Channel value.UInt4
	Group   value.UInt4
}

// NotePressure is polyphonic aftertouch.
type NotePressure struct {
	Note    value.UInt7
	Amount  value.Control
	Channel value.UInt4
	Group   value.UInt4
}

// NoteManagement flags.
const (
	ManagementReset  = byte(0x01) // reset per-note controllers
	ManagementDetach = byte(0x02) // detach per-note controllers from the previous note
)

// NoteManagement is a MIDI 2.0 per-note management message.
type NoteManagement struct {
	Note    value.UInt7
	Flags   byte
	Channel value.UInt4
	Group   value.UInt4
}

// CC is a control change.
type CC struct {
	Controller value.UInt7
	Value      value.Control
	Channel    value.UInt4
	Group      value.UInt4
}

// ProgramChange selects a program, optionally together with a bank.
type ProgramChange struct {
	Program    value.UInt7
	BankSelect bool
	Bank       value.UInt14
	Channel    value.UInt4
	Group      value.UInt4
}

// PitchBend is a channel pitch bend.
type PitchBend struct {
	Value   value.Precise
	Channel value.UInt4
	Group   value.UInt4
}

// Pressure is channel aftertouch.
type Pressure struct {
	Amount  value.Control
	Channel value.UInt4
	Group   value.UInt4
}

// RPN is a registered parameter number change. Bank and Index are the
// parameter MSB and LSB. Relative changes carry a two's complement delta.
type RPN struct {
	Bank     value.UInt7
	Index    value.UInt7
	Data     value.Precise
	Relative bool
	Channel  value.UInt4
	Group    value.UInt4
}

// NRPN is an assignable (non-registered) parameter number change.
type NRPN struct {
	Bank     value.UInt7
	Index    value.UInt7
	Data     value.Precise
	Relative bool
	Channel  value.UInt4
	Group    value.UInt4
}

// System common and real-time messages.
type (
	TimecodeQuarterFrame struct {
		Data  value.UInt7
		Group value.UInt4
	}
	SongPositionPointer struct {
		Beat  value.UInt14
		Group value.UInt4
	}
	SongSelect struct {
		Number value.UInt7
		Group  value.UInt4
	}
	TuneRequest   struct{ Group value.UInt4 }
	TimingClock   struct{ Group value.UInt4 }
	Start         struct{ Group value.UInt4 }
	Continue      struct{ Group value.UInt4 }
	Stop          struct{ Group value.UInt4 }
	ActiveSensing struct{ Group value.UInt4 }
	SystemReset   struct{ Group value.UInt4 }
)

// Utility messages.
type (
	NoOp struct{ Group value.UInt4 }

	// JRClock is a jitter reduction clock. Time is in units of 1/31250 s.
	JRClock struct {
		Time  uint16
		Group value.UInt4
	}

	// JRTimestamp is a jitter reduction timestamp for the following message.
	JRTimestamp struct {
		Time  uint16
		Group value.UInt4
	}
)

// SysEx7 is a manufacturer system exclusive message with 7-bit data.
type SysEx7 struct {
	Manufacturer ManufacturerID
	Data         []byte
	Group        value.UInt4
}

// UniversalSysEx7 is a universal system exclusive message with 7-bit data.
type UniversalSysEx7 struct {
	Universal Universal
	DeviceID  value.UInt7
	SubID1    value.UInt7
	SubID2    value.UInt7
	Data      []byte
	Group     value.UInt4
}

// SysEx8 is a manufacturer system exclusive message with 8-bit data.
type SysEx8 struct {
	StreamID     byte
	Manufacturer ManufacturerID
	Data         []byte
	Group        value.UInt4
}

// UniversalSysEx8 is a universal system exclusive message with 8-bit data.
type UniversalSysEx8 struct {
	StreamID  byte
	Universal Universal
	DeviceID  value.UInt7
	SubID1    value.UInt7
	SubID2    value.UInt7
	Data      []byte
	Group     value.UInt4
}

// Payload returns the message body between the F0 and F7 framing bytes.
func (e *SysEx7) Payload() []byte {
	return append(e.Manufacturer.Bytes(), e.Data...)
}

// Payload returns the message body between the F0 and F7 framing bytes.
func (e *UniversalSysEx7) Payload() []byte {
	b := []byte{byte(e.Universal), byte(e.DeviceID), byte(e.SubID1), byte(e.SubID2)}
	return append(b, e.Data...)
}
