package ump

import (
	"reflect"

	"github.com/fjl/midisync/value"
)

// Equal reports whether two events are the same. Channel voice values compare equal
// when they have the same MIDI 2.0 resolution value, regardless of the encoding they
// were created with.
func Equal(a, b Event) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(canonical(a), canonical(b))
}

// canonical returns a copy of e with all values converted to MIDI 2.0 resolution.
func canonical(e Event) Event {
	switch e := e.(type) {
	case *NoteOn:
		c := *e
		c.Velocity = value.Velocity16(e.Velocity.MIDI2())
		return &c
	case *NoteOff:
		c := *e
		c.Velocity = value.Velocity16(e.Velocity.MIDI2())
		return &c
	case *NotePressure:
		c := *e
		c.Amount = value.Control32(e.Amount.MIDI2())
		return &c
	case *CC:
		c := *e
		c.Value = value.Control32(e.Value.MIDI2())
		return &c
	case *Pressure:
		c := *e
		c.Amount = value.Control32(e.Amount.MIDI2())
		return &c
	case *PitchBend:
		c := *e
		c.Value = value.Precise32(e.Value.MIDI2())
		return &c
	case *RPN:
		c := *e
		c.Data = value.Precise32(e.Data.MIDI2())
		return &c
	case *NRPN:
		c := *e
		c.Data = value.Precise32(e.Data.MIDI2())
		return &c
	case *ProgramChange:
		c := *e
		if !c.BankSelect {
			c.Bank = 0
		}
		return &c
	case *SysEx7:
		c := *e
		c.Data = clone(e.Data)
		return &c
	case *UniversalSysEx7:
		c := *e
		c.Data = clone(e.Data)
		return &c
	case *SysEx8:
		c := *e
		c.Data = clone(e.Data)
		return &c
	case *UniversalSysEx8:
		c := *e
		c.Data = clone(e.Data)
		return &c
	default:
		return e
	}
}
