package ump

import (
	"bytes"
	"testing"

	"github.com/fjl/midisync/value"
)

func TestEncodeRoundTrip(t *testing.T) {
	long := make([]byte, 40)
	for i := range long {
		long[i] = byte(i) & 0x7F
	}
	tests := []Event{
		&NoteOn{Note: 60, Velocity: value.Velocity7(100), Channel: 3, Group: 2},
		&NoteOn{Note: 60, Velocity: value.VelocityUnit(0.5), Channel: 3},
		&NoteOff{Note: 61, Velocity: value.Velocity16(0x1234), Attribute: NoteAttribute{Type: AttributeProfile, Data: 7}},
		&NoteCC{Note: 1, Controller: NoteController{Registered: true, Number: 3}, Value: 0xCAFEBABE},
		&NotePitchBend{Note: 2, Value: 0x80000000, Channel: 9},
		&NotePressure{Note: 3, Amount: value.Control7(5)},
		&NotePressure{Note: 3, Amount: value.Control32(5)},
		&NoteManagement{Note: 4, Flags: ManagementDetach, Group: 15},
		&CC{Controller: 74, Value: value.ControlUnit(1)},
		&CC{Controller: 74, Value: value.Control7(12)},
		&ProgramChange{Program: 9, Channel: 4},
		&ProgramChange{Program: 9, BankSelect: true, Bank: 0x1234, Channel: 4},
		&PitchBend{Value: value.Precise14(0x1FFF)},
		&PitchBend{Value: value.PreciseBipolar(-0.5)},
		&Pressure{Amount: value.Control7(0x7F)},
		&Pressure{Amount: value.ControlUnit(0.25)},
		&RPN{Bank: 0, Index: 1, Data: value.Precise32(0x12345678)},
		&NRPN{Bank: 5, Index: 6, Data: value.Precise14(0x3FFF), Relative: true},
		&TimecodeQuarterFrame{Data: 0x71},
		&SongPositionPointer{Beat: 0x3FFF},
		&SongSelect{Number: 3},
		&TuneRequest{},
		&TimingClock{Group: 1},
		&Start{},
		&Continue{},
		&Stop{},
		&ActiveSensing{},
		&SystemReset{},
		&NoOp{Group: 4},
		&JRClock{Time: 0xFFFF},
		&JRTimestamp{Time: 1},
		&SysEx7{Manufacturer: Manufacturer(0x41), Data: []byte{0x10, 0x42}},
		&SysEx7{Manufacturer: ExtendedManufacturer(0x21, 0x09)},
		&SysEx7{Manufacturer: Manufacturer(0x43), Data: long, Group: 6},
		&UniversalSysEx7{Universal: NonRealTime, DeviceID: 0x7F, SubID1: 0x06, SubID2: 0x01},
		&UniversalSysEx7{Universal: RealTime, DeviceID: 0x10, SubID1: 0x01, SubID2: 0x01, Data: long[:13]},
		&SysEx8{StreamID: 9, Manufacturer: Manufacturer(0x41), Data: []byte{0xFF, 0x00, 0x80}},
		&SysEx8{StreamID: 0, Manufacturer: ExtendedManufacturer(0x00, 0x66), Data: append(long, long...)},
		&UniversalSysEx8{StreamID: 3, Universal: RealTime, DeviceID: 1, SubID1: 2, SubID2: 3, Data: []byte{0xF7}},
	}

	for _, ev := range tests {
		enc := ev.Encode(nil)
		got := NewParser().ParseStream(enc)
		if len(got) != 1 {
			t.Fatalf("%#v: encoded %x, decoded %d events", ev, enc, len(got))
		}
		if !Equal(got[0], ev) {
			t.Fatalf("%#v: encoded %x, decoded %#v", ev, enc, got[0])
		}
	}
}

func TestEncodePacketType(t *testing.T) {
	tests := []struct {
		ev   Event
		want []byte
	}{
		{
			&NoteOn{Note: 60, Velocity: value.Velocity7(100), Channel: 3, Group: 2},
			[]byte{0x22, 0x93, 0x3C, 0x64},
		},
		{
			&NoteOn{Note: 60, Velocity: value.Velocity16(0xFFFF), Channel: 3, Group: 2},
			[]byte{0x42, 0x93, 0x3C, 0x00, 0xFF, 0xFF, 0x00, 0x00},
		},
		{
			&PitchBend{Value: value.Precise14(0x2001), Channel: 1},
			[]byte{0x20, 0xE1, 0x01, 0x40},
		},
		{
			&ProgramChange{Program: 9, BankSelect: true, Bank: value.UInt14FromPair(2, 3)},
			[]byte{0x40, 0xC0, 0x00, 0x01, 0x09, 0x00, 0x02, 0x03},
		},
		{
			&CC{Controller: 1, Value: value.ControlUnit(1)},
			[]byte{0x40, 0xB0, 0x01, 0x00, 0xFF, 0xFF, 0xFF, 0xFF},
		},
		{
			&SysEx7{Manufacturer: Manufacturer(0x41), Data: []byte{0x01, 0x34}},
			[]byte{0x30, 0x03, 0x41, 0x01, 0x34, 0x00, 0x00, 0x00},
		},
		{
			&SysEx7{Manufacturer: Manufacturer(0x41), Data: []byte{1, 2, 3, 4, 5, 6}},
			[]byte{
				0x30, 0x16, 0x41, 0x01, 0x02, 0x03, 0x04, 0x05,
				0x30, 0x31, 0x06, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			&SysEx8{StreamID: 7, Manufacturer: Manufacturer(0x41), Data: []byte{0xAA}},
			[]byte{0x50, 0x04, 0x07, 0x00, 0x41, 0xAA, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		},
	}
	for _, test := range tests {
		if enc := test.ev.Encode(nil); !bytes.Equal(enc, test.want) {
			t.Fatalf("%#v: encoded %x, want %x", test.ev, enc, test.want)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b  Event
		equal bool
	}{
		{
			&CC{Controller: 1, Value: value.ControlUnit(0.5)},
			&CC{Controller: 1, Value: value.Control7(64)},
			true,
		},
		{
			&CC{Controller: 1, Value: value.Control7(64)},
			&CC{Controller: 2, Value: value.Control7(64)},
			false,
		},
		{
			&NoteOn{Note: 1, Velocity: value.Velocity7(127)},
			&NoteOn{Note: 1, Velocity: value.Velocity16(0xFFFF)},
			true,
		},
		{
			&NoteOn{Note: 1, Velocity: value.Velocity7(127)},
			&NoteOff{Note: 1, Velocity: value.Velocity7(127)},
			false,
		},
		{
			&PitchBend{Value: value.PreciseBipolar(0)},
			&PitchBend{Value: value.Precise14(0x2000)},
			true,
		},
		{
			&SysEx7{Manufacturer: Manufacturer(1), Data: []byte{}},
			&SysEx7{Manufacturer: Manufacturer(1)},
			true,
		},
		{&TimingClock{Group: 1}, &TimingClock{Group: 2}, false},
		{nil, nil, true},
		{&Stop{}, nil, false},
	}
	for i, test := range tests {
		if eq := Equal(test.a, test.b); eq != test.equal {
			t.Errorf("test %d: Equal(%#v, %#v) = %t, want %t", i, test.a, test.b, eq, test.equal)
		}
		if eq := Equal(test.b, test.a); eq != test.equal {
			t.Errorf("test %d: Equal is not symmetric", i)
		}
	}
}
