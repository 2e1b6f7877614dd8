package ump

import "github.com/fjl/midisync/value"

// Channel voice messages are encoded as MIDI 1.0 packets when all of their values
// were created at MIDI 1.0 resolution. Everything else uses MIDI 2.0 packets.

func (e *NoteOn) Encode(b []byte) []byte {
	if e.Velocity.Encoding() == value.MIDI1 && e.Attribute == (NoteAttribute{}) {
		return appendMIDI1(b, e.Group, 0x9, e.Channel, byte(e.Note), byte(e.Velocity.MIDI1()))
	}
	return appendNote2(b, e.Group, 0x9, e.Channel, e.Note, e.Velocity, e.Attribute)
}

func (e *NoteOff) Encode(b []byte) []byte {
	if e.Velocity.Encoding() == value.MIDI1 && e.Attribute == (NoteAttribute{}) {
		return appendMIDI1(b, e.Group, 0x8, e.Channel, byte(e.Note), byte(e.Velocity.MIDI1()))
	}
	return appendNote2(b, e.Group, 0x8, e.Channel, e.Note, e.Velocity, e.Attribute)
}

func (e *NoteCC) Encode(b []byte) []byte {
	status := byte(0x1)
	if e.Controller.Registered {
		status = 0x0
	}
	return appendMIDI2(b, e.Group, status, e.Channel, byte(e.Note)&0x7F, e.Controller.Number, e.Value)
}

func (e *NotePitchBend) Encode(b []byte) []byte {
	return appendMIDI2(b, e.Group, 0x6, e.Channel, byte(e.Note)&0x7F, 0, e.Value)
}

func (e *NotePressure) Encode(b []byte) []byte {
	if e.Amount.Encoding() == value.MIDI1 {
		return appendMIDI1(b, e.Group, 0xA, e.Channel, byte(e.Note), byte(e.Amount.MIDI1()))
	}
	return appendMIDI2(b, e.Group, 0xA, e.Channel, byte(e.Note)&0x7F, 0, e.Amount.MIDI2())
}

func (e *NoteManagement) Encode(b []byte) []byte {
	return appendMIDI2(b, e.Group, 0xF, e.Channel, byte(e.Note)&0x7F, e.Flags, 0)
}

func (e *CC) Encode(b []byte) []byte {
	if e.Value.Encoding() == value.MIDI1 {
		return appendMIDI1(b, e.Group, 0xB, e.Channel, byte(e.Controller), byte(e.Value.MIDI1()))
	}
	return appendMIDI2(b, e.Group, 0xB, e.Channel, byte(e.Controller)&0x7F, 0, e.Value.MIDI2())
}

func (e *ProgramChange) Encode(b []byte) []byte {
	if !e.BankSelect {
		return appendMIDI1(b, e.Group, 0xC, e.Channel, byte(e.Program), 0)
	}
	bank := e.Bank & value.MaxUInt14
	b = append(b, header(MIDI2Voice, e.Group), 0xC0|byte(e.Channel&0xF), 0x00, 0x01)
	return append(b, byte(e.Program)&0x7F, 0x00, byte(bank.MSB()), byte(bank.LSB()))
}

func (e *PitchBend) Encode(b []byte) []byte {
	if e.Value.Encoding() == value.MIDI1 {
		v := e.Value.MIDI1()
		return appendMIDI1(b, e.Group, 0xE, e.Channel, byte(v.LSB()), byte(v.MSB()))
	}
	return appendMIDI2(b, e.Group, 0xE, e.Channel, 0, 0, e.Value.MIDI2())
}

func (e *Pressure) Encode(b []byte) []byte {
	if e.Amount.Encoding() == value.MIDI1 {
		return appendMIDI1(b, e.Group, 0xD, e.Channel, byte(e.Amount.MIDI1()), 0)
	}
	return appendMIDI2(b, e.Group, 0xD, e.Channel, 0, 0, e.Amount.MIDI2())
}

func (e *RPN) Encode(b []byte) []byte {
	status := byte(0x2)
	if e.Relative {
		status = 0x4
	}
	return appendMIDI2(b, e.Group, status, e.Channel, byte(e.Bank)&0x7F, byte(e.Index)&0x7F, e.Data.MIDI2())
}

func (e *NRPN) Encode(b []byte) []byte {
	status := byte(0x3)
	if e.Relative {
		status = 0x5
	}
	return appendMIDI2(b, e.Group, status, e.Channel, byte(e.Bank)&0x7F, byte(e.Index)&0x7F, e.Data.MIDI2())
}

func appendMIDI1(b []byte, group value.UInt4, status byte, ch value.UInt4, d1, d2 byte) []byte {
	return append(b, header(MIDI1Voice, group), status<<4|byte(ch&0xF), d1&0x7F, d2&0x7F)
}

func appendMIDI2(b []byte, group value.UInt4, status byte, ch value.UInt4, d1, d2 byte, data uint32) []byte {
	b = append(b, header(MIDI2Voice, group), status<<4|byte(ch&0xF), d1, d2)
	return appendWord(b, data)
}

func appendNote2(b []byte, group value.UInt4, status byte, ch value.UInt4, note value.UInt7, vel value.Velocity, attr NoteAttribute) []byte {
	b = append(b, header(MIDI2Voice, group), status<<4|byte(ch&0xF), byte(note)&0x7F, attr.Type)
	v := vel.MIDI2()
	return append(b, byte(v>>8), byte(v), byte(attr.Data>>8), byte(attr.Data))
}

// System messages.

func (e *TimecodeQuarterFrame) Encode(b []byte) []byte {
	return appendSystem(b, e.Group, 0xF1, byte(e.Data), 0)
}

func (e *SongPositionPointer) Encode(b []byte) []byte {
	beat := e.Beat & value.MaxUInt14
	return appendSystem(b, e.Group, 0xF2, byte(beat.LSB()), byte(beat.MSB()))
}

func (e *SongSelect) Encode(b []byte) []byte {
	return appendSystem(b, e.Group, 0xF3, byte(e.Number), 0)
}

func (e *TuneRequest) Encode(b []byte) []byte   { return appendSystem(b, e.Group, 0xF6, 0, 0) }
func (e *TimingClock) Encode(b []byte) []byte   { return appendSystem(b, e.Group, 0xF8, 0, 0) }
func (e *Start) Encode(b []byte) []byte         { return appendSystem(b, e.Group, 0xFA, 0, 0) }
func (e *Continue) Encode(b []byte) []byte      { return appendSystem(b, e.Group, 0xFB, 0, 0) }
func (e *Stop) Encode(b []byte) []byte          { return appendSystem(b, e.Group, 0xFC, 0, 0) }
func (e *ActiveSensing) Encode(b []byte) []byte { return appendSystem(b, e.Group, 0xFE, 0, 0) }
func (e *SystemReset) Encode(b []byte) []byte   { return appendSystem(b, e.Group, 0xFF, 0, 0) }

func appendSystem(b []byte, group value.UInt4, status, d1, d2 byte) []byte {
	return append(b, header(System, group), status, d1&0x7F, d2&0x7F)
}

// Utility messages.

func (e *NoOp) Encode(b []byte) []byte {
	return append(b, header(Utility, e.Group), utilityNoOp<<4, 0, 0)
}

func (e *JRClock) Encode(b []byte) []byte {
	return append(b, header(Utility, e.Group), utilityJRClock<<4, byte(e.Time>>8), byte(e.Time))
}

func (e *JRTimestamp) Encode(b []byte) []byte {
	return append(b, header(Utility, e.Group), utilityJRTimestamp<<4, byte(e.Time>>8), byte(e.Time))
}

// System exclusive messages. Bodies longer than a single packet are split into
// start, continue and end packets.

func (e *SysEx7) Encode(b []byte) []byte {
	return appendSysEx7(b, e.Group, e.Payload())
}

func (e *UniversalSysEx7) Encode(b []byte) []byte {
	return appendSysEx7(b, e.Group, e.Payload())
}

func (e *SysEx8) Encode(b []byte) []byte {
	id := e.Manufacturer.sysEx8Bytes()
	body := append([]byte{id[0], id[1]}, e.Data...)
	return appendSysEx8(b, e.Group, e.StreamID, body)
}

func (e *UniversalSysEx8) Encode(b []byte) []byte {
	body := []byte{0x00, byte(e.Universal), byte(e.DeviceID), byte(e.SubID1), byte(e.SubID2)}
	body = append(body, e.Data...)
	return appendSysEx8(b, e.Group, e.StreamID, body)
}

func appendSysEx7(b []byte, group value.UInt4, payload []byte) []byte {
	splitSysEx(payload, sysEx7PacketSize, func(status SysExStatus, chunk []byte) {
		b = append(b, header(Data64, group), byte(status)<<4|byte(len(chunk)))
		b = append(b, chunk...)
		b = append(b, make([]byte, sysEx7PacketSize-len(chunk))...)
	})
	return b
}

func appendSysEx8(b []byte, group value.UInt4, stream byte, payload []byte) []byte {
	splitSysEx(payload, sysEx8PacketSize, func(status SysExStatus, chunk []byte) {
		b = append(b, header(Data128, group), byte(status)<<4|byte(len(chunk)+1), stream)
		b = append(b, chunk...)
		b = append(b, make([]byte, sysEx8PacketSize-len(chunk))...)
	})
	return b
}

// splitSysEx calls fn for each packet-sized chunk of payload.
func splitSysEx(payload []byte, size int, fn func(SysExStatus, []byte)) {
	if len(payload) <= size {
		fn(SysExComplete, payload)
		return
	}
	for i := 0; i < len(payload); i += size {
		end := i + size
		status := SysExContinue
		switch {
		case i == 0:
			status = SysExStart
		case end >= len(payload):
			end = len(payload)
			status = SysExEnd
		}
		fn(status, payload[i:end])
	}
}
