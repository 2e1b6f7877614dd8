package ump

import "github.com/fjl/midisync/value"

// Parser decodes Universal MIDI Packets into events.
//
// Multi-packet system exclusive messages are reassembled across calls to Parse, so a
// Parser must be used for exactly one endpoint. Parser is not safe for concurrent use.
type Parser struct {
	sysex7 []byte
	sysex8 map[byte][]byte // keyed by stream ID
}

func NewParser() *Parser {
	return &Parser{sysex8: make(map[byte][]byte)}
}

// Parse decodes a single packet. The buffer length must be a non-zero multiple of four.
// Malformed packets produce no events. A jitter reduction message may prefix another
// packet in the same buffer, in which case both are returned.
func (p *Parser) Parse(b []byte) []Event {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	group := value.UInt4(b[0] & 0xF)
	switch MessageType(b[0] >> 4) {
	case Utility:
		ev, rest := parseUtility(b, group)
		if ev == nil {
			return nil
		}
		return append([]Event{ev}, p.Parse(rest)...)
	case System:
		if len(b) != 4 {
			return nil
		}
		return single(parseSystem(b, group))
	case MIDI1Voice:
		if len(b) != 4 {
			return nil
		}
		return single(parseMIDI1(b, group))
	case Data64:
		if len(b) != 8 {
			return nil
		}
		return single(p.parseData64(b, group))
	case MIDI2Voice:
		if len(b) != 8 {
			return nil
		}
		return single(parseMIDI2(b, group))
	case Data128:
		if len(b) != 16 {
			return nil
		}
		return single(p.parseData128(b, group))
	default:
		return nil
	}
}

// ParseStream decodes a sequence of packets. Packets of reserved message types are
// skipped using their defined sizes. A truncated packet at the end is dropped.
func (p *Parser) ParseStream(b []byte) []Event {
	var events []Event
	for len(b) >= 4 {
		n := MessageType(b[0]>>4).Words() * 4
		if len(b) < n {
			break
		}
		events = append(events, p.Parse(b[:n])...)
		b = b[n:]
	}
	return events
}

// Reset discards all partially received system exclusive messages.
func (p *Parser) Reset() {
	p.sysex7 = nil
	for id := range p.sysex8 {
		delete(p.sysex8, id)
	}
}

func single(ev Event) []Event {
	if ev == nil {
		return nil
	}
	return []Event{ev}
}

// parseUtility decodes a utility message. It returns the bytes following
// the message when the message is a jitter reduction prefix.
func parseUtility(b []byte, group value.UInt4) (Event, []byte) {
	if len(b) < 4 {
		return nil, nil
	}
	time := uint16(b[2])<<8 | uint16(b[3])
	switch b[1] >> 4 {
	case utilityNoOp:
		return &NoOp{Group: group}, nil
	case utilityJRClock:
		return &JRClock{Time: time, Group: group}, b[4:]
	case utilityJRTimestamp:
		return &JRTimestamp{Time: time, Group: group}, b[4:]
	default:
		return nil, nil
	}
}

func parseSystem(b []byte, group value.UInt4) Event {
	switch b[1] {
	case 0xF1:
		d, ok := u7(b[2])
		if !ok {
			return nil
		}
		return &TimecodeQuarterFrame{Data: d, Group: group}
	case 0xF2:
		lsb, ok1 := u7(b[2])
		msb, ok2 := u7(b[3])
		if !ok1 || !ok2 {
			return nil
		}
		return &SongPositionPointer{Beat: value.UInt14FromPair(msb, lsb), Group: group}
	case 0xF3:
		n, ok := u7(b[2])
		if !ok {
			return nil
		}
		return &SongSelect{Number: n, Group: group}
	case 0xF6:
		return &TuneRequest{Group: group}
	case 0xF8:
		return &TimingClock{Group: group}
	case 0xFA:
		return &Start{Group: group}
	case 0xFB:
		return &Continue{Group: group}
	case 0xFC:
		return &Stop{Group: group}
	case 0xFE:
		return &ActiveSensing{Group: group}
	case 0xFF:
		return &SystemReset{Group: group}
	default:
		return nil
	}
}

func parseMIDI1(b []byte, group value.UInt4) Event {
	ch := value.UInt4(b[1] & 0xF)
	d1, ok1 := u7(b[2])
	d2, ok2 := u7(b[3])
	switch b[1] >> 4 {
	case 0x8:
		if !ok1 || !ok2 {
			return nil
		}
		return &NoteOff{Note: d1, Velocity: value.Velocity7(d2), Channel: ch, Group: group}
	case 0x9:
		if !ok1 || !ok2 {
			return nil
		}
		return &NoteOn{Note: d1, Velocity: value.Velocity7(d2), Channel: ch, Group: group}
	case 0xA:
		if !ok1 || !ok2 {
			return nil
		}
		return &NotePressure{Note: d1, Amount: value.Control7(d2), Channel: ch, Group: group}
	case 0xB:
		if !ok1 || !ok2 {
			return nil
		}
		return &CC{Controller: d1, Value: value.Control7(d2), Channel: ch, Group: group}
	case 0xC:
		if !ok1 {
			return nil
		}
		return &ProgramChange{Program: d1, Channel: ch, Group: group}
	case 0xD:
		if !ok1 {
			return nil
		}
		return &Pressure{Amount: value.Control7(d1), Channel: ch, Group: group}
	case 0xE:
		if !ok1 || !ok2 {
			return nil
		}
		return &PitchBend{Value: value.Precise14(value.UInt14FromPair(d2, d1)), Channel: ch, Group: group}
	default:
		return nil
	}
}

func parseMIDI2(b []byte, group value.UInt4) Event {
	var (
		status = b[1] >> 4
		ch     = value.UInt4(b[1] & 0xF)
		data   = word(b[4:8])
	)
	switch status {
	case 0x0, 0x1:
		note, ok := u7(b[2])
		if !ok {
			return nil
		}
		ctl := NoteController{Registered: status == 0x0, Number: b[3]}
		return &NoteCC{Note: note, Controller: ctl, Value: data, Channel: ch, Group: group}
	case 0x2, 0x3, 0x4, 0x5:
		bank, ok1 := u7(b[2])
		index, ok2 := u7(b[3])
		if !ok1 || !ok2 {
			return nil
		}
		rel := status >= 0x4
		if status == 0x2 || status == 0x4 {
			return &RPN{Bank: bank, Index: index, Data: value.Precise32(data), Relative: rel, Channel: ch, Group: group}
		}
		return &NRPN{Bank: bank, Index: index, Data: value.Precise32(data), Relative: rel, Channel: ch, Group: group}
	case 0x6:
		note, ok := u7(b[2])
		if !ok {
			return nil
		}
		return &NotePitchBend{Note: note, Value: data, Channel: ch, Group: group}
	case 0x8, 0x9:
		note, ok := u7(b[2])
		if !ok {
			return nil
		}
		vel := value.Velocity16(uint16(b[4])<<8 | uint16(b[5]))
		attr := NoteAttribute{Type: b[3], Data: uint16(b[6])<<8 | uint16(b[7])}
		if status == 0x8 {
			return &NoteOff{Note: note, Velocity: vel, Attribute: attr, Channel: ch, Group: group}
		}
		return &NoteOn{Note: note, Velocity: vel, Attribute: attr, Channel: ch, Group: group}
	case 0xA:
		note, ok := u7(b[2])
		if !ok {
			return nil
		}
		return &NotePressure{Note: note, Amount: value.Control32(data), Channel: ch, Group: group}
	case 0xB:
		ctl, ok := u7(b[2])
		if !ok {
			return nil
		}
		return &CC{Controller: ctl, Value: value.Control32(data), Channel: ch, Group: group}
	case 0xC:
		prog, ok1 := u7(b[4])
		msb, ok2 := u7(b[6])
		lsb, ok3 := u7(b[7])
		if !ok1 || !ok2 || !ok3 {
			return nil
		}
		return &ProgramChange{
			Program:    prog,
			BankSelect: b[3]&0x01 != 0,
			Bank:       value.UInt14FromPair(msb, lsb),
			Channel:    ch,
			Group:      group,
		}
	case 0xD:
		return &Pressure{Amount: value.Control32(data), Channel: ch, Group: group}
	case 0xE:
		return &PitchBend{Value: value.Precise32(data), Channel: ch, Group: group}
	case 0xF:
		note, ok := u7(b[2])
		if !ok {
			return nil
		}
		return &NoteManagement{Note: note, Flags: b[3], Channel: ch, Group: group}
	default:
		return nil
	}
}

func (p *Parser) parseData64(b []byte, group value.UInt4) Event {
	n := int(b[1] & 0xF)
	if n > sysEx7PacketSize {
		return nil
	}
	payload := b[2 : 2+n]
	switch SysExStatus(b[1] >> 4) {
	case SysExComplete:
		return decodeSysEx7Body(payload, group)
	case SysExStart:
		p.sysex7 = append(p.sysex7[:0], payload...)
		return nil
	case SysExContinue:
		if len(p.sysex7) == 0 {
			return nil
		}
		p.sysex7 = append(p.sysex7, payload...)
		return nil
	case SysExEnd:
		if len(p.sysex7) == 0 {
			return nil
		}
		body := append(p.sysex7, payload...)
		p.sysex7 = nil
		return decodeSysEx7Body(body, group)
	default:
		return nil
	}
}

func decodeSysEx7Body(body []byte, group value.UInt4) Event {
	raw := make([]byte, 0, len(body)+2)
	raw = append(raw, 0xF0)
	raw = append(raw, body...)
	raw = append(raw, 0xF7)
	ev, err := DecodeSysEx7(raw, group)
	if err != nil {
		return nil
	}
	return ev
}

func (p *Parser) parseData128(b []byte, group value.UInt4) Event {
	status := SysExStatus(b[1] >> 4)
	if status == mixedDataSetHeader || status == mixedDataSetPayload {
		return nil
	}
	n := int(b[1] & 0xF)
	if n < 1 || n > sysEx8PacketSize+1 {
		return nil
	}
	stream := b[2]
	switch status {
	case SysExComplete:
		return decodeSysEx8Body(b[2:2+n], group)
	case SysExStart:
		p.sysex8[stream] = append([]byte(nil), b[2:2+n]...)
		return nil
	case SysExContinue:
		buf := p.sysex8[stream]
		if len(buf) == 0 {
			return nil
		}
		p.sysex8[stream] = append(buf, b[3:2+n]...)
		return nil
	case SysExEnd:
		buf := p.sysex8[stream]
		if len(buf) == 0 {
			return nil
		}
		delete(p.sysex8, stream)
		return decodeSysEx8Body(append(buf, b[3:2+n]...), group)
	default:
		return nil
	}
}

func decodeSysEx8Body(body []byte, group value.UInt4) Event {
	ev, err := DecodeSysEx8(body, group)
	if err != nil {
		return nil
	}
	return ev
}
