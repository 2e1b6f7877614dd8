package ump

import (
	"fmt"

	"github.com/fjl/midisync/value"
	"github.com/pkg/errors"
)

var (
	ErrNotSysEx = errors.New("not a sysex message")
	ErrTooShort = errors.New("message too short")
	ErrBadID    = errors.New("invalid manufacturer ID")
	ErrNot7Bit  = errors.New("data byte exceeds 7 bits")
)

// ManufacturerID identifies the vendor of a system exclusive message. One-byte IDs
// are stored in the first byte. Extended IDs start with a zero byte.
type ManufacturerID [3]byte

// Manufacturer returns a one-byte manufacturer ID.
func Manufacturer(id byte) ManufacturerID {
	return ManufacturerID{id}
}

// ExtendedManufacturer returns a three-byte manufacturer ID 00 b2 b3.
func ExtendedManufacturer(b2, b3 byte) ManufacturerID {
	return ManufacturerID{0x00, b2, b3}
}

func (id ManufacturerID) Extended() bool {
	return id[0] == 0x00
}

// Bytes returns the ID as it appears in a MIDI 1.0 system exclusive message.
func (id ManufacturerID) Bytes() []byte {
	if id.Extended() {
		return []byte{id[0], id[1], id[2]}
	}
	return []byte{id[0]}
}

// Valid reports whether the ID is a legal manufacturer ID. The universal IDs
// 0x7E and 0x7F are not manufacturer IDs.
func (id ManufacturerID) Valid() bool {
	if id.Extended() {
		return id[1] <= 0x7F && id[2] <= 0x7F
	}
	return id[0] >= 0x01 && id[0] <= 0x7D
}

func (id ManufacturerID) String() string {
	if id.Extended() {
		return fmt.Sprintf("%02x %02x %02x", id[0], id[1], id[2])
	}
	return fmt.Sprintf("%02x", id[0])
}

// sysEx8Bytes returns the two-byte ID used by SysEx8.
func (id ManufacturerID) sysEx8Bytes() [2]byte {
	if id.Extended() {
		return [2]byte{0x80 | id[1]&0x7F, id[2] & 0x7F}
	}
	return [2]byte{0x00, id[0] & 0x7F}
}

// Universal is the ID of a universal system exclusive message.
type Universal byte

const (
	NonRealTime = Universal(0x7E)
	RealTime    = Universal(0x7F)
)

func (u Universal) String() string {
	switch u {
	case NonRealTime:
		return "non-realtime"
	case RealTime:
		return "realtime"
	default:
		return fmt.Sprintf("Universal(%#x)", byte(u))
	}
}

// DecodeSysEx7 decodes a MIDI 1.0 system exclusive message. The message must
// start with F0. The trailing F7 is optional, except for universal messages
// without data.
func DecodeSysEx7(raw []byte, group value.UInt4) (Event, error) {
	if len(raw) == 0 || raw[0] != 0xF0 {
		return nil, ErrNotSysEx
	}
	body := raw[1:]
	terminated := len(body) > 0 && body[len(body)-1] == 0xF7
	if terminated {
		body = body[:len(body)-1]
	}
	if len(body) == 0 {
		return nil, ErrTooShort
	}
	for i, c := range body {
		if c > 0x7F {
			return nil, errors.Wrapf(ErrNot7Bit, "byte %d of sysex body is %#x", i, c)
		}
	}

	switch body[0] {
	case byte(NonRealTime), byte(RealTime):
		if len(body) < 4 {
			return nil, errors.Wrap(ErrTooShort, "universal sysex needs device and sub-IDs")
		}
		// Sub-ID2 must be followed by data or the terminator.
		if len(body) == 4 && !terminated {
			return nil, errors.Wrap(ErrTooShort, "unterminated universal sysex")
		}
		return &UniversalSysEx7{
			Universal: Universal(body[0]),
			DeviceID:  value.UInt7(body[1]),
			SubID1:    value.UInt7(body[2]),
			SubID2:    value.UInt7(body[3]),
			Data:      clone(body[4:]),
			Group:     group,
		}, nil
	case 0x00:
		if len(body) < 3 {
			return nil, errors.Wrap(ErrTooShort, "truncated extended manufacturer ID")
		}
		return &SysEx7{
			Manufacturer: ExtendedManufacturer(body[1], body[2]),
			Data:         clone(body[3:]),
			Group:        group,
		}, nil
	default:
		return &SysEx7{
			Manufacturer: Manufacturer(body[0]),
			Data:         clone(body[1:]),
			Group:        group,
		}, nil
	}
}

// DecodeSysEx8 decodes the reassembled body of a SysEx8 message. The first byte is
// the stream ID, followed by the two-byte manufacturer ID and the data.
func DecodeSysEx8(body []byte, group value.UInt4) (Event, error) {
	if len(body) < 3 {
		return nil, ErrTooShort
	}
	stream, id1, id2 := body[0], body[1], body[2]

	switch {
	case id1 == 0x00 && (id2 == byte(NonRealTime) || id2 == byte(RealTime)):
		if len(body) < 6 {
			return nil, errors.Wrap(ErrTooShort, "universal sysex needs device and sub-IDs")
		}
		dev, ok1 := u7(body[3])
		sub1, ok2 := u7(body[4])
		sub2, ok3 := u7(body[5])
		if !ok1 || !ok2 || !ok3 {
			return nil, errors.Wrap(ErrNot7Bit, "universal sysex header")
		}
		return &UniversalSysEx8{
			StreamID:  stream,
			Universal: Universal(id2),
			DeviceID:  dev,
			SubID1:    sub1,
			SubID2:    sub2,
			Data:      clone(body[6:]),
			Group:     group,
		}, nil
	case id1 == 0x00:
		if id2 < 0x01 || id2 > 0x7D {
			return nil, errors.Wrapf(ErrBadID, "%#x", id2)
		}
		return &SysEx8{StreamID: stream, Manufacturer: Manufacturer(id2), Data: clone(body[3:]), Group: group}, nil
	case id1&0x80 != 0:
		if id2 > 0x7F {
			return nil, errors.Wrapf(ErrBadID, "%#x %#x", id1, id2)
		}
		id := ExtendedManufacturer(id1&0x7F, id2)
		return &SysEx8{StreamID: stream, Manufacturer: id, Data: clone(body[3:]), Group: group}, nil
	default:
		return nil, errors.Wrapf(ErrBadID, "%#x %#x", id1, id2)
	}
}

func clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
