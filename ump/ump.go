// Package ump implements the MIDI 2.0 Universal MIDI Packet format.
package ump

import "github.com/fjl/midisync/value"

// MessageType is the UMP message type, stored in the high nibble of the first byte.
type MessageType byte

const (
	Utility    MessageType = 0x0
	System     MessageType = 0x1 // system real-time and system common
	MIDI1Voice MessageType = 0x2 // MIDI 1.0 channel voice
	Data64     MessageType = 0x3 // SysEx7
	MIDI2Voice MessageType = 0x4 // MIDI 2.0 channel voice
	Data128    MessageType = 0x5 // SysEx8 and mixed data set
	FlexData   MessageType = 0xD
	UMPStream  MessageType = 0xF
)

// messageTypeWords is the size in 32-bit words of each message type,
// including the reserved ones.
var messageTypeWords = [16]int{
	Utility:    1,
	System:     1,
	MIDI1Voice: 1,
	Data64:     2,
	MIDI2Voice: 2,
	Data128:    4,
	0x6:        1,
	0x7:        1,
	0x8:        2,
	0x9:        2,
	0xA:        2,
	0xB:        3,
	0xC:        3,
	FlexData:   4,
	0xE:        4,
	UMPStream:  4,
}

// Words returns the packet size of the message type in 32-bit words.
func (mt MessageType) Words() int {
	return messageTypeWords[mt&0xF]
}

// SysExStatus is the status field of a Data64 or Data128 packet.
type SysExStatus byte

const (
	SysExComplete SysExStatus = 0x0
	SysExStart    SysExStatus = 0x1
	SysExContinue SysExStatus = 0x2
	SysExEnd      SysExStatus = 0x3

	// Data128 mixed data set headers and payloads.
	mixedDataSetHeader  SysExStatus = 0x8
	mixedDataSetPayload SysExStatus = 0x9
)

// Maximum number of payload bytes per packet.
const (
	sysEx7PacketSize = 6
	sysEx8PacketSize = 13 // excluding the stream ID
)

// Utility message status values.
const (
	utilityNoOp        = 0x0
	utilityJRClock     = 0x1
	utilityJRTimestamp = 0x2
)

// header returns the first byte of a packet.
func header(mt MessageType, group value.UInt4) byte {
	return byte(mt)<<4 | byte(group&0xF)
}

func appendWord(b []byte, w uint32) []byte {
	return append(b, byte(w>>24), byte(w>>16), byte(w>>8), byte(w))
}

func word(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func u7(b byte) (value.UInt7, bool) {
	return value.Exactly[value.UInt7](b)
}
