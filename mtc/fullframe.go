package mtc

import (
	"bytes"

	"github.com/pkg/errors"
)

var (
	ErrNotFullFrame = errors.New("not an MTC full frame message")
	ErrTooShort     = errors.New("message too short")
)

// FullFrame is the universal real time message that carries a complete
// MTC position. It is sent when the transport locates and while it is stopped.
type FullFrame struct {
	Rate    FrameRate
	Hours   int
	Minutes int
	Seconds int
	Frames  int
}

var fullFramePrefix = []byte{0xF0, 0x7F, 0x7F, 0x01, 0x01}

const fullFrameSize = 10

// Encode appends the encoding of the message to 'b'.
func (ff *FullFrame) Encode(b []byte) []byte {
	b = append(b, fullFramePrefix...)
	b = append(b,
		byte(ff.Hours)&0x1F|byte(ff.Rate&0x3)<<5,
		byte(ff.Minutes)&0x7F,
		byte(ff.Seconds)&0x7F,
		byte(ff.Frames)&0x7F,
	)
	return append(b, 0xF7)
}

// Timecode returns the position at the timecode rate matching the MTC rate.
func (ff *FullFrame) Timecode() Timecode {
	return Timecode{
		Hours:   ff.Hours,
		Minutes: ff.Minutes,
		Seconds: ff.Seconds,
		Frames:  ff.Frames,
		Rate:    ff.Rate.DirectEquivalent(),
	}
}

// DecodeFullFrame decodes an MTC full frame message. The buffer must contain
// the complete message including F0 and F7.
func DecodeFullFrame(msg []byte) (*FullFrame, error) {
	if len(msg) < 2 || msg[0] != 0xF0 || msg[len(msg)-1] != 0xF7 {
		return nil, ErrNotFullFrame
	}
	if len(msg) < fullFrameSize {
		if bytes.HasPrefix(fullFramePrefix, msg[:len(msg)-1]) {
			return nil, ErrTooShort
		}
		return nil, ErrNotFullFrame
	}
	if !bytes.HasPrefix(msg, fullFramePrefix) {
		return nil, ErrNotFullFrame
	}
	if len(msg) != fullFrameSize {
		return nil, errors.Wrapf(ErrNotFullFrame, "bad size %d", len(msg))
	}
	hh := msg[5]
	return &FullFrame{
		Rate:    FrameRate(hh&0x60) >> 5,
		Hours:   int(hh & 0x1F),
		Minutes: int(msg[6] & 0x7F),
		Seconds: int(msg[7] & 0x7F),
		Frames:  int(msg[8] & 0x7F),
	}, nil
}
