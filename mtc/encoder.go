package mtc

import "gitlab.com/gomidi/midi/v2"

// Encoder generates MTC messages for a moving position.
//
// The position is kept as an MTC frame number plus the quarter frame piece
// that is sent next. Each call to Increment or Decrement returns the next
// quarter frame message in the respective direction.
type Encoder struct {
	localRate TimecodeRate
	pos       position // MTC position, frames are always even
	piece     int
	started   bool
}

// NewEncoder creates an encoder positioned at 00:00:00:00.
func NewEncoder(rate TimecodeRate) *Encoder {
	if !rate.Valid() {
		rate = FPS30
	}
	return &Encoder{localRate: rate}
}

// MTCRate returns the rate that messages are sent at.
func (e *Encoder) MTCRate() FrameRate {
	return e.localRate.Family()
}

// Locate moves the encoder to tc. If tc has a valid rate, it becomes the
// local rate of the encoder. The next call to Increment or Decrement sends
// the quarter frame for the new position without advancing.
func (e *Encoder) Locate(tc Timecode) {
	if tc.Rate.Valid() {
		e.localRate = tc.Rate
	}
	frames, piece := e.localRate.MTCFrames(float64(tc.Frames))
	e.pos = position{tc.Hours, tc.Minutes, tc.Seconds, frames}
	e.piece = piece
	e.started = false
}

// Timecode returns the current position at the local rate.
func (e *Encoder) Timecode() Timecode {
	tc := e.pos.at(e.localRate)
	if f, ok := e.MTCRate().ScaledFrames(e.pos.frames, e.piece, e.localRate); ok {
		tc.Frames = int(f)
	}
	return tc
}

// Increment advances by one quarter frame and returns the message to send.
func (e *Encoder) Increment() midi.Message {
	if e.started {
		if e.piece < 7 {
			e.piece++
		} else {
			e.pos = positionOf(e.pos.at(e.MTCRate().DirectEquivalent()).Add(2))
			e.piece = 0
		}
	}
	e.started = true
	return e.QuarterFrame()
}

// Decrement moves back by one quarter frame and returns the message to send.
func (e *Encoder) Decrement() midi.Message {
	if e.started {
		if e.piece > 0 {
			e.piece--
		} else {
			e.pos = positionOf(e.pos.at(e.MTCRate().DirectEquivalent()).Sub(2))
			e.piece = 7
		}
	}
	e.started = true
	return e.QuarterFrame()
}

// QuarterFrame returns the quarter frame message for the current piece.
func (e *Encoder) QuarterFrame() midi.Message {
	return midi.Message{0xF1, e.quarterFrameData()}
}

func (e *Encoder) quarterFrameData() byte {
	p := e.pos
	var v int
	switch e.piece {
	case 0:
		v = p.frames & 0xF
	case 1:
		v = p.frames & 0x10 >> 4
	case 2:
		v = p.seconds & 0xF
	case 3:
		v = p.seconds & 0x30 >> 4
	case 4:
		v = p.minutes & 0xF
	case 5:
		v = p.minutes & 0x30 >> 4
	case 6:
		v = p.hours & 0xF
	case 7:
		v = p.hours&0x10>>4 | int(e.MTCRate())<<1
	}
	return byte(e.piece<<4 | v)
}

// FullFrame returns the full frame message for the current position. The
// second half of a quarter frame cycle rounds up to the next frame.
func (e *Encoder) FullFrame() *FullFrame {
	rate := e.MTCRate()
	tc := e.pos.at(rate.DirectEquivalent())
	if e.piece >= 4 && tc.Valid() {
		tc = tc.Add(1)
	}
	return &FullFrame{
		Rate:    rate,
		Hours:   tc.Hours,
		Minutes: tc.Minutes,
		Seconds: tc.Seconds,
		Frames:  tc.Frames,
	}
}
