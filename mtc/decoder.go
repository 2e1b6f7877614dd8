// Package mtc implements MIDI Time Code: decoding of full frame and quarter frame
// messages, timecode generation and a receiver that locks onto incoming MTC.
package mtc

import "fmt"

// Direction is the playback direction inferred from the order of quarter frames.
type Direction int

const (
	Forwards Direction = iota
	Backwards
	Ambiguous
)

func (d Direction) String() string {
	switch d {
	case Forwards:
		return "forwards"
	case Backwards:
		return "backwards"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// directionOf compares two consecutive quarter frame piece numbers.
func directionOf(prev, next int) Direction {
	switch {
	case (prev+1)%8 == next:
		return Forwards
	case (prev+7)%8 == next:
		return Backwards
	default:
		return Ambiguous
	}
}

// Source identifies the kind of message that produced an update.
type Source int

const (
	FullFrameMessage Source = iota
	QuarterFrameMessage
)

func (s Source) String() string {
	if s == FullFrameMessage {
		return "full frame"
	}
	return "quarter frame"
}

// Update is emitted by the decoder whenever a new timecode is known.
type Update struct {
	Timecode  Timecode
	Source    Source
	Direction Direction
	MTCRate   FrameRate // rate of the incoming MTC

	// DisplayNeedsUpdate is false when the position equals the one reported
	// by the previous update. Quarter frames repeat the same frame number
	// several times.
	DisplayNeedsUpdate bool
}

type position struct {
	hours, minutes, seconds, frames int
}

func (p position) at(rate TimecodeRate) Timecode {
	return Timecode{Hours: p.hours, Minutes: p.minutes, Seconds: p.seconds, Frames: p.frames, Rate: rate}
}

func positionOf(tc Timecode) position {
	return position{tc.Hours, tc.Minutes, tc.Seconds, tc.Frames}
}

const allPieces = 0xFF

// Decoder turns a stream of MTC messages into timecode updates.
//
// A quarter frame cycle transmits one position in eight messages spread over
// two frames, so the position is only known after a complete cycle. The
// decoder reports the position of the last complete cycle advanced by the
// two frames that passed while it was transmitted, and interpolates between
// cycles using the quarter frame piece number.
type Decoder struct {
	localRate TimecodeRate
	mtcRate   FrameRate
	timecode  Timecode
	direction Direction

	// quarter frame state
	nibbles   [8]byte
	received  uint8 // bit n set when piece n was received
	lastPiece int
	synced    bool
	raw       position
	snapshot  position
	snapDir   Direction
	delta     int
	hasDelta  bool
	lastSent  position
	hasSent   bool
}

// NewDecoder creates a decoder. If localRate is nonzero, decoded positions are
// scaled to that rate whenever it is transmitted at the incoming MTC rate.
func NewDecoder(localRate TimecodeRate) *Decoder {
	d := &Decoder{localRate: localRate, mtcRate: Rate30}
	d.ResetQuarterFrameBuffer()
	d.ResetTimecode()
	return d
}

// SetLocalRate changes the rate decoded positions are scaled to. Zero disables scaling.
func (d *Decoder) SetLocalRate(rate TimecodeRate) {
	d.localRate = rate
}

func (d *Decoder) LocalRate() TimecodeRate { return d.localRate }

// MTCRate returns the MTC rate of the most recently received message.
func (d *Decoder) MTCRate() FrameRate { return d.mtcRate }

// Timecode returns the most recently decoded position.
func (d *Decoder) Timecode() Timecode { return d.timecode }

// Direction returns the direction inferred from the last quarter frame.
func (d *Decoder) Direction() Direction { return d.direction }

// Receive handles a MIDI 1.0 message. Messages other than full frame and quarter
// frame messages are ignored. The boolean result reports whether an update was
// produced.
func (d *Decoder) Receive(msg []byte) (Update, bool) {
	switch {
	case len(msg) == 2 && msg[0] == 0xF1:
		return d.QuarterFrame(msg[1])
	case len(msg) > 0 && msg[0] == 0xF0:
		ff, err := DecodeFullFrame(msg)
		if err != nil {
			return Update{}, false
		}
		return d.FullFrame(ff), true
	}
	return Update{}, false
}

// FullFrame applies a full frame message. The position takes effect immediately.
func (d *Decoder) FullFrame(ff *FullFrame) Update {
	d.mtcRate = ff.Rate
	d.raw = position{ff.Hours, ff.Minutes, ff.Seconds, ff.Frames}

	tc := ff.Timecode()
	if d.localRate != 0 {
		if f, ok := ff.Rate.ScaledFrames(ff.Frames, 0, d.localRate); ok {
			tc.Frames = int(f)
			tc.Rate = d.localRate
		}
	}
	return d.emit(tc, FullFrameMessage)
}

// QuarterFrame applies the data byte of a quarter frame message.
func (d *Decoder) QuarterFrame(data byte) (Update, bool) {
	piece := int(data&0x70) >> 4
	d.direction = directionOf(d.lastPiece, piece)
	if d.synced {
		if !d.hasDelta {
			d.delta, d.hasDelta = 0, true
		}
		switch d.direction {
		case Forwards:
			d.delta++
		case Backwards:
			d.delta--
		}
	}

	d.nibbles[piece] = data & 0x0F
	d.received |= 1 << piece
	d.updateRaw(piece)
	if piece == 7 {
		d.mtcRate = FrameRate(data&0x06) >> 1
	}

	if piece == 0 && d.received == allPieces {
		d.synced = true
		if !d.hasDelta || d.delta == 8 || d.delta == -8 {
			d.snapshot = d.raw
			d.snapDir = d.direction
		}
		d.delta, d.hasDelta = 0, true
	}
	d.lastPiece = piece

	if d.received != allPieces || !d.synced {
		return Update{}, false
	}

	tc := d.snapshot.at(d.mtcRate.DirectEquivalent())
	switch {
	case d.delta >= 0 && d.snapDir != Backwards:
		if tc.Valid() {
			tc = tc.Add(2)
		}
	case d.delta < 0 && d.snapDir == Backwards:
		if tc.Valid() {
			tc = tc.Sub(2)
		}
	}
	if f, ok := d.mtcRate.ScaledFrames(tc.Frames, piece, d.localRate); ok {
		tc.Frames = int(f)
		tc.Rate = d.localRate
	} else if piece >= 4 {
		tc.Frames++
	}
	return d.emit(tc, QuarterFrameMessage), true
}

// updateRaw recomputes the field of the given piece. A field is complete when
// the second of its two pieces arrives, which depends on the direction.
func (d *Decoder) updateRaw(piece int) {
	lsbPiece := piece&1 == 0
	if lsbPiece && d.direction != Backwards || !lsbPiece && d.direction != Forwards {
		return
	}
	n := d.nibbles[:]
	switch piece {
	case 0, 1:
		d.raw.frames = int(n[0]) | int(n[1]&0x1)<<4
	case 2, 3:
		d.raw.seconds = int(n[2]) | int(n[3]&0x3)<<4
	case 4, 5:
		d.raw.minutes = int(n[4]) | int(n[5]&0x3)<<4
	case 6, 7:
		d.raw.hours = int(n[6]) | int(n[7]&0x1)<<4
	}
}

func (d *Decoder) emit(tc Timecode, src Source) Update {
	p := positionOf(tc)
	changed := !d.hasSent || p != d.lastSent
	d.lastSent, d.hasSent = p, true
	d.timecode = tc
	return Update{
		Timecode:           tc,
		Source:             src,
		Direction:          d.direction,
		MTCRate:            d.mtcRate,
		DisplayNeedsUpdate: changed,
	}
}

// ResetQuarterFrameBuffer discards all received quarter frames. The next
// position is reported after a complete cycle has been received again.
func (d *Decoder) ResetQuarterFrameBuffer() {
	d.nibbles = [8]byte{}
	d.received = 0
	d.lastPiece = 0
	d.synced = false
	d.snapshot = position{}
	d.snapDir = Ambiguous
	d.delta, d.hasDelta = 0, false
	d.lastSent, d.hasSent = position{}, false
}

// ResetTimecode sets the position to zero.
func (d *Decoder) ResetTimecode() {
	d.raw = position{}
	rate := d.localRate
	if rate == 0 {
		rate = d.mtcRate.DirectEquivalent()
	}
	d.timecode = Timecode{Rate: rate}
}
