package mtc

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// FrameRate is the frame rate carried in MTC messages. The value is the
// two-bit rate code of the full frame and quarter frame messages.
type FrameRate uint8

const (
	Rate24       FrameRate = 0b00
	Rate25       FrameRate = 0b01
	Rate2997Drop FrameRate = 0b10
	Rate30       FrameRate = 0b11
)

func (r FrameRate) String() string {
	switch r {
	case Rate24:
		return "MTC-24"
	case Rate25:
		return "MTC-25"
	case Rate2997Drop:
		return "MTC-29.97d"
	case Rate30:
		return "MTC-30"
	default:
		return fmt.Sprintf("FrameRate(%d)", uint8(r))
	}
}

// FPS returns the number of frames per second transmitted at rate r.
func (r FrameRate) FPS() int {
	switch r {
	case Rate24:
		return 24
	case Rate25:
		return 25
	default:
		return 30
	}
}

func (r FrameRate) IsDrop() bool {
	return r == Rate2997Drop
}

// DirectEquivalent returns the timecode rate that matches r one-to-one.
func (r FrameRate) DirectEquivalent() TimecodeRate {
	switch r {
	case Rate24:
		return FPS24
	case Rate25:
		return FPS25
	case Rate2997Drop:
		return FPS29_97Drop
	default:
		return FPS30
	}
}

// TimecodeRate is a timecode frame rate. Every timecode rate is transmitted
// over MTC at one of the four MTC frame rates. The zero value means no rate.
type TimecodeRate uint8

const (
	FPS23_976 TimecodeRate = iota + 1
	FPS24
	FPS24_98
	FPS25
	FPS29_97
	FPS29_97Drop
	FPS30
	FPS30Drop
	FPS47_952
	FPS48
	FPS50
	FPS59_94
	FPS59_94Drop
	FPS60
	FPS60Drop
	FPS90
	FPS95_904
	FPS96
	FPS100
	FPS119_88
	FPS119_88Drop
	FPS120
	FPS120Drop

	maxTimecodeRate = FPS120Drop
)

type rateInfo struct {
	name     string
	fps      int   // nominal frames per second
	num, den int64 // real frames per second is num/den
	drop     bool
	family   FrameRate
	scale    float64 // timecode frames per MTC frame
}

var rates = [...]rateInfo{
	FPS23_976:     {"23.976", 24, 24000, 1001, false, Rate24, 1},
	FPS24:         {"24", 24, 24, 1, false, Rate24, 1},
	FPS24_98:      {"24.98", 25, 25000, 1001, false, Rate24, 25.0 / 24.0},
	FPS25:         {"25", 25, 25, 1, false, Rate25, 1},
	FPS29_97:      {"29.97", 30, 30000, 1001, false, Rate30, 1},
	FPS29_97Drop:  {"29.97d", 30, 30000, 1001, true, Rate2997Drop, 1},
	FPS30:         {"30", 30, 30, 1, false, Rate30, 1},
	FPS30Drop:     {"30d", 30, 30, 1, true, Rate2997Drop, 1},
	FPS47_952:     {"47.952", 48, 48000, 1001, false, Rate24, 2},
	FPS48:         {"48", 48, 48, 1, false, Rate24, 2},
	FPS50:         {"50", 50, 50, 1, false, Rate25, 2},
	FPS59_94:      {"59.94", 60, 60000, 1001, false, Rate30, 2},
	FPS59_94Drop:  {"59.94d", 60, 60000, 1001, true, Rate2997Drop, 2},
	FPS60:         {"60", 60, 60, 1, false, Rate30, 2},
	FPS60Drop:     {"60d", 60, 60, 1, true, Rate2997Drop, 2},
	FPS90:         {"90", 90, 90, 1, false, Rate30, 3},
	FPS95_904:     {"95.904", 96, 96000, 1001, false, Rate24, 4},
	FPS96:         {"96", 96, 96, 1, false, Rate24, 4},
	FPS100:        {"100", 100, 100, 1, false, Rate25, 4},
	FPS119_88:     {"119.88", 120, 120000, 1001, false, Rate30, 4},
	FPS119_88Drop: {"119.88d", 120, 120000, 1001, true, Rate2997Drop, 4},
	FPS120:        {"120", 120, 120, 1, false, Rate30, 4},
	FPS120Drop:    {"120d", 120, 120, 1, true, Rate2997Drop, 4},
}

// info returns the properties of r. Invalid rates behave like 30 fps.
func (r TimecodeRate) info() rateInfo {
	if !r.Valid() {
		return rates[FPS30]
	}
	return rates[r]
}

func (r TimecodeRate) Valid() bool {
	return r >= FPS23_976 && r <= maxTimecodeRate
}

func (r TimecodeRate) String() string {
	if !r.Valid() {
		return fmt.Sprintf("TimecodeRate(%d)", uint8(r))
	}
	return rates[r].name
}

// FPS returns the nominal number of frames per second, i.e. the number of
// frame numbers in one timecode second.
func (r TimecodeRate) FPS() int { return r.info().fps }

// IsDrop reports whether r is a drop-frame rate.
func (r TimecodeRate) IsDrop() bool { return r.info().drop }

// Family returns the MTC frame rate used to transmit timecode at rate r.
func (r TimecodeRate) Family() FrameRate { return r.info().family }

// ScaleFactor returns the number of timecode frames per MTC frame.
func (r TimecodeRate) ScaleFactor() float64 { return r.info().scale }

// CompatibleWith reports whether timecode at r and o can be converted into
// each other without changing the hours, minutes and seconds.
func (r TimecodeRate) CompatibleWith(o TimecodeRate) bool {
	return r.Family() == o.Family()
}

// FrameDuration returns the real time length of n frames.
func FrameDuration(n int, r TimecodeRate) time.Duration {
	info := r.info()
	t := int64(n) * info.den
	sec, rem := t/info.num, t%info.num
	return time.Duration(sec)*time.Second + time.Duration(rem*int64(time.Second)/info.num)
}

// droppedFrames returns the number of frame numbers skipped at the start of
// each minute not divisible by ten.
func (r TimecodeRate) droppedFrames() int {
	if !r.IsDrop() {
		return 0
	}
	return r.FPS() / 15
}

var ErrUnknownRate = errors.New("unknown timecode frame rate")

// ParseRate parses a timecode rate name like "29.97d" or "48".
func ParseRate(s string) (TimecodeRate, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, "fps")
	for r := FPS23_976; r <= maxTimecodeRate; r++ {
		if rates[r].name == name {
			return r, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownRate, "%q", s)
}
