package mtc

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Timecode is a SMPTE timecode position. The fields are not required to be
// valid for Rate: the decoder reports raw received values as they are.
type Timecode struct {
	Hours   int
	Minutes int
	Seconds int
	Frames  int
	Rate    TimecodeRate
}

func (tc Timecode) String() string {
	sep := ":"
	if tc.Rate.IsDrop() {
		sep = ";"
	}
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", tc.Hours, tc.Minutes, tc.Seconds, sep, tc.Frames)
}

// Valid reports whether tc is a position that exists at its rate.
func (tc Timecode) Valid() bool {
	switch {
	case !tc.Rate.Valid():
		return false
	case tc.Hours < 0 || tc.Hours > 23:
		return false
	case tc.Minutes < 0 || tc.Minutes > 59:
		return false
	case tc.Seconds < 0 || tc.Seconds > 59:
		return false
	case tc.Frames < 0 || tc.Frames >= tc.Rate.FPS():
		return false
	}
	// Drop-frame timecode skips the first frame numbers of each minute,
	// except every tenth minute.
	if d := tc.Rate.droppedFrames(); d > 0 && tc.Seconds == 0 && tc.Minutes%10 != 0 {
		return tc.Frames >= d
	}
	return true
}

// FrameCount returns the number of frames from 00:00:00:00 to tc.
func (tc Timecode) FrameCount() int {
	fps := tc.Rate.FPS()
	minutes := tc.Hours*60 + tc.Minutes
	n := (minutes*60+tc.Seconds)*fps + tc.Frames
	if d := tc.Rate.droppedFrames(); d > 0 {
		n -= d * (minutes - minutes/10)
	}
	return n
}

// FramesPerDay returns the number of frames in 24 hours at rate r.
func (r TimecodeRate) FramesPerDay() int {
	return Timecode{Hours: 24, Rate: r}.FrameCount()
}

// FromFrameCount returns the timecode n frames after 00:00:00:00. Counts
// outside of one day wrap around.
func FromFrameCount(n int, rate TimecodeRate) Timecode {
	n = wrap(n, rate.FramesPerDay())
	fps := rate.FPS()
	if d := rate.droppedFrames(); d > 0 {
		perMinute := fps*60 - d
		perTenMinutes := fps*600 - d*9
		tens, rem := n/perTenMinutes, n%perTenMinutes
		n += d * 9 * tens
		if rem > d {
			n += d * ((rem - d) / perMinute)
		}
	}
	return Timecode{
		Hours:   n / (fps * 3600),
		Minutes: n / (fps * 60) % 60,
		Seconds: n / fps % 60,
		Frames:  n % fps,
		Rate:    rate,
	}
}

func wrap(n, size int) int {
	n %= size
	if n < 0 {
		n += size
	}
	return n
}

// Add returns tc advanced by n frames, wrapping around at 24 hours.
func (tc Timecode) Add(n int) Timecode {
	return FromFrameCount(tc.FrameCount()+n, tc.Rate)
}

// Sub returns tc moved back by n frames, wrapping around at 00:00:00:00.
func (tc Timecode) Sub(n int) Timecode {
	return tc.Add(-n)
}

// Compare returns -1, 0 or 1 depending on whether tc is before, equal to or after o.
// Timecodes with different rates are compared by their real time position.
func (tc Timecode) Compare(o Timecode) int {
	var a, b int64
	if tc.Rate == o.Rate {
		a, b = int64(tc.FrameCount()), int64(o.FrameCount())
	} else {
		a, b = int64(tc.Duration()), int64(o.Duration())
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Duration returns the real time elapsed from 00:00:00:00 to tc.
func (tc Timecode) Duration() time.Duration {
	return FrameDuration(tc.FrameCount(), tc.Rate)
}

var ErrBadTimecode = errors.New("invalid timecode")

// ParseTimecode parses "HH:MM:SS:FF" at the given rate. The separator before
// the frames may also be ';' or '.'. The result must be valid at rate.
func ParseTimecode(s string, rate TimecodeRate) (Timecode, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == ':' || r == ';' || r == '.'
	})
	if len(fields) != 4 {
		return Timecode{}, errors.Wrapf(ErrBadTimecode, "%q", s)
	}
	var v [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Timecode{}, errors.Wrapf(ErrBadTimecode, "%q", s)
		}
		v[i] = n
	}
	tc := Timecode{Hours: v[0], Minutes: v[1], Seconds: v[2], Frames: v[3], Rate: rate}
	if !tc.Valid() {
		return Timecode{}, errors.Wrapf(ErrBadTimecode, "%q does not exist at %v fps", s, rate)
	}
	return tc, nil
}
