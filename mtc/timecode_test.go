package mtc

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func tc(h, m, s, f int, rate TimecodeRate) Timecode {
	return Timecode{Hours: h, Minutes: m, Seconds: s, Frames: f, Rate: rate}
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		tc    Timecode
		count int
	}{
		{tc(0, 0, 1, 0, FPS25), 25},
		{tc(1, 0, 0, 0, FPS24), 86400},
		{tc(0, 0, 59, 29, FPS29_97Drop), 1799},
		{tc(0, 1, 0, 2, FPS29_97Drop), 1800},
		{tc(0, 10, 0, 0, FPS29_97Drop), 17982},
		{tc(0, 1, 0, 4, FPS59_94Drop), 3600},
		{tc(0, 1, 0, 8, FPS120Drop), 7200},
	}
	for _, test := range tests {
		if n := test.tc.FrameCount(); n != test.count {
			t.Errorf("%v@%v: FrameCount() = %d, want %d", test.tc, test.tc.Rate, n, test.count)
		}
		if back := FromFrameCount(test.count, test.tc.Rate); back != test.tc {
			t.Errorf("FromFrameCount(%d, %v) = %v, want %v", test.count, test.tc.Rate, back, test.tc)
		}
	}
}

func TestFramesPerDay(t *testing.T) {
	if n := FPS24.FramesPerDay(); n != 2073600 {
		t.Errorf("24 fps: %d frames per day", n)
	}
	if n := FPS29_97Drop.FramesPerDay(); n != 2589408 {
		t.Errorf("29.97d fps: %d frames per day", n)
	}
}

func TestTimecodeValid(t *testing.T) {
	tests := []struct {
		tc    Timecode
		valid bool
	}{
		{tc(0, 0, 0, 23, FPS24), true},
		{tc(0, 0, 0, 24, FPS24), false},
		{tc(23, 59, 59, 29, FPS30), true},
		{tc(24, 0, 0, 0, FPS30), false},
		{tc(0, 60, 0, 0, FPS30), false},
		{tc(0, 0, -1, 0, FPS30), false},
		{tc(0, 1, 0, 0, FPS29_97Drop), false},
		{tc(0, 1, 0, 1, FPS29_97Drop), false},
		{tc(0, 1, 0, 2, FPS29_97Drop), true},
		{tc(0, 10, 0, 0, FPS29_97Drop), true},
		{tc(0, 1, 0, 3, FPS60Drop), false},
		{tc(0, 1, 0, 0, FPS29_97), true},
		{tc(0, 0, 0, 0, 0), false},
	}
	for _, test := range tests {
		if v := test.tc.Valid(); v != test.valid {
			t.Errorf("%v@%v: Valid() = %t, want %t", test.tc, test.tc.Rate, v, test.valid)
		}
	}
}

func TestTimecodeAdd(t *testing.T) {
	tests := []struct {
		tc   Timecode
		n    int
		want Timecode
	}{
		{tc(1, 2, 3, 4, FPS24), 2, tc(1, 2, 3, 6, FPS24)},
		{tc(1, 2, 3, 22, FPS24), 2, tc(1, 2, 4, 0, FPS24)},
		{tc(23, 59, 59, 23, FPS24), 2, tc(0, 0, 0, 1, FPS24)},
		{tc(0, 0, 0, 0, FPS24), -1, tc(23, 59, 59, 23, FPS24)},
		{tc(0, 0, 59, 28, FPS29_97Drop), 2, tc(0, 1, 0, 2, FPS29_97Drop)},
		{tc(0, 1, 0, 2, FPS29_97Drop), -1, tc(0, 0, 59, 29, FPS29_97Drop)},
		{tc(0, 9, 59, 29, FPS29_97Drop), 1, tc(0, 10, 0, 0, FPS29_97Drop)},
	}
	for _, test := range tests {
		if got := test.tc.Add(test.n); got != test.want {
			t.Errorf("%v.Add(%d) = %v, want %v", test.tc, test.n, got, test.want)
		}
		if got := test.want.Sub(test.n); got != test.tc {
			t.Errorf("%v.Sub(%d) = %v, want %v", test.want, test.n, got, test.tc)
		}
	}
}

func TestTimecodeCompare(t *testing.T) {
	a := tc(1, 0, 0, 0, FPS24)
	if c := a.Compare(a); c != 0 {
		t.Errorf("Compare(self) = %d", c)
	}
	if c := a.Compare(a.Add(1)); c != -1 {
		t.Errorf("Compare(later) = %d", c)
	}
	if c := a.Add(1).Compare(a); c != 1 {
		t.Errorf("Compare(earlier) = %d", c)
	}
	// Different rates compare by real time.
	if c := tc(0, 0, 1, 0, FPS25).Compare(tc(0, 0, 0, 29, FPS30)); c != 1 {
		t.Errorf("Compare(25 fps, 30 fps) = %d", c)
	}
}

func TestTimecodeString(t *testing.T) {
	if s := tc(1, 2, 3, 4, FPS24).String(); s != "01:02:03:04" {
		t.Errorf("wrong string %q", s)
	}
	if s := tc(0, 1, 0, 2, FPS29_97Drop).String(); s != "00:01:00;02" {
		t.Errorf("wrong drop-frame string %q", s)
	}
}

func TestFrameDuration(t *testing.T) {
	tests := []struct {
		n    int
		rate TimecodeRate
		want time.Duration
	}{
		{24, FPS24, time.Second},
		{16, FPS24, 666666666 * time.Nanosecond},
		{30000, FPS29_97, 1001 * time.Second},
		{10, FPS30, 333333333 * time.Nanosecond},
		{FPS119_88.FramesPerDay(), FPS119_88, 86486400 * time.Millisecond},
	}
	for _, test := range tests {
		if d := FrameDuration(test.n, test.rate); d != test.want {
			t.Errorf("FrameDuration(%d, %v) = %v, want %v", test.n, test.rate, d, test.want)
		}
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		s    string
		want TimecodeRate
	}{
		{"24", FPS24},
		{"29.97d", FPS29_97Drop},
		{"29.97D", FPS29_97Drop},
		{" 48fps", FPS48},
		{"119.88d", FPS119_88Drop},
	}
	for _, test := range tests {
		r, err := ParseRate(test.s)
		if err != nil || r != test.want {
			t.Errorf("ParseRate(%q) = %v, %v; want %v", test.s, r, err, test.want)
		}
	}
	if _, err := ParseRate("31"); !errors.Is(err, ErrUnknownRate) {
		t.Errorf("ParseRate(31) error = %v", err)
	}
}

func TestRateFamily(t *testing.T) {
	families := map[FrameRate][]TimecodeRate{
		Rate24:       {FPS23_976, FPS24, FPS24_98, FPS47_952, FPS48, FPS95_904, FPS96},
		Rate25:       {FPS25, FPS50, FPS100},
		Rate30:       {FPS29_97, FPS30, FPS59_94, FPS60, FPS90, FPS119_88, FPS120},
		Rate2997Drop: {FPS29_97Drop, FPS30Drop, FPS59_94Drop, FPS60Drop, FPS119_88Drop, FPS120Drop},
	}
	total := 0
	for family, members := range families {
		for _, r := range members {
			if f := r.Family(); f != family {
				t.Errorf("%v: Family() = %v, want %v", r, f, family)
			}
			if r.IsDrop() != family.IsDrop() {
				t.Errorf("%v: IsDrop() = %t", r, r.IsDrop())
			}
		}
		if de := family.DirectEquivalent(); de.Family() != family {
			t.Errorf("%v: direct equivalent %v is in family %v", family, de, de.Family())
		}
		total += len(members)
	}
	if total != int(maxTimecodeRate) {
		t.Errorf("families cover %d rates, have %d", total, maxTimecodeRate)
	}
}

func TestScaledFrames(t *testing.T) {
	tests := []struct {
		mtc    FrameRate
		frames int
		qf     int
		rate   TimecodeRate
		want   float64
		ok     bool
	}{
		{Rate24, 10, 4, FPS24, 11, true},
		{Rate24, 8, 0, FPS48, 16, true},
		{Rate24, 8, 1, FPS48, 16.5, true},
		{Rate24, 8, 3, FPS95_904, 35, true},
		{Rate30, 10, 2, FPS90, 31.5, true},
		{Rate30, -3, 9, FPS30, 1.75, true},
		{Rate24, 0, 0, FPS24_98, 0, true},
		{Rate24, 10, 0, FPS24_98, 10*25.0/24.0 + 0.24, true},
		{Rate2997Drop, 4, 0, FPS59_94Drop, 8, true},
		{Rate25, 1, 0, FPS24, 0, false},
		{Rate30, 1, 0, FPS29_97Drop, 0, false},
		{Rate30, 1, 0, 0, 0, false},
	}
	for _, test := range tests {
		f, ok := test.mtc.ScaledFrames(test.frames, test.qf, test.rate)
		if ok != test.ok || math.Abs(f-test.want) > 1e-9 {
			t.Errorf("%v.ScaledFrames(%d, %d, %v) = %v, %t; want %v, %t",
				test.mtc, test.frames, test.qf, test.rate, f, ok, test.want, test.ok)
		}
	}
}

func TestMTCFrames(t *testing.T) {
	tests := []struct {
		rate       TimecodeRate
		frames     float64
		raw, piece int
	}{
		{FPS30, 10, 10, 0},
		{FPS30, 11, 10, 4},
		{FPS24, 23, 22, 4},
		{FPS48, 17, 8, 2},
		{FPS48, 16, 8, 0},
		{FPS100, 7, 0, 7},
	}
	for _, test := range tests {
		raw, piece := test.rate.MTCFrames(test.frames)
		if raw != test.raw || piece != test.piece {
			t.Errorf("%v.MTCFrames(%v) = %d, %d; want %d, %d", test.rate, test.frames, raw, piece, test.raw, test.piece)
		}
	}
}

func TestParseTimecode(t *testing.T) {
	tests := []struct {
		s    string
		rate TimecodeRate
		want Timecode
		err  error
	}{
		{"01:02:03:04", FPS24, tc(1, 2, 3, 4, FPS24), nil},
		{"00:01:00;02", FPS29_97Drop, tc(0, 1, 0, 2, FPS29_97Drop), nil},
		{" 10:00:00.59 ", FPS60, tc(10, 0, 0, 59, FPS60), nil},
		{"00:01:00;00", FPS29_97Drop, Timecode{}, ErrBadTimecode},
		{"01:02:03", FPS24, Timecode{}, ErrBadTimecode},
		{"01:02:03:xx", FPS24, Timecode{}, ErrBadTimecode},
		{"01:02:03:24", FPS24, Timecode{}, ErrBadTimecode},
	}
	for _, test := range tests {
		got, err := ParseTimecode(test.s, test.rate)
		if !errors.Is(err, test.err) {
			t.Errorf("ParseTimecode(%q) error %v, want %v", test.s, err, test.err)
		}
		if got != test.want {
			t.Errorf("ParseTimecode(%q) = %v, want %v", test.s, got, test.want)
		}
	}
}
