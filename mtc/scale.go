package mtc

import "math"

// ScaledFrames converts an MTC frame number and quarter frame offset into a
// frame number at the given timecode rate. It returns false if rate is not
// transmitted at MTC rate r.
//
// Negative frame numbers are treated as zero, and the quarter frame offset is
// clamped to 0..7.
func (r FrameRate) ScaledFrames(frames, quarterFrames int, rate TimecodeRate) (float64, bool) {
	if !rate.Valid() || rate.Family() != r {
		return 0, false
	}
	if frames < 0 {
		frames = 0
	}
	if quarterFrames < 0 {
		quarterFrames = 0
	} else if quarterFrames > 7 {
		quarterFrames = 7
	}

	f := float64(frames) + float64(quarterFrames)*0.25
	if rate == r.DirectEquivalent() {
		return f, true
	}
	f *= rate.ScaleFactor()
	if rate == FPS24_98 && f > 0 {
		f += 0.24
	}
	return f, true
}

// MTCFrames converts a frame number at rate r into the MTC frame number and
// quarter frame offset that represent it. MTC frame numbers are always even
// because a full quarter frame cycle spans two frames.
func (r TimecodeRate) MTCFrames(frames float64) (raw, quarterFrames int) {
	factor := r.ScaleFactor()
	if r == FPS24_98 {
		factor -= 0.001
	}
	scaled := frames / factor
	frac := math.Mod(scaled, 2)
	return int(scaled - frac), int(frac / 0.25)
}
