package value

import "math"

// midpointBias nudges values above the midpoint so that converting them to a
// unit interval and back does not truncate one step low.
const midpointBias = 0.0000000000023283

// Upscale converts the from-bit value v to a to-bit value. Values above the
// source midpoint have their low bits filled with a repeating pattern of the
// source's lower from-1 bits, so the maximum maps to the maximum.
//
// Both widths must be in [1, 32] and to must not be smaller than from.
func Upscale(v uint32, from, to int) uint32 {
	shift := to - from
	out := uint64(v) << uint(shift)
	if from < 2 || uint64(v) <= 1<<uint(from-1) {
		return uint32(out)
	}
	repeatBits := uint64(v) & (1<<uint(from-1) - 1)
	var r uint64
	if align := shift - (from - 1); align >= 0 {
		r = repeatBits << uint(align)
	} else {
		r = repeatBits >> uint(-align)
	}
	for r != 0 {
		out |= r
		r >>= uint(from - 1)
	}
	return uint32(out)
}

// Downscale converts the from-bit value v to a to-bit value by dropping
// the low bits.
func Downscale(v uint32, from, to int) uint32 {
	return v >> uint(from-to)
}

func Upscale7To16(v UInt7) uint16 { return uint16(Upscale(uint32(v), 7, 16)) }
func Upscale7To32(v UInt7) uint32 { return Upscale(uint32(v), 7, 32) }
func Upscale14To32(v UInt14) uint32 { return Upscale(uint32(v), 14, 32) }
func Upscale16To32(v uint16) uint32 { return Upscale(uint32(v), 16, 32) }
func Downscale16To7(v uint16) UInt7 { return UInt7(Downscale(uint32(v), 16, 7)) }
func Downscale32To7(v uint32) UInt7 { return UInt7(Downscale(v, 32, 7)) }
func Downscale32To14(v uint32) UInt14 { return UInt14(Downscale(v, 32, 14)) }
func Downscale32To16(v uint32) uint16 { return uint16(Downscale(v, 32, 16)) }

func rangeOf(bits int) (mid, max uint64) {
	return 1 << uint(bits-1), 1<<uint(bits) - 1
}

// UnitInterval converts the bits-wide value v to [0, 1]. Values up to the
// midpoint map linearly onto [0, 0.5], values above it onto (0.5, 1] and the
// maximum maps to exactly 1.
func UnitInterval(v uint32, bits int) float64 {
	mid, max := rangeOf(bits)
	switch x := uint64(v); {
	case x <= mid:
		return float64(x) / float64(mid*2)
	case x >= max:
		return 1
	default:
		return 0.5 + midpointBias + float64(x-mid)/float64(2*(max-mid))
	}
}

// FromUnitInterval converts f to a bits-wide value. It is the inverse of
// UnitInterval. f is clamped to [0, 1].
func FromUnitInterval(f float64, bits int) uint32 {
	mid, max := rangeOf(bits)
	f = clampFloat(f, 0, 1)
	if f <= 0.5 {
		return uint32(f * float64(mid*2))
	}
	v := mid + uint64((f-0.5)*float64(2*(max-mid)))
	if v > max {
		v = max
	}
	return uint32(v)
}

// BipolarUnitInterval converts the bits-wide value v to [-1, 1] with the
// midpoint at zero.
func BipolarUnitInterval(v uint32, bits int) float64 {
	mid, max := rangeOf(bits)
	x := uint64(v)
	if x > mid {
		return float64(x-mid) / float64(max-mid)
	}
	return -float64(mid-x) / float64(mid)
}

// FromBipolarUnitInterval converts f to a bits-wide value. f is clamped to
// [-1, 1].
func FromBipolarUnitInterval(f float64, bits int) uint32 {
	mid, max := rangeOf(bits)
	f = clampFloat(f, -1, 1)
	if f > 0 {
		return uint32(mid + uint64(f*float64(max-mid)))
	}
	return uint32(mid - uint64(math.Abs(f)*float64(mid)))
}

func clampFloat(f, min, max float64) float64 {
	switch {
	case math.IsNaN(f) || f < min:
		return min
	case f > max:
		return max
	}
	return f
}
