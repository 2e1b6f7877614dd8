// Package value implements fixed-width MIDI integers and the conversions
// between MIDI 1.0 and MIDI 2.0 value resolutions.
package value

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

var (
	ErrOverflow   = errors.New("value overflow")
	ErrUnderflow  = errors.New("value underflow")
	ErrNotANumber = errors.New("value is not a number")
)

// Fixed-width unsigned integers. The constructors in this package never
// produce a value outside of [0, 2^bits-1]. Converting an arbitrary integer
// with a plain type conversion bypasses that check and is a programming error.
type (
	UInt4  uint8
	UInt7  uint8
	UInt9  uint16
	UInt14 uint16
	UInt25 uint32
)

const (
	MaxUInt4  UInt4  = 1<<4 - 1
	MaxUInt7  UInt7  = 1<<7 - 1
	MaxUInt9  UInt9  = 1<<9 - 1
	MaxUInt14 UInt14 = 1<<14 - 1
	MaxUInt25 UInt25 = 1<<25 - 1

	// Midpoints are the zero position of bipolar values.
	MidUInt4  UInt4  = 1 << 3
	MidUInt7  UInt7  = 1 << 6
	MidUInt9  UInt9  = 1 << 8
	MidUInt14 UInt14 = 1 << 13
	MidUInt25 UInt25 = 1 << 24
)

// Fixed is the set of fixed-width integer types.
type Fixed interface {
	UInt4 | UInt7 | UInt9 | UInt14 | UInt25
	BitWidth() int
}

// Number is the set of types a fixed-width value can be constructed from.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func (UInt4) BitWidth() int { return 4 }
func (UInt7) BitWidth() int { return 7 }
func (UInt9) BitWidth() int { return 9 }
func (UInt14) BitWidth() int { return 14 }
func (UInt25) BitWidth() int { return 25 }

func bitWidth[U Fixed]() int {
	var z U
	return z.BitWidth()
}

func maxOf[U Fixed]() uint64 {
	return 1<<uint(bitWidth[U]()) - 1
}

func typeName[U Fixed]() string {
	return fmt.Sprintf("UInt%d", bitWidth[U]())
}

// Max returns the largest value of U.
func Max[U Fixed]() U {
	return U(maxOf[U]())
}

// Midpoint returns the midpoint of U.
func Midpoint[U Fixed]() U {
	return U(uint64(1) << uint(bitWidth[U]()-1))
}

// Valid reports whether v is within the range of its type.
func Valid[U Fixed](v U) bool {
	return uint64(v) <= maxOf[U]()
}

// New converts v to U. It fails if v is outside of the range of U.
// Fractional values are truncated toward zero.
func New[U Fixed, T Number](v T) (U, error) {
	f := float64(v)
	if math.IsNaN(f) {
		return 0, errors.Wrapf(ErrNotANumber, "can't convert to %s", typeName[U]())
	}
	t := math.Trunc(f)
	if t < 0 {
		return 0, errors.Wrapf(ErrUnderflow, "%v is below %s minimum 0", v, typeName[U]())
	}
	if t > float64(maxOf[U]()) {
		return 0, errors.Wrapf(ErrOverflow, "%v exceeds %s maximum %d", v, typeName[U](), maxOf[U]())
	}
	return U(uint64(t)), nil
}

// Exactly converts v to U. The result is false if v is fractional or outside
// of the range of U.
func Exactly[U Fixed, T Number](v T) (U, bool) {
	f := float64(v)
	if math.IsNaN(f) || f != math.Trunc(f) || f < 0 || f > float64(maxOf[U]()) {
		return 0, false
	}
	return U(uint64(f)), true
}

// Clamp converts v to U, limiting it to the range of U. NaN converts to zero.
func Clamp[U Fixed, T Number](v T) U {
	f := float64(v)
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= float64(maxOf[U]()):
		return Max[U]()
	}
	return U(uint64(f))
}

// Add returns a+b. It fails with ErrOverflow if the sum doesn't fit.
func Add[U Fixed](a, b U) (U, error) {
	return New[U](uint64(a) + uint64(b))
}

// Sub returns a-b. It fails with ErrUnderflow if b > a.
func Sub[U Fixed](a, b U) (U, error) {
	return New[U](int64(a) - int64(b))
}

// Mul returns a*b. It fails with ErrOverflow if the product doesn't fit.
func Mul[U Fixed](a, b U) (U, error) {
	return New[U](uint64(a) * uint64(b))
}

// AddClamp returns a+b, saturating at the maximum of U.
func AddClamp[U Fixed](a, b U) U {
	return Clamp[U](uint64(a) + uint64(b))
}

// SubClamp returns a-b, saturating at zero.
func SubClamp[U Fixed](a, b U) U {
	return Clamp[U](int64(a) - int64(b))
}

// MulClamp returns a*b, saturating at the maximum of U.
func MulClamp[U Fixed](a, b U) U {
	return Clamp[U](uint64(a) * uint64(b))
}

// UInt14FromPair combines two 7-bit bytes into a 14-bit value.
func UInt14FromPair(msb, lsb UInt7) UInt14 {
	return UInt14(msb&0x7F)<<7 | UInt14(lsb&0x7F)
}

// MSB returns the upper 7 bits.
func (v UInt14) MSB() UInt7 {
	return UInt7(v>>7) & 0x7F
}

// LSB returns the lower 7 bits.
func (v UInt14) LSB() UInt7 {
	return UInt7(v) & 0x7F
}

// UnitInterval returns the value as a number in [0, 1].
func (v UInt7) UnitInterval() float64 {
	return UnitInterval(uint32(v), 7)
}

// UnitInterval returns the value as a number in [0, 1].
func (v UInt14) UnitInterval() float64 {
	return UnitInterval(uint32(v), 14)
}

// BipolarUnitInterval returns the value as a number in [-1, 1], with the
// midpoint mapping to zero.
func (v UInt14) BipolarUnitInterval() float64 {
	return BipolarUnitInterval(uint32(v), 14)
}
