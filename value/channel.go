package value

import "fmt"

// Encoding is the representation a channel voice value was created from.
type Encoding uint8

const (
	Unit    Encoding = iota // unit interval [0, 1]
	Bipolar                 // bipolar unit interval [-1, 1]
	MIDI1                   // MIDI 1.0 resolution (7 or 14 bits)
	MIDI2                   // MIDI 2.0 resolution (16 or 32 bits)
)

func (e Encoding) String() string {
	switch e {
	case Unit:
		return "unit"
	case Bipolar:
		return "bipolar"
	case MIDI1:
		return "midi1"
	case MIDI2:
		return "midi2"
	default:
		return fmt.Sprintf("Encoding(%d)", uint8(e))
	}
}

// Velocity is a note velocity. It has 7 bits of resolution in MIDI 1.0 and
// 16 bits in MIDI 2.0. Velocities compare equal when their 16-bit forms match.
type Velocity struct {
	enc  Encoding
	unit float64
	bits uint32
}

func VelocityUnit(f float64) Velocity {
	return Velocity{enc: Unit, unit: clampFloat(f, 0, 1)}
}

func Velocity7(v UInt7) Velocity {
	return Velocity{enc: MIDI1, bits: uint32(v & MaxUInt7)}
}

func Velocity16(v uint16) Velocity {
	return Velocity{enc: MIDI2, bits: uint32(v)}
}

// Encoding returns the representation the velocity was created from.
func (v Velocity) Encoding() Encoding { return v.enc }

func (v Velocity) UnitInterval() float64 {
	switch v.enc {
	case Unit:
		return v.unit
	case MIDI1:
		return UnitInterval(v.bits, 7)
	default:
		return UnitInterval(v.bits, 16)
	}
}

func (v Velocity) MIDI1() UInt7 {
	switch v.enc {
	case Unit:
		return UInt7(FromUnitInterval(v.unit, 7))
	case MIDI1:
		return UInt7(v.bits)
	default:
		return UInt7(Downscale(v.bits, 16, 7))
	}
}

func (v Velocity) MIDI2() uint16 {
	switch v.enc {
	case Unit:
		return uint16(FromUnitInterval(v.unit, 16))
	case MIDI1:
		return uint16(Upscale(v.bits, 7, 16))
	default:
		return uint16(v.bits)
	}
}

// Equal reports whether v and o describe the same velocity.
func (v Velocity) Equal(o Velocity) bool {
	return v.MIDI2() == o.MIDI2()
}

func (v Velocity) String() string {
	return formatValue(v.enc, v.unit, v.bits)
}

// Control is a controller or pressure value with 7 bits of resolution in
// MIDI 1.0 and 32 bits in MIDI 2.0.
type Control struct {
	enc  Encoding
	unit float64
	bits uint32
}

func ControlUnit(f float64) Control {
	return Control{enc: Unit, unit: clampFloat(f, 0, 1)}
}

func Control7(v UInt7) Control {
	return Control{enc: MIDI1, bits: uint32(v & MaxUInt7)}
}

func Control32(v uint32) Control {
	return Control{enc: MIDI2, bits: v}
}

func (c Control) Encoding() Encoding { return c.enc }

func (c Control) UnitInterval() float64 {
	switch c.enc {
	case Unit:
		return c.unit
	case MIDI1:
		return UnitInterval(c.bits, 7)
	default:
		return UnitInterval(c.bits, 32)
	}
}

func (c Control) MIDI1() UInt7 {
	switch c.enc {
	case Unit:
		return UInt7(FromUnitInterval(c.unit, 7))
	case MIDI1:
		return UInt7(c.bits)
	default:
		return UInt7(Downscale(c.bits, 32, 7))
	}
}

func (c Control) MIDI2() uint32 {
	switch c.enc {
	case Unit:
		return FromUnitInterval(c.unit, 32)
	case MIDI1:
		return Upscale(c.bits, 7, 32)
	default:
		return c.bits
	}
}

// Equal reports whether c and o describe the same value.
func (c Control) Equal(o Control) bool {
	return c.MIDI2() == o.MIDI2()
}

func (c Control) String() string {
	return formatValue(c.enc, c.unit, c.bits)
}

// Precise is a value with 14 bits of resolution in MIDI 1.0 and 32 bits in
// MIDI 2.0, such as pitch bend or parameter number data. It may also be
// created from a bipolar unit interval centered on the midpoint.
type Precise struct {
	enc  Encoding
	unit float64
	bits uint32
}

func PreciseUnit(f float64) Precise {
	return Precise{enc: Unit, unit: clampFloat(f, 0, 1)}
}

func PreciseBipolar(f float64) Precise {
	return Precise{enc: Bipolar, unit: clampFloat(f, -1, 1)}
}

func Precise14(v UInt14) Precise {
	return Precise{enc: MIDI1, bits: uint32(v & MaxUInt14)}
}

func Precise32(v uint32) Precise {
	return Precise{enc: MIDI2, bits: v}
}

func (p Precise) Encoding() Encoding { return p.enc }

func (p Precise) UnitInterval() float64 {
	switch p.enc {
	case Unit:
		return p.unit
	case MIDI1:
		return UnitInterval(p.bits, 14)
	default:
		return UnitInterval(p.MIDI2(), 32)
	}
}

func (p Precise) BipolarUnitInterval() float64 {
	switch p.enc {
	case Bipolar:
		return p.unit
	case MIDI1:
		return BipolarUnitInterval(p.bits, 14)
	default:
		return BipolarUnitInterval(p.MIDI2(), 32)
	}
}

func (p Precise) MIDI1() UInt14 {
	switch p.enc {
	case Unit:
		return UInt14(FromUnitInterval(p.unit, 14))
	case Bipolar:
		return UInt14(FromBipolarUnitInterval(p.unit, 14))
	case MIDI1:
		return UInt14(p.bits)
	default:
		return UInt14(Downscale(p.bits, 32, 14))
	}
}

func (p Precise) MIDI2() uint32 {
	switch p.enc {
	case Unit:
		return FromUnitInterval(p.unit, 32)
	case Bipolar:
		return FromBipolarUnitInterval(p.unit, 32)
	case MIDI1:
		return Upscale(p.bits, 14, 32)
	default:
		return p.bits
	}
}

// Equal reports whether p and o describe the same value.
func (p Precise) Equal(o Precise) bool {
	return p.MIDI2() == o.MIDI2()
}

func (p Precise) String() string {
	return formatValue(p.enc, p.unit, p.bits)
}

func formatValue(enc Encoding, unit float64, bits uint32) string {
	switch enc {
	case Unit, Bipolar:
		return fmt.Sprintf("%s(%g)", enc, unit)
	default:
		return fmt.Sprintf("%s(%#x)", enc, bits)
	}
}
