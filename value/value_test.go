package value

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		in   float64
		want UInt7
		err  error
	}{
		{0, 0, nil},
		{127, 127, nil},
		{64.9, 64, nil},
		{-0.5, 0, nil},
		{128, 0, ErrOverflow},
		{-1, 0, ErrUnderflow},
		{math.NaN(), 0, ErrNotANumber},
	}
	for _, test := range tests {
		v, err := New[UInt7](test.in)
		if !errors.Is(err, test.err) {
			t.Fatalf("New(%v) error = %v, want %v", test.in, err, test.err)
		}
		if err == nil && v != test.want {
			t.Fatalf("New(%v) = %d, want %d", test.in, v, test.want)
		}
	}
}

func TestNewIntegerSources(t *testing.T) {
	if v, err := New[UInt14](uint64(0x3FFF)); err != nil || v != MaxUInt14 {
		t.Fatalf("New[UInt14](0x3FFF) = %d, %v", v, err)
	}
	if _, err := New[UInt4](int8(16)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("New[UInt4](16) error = %v, want ErrOverflow", err)
	}
	if _, err := New[UInt25](int64(-3)); !errors.Is(err, ErrUnderflow) {
		t.Fatalf("New[UInt25](-3) error = %v, want ErrUnderflow", err)
	}
	if v, err := New[UInt9](uint16(511)); err != nil || v != MaxUInt9 {
		t.Fatalf("New[UInt9](511) = %d, %v", v, err)
	}
}

func TestExactly(t *testing.T) {
	tests := []struct {
		in   float64
		want UInt4
		ok   bool
	}{
		{0, 0, true},
		{15, 15, true},
		{16, 0, false},
		{-1, 0, false},
		{2.5, 0, false},
		{math.NaN(), 0, false},
	}
	for _, test := range tests {
		v, ok := Exactly[UInt4](test.in)
		if v != test.want || ok != test.ok {
			t.Fatalf("Exactly(%v) = %d, %t, want %d, %t", test.in, v, ok, test.want, test.ok)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want UInt14
	}{
		{-100, 0},
		{0, 0},
		{8192.7, 8192},
		{16383, 16383},
		{1e9, MaxUInt14},
		{math.Inf(1), MaxUInt14},
		{math.NaN(), 0},
	}
	for _, test := range tests {
		if v := Clamp[UInt14](test.in); v != test.want {
			t.Fatalf("Clamp(%v) = %d, want %d", test.in, v, test.want)
		}
	}
}

func TestLimits(t *testing.T) {
	if Max[UInt4]() != MaxUInt4 || Max[UInt7]() != MaxUInt7 || Max[UInt9]() != MaxUInt9 ||
		Max[UInt14]() != MaxUInt14 || Max[UInt25]() != MaxUInt25 {
		t.Fatal("Max does not match constants")
	}
	if Midpoint[UInt7]() != MidUInt7 || Midpoint[UInt14]() != MidUInt14 || Midpoint[UInt25]() != MidUInt25 {
		t.Fatal("Midpoint does not match constants")
	}
	if !Valid(MaxUInt7) || Valid(UInt7(0x80)) {
		t.Fatal("Valid(UInt7) wrong")
	}
	if MaxUInt25 != 0x1FFFFFF || MidUInt9 != 256 {
		t.Fatalf("wrong constants %#x %d", MaxUInt25, MidUInt9)
	}
}

func TestArithmetic(t *testing.T) {
	if v, err := Add[UInt7](100, 27); err != nil || v != 127 {
		t.Fatalf("Add(100, 27) = %d, %v", v, err)
	}
	if _, err := Add[UInt7](100, 28); !errors.Is(err, ErrOverflow) {
		t.Fatalf("Add(100, 28) error = %v, want ErrOverflow", err)
	}
	if _, err := Sub[UInt7](3, 4); !errors.Is(err, ErrUnderflow) {
		t.Fatalf("Sub(3, 4) error = %v, want ErrUnderflow", err)
	}
	if v, err := Mul[UInt9](16, 31); err != nil || v != 496 {
		t.Fatalf("Mul(16, 31) = %d, %v", v, err)
	}
	if v := AddClamp[UInt4](10, 10); v != MaxUInt4 {
		t.Fatalf("AddClamp(10, 10) = %d", v)
	}
	if v := SubClamp[UInt4](3, 10); v != 0 {
		t.Fatalf("SubClamp(3, 10) = %d", v)
	}
	if v := MulClamp[UInt14](200, 200); v != MaxUInt14 {
		t.Fatalf("MulClamp(200, 200) = %d", v)
	}
}

func TestUInt14Pair(t *testing.T) {
	tests := []struct {
		msb, lsb UInt7
		v        UInt14
	}{
		{0x00, 0x00, 0x0000},
		{0x40, 0x00, 0x2000},
		{0x7F, 0x7F, 0x3FFF},
		{0x12, 0x34, 0x12<<7 | 0x34},
	}
	for _, test := range tests {
		v := UInt14FromPair(test.msb, test.lsb)
		if v != test.v {
			t.Fatalf("pair %#x %#x = %#x, want %#x", test.msb, test.lsb, v, test.v)
		}
		if v.MSB() != test.msb || v.LSB() != test.lsb {
			t.Fatalf("split %#x = %#x %#x", v, v.MSB(), v.LSB())
		}
	}
}

func TestChannelValueEquality(t *testing.T) {
	tests := []struct {
		name  string
		equal bool
		ok    bool
	}{
		{"velocity unit 1 == midi1 127", VelocityUnit(1).Equal(Velocity7(127)), true},
		{"velocity midi1 64 == midi2 0x8000", Velocity7(64).Equal(Velocity16(0x8000)), true},
		{"velocity unit 0.5 == midi1 64", VelocityUnit(0.5).Equal(Velocity7(64)), true},
		{"velocity midi1 1 != midi1 2", Velocity7(1).Equal(Velocity7(2)), false},
		{"control unit 0.5 == midi1 64", ControlUnit(0.5).Equal(Control7(64)), true},
		{"control midi1 127 == midi2 max", Control7(127).Equal(Control32(0xFFFFFFFF)), true},
		{"control midi2 0 != midi2 1", Control32(0).Equal(Control32(1)), false},
		{"precise bipolar 0 == midi1 8192", PreciseBipolar(0).Equal(Precise14(8192)), true},
		{"precise bipolar 1 == midi2 max", PreciseBipolar(1).Equal(Precise32(0xFFFFFFFF)), true},
		{"precise bipolar -1 == midi1 0", PreciseBipolar(-1).Equal(Precise14(0)), true},
		{"precise unit 1 == midi1 max", PreciseUnit(1).Equal(Precise14(MaxUInt14)), true},
	}
	for _, test := range tests {
		if test.equal != test.ok {
			t.Errorf("%s: got %t", test.name, test.equal)
		}
	}
}

func TestChannelValueConversions(t *testing.T) {
	v := Velocity16(0xFFFF)
	if v.MIDI1() != 127 || v.UnitInterval() != 1 || v.Encoding() != MIDI2 {
		t.Fatalf("velocity %v: midi1 %d unit %g", v, v.MIDI1(), v.UnitInterval())
	}
	c := Control7(64)
	if c.MIDI2() != 0x80000000 || c.UnitInterval() != 0.5 {
		t.Fatalf("control %v: midi2 %#x unit %g", c, c.MIDI2(), c.UnitInterval())
	}
	p := Precise14(MidUInt14)
	if p.BipolarUnitInterval() != 0 || p.MIDI2() != 0x80000000 {
		t.Fatalf("precise %v: bipolar %g midi2 %#x", p, p.BipolarUnitInterval(), p.MIDI2())
	}
	if b := PreciseBipolar(-1); b.MIDI1() != 0 || b.UnitInterval() != 0 {
		t.Fatalf("bipolar -1: midi1 %d unit %g", b.MIDI1(), b.UnitInterval())
	}
	if s := Control7(3).String(); s != "midi1(0x3)" {
		t.Fatalf("String() = %q", s)
	}
}
