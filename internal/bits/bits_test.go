package bits

import (
	"testing"
)

// msbRecursive is the recursive definition of an MSB anchored mask. The iterative MSBMask must match it.
func msbRecursive(n, start, digits uint8) uint64 {
	if n == 0 {
		return 0
	}
	return uint64(1)<<(digits-(n+start)) | msbRecursive(n-1, start, digits)
}

// lsbRecursive is the recursive definition of an LSB anchored mask.
func lsbRecursive(n, start uint8) uint64 {
	if n == 0 {
		return 0
	}
	return uint64(1)<<(n-1+start) | lsbRecursive(n-1, start)
}

func TestMSBMask(t *testing.T) {
	tests := []struct {
		name  string
		n     uint8
		start uint8
		want  uint8
	}{
		{"Success: nothing", 0, 3, 0},
		{"Success: top bit", 1, 0, 0b10000000},
		{"Success: middle", 3, 2, 0b00111000},
		{"Success: low bit", 1, 7, 0b00000001},
		{"Success: whole byte", 8, 0, 0b11111111},
		{"Success: low two bits", 2, 6, 0b00000011},
	}

	for _, test := range tests {
		got := MSBMask[uint8](test.n, test.start)
		if got != test.want {
			t.Errorf("TestMSBMask(%s): got %08b, want %08b", test.name, got, test.want)
		}
	}
}

func TestLSBMask(t *testing.T) {
	tests := []struct {
		name  string
		n     uint8
		start uint8
		want  uint8
	}{
		{"Success: nothing", 0, 3, 0},
		{"Success: low bit", 1, 0, 0b00000001},
		{"Success: middle", 3, 2, 0b00011100},
		{"Success: top bit", 1, 7, 0b10000000},
		{"Success: whole byte", 8, 0, 0b11111111},
	}

	for _, test := range tests {
		got := LSBMask[uint8](test.n, test.start)
		if got != test.want {
			t.Errorf("TestLSBMask(%s): got %08b, want %08b", test.name, got, test.want)
		}
	}
}

func TestMasksMatchRecursiveDefinition(t *testing.T) {
	for n := uint8(0); n <= 64; n++ {
		for start := uint8(0); n+start <= 64; start++ {
			if got, want := MSBMask[uint64](n, start), msbRecursive(n, start, 64); got != want {
				t.Fatalf("TestMasksMatchRecursiveDefinition(MSBMask(%d, %d)): got %#x, want %#x", n, start, got, want)
			}
			if got, want := LSBMask[uint64](n, start), lsbRecursive(n, start); got != want {
				t.Fatalf("TestMasksMatchRecursiveDefinition(LSBMask(%d, %d)): got %#x, want %#x", n, start, got, want)
			}
		}
	}
	for n := uint8(0); n <= 16; n++ {
		for start := uint8(0); n+start <= 16; start++ {
			if got, want := MSBMask[uint16](n, start), uint16(msbRecursive(n, start, 16)); got != want {
				t.Fatalf("TestMasksMatchRecursiveDefinition(MSBMask[uint16](%d, %d)): got %#x, want %#x", n, start, got, want)
			}
		}
	}
}

func TestMSBMaskSelectsLowBits(t *testing.T) {
	// MSBMask(n, digits-n) is how a value is trimmed to the width of its field.
	for n := uint8(1); n <= 32; n++ {
		got := MSBMask[uint32](n, 32-n)
		want := uint32(Low(^uint64(0), n))
		if got != want {
			t.Fatalf("TestMSBMaskSelectsLowBits(%d): got %#x, want %#x", n, got, want)
		}
	}
}

func TestMaskPanics(t *testing.T) {
	tests := []struct {
		name string
		f    func()
	}{
		{"MSBMask too wide", func() { MSBMask[uint8](5, 4) }},
		{"LSBMask too wide", func() { LSBMask[uint8](9, 0) }},
		{"LSBMask uint16 overflow", func() { LSBMask[uint16](1, 16) }},
	}

	for _, test := range tests {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("TestMaskPanics(%s): did not panic", test.name)
				}
			}()
			test.f()
		}()
	}
}

func TestDigits(t *testing.T) {
	if got := Digits[uint8](); got != 8 {
		t.Errorf("TestDigits(uint8): got %d, want 8", got)
	}
	if got := Digits[uint16](); got != 16 {
		t.Errorf("TestDigits(uint16): got %d, want 16", got)
	}
	if got := Digits[uint32](); got != 32 {
		t.Errorf("TestDigits(uint32): got %d, want 32", got)
	}
	if got := Digits[uint64](); got != 64 {
		t.Errorf("TestDigits(uint64): got %d, want 64", got)
	}
}

func TestLowAndFits(t *testing.T) {
	tests := []struct {
		name     string
		v        uint64
		n        uint8
		wantLow  uint64
		wantFits bool
	}{
		{"Success: fits exactly", 0x1f, 5, 0x1f, true},
		{"Success: one bit too many", 0x20, 5, 0, false},
		{"Success: full width", ^uint64(0), 64, ^uint64(0), true},
		{"Success: zero", 0, 1, 0, true},
		{"Success: truncated", 0x1ff, 8, 0xff, false},
	}

	for _, test := range tests {
		if got := Low(test.v, test.n); got != test.wantLow {
			t.Errorf("TestLowAndFits(%s): Low got %#x, want %#x", test.name, got, test.wantLow)
		}
		if got := Fits(test.v, test.n); got != test.wantFits {
			t.Errorf("TestLowAndFits(%s): Fits got %v, want %v", test.name, got, test.wantFits)
		}
	}
}

func TestSetBits(t *testing.T) {
	// Tests we can set all bits that we expect.
	for start := 0; start < 8; start++ {
		for end := start + 1; end < 8; end++ {
			got := setBits(0, uint64(start), uint64(end))
			var want uint64
			for x := start; x < end; x++ {
				want += 1 << x
			}

			if got != want {
				t.Fatalf("TestSetBits(start: %d, end: %d): got %d, want %d", start, end, got, want)
			}
		}
	}

	// Test we can ignore existing bits.
	// 10000001 start = 65
	// 10111101 end  = 125
	got := setBits(65, 2, 6)
	if got != 125 {
		t.Fatalf("TestSetBits(num: %d, start: %d, end: %d): got %d, want %d", 65, 2, 6, got, 125)
	}
}

func TestGetSetBit(t *testing.T) {
	for i := uint8(0); i < 8; i++ {
		var store uint8

		store = SetBit(store, i, true)
		if !GetBit(store, i) {
			t.Fatalf("TestGetSetBit(set bit %d): got false, want true", i)
		}
		if store != 1<<i {
			t.Fatalf("TestGetSetBit(set bit %d): store value was %d, expected %d", i, store, 1<<i)
		}
	}

	for i := uint8(0); i < 8; i++ {
		var store uint8 = 255

		store = SetBit(store, i, false)
		if GetBit(store, i) {
			t.Fatalf("TestGetSetBit(set bit %d): got true, want false", i)
		}
	}
}

func TestBytesInBinary(t *testing.T) {
	got := BytesInBinary([]byte{0x81, 0x0f})
	want := "10000001 00001111"
	if got != want {
		t.Errorf("TestBytesInBinary: got %q, want %q", got, want)
	}
}
