package bits

import (
	"testing"
)

// FuzzMSBMask fuzzes the MSBMask function.
func FuzzMSBMask(f *testing.F) {
	f.Add(uint8(0), uint8(0))
	f.Add(uint8(1), uint8(0))
	f.Add(uint8(64), uint8(0))
	f.Add(uint8(3), uint8(61))
	f.Add(uint8(17), uint8(9))

	f.Fuzz(func(t *testing.T, n, start uint8) {
		if uint16(n)+uint16(start) > 64 {
			return
		}

		// Should not panic
		mask := MSBMask[uint64](n, start)

		for i := uint8(0); i < 64; i++ {
			// Position i counted from the most significant bit.
			bitSet := mask&(1<<(63-i)) != 0
			shouldBeSet := i >= start && i < start+n
			if bitSet != shouldBeSet {
				t.Errorf("FuzzMSBMask: bit %d from msb: got %v, want %v (n=%d, start=%d)", i, bitSet, shouldBeSet, n, start)
			}
		}
	})
}

// FuzzLSBMask fuzzes the LSBMask function.
func FuzzLSBMask(f *testing.F) {
	f.Add(uint8(0), uint8(0))
	f.Add(uint8(1), uint8(0))
	f.Add(uint8(64), uint8(0))
	f.Add(uint8(4), uint8(4))
	f.Add(uint8(32), uint8(32))

	f.Fuzz(func(t *testing.T, n, start uint8) {
		if uint16(n)+uint16(start) > 64 {
			return
		}

		mask := LSBMask[uint64](n, start)

		for i := uint8(0); i < 64; i++ {
			bitSet := mask&(1<<i) != 0
			shouldBeSet := i >= start && i < start+n
			if bitSet != shouldBeSet {
				t.Errorf("FuzzLSBMask: bit %d: got %v, want %v (n=%d, start=%d)", i, bitSet, shouldBeSet, n, start)
			}
		}
	})
}

// FuzzSetGetBit64 fuzzes SetBit/GetBit with uint64.
func FuzzSetGetBit64(f *testing.F) {
	f.Add(uint64(0), uint8(0), true)
	f.Add(uint64(0), uint8(63), true)
	f.Add(uint64(0xFFFFFFFFFFFFFFFF), uint8(0), false)

	f.Fuzz(func(t *testing.T, store uint64, pos uint8, val bool) {
		if pos > 63 {
			return
		}

		newStore := SetBit(store, pos, val)
		retrieved := GetBit(newStore, pos)

		if retrieved != val {
			t.Errorf("FuzzSetGetBit64: round-trip failed: got %v, want %v", retrieved, val)
		}
	})
}
