package field

import "testing"

func TestDigits(t *testing.T) {
	tests := []struct {
		ft       Type
		digits   uint8
		unsigned bool
	}{
		{FTUnknown, 0, false},
		{FTBool, 1, true},
		{FTUint8, 8, true},
		{FTInt8, 7, false},
		{FTUint16, 16, true},
		{FTInt16, 15, false},
		{FTUint32, 32, true},
		{FTInt32, 31, false},
		{FTUint64, 64, true},
		{FTInt64, 63, false},
		{FTFloat32, 0, false},
		{FTFloat64, 0, false},
	}

	for _, test := range tests {
		if got := Digits(test.ft); got != test.digits {
			t.Errorf("TestDigits(%s): got %d, want %d", test.ft, got, test.digits)
		}
		if got := IsUnsigned(test.ft); got != test.unsigned {
			t.Errorf("TestDigits(%s): IsUnsigned() got %v, want %v", test.ft, got, test.unsigned)
		}
	}

	for _, ft := range UnsignedTypes {
		if !IsUnsigned(ft) || IsSigned(ft) {
			t.Errorf("TestDigits(%s): listed in UnsignedTypes but IsUnsigned() == %v, IsSigned() == %v", ft, IsUnsigned(ft), IsSigned(ft))
		}
	}
}

func TestForBits(t *testing.T) {
	for n := 0; n <= 70; n++ {
		ft := ForBits(uint8(n))
		switch {
		case n == 0 || n > 64:
			if ft != FTUnknown {
				t.Errorf("TestForBits(%d): got %s, want %s", n, ft, FTUnknown)
			}
			continue
		case Digits(ft) < uint8(n):
			t.Errorf("TestForBits(%d): got %s, which only holds %d bits", n, ft, Digits(ft))
		}
		// The next smaller kind must not fit.
		if n > 1 {
			for _, smaller := range UnsignedTypes {
				if Digits(smaller) < Digits(ft) && Digits(smaller) >= uint8(n) {
					t.Errorf("TestForBits(%d): got %s, but %s also fits", n, ft, smaller)
				}
			}
		}
	}
}

func TestString(t *testing.T) {
	if FTUint16.String() != "uint16" {
		t.Errorf("TestString: got %q, want %q", FTUint16.String(), "uint16")
	}
	if Type(99).String() != "Type(99)" {
		t.Errorf("TestString: got %q, want %q", Type(99).String(), "Type(99)")
	}
}
